//go:build linux

// Package mcp3008 captures from an MCP3008 wired to Raspberry Pi GPIO lines.
package mcp3008

import (
	"time"

	"github.com/eteq/rp2040-spectro/board/rpi"
	"github.com/eteq/rp2040-spectro/input"
	"github.com/pkg/errors"
)

func init() {
	input.RegisterBackend("mcp3008", Backend{})
}

type Backend struct{}

func (b Backend) Init() error {
	return nil
}

func (b Backend) Close() error {
	return nil
}

func (b Backend) Devices() ([]input.Device, error) {
	return []input.Device{PinFile("")}, nil
}

func (b Backend) DefaultDevice() (input.Device, error) {
	return PinFile(""), nil
}

func (b Backend) Open(cfg input.SourceConfig) (input.SampleSource, error) {
	dv, ok := cfg.Device.(PinFile)
	if !ok {
		return nil, errors.Errorf("invalid device type %T", cfg.Device)
	}

	pm, err := rpi.LoadPinMap(string(dv))
	if err != nil {
		return nil, err
	}

	adc, err := rpi.OpenADC(pm)
	if err != nil {
		return nil, err
	}

	return NewSource(adc), nil
}

// PinFile names the pin map the ADC lines are read from. Empty means the
// default map.
type PinFile string

func (d PinFile) String() string {
	if d == "" {
		return "default"
	}
	return string(d)
}

// Converter reads one 10-bit sample.
type Converter interface {
	Read(ch int) uint16
}

// Source samples a Converter from Wait. Bit-banged SPI is slow, so the
// configured rate is an upper bound: samples are never taken faster, and
// are taken as fast as the bus allows when it cannot keep up.
type Source struct {
	adc     Converter
	channel int
	period  time.Duration
	buf     []byte
}

func NewSource(adc Converter) *Source {
	return &Source{adc: adc}
}

func (s *Source) Configure(channel int, divider float64) error {
	if channel < 0 || channel > 7 {
		return errors.Errorf("mcp3008 has no channel %d", channel)
	}

	s.channel = channel
	s.period = 0
	if divider > 0 {
		s.period = time.Duration(float64(time.Second) / input.DividerRate(divider))
	}

	return nil
}

func (s *Source) Arm(buf []byte) error {
	if len(buf) == 0 {
		return input.ErrBufferSize
	}
	s.buf = buf
	return nil
}

func (s *Source) Start() error {
	if s.buf == nil {
		return errors.New("source not armed")
	}
	return nil
}

func (s *Source) Wait() error {
	next := time.Now()
	for i := range s.buf {
		if s.period > 0 {
			for time.Now().Before(next) {
			}
			next = next.Add(s.period)
		}
		s.buf[i] = byte(s.adc.Read(s.channel) >> 2)
	}
	return nil
}

func (s *Source) Stop() error {
	return nil
}

func (s *Source) Drain() error {
	return nil
}
