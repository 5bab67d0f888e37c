// Package synth simulates an impulse-excited resonator so the whole pipeline
// runs without hardware. Raising the stimulus line rings the resonator; the
// next capture records its decay.
package synth

import (
	"math"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/eteq/rp2040-spectro/input"
	"github.com/pkg/errors"
)

func init() {
	input.RegisterBackend("synth", Backend{})
}

type Backend struct{}

func (b Backend) Init() error {
	return nil
}

func (b Backend) Close() error {
	return nil
}

func (b Backend) Devices() ([]input.Device, error) {
	return []input.Device{DefaultResonator}, nil
}

func (b Backend) DefaultDevice() (input.Device, error) {
	return DefaultResonator, nil
}

func (b Backend) Open(cfg input.SourceConfig) (input.SampleSource, error) {
	r, ok := cfg.Device.(Resonator)
	if !ok {
		return nil, errors.Errorf("invalid device type %T", cfg.Device)
	}
	return NewSource(r), nil
}

// Resonator describes the simulated signal.
type Resonator struct {
	Frequency float64       // Hz
	Decay     time.Duration // amplitude time constant
	Amplitude float64       // peak deviation from mid scale, in counts
	Noise     float64       // noise standard deviation, in counts
}

// DefaultResonator rings at 12.5 kHz for a few milliseconds.
var DefaultResonator = Resonator{
	Frequency: 12500,
	Decay:     3 * time.Millisecond,
	Amplitude: 100,
	Noise:     2,
}

func (r Resonator) String() string {
	return "resonator"
}

// Source is a simulated converter. Captures take as long as the real
// converter would need at the configured rate.
type Source struct {
	res  Resonator
	rate float64
	rng  *rand.Rand

	struck atomic.Bool
	buf    []byte
	start  time.Time
}

func NewSource(r Resonator) *Source {
	return &Source{
		res:  r,
		rate: input.DividerRate(0),
		rng:  rand.New(rand.NewSource(1)),
	}
}

// Stimulus returns the line that strikes the resonator on its rising edge.
func (s *Source) Stimulus() input.Pin {
	return stimulus{s}
}

type stimulus struct {
	s *Source
}

func (p stimulus) High() { p.s.struck.Store(true) }
func (p stimulus) Low()  {}

func (s *Source) Configure(channel int, divider float64) error {
	if channel != 0 {
		return errors.Errorf("synth has one channel, not %d", channel+1)
	}
	s.rate = input.DividerRate(divider)
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
	s.start = time.Now()
	return nil
}

func (s *Source) Wait() error {
	s.Fill(s.buf, s.struck.Swap(false))

	elapsed := time.Since(s.start)
	if d := time.Duration(float64(len(s.buf)) / s.rate * float64(time.Second)); d > elapsed {
		time.Sleep(d - elapsed)
	}

	return nil
}

func (s *Source) Stop() error {
	return nil
}

func (s *Source) Drain() error {
	return nil
}

// Fill writes one capture into buf. Without a strike only noise around mid
// scale is recorded.
func (s *Source) Fill(buf []byte, struck bool) {
	tau := s.res.Decay.Seconds() * s.rate
	w := 2 * math.Pi * s.res.Frequency / s.rate

	for i := range buf {
		v := 128 + s.rng.NormFloat64()*s.res.Noise
		if struck && tau > 0 {
			v += s.res.Amplitude * math.Exp(-float64(i)/tau) * math.Sin(w*float64(i))
		}
		buf[i] = byte(math.Max(0, math.Min(255, math.Round(v))))
	}
}
