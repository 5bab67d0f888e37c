// Package parec captures from a PulseAudio source through parec.
package parec

import (
	"fmt"

	"github.com/eteq/rp2040-spectro/input"
	"github.com/eteq/rp2040-spectro/input/common/execread"
	"github.com/lawl/pulseaudio"
	"github.com/pkg/errors"
)

func init() {
	input.RegisterBackend("parec", Backend{})
}

type Backend struct{}

func (p Backend) Init() error {
	return nil
}

func (p Backend) Close() error {
	return nil
}

func (p Backend) Devices() ([]input.Device, error) {
	c, err := pulseaudio.NewClient()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create client")
	}
	defer c.Close()

	s, err := c.Sources()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get sources")
	}

	var devices = make([]input.Device, len(s))
	for i, source := range s {
		devices[i] = PulseDevice(source.Name)
	}

	return devices, nil
}

func (p Backend) DefaultDevice() (input.Device, error) {
	return PulseDevice("default"), nil
}

func (p Backend) Open(cfg input.SourceConfig) (input.SampleSource, error) {
	src, err := NewSource(cfg)
	if err != nil {
		return nil, err
	}
	return src, nil
}

type PulseDevice string

func (d PulseDevice) InputArgs() []string {
	return []string{"-f", "pulse", "-i", string(d)}
}

func (d PulseDevice) String() string {
	return string(d)
}

// Args builds the parec command line for a raw u8 stream.
func Args(dv PulseDevice, rate float64, channels int) []string {
	return []string{
		"parec",
		"--raw",
		"--format=u8",
		fmt.Sprintf("--rate=%.0f", rate),
		fmt.Sprintf("--channels=%d", channels),
		"-d", dv.String(),
	}
}

func NewSource(cfg input.SourceConfig) (*execread.Source, error) {
	dv, ok := cfg.Device.(PulseDevice)
	if !ok {
		return nil, fmt.Errorf("invalid device type %T", cfg.Device)
	}

	return execread.New(func(rate float64, channels int) []string {
		return Args(dv, rate, channels)
	}), nil
}
