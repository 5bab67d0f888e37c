package ffmpeg

import (
	"fmt"

	"github.com/eteq/rp2040-spectro/input"
	"github.com/eteq/rp2040-spectro/input/parec"
)

func init() {
	input.RegisterBackend("ffmpeg-pulse", Pulse{})
}

// Pulse is the pulse input for FFmpeg.
type Pulse struct {
	parec.Backend
}

func (p Pulse) Open(cfg input.SourceConfig) (input.SampleSource, error) {
	dv, ok := cfg.Device.(parec.PulseDevice)
	if !ok {
		return nil, fmt.Errorf("invalid device type %T", cfg.Device)
	}

	return NewSource(dv), nil
}
