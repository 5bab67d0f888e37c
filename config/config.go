package config

import (
	"time"

	"github.com/pkg/errors"
)

// Panel geometry. The capture and render buffers are sized from these at
// build time.
const (
	// Width is the number of panel columns.
	Width = 128
	// Height is the number of panel rows.
	Height = 64
	// GlyphSize is the width and height of one label glyph.
	GlyphSize = 8
)

// Config holds the runtime parameters of the spectrometer.
type Config struct {
	// SampleSize is the number of samples per capture cycle. Must be a power
	// of two and at least 2*Width.
	SampleSize int
	// SampleRate is the ADC conversion rate in Hz.
	SampleRate float64
	// Channel is the ADC input the source captures from.
	Channel int
	// HoldTimeout is how long a button must stay down to count as held.
	HoldTimeout time.Duration
	// PollInterval is the sleep between main loop iterations.
	PollInterval time.Duration
	// Window names the window function applied after DC removal.
	Window string
	// PanelAddress is the I2C address of the display controller.
	PanelAddress uint16
	// StartupBlinks is the number of LED blinks before the first capture.
	StartupBlinks int
}

// NewZeroConfig returns a zero config
// it is the "default"
//
// defaults match an RP2040 feather with the ADC free running:
//   - sampleRate: 500000 (48 MHz / 96 cycles)
//   - sampleSize: 8192
//   - 1s hold, 10ms poll
func NewZeroConfig() Config {
	return Config{
		SampleSize:    8192,
		SampleRate:    500000,
		Channel:       0,
		HoldTimeout:   time.Second,
		PollInterval:  10 * time.Millisecond,
		Window:        "rectangle",
		PanelAddress:  0x3C,
		StartupBlinks: 3,
	}
}

// Sanitize cleans things up
func (cfg *Config) Sanitize() error {

	if cfg.SampleSize < 2*Width {
		return errors.Errorf("sample size too small (%d+ required)", 2*Width)
	}

	if cfg.SampleSize&(cfg.SampleSize-1) != 0 {
		return errors.Errorf("sample size %d is not a power of two", cfg.SampleSize)
	}

	if cfg.SampleRate <= 0 {
		return errors.New("sample rate must be positive")
	}

	switch {
	case cfg.Channel < 0:
		return errors.New("negative adc channel")
	case cfg.Channel > 7:
		return errors.New("too many adc channels (7 max)")
	}

	if cfg.HoldTimeout <= 0 {
		cfg.HoldTimeout = time.Second
	}

	switch {
	case cfg.PollInterval < time.Millisecond:
		cfg.PollInterval = time.Millisecond
	case cfg.PollInterval > time.Second:
		cfg.PollInterval = time.Second
	}

	if cfg.Window == "" {
		cfg.Window = "rectangle"
	}

	if cfg.PanelAddress == 0 || cfg.PanelAddress > 0x7f {
		return errors.Errorf("invalid panel address 0x%x", cfg.PanelAddress)
	}

	if cfg.StartupBlinks < 0 {
		cfg.StartupBlinks = 0
	}

	return nil
}

// MaxSpacing returns the largest time-domain decimation factor, the number of
// samples that fold into one column when the whole capture fills the panel.
func (cfg *Config) MaxSpacing() int {
	return cfg.SampleSize / Width
}

// MaxSpectrumSpacing returns the largest frequency-domain decimation factor
// that keeps every column inside the N/2+1 bin spectrum.
func (cfg *Config) MaxSpectrumSpacing() int {
	return cfg.SampleSize / 2 / Width
}
