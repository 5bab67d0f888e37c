package main

import (
	"github.com/eteq/rp2040-spectro/config"
	"github.com/eteq/rp2040-spectro/input"
	"github.com/pkg/errors"
)

// Config is a temporary struct to define parameters
type cliConfig struct {
	// Backend is the backend name from list-backends
	backend string
	// Device is the device name from list-devices
	device string
	// UI is how the emulated panel is shown: terminal, window or none
	ui string
	// LogFile receives the log while a UI owns the screen
	logFile string
	// PinFile is the Raspberry Pi pin map, for the board and mcp3008
	pinFile string
	// Board drives the stimulus, LED and buttons over Raspberry Pi GPIO
	board bool
	// Dump prints every capture to stdout
	dump bool
	// Scale is the window pixels per panel pixel
	scale int
	// Params are the instrument parameters
	params config.Config
}

// NewZeroConfig returns a zero config
// it is the "default"
//
//   - backend: whatever input.DefaultBackend finds
//   - ui: terminal
//   - params: config.NewZeroConfig
func newZeroConfig() cliConfig {
	return cliConfig{
		backend: input.DefaultBackend(),
		ui:      "terminal",
		scale:   4,
		params:  config.NewZeroConfig(),
	}
}

// Sanitize cleans things up
func (cfg *cliConfig) Sanitize() error {

	switch cfg.ui {
	case "terminal", "window", "none":
	case "":
		cfg.ui = "terminal"
	default:
		return errors.Errorf("unknown ui %q (terminal, window or none)", cfg.ui)
	}

	if cfg.backend == "" {
		return errors.New("no backend available; check list-backends")
	}

	if cfg.backend == "mcp3008" {
		cfg.board = true
	}

	if cfg.scale < 1 {
		cfg.scale = 1
	}

	return cfg.params.Sanitize()
}
