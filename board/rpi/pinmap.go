// Package rpi runs the spectrometer on a Raspberry Pi: GPIO lines for the
// stimulus, the LED and the buttons, and a bit-banged MCP3008 as the ADC.
package rpi

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/warthog618/config"
	"github.com/warthog618/config/blob"
	"github.com/warthog618/config/blob/decoder/json"
	"github.com/warthog618/config/blob/loader/file"
	"github.com/warthog618/config/dict"
	"github.com/warthog618/config/env"
)

// DefaultPinFile is read, if present, when no pin file is named.
const DefaultPinFile = "spectro-pins.json"

// PinMap assigns BCM GPIO numbers to the board functions.
type PinMap struct {
	Stimulus int
	LED      int
	Buttons  [3]int // A, B, C; active low with pull ups

	// MCP3008 lines. DI and DO may be tied.
	Clk  int
	Csz  int
	Di   int
	Do   int
	Tclk time.Duration // half the SPI clock period
}

// defaults keep clear of the I2C and UART pins.
var defaults = map[string]interface{}{
	"stimulus": 17,
	"led":      27,
	"btna":     22,
	"btnb":     23,
	"btnc":     24,
	"clk":      26,
	"csz":      6,
	"di":       13,
	"do":       19,
	"tclk":     "2500ns",
}

// LoadPinMap layers SPECTRO_* environment variables over the JSON pin file
// over the defaults. An empty path reads DefaultPinFile if it exists; a named
// file must exist.
func LoadPinMap(path string) (pm PinMap, err error) {
	def := dict.New(dict.WithMap(defaults))

	eget, err := env.New(env.WithEnvPrefix("SPECTRO_"))
	if err != nil {
		return pm, errors.Wrap(err, "failed to read environment")
	}

	// highest priority sources first - environment overrides the file
	sources := config.NewStack(eget)
	cfg := config.NewConfig(config.Decorate(sources, config.WithDefault(def)))

	jsondec := json.NewDecoder()
	if path != "" {
		f, err := file.New(path)
		if err != nil {
			return pm, errors.Wrapf(err, "failed to open pin file %q", path)
		}
		jget, err := blob.New(f, jsondec)
		if err != nil {
			return pm, errors.Wrapf(err, "failed to load pin file %q", path)
		}
		sources.Append(jget)
	} else {
		f, _ := file.New(DefaultPinFile)
		jget, err := blob.New(f, jsondec)
		if err == nil {
			sources.Append(jget)
		} else if _, ok := err.(*os.PathError); !ok {
			return pm, errors.Wrapf(err, "failed to load pin file %q", DefaultPinFile)
		}
	}

	// MustGet panics on values that do not convert
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("invalid pin map: %v", r)
		}
	}()

	cfg = cfg.GetConfig("", config.WithMust())

	pm = PinMap{
		Stimulus: cfg.MustGet("stimulus").Int(),
		LED:      cfg.MustGet("led").Int(),
		Buttons: [3]int{
			cfg.MustGet("btna").Int(),
			cfg.MustGet("btnb").Int(),
			cfg.MustGet("btnc").Int(),
		},
		Clk:  cfg.MustGet("clk").Int(),
		Csz:  cfg.MustGet("csz").Int(),
		Di:   cfg.MustGet("di").Int(),
		Do:   cfg.MustGet("do").Int(),
		Tclk: cfg.MustGet("tclk").Duration(),
	}

	return pm, pm.Validate()
}

// Validate checks that every line is a usable GPIO and that only DI and DO
// share a line.
func (pm PinMap) Validate() error {
	named := []struct {
		name string
		pin  int
	}{
		{"stimulus", pm.Stimulus},
		{"led", pm.LED},
		{"btna", pm.Buttons[0]},
		{"btnb", pm.Buttons[1]},
		{"btnc", pm.Buttons[2]},
		{"clk", pm.Clk},
		{"csz", pm.Csz},
		{"di", pm.Di},
		{"do", pm.Do},
	}

	owner := map[int]string{}
	for _, n := range named {
		if n.pin < 2 || n.pin > 27 {
			return errors.Errorf("%s: gpio %d out of range", n.name, n.pin)
		}
		if prev, ok := owner[n.pin]; ok && !(prev == "di" && n.name == "do") {
			return errors.Errorf("%s: gpio %d already used by %s", n.name, n.pin, prev)
		}
		owner[n.pin] = n.name
	}

	if pm.Tclk <= 0 {
		return errors.New("tclk must be positive")
	}

	return nil
}
