//go:build linux

package rpi

import (
	"sync"

	"github.com/eteq/rp2040-spectro/control"
	"github.com/pkg/errors"
	"github.com/warthog618/gpio"
	"github.com/warthog618/gpio/spi/mcp3w0c"
)

var (
	memMu   sync.Mutex
	memRefs int
)

// openGPIO maps the GPIO registers once for every user in the process.
func openGPIO() error {
	memMu.Lock()
	defer memMu.Unlock()

	if memRefs == 0 {
		if err := gpio.Open(); err != nil {
			return errors.Wrap(err, "failed to open gpio")
		}
	}
	memRefs++

	return nil
}

func closeGPIO() error {
	memMu.Lock()
	defer memMu.Unlock()

	memRefs--
	if memRefs > 0 {
		return nil
	}

	return gpio.Close()
}

// Board holds the output lines and the buttons.
type Board struct {
	Stimulus *gpio.Pin
	LED      *gpio.Pin

	buttons [3]*gpio.Pin
}

// Open claims the pins of pm. Outputs start low.
func Open(pm PinMap) (*Board, error) {
	if err := openGPIO(); err != nil {
		return nil, err
	}

	b := &Board{
		Stimulus: gpio.NewPin(pm.Stimulus),
		LED:      gpio.NewPin(pm.LED),
	}

	for _, out := range []*gpio.Pin{b.Stimulus, b.LED} {
		out.Low()
		out.Output()
	}

	for i, n := range pm.Buttons {
		pin := gpio.NewPin(n)
		pin.Input()
		pin.PullUp()
		b.buttons[i] = pin
	}

	return b, nil
}

// WatchButtons calls fn on every button edge. Buttons pull their line low
// while pressed.
func (b *Board) WatchButtons(fn func(control.Button, control.Edge)) error {
	for i, pin := range b.buttons {
		id := control.Button(i)

		err := pin.Watch(gpio.EdgeBoth, func(pin *gpio.Pin) {
			if pin.Read() == gpio.Low {
				fn(id, control.Press)
			} else {
				fn(id, control.Release)
			}
		})
		if err != nil {
			b.unwatch()
			return errors.Wrapf(err, "failed to watch button %v", id)
		}
	}

	return nil
}

func (b *Board) unwatch() {
	for _, pin := range b.buttons {
		pin.Unwatch()
	}
}

// Close releases the buttons and leaves the outputs low.
func (b *Board) Close() error {
	b.unwatch()
	b.Stimulus.Low()
	b.LED.Low()

	return closeGPIO()
}

// ADC is an MCP3008 on bit-banged SPI.
type ADC struct {
	adc *mcp3w0c.MCP3w0c
}

func OpenADC(pm PinMap) (*ADC, error) {
	if err := openGPIO(); err != nil {
		return nil, err
	}

	return &ADC{adc: mcp3w0c.NewMCP3008(pm.Tclk, pm.Clk, pm.Csz, pm.Di, pm.Do)}, nil
}

// Read returns the 10-bit conversion of channel ch.
func (a *ADC) Read(ch int) uint16 {
	return a.adc.Read(ch)
}

func (a *ADC) Close() error {
	a.adc.Close()
	return closeGPIO()
}
