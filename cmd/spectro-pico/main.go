//go:build tinygo && rp2040

// Firmware for an RP2040 feather with a 128x64 OLED wing. The wing buttons
// are A, B and C; the stimulus is raised on D10 for every capture.
package main

import (
	"context"
	"log"
	"machine"
	"time"

	spectro "github.com/eteq/rp2040-spectro"
	"github.com/eteq/rp2040-spectro/config"
	"github.com/eteq/rp2040-spectro/control"
	"github.com/eteq/rp2040-spectro/display"
	"github.com/eteq/rp2040-spectro/input/rp2040"
)

var (
	stimulusPin = machine.D10
	ledPin      = machine.LED
	buttonPins  = [...]machine.Pin{machine.D9, machine.D6, machine.D5}
)

func main() {
	log.SetFlags(0)

	// give a serial monitor time to attach
	time.Sleep(time.Second)

	for _, pin := range []machine.Pin{stimulusPin, ledPin} {
		pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
		pin.Low()
	}

	err := machine.I2C0.Configure(machine.I2CConfig{Frequency: 400 * machine.KHz})
	chk(err, "failed to configure i2c")

	s, err := spectro.New(spectro.Config{
		Params:    config.NewZeroConfig(),
		Source:    rp2040.New(),
		Stimulus:  stimulusPin,
		LED:       ledPin,
		Transport: display.NewI2CTransport(machine.I2C0),
	})
	chk(err, "failed to set up")

	buttons := s.Buttons()

	for i, pin := range buttonPins {
		id := control.Button(i)

		pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})

		err := pin.SetInterrupt(machine.PinToggle, func(p machine.Pin) {
			if p.Get() {
				buttons.Interrupt(id, control.Release)
			} else {
				buttons.Interrupt(id, control.Press)
			}
		})
		chk(err, "failed to watch button "+id.String())
	}

	chk(s.Run(context.Background()), "spectro stopped")
}

func chk(err error, wrap string) {
	if err == nil {
		return
	}

	// nothing to return to; keep reporting
	for {
		log.Println(wrap+": ", err)
		time.Sleep(5 * time.Second)
	}
}
