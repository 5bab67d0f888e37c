package main

import (
	"github.com/eteq/rp2040-spectro/control"
	"github.com/eteq/rp2040-spectro/input"
)

// board is the real stimulus line, LED and buttons.
type board interface {
	Pins() (stimulus, led input.Pin)
	WatchButtons(func(control.Button, control.Edge)) error
	Close() error
}

// pins drives several outputs as one.
type pins []input.Pin

func (p pins) High() {
	for _, pin := range p {
		pin.High()
	}
}

func (p pins) Low() {
	for _, pin := range p {
		pin.Low()
	}
}
