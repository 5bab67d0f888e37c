//go:build linux

package main

import (
	"github.com/eteq/rp2040-spectro/board/rpi"
	"github.com/eteq/rp2040-spectro/input"
)

type rpiBoard struct {
	*rpi.Board
}

func openBoard(pinFile string) (board, error) {
	pm, err := rpi.LoadPinMap(pinFile)
	if err != nil {
		return nil, err
	}

	b, err := rpi.Open(pm)
	if err != nil {
		return nil, err
	}

	return rpiBoard{b}, nil
}

func (b rpiBoard) Pins() (stimulus, led input.Pin) {
	return b.Stimulus, b.LED
}
