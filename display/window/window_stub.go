//go:build !cgo

package window

import (
	"context"

	"github.com/eteq/rp2040-spectro/display"
	"github.com/pkg/errors"
)

type Config struct {
	Emulator *display.Emulator
	LED      *display.Indicator
	Buttons  display.ButtonFunc
	Title    string
	Scale    int
}

func Run(context.Context, Config) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
