//go:build !linux

package main

import (
	"runtime"

	"github.com/pkg/errors"
)

func openBoard(string) (board, error) {
	return nil, errors.Errorf("gpio boards are not supported on %s", runtime.GOOS)
}
