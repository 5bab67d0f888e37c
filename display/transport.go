// Package display pushes the bitmap to a page-addressed monochrome panel and
// provides emulated panels for hosts without one.
package display

import (
	"fmt"

	"github.com/pkg/errors"
	"tinygo.org/x/drivers"
)

// Control bytes that precede every bus write.
const (
	ControlCommand byte = 0x00
	ControlData    byte = 0x40
)

// Transport moves one control byte and its payload to the panel at addr.
type Transport interface {
	Write(addr uint16, control byte, payload []byte) error
}

// TransportError is a failed page write. Page is -1 for initialization
// commands.
type TransportError struct {
	Page int
	Err  error
}

func (e *TransportError) Error() string {
	if e.Page < 0 {
		return fmt.Sprintf("panel init: %v", e.Err)
	}
	return fmt.Sprintf("page %d: %v", e.Page, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Cause lets errors.Cause see the bus error.
func (e *TransportError) Cause() error {
	return e.Err
}

// I2CTransport writes to the panel over an I2C bus.
type I2CTransport struct {
	bus drivers.I2C
	buf []byte
}

func NewI2CTransport(bus drivers.I2C) *I2CTransport {
	return &I2CTransport{bus: bus}
}

// Write sends control and payload in a single transaction.
func (t *I2CTransport) Write(addr uint16, control byte, payload []byte) error {
	t.buf = append(t.buf[:0], control)
	t.buf = append(t.buf, payload...)

	if err := t.bus.Tx(addr, t.buf, nil); err != nil {
		return errors.Wrapf(err, "i2c write to 0x%02x", addr)
	}
	return nil
}
