package display

import (
	"sync"

	"github.com/eteq/rp2040-spectro/graphic"
	"github.com/pkg/errors"
)

// ErrNoDevice is what an emulated bus reports for a write to an address with
// nothing on it.
var ErrNoDevice = errors.New("no device at address")

// commands followed by one argument byte
var twoByteCommands = map[byte]bool{
	cmdContrast:     true,
	cmdMultiplex:    true,
	cmdOffset:       true,
	cmdClockDiv:     true,
	cmdPrecharge:    true,
	cmdVcomDeselect: true,
	cmdStartLine:    true,
	0xDA:            true,
	0xAD:            true,
}

// Emulator is a Transport that decodes the controller protocol into a
// bitmap. It is safe to read from another goroutine while being written.
type Emulator struct {
	addr uint16

	mu     sync.Mutex
	on     bool
	page   int
	column int
	ram    [graphic.PageCount][graphic.Height]byte
	frames uint64
}

var _ Transport = (*Emulator)(nil)

func NewEmulator(addr uint16) *Emulator {
	return &Emulator{addr: addr}
}

func (e *Emulator) Write(addr uint16, control byte, payload []byte) error {
	if addr != e.addr {
		return ErrNoDevice
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	switch control {
	case ControlCommand:
		e.command(payload)
	case ControlData:
		e.data(payload)
	default:
		return errors.Errorf("bad control byte 0x%02x", control)
	}

	return nil
}

func (e *Emulator) command(cmds []byte) {
	for i := 0; i < len(cmds); i++ {
		c := cmds[i]

		switch {
		case twoByteCommands[c]:
			i++
		case c == cmdDisplayOn:
			e.on = true
		case c == cmdDisplayOff:
			e.on = false
		case c&0xF0 == cmdPage:
			e.page = int(c & 0x0F)
		case c&0xF0 == cmdColumnLow:
			e.column = e.column&0xF0 | int(c&0x0F)
		case c&0xF8 == cmdColumnHigh:
			e.column = e.column&0x0F | int(c&0x07)<<4
		}
	}
}

func (e *Emulator) data(d []byte) {
	for _, v := range d {
		if e.column < graphic.Height {
			e.ram[e.page][e.column] = v
		}
		e.column++
	}

	if e.page == graphic.PageCount-1 && e.column >= graphic.Height {
		e.frames++
	}
}

// On reports whether the panel has been switched on.
func (e *Emulator) On() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.on
}

// Frames counts completed writes of the last page.
func (e *Emulator) Frames() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frames
}

// Snapshot copies the panel memory into b.
func (e *Emulator) Snapshot(b *graphic.Bitmap) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for p := range e.ram {
		b.SetPage(p, e.ram[p][:])
	}
}
