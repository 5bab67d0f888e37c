package display

import (
	"github.com/eteq/rp2040-spectro/graphic"
)

// Controller commands. The panel is an SH1107 driving a 64x128 matrix mounted
// sideways, so one controller page is eight bitmap columns over the bitmap's
// full height.
const (
	cmdDisplayOff   = 0xAE
	cmdDisplayOn    = 0xAF
	cmdContrast     = 0x81
	cmdPageMode     = 0x20
	cmdSegRemap     = 0xA0
	cmdComScan      = 0xC0
	cmdMultiplex    = 0xA8
	cmdOffset       = 0xD3
	cmdClockDiv     = 0xD5
	cmdPrecharge    = 0xD9
	cmdVcomDeselect = 0xDB
	cmdStartLine    = 0xDC
	cmdResume       = 0xA4
	cmdNormal       = 0xA6
	cmdPage         = 0xB0
	cmdColumnLow    = 0x00
	cmdColumnHigh   = 0x10
)

var initSequence = []byte{
	cmdDisplayOff,
	cmdStartLine, 0x00,
	cmdContrast, 0x4F,
	cmdPageMode,
	cmdSegRemap,
	cmdComScan,
	cmdMultiplex, 0x3F,
	cmdOffset, 0x60,
	cmdClockDiv, 0x51,
	cmdPrecharge, 0x22,
	cmdVcomDeselect, 0x35,
	cmdResume,
	cmdNormal,
	cmdDisplayOn,
}

// Panel is a graphic.PageWriter over a Transport.
type Panel struct {
	t    Transport
	addr uint16
	cmd  [3]byte
}

var _ graphic.PageWriter = (*Panel)(nil)

func NewPanel(t Transport, addr uint16) *Panel {
	return &Panel{t: t, addr: addr}
}

// Init sends the power-up command sequence.
func (p *Panel) Init() error {
	if err := p.t.Write(p.addr, ControlCommand, initSequence); err != nil {
		return &TransportError{Page: -1, Err: err}
	}
	return nil
}

// WritePage selects page n at column 0 and writes data into it.
func (p *Panel) WritePage(n int, data []byte) error {
	p.cmd = [3]byte{cmdPage | byte(n), cmdColumnLow, cmdColumnHigh}

	if err := p.t.Write(p.addr, ControlCommand, p.cmd[:]); err != nil {
		return &TransportError{Page: n, Err: err}
	}
	if err := p.t.Write(p.addr, ControlData, data); err != nil {
		return &TransportError{Page: n, Err: err}
	}

	return nil
}

// Show serializes b onto the panel. A failed page abandons the rest of the
// frame.
func (p *Panel) Show(b *graphic.Bitmap) error {
	return b.Serialize(p)
}
