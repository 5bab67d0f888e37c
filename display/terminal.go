package display

import (
	"context"
	"sync"
	"time"

	"github.com/eteq/rp2040-spectro/control"
	"github.com/eteq/rp2040-spectro/graphic"
	"github.com/nsf/termbox-go"
	"github.com/pkg/errors"
)

// ButtonFunc receives emulated button edges.
type ButtonFunc func(control.Button, control.Edge)

// clickTime is how long a lower case key keeps its button down.
const clickTime = 50 * time.Millisecond

// TerminalRows is the number of text rows the panel takes, two bitmap rows
// per cell.
const TerminalRows = graphic.Height / 2

// TerminalConfig wires a Terminal.
type TerminalConfig struct {
	Emulator *Emulator
	LED      *Indicator // nil hides the LED
	Buttons  ButtonFunc
	// Hold is how long an upper case key keeps its button down.
	Hold time.Duration
	// Refresh is the redraw period.
	Refresh time.Duration
	// Status returns a line to print under the panel. Optional.
	Status func() string
}

// Terminal draws an emulated panel with termbox and turns keys into button
// edges: a, b and c click their button, A, B and C hold it, q quits.
type Terminal struct {
	cfg    TerminalConfig
	bitmap *graphic.Bitmap
}

func NewTerminal(cfg TerminalConfig) *Terminal {
	if cfg.Refresh <= 0 {
		cfg.Refresh = 33 * time.Millisecond
	}
	if cfg.Hold <= 0 {
		cfg.Hold = time.Second
	}
	if cfg.Buttons == nil {
		cfg.Buttons = func(control.Button, control.Edge) {}
	}

	return &Terminal{cfg: cfg, bitmap: graphic.NewBitmap()}
}

// Run owns the terminal until ctx is done or the user quits. Quitting returns
// nil.
func (t *Terminal) Run(ctx context.Context) error {
	restore, err := normalizeTerminal()
	if err != nil {
		return errors.Wrap(err, "failed to prepare terminal")
	}
	defer restore()

	if err := termbox.Init(); err != nil {
		return errors.Wrap(err, "failed to init termbox")
	}
	defer termbox.Close()

	termbox.SetInputMode(termbox.InputEsc)

	events := make(chan termbox.Event)
	done := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			ev := termbox.PollEvent()
			if ev.Type == termbox.EventInterrupt {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	defer func() {
		close(done)
		termbox.Interrupt()
		wg.Wait()
	}()

	ticker := time.NewTicker(t.cfg.Refresh)
	defer ticker.Stop()

	for {
		if err := t.draw(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil

		case <-ticker.C:

		case ev := <-events:
			switch ev.Type {
			case termbox.EventKey:
				if t.key(ev) {
					return nil
				}
			case termbox.EventError:
				return errors.Wrap(ev.Err, "terminal error")
			}
		}
	}
}

// key handles one key event and reports whether the user asked to quit.
func (t *Terminal) key(ev termbox.Event) bool {
	switch ev.Key {
	case termbox.KeyEsc, termbox.KeyCtrlC:
		return true
	}

	if ev.Ch == 'q' || ev.Ch == 'Q' {
		return true
	}

	if id, held, ok := keyButton(ev.Ch); ok {
		t.tap(id, held)
	}

	return false
}

// keyButton maps a rune onto a button. Upper case means held.
func keyButton(r rune) (control.Button, bool, bool) {
	switch r {
	case 'a':
		return control.ButtonA, false, true
	case 'b':
		return control.ButtonB, false, true
	case 'c':
		return control.ButtonC, false, true
	case 'A':
		return control.ButtonA, true, true
	case 'B':
		return control.ButtonB, true, true
	case 'C':
		return control.ButtonC, true, true
	}
	return 0, false, false
}

// tap presses id now and releases it later.
func (t *Terminal) tap(id control.Button, held bool) {
	d := clickTime
	if held {
		d = t.cfg.Hold + 100*time.Millisecond
	}

	t.cfg.Buttons(id, control.Press)
	time.AfterFunc(d, func() { t.cfg.Buttons(id, control.Release) })
}

func (t *Terminal) draw() error {
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)

	t.cfg.Emulator.Snapshot(t.bitmap)

	fg := termbox.ColorCyan
	if !t.cfg.Emulator.On() {
		fg = termbox.ColorBlack | termbox.AttrBold
	}

	// frame
	for x := 0; x <= graphic.Width+1; x++ {
		termbox.SetCell(x, 0, '─', termbox.ColorDefault, termbox.ColorDefault)
		termbox.SetCell(x, TerminalRows+1, '─', termbox.ColorDefault, termbox.ColorDefault)
	}
	for y := 1; y <= TerminalRows; y++ {
		termbox.SetCell(0, y, '│', termbox.ColorDefault, termbox.ColorDefault)
		termbox.SetCell(graphic.Width+1, y, '│', termbox.ColorDefault, termbox.ColorDefault)
	}

	for y, row := range rasterize(t.bitmap) {
		for x, ch := range row {
			termbox.SetCell(x+1, y+1, ch, fg, termbox.ColorDefault)
		}
	}

	line := TerminalRows + 2
	x := 0
	if t.cfg.LED != nil {
		led := '○'
		if t.cfg.LED.Lit() {
			led = '●'
		}
		termbox.SetCell(0, line, led, termbox.ColorRed, termbox.ColorDefault)
		x = 2
	}

	status := "a/b/c click  A/B/C hold  q quit"
	if t.cfg.Status != nil {
		status = t.cfg.Status() + "  " + status
	}
	for _, r := range status {
		termbox.SetCell(x, line, r, termbox.ColorDefault, termbox.ColorDefault)
		x++
	}

	return termbox.Flush()
}

// rasterize folds bitmap rows pairwise into half block cells, top row first.
func rasterize(b *graphic.Bitmap) [TerminalRows][graphic.Width]rune {
	var out [TerminalRows][graphic.Width]rune

	for r := 0; r < TerminalRows; r++ {
		top := graphic.Height - 1 - 2*r
		for x := 0; x < graphic.Width; x++ {
			out[r][x] = halfBlock(b.At(x, top), b.At(x, top-1))
		}
	}

	return out
}

func halfBlock(top, bottom bool) rune {
	switch {
	case top && bottom:
		return '█'
	case top:
		return '▀'
	case bottom:
		return '▄'
	}
	return ' '
}
