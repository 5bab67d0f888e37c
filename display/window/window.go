//go:build cgo

// Package window shows the emulated panel in a desktop window. Keys A, B
// and C are the three buttons, with real press and release edges.
package window

import (
	"context"
	"image"
	"image/color"

	"github.com/eteq/rp2040-spectro/control"
	"github.com/eteq/rp2040-spectro/display"
	"github.com/eteq/rp2040-spectro/graphic"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Config wires a window.
type Config struct {
	Emulator *display.Emulator
	LED      *display.Indicator // nil hides the LED
	Buttons  display.ButtonFunc
	Title    string
	Scale    int // window pixels per panel pixel
}

// statusRows is the strip under the panel that holds the LED.
const statusRows = 6

var (
	lit   = color.RGBA{0x9f, 0xe8, 0xff, 0xff}
	unlit = color.RGBA{0x05, 0x08, 0x10, 0xff}
	red   = color.RGBA{0xff, 0x30, 0x20, 0xff}
	dark  = color.RGBA{0x30, 0x08, 0x08, 0xff}
)

var keys = [...]ebiten.Key{ebiten.KeyA, ebiten.KeyB, ebiten.KeyC}

// Run blocks until the window closes, the user presses Escape or Q, or ctx
// is done. It must be called from the main goroutine.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Scale <= 0 {
		cfg.Scale = 4
	}
	if cfg.Title == "" {
		cfg.Title = "spectro"
	}
	if cfg.Buttons == nil {
		cfg.Buttons = func(control.Button, control.Edge) {}
	}

	g := &panelGame{
		ctx:    ctx,
		cfg:    cfg,
		bitmap: graphic.NewBitmap(),
		img:    image.NewRGBA(image.Rect(0, 0, graphic.Width, graphic.Height+statusRows)),
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(graphic.Width*cfg.Scale, (graphic.Height+statusRows)*cfg.Scale)
	ebiten.SetTPS(60)

	return ebiten.RunGame(g)
}

type panelGame struct {
	ctx    context.Context
	cfg    Config
	bitmap *graphic.Bitmap
	img    *image.RGBA
	frame  *ebiten.Image
}

func (g *panelGame) Update() error {
	select {
	case <-g.ctx.Done():
		return ebiten.Termination
	default:
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	for i, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			g.cfg.Buttons(control.Button(i), control.Press)
		}
		if inpututil.IsKeyJustReleased(k) {
			g.cfg.Buttons(control.Button(i), control.Release)
		}
	}

	return nil
}

func (g *panelGame) Draw(screen *ebiten.Image) {
	if g.frame == nil {
		g.frame = ebiten.NewImage(graphic.Width, graphic.Height+statusRows)
	}

	g.cfg.Emulator.Snapshot(g.bitmap)
	on := g.cfg.Emulator.On()

	for y := 0; y < graphic.Height; y++ {
		for x := 0; x < graphic.Width; x++ {
			c := unlit
			if on && g.bitmap.At(x, graphic.Height-1-y) {
				c = lit
			}
			g.img.SetRGBA(x, y, c)
		}
	}

	for y := graphic.Height; y < graphic.Height+statusRows; y++ {
		for x := 0; x < graphic.Width; x++ {
			g.img.SetRGBA(x, y, color.RGBA{A: 0xff})
		}
	}

	if g.cfg.LED != nil {
		c := dark
		if g.cfg.LED.Lit() {
			c = red
		}
		for y := graphic.Height + 1; y < graphic.Height+statusRows-1; y++ {
			for x := 1; x < 5; x++ {
				g.img.SetRGBA(x, y, c)
			}
		}
	}

	g.frame.WritePixels(g.img.Pix)
	screen.DrawImage(g.frame, nil)
}

func (g *panelGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return graphic.Width, graphic.Height + statusRows
}
