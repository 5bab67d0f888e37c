// Package graphic holds the panel bitmap and draws traces and labels into it.
//
// Bitmap rows count up from the bottom edge of the panel, so a sample value
// maps straight onto a row index. Glyph offsets name the top-left cell.
package graphic

import (
	"image/color"

	"github.com/eteq/rp2040-spectro/config"
	"tinygo.org/x/drivers"
)

const (
	// Width is the number of bitmap columns.
	Width = config.Width
	// Height is the number of bitmap rows.
	Height = config.Height
)

// Bitmap is the addressable lit/unlit grid mirrored onto the panel. It also
// satisfies drivers.Displayer so tinyfont can write into it.
type Bitmap struct {
	cells [Height][Width]bool
}

var _ drivers.Displayer = (*Bitmap)(nil)

// NewBitmap returns a cleared bitmap.
func NewBitmap() *Bitmap {
	return &Bitmap{}
}

// Clear unlights every cell.
func (b *Bitmap) Clear() {
	b.cells = [Height][Width]bool{}
}

// Set lights or clears the cell at column x, row y. Cells outside the grid
// are ignored.
func (b *Bitmap) Set(x, y int, on bool) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return
	}
	b.cells[y][x] = on
}

// At reports whether the cell at column x, row y is lit.
func (b *Bitmap) At(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	return b.cells[y][x]
}

// Equal reports whether both bitmaps light the same cells.
func (b *Bitmap) Equal(o *Bitmap) bool {
	return b.cells == o.cells
}

// BlitGlyph copies g into the grid with its top-left cell at column x, row y.
// Unlit glyph cells overwrite whatever was there.
func (b *Bitmap) BlitGlyph(g Glyph, x, y int) {
	for col := 0; col < GlyphSize; col++ {
		bits := g[col]
		for row := 0; row < GlyphSize; row++ {
			b.Set(x+col, y-row, bits&(1<<row) != 0)
		}
	}
}

// Size reports the bitmap size for drivers.Displayer.
func (b *Bitmap) Size() (x, y int16) {
	return Width, Height
}

// SetPixel implements drivers.Displayer. Screen coordinates run top-down,
// any non-black color lights the cell.
func (b *Bitmap) SetPixel(x, y int16, c color.RGBA) {
	b.Set(int(x), Height-1-int(y), c.R|c.G|c.B != 0)
}

// Display implements drivers.Displayer. Flushing is done by the panel.
func (b *Bitmap) Display() error {
	return nil
}
