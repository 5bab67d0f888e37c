package graphic

import (
	"image/color"
	"unicode"

	"github.com/eteq/rp2040-spectro/config"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// GlyphSize is the width and height of a glyph cell.
const GlyphSize = config.GlyphSize

// Glyph is an 8x8 pattern stored column-major: byte i is column i, bit j of
// it is row j counted from the top.
type Glyph [GlyphSize]byte

// GlyphTable looks up label glyphs. It is a tinyfont.Fonter as well so that
// label widths and free text go through tinyfont.
type GlyphTable interface {
	tinyfont.Fonter
	Glyph(r rune) Glyph
}

// Font is the built-in 8x8 glyph table. It covers digits, upper case
// letters, the unit symbols and a little punctuation. Lower case letters
// without their own glyph fall back to upper case, anything else draws '?'.
var Font GlyphTable = newFont8x8(rows8x8)

type font8x8 struct {
	glyphs map[rune]Glyph
}

type glyph8x8 struct {
	r rune
	g Glyph
}

func newFont8x8(src map[rune][GlyphSize]byte) *font8x8 {
	f := &font8x8{glyphs: make(map[rune]Glyph, len(src))}
	for r, rows := range src {
		f.glyphs[r] = transpose(rows)
	}
	return f
}

// transpose turns a row-major pattern (bit 0 = leftmost pixel) into a
// column-major Glyph.
func transpose(rows [GlyphSize]byte) Glyph {
	var g Glyph
	for row, bits := range rows {
		for col := 0; col < GlyphSize; col++ {
			if bits&(1<<col) != 0 {
				g[col] |= 1 << row
			}
		}
	}
	return g
}

func (f *font8x8) Glyph(r rune) Glyph {
	if g, ok := f.glyphs[r]; ok {
		return g
	}
	if g, ok := f.glyphs[unicode.ToUpper(r)]; ok {
		return g
	}
	return f.glyphs['?']
}

func (f *font8x8) GetYAdvance() uint8 { return GlyphSize }

func (f *font8x8) GetGlyph(r rune) tinyfont.Glypher {
	return glyph8x8{r: r, g: f.Glyph(r)}
}

func (g glyph8x8) Draw(display drivers.Displayer, x, y int16, c color.RGBA) {
	for col := 0; col < GlyphSize; col++ {
		for row := 0; row < GlyphSize; row++ {
			if g.g[col]&(1<<row) == 0 {
				continue
			}
			display.SetPixel(x+int16(col), y-int16(GlyphSize-1-row), c)
		}
	}
}

func (g glyph8x8) Info() tinyfont.GlyphInfo {
	return tinyfont.GlyphInfo{
		Rune:     g.r,
		Width:    GlyphSize,
		Height:   GlyphSize,
		XAdvance: GlyphSize,
		XOffset:  0,
		YOffset:  -(GlyphSize - 1),
	}
}

// Row-major source patterns, bit 0 is the leftmost pixel.
var rows8x8 = map[rune][GlyphSize]byte{
	' ': {0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
	'.': {0x00, 0x00, 0x00, 0x00, 0x00, 0x0C, 0x0C, 0x00},
	'-': {0x00, 0x00, 0x00, 0x3F, 0x00, 0x00, 0x00, 0x00},
	':': {0x00, 0x0C, 0x0C, 0x00, 0x00, 0x0C, 0x0C, 0x00},
	'@': {0x3E, 0x63, 0x7B, 0x7B, 0x7B, 0x03, 0x1E, 0x00},
	'?': {0x1E, 0x33, 0x30, 0x18, 0x0C, 0x00, 0x0C, 0x00},
	'0': {0x3E, 0x63, 0x73, 0x7B, 0x6F, 0x67, 0x3E, 0x00},
	'1': {0x0C, 0x0E, 0x0C, 0x0C, 0x0C, 0x0C, 0x3F, 0x00},
	'2': {0x1E, 0x33, 0x30, 0x1C, 0x06, 0x33, 0x3F, 0x00},
	'3': {0x1E, 0x33, 0x30, 0x1C, 0x30, 0x33, 0x1E, 0x00},
	'4': {0x38, 0x3C, 0x36, 0x33, 0x7F, 0x30, 0x78, 0x00},
	'5': {0x3F, 0x03, 0x1F, 0x30, 0x30, 0x33, 0x1E, 0x00},
	'6': {0x1C, 0x06, 0x03, 0x1F, 0x33, 0x33, 0x1E, 0x00},
	'7': {0x3F, 0x33, 0x30, 0x18, 0x0C, 0x0C, 0x0C, 0x00},
	'8': {0x1E, 0x33, 0x33, 0x1E, 0x33, 0x33, 0x1E, 0x00},
	'9': {0x1E, 0x33, 0x33, 0x3E, 0x30, 0x18, 0x0E, 0x00},
	'A': {0x0C, 0x1E, 0x33, 0x33, 0x3F, 0x33, 0x33, 0x00},
	'B': {0x3F, 0x66, 0x66, 0x3E, 0x66, 0x66, 0x3F, 0x00},
	'C': {0x3C, 0x66, 0x03, 0x03, 0x03, 0x66, 0x3C, 0x00},
	'D': {0x1F, 0x36, 0x66, 0x66, 0x66, 0x36, 0x1F, 0x00},
	'E': {0x7F, 0x46, 0x16, 0x1E, 0x16, 0x46, 0x7F, 0x00},
	'F': {0x7F, 0x46, 0x16, 0x1E, 0x16, 0x06, 0x0F, 0x00},
	'G': {0x3C, 0x66, 0x03, 0x03, 0x73, 0x66, 0x7C, 0x00},
	'H': {0x33, 0x33, 0x33, 0x3F, 0x33, 0x33, 0x33, 0x00},
	'I': {0x1E, 0x0C, 0x0C, 0x0C, 0x0C, 0x0C, 0x1E, 0x00},
	'J': {0x78, 0x30, 0x30, 0x30, 0x33, 0x33, 0x1E, 0x00},
	'K': {0x67, 0x66, 0x36, 0x1E, 0x36, 0x66, 0x67, 0x00},
	'L': {0x0F, 0x06, 0x06, 0x06, 0x46, 0x66, 0x7F, 0x00},
	'M': {0x63, 0x77, 0x7F, 0x7F, 0x6B, 0x63, 0x63, 0x00},
	'N': {0x63, 0x67, 0x6F, 0x7B, 0x73, 0x63, 0x63, 0x00},
	'O': {0x1C, 0x36, 0x63, 0x63, 0x63, 0x36, 0x1C, 0x00},
	'P': {0x3F, 0x66, 0x66, 0x3E, 0x06, 0x06, 0x0F, 0x00},
	'Q': {0x1E, 0x33, 0x33, 0x33, 0x3B, 0x1E, 0x38, 0x00},
	'R': {0x3F, 0x66, 0x66, 0x3E, 0x36, 0x66, 0x67, 0x00},
	'S': {0x1E, 0x33, 0x07, 0x0E, 0x38, 0x33, 0x1E, 0x00},
	'T': {0x3F, 0x2D, 0x0C, 0x0C, 0x0C, 0x0C, 0x1E, 0x00},
	'U': {0x33, 0x33, 0x33, 0x33, 0x33, 0x33, 0x3F, 0x00},
	'V': {0x33, 0x33, 0x33, 0x33, 0x33, 0x1E, 0x0C, 0x00},
	'W': {0x63, 0x63, 0x63, 0x6B, 0x7F, 0x77, 0x63, 0x00},
	'X': {0x63, 0x63, 0x36, 0x1C, 0x1C, 0x36, 0x63, 0x00},
	'Y': {0x33, 0x33, 0x33, 0x1E, 0x0C, 0x0C, 0x1E, 0x00},
	'Z': {0x7F, 0x63, 0x31, 0x18, 0x4C, 0x66, 0x7F, 0x00},
	'k': {0x07, 0x06, 0x66, 0x36, 0x1E, 0x36, 0x67, 0x00},
	'm': {0x00, 0x00, 0x33, 0x7F, 0x7F, 0x6B, 0x63, 0x00},
	's': {0x00, 0x00, 0x3E, 0x03, 0x1E, 0x30, 0x1F, 0x00},
	'u': {0x00, 0x00, 0x33, 0x33, 0x33, 0x33, 0x6E, 0x00},
	'z': {0x00, 0x00, 0x3F, 0x19, 0x0C, 0x26, 0x3F, 0x00},
	'µ': {0x00, 0x00, 0x33, 0x33, 0x33, 0x33, 0x6F, 0x03},
}
