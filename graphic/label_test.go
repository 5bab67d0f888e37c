package graphic

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tinygo.org/x/tinyfont"
)

func TestTimeLabel(t *testing.T) {
	cases := []struct {
		rate    float64
		spacing int
		want    string
	}{
		{500000, 1, "260µs"},
		{500000, 2, "510µs"},
		{500000, 4, "1.0ms"},
		{500000, 64, "16ms"},
		{1000, 8, "1.0s"},
		{1000, 128, "16s"},
		{1e9, 1, "0.1µs"},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, TimeLabel(c.rate, c.spacing), "rate %v spacing %d", c.rate, c.spacing)
	}
}

func TestSpanLabel(t *testing.T) {
	assert.Equal(t, "7.8kHz", SpanLabel(500000, 8192, 1))
	assert.Equal(t, "250kHz", SpanLabel(500000, 8192, 32))
	assert.Equal(t, "130Hz", SpanLabel(8000, 8192, 1))
}

func TestFormatValueTwoSignificantDigits(t *testing.T) {
	cases := map[float64]string{
		2.5:    "2.5",
		10:     "10",
		16.4:   "16",
		256:    "260",
		512:    "510",
		1234:   "1200",
		98765:  "99000",
		250000: "250000",
	}

	for v, want := range cases {
		assert.Equal(t, want, formatValue(v), "value %v", v)
	}
}

func TestPeakLabel(t *testing.T) {
	assert.Equal(t, "@1.5kHz", PeakLabel(1500))
	assert.Equal(t, "@61Hz", PeakLabel(61.04))
}

func TestDrawLabelRightAligned(t *testing.T) {
	b := NewBitmap()
	DrawLabel(b, Font, "256µs")

	want := NewBitmap()
	for i, r := range []rune("256µs") {
		want.BlitGlyph(Font.Glyph(r), Width-5*GlyphSize+i*GlyphSize, LabelTop)
	}

	assert.True(t, b.Equal(want))

	for y := 0; y < Height-GlyphSize; y++ {
		assert.Empty(t, rowCells(b, y), "row %d", y)
	}
}

func TestDrawLabelDropsOverflow(t *testing.T) {
	text := strings.Repeat("8", Width/GlyphSize+3)

	_, outbox := tinyfont.LineWidth(Font, text)
	require.Greater(t, int(outbox), Width)

	b := NewBitmap()
	DrawLabel(b, Font, text)

	want := NewBitmap()
	for x := 0; x+GlyphSize <= Width; x += GlyphSize {
		want.BlitGlyph(Font.Glyph('8'), x, LabelTop)
	}

	assert.True(t, b.Equal(want))
}

func rowCells(b *Bitmap, y int) []int {
	var xs []int
	for x := 0; x < Width; x++ {
		if b.At(x, y) {
			xs = append(xs, x)
		}
	}
	return xs
}
