package graphic

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testRate = 500000.0
	testSize = 8192
)

func newTestRenderer() *Renderer {
	return NewRenderer(RendererConfig{SampleRate: testRate, SampleSize: testSize})
}

// traceRows returns the lit rows of column x below the label band.
func traceRows(b *Bitmap, x int) []int {
	var rows []int
	for y := 0; y <= LabelTop-GlyphSize; y++ {
		if b.At(x, y) {
			rows = append(rows, y)
		}
	}
	return rows
}

func TestRenderConstantTime(t *testing.T) {
	r := newTestRenderer()

	samples := make([]byte, testSize)
	for i := range samples {
		samples[i] = 128
	}

	require.NoError(t, r.Time(samples, 1))

	for x := 0; x < Width; x++ {
		assert.Equal(t, []int{32}, traceRows(r.Bitmap(), x), "column %d", x)
	}

	want := NewBitmap()
	DrawLabel(want, Font, "260µs")
	for x := 0; x < Width; x++ {
		for y := LabelTop - GlyphSize + 1; y <= LabelTop; y++ {
			assert.Equal(t, want.At(x, y), r.Bitmap().At(x, y))
		}
	}
}

func TestRenderClearsBetweenFrames(t *testing.T) {
	r := newTestRenderer()

	high := make([]byte, testSize)
	for i := range high {
		high[i] = 200
	}
	low := make([]byte, testSize)

	require.NoError(t, r.Time(high, 2))
	require.NoError(t, r.Time(low, 2))

	for x := 0; x < Width; x++ {
		assert.Equal(t, []int{0}, traceRows(r.Bitmap(), x))
	}
}

func TestRenderSpectrum(t *testing.T) {
	r := newTestRenderer()

	bins := make([]byte, testSize/2+1)
	bins[0] = 255

	require.NoError(t, r.Spectrum(bins, 1))
	assert.Equal(t, []int{Height - 1}, columnRows(r.Bitmap(), 0))

	err := r.Spectrum(bins, 64)
	assert.True(t, errors.Is(err, ErrOverrun))
}

func TestRenderZoom(t *testing.T) {
	r := newTestRenderer()

	bins := make([]byte, testSize/2+1)
	bins[1000] = 255

	require.NoError(t, r.Zoom(bins, 1000))

	// the peak sits in the middle column
	assert.Equal(t, []int{Height - 1}, columnRows(r.Bitmap(), Width/2))

	want := NewBitmap()
	DrawLabel(want, Font, PeakLabel(1000*testRate/testSize))
	assert.Equal(t, want.At(Width-1, LabelTop-1), r.Bitmap().At(Width-1, LabelTop-1))
}

func TestRenderZoomLabelsWithFrequency(t *testing.T) {
	var asked []int
	r := NewRenderer(RendererConfig{
		SampleRate: testRate,
		SampleSize: testSize,
		Frequency: func(bin int) float64 {
			asked = append(asked, bin)
			return float64(bin) * 10
		},
	})

	bins := make([]byte, testSize/2+1)
	bins[1000] = 255
	require.NoError(t, r.Zoom(bins, 1000))

	assert.Equal(t, []int{1000}, asked)

	const label = "@10kHz"
	want := NewBitmap()
	DrawLabel(want, Font, label)
	for x := Width - len(label)*GlyphSize; x < Width; x++ {
		for y := LabelTop - GlyphSize + 1; y <= LabelTop; y++ {
			assert.Equal(t, want.At(x, y), r.Bitmap().At(x, y), "x %d y %d", x, y)
		}
	}
}

func TestSplash(t *testing.T) {
	r := newTestRenderer()
	r.Splash("SPECTRO", "A:RUN")

	assert.NotZero(t, litCells(r.Bitmap()))
	for y := 0; y < Height-2*(GlyphSize+4)-1; y++ {
		assert.Empty(t, rowCells(r.Bitmap(), y), "row %d", y)
	}
}
