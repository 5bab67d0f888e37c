package graphic

import (
	"math"
	"strconv"

	"tinygo.org/x/tinyfont"
)

// LabelTop is the row holding the top edge of the label glyphs.
const LabelTop = Height - 1

// TimeLabel formats the time one screen width covers when spacing samples
// fold into each column.
func TimeLabel(sampleRate float64, spacing int) string {
	d := Width / sampleRate * float64(spacing)

	switch {
	case d < 1e-3:
		return formatValue(d*1e6) + "µs"
	case d < 1:
		return formatValue(d*1e3) + "ms"
	}

	return formatValue(d) + "s"
}

// SpanLabel formats the bandwidth one screen width covers when spacing bins
// of a sampleSize point transform fold into each column.
func SpanLabel(sampleRate float64, sampleSize, spacing int) string {
	return formatFrequency((sampleRate / 2) * float64(spacing*Width) / float64(sampleSize/2))
}

// PeakLabel formats the frequency of a located peak.
func PeakLabel(freq float64) string {
	return "@" + formatFrequency(freq)
}

func formatFrequency(f float64) string {
	if f < 1000 {
		return formatValue(f) + "Hz"
	}

	return formatValue(f/1000) + "kHz"
}

// formatValue keeps one decimal below 10 and two significant digits
// otherwise.
func formatValue(v float64) string {
	if v < 10 {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}

	digits := math.Floor(math.Log10(v)) + 1
	step := math.Pow(10, digits-2)

	return strconv.FormatFloat(math.Round(v/step)*step, 'f', 0, 64)
}

// DrawLabel right-aligns text against the right edge with its top at
// LabelTop. Glyphs that would cross the right edge are dropped.
func DrawLabel(b *Bitmap, font GlyphTable, text string) {
	_, outbox := tinyfont.LineWidth(font, text)

	x := Width - int(outbox)
	if x < 0 {
		x = 0
	}

	for _, r := range text {
		if x+GlyphSize > Width {
			break
		}

		b.BlitGlyph(font.Glyph(r), x, LabelTop)
		x += int(font.GetGlyph(r).Info().XAdvance)
	}
}
