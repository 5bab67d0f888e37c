package graphic

import (
	"math"

	"github.com/pkg/errors"
)

// ErrOverrun is returned when the decimation window would read past the end
// of the buffer before every column was filled.
var ErrOverrun = errors.New("decimation ran past the end of the buffer")

// Row scales a 0-255 value onto a bitmap row.
func Row(v float64) int {
	return int(math.Round(v * (Height - 1) / 255))
}

// Plot draws buf as a single trace, averaging spacing consecutive values into
// each column. Nothing is drawn if the buffer is too short for the spacing.
func Plot(b *Bitmap, buf []byte, spacing int) error {
	if len(buf) < Width {
		return errors.Errorf("buffer of %d values cannot fill %d columns", len(buf), Width)
	}

	if spacing < 1 {
		return errors.Errorf("invalid spacing %d", spacing)
	}

	if spacing*Width > len(buf) {
		return errors.Wrapf(ErrOverrun, "spacing %d over %d values", spacing, len(buf))
	}

	idx := 0
	for x := 0; x < Width; x++ {
		sum := 0
		for _, v := range buf[idx : idx+spacing] {
			sum += int(v)
		}
		idx += spacing

		b.Set(x, Row(float64(sum)/float64(spacing)), true)
	}

	return nil
}

// WindowStart returns the first index of a Width wide window centered on
// center and clamped inside a buffer of length values.
func WindowStart(length, center int) int {
	start := center - Width/2

	if start > length-Width {
		start = length - Width
	}

	if start < 0 {
		start = 0
	}

	return start
}

// PlotAround draws the raw values of a Width wide window centered on center.
// It returns the window start.
func PlotAround(b *Bitmap, buf []byte, center int) (int, error) {
	if len(buf) < Width {
		return 0, errors.Errorf("buffer of %d values cannot fill %d columns", len(buf), Width)
	}

	start := WindowStart(len(buf), center)

	for x, v := range buf[start : start+Width] {
		b.Set(x, Row(float64(v)), true)
	}

	return start, nil
}
