package graphic

import (
	"image/color"

	"github.com/pkg/errors"
	"tinygo.org/x/tinyfont"
)

type RendererConfig struct {
	SampleRate float64    // adc sample rate, for labels
	SampleSize int        // samples per capture
	Font       GlyphTable // label glyphs, Font when nil
	// Frequency maps a spectrum bin to Hz for the zoom label. Nil uses the
	// bin width of a SampleSize point real transform.
	Frequency func(bin int) float64
}

// Renderer composes one frame at a time into its bitmap.
type Renderer struct {
	cfg RendererConfig
	bmp *Bitmap
}

func NewRenderer(cfg RendererConfig) *Renderer {
	if cfg.Font == nil {
		cfg.Font = Font
	}
	if cfg.Frequency == nil {
		rate, half := cfg.SampleRate/2, float64(cfg.SampleSize/2)
		cfg.Frequency = func(bin int) float64 { return rate * float64(bin) / half }
	}

	return &Renderer{
		cfg: cfg,
		bmp: NewBitmap(),
	}
}

// Bitmap returns the frame the renderer draws into.
func (r *Renderer) Bitmap() *Bitmap {
	return r.bmp
}

// Time draws a time-domain frame of samples decimated by spacing.
func (r *Renderer) Time(samples []byte, spacing int) error {
	r.bmp.Clear()

	if err := Plot(r.bmp, samples, spacing); err != nil {
		return errors.Wrap(err, "failed to plot samples")
	}

	DrawLabel(r.bmp, r.cfg.Font, TimeLabel(r.cfg.SampleRate, spacing))

	return nil
}

// Spectrum draws a frequency-domain frame of bins decimated by spacing.
func (r *Renderer) Spectrum(bins []byte, spacing int) error {
	r.bmp.Clear()

	if err := Plot(r.bmp, bins, spacing); err != nil {
		return errors.Wrap(err, "failed to plot spectrum")
	}

	DrawLabel(r.bmp, r.cfg.Font, SpanLabel(r.cfg.SampleRate, r.cfg.SampleSize, spacing))

	return nil
}

// Zoom draws the bins around peak at full resolution and labels the peak
// frequency.
func (r *Renderer) Zoom(bins []byte, peak int) error {
	r.bmp.Clear()

	if _, err := PlotAround(r.bmp, bins, peak); err != nil {
		return errors.Wrap(err, "failed to plot peak")
	}

	DrawLabel(r.bmp, r.cfg.Font, PeakLabel(r.cfg.Frequency(peak)))

	return nil
}

// Splash draws free text lines top to bottom, used for the boot screen.
func (r *Renderer) Splash(lines ...string) {
	r.bmp.Clear()

	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	y := int16(GlyphSize + 4)
	for _, line := range lines {
		tinyfont.WriteLine(r.bmp, r.cfg.Font, 0, y, line, white)
		y += int16(r.cfg.Font.GetYAdvance()) + 4
	}
}
