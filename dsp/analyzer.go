// Package dsp provides spectral analysis of a capture cycle.
//
// Some notes:
//
// https://dlbeer.co.nz/articles/fftvis.html
// https://stackoverflow.com/questions/3694918/how-to-extract-frequency-associated-with-fft-values-in-python
//   - https://stackoverflow.com/a/27191172
package dsp

import (
	"math"

	"github.com/eteq/rp2040-spectro/dsp/window"
	"github.com/eteq/rp2040-spectro/fft"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

type AnalyzerConfig struct {
	SampleRate float64         // adc sample rate
	SampleSize int             // number of samples per capture
	Windower   window.Function // applied after dc removal, nil for none
}

// Spectrum is one normalized magnitude spectrum. Bins and the backing arrays
// are owned by the analyzer and rebuilt on every Analyze call.
type Spectrum struct {
	Bins       []byte // N/2+1 magnitudes scaled so the peak is 255
	Peak       int    // index of the largest bin
	Degenerate bool   // input had no variance, Bins are all zero
}

// Analyzer turns sample buffers into spectra.
type Analyzer struct {
	cfg AnalyzerConfig

	input  []float64
	output []complex128
	power  []float64
	bins   []byte

	plan *fft.Plan
}

func NewAnalyzer(cfg AnalyzerConfig) *Analyzer {
	az := &Analyzer{
		cfg:    cfg,
		input:  make([]float64, cfg.SampleSize),
		output: make([]complex128, cfg.SampleSize/2+1),
		power:  make([]float64, cfg.SampleSize/2+1),
		bins:   make([]byte, cfg.SampleSize/2+1),
	}

	fft.InitPlan(&az.plan, az.input, az.output)

	return az
}

// Frequency returns the center frequency of bin in Hz.
func (az *Analyzer) Frequency(bin int) float64 {
	return (az.cfg.SampleRate / 2) * float64(bin) / float64(az.cfg.SampleSize/2)
}

// Analyze removes the mean from samples, transforms them and normalizes the
// magnitudes against the peak bin.
func (az *Analyzer) Analyze(samples []byte) (Spectrum, error) {
	if len(samples) != len(az.input) {
		return Spectrum{}, errors.Errorf(
			"sample buffer holds %d samples, analyzer wants %d", len(samples), len(az.input))
	}

	for i, v := range samples {
		az.input[i] = float64(v)
	}

	mean := stat.Mean(az.input, nil)
	for i := range az.input {
		az.input[i] -= mean
	}

	if az.cfg.Windower != nil {
		az.cfg.Windower(az.input)
	}

	az.plan.Execute()

	peak := 0
	peakPow := 0.0

	for i, c := range az.output {
		// squared magnitude; the root is only taken when normalizing
		p := real(c)*real(c) + imag(c)*imag(c)
		az.power[i] = p

		if p > peakPow {
			peak = i
			peakPow = p
		}
	}

	if peakPow == 0 {
		for i := range az.bins {
			az.bins[i] = 0
		}

		return Spectrum{Bins: az.bins, Peak: 0, Degenerate: true}, nil
	}

	for i, p := range az.power {
		az.bins[i] = normalize(p, peakPow)
	}

	return Spectrum{Bins: az.bins, Peak: peak}, nil
}

func normalize(p, peak float64) byte {
	v := math.Round(255 * math.Sqrt(p/peak))

	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}

	return byte(v)
}
