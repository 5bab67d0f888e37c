package synth

import (
	"testing"
	"time"

	"github.com/eteq/rp2040-spectro/dsp"
	"github.com/eteq/rp2040-spectro/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	size = 4096
	rate = 500000.0
)

func TestStrikeRingsAtResonance(t *testing.T) {
	src := NewSource(DefaultResonator)
	c := input.NewCapturer(input.CapturerConfig{
		Source:     src,
		Stimulus:   src.Stimulus(),
		SampleSize: size,
	})

	buf, err := c.Capture()
	require.NoError(t, err)

	a := dsp.NewAnalyzer(dsp.AnalyzerConfig{SampleRate: rate, SampleSize: size})
	sp, err := a.Analyze(buf)
	require.NoError(t, err)

	binWidth := rate / size
	assert.InDelta(t, DefaultResonator.Frequency, a.Frequency(sp.Peak), 2*binWidth)
}

func TestNoStrikeIsQuiet(t *testing.T) {
	src := NewSource(Resonator{Frequency: 1000, Decay: time.Millisecond, Amplitude: 100, Noise: 1})

	buf := make([]byte, size)
	src.Fill(buf, false)

	for i, v := range buf {
		require.InDelta(t, 128, int(v), 8, "sample %d", i)
	}
}

func TestCaptureTakesConversionTime(t *testing.T) {
	src := NewSource(DefaultResonator)
	require.NoError(t, src.Configure(0, input.Divider(100000)))

	c := input.NewCapturer(input.CapturerConfig{Source: src, SampleSize: 1000})

	start := time.Now()
	_, err := c.Capture()
	require.NoError(t, err)

	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}
