package dsp

import (
	"math"
	"testing"

	"github.com/eteq/rp2040-spectro/dsp/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testRate = 500000.0
	testSize = 1024
)

func tone(size, bin int, amp float64) []byte {
	buf := make([]byte, size)
	for i := range buf {
		v := 128 + amp*math.Sin(2*math.Pi*float64(bin)*float64(i)/float64(size))
		buf[i] = byte(math.Round(v))
	}
	return buf
}

func TestAnalyzeFindsTone(t *testing.T) {
	for _, bin := range []int{3, 100, 317, 511} {
		az := NewAnalyzer(AnalyzerConfig{SampleRate: testRate, SampleSize: testSize})

		sp, err := az.Analyze(tone(testSize, bin, 100))
		require.NoError(t, err)

		assert.False(t, sp.Degenerate)
		assert.Len(t, sp.Bins, testSize/2+1)
		assert.InDelta(t, bin, sp.Peak, 1)
		assert.Equal(t, byte(255), sp.Bins[sp.Peak])
	}
}

func TestAnalyzeWithWindow(t *testing.T) {
	az := NewAnalyzer(AnalyzerConfig{
		SampleRate: testRate,
		SampleSize: testSize,
		Windower:   window.Hann,
	})

	sp, err := az.Analyze(tone(testSize, 64, 90))
	require.NoError(t, err)
	assert.InDelta(t, 64, sp.Peak, 1)
	assert.Equal(t, byte(255), sp.Bins[sp.Peak])
}

func TestAnalyzeConstantIsDegenerate(t *testing.T) {
	az := NewAnalyzer(AnalyzerConfig{SampleRate: testRate, SampleSize: testSize})

	buf := make([]byte, testSize)
	for i := range buf {
		buf[i] = 128
	}

	sp, err := az.Analyze(buf)
	require.NoError(t, err)

	assert.True(t, sp.Degenerate)
	assert.Zero(t, sp.Peak)
	for _, v := range sp.Bins {
		assert.Zero(t, v)
	}
}

func TestAnalyzeWrongLength(t *testing.T) {
	az := NewAnalyzer(AnalyzerConfig{SampleRate: testRate, SampleSize: testSize})

	_, err := az.Analyze(make([]byte, testSize/2))
	assert.Error(t, err)
}

func TestFrequency(t *testing.T) {
	az := NewAnalyzer(AnalyzerConfig{SampleRate: testRate, SampleSize: testSize})

	assert.Equal(t, 0.0, az.Frequency(0))
	assert.InDelta(t, testRate/2, az.Frequency(testSize/2), 1e-9)
	assert.InDelta(t, testRate/testSize, az.Frequency(1), 1e-9)
}

func BenchmarkAnalyze(b *testing.B) {
	az := NewAnalyzer(AnalyzerConfig{SampleRate: testRate, SampleSize: 8192})
	buf := tone(8192, 410, 100)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		az.Analyze(buf)
	}
}
