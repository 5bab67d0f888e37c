package execread

import (
	"bytes"
	"os/exec"
	"testing"

	"github.com/eteq/rp2040-spectro/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func needSh(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func capture(t *testing.T, s *Source, n int) ([]byte, error) {
	c := input.NewCapturer(input.CapturerConfig{Source: s, SampleSize: n})
	return c.Capture()
}

func TestSourcePicksChannel(t *testing.T) {
	needSh(t)

	var gotRate float64
	var gotChannels int

	s := New(func(rate float64, channels int) []string {
		gotRate, gotChannels = rate, channels
		return []string{"sh", "-c", "yes AB | tr -d '\\n'"}
	})
	require.NoError(t, s.Configure(1, input.Divider(8000)))

	buf, err := capture(t, s, 64)
	require.NoError(t, err)

	assert.Equal(t, bytes.Repeat([]byte("B"), 64), buf)
	assert.InDelta(t, 8000, gotRate, 1e-6)
	assert.Equal(t, 2, gotChannels)
}

func TestSourceRunsOnePerCapture(t *testing.T) {
	needSh(t)

	runs := 0
	s := New(func(float64, int) []string {
		runs++
		return []string{"sh", "-c", "yes x | tr -d '\\n'"}
	})

	for i := 0; i < 3; i++ {
		_, err := capture(t, s, 32)
		require.NoError(t, err)
	}

	assert.Equal(t, 3, runs)
}

func TestSourceShortStream(t *testing.T) {
	needSh(t)

	s := New(func(float64, int) []string {
		return []string{"sh", "-c", "printf abc"}
	})

	_, err := capture(t, s, 16)
	assert.Error(t, err)
}

func TestSourceRejectsEmptyBuffer(t *testing.T) {
	s := New(func(float64, int) []string { return []string{"true"} })
	assert.ErrorIs(t, s.Arm(nil), input.ErrBufferSize)
	assert.Error(t, s.Configure(-1, 0))
}
