package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		fn, err := Lookup(name)
		require.NoError(t, err, name)
		assert.NotNil(t, fn, name)
	}

	_, err := Lookup("kaiser")
	assert.Error(t, err)
}

func TestRectangleLeavesBuffer(t *testing.T) {
	buf := []float64{1, 2, 3, 4}
	Rectangle(buf)
	assert.Equal(t, []float64{1, 2, 3, 4}, buf)
}

func TestHannTapersEdges(t *testing.T) {
	buf := make([]float64, 64)
	for i := range buf {
		buf[i] = 1
	}

	Hann(buf)

	assert.InDelta(t, 0, buf[0], 1e-12)
	assert.InDelta(t, 1, buf[32], 1e-12)
	for _, v := range buf {
		assert.True(t, v >= 0 && v <= 1)
	}
}
