package processor

import (
	"bytes"
	"context"
	"log"
	"testing"
	"time"

	"github.com/eteq/rp2040-spectro/control"
	"github.com/eteq/rp2040-spectro/display"
	"github.com/eteq/rp2040-spectro/dsp"
	"github.com/eteq/rp2040-spectro/graphic"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSize = 8192
	testRate = 500000.0
)

var testLimits = control.Limits{MaxSpacing: testSize / graphic.Width, MaxSpectrumSpacing: testSize / 2 / graphic.Width}

type constCapturer struct {
	value byte
	calls int
	err   error
}

func (c *constCapturer) Capture() ([]byte, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	buf := make([]byte, testSize)
	for i := range buf {
		buf[i] = c.value
	}
	return buf, nil
}

type countingOutput struct {
	shown int
	err   error
	last  *graphic.Bitmap
}

func (o *countingOutput) Show(b *graphic.Bitmap) error {
	o.shown++
	o.last = b
	return o.err
}

type fixture struct {
	proc  *Processor
	cap   *constCapturer
	out   *countingOutput
	state *control.State
	logs  *bytes.Buffer
}

func newFixture(value byte) *fixture {
	f := &fixture{
		cap:   &constCapturer{value: value},
		out:   &countingOutput{},
		state: control.NewState(testLimits),
		logs:  &bytes.Buffer{},
	}

	f.proc = New(Config{
		Capturer: f.cap,
		Analyzer: dsp.NewAnalyzer(dsp.AnalyzerConfig{SampleRate: testRate, SampleSize: testSize}),
		Renderer: graphic.NewRenderer(graphic.RendererConfig{SampleRate: testRate, SampleSize: testSize}),
		Output:   f.out,
		State:    f.state,
		Logger:   log.New(f.logs, "", 0),
	})

	return f
}

func TestStepIdleAfterFirstFrame(t *testing.T) {
	f := newFixture(128)

	captured, drew := f.proc.Step()
	assert.True(t, captured)
	assert.True(t, drew)

	captured, drew = f.proc.Step()
	assert.False(t, captured)
	assert.False(t, drew)

	assert.Equal(t, 1, f.cap.calls)
	assert.Equal(t, 1, f.out.shown)
}

func TestStepConstantBufferDrawsFlatLine(t *testing.T) {
	f := newFixture(128)
	f.proc.Step()

	b := f.out.last
	for x := 0; x < graphic.Width; x++ {
		assert.True(t, b.At(x, 32), "column %d", x)
		for y := 0; y < graphic.LabelTop-graphic.GlyphSize; y++ {
			if y != 32 {
				assert.False(t, b.At(x, y), "column %d row %d", x, y)
			}
		}
	}
	assert.Empty(t, f.logs.String())
}

func TestStepContinuous(t *testing.T) {
	f := newFixture(100)
	f.proc.Step()

	f.state.Click(control.ButtonA)
	for i := 0; i < 3; i++ {
		captured, drew := f.proc.Step()
		assert.True(t, captured)
		assert.True(t, drew)
	}

	assert.Equal(t, 4, f.cap.calls)
}

func TestStepRedrawWithoutCapture(t *testing.T) {
	f := newFixture(100)
	f.proc.Step()

	f.state.Click(control.ButtonB)
	captured, drew := f.proc.Step()

	assert.False(t, captured)
	assert.True(t, drew)
	assert.Equal(t, 1, f.cap.calls)
}

func TestStepFrequencyAndZoom(t *testing.T) {
	f := newFixture(0)
	f.proc.Step()

	// a flat buffer is a degenerate spectrum, which still renders
	f.state.Click(control.ButtonC)
	_, drew := f.proc.Step()
	assert.True(t, drew)

	for f.state.Spacing() != control.Zoom {
		f.state.Click(control.ButtonB)
		_, drew := f.proc.Step()
		require.True(t, drew, "spacing %d: %s", f.state.Spacing(), f.logs.String())
	}

	assert.Empty(t, f.logs.String())
}

func TestStepCaptureFailureKeepsRunning(t *testing.T) {
	f := newFixture(128)
	f.cap.err = errors.New("dma timeout")

	captured, drew := f.proc.Step()
	assert.False(t, captured)
	assert.False(t, drew)
	assert.Contains(t, f.logs.String(), "capture: dma timeout")

	f.cap.err = nil
	f.state.RequestCapture()
	captured, drew = f.proc.Step()
	assert.True(t, captured)
	assert.True(t, drew)
}

func TestStepDisplayFailureIsLogged(t *testing.T) {
	f := newFixture(128)
	f.out.err = &display.TransportError{Page: 4, Err: errors.New("nack")}

	_, drew := f.proc.Step()
	assert.False(t, drew)
	assert.Contains(t, f.logs.String(), "display: page 4: nack")

	f.out.err = nil
	f.state.Click(control.ButtonB)
	_, drew = f.proc.Step()
	assert.True(t, drew)
}

func TestStepOnCapture(t *testing.T) {
	f := newFixture(7)

	var seen []byte
	f.proc.cfg.OnCapture = func(s []byte) { seen = s }

	f.proc.Step()
	require.Len(t, seen, testSize)
	assert.Equal(t, byte(7), seen[0])
}

func TestProcessStopsOnCancel(t *testing.T) {
	f := newFixture(128)
	f.proc.cfg.PollInterval = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		f.proc.Process(ctx)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("processor did not stop")
	}
}

func BenchmarkStepContinuousSpectrum(b *testing.B) {
	f := newFixture(128)
	f.state.Click(control.ButtonA)
	f.state.Click(control.ButtonC)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		f.proc.Step()
	}
}
