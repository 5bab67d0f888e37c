package control

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualTimers fires callbacks only when advanced.
type manualTimers struct {
	mu      sync.Mutex
	now     time.Duration
	pending []*manualHandle
}

type manualHandle struct {
	timers *manualTimers
	at     time.Duration
	fn     func()
	done   bool
}

func (m *manualTimers) Arm(d time.Duration, fn func()) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	h := &manualHandle{timers: m, at: m.now + d, fn: fn}
	m.pending = append(m.pending, h)
	return h
}

func (h *manualHandle) Cancel() bool {
	h.timers.mu.Lock()
	defer h.timers.mu.Unlock()

	if h.done {
		return false
	}
	h.done = true
	return true
}

// advance moves the clock and runs every callback that came due, including
// ones armed by earlier callbacks.
func (m *manualTimers) advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		var due *manualHandle
		for _, h := range m.pending {
			if !h.done && h.at <= target && (due == nil || h.at < due.at) {
				due = h
			}
		}
		if due == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		due.done = true
		m.now = due.at
		m.mu.Unlock()

		due.fn()
	}
}

type recorder struct {
	mu     sync.Mutex
	clicks []Button
	holds  []Button
}

func (r *recorder) click(b Button) {
	r.mu.Lock()
	r.clicks = append(r.clicks, b)
	r.mu.Unlock()
}

func (r *recorder) hold(b Button) {
	r.mu.Lock()
	r.holds = append(r.holds, b)
	r.mu.Unlock()
}

func newTestButtons() (*Buttons, *manualTimers, *recorder) {
	timers := &manualTimers{}
	rec := &recorder{}

	bs := NewButtons(ButtonsConfig{
		Timers:      timers,
		HoldTimeout: time.Second,
		OnClick:     rec.click,
		OnHold:      rec.hold,
	})

	return bs, timers, rec
}

func TestButtonClick(t *testing.T) {
	bs, timers, rec := newTestButtons()

	bs.Edge(ButtonB, Press)
	timers.advance(200 * time.Millisecond)
	bs.Edge(ButtonB, Release)

	assert.Equal(t, []Button{ButtonB}, rec.clicks)
	assert.Empty(t, rec.holds)
}

func TestButtonHoldSuppressesClick(t *testing.T) {
	bs, timers, rec := newTestButtons()

	bs.Edge(ButtonA, Press)
	timers.advance(1500 * time.Millisecond)
	bs.Edge(ButtonA, Release)

	assert.Empty(t, rec.clicks)
	assert.Equal(t, []Button{ButtonA}, rec.holds)
}

func TestButtonHoldRearms(t *testing.T) {
	bs, timers, rec := newTestButtons()

	bs.Edge(ButtonC, Press)
	timers.advance(3500 * time.Millisecond)
	bs.Edge(ButtonC, Release)
	timers.advance(5 * time.Second)

	assert.Empty(t, rec.clicks)
	assert.Equal(t, []Button{ButtonC, ButtonC, ButtonC}, rec.holds)
}

func TestButtonReleaseWithoutPress(t *testing.T) {
	bs, _, rec := newTestButtons()

	bs.Edge(ButtonA, Release)
	bs.Edge(Button(7), Press)

	assert.Empty(t, rec.clicks)
}

func TestButtonsIndependent(t *testing.T) {
	bs, timers, rec := newTestButtons()

	bs.Edge(ButtonA, Press)
	timers.advance(500 * time.Millisecond)
	bs.Edge(ButtonB, Press)
	timers.advance(600 * time.Millisecond)
	bs.Edge(ButtonB, Release)
	bs.Edge(ButtonA, Release)

	assert.Equal(t, []Button{ButtonB}, rec.clicks)
	assert.Equal(t, []Button{ButtonA}, rec.holds)
}

func TestButtonRepeatedPressRestartsTimeout(t *testing.T) {
	bs, timers, rec := newTestButtons()

	bs.Edge(ButtonA, Press)
	timers.advance(800 * time.Millisecond)
	bs.Edge(ButtonA, Press)
	timers.advance(800 * time.Millisecond)
	bs.Edge(ButtonA, Release)

	assert.Equal(t, []Button{ButtonA}, rec.clicks)
	assert.Empty(t, rec.holds)
}

func TestButtonPressDuringHoldStillClicks(t *testing.T) {
	timers := &manualTimers{}
	rec := &recorder{}

	var bs *Buttons
	bs = NewButtons(ButtonsConfig{
		Timers:      timers,
		HoldTimeout: time.Second,
		OnClick:     rec.click,
		OnHold: func(b Button) {
			rec.hold(b)
			// a new press lands while the hold timer is still firing
			if len(rec.holds) == 1 {
				bs.Edge(b, Press)
			}
		},
	})

	bs.Edge(ButtonB, Press)
	timers.advance(1100 * time.Millisecond)
	timers.advance(200 * time.Millisecond)
	bs.Edge(ButtonB, Release)

	assert.Equal(t, []Button{ButtonB}, rec.holds)
	assert.Equal(t, []Button{ButtonB}, rec.clicks)
}

func TestButtonStaleHoldTimerIgnored(t *testing.T) {
	bs, _, rec := newTestButtons()

	bs.Edge(ButtonA, Press)
	first := bs.state[ButtonA].pending.Load()
	bs.Edge(ButtonA, Press)

	// the first press's timer fires after the second press replaced it
	bs.fire(ButtonA, first)
	bs.Edge(ButtonA, Release)

	assert.Empty(t, rec.holds)
	assert.Equal(t, []Button{ButtonA}, rec.clicks)
}

func TestButtonsRunDeliversEdges(t *testing.T) {
	bs, _, rec := newTestButtons()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		bs.Run(ctx, time.Millisecond)
	}()

	bs.Interrupt(ButtonC, Press)
	bs.Interrupt(ButtonC, Release)
	bs.Send(ctx, ButtonA, Press)
	bs.Send(ctx, ButtonA, Release)

	assert.Eventually(t, func() bool {
		rec.mu.Lock()
		defer rec.mu.Unlock()
		return len(rec.clicks) == 2
	}, time.Second, time.Millisecond)

	cancel()
	<-done

	assert.ElementsMatch(t, []Button{ButtonA, ButtonC}, rec.clicks)
}

func TestEdgeQueue(t *testing.T) {
	var q EdgeQueue

	_, _, ok := q.Pop()
	assert.False(t, ok)

	for i := 0; i < queueSize; i++ {
		require.True(t, q.Push(Button(i%3), Edge(i%2)))
	}
	assert.False(t, q.Push(ButtonA, Press))
	assert.Equal(t, queueSize, q.Len())

	for i := 0; i < queueSize; i++ {
		id, e, ok := q.Pop()
		require.True(t, ok)
		assert.Equal(t, Button(i%3), id)
		assert.Equal(t, Edge(i%2), e)
	}
	assert.Zero(t, q.Len())
}

var testLimits = Limits{MaxSpacing: 64, MaxSpectrumSpacing: 32}

func TestStateInitial(t *testing.T) {
	s := NewState(testLimits)

	assert.Equal(t, Mode{Spacing: 1}, s.Snapshot())
	assert.True(t, s.TakeCapture())
	assert.False(t, s.TakeCapture())
	assert.True(t, s.TakeDraw())
	assert.False(t, s.TakeDraw())
}

func TestStateTimeSpacingCycle(t *testing.T) {
	s := NewState(testLimits)

	var seen []int
	for i := 0; i < 8; i++ {
		s.Click(ButtonB)
		seen = append(seen, s.Spacing())
	}

	assert.Equal(t, []int{2, 4, 8, 16, 32, 64, 1, 2}, seen)
}

func TestStateFrequencySpacingCycle(t *testing.T) {
	s := NewState(testLimits)
	s.Click(ButtonC)
	require.True(t, s.Frequency())

	var seen []int
	for i := 0; i < 8; i++ {
		s.Click(ButtonB)
		seen = append(seen, s.Spacing())
	}

	assert.Equal(t, []int{2, 4, 8, 16, 32, Zoom, 1, 2}, seen)
}

func TestStateSpacingStaysInBounds(t *testing.T) {
	s := NewState(testLimits)

	for i := 0; i < 200; i++ {
		if i%7 == 0 {
			s.Click(ButtonC)
		}
		s.Click(ButtonB)

		m := s.Snapshot()
		if m.Frequency {
			if m.Spacing != Zoom {
				assert.LessOrEqual(t, m.Spacing, testLimits.MaxSpectrumSpacing)
			}
		} else {
			assert.NotEqual(t, Zoom, s.Spacing())
			assert.LessOrEqual(t, m.Spacing, testLimits.MaxSpacing)
		}
		assert.GreaterOrEqual(t, m.Spacing, Zoom)
		assert.NotZero(t, m.Spacing)
	}
}

func TestStateLeavingZoomResetsSpacing(t *testing.T) {
	s := NewState(testLimits)
	s.Click(ButtonC)
	for s.Spacing() != Zoom {
		s.Click(ButtonB)
	}
	assert.True(t, s.Snapshot().Zoomed())

	s.Click(ButtonC)

	assert.False(t, s.Frequency())
	assert.Equal(t, 1, s.Spacing())
}

func TestStateEnteringFrequencyClampsSpacing(t *testing.T) {
	s := NewState(testLimits)
	for s.Spacing() != 64 {
		s.Click(ButtonB)
	}

	s.Click(ButtonC)

	assert.Equal(t, testLimits.MaxSpectrumSpacing, s.Spacing())
}

func TestStateContinuous(t *testing.T) {
	s := NewState(testLimits)
	s.TakeCapture()
	s.TakeDraw()

	s.Click(ButtonA)
	assert.True(t, s.Continuous())
	assert.True(t, s.TakeCapture())
	assert.True(t, s.TakeDraw())

	s.Click(ButtonA)
	assert.False(t, s.Continuous())
}

func TestStateClicksRequestDraw(t *testing.T) {
	s := NewState(testLimits)
	s.TakeCapture()
	s.TakeDraw()

	s.Click(ButtonB)
	assert.True(t, s.TakeDraw())
	assert.False(t, s.TakeCapture())

	s.Click(ButtonC)
	assert.True(t, s.TakeDraw())
	assert.False(t, s.TakeCapture())
}
