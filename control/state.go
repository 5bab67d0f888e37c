// Package control turns button edges into mode changes shared with the main
// loop.
//
// Every ModeState field is its own atomic. The button side only ever writes
// one field at a time and the main loop only clears the one-shot requests,
// so no lock is needed between them.
package control

import "sync/atomic"

// Zoom is the spacing value that selects the peak-centered plot. It is only
// meaningful in the frequency domain.
const Zoom = -1

// Limits bounds the spacing cycle of each domain. A spectrum has only N/2+1
// bins, so the frequency domain stops at half the time-domain bound.
type Limits struct {
	MaxSpacing         int // time domain, N/Width
	MaxSpectrumSpacing int // frequency domain, N/(2*Width)
}

// Mode is a point-in-time copy of the state the main loop acts on.
type Mode struct {
	Continuous bool
	Frequency  bool
	Spacing    int
}

// Zoomed reports whether the peak-centered plot is selected.
func (m Mode) Zoomed() bool {
	return m.Frequency && m.Spacing == Zoom
}

// State is the mode shared between button handling and the main loop.
type State struct {
	limits Limits

	capture    atomic.Bool
	continuous atomic.Bool
	frequency  atomic.Bool
	draw       atomic.Bool
	spacing    atomic.Int32
}

// NewState returns a time-domain state at spacing 1 with a capture and a
// draw already requested, so the first loop iteration fills the panel.
func NewState(limits Limits) *State {
	if limits.MaxSpacing < 1 {
		limits.MaxSpacing = 1
	}
	if limits.MaxSpectrumSpacing < 1 {
		limits.MaxSpectrumSpacing = 1
	}

	s := &State{limits: limits}
	s.spacing.Store(1)
	s.capture.Store(true)
	s.draw.Store(true)

	return s
}

// Click applies the click action of button id.
func (s *State) Click(id Button) {
	switch id {
	case ButtonA:
		s.ToggleContinuous()
	case ButtonB:
		s.NextSpacing()
	case ButtonC:
		s.ToggleDomain()
	}
}

// ToggleContinuous flips continuous capture and requests a capture and a
// draw.
func (s *State) ToggleContinuous() {
	s.continuous.Store(!s.continuous.Load())
	s.capture.Store(true)
	s.draw.Store(true)
}

// NextSpacing advances the spacing through 1, 2, 4, ... up to the bound of
// the current domain. Past the bound the frequency domain moves on to Zoom,
// the time domain wraps to 1.
func (s *State) NextSpacing() {
	s.spacing.Store(int32(s.nextSpacing(int(s.spacing.Load()), s.frequency.Load())))
	s.draw.Store(true)
}

func (s *State) nextSpacing(cur int, frequency bool) int {
	max := s.limits.MaxSpacing
	if frequency {
		max = s.limits.MaxSpectrumSpacing
	}

	switch {
	case cur == Zoom:
		return 1
	case cur < 1:
		return 1
	case cur*2 <= max:
		return cur * 2
	case frequency:
		return Zoom
	}

	return 1
}

// ToggleDomain switches between time and frequency. The spacing is brought
// into range for the new domain before the domain flips, so the main loop
// never sees Zoom in the time domain.
func (s *State) ToggleDomain() {
	if s.frequency.Load() {
		s.spacing.CompareAndSwap(Zoom, 1)
		s.frequency.Store(false)
	} else {
		if int(s.spacing.Load()) > s.limits.MaxSpectrumSpacing {
			s.spacing.Store(int32(s.limits.MaxSpectrumSpacing))
		}
		s.frequency.Store(true)
	}

	s.draw.Store(true)
}

// RequestCapture asks for a one-shot capture and redraw.
func (s *State) RequestCapture() {
	s.capture.Store(true)
	s.draw.Store(true)
}

// TakeCapture reports and clears the one-shot capture request.
func (s *State) TakeCapture() bool {
	return s.capture.Swap(false)
}

// TakeDraw reports and clears the one-shot draw request.
func (s *State) TakeDraw() bool {
	return s.draw.Swap(false)
}

// Continuous reports whether every loop iteration captures and draws.
func (s *State) Continuous() bool {
	return s.continuous.Load()
}

// Frequency reports whether the frequency domain is selected.
func (s *State) Frequency() bool {
	return s.frequency.Load()
}

// Spacing returns the current spacing, possibly Zoom.
func (s *State) Spacing() int {
	return int(s.spacing.Load())
}

// Snapshot reads the domain, then the spacing. A Zoom spacing read after a
// switch to the time domain is reported as 1.
func (s *State) Snapshot() Mode {
	m := Mode{
		Continuous: s.continuous.Load(),
		Frequency:  s.frequency.Load(),
		Spacing:    int(s.spacing.Load()),
	}

	if !m.Frequency && m.Spacing == Zoom {
		m.Spacing = 1
	}

	return m
}
