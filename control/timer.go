package control

import "time"

// Timers arms one-shot delayed callbacks.
type Timers interface {
	Arm(d time.Duration, fn func()) Handle
}

// Handle is a pending callback.
type Handle interface {
	// Cancel stops the callback. It reports true iff the callback had not
	// fired yet.
	Cancel() bool
}

// SystemTimers arms callbacks on the runtime timer wheel.
type SystemTimers struct{}

// Arm schedules fn after d.
func (SystemTimers) Arm(d time.Duration, fn func()) Handle {
	return systemHandle{time.AfterFunc(d, fn)}
}

type systemHandle struct {
	t *time.Timer
}

func (h systemHandle) Cancel() bool {
	return h.t.Stop()
}
