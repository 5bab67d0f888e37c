package control

import (
	"context"
	"sync/atomic"
	"time"
)

// Button names one of the three front panel buttons.
type Button int

const (
	ButtonA Button = iota
	ButtonB
	ButtonC

	buttonCount
)

func (b Button) String() string {
	switch b {
	case ButtonA:
		return "A"
	case ButtonB:
		return "B"
	case ButtonC:
		return "C"
	}
	return "?"
}

// Edge is a button level change.
type Edge int

const (
	Press Edge = iota
	Release
)

func (e Edge) String() string {
	if e == Press {
		return "press"
	}
	return "release"
}

// ButtonsConfig configures a Buttons.
type ButtonsConfig struct {
	Timers      Timers
	HoldTimeout time.Duration
	// OnClick runs on a release that came before the hold timeout.
	OnClick func(Button)
	// OnHold runs every time the hold timeout elapses for a pressed button.
	// Nil means a no-op.
	OnHold func(Button)
}

// Buttons tells clicks from holds.
//
// Edges reach it either through Interrupt, from pin interrupt handlers, or
// through Send, from ordinary goroutines. Run delivers both to Edge.
type Buttons struct {
	timers  Timers
	hold    time.Duration
	onClick func(Button)
	onHold  func(Button)

	state [buttonCount]buttonState

	irq   EdgeQueue
	edges chan edgeEvent
}

type buttonState struct {
	pending atomic.Pointer[pendingHold]
}

// pendingHold is the hold timer of one press. held belongs to that press, so
// a timer firing late cannot mark a newer press as held.
type pendingHold struct {
	handle Handle
	held   atomic.Bool
}

// NewButtons returns buttons with no button pressed.
func NewButtons(cfg ButtonsConfig) *Buttons {
	if cfg.Timers == nil {
		cfg.Timers = SystemTimers{}
	}
	if cfg.OnClick == nil {
		cfg.OnClick = func(Button) {}
	}
	if cfg.OnHold == nil {
		cfg.OnHold = func(Button) {}
	}

	return &Buttons{
		timers:  cfg.Timers,
		hold:    cfg.HoldTimeout,
		onClick: cfg.OnClick,
		onHold:  cfg.OnHold,
		edges:   make(chan edgeEvent, 16),
	}
}

// Edge steps the state machine of button id.
func (bs *Buttons) Edge(id Button, e Edge) {
	if id < 0 || id >= buttonCount {
		return
	}

	if e == Press {
		bs.press(id)
		return
	}

	bs.release(id)
}

func (bs *Buttons) press(id Button) {
	st := &bs.state[id]

	// a second press without a release restarts the timeout
	if old := st.pending.Swap(nil); old != nil {
		old.handle.Cancel()
	}

	st.pending.Store(bs.arm(id, false))
}

func (bs *Buttons) arm(id Button, held bool) *pendingHold {
	p := &pendingHold{}
	p.held.Store(held)
	p.handle = bs.timers.Arm(bs.hold, func() { bs.fire(id, p) })
	return p
}

func (bs *Buttons) fire(id Button, p *pendingHold) {
	st := &bs.state[id]
	if st.pending.Load() != p {
		return
	}

	p.held.Store(true)
	bs.onHold(id)

	next := bs.arm(id, true)
	if !st.pending.CompareAndSwap(p, next) {
		next.handle.Cancel()
	}
}

func (bs *Buttons) release(id Button) {
	st := &bs.state[id]

	p := st.pending.Swap(nil)
	if p == nil {
		return
	}

	if p.handle.Cancel() && !p.held.Load() {
		bs.onClick(id)
	}
}

// Interrupt queues an edge from interrupt context. It never blocks or
// allocates; edges past the queue capacity are dropped.
func (bs *Buttons) Interrupt(id Button, e Edge) {
	bs.irq.Push(id, e)
}

// Send queues an edge from a goroutine.
func (bs *Buttons) Send(ctx context.Context, id Button, e Edge) {
	select {
	case bs.edges <- edgeEvent{id, e}:
	case <-ctx.Done():
	}
}

// Run delivers queued edges until ctx is done. Interrupt edges are picked up
// every poll.
func (bs *Buttons) Run(ctx context.Context, poll time.Duration) {
	if poll <= 0 {
		poll = time.Millisecond
	}

	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-bs.edges:
			bs.Edge(ev.id, ev.edge)
		case <-ticker.C:
			bs.drain()
		}
	}
}

func (bs *Buttons) drain() {
	for {
		id, e, ok := bs.irq.Pop()
		if !ok {
			return
		}
		bs.Edge(id, e)
	}
}
