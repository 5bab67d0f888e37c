package display

import "sync/atomic"

// Indicator is an emulated status LED. It satisfies input.Pin.
type Indicator struct {
	lit atomic.Bool
}

func (i *Indicator) High() { i.lit.Store(true) }
func (i *Indicator) Low()  { i.lit.Store(false) }

// Lit reports the last level written.
func (i *Indicator) Lit() bool {
	return i.lit.Load()
}
