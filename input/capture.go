package input

import (
	"sync/atomic"

	"github.com/pkg/errors"
)

// CapturerConfig wires a Capturer to its hardware.
type CapturerConfig struct {
	Source SampleSource
	// Stimulus is raised for the duration of the capture. Its rising edge
	// triggers the measured phenomenon.
	Stimulus Pin
	// LED is lit while a capture is running.
	LED Pin
	// SampleSize is the fixed capture length.
	SampleSize int
}

// Capturer runs capture cycles into a single owned buffer.
type Capturer struct {
	src      SampleSource
	stimulus Pin
	led      Pin

	buf  []byte
	busy atomic.Bool
}

// NewCapturer allocates the sample buffer. Nil pins are replaced by NopPin.
func NewCapturer(cfg CapturerConfig) *Capturer {
	if cfg.Stimulus == nil {
		cfg.Stimulus = NopPin{}
	}
	if cfg.LED == nil {
		cfg.LED = NopPin{}
	}

	return &Capturer{
		src:      cfg.Source,
		stimulus: cfg.Stimulus,
		led:      cfg.LED,
		buf:      make([]byte, cfg.SampleSize),
	}
}

// Samples returns the buffer of the last capture. It is overwritten by the next
// one.
func (c *Capturer) Samples() []byte {
	return c.buf
}

// Capture runs one cycle and returns the filled buffer. The stimulus line and
// the LED are back low on return, on every path.
func (c *Capturer) Capture() (buf []byte, err error) {
	if !c.busy.CompareAndSwap(false, true) {
		return nil, ErrCaptureBusy
	}
	defer c.busy.Store(false)

	c.led.High()
	defer c.led.Low()

	c.stimulus.High()
	defer c.stimulus.Low()

	if err := c.src.Arm(c.buf); err != nil {
		return nil, errors.Wrap(err, "failed to arm source")
	}

	if err := c.src.Start(); err != nil {
		return nil, errors.Wrap(err, "failed to start source")
	}

	// the converter is halted and drained even when the wait fails
	defer func() {
		if serr := c.src.Stop(); serr != nil && err == nil {
			buf, err = nil, errors.Wrap(serr, "failed to stop source")
		}
		if derr := c.src.Drain(); derr != nil && err == nil {
			buf, err = nil, errors.Wrap(derr, "failed to drain source")
		}
	}()

	if err := c.src.Wait(); err != nil {
		return nil, errors.Wrap(err, "capture failed")
	}

	return c.buf, nil
}
