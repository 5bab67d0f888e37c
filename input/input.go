// Package input captures one fixed-size buffer of 8-bit samples per cycle.
package input

import (
	"math"

	"github.com/pkg/errors"
)

// ADCClock is the RP2040 ADC clock in Hz. One conversion takes 96 cycles.
const (
	ADCClock        = 48e6
	CyclesPerSample = 96
)

var (
	// ErrCaptureBusy is returned when a capture is requested while another
	// is still running.
	ErrCaptureBusy = errors.New("capture already in progress")
	// ErrBufferSize is returned when a source is armed with a buffer it cannot
	// fill.
	ErrBufferSize = errors.New("invalid capture buffer size")
)

// SampleSource owns the converter hardware. One capture cycle is
// Arm, Start, Wait, Stop, Drain.
type SampleSource interface {
	// Configure selects the input channel and the conversion clock divider.
	Configure(channel int, divider float64) error
	// Arm points the transfer at buf. The whole buffer is filled.
	Arm(buf []byte) error
	// Start begins converting.
	Start() error
	// Wait blocks until the armed buffer is full.
	Wait() error
	// Stop halts conversion.
	Stop() error
	// Drain discards any sample left queued after Stop.
	Drain() error
}

// Pin is a digital output such as the stimulus line or the status LED.
type Pin interface {
	High()
	Low()
}

// Stimulator is implemented by sources that react to the stimulus line
// themselves, such as simulated ones.
type Stimulator interface {
	Stimulus() Pin
}

// NopPin is a Pin attached to nothing.
type NopPin struct{}

func (NopPin) High() {}
func (NopPin) Low()  {}

// Divider returns the clock divider that paces conversions at rate. Rates at
// or above the free running rate give 0.
func Divider(rate float64) float64 {
	if rate <= 0 {
		return 0
	}

	cycles := ADCClock / rate
	if cycles <= CyclesPerSample {
		return 0
	}

	return cycles - 1
}

// DividerRate is the inverse of Divider.
func DividerRate(divider float64) float64 {
	return ADCClock / math.Max(divider+1, CyclesPerSample)
}
