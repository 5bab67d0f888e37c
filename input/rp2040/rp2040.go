//go:build rp2040

// Package rp2040 runs the RP2040 ADC free running into a DMA channel paced by
// the ADC data request, one byte per conversion.
package rp2040

import (
	"device/rp"
	"machine"
	"runtime"
	"time"

	"github.com/eteq/rp2040-spectro/input"
	"github.com/pkg/errors"
)

var adcPins = [...]machine.Pin{machine.ADC0, machine.ADC1, machine.ADC2, machine.ADC3}

// Source owns the ADC and one DMA channel.
type Source struct {
	dma  *dmaChannel
	buf  []byte
	rate float64
}

// New powers up the ADC.
func New() *Source {
	machine.InitADC()
	return &Source{
		dma:  getDMAChannel(captureDMAChannel),
		rate: input.DividerRate(0),
	}
}

func (s *Source) Configure(channel int, divider float64) error {
	if channel < 0 || channel >= len(adcPins) {
		return errors.Errorf("no adc channel %d", channel)
	}

	machine.ADC{Pin: adcPins[channel]}.Configure(machine.ADCConfig{})
	rp.ADC.CS.ReplaceBits(uint32(channel), 0x7, rp.ADC_CS_AINSEL_Pos)

	// FIFO on, one sample raises DREQ, results shifted down to 8 bits
	rp.ADC.FCS.Set(rp.ADC_FCS_EN | rp.ADC_FCS_DREQ_EN | rp.ADC_FCS_SHIFT |
		1<<rp.ADC_FCS_THRESH_Pos)

	whole := uint32(divider)
	frac := uint32((divider - float64(whole)) * 256)
	rp.ADC.DIV.Set(whole<<rp.ADC_DIV_INT_Pos | frac<<rp.ADC_DIV_FRAC_Pos)

	s.rate = input.DividerRate(divider)
	return nil
}

func (s *Source) Arm(buf []byte) error {
	if len(buf) == 0 {
		return input.ErrBufferSize
	}

	s.buf = buf
	s.dma.pull8(buf, &rp.ADC.FIFO, dreqADC)
	return nil
}

func (s *Source) Start() error {
	if s.buf == nil {
		return errors.New("source not armed")
	}

	rp.ADC.CS.SetBits(rp.ADC_CS_START_MANY)
	return nil
}

// Wait yields to other goroutines until the transfer count runs out. A
// transfer that takes twice its nominal time is aborted.
func (s *Source) Wait() error {
	nominal := time.Duration(float64(len(s.buf)) / s.rate * float64(time.Second))
	deadline := time.Now().Add(2*nominal + 10*time.Millisecond)

	for s.dma.busy() {
		if time.Now().After(deadline) {
			left := s.dma.remaining()
			s.dma.abort()
			return errors.Errorf("dma timed out with %d of %d samples left", left, len(s.buf))
		}
		runtime.Gosched()
	}

	return nil
}

func (s *Source) Stop() error {
	rp.ADC.CS.ClearBits(rp.ADC_CS_START_MANY)
	for !rp.ADC.CS.HasBits(rp.ADC_CS_READY) {
	}
	return nil
}

// Drain empties the FIFO and clears its sticky overflow flags.
func (s *Source) Drain() error {
	for rp.ADC.FCS.Get()&rp.ADC_FCS_LEVEL_Msk != 0 {
		rp.ADC.FIFO.Get()
	}
	rp.ADC.FCS.SetBits(rp.ADC_FCS_OVER | rp.ADC_FCS_UNDER)
	return nil
}
