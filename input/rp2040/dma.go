//go:build rp2040

package rp2040

import (
	"device/rp"
	"runtime/volatile"
	"unsafe"
)

// Single DMA channel. See rp.DMA_Type.
type dmaChannelHW struct {
	READ_ADDR   volatile.Register32
	WRITE_ADDR  volatile.Register32
	TRANS_COUNT volatile.Register32
	CTRL_TRIG   volatile.Register32
	_           [12]volatile.Register32 // aliases
}

var dmaChannels = (*[12]dmaChannelHW)(unsafe.Pointer(rp.DMA))

// The capture channel is the last one, clear of the PIO helpers that count
// up from 0.
const captureDMAChannel = 11

const dreqADC = 0x24

type dmaTxSize uint32

const (
	dmaTxSize8 dmaTxSize = iota
	dmaTxSize16
	dmaTxSize32
)

type dmaChannel struct {
	hw      *dmaChannelHW
	channel uint8
}

func getDMAChannel(channel uint8) *dmaChannel {
	return &dmaChannel{hw: &dmaChannels[channel], channel: channel}
}

// pull8 starts moving len(dst) bytes from the fixed address src into dst,
// one per DREQ. It returns without waiting.
func (ch *dmaChannel) pull8(dst []byte, src *volatile.Register32, dreq uint32) {
	hw := ch.hw
	hw.READ_ADDR.Set(uint32(uintptr(unsafe.Pointer(src))))
	hw.WRITE_ADDR.Set(uint32(uintptr(unsafe.Pointer(&dst[0]))))
	hw.TRANS_COUNT.Set(uint32(len(dst)))

	var cc dmaChannelConfig
	cc.setTREQ_SEL(dreq)
	cc.setTransferDataSize(dmaTxSize8)
	cc.setChainTo(uint32(ch.channel))
	cc.setReadIncrement(false)
	cc.setWriteIncrement(true)
	cc.setEnable(true)

	hw.CTRL_TRIG.Set(cc.CTRL)
}

// abort stops the channel and waits for in-flight transfers to flush.
func (ch *dmaChannel) abort() {
	chMask := uint32(1 << ch.channel)
	rp.DMA.CHAN_ABORT.Set(chMask)
	for rp.DMA.CHAN_ABORT.Get()&chMask != 0 {
	}
}

func (ch *dmaChannel) busy() bool {
	return ch.hw.CTRL_TRIG.Get()&rp.DMA_CH0_CTRL_TRIG_BUSY != 0
}

func (ch *dmaChannel) remaining() uint32 {
	return ch.hw.TRANS_COUNT.Get()
}

type dmaChannelConfig struct {
	CTRL uint32
}

func (cc *dmaChannelConfig) setTREQ_SEL(dreq uint32) {
	cc.CTRL = (cc.CTRL & ^uint32(rp.DMA_CH0_CTRL_TRIG_TREQ_SEL_Msk)) | (uint32(dreq) << rp.DMA_CH0_CTRL_TRIG_TREQ_SEL_Pos)
}

func (cc *dmaChannelConfig) setChainTo(chainTo uint32) {
	cc.CTRL = (cc.CTRL & ^uint32(rp.DMA_CH0_CTRL_TRIG_CHAIN_TO_Msk)) | (chainTo << rp.DMA_CH0_CTRL_TRIG_CHAIN_TO_Pos)
}

func (cc *dmaChannelConfig) setTransferDataSize(size dmaTxSize) {
	cc.CTRL = (cc.CTRL & ^uint32(rp.DMA_CH0_CTRL_TRIG_DATA_SIZE_Msk)) | (uint32(size) << rp.DMA_CH0_CTRL_TRIG_DATA_SIZE_Pos)
}

func (cc *dmaChannelConfig) setReadIncrement(incr bool) {
	setBitPos(&cc.CTRL, rp.DMA_CH0_CTRL_TRIG_INCR_READ_Pos, incr)
}

func (cc *dmaChannelConfig) setWriteIncrement(incr bool) {
	setBitPos(&cc.CTRL, rp.DMA_CH0_CTRL_TRIG_INCR_WRITE_Pos, incr)
}

func (cc *dmaChannelConfig) setEnable(enable bool) {
	setBitPos(&cc.CTRL, rp.DMA_CH0_CTRL_TRIG_EN_Pos, enable)
}

func setBitPos(cc *uint32, pos uint32, bit bool) {
	if bit {
		*cc = *cc | (1 << pos)
	} else {
		*cc = *cc & ^(1 << pos)
	}
}
