package link

import (
	"Ultratone/pkg/device"
	"Ultratone/pkg/frame"
	"Ultratone/pkg/modem"
)

// defaultSampleBufferCap is the initial capacity of the rolling sub-symbol
// sample buffer. Between Feed calls the buffer only holds the remainder
// left over after the last whole-symbol window was cut; Feed appends each
// new chunk to it, so a larger chunk grows it past this capacity.
const defaultSampleBufferCap = 4096

// Receiver is the §4.5 streaming receive pipeline: it owns the rolling
// sub-symbol sample buffer and the bit accumulator that ownership (§5)
// deliberately keeps out of Demodulator, cuts aligned non-overlapping
// samples_per_symbol windows as enough samples arrive, classifies each,
// packs bits MSB-first into bytes, and feeds those bytes to a
// FrameDecoder.
type Receiver struct {
	demod   *modem.Demodulator
	decoder *frame.FrameDecoder

	sampleBuf []float32
	bitAccum  byte
	bitCount  int
}

// NewReceiver builds a Receiver from a Demodulator and a FrameDecoder
// sharing the far end's Config and envelope constants respectively.
func NewReceiver(demod *modem.Demodulator, decoder *frame.FrameDecoder) *Receiver {
	return &Receiver{
		demod:     demod,
		decoder:   decoder,
		sampleBuf: make([]float32, 0, defaultSampleBufferCap),
	}
}

// Errors exposes the underlying FrameDecoder's diagnostic side channel.
func (r *Receiver) Errors() <-chan error {
	return r.decoder.Errors()
}

// Feed accepts an arbitrary-sized block of newly captured PCM samples and
// returns zero or more complete Messages recovered from them.
func (r *Receiver) Feed(samples []float32) []frame.Message {
	r.sampleBuf = append(r.sampleBuf, samples...)

	sps := r.demod.Config().SamplesPerSymbol
	var bytesOut []byte

	consumed := 0
	for len(r.sampleBuf)-consumed >= sps {
		window := r.sampleBuf[consumed : consumed+sps]
		consumed += sps

		if r.demod.ClassifySymbol(window) {
			r.bitAccum |= 1 << uint(7-r.bitCount)
		}
		r.bitCount++
		if r.bitCount == 8 {
			bytesOut = append(bytesOut, r.bitAccum)
			r.bitAccum = 0
			r.bitCount = 0
		}
	}

	if consumed > 0 {
		r.sampleBuf = append(r.sampleBuf[:0], r.sampleBuf[consumed:]...)
	}

	if len(bytesOut) == 0 {
		return nil
	}
	return r.decoder.Feed(bytesOut)
}

// Listen starts a background goroutine that repeatedly reads bufSize
// samples from src and feeds them to the Receiver, invoking onMessage for
// every complete Message recovered, until the returned stop func is
// called. It mirrors the start/stop shape the teacher's own
// device.Loopback/device.Network hand-roll directly (a done channel closed
// by Stop, the run loop selecting on it each tick) rather than reaching for
// a shared generic job/signal package for a single call site.
//
// src must not be read from concurrently by any other caller while
// Listen is running.
func (r *Receiver) Listen(src device.Source, bufSize int, onMessage func(frame.Message)) (stop func()) {
	stopCh := make(chan struct{})
	exited := make(chan struct{})

	go func() {
		defer close(exited)
		buf := make([]float32, bufSize)
		for {
			select {
			case <-stopCh:
				return
			default:
			}
			src.Read(buf)
			for _, msg := range r.Feed(buf) {
				onMessage(msg)
			}
		}
	}()

	var stopped bool
	return func() {
		if stopped {
			return
		}
		stopped = true
		close(stopCh)
		<-exited
	}
}
