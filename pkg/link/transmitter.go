package link

import (
	"fmt"

	"Ultratone/pkg/device"
	"Ultratone/pkg/frame"
	"Ultratone/pkg/modem"
)

// Transmitter is the §4.5 one-shot send pipeline: envelope-encode a
// Message, modulate the result to PCM, and hand the whole buffer to a
// Sink. Beyond the encoder/modulator it wraps, its only state is a scratch
// PCM buffer reused across Send calls, so a single Transmitter is safe to
// reuse across sends from one goroutine.
type Transmitter struct {
	encoder   frame.FrameEncoder
	modulator *modem.Modulator
	scratch   []float32 // reused across Send calls, per §9's allocation discipline
}

// NewTransmitter builds a Transmitter from a Modulator already configured
// with the Config shared with the far end's Demodulator.
func NewTransmitter(modulator *modem.Modulator) *Transmitter {
	return &Transmitter{
		encoder:   frame.NewFrameEncoder(),
		modulator: modulator,
	}
}

// Send encodes msg into the wire envelope, modulates it to PCM, and writes
// the result to sink in a single call.
func (t *Transmitter) Send(msg frame.Message, sink device.Sink) error {
	wire, err := t.encoder.Encode(msg)
	if err != nil {
		return fmt.Errorf("link: send: %w", err)
	}

	t.scratch = t.modulator.EncodeInto(t.scratch, wire)
	sink.Write(t.scratch)
	return nil
}
