package frame

import (
	"crypto/rand"
	"errors"
	"testing"
)

func TestEncodeEnvelopeShape(t *testing.T) {
	enc := NewFrameEncoder()
	msg := NewTextMessage(1, []byte("Hi"))

	out, err := enc.Encode(msg)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < PreambleLen; i++ {
		if out[i] != PreambleByte {
			t.Fatalf("preamble byte %d = %#x, want %#x", i, out[i], PreambleByte)
		}
	}
	off := PreambleLen
	if out[off] != DelimiterByte || out[off+1] != DelimiterByte {
		t.Fatalf("start delimiter = %#x %#x", out[off], out[off+1])
	}
	off += DelimiterLen

	length := int(out[off])<<8 | int(out[off+1])
	off += LengthFieldLen

	if off+length+DelimiterLen != len(out) {
		t.Fatalf("length field %d inconsistent with total frame size %d", length, len(out))
	}
	end := out[off+length:]
	if end[0] != DelimiterByte || end[1] != DelimiterByte {
		t.Fatalf("end delimiter = %#x %#x", end[0], end[1])
	}
}

func TestEncodeRejectsOversizedPayload(t *testing.T) {
	enc := NewFrameEncoder()

	payload := make([]byte, 1025)
	rand.Read(payload)
	msg := NewFileMessage(1, payload)

	_, err := enc.Encode(msg)
	if !errors.Is(err, ErrPayloadTooLarge) {
		t.Fatalf("got err = %v, want ErrPayloadTooLarge", err)
	}
}

func TestEncodeAccepts1024BytePayload(t *testing.T) {
	enc := NewFrameEncoder()

	payload := make([]byte, MaxPayloadSize)
	rand.Read(payload)
	msg := NewFileMessage(1, payload)

	out, err := enc.Encode(msg)
	if err != nil {
		t.Fatalf("unexpected error for max-size payload: %v", err)
	}
	if len(out) >= DefaultBufferCap {
		t.Errorf("encoded frame size %d leaves no room in a DefaultFrameDecoder buffer of %d", len(out), DefaultBufferCap)
	}
}
