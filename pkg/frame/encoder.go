package frame

import (
	"encoding/binary"
	"fmt"
)

// FrameEncoder wraps an application Message in the wire-level envelope of
// §3: preamble + start delimiter + length + payload + end delimiter.
// Stateless and pure.
type FrameEncoder struct{}

func NewFrameEncoder() FrameEncoder { return FrameEncoder{} }

// Encode serializes msg to the pinned textual format and wraps it in the
// envelope. It fails with ErrPayloadTooLarge if msg.Payload itself exceeds
// MaxPayloadSize raw bytes, checked before serialization so the bound
// matches §8's scenarios literally rather than the YAML-inflated wire
// size. MaxWireLength is the separate, larger ceiling FrameDecoder's
// ReadingLength state enforces on the serialized form; Encode double-checks
// against it as a sanity net, since the two bounds must stay consistent for
// any payload the encoder accepts to also be decodable.
func (FrameEncoder) Encode(msg Message) ([]byte, error) {
	if len(msg.Payload) > MaxPayloadSize {
		return nil, fmt.Errorf("%w: payload size %d > %d", ErrPayloadTooLarge, len(msg.Payload), MaxPayloadSize)
	}

	payload, err := serializeMessage(msg)
	if err != nil {
		return nil, fmt.Errorf("frame: encode: %w", err)
	}
	if len(payload) > MaxWireLength {
		return nil, fmt.Errorf("%w: serialized size %d > %d", ErrPayloadTooLarge, len(payload), MaxWireLength)
	}

	out := make([]byte, 0, PreambleLen+DelimiterLen+LengthFieldLen+len(payload)+DelimiterLen)

	for i := 0; i < PreambleLen; i++ {
		out = append(out, PreambleByte)
	}
	out = append(out, DelimiterByte, DelimiterByte)

	var lenBuf [LengthFieldLen]byte
	binary.BigEndian.PutUint16(lenBuf[:], uint16(len(payload)))
	out = append(out, lenBuf[:]...)

	out = append(out, payload...)
	out = append(out, DelimiterByte, DelimiterByte)

	return out, nil
}
