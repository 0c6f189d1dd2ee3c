package frame

import (
	"sync/atomic"
	"time"
)

// MessageKind tags the kind of application message carried inside a frame
// payload. It serializes as the tag string §6 pins: "Text", "File", "Ack",
// or "Ping".
type MessageKind string

const (
	KindText MessageKind = "Text"
	KindFile MessageKind = "File"
	KindAck  MessageKind = "Ack"
	KindPing MessageKind = "Ping"
)

// ProtocolVersion is the only header version this implementation speaks.
// §9 notes that a future binary wire format would need a version bump and
// version dispatch on receive; this implementation dispatches on exactly
// this one value and rejects anything else (see codec.go).
const ProtocolVersion = 1

// Header is the application-visible envelope metadata carried inside a
// frame's payload, per §3.
type Header struct {
	Version        uint8
	Kind           MessageKind
	SequenceNumber uint32
	Timestamp      int64
	PayloadLength  uint16
}

// Message is the application-visible record carried inside a FrameEnvelope
// payload. Checksum is CRC-32/ISO-HDLC over serialize(Header) || Payload,
// per §3 and §6.
type Message struct {
	Header   Header
	Payload  []byte
	Checksum uint32
}

// SequenceGenerator is a small goroutine-safe monotonic counter. The typed
// message constructors always take an explicit sequence number; a caller
// without one of its own can pass Next() as that argument.
type SequenceGenerator struct {
	next atomic.Uint32
}

func NewSequenceGenerator() *SequenceGenerator {
	return &SequenceGenerator{}
}

func (g *SequenceGenerator) Next() uint32 {
	return g.next.Add(1) - 1
}

func newHeader(kind MessageKind, seq uint32, payload []byte) Header {
	return Header{
		Version:        ProtocolVersion,
		Kind:           kind,
		SequenceNumber: seq,
		Timestamp:      time.Now().Unix(),
		PayloadLength:  uint16(len(payload)),
	}
}

// NewTextMessage builds a Text message with a caller-supplied sequence
// number and the current wall-clock time in seconds.
func NewTextMessage(seq uint32, payload []byte) Message {
	return newMessage(KindText, seq, payload)
}

func NewFileMessage(seq uint32, payload []byte) Message {
	return newMessage(KindFile, seq, payload)
}

func NewAckMessage(seq uint32, payload []byte) Message {
	return newMessage(KindAck, seq, payload)
}

func NewPingMessage(seq uint32, payload []byte) Message {
	return newMessage(KindPing, seq, payload)
}

func newMessage(kind MessageKind, seq uint32, payload []byte) Message {
	hdr := newHeader(kind, seq, payload)
	msg := Message{Header: hdr, Payload: payload}
	msg.Checksum = computeChecksum(hdr, payload)
	return msg
}

// VerifyChecksum reports whether msg.Checksum matches the CRC-32 computed
// over its own header and payload — the invariant from §3 and testable
// property 1.
func (m Message) VerifyChecksum() bool {
	return m.Checksum == computeChecksum(m.Header, m.Payload)
}
