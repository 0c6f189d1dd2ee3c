package frame

import (
	"fmt"
	"hash/crc32"

	"gopkg.in/yaml.v3"
)

// wireHeader mirrors Header but spells out the pinned, interoperable field
// names and shapes from §6 — message_type is a tag string, not an int, and
// field order matches the struct declaration order so serializeHeader is
// deterministic regardless of what order a decoder's YAML library prefers
// when re-encoding.
type wireHeader struct {
	Version        uint8  `yaml:"version"`
	MessageType    string `yaml:"message_type"`
	SequenceNumber uint32 `yaml:"sequence_number"`
	Timestamp      int64  `yaml:"timestamp"`
	PayloadLength  uint16 `yaml:"payload_length"`
}

// wireMessage mirrors Message for the wire. Payload is encoded as a flow-
// style array of small integers (0-255) via MarshalYAML below, not as
// yaml.v3's default base64 string encoding of []byte nor its default
// one-per-line block sequence, per §6 ("byte fields are encoded as arrays
// of small integers").
type wireMessage struct {
	Header   wireHeader `yaml:"header"`
	Payload  []int      `yaml:"payload"`
	Checksum uint32     `yaml:"checksum"`
}

// MarshalYAML renders Payload as a flow-style sequence ([10, 20, 30])
// instead of yaml.v3's default one-item-per-line block style. A
// byte-per-line encoding costs 6-10 wire bytes per payload byte; flow
// style cuts that to 2-5, which is what keeps a MaxPayloadSize-byte
// message's serialized form inside MaxWireLength.
func (w wireMessage) MarshalYAML() (interface{}, error) {
	headerNode := &yaml.Node{}
	if err := headerNode.Encode(w.Header); err != nil {
		return nil, err
	}

	payloadNode := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range w.Payload {
		item := &yaml.Node{}
		if err := item.Encode(v); err != nil {
			return nil, err
		}
		payloadNode.Content = append(payloadNode.Content, item)
	}

	checksumNode := &yaml.Node{}
	if err := checksumNode.Encode(w.Checksum); err != nil {
		return nil, err
	}

	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, pair := range []struct {
		key   string
		value *yaml.Node
	}{
		{"header", headerNode},
		{"payload", payloadNode},
		{"checksum", checksumNode},
	} {
		keyNode := &yaml.Node{}
		if err := keyNode.Encode(pair.key); err != nil {
			return nil, err
		}
		root.Content = append(root.Content, keyNode, pair.value)
	}
	return root, nil
}

func toWireHeader(h Header) wireHeader {
	return wireHeader{
		Version:        h.Version,
		MessageType:    string(h.Kind),
		SequenceNumber: h.SequenceNumber,
		Timestamp:      h.Timestamp,
		PayloadLength:  h.PayloadLength,
	}
}

func fromWireHeader(w wireHeader) (Header, error) {
	if w.Version != ProtocolVersion {
		return Header{}, fmt.Errorf("frame: unsupported protocol version %d", w.Version)
	}
	switch MessageKind(w.MessageType) {
	case KindText, KindFile, KindAck, KindPing:
	default:
		return Header{}, fmt.Errorf("frame: unknown message_type %q", w.MessageType)
	}
	return Header{
		Version:        w.Version,
		Kind:           MessageKind(w.MessageType),
		SequenceNumber: w.SequenceNumber,
		Timestamp:      w.Timestamp,
		PayloadLength:  w.PayloadLength,
	}, nil
}

// serializeHeader is the canonical textual encoding of a header alone,
// used both as part of the full message serialization and as the exact
// CRC input §6 pins.
func serializeHeader(h Header) []byte {
	out, err := yaml.Marshal(toWireHeader(h))
	if err != nil {
		// toWireHeader only produces plain scalars and a string; yaml.v3
		// cannot fail to marshal this shape.
		panic(fmt.Sprintf("frame: header is not representable as yaml: %v", err))
	}
	return out
}

func computeChecksum(h Header, payload []byte) uint32 {
	buf := serializeHeader(h)
	buf = append(buf, payload...)
	return crc32.ChecksumIEEE(buf)
}

func bytesToInts(b []byte) []int {
	out := make([]int, len(b))
	for i, v := range b {
		out[i] = int(v)
	}
	return out
}

func intsToBytes(ints []int) ([]byte, error) {
	out := make([]byte, len(ints))
	for i, v := range ints {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("frame: payload byte %d out of range 0-255", v)
		}
		out[i] = byte(v)
	}
	return out, nil
}

// serializeMessage produces the pinned textual (YAML) encoding of msg used
// as a FrameEnvelope's payload.
func serializeMessage(msg Message) ([]byte, error) {
	w := wireMessage{
		Header:   toWireHeader(msg.Header),
		Payload:  bytesToInts(msg.Payload),
		Checksum: msg.Checksum,
	}
	return yaml.Marshal(w)
}

// deserializeMessage parses the pinned textual encoding back into a
// Message. It does not verify the checksum — callers that need the §3
// invariant enforced should call VerifyChecksum afterward.
func deserializeMessage(data []byte) (Message, error) {
	var w wireMessage
	if err := yaml.Unmarshal(data, &w); err != nil {
		return Message{}, fmt.Errorf("frame: deserialize message: %w", err)
	}

	hdr, err := fromWireHeader(w.Header)
	if err != nil {
		return Message{}, err
	}

	payload, err := intsToBytes(w.Payload)
	if err != nil {
		return Message{}, err
	}

	return Message{Header: hdr, Payload: payload, Checksum: w.Checksum}, nil
}
