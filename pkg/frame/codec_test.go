package frame

import (
	"strings"
	"testing"
)

func TestSerializeHeaderDeterministic(t *testing.T) {
	h := Header{Version: 1, Kind: KindText, SequenceNumber: 7, Timestamp: 100, PayloadLength: 2}

	a := serializeHeader(h)
	b := serializeHeader(h)

	if string(a) != string(b) {
		t.Fatalf("serializeHeader is not deterministic: %q vs %q", a, b)
	}
}

func TestSerializeDeserializeMessageRoundTrip(t *testing.T) {
	msg := NewTextMessage(5, []byte{0, 1, 2, 255, 128})

	data, err := serializeMessage(msg)
	if err != nil {
		t.Fatal(err)
	}

	got, err := deserializeMessage(data)
	if err != nil {
		t.Fatal(err)
	}

	if got.Header != msg.Header {
		t.Errorf("header round trip = %+v, want %+v", got.Header, msg.Header)
	}
	if string(got.Payload) != string(msg.Payload) {
		t.Errorf("payload round trip = %v, want %v", got.Payload, msg.Payload)
	}
	if got.Checksum != msg.Checksum {
		t.Errorf("checksum round trip = %d, want %d", got.Checksum, msg.Checksum)
	}
	if !got.VerifyChecksum() {
		t.Error("round-tripped message should verify")
	}
}

func TestDeserializeMessageRejectsUnknownKind(t *testing.T) {
	data := []byte("header:\n  version: 1\n  message_type: Bogus\n  sequence_number: 0\n  timestamp: 0\n  payload_length: 0\npayload: []\nchecksum: 0\n")
	if _, err := deserializeMessage(data); err == nil {
		t.Fatal("expected an error for unknown message_type")
	}
}

func TestPayloadEncodedAsIntegerArray(t *testing.T) {
	msg := NewTextMessage(0, []byte{10, 20, 30})
	data, err := serializeMessage(msg)
	if err != nil {
		t.Fatal(err)
	}
	// The payload must be a flow-style YAML sequence of small integers, not
	// a base64-encoded scalar string or a one-item-per-line block sequence.
	if !strings.Contains(string(data), "[10, 20, 30]") {
		t.Errorf("expected payload encoded as a flow-style integer sequence [10, 20, 30], got:\n%s", data)
	}
}
