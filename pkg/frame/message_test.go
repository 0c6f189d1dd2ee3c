package frame

import "testing"

func TestMessageChecksumRoundTrip(t *testing.T) {
	msg := NewTextMessage(1, []byte("Hi"))
	if !msg.VerifyChecksum() {
		t.Fatal("freshly constructed message should verify")
	}

	msg.Payload[0] ^= 0xFF
	if msg.VerifyChecksum() {
		t.Fatal("mutated payload should fail checksum verification")
	}
}

func TestSequenceGeneratorMonotonic(t *testing.T) {
	g := NewSequenceGenerator()
	a := g.Next()
	b := g.Next()
	c := g.Next()

	if !(a < b && b < c) {
		t.Errorf("sequence numbers %d, %d, %d are not strictly increasing", a, b, c)
	}
}

func TestTypedConstructorsSetKind(t *testing.T) {
	cases := []struct {
		kind MessageKind
		msg  Message
	}{
		{KindText, NewTextMessage(0, nil)},
		{KindFile, NewFileMessage(0, nil)},
		{KindAck, NewAckMessage(0, nil)},
		{KindPing, NewPingMessage(0, nil)},
	}
	for _, c := range cases {
		if c.msg.Header.Kind != c.kind {
			t.Errorf("got kind %v, want %v", c.msg.Header.Kind, c.kind)
		}
		if c.msg.Header.Version != ProtocolVersion {
			t.Errorf("got version %d, want %d", c.msg.Header.Version, ProtocolVersion)
		}
	}
}
