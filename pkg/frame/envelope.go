package frame

// Wire-level envelope constants, per §3. Byte-exact; required for
// interoperability with any other conforming implementation.
const (
	PreambleByte  byte = 0xAA
	PreambleLen        = 8
	DelimiterByte byte = 0x7E
	DelimiterLen       = 2
	LengthFieldLen     = 2

	// MaxPayloadSize bounds the raw application payload a Message may
	// carry, per §4.3/§8: FrameEncoder.Encode rejects with
	// ErrPayloadTooLarge before serialization if msg.Payload exceeds this,
	// mirroring the original implementation's check at message
	// construction rather than against the inflated wire form.
	MaxPayloadSize = 1024

	// MaxWireLength bounds the serialized length field FrameDecoder reads
	// off the wire. The YAML codec's integer-sequence payload encoding
	// costs more than one byte per raw payload byte even in flow style, so
	// a MaxPayloadSize-byte message serializes to several times that many
	// wire bytes; this is sized with headroom for that inflation while
	// still comfortably fitting inside DefaultBufferCap.
	MaxWireLength = 8192
)
