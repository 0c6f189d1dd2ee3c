package frame

// DecoderState tags the FrameDecoder's position in the state machine of
// §4.4.
type DecoderState int

const (
	WaitingForPreamble DecoderState = iota
	WaitingForStart
	ReadingLength
	ReadingMessage
	WaitingForEnd
)

const DefaultBufferCap = 10000

// FrameDecoder is a stateful streaming parser recovering Messages from a
// noisy byte stream. It owns its internal buffer exclusively: no shared
// mutation, no internal locks, single-threaded by contract (§5).
//
// The buffer is preallocated to its cap and never reallocated after
// construction (§9's real-time discipline): Feed slices incoming data to
// fit the remaining room, compacting in place via discard/overflowTruncate
// rather than growing the backing array.
type FrameDecoder struct {
	buf   []byte
	state DecoderState

	pendingLength int
	payload       []byte

	errCh chan error
}

// NewFrameDecoder builds a FrameDecoder with the given buffer cap.
func NewFrameDecoder(capacity int) *FrameDecoder {
	return &FrameDecoder{
		buf:     make([]byte, 0, capacity),
		payload: make([]byte, 0, MaxWireLength),
	}
}

// DefaultFrameDecoder builds a FrameDecoder with the §4.4-recommended
// 10000-byte cap.
func DefaultFrameDecoder() *FrameDecoder {
	return NewFrameDecoder(DefaultBufferCap)
}

// State reports the decoder's current position in the state machine.
func (d *FrameDecoder) State() DecoderState { return d.state }

// Errors lazily creates and returns a diagnostic side channel that
// receives ErrFrameCorrupt/ErrBufferOverflow for every silently-dropped
// frame. Reading from it is entirely optional — Feed never blocks on it,
// and a full channel simply drops the notification.
func (d *FrameDecoder) Errors() <-chan error {
	if d.errCh == nil {
		d.errCh = make(chan error, 16)
	}
	return d.errCh
}

func (d *FrameDecoder) signal(err error) {
	if d.errCh == nil {
		return
	}
	select {
	case d.errCh <- err:
	default:
	}
}

// Feed accepts an arbitrary-sized chunk of bytes from the demodulator and
// returns zero or more complete, CRC-verified Messages. It never blocks
// and never allocates unboundedly: the internal buffer is capped and
// preallocated.
func (d *FrameDecoder) Feed(chunk []byte) []Message {
	var out []Message

	for len(chunk) > 0 {
		room := cap(d.buf) - len(d.buf)
		if room == 0 {
			d.overflowTruncate()
			room = cap(d.buf) - len(d.buf)
		}
		n := room
		if n > len(chunk) {
			n = len(chunk)
		}
		d.buf = append(d.buf, chunk[:n]...)
		chunk = chunk[n:]

		out = append(out, d.run()...)
	}

	return out
}

// discard removes the first n bytes of buf in place, compacting the
// backing array rather than reslicing from an ever-advancing offset — this
// keeps the buffer within its preallocated capacity forever.
func (d *FrameDecoder) discard(n int) {
	copy(d.buf, d.buf[n:])
	d.buf = d.buf[:len(d.buf)-n]
}

// overflowTruncate implements the §4.4 buffer-bounding policy: drop all
// but the most recent half of the buffer and force state back to
// WaitingForPreamble.
func (d *FrameDecoder) overflowTruncate() {
	half := cap(d.buf) / 2
	drop := len(d.buf) - half
	if drop > 0 {
		d.discard(drop)
	}
	d.state = WaitingForPreamble
	d.pendingLength = 0
	d.payload = d.payload[:0]
	debugLog("buffer overflow, dropping %d bytes\n", drop)
	d.signal(ErrBufferOverflow)
}

// run drives the state machine as far forward as the currently buffered
// bytes allow, returning any Messages completed along the way.
func (d *FrameDecoder) run() []Message {
	var out []Message

	for {
		switch d.state {
		case WaitingForPreamble:
			idx := findPreambleRun(d.buf)
			if idx < 0 {
				return out
			}
			d.discard(idx + PreambleLen)
			d.state = WaitingForStart

		case WaitingForStart:
			if len(d.buf) < DelimiterLen {
				return out
			}
			if d.buf[0] == DelimiterByte && d.buf[1] == DelimiterByte {
				d.discard(DelimiterLen)
				d.state = ReadingLength
			} else {
				// Reset without discarding: the bytes we just examined may
				// contain the start of a real preamble (§4.4 resync policy).
				debugLog("start delimiter mismatch, resyncing\n")
				d.signal(ErrFrameCorrupt)
				d.state = WaitingForPreamble
			}

		case ReadingLength:
			if len(d.buf) < LengthFieldLen {
				return out
			}
			length := int(d.buf[0])<<8 | int(d.buf[1])
			if length == 0 || length > MaxWireLength {
				debugLog("rejecting length field %d, resyncing\n", length)
				d.signal(ErrFrameCorrupt)
				d.state = WaitingForPreamble
			} else {
				d.discard(LengthFieldLen)
				d.pendingLength = length
				d.payload = d.payload[:0]
				d.state = ReadingMessage
			}

		case ReadingMessage:
			// Move whatever part of the payload has arrived out of buf, so a
			// frame longer than the buffer cap still accumulates in payload.
			n := d.pendingLength - len(d.payload)
			if n > len(d.buf) {
				n = len(d.buf)
			}
			d.payload = append(d.payload, d.buf[:n]...)
			d.discard(n)
			if len(d.payload) < d.pendingLength {
				return out
			}
			d.state = WaitingForEnd

		case WaitingForEnd:
			if len(d.buf) < DelimiterLen {
				return out
			}
			if d.buf[0] == DelimiterByte && d.buf[1] == DelimiterByte {
				d.discard(DelimiterLen)
				if msg, ok := d.finishFrame(); ok {
					out = append(out, msg)
				}
			} else {
				debugLog("end delimiter mismatch, resyncing\n")
				d.signal(ErrFrameCorrupt)
			}
			d.state = WaitingForPreamble
			d.pendingLength = 0
		}
	}
}

// finishFrame deserializes and CRC-verifies the just-completed payload. On
// any failure it signals ErrFrameCorrupt and drops the frame silently, per
// §4.4/§7.
func (d *FrameDecoder) finishFrame() (Message, bool) {
	msg, err := deserializeMessage(d.payload)
	if err != nil {
		debugLog("deserialize failed: %v\n", err)
		d.signal(ErrFrameCorrupt)
		return Message{}, false
	}
	if !msg.VerifyChecksum() {
		debugLog("CRC mismatch on sequence %d\n", msg.Header.SequenceNumber)
		d.signal(ErrFrameCorrupt)
		return Message{}, false
	}
	return msg, true
}

// findPreambleRun returns the index of the first byte of the earliest run
// of PreambleLen consecutive PreambleByte values in buf, or -1 if none is
// present.
func findPreambleRun(buf []byte) int {
	run := 0
	for i, b := range buf {
		if b == PreambleByte {
			run++
			if run == PreambleLen {
				return i - (PreambleLen - 1)
			}
		} else {
			run = 0
		}
	}
	return -1
}
