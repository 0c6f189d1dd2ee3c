package frame

import "errors"

// ErrPayloadTooLarge is returned by FrameEncoder.Encode when a message's
// raw payload exceeds MaxPayloadSize bytes (or, as a sanity net, when its
// serialized form somehow exceeds MaxWireLength). The caller must split
// the payload across multiple messages.
var ErrPayloadTooLarge = errors.New("frame: serialized message exceeds max payload size")

// ErrFrameCorrupt marks a silently-dropped frame: a length overflow, a
// delimiter mismatch, a deserialization failure, or a CRC mismatch. It
// never escapes FrameDecoder.Feed — it is only observable on the optional
// Errors() side channel.
var ErrFrameCorrupt = errors.New("frame: corrupt frame discarded")

// ErrBufferOverflow marks the FrameDecoder's internal buffer exceeding its
// cap without finding a valid frame. Like ErrFrameCorrupt it never escapes
// Feed; it is only observable on Errors().
var ErrBufferOverflow = errors.New("frame: internal buffer overflow, truncated")
