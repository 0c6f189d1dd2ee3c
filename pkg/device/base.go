package device

// Sink consumes a block of mono float32 PCM samples, e.g. a speaker or a
// virtual loopback channel.
type Sink interface {
	Write(samples []float32)
}

// Source produces a block of mono float32 PCM samples, e.g. a microphone.
type Source interface {
	Read(samples []float32)
}

// Device is a ticked audio callback surface: each tick, it hands the
// caller a fresh input buffer (what it just captured) and an output
// buffer to fill (what it will play next).
type Device interface {
	Start(callback func(in, out []float32))
	Stop()
}

const BufferSize = 512
