package device

import (
	"sync"
	"time"
)

// Loopback is a single synthetic device that feeds its own most recent
// output straight back as the next input, letting a Transmitter and
// Receiver exercise each other without a real audio backend. It serves
// two different callers: Start/Stop drive the ticked Device callback
// model used by real audio backends; Write/Read give it the push-based
// Sink/Source shape link.Transmitter/link.Receiver expect, backed by the
// same "last output becomes next input" buffer.
type Loopback struct {
	SampleRate float64 // the fake sample rate, 0 means no limit
	done       chan struct{}

	mu   sync.Mutex
	last []float32
}

// Write implements device.Sink by recording samples as the buffer the
// next Read will return.
func (d *Loopback) Write(samples []float32) {
	d.mu.Lock()
	d.last = append(d.last[:0], samples...)
	d.mu.Unlock()
}

// Read implements device.Source by copying back whatever the most recent
// Write produced, zero-padding if samples is longer.
func (d *Loopback) Read(samples []float32) {
	d.mu.Lock()
	n := copy(samples, d.last)
	d.mu.Unlock()
	clearf32(samples[n:])
}

// Buffered reports how many samples the most recent Write produced, so a
// caller can size its Read buffer exactly instead of over-reading.
func (d *Loopback) Buffered() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.last)
}

func (d *Loopback) Start(callback func(in, out []float32)) {
	d.done = make(chan struct{})
	go func() {
		var buf = make([][]float32, 2)
		buf[0] = allocf32(BufferSize)
		buf[1] = allocf32(BufferSize)

		swap := true
		update := func() {
			if swap {
				callback(buf[0], buf[1])
			} else {
				callback(buf[1], buf[0])
			}
			swap = !swap
		}

		if d.SampleRate == 0 {
			for {
				select {
				case <-d.done:
					return
				default:
					update()
				}
			}
		} else {
			ticker := time.NewTicker(time.Second / time.Duration(d.SampleRate))
			defer ticker.Stop()
			for {
				select {
				case <-d.done:
					return
				case <-ticker.C:
					update()
				}
			}
		}
	}()
}

func (d *Loopback) Stop() {
	close(d.done)
}
