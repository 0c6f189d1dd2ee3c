package device

import (
	"reflect"
	"testing"
	"time"
)

func TestLoopback(t *testing.T) {
	lastOutput := allocf32(BufferSize)

	var dev Device = &Loopback{
		SampleRate: 48000,
	}

	dev.Start(func(in, out []float32) {
		if !reflect.DeepEqual(in, lastOutput) {
			t.Errorf("expected %v, but got %v", lastOutput, in)
		}

		randf32(out)
		copy(lastOutput, out)
	})

	time.Sleep(time.Millisecond)
	dev.Stop()
}
