package frame

import "fmt"

// Debug gates debugLog's output. Off by default; callers embedding this
// package in a larger application can flip it on to see resync/CRC-failure
// traces without touching the Errors() side channel.
var Debug = false

// debugLog prints a bracket-tagged trace line when Debug is enabled,
// matching the teacher's own debugLog convention in pkg/modem/bytemodem.go.
func debugLog(format string, args ...any) {
	if !Debug {
		return
	}
	fmt.Printf("[FrameDecoder] "+format, args...)
}
