package modem

import "errors"

// ErrConfig is returned (wrapped with detail) when a Config or Demodulator
// construction fails validation. It is fatal to construction —
// callers must fix the configuration and retry.
var ErrConfig = errors.New("modem: invalid configuration")
