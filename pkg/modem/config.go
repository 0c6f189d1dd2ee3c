package modem

import (
	"fmt"
	"math"
)

// Config holds the immutable BFSK parameters shared by a Modulator and a
// Demodulator. Values are validated once at construction; derived fields
// are computed once and never recomputed per call.
type Config struct {
	SampleRate        int
	Freq0             float64
	Freq1             float64
	SymbolDurationSec float64
	RampDurationSec   float64
	Amplitude         float64

	SamplesPerSymbol int
	RampSamples      int
}

// Option mutates a Config under construction.
type Option func(*Config)

func WithSampleRate(rate int) Option {
	return func(c *Config) { c.SampleRate = rate }
}

func WithFrequencies(freq0, freq1 float64) Option {
	return func(c *Config) { c.Freq0, c.Freq1 = freq0, freq1 }
}

func WithSymbolDuration(sec float64) Option {
	return func(c *Config) { c.SymbolDurationSec = sec }
}

func WithRampDuration(sec float64) Option {
	return func(c *Config) { c.RampDurationSec = sec }
}

func WithAmplitude(amplitude float64) Option {
	return func(c *Config) { c.Amplitude = amplitude }
}

// DefaultConfig returns the §3 defaults: 44100 Hz sample rate, 18/20 kHz
// mark/space tones, 10 ms symbols with a 2 ms ramp, amplitude 0.3.
func DefaultConfig() Config {
	c, err := NewConfig()
	if err != nil {
		panic(fmt.Sprintf("modem: default configuration is invalid: %v", err))
	}
	return c
}

// NewConfig builds and validates a Config, starting from the §3 defaults
// and applying opts on top. It fails with ErrConfig if any parameter is
// out of range.
func NewConfig(opts ...Option) (Config, error) {
	c := Config{
		SampleRate:        44100,
		Freq0:             18000,
		Freq1:             20000,
		SymbolDurationSec: 0.01,
		RampDurationSec:   0.002,
		Amplitude:         0.3,
	}
	for _, opt := range opts {
		opt(&c)
	}

	if c.SampleRate <= 0 {
		return Config{}, fmt.Errorf("%w: sample_rate must be positive, got %d", ErrConfig, c.SampleRate)
	}
	nyquist := float64(c.SampleRate) / 2
	if c.Freq0 == c.Freq1 {
		return Config{}, fmt.Errorf("%w: freq_0 and freq_1 must differ", ErrConfig)
	}
	if c.Freq0 <= 0 || c.Freq0 >= nyquist {
		return Config{}, fmt.Errorf("%w: freq_0 %.2f must be in (0, %.2f)", ErrConfig, c.Freq0, nyquist)
	}
	if c.Freq1 <= 0 || c.Freq1 >= nyquist {
		return Config{}, fmt.Errorf("%w: freq_1 %.2f must be in (0, %.2f)", ErrConfig, c.Freq1, nyquist)
	}
	if c.SymbolDurationSec <= 0 {
		return Config{}, fmt.Errorf("%w: symbol_duration_sec must be positive", ErrConfig)
	}
	if c.RampDurationSec < 0 || c.RampDurationSec > c.SymbolDurationSec/2 {
		return Config{}, fmt.Errorf("%w: ramp_duration_sec must be in [0, symbol_duration_sec/2]", ErrConfig)
	}
	if c.Amplitude <= 0 || c.Amplitude > 1 {
		return Config{}, fmt.Errorf("%w: amplitude must be in (0, 1]", ErrConfig)
	}

	c.SamplesPerSymbol = int(math.Round(float64(c.SampleRate) * c.SymbolDurationSec))
	c.RampSamples = int(math.Round(float64(c.SampleRate) * c.RampDurationSec))

	if c.SamplesPerSymbol < 2*c.RampSamples {
		return Config{}, fmt.Errorf("%w: samples_per_symbol (%d) must be >= 2*ramp_samples (%d)", ErrConfig, c.SamplesPerSymbol, 2*c.RampSamples)
	}

	return c, nil
}
