package modem

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Demodulator classifies BFSK symbol windows against a cached FFT working
// size and caches an allocation-free scratch buffer for the real-valued
// window it feeds to fft.FFTReal. Per §5 it is a stateless configuration
// holder after construction: ClassifySymbol carries no state between
// calls beyond that scratch buffer.
type Demodulator struct {
	cfg     Config
	n       int // FFT size: smallest power of two >= SamplesPerSymbol
	bin0    int
	bin1    int
	scratch []float64 // preallocated, length n, reused per symbol
}

const binSearchWidth = 3

// NewDemodulator builds a Demodulator from an already-validated Config.
// It fails with ErrConfig if the mark/space target bins would overlap
// within the ±3 bin search window or fall outside [0, N/2].
func NewDemodulator(cfg Config) (*Demodulator, error) {
	n := nextPowerOfTwo(cfg.SamplesPerSymbol)

	bin0 := roundBin(cfg.Freq0, n, cfg.SampleRate)
	bin1 := roundBin(cfg.Freq1, n, cfg.SampleRate)

	half := n / 2
	if bin0 < 0 || bin0 > half || bin1 < 0 || bin1 > half {
		return nil, fmt.Errorf("%w: target bin out of range [0, %d]", ErrConfig, half)
	}
	delta := bin1 - bin0
	if delta < 0 {
		delta = -delta
	}
	if delta <= 2*binSearchWidth {
		return nil, fmt.Errorf("%w: |bin_1 - bin_0| = %d must be > %d at FFT size %d", ErrConfig, delta, 2*binSearchWidth, n)
	}

	return &Demodulator{
		cfg:     cfg,
		n:       n,
		bin0:    bin0,
		bin1:    bin1,
		scratch: make([]float64, n),
	}, nil
}

func (d *Demodulator) Config() Config { return d.cfg }

// ClassifySymbol decides whether a single samples_per_symbol-long window is
// a 0 or 1 symbol via non-coherent FFT bin-power comparison (§4.2). The
// caller is responsible for slicing exact, non-overlapping windows; this
// is the primitive both Decode and the streaming link.Receiver build on.
func (d *Demodulator) ClassifySymbol(window []float32) bool {
	for i := range d.scratch {
		if i < len(window) {
			d.scratch[i] = float64(window[i])
		} else {
			d.scratch[i] = 0
		}
	}

	spectrum := fft.FFTReal(d.scratch)

	peak0 := peakPowerAround(spectrum, d.bin0)
	peak1 := peakPowerAround(spectrum, d.bin1)

	return peak1 > peak0
}

// Decode performs the bulk §4.2 contract: slice samples into non-overlapping
// samples_per_symbol windows, classify each, and pack every 8 bits
// (MSB-first) into a byte. Excess trailing samples and excess trailing bits
// are discarded. If len(samples) < SamplesPerSymbol, an empty slice is
// returned. The bit accumulator here is a local variable, not struct
// state — each call starts byte-aligned from scratch, matching §5's
// ownership rule that the Demodulator itself holds no decode state beyond
// its FFT scratch buffer.
func (d *Demodulator) Decode(samples []float32) []byte {
	sps := d.cfg.SamplesPerSymbol
	numSymbols := len(samples) / sps
	if numSymbols == 0 {
		return []byte{}
	}

	out := make([]byte, 0, numSymbols/8)
	var current byte
	var bitCount int

	for i := 0; i < numSymbols; i++ {
		window := samples[i*sps : (i+1)*sps]
		if d.ClassifySymbol(window) {
			current |= 1 << uint(7-bitCount)
		}
		bitCount++
		if bitCount == 8 {
			out = append(out, current)
			current = 0
			bitCount = 0
		}
	}

	return out
}

// peakPowerAround returns the peak squared magnitude over a symmetric
// ±binSearchWidth window around target, clipped to the spectrum's bounds.
func peakPowerAround(spectrum []complex128, target int) float64 {
	lo := target - binSearchWidth
	if lo < 0 {
		lo = 0
	}
	hi := target + binSearchWidth
	if hi > len(spectrum)-1 {
		hi = len(spectrum) - 1
	}

	var peak float64
	for k := lo; k <= hi; k++ {
		mag := cmplx.Abs(spectrum[k])
		power := mag * mag
		if power > peak {
			peak = power
		}
	}
	return peak
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func roundBin(freq float64, n int, sampleRate int) int {
	return int(math.Round(freq * float64(n) / float64(sampleRate)))
}
