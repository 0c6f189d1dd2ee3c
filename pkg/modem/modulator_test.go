package modem

import "testing"

func TestExpectedSampleCount(t *testing.T) {
	cfg := DefaultConfig()
	m := NewModulator(cfg)

	got := m.ExpectedSampleCount(3)
	want := 8 * 3 * cfg.SamplesPerSymbol
	if got != want {
		t.Errorf("ExpectedSampleCount(3) = %d, want %d", got, want)
	}
}

func TestEncodeLength(t *testing.T) {
	cfg := DefaultConfig()
	m := NewModulator(cfg)

	data := []byte{0x42, 0xFF, 0x00}
	out := m.Encode(data)

	if len(out) != m.ExpectedSampleCount(len(data)) {
		t.Fatalf("Encode produced %d samples, want %d", len(out), m.ExpectedSampleCount(len(data)))
	}
}

func TestEncodeAmplitudeBound(t *testing.T) {
	cfg := DefaultConfig()
	m := NewModulator(cfg)

	out := m.Encode([]byte{0xAA, 0x55})
	for i, v := range out {
		if v > float32(cfg.Amplitude)+1e-6 || v < -float32(cfg.Amplitude)-1e-6 {
			t.Fatalf("sample %d = %v exceeds amplitude bound %v", i, v, cfg.Amplitude)
		}
	}
}

func TestEncodeRampAtBoundaries(t *testing.T) {
	cfg := DefaultConfig()
	m := NewModulator(cfg)

	out := m.Encode([]byte{0xFF})
	if out[0] != 0 {
		t.Errorf("first sample should be ramped to 0, got %v", out[0])
	}
	if out[len(out)-1] > 0.05 {
		t.Errorf("last sample should be ramped near 0, got %v", out[len(out)-1])
	}
}

func TestEncodeIntoReusesBuffer(t *testing.T) {
	cfg := DefaultConfig()
	m := NewModulator(cfg)

	buf := make([]float32, 0, m.ExpectedSampleCount(4))
	out1 := m.EncodeInto(buf, []byte{0x01})
	out2 := m.EncodeInto(out1[:0], []byte{0x02})

	if &out1[0] != &out2[0] {
		t.Errorf("EncodeInto should reuse the backing array when capacity suffices")
	}
}

func TestBitOrderMSBFirst(t *testing.T) {
	cfg, err := NewConfig(WithRampDuration(0))
	if err != nil {
		t.Fatal(err)
	}
	m := NewModulator(cfg)
	d, err := NewDemodulator(cfg)
	if err != nil {
		t.Fatal(err)
	}

	const b = byte(0b10110010)
	out := m.Encode([]byte{b})
	decoded := d.Decode(out)

	if len(decoded) != 1 || decoded[0] != b {
		t.Fatalf("round trip of byte %08b produced %v", b, decoded)
	}
}
