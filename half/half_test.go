package half

import (
	"math"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input float32
		bits  uint16
	}{
		{"zero", 0, 0x0000},
		{"one", 1, 0x3C00},
		{"minus one", -1, 0xBC00},
		{"half", 0.5, 0x3800},
		{"two", 2, 0x4000},
		{"max", 65504, 0x7BFF},
		{"smallest normal", 6.103515625e-05, 0x0400},
		{"smallest subnormal", 5.960464477539063e-08, 0x0001},
		{"largest subnormal", 6.097555160522461e-05, 0x03FF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := FromFloat32(tt.input)
			if h.Bits() != tt.bits {
				t.Errorf("FromFloat32(%v) = 0x%04X, want 0x%04X", tt.input, h.Bits(), tt.bits)
			}
			if got := h.Float32(); got != tt.input {
				t.Errorf("Float32() = %v, want %v", got, tt.input)
			}
		})
	}
}

func TestRoundToNearestEven(t *testing.T) {
	// Spacing between 1 and 2 is 2^-10.
	ulp := float32(1.0 / 1024)
	tests := []struct {
		name  string
		input float32
		want  float32
	}{
		{"tie rounds down to even", 1 + ulp/2, 1},
		{"tie rounds up to even", 1 + ulp + ulp/2, 1 + 2*ulp},
		{"above tie", 1 + ulp*0.75, 1 + ulp},
		{"below tie", 1 + ulp*0.25, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromFloat32(tt.input).Float32(); got != tt.want {
				t.Errorf("FromFloat32(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSpecialValues(t *testing.T) {
	if h := FromFloat32(float32(math.Inf(1))); h != Inf || !h.IsInf() {
		t.Errorf("+Inf = 0x%04X", h.Bits())
	}
	if h := FromFloat32(float32(math.Inf(-1))); h != NegInf || !h.IsInf() {
		t.Errorf("-Inf = 0x%04X", h.Bits())
	}
	h := FromFloat32(float32(math.NaN()))
	if !h.IsNaN() || h.IsFinite() {
		t.Errorf("NaN = 0x%04X", h.Bits())
	}
	if !math.IsNaN(float64(h.Float32())) {
		t.Errorf("NaN.Float32() = %v", h.Float32())
	}
	if !math.IsInf(float64(Inf.Float32()), 1) {
		t.Errorf("Inf.Float32() = %v", Inf.Float32())
	}
	if math.Signbit(float64(NegZero.Float32())) != true {
		t.Error("NegZero lost its sign")
	}
}

func TestOverflowUnderflow(t *testing.T) {
	if h := FromFloat32(100000); h != Inf {
		t.Errorf("FromFloat32(100000) = 0x%04X, want Inf", h.Bits())
	}
	if h := FromFloat32(-100000); h != NegInf {
		t.Errorf("FromFloat32(-100000) = 0x%04X, want -Inf", h.Bits())
	}
	// Rounds up past Max.
	if h := FromFloat32(65520); h != Inf {
		t.Errorf("FromFloat32(65520) = 0x%04X, want Inf", h.Bits())
	}
	if h := FromFloat32(1e-10); h != Zero {
		t.Errorf("FromFloat32(1e-10) = 0x%04X, want 0", h.Bits())
	}
	if h := FromFloat32(-1e-10); h != NegZero {
		t.Errorf("FromFloat32(-1e-10) = 0x%04X, want -0", h.Bits())
	}
}

func TestAllBitsRoundTrip(t *testing.T) {
	for i := 0; i <= 0xFFFF; i++ {
		h := FromBits(uint16(i))
		if h.IsNaN() {
			continue
		}
		if got := FromFloat32(h.Float32()); got != h {
			t.Fatalf("0x%04X round-tripped to 0x%04X", i, got.Bits())
		}
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		h    Half
		want string
	}{
		{One, "1"},
		{FromFloat32(-2.5), "-2.5"},
		{Inf, "+Inf"},
		{NegInf, "-Inf"},
		{NaN, "NaN"},
	}
	for _, tt := range tests {
		if got := tt.h.String(); got != tt.want {
			t.Errorf("0x%04X.String() = %q, want %q", tt.h.Bits(), got, tt.want)
		}
	}
}

func TestSlices(t *testing.T) {
	src := []float32{0, 0.25, 1, -3}
	hs := make([]Half, len(src))
	FromFloat32Slice(hs, src)
	back := make([]float32, len(src))
	ToFloat32Slice(back, hs)
	for i := range src {
		if back[i] != src[i] {
			t.Errorf("[%d] = %v, want %v", i, back[i], src[i])
		}
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic on length mismatch")
		}
	}()
	FromFloat32Slice(hs[:1], src)
}

func FuzzFromFloat32(f *testing.F) {
	for _, v := range []float32{0, 1, -1, 65504, 1e-7, 0.333} {
		f.Add(v)
	}
	f.Fuzz(func(t *testing.T, v float32) {
		h := FromFloat32(v)
		if math.IsNaN(float64(v)) {
			if !h.IsNaN() {
				t.Fatalf("NaN input produced 0x%04X", h.Bits())
			}
			return
		}
		// Conversion must be idempotent.
		if again := FromFloat32(h.Float32()); again != h {
			t.Fatalf("FromFloat32(%v) = 0x%04X, re-converted to 0x%04X", v, h.Bits(), again.Bits())
		}
	})
}
