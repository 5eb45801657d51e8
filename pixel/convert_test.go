package pixel

import (
	"bytes"
	"math"
	"testing"

	"github.com/mrjoshuak/go-imageseq/half"
)

func TestExactEndpoints(t *testing.T) {
	if got := U8ToU16(0); got != 0 {
		t.Errorf("U8ToU16(0) = %d", got)
	}
	if got := U8ToU16(255); got != 65535 {
		t.Errorf("U8ToU16(255) = %d", got)
	}
	if got := U10ToU8(0); got != 0 {
		t.Errorf("U10ToU8(0) = %d", got)
	}
	if got := U10ToU8(1023); got != 255 {
		t.Errorf("U10ToU8(1023) = %d", got)
	}
	if got := U8ToU10(255); got != 1023 {
		t.Errorf("U8ToU10(255) = %d", got)
	}
	if got := U10ToU16(1023); got != 65535 {
		t.Errorf("U10ToU16(1023) = %d", got)
	}
	if got := F32ToU8(0); got != 0 {
		t.Errorf("F32ToU8(0) = %d", got)
	}
	if got := F32ToU8(1); got != 255 {
		t.Errorf("F32ToU8(1) = %d", got)
	}
	if got := U16ToF32(65535); got != 1 {
		t.Errorf("U16ToF32(65535) = %v", got)
	}
	if got := U8ToF16(255); got != half.One {
		t.Errorf("U8ToF16(255) = %v", got)
	}
}

func TestFloatToIntClamps(t *testing.T) {
	tests := []struct {
		in   float32
		want uint8
	}{
		{-1, 0},
		{2, 255},
		{float32(math.Inf(1)), 255},
		{float32(math.Inf(-1)), 0},
		{float32(math.NaN()), 0},
		{0.5, 128},
	}
	for _, tt := range tests {
		if got := F32ToU8(tt.in); got != tt.want {
			t.Errorf("F32ToU8(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
	if got := F32ToU16(1.5); got != 65535 {
		t.Errorf("F32ToU16(1.5) = %d", got)
	}
	if got := F16ToU10(half.FromFloat32(-0.25)); got != 0 {
		t.Errorf("F16ToU10(-0.25) = %d", got)
	}
}

func TestIntegerRoundTrips(t *testing.T) {
	for i := 0; i <= 255; i++ {
		x := uint8(i)
		if got := U16ToU8(U8ToU16(x)); got != x {
			t.Errorf("U8 -> U16 -> U8: %d -> %d", x, got)
		}
		if got := U10ToU8(U8ToU10(x)); got != x {
			t.Errorf("U8 -> U10 -> U8: %d -> %d", x, got)
		}
		if got := F32ToU8(U8ToF32(x)); got != x {
			t.Errorf("U8 -> F32 -> U8: %d -> %d", x, got)
		}
		if got := F16ToU8(U8ToF16(x)); got != x {
			t.Errorf("U8 -> F16 -> U8: %d -> %d", x, got)
		}
	}
	for i := 0; i <= 1023; i++ {
		x := uint16(i)
		if got := U16ToU10(U10ToU16(x)); got != x {
			t.Errorf("U10 -> U16 -> U10: %d -> %d", x, got)
		}
		if got := F32ToU10(U10ToF32(x)); got != x {
			t.Errorf("U10 -> F32 -> U10: %d -> %d", x, got)
		}
	}
}

func TestWideningIsMonotonic(t *testing.T) {
	for i := 1; i <= 255; i++ {
		if U8ToU10(uint8(i)) <= U8ToU10(uint8(i-1)) {
			t.Fatalf("U8ToU10 not increasing at %d", i)
		}
		if U8ToF32(uint8(i)) <= U8ToF32(uint8(i-1)) {
			t.Fatalf("U8ToF32 not increasing at %d", i)
		}
	}
	for i := 1; i <= 1023; i++ {
		if U10ToU16(uint16(i)) <= U10ToU16(uint16(i-1)) {
			t.Fatalf("U10ToU16 not increasing at %d", i)
		}
	}
}

func TestPackU10(t *testing.T) {
	w := PackU10(1023, 0, 512)
	if w != 0xFFC00800 {
		t.Errorf("PackU10 = 0x%08X, want 0xFFC00800", w)
	}
	if w&3 != 0 {
		t.Error("low two bits must be zero")
	}
	r, g, b := UnpackU10(PackU10(1, 2, 3))
	if r != 1 || g != 2 || b != 3 {
		t.Errorf("UnpackU10 = %d, %d, %d", r, g, b)
	}
	// Bits above ten are dropped.
	r, _, _ = UnpackU10(PackU10(0xFFFF, 0, 0))
	if r != 1023 {
		t.Errorf("r = %d, want 1023", r)
	}
}

func TestConvertChannelMapping(t *testing.T) {
	tests := []struct {
		name     string
		in       Value
		src, dst Pixel
		want     Value
	}{
		{"L to RGB U10", U8Value(255), LU8, RGBU10, U10Value(1023, 1023, 1023)},
		{"L to RGBA fills alpha", U8Value(100), LU8, RGBAU8, U8Value(100, 100, 100, 255)},
		{"L to RGBA F16 alpha one", F32Value(0.5), LF32, RGBAF16,
			F16Value(half.FromFloat32(0.5), half.FromFloat32(0.5), half.FromFloat32(0.5), half.One)},
		{"L to LA U16 alpha max", U16Value(7), LU16, LAU16, U16Value(7, 65535)},
		{"RGB to L mean", U8Value(30, 60, 90), RGBU8, LU8, U8Value(60)},
		{"RGB to L truncates", U8Value(10, 10, 11), RGBU8, LU8, U8Value(10)},
		{"RGB U16 to L U8", U16Value(65535, 65535, 65535), RGBU16, LU8, U8Value(255)},
		{"RGBA to LA keeps alpha", U8Value(0, 0, 0, 128), RGBAU8, LAU16, U16Value(0, 32896)},
		{"RGBA to RGB drops alpha", U8Value(1, 2, 3, 4), RGBAU8, RGBU8, U8Value(1, 2, 3)},
		{"LA to L drops alpha", U8Value(9, 200), LAU8, LU8, U8Value(9)},
		{"LA to RGBA", U8Value(9, 200), LAU8, RGBAU8, U8Value(9, 9, 9, 200)},
		{"U16 to U8", U16Value(65535, 0, 257), RGBU16, RGBU8, U8Value(255, 0, 1)},
		{"F32 clamps", F32Value(2, -1, 0.5), RGBF32, RGBU8, U8Value(255, 0, 128)},
		{"U10 to F32", U10Value(0, 1023, 0), RGBU10, RGBF32, F32Value(0, 1, 0)},
		{"RGBA F32 to RGB U10", F32Value(1, 0, 1, 0.25), RGBAF32, RGBU10, U10Value(1023, 0, 1023)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Convert(tt.in, tt.src, tt.dst); got != tt.want {
				t.Errorf("Convert(%v -> %v) = %+v, want %+v", tt.src, tt.dst, got, tt.want)
			}
		})
	}
}

func TestConvertIdentity(t *testing.T) {
	v := Value{
		U8:  [4]uint8{1, 2, 3, 4},
		U16: [4]uint16{500, 600, 700, 800},
		F16: [4]half.Half{half.One, half.Zero, half.Max, half.FromFloat32(0.25)},
		F32: [4]float32{-1, 0, 1, 8},
	}
	for p := Pixel(0); p < Count; p++ {
		if got := Convert(v, p, p); got != v {
			t.Errorf("Convert(v, %v, %v) changed the value", p, p)
		}
	}
}

func TestConvertU8ThroughFloatIsLossless(t *testing.T) {
	for i := 0; i <= 255; i += 5 {
		v := U8Value(uint8(i), uint8(255-i), uint8(i/2), uint8(i))
		for _, mid := range []Pixel{RGBAU16, RGBAF16, RGBAF32} {
			got := Convert(Convert(v, RGBAU8, mid), mid, RGBAU8)
			if got != v {
				t.Errorf("via %v: %v -> %v", mid, v.U8, got.U8)
			}
		}
	}
}

func TestValueGetSet(t *testing.T) {
	var v Value
	v.Set(TypeU8, 0, 1)
	v.Set(TypeU10, 1, 1)
	v.Set(TypeF16, 2, 0.5)
	if v.U8[0] != 255 || v.U16[1] != 1023 || v.F16[2] != half.FromFloat32(0.5) {
		t.Errorf("Set produced %+v", v)
	}
	if got := v.Get(TypeU8, 0); got != 1 {
		t.Errorf("Get(U8) = %v", got)
	}
	if got := v.Get(TypeF16, 2); got != 0.5 {
		t.Errorf("Get(F16) = %v", got)
	}
}

func TestLoadStore(t *testing.T) {
	for p := Pixel(0); p < Count; p++ {
		v := NewColor(p, 0.25, 0.5, 0.75, 1).Value()
		b := make([]byte, p.Bytes())
		Store(b, p, v)
		if got := Load(b, p); got != v {
			t.Errorf("%v: Load(Store(v)) = %+v, want %+v", p, got, v)
		}
	}
}

func TestConvertRow(t *testing.T) {
	in := []byte{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
		10, 11, 12,
	}

	t.Run("copy", func(t *testing.T) {
		out := make([]byte, len(in))
		ConvertRow(in, RGBU8, out, RGBU8, 4, 1, false)
		if !bytes.Equal(out, in) {
			t.Errorf("got %v", out)
		}
	})

	t.Run("stride", func(t *testing.T) {
		out := make([]byte, 6)
		ConvertRow(in, RGBU8, out, RGBU8, 2, 2, false)
		want := []byte{1, 2, 3, 7, 8, 9}
		if !bytes.Equal(out, want) {
			t.Errorf("got %v, want %v", out, want)
		}
	})

	t.Run("bgr", func(t *testing.T) {
		out := make([]byte, 8)
		ConvertRow(in, RGBU8, out, RGBAU8, 2, 1, true)
		want := []byte{3, 2, 1, 255, 6, 5, 4, 255}
		if !bytes.Equal(out, want) {
			t.Errorf("got %v, want %v", out, want)
		}
	})

	t.Run("bgr ignored for luminance", func(t *testing.T) {
		out := make([]byte, 2)
		ConvertRow([]byte{1, 2}, LU8, out, LU8, 2, 1, true)
		if !bytes.Equal(out, []byte{1, 2}) {
			t.Errorf("got %v", out)
		}
	})

	t.Run("float to U10", func(t *testing.T) {
		src := make([]byte, 2*RGBF32.Bytes())
		Store(src, RGBF32, F32Value(1, 0, 0))
		Store(src[RGBF32.Bytes():], RGBF32, F32Value(0, 0, 1))
		out := make([]byte, 2*RGBU10.Bytes())
		ConvertRow(src, RGBF32, out, RGBU10, 2, 1, false)
		if got := Load(out, RGBU10); got != U10Value(1023, 0, 0) {
			t.Errorf("pixel 0 = %v", got.U16)
		}
		if got := Load(out[4:], RGBU10); got != U10Value(0, 0, 1023) {
			t.Errorf("pixel 1 = %v", got.U16)
		}
	})
}

func BenchmarkConvertRow(b *testing.B) {
	const width = 1920
	in := make([]byte, width*RGBAU8.Bytes())
	for i := range in {
		in[i] = byte(i)
	}
	out := make([]byte, width*RGBAF16.Bytes())
	b.SetBytes(int64(len(in)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ConvertRow(in, RGBAU8, out, RGBAF16, width, 1, false)
	}
}
