package pixel

import (
	"errors"
	"testing"
)

func TestPixelMetadata(t *testing.T) {
	tests := []struct {
		p        Pixel
		format   Format
		typ      Type
		channels int
		chBytes  int
		bytes    int
		bitDepth int
		max      int
		label    string
	}{
		{LU8, FormatL, TypeU8, 1, 1, 1, 8, 255, "L U8"},
		{LF32, FormatL, TypeF32, 1, 4, 4, 32, 1, "L F32"},
		{LAU16, FormatLA, TypeU16, 2, 2, 4, 16, 65535, "LA U16"},
		{RGBU10, FormatRGB, TypeU10, 3, 0, 4, 10, 1023, "RGB U10"},
		{RGBF16, FormatRGB, TypeF16, 3, 2, 6, 16, 1, "RGB F16"},
		{RGBAU8, FormatRGBA, TypeU8, 4, 1, 4, 8, 255, "RGBA U8"},
		{RGBAF32, FormatRGBA, TypeF32, 4, 4, 16, 32, 1, "RGBA F32"},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := tt.p.Format(); got != tt.format {
				t.Errorf("Format() = %v, want %v", got, tt.format)
			}
			if got := tt.p.Type(); got != tt.typ {
				t.Errorf("Type() = %v, want %v", got, tt.typ)
			}
			if got := tt.p.Channels(); got != tt.channels {
				t.Errorf("Channels() = %d, want %d", got, tt.channels)
			}
			if got := tt.p.ChannelBytes(); got != tt.chBytes {
				t.Errorf("ChannelBytes() = %d, want %d", got, tt.chBytes)
			}
			if got := tt.p.Bytes(); got != tt.bytes {
				t.Errorf("Bytes() = %d, want %d", got, tt.bytes)
			}
			if got := tt.p.BitDepth(); got != tt.bitDepth {
				t.Errorf("BitDepth() = %d, want %d", got, tt.bitDepth)
			}
			if got := tt.p.Max(); got != tt.max {
				t.Errorf("Max() = %d, want %d", got, tt.max)
			}
			if got := tt.p.String(); got != tt.label {
				t.Errorf("String() = %q, want %q", got, tt.label)
			}
		})
	}
}

func TestBytesIsChannelsTimesChannelBytes(t *testing.T) {
	for p := Pixel(0); p < Count; p++ {
		if p == RGBU10 {
			continue
		}
		if p.Bytes() != p.Channels()*p.ChannelBytes() {
			t.Errorf("%v: Bytes() = %d, want %d", p, p.Bytes(), p.Channels()*p.ChannelBytes())
		}
	}
}

func TestNewAndClosest(t *testing.T) {
	for p := Pixel(0); p < Count; p++ {
		got, ok := New(p.Format(), p.Type())
		if !ok || got != p {
			t.Errorf("New(%v, %v) = %v, %v", p.Format(), p.Type(), got, ok)
		}
	}
	if _, ok := New(FormatLA, TypeU10); ok {
		t.Error("New(LA, U10) should not exist")
	}
	if got := Closest(FormatRGBA, TypeU10); got != RGBAU16 {
		t.Errorf("Closest(RGBA, U10) = %v, want RGBA U16", got)
	}
	if got := Closest(FormatRGB, TypeU10); got != RGBU10 {
		t.Errorf("Closest(RGB, U10) = %v, want RGB U10", got)
	}
}

func TestFromInfo(t *testing.T) {
	tests := []struct {
		channels, depth int
		float           bool
		want            Pixel
		ok              bool
	}{
		{1, 8, false, LU8, true},
		{2, 16, true, LAF16, true},
		{3, 10, false, RGBU10, true},
		{4, 32, true, RGBAF32, true},
		{4, 10, false, 0, false},
		{5, 8, false, 0, false},
		{3, 12, false, 0, false},
		{3, 8, true, 0, false},
	}
	for _, tt := range tests {
		got, ok := FromInfo(tt.channels, tt.depth, tt.float)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("FromInfo(%d, %d, %v) = %v, %v; want %v, %v",
				tt.channels, tt.depth, tt.float, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Pixel
	}{
		{"L U8", LU8},
		{"rgba f16", RGBAF16},
		{"RGB_U10", RGBU10},
		{"la-u16", LAU16},
		{"RGBAF32", RGBAF32},
		{" rgb u8 ", RGBU8},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("Parse(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}

	if _, err := Parse("RGB U12"); !errors.Is(err, ErrParse) {
		t.Errorf("Parse(bad) error = %v, want ErrParse", err)
	}
	if f, err := ParseFormat("rgba"); err != nil || f != FormatRGBA {
		t.Errorf("ParseFormat(rgba) = %v, %v", f, err)
	}
	if typ, err := ParseType("f16"); err != nil || typ != TypeF16 {
		t.Errorf("ParseType(f16) = %v, %v", typ, err)
	}
	if _, err := ParseType("u32"); !errors.Is(err, ErrParse) {
		t.Errorf("ParseType(u32) error = %v", err)
	}
}

func TestLabelsRoundTrip(t *testing.T) {
	labels := Labels()
	if len(labels) != Count {
		t.Fatalf("len(Labels()) = %d, want %d", len(labels), Count)
	}
	for i, label := range labels {
		p, err := Parse(label)
		if err != nil || p != Pixel(i) {
			t.Errorf("Parse(%q) = %v, %v", label, p, err)
		}
	}
	if len(LabelsFormat()) != 4 || len(LabelsType()) != 5 {
		t.Error("unexpected label counts")
	}

	labels[0] = "x"
	LabelsFormat()[0] = "x"
	if Labels()[0] == "x" || LabelsFormat()[0] == "x" || Pixel(0).String() == "x" {
		t.Error("writing to a returned label slice changed the labels")
	}
}

func TestTextMarshaling(t *testing.T) {
	b, err := RGBAF16.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	var p Pixel
	if err := p.UnmarshalText(b); err != nil || p != RGBAF16 {
		t.Errorf("UnmarshalText(%q) = %v, %v", b, p, err)
	}
	if _, err := Pixel(Count).MarshalText(); err == nil {
		t.Error("expected error for invalid pixel")
	}
}

func TestInvalidPixelPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Pixel(Count).Bytes()
}
