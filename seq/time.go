package seq

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Timecode is an SMPTE hours:minutes:seconds:frames value packed as eight
// BCD digits, hours in the top byte.
type Timecode uint32

// NewTimecode packs a time. Each field is kept to two decimal digits.
func NewTimecode(hour, minute, second, frame int) Timecode {
	bcd := func(v int, shift uint) uint32 {
		v = ((v % 100) + 100) % 100
		return uint32(v/10)<<(shift+4) | uint32(v%10)<<shift
	}
	return Timecode(bcd(hour, 24) | bcd(minute, 16) | bcd(second, 8) | bcd(frame, 0))
}

// Time unpacks the timecode.
func (t Timecode) Time() (hour, minute, second, frame int) {
	digits := func(shift uint) int {
		return int(t>>(shift+4)&0x0f)*10 + int(t>>shift&0x0f)
	}
	return digits(24), digits(16), digits(8), digits(0)
}

// String formats the timecode as "hh:mm:ss:ff".
func (t Timecode) String() string {
	h, m, s, f := t.Time()
	return fmt.Sprintf("%02d:%02d:%02d:%02d", h, m, s, f)
}

// ParseTimecode parses one to four colon separated fields, filled from the
// frame field upwards: "10" is frame 10 and "1:00" is one second.
func ParseTimecode(s string) (Timecode, error) {
	fields := strings.Split(s, ":")
	if len(fields) > 4 {
		return 0, fmt.Errorf("seq: invalid timecode %q", s)
	}
	var v [4]int
	off := 4 - len(fields)
	for i, field := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil || n < 0 || n > 99 {
			return 0, fmt.Errorf("seq: invalid timecode %q", s)
		}
		v[off+i] = n
	}
	return NewTimecode(v[0], v[1], v[2], v[3]), nil
}

// FrameToTimecode returns the timecode of frame at speed sp. Negative
// frames and invalid speeds give a zero timecode.
func FrameToTimecode(frame int64, sp Speed) Timecode {
	if !sp.Valid() || frame < 0 {
		return 0
	}
	rate := sp.Float()
	hour := int64(float64(frame) / (rate * 60 * 60))
	frame -= int64(float64(hour) * rate * 60 * 60)
	minute := int64(float64(frame) / (rate * 60))
	frame -= int64(float64(minute) * rate * 60)
	second := int64(float64(frame) / rate)
	frame -= int64(float64(second) * rate)
	return NewTimecode(int(hour), int(minute), int(second), int(frame))
}

// TimecodeToFrame returns the frame at timecode t and speed sp.
func TimecodeToFrame(t Timecode, sp Speed) int64 {
	if !sp.Valid() {
		return 0
	}
	h, m, s, f := t.Time()
	return int64(float64(h*60*60+m*60+s)*sp.Float()) + int64(f)
}

// Units selects how frame numbers are shown.
type Units uint8

const (
	UnitsTimecode Units = iota
	UnitsFrames
)

var unitsLabels = []string{"Timecode", "Frames"}

// LabelsUnits returns the labels of all units.
func LabelsUnits() []string {
	return slices.Clone(unitsLabels)
}

func (u Units) String() string {
	if int(u) >= len(unitsLabels) {
		return fmt.Sprintf("Units(%d)", uint8(u))
	}
	return unitsLabels[u]
}

// ParseUnitsLabel returns the units with the given label, ignoring case.
func ParseUnitsLabel(s string) (Units, error) {
	for i, label := range unitsLabels {
		if strings.EqualFold(label, s) {
			return Units(i), nil
		}
	}
	return 0, fmt.Errorf("seq: unknown units %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (u Units) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *Units) UnmarshalText(text []byte) error {
	v, err := ParseUnitsLabel(string(text))
	if err != nil {
		return err
	}
	*u = v
	return nil
}

// FormatUnits formats frame as a timecode at speed sp, or as a plain frame
// number.
func FormatUnits(frame int64, sp Speed, u Units) string {
	if u == UnitsTimecode {
		return FrameToTimecode(frame, sp).String()
	}
	return strconv.FormatInt(frame, 10)
}

// ParseUnits is the inverse of FormatUnits.
func ParseUnits(s string, sp Speed, u Units) (int64, error) {
	if u == UnitsTimecode {
		t, err := ParseTimecode(s)
		if err != nil {
			return 0, err
		}
		return TimecodeToFrame(t, sp), nil
	}
	frame, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("seq: invalid frame %q: %w", s, err)
	}
	return frame, nil
}

// FormatSeconds formats a duration in seconds as "hh:mm:ss.ss".
func FormatSeconds(seconds float64) string {
	seconds = math.Max(seconds, 0)
	hour := int(seconds) / (60 * 60)
	seconds -= float64(hour * 60 * 60)
	minute := int(seconds) / 60
	seconds -= float64(minute * 60)
	return fmt.Sprintf("%02d:%02d:%05.2f", hour, minute, seconds)
}
