package seq

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// FPS is one of the common playback rates.
type FPS uint8

const (
	FPS1 FPS = iota
	FPS3
	FPS6
	FPS12
	FPS15
	FPS16
	FPS18
	FPS23_98
	FPS24
	FPS25
	FPS29_97
	FPS30
	FPS50
	FPS59_94
	FPS60
	FPS120

	fpsCount
)

// DefaultFPS is the rate of a sequence that does not carry one.
const DefaultFPS = FPS24

var fpsLabels = []string{
	"1", "3", "6", "12", "15", "16", "18", "23.98",
	"24", "25", "29.97", "30", "50", "59.94", "60", "120",
}

var fpsSpeeds = [fpsCount]Speed{
	{1, 1}, {3, 1}, {6, 1}, {12, 1}, {15, 1}, {16, 1}, {18, 1}, {24000, 1001},
	{24, 1}, {25, 1}, {30000, 1001}, {30, 1}, {50, 1}, {60000, 1001}, {60, 1}, {120, 1},
}

// LabelsFPS returns the labels of all rates.
func LabelsFPS() []string {
	return slices.Clone(fpsLabels)
}

func (f FPS) String() string {
	if f >= fpsCount {
		return fmt.Sprintf("FPS(%d)", uint8(f))
	}
	return fpsLabels[f]
}

// ParseFPS returns the rate with the given label, such as "29.97".
func ParseFPS(s string) (FPS, error) {
	if i := slices.Index(fpsLabels, strings.TrimSpace(s)); i >= 0 {
		return FPS(i), nil
	}
	return 0, fmt.Errorf("seq: unknown rate %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (f FPS) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *FPS) UnmarshalText(text []byte) error {
	v, err := ParseFPS(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Speed is a playback rate expressed as the rational Scale/Duration frames
// per second, so 23.98 is 24000/1001. The zero Speed is unset.
type Speed struct {
	Scale    int
	Duration int
}

// NewSpeed returns the speed of a common rate.
func NewSpeed(f FPS) Speed {
	if f >= fpsCount {
		return Speed{}
	}
	return fpsSpeeds[f]
}

// Valid reports whether both terms of the rational are non-zero.
func (s Speed) Valid() bool {
	return s.Scale != 0 && s.Duration != 0
}

// Resolve returns s, or the speed of DefaultFPS when s is not valid.
func (s Speed) Resolve() Speed {
	if !s.Valid() {
		return NewSpeed(DefaultFPS)
	}
	return s
}

// Float returns the rate in frames per second, or 0 when s is not valid.
func (s Speed) Float() float64 {
	if !s.Valid() {
		return 0
	}
	return float64(s.Scale) / float64(s.Duration)
}

// FPS returns the common rate equal to s.
func (s Speed) FPS() (FPS, bool) {
	i := slices.Index(fpsSpeeds[:], s)
	return FPS(i), i >= 0
}

// String returns the label of a common rate, and the rate with two
// decimals otherwise.
func (s Speed) String() string {
	if f, ok := s.FPS(); ok {
		return f.String()
	}
	return strconv.FormatFloat(s.Float(), 'f', 2, 64)
}

// SpeedFromFloat returns the common rate within 0.001 of fps, or fps
// rounded to whole frames per second.
func SpeedFromFloat(fps float64) Speed {
	for _, s := range fpsSpeeds {
		if math.Abs(fps-s.Float()) < 0.001 {
			return s
		}
	}
	return Speed{Scale: int(math.Round(fps)), Duration: 1}
}

// ParseSpeed parses a rate label or a decimal rate such as "48".
func ParseSpeed(s string) (Speed, error) {
	if f, err := ParseFPS(s); err == nil {
		return NewSpeed(f), nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 || v > math.MaxInt32 {
		return Speed{}, fmt.Errorf("seq: invalid speed %q", s)
	}
	sp := SpeedFromFloat(v)
	if !sp.Valid() {
		return Speed{}, fmt.Errorf("seq: invalid speed %q", s)
	}
	return sp, nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Speed) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Speed) UnmarshalText(text []byte) error {
	v, err := ParseSpeed(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
