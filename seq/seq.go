// Package seq models frame sequences and their compact range notation.
//
// A Seq is an ordered list of frame numbers plus a zero-padding width. It
// serializes to notation such as "1-3,5" or "0010-0001" and parses back.
package seq

import (
	"slices"
	"strconv"
	"strings"

	"github.com/mrjoshuak/go-imageseq/vmath"
)

// MaxFrames bounds the number of frames a single range expands to: one
// day of frames at one frame per second.
const MaxFrames = 3 * 60 * 60 * 24

// NotFound is returned by FindClosest when there are no frames.
const NotFound = -1

// Seq is an ordered list of frames and the number of digits each frame is
// zero-padded to. Order is preserved exactly as given.
type Seq struct {
	Frames []int64
	Pad    int
	// Speed is the playback rate; the zero value means DefaultFPS.
	Speed Speed
}

// New returns a sequence holding a copy of frames.
func New(frames []int64, pad int) Seq {
	return Seq{Frames: slices.Clone(frames), Pad: pad}
}

// FromRange returns the frames from start to end inclusive, stepping by one
// in whichever direction end lies. At most MaxFrames frames are produced.
func FromRange(start, end int64, pad int) Seq {
	return Seq{Frames: expand(start, end), Pad: pad}
}

func expand(start, end int64) []int64 {
	step := int64(1)
	span := uint64(end - start)
	if end < start {
		step = -1
		span = uint64(start - end)
	}
	n := MaxFrames
	if span < MaxFrames {
		n = int(span) + 1
	}
	frames := make([]int64, n)
	for i := range frames {
		frames[i] = start + int64(i)*step
	}
	return frames
}

// Start returns the first frame, or 0 when s is empty.
func (s Seq) Start() int64 {
	if len(s.Frames) == 0 {
		return 0
	}
	return s.Frames[0]
}

// End returns the last frame, or 0 when s is empty.
func (s Seq) End() int64 {
	if len(s.Frames) == 0 {
		return 0
	}
	return s.Frames[len(s.Frames)-1]
}

// Len returns the number of frames.
func (s Seq) Len() int { return len(s.Frames) }

// IsEmpty reports whether s has no frames.
func (s Seq) IsEmpty() bool { return len(s.Frames) == 0 }

// Equal reports whether s and o have the same frames in the same order,
// the same pad and the same resolved speed.
func (s Seq) Equal(o Seq) bool {
	return s.Pad == o.Pad &&
		s.Speed.Resolve() == o.Speed.Resolve() &&
		slices.Equal(s.Frames, o.Frames)
}

// Duration returns the length of s in seconds at its speed.
func (s Seq) Duration() float64 {
	sp := s.Speed.Resolve()
	return float64(len(s.Frames)) * float64(sp.Duration) / float64(sp.Scale)
}

// String returns the range notation of s.
func (s Seq) String() string {
	return Format(s)
}

// MarshalText implements encoding.TextMarshaler.
func (s Seq) MarshalText() ([]byte, error) {
	return []byte(Format(s)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Seq) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Format returns the range notation of s. Consecutive frames stepping by
// +1 or -1 collapse into "first-last"; runs are joined with commas. The
// direction of every run is kept, so [3 2 1] formats as "3-1".
func Format(s Seq) string {
	var b strings.Builder
	for i, r := range vmath.Runs(s.Frames, vmath.RunBoth) {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(FormatFrame(r.First, s.Pad))
		if r.Len > 1 {
			b.WriteByte('-')
			b.WriteString(FormatFrame(r.Last, s.Pad))
		}
	}
	return b.String()
}

// FormatFrame formats frame zero-padded to pad digits. Negative frames are
// never padded.
func FormatFrame(frame int64, pad int) string {
	s := strconv.FormatInt(frame, 10)
	if frame < 0 || len(s) >= pad {
		return s
	}
	return strings.Repeat("0", pad-len(s)) + s
}

// Sort orders the frames of s ascending in place. Duplicates are kept.
func Sort(s *Seq) {
	slices.Sort(s.Frames)
}

// FindClosest returns the index of the frame nearest to frame. The first
// of equally near frames wins. It returns NotFound for an empty list.
func FindClosest(frame int64, frames []int64) int {
	best := NotFound
	var bestDist uint64
	for i, f := range frames {
		d := distance(f, frame)
		if best == NotFound || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func distance(a, b int64) uint64 {
	if a < b {
		return uint64(b - a)
	}
	return uint64(a - b)
}
