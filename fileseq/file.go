package fileseq

import (
	"fmt"
	"strings"

	"github.com/mrjoshuak/go-imageseq/seq"
)

// Type tells plain files from sequences.
type Type uint8

const (
	TypePlain Type = iota
	TypeSeq
)

func (t Type) String() string {
	switch t {
	case TypePlain:
		return "File"
	case TypeSeq:
		return "Seq"
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// File is a file name, or a sequence of names that differ only in their
// frame number.
type File struct {
	Parts
	Type Type
	Seq  seq.Seq
}

// Parse splits name and reads its number as a frame list. Names whose
// number holds more than one frame, or '#' placeholders, are sequences.
// Numbers that are not valid frame lists leave Seq empty.
func Parse(name string) File {
	f := File{Parts: Split(name)}
	if f.Number == "" {
		return f
	}
	s, err := seq.Parse(f.Number)
	if err != nil {
		return f
	}
	f.Seq = s
	if s.Len() > 1 || f.IsWildcard() {
		f.Type = TypeSeq
	}
	return f
}

// IsWildcard reports whether the number is a '#' placeholder such as
// "####".
func (f File) IsWildcard() bool {
	return strings.Contains(f.Number, "#")
}

// IsSeqValid reports whether f can join a sequence: it has a number that
// parsed to at least one frame.
func (f File) IsSeqValid() bool {
	return f.Number != "" && !f.Seq.IsEmpty()
}

// Name returns the file name of one frame. Plain files return their own
// name.
func (f File) Name(frame int64) string {
	if f.Type != TypeSeq {
		return f.Parts.String()
	}
	return f.Path + f.Base + seq.FormatFrame(frame, f.Seq.Pad) + f.Extension
}

// String returns the name with sequence frames written in range notation,
// such as "plate.0001-0010.exr".
func (f File) String() string {
	if f.Type == TypeSeq && !f.Seq.IsEmpty() {
		return f.Path + f.Base + seq.Format(f.Seq) + f.Extension
	}
	return f.Parts.String()
}

// Expand returns the names of every frame in order. Plain files and empty
// sequences return their own name.
func (f File) Expand() []string {
	if f.Type != TypeSeq || f.Seq.IsEmpty() {
		return []string{f.String()}
	}
	out := make([]string, len(f.Seq.Frames))
	for i, frame := range f.Seq.Frames {
		out[i] = f.Name(frame)
	}
	return out
}

// Add appends the frames of o to f when o names the same sequence: equal
// path, base and extension, and compatible zero padding.
func (f *File) Add(o File) bool {
	if f.Path != o.Path || f.Base != o.Base || f.Extension != o.Extension {
		return false
	}
	if !o.IsSeqValid() {
		return false
	}
	pad, ok := joinPad(f.Seq, o.Seq)
	if !ok {
		return false
	}
	f.Seq.Frames = append(f.Seq.Frames, o.Seq.Frames...)
	f.Seq.Pad = pad
	return true
}

// joinPad returns the pad of the union of a and b. Sequences with
// different pads join only when every frame of the unpadded one is
// already as wide as the padded one.
func joinPad(a, b seq.Seq) (int, bool) {
	switch {
	case a.Pad == b.Pad:
		return a.Pad, true
	case a.Pad == 0 && minWidth(a) >= b.Pad:
		return b.Pad, true
	case b.Pad == 0 && minWidth(b) >= a.Pad:
		return a.Pad, true
	}
	return 0, false
}

// minWidth returns the fewest digits any frame of s is written with, or 0
// when s holds a negative frame.
func minWidth(s seq.Seq) int {
	w := -1
	for _, frame := range s.Frames {
		if frame < 0 {
			return 0
		}
		n := len(seq.FormatFrame(frame, 0))
		if w == -1 || n < w {
			w = n
		}
	}
	return max(w, 0)
}

// WildcardMatch returns the first file of list with the base and
// extension of in, or in when none match. It resolves "plate.####.exr"
// against a directory listing.
func WildcardMatch(in File, list []File) File {
	for _, f := range list {
		if f.Base == in.Base && f.Extension == in.Extension {
			return f
		}
	}
	return in
}
