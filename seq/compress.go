package seq

import (
	"fmt"
	"slices"
	"strings"
)

// Compress controls how numbered files are grouped into sequences when
// listing a directory.
type Compress uint8

const (
	// CompressOff lists every file individually.
	CompressOff Compress = iota
	// CompressSparse groups numbered files and keeps every frame.
	CompressSparse
	// CompressRange groups numbered files into a single start-end range.
	CompressRange
)

var compressLabels = []string{"Off", "Sparse", "Range"}

// LabelsCompress returns the labels of all compress modes.
func LabelsCompress() []string {
	return slices.Clone(compressLabels)
}

func (c Compress) String() string {
	if int(c) >= len(compressLabels) {
		return fmt.Sprintf("Compress(%d)", uint8(c))
	}
	return compressLabels[c]
}

// ParseCompress returns the mode with the given label, ignoring case.
func ParseCompress(s string) (Compress, error) {
	for i, label := range compressLabels {
		if strings.EqualFold(label, s) {
			return Compress(i), nil
		}
	}
	return 0, fmt.Errorf("seq: unknown compress mode %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Compress) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Compress) UnmarshalText(text []byte) error {
	v, err := ParseCompress(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
