package imgdata

import (
	"slices"

	"github.com/mrjoshuak/go-imageseq/container"
)

// Well-known tag keys.
const (
	TagProject     = "Project"
	TagCreator     = "Creator"
	TagDescription = "Description"
	TagCopyright   = "Copyright"
	TagTime        = "Time"
	TagUTCOffset   = "UTC Offset"
	TagKeycode     = "Keycode"
	TagTimecode    = "Timecode"
)

// LabelsTag returns the well-known tag keys.
func LabelsTag() []string {
	return []string{
		TagProject, TagCreator, TagDescription, TagCopyright,
		TagTime, TagUTCOffset, TagKeycode, TagTimecode,
	}
}

// Tag is one metadata entry.
type Tag struct {
	Key, Value string
}

// Tags is file metadata as key/value pairs in insertion order. Keys are
// unique.
type Tags []Tag

func (t Tags) index(key string) int {
	return slices.IndexFunc(t, func(tag Tag) bool { return tag.Key == key })
}

// Set stores value under key. An existing key keeps its position.
func (t *Tags) Set(key, value string) {
	if i := t.index(key); i >= 0 {
		(*t)[i].Value = value
		return
	}
	*t = append(*t, Tag{key, value})
}

// Get returns the value stored under key.
func (t Tags) Get(key string) (string, bool) {
	if i := t.index(key); i >= 0 {
		return t[i].Value, true
	}
	return "", false
}

// Merge sets every entry of o.
func (t *Tags) Merge(o Tags) {
	for _, tag := range o {
		t.Set(tag.Key, tag.Value)
	}
}

// Keys returns the keys in order.
func (t Tags) Keys() []string {
	return container.Convert(t, func(tag Tag) string { return tag.Key })
}

// Clone returns a copy of t that shares no storage with it.
func (t Tags) Clone() Tags {
	return slices.Clone(t)
}

// Equal reports whether t and o hold the same entries in the same order.
func (t Tags) Equal(o Tags) bool {
	return slices.Equal(t, o)
}
