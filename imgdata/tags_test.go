package imgdata

import (
	"slices"
	"testing"

	"github.com/mrjoshuak/go-imageseq/pixel"
	"github.com/mrjoshuak/go-imageseq/vmath"
)

func TestTags(t *testing.T) {
	var tags Tags
	tags.Set(TagCreator, "comp")
	tags.Set(TagProject, "show")
	tags.Set(TagCreator, "paint")

	if !slices.Equal(tags.Keys(), []string{TagCreator, TagProject}) {
		t.Errorf("Keys() = %v", tags.Keys())
	}
	if v, ok := tags.Get(TagCreator); !ok || v != "paint" {
		t.Errorf("Get(Creator) = %q, %v", v, ok)
	}
	if _, ok := tags.Get(TagTime); ok {
		t.Error("Get(Time) should miss")
	}

	tags.Merge(Tags{{TagProject, "film"}, {TagTimecode, "01:00:00:00"}})
	want := Tags{{TagCreator, "paint"}, {TagProject, "film"}, {TagTimecode, "01:00:00:00"}}
	if !tags.Equal(want) {
		t.Errorf("Merge() = %v", tags)
	}

	c := tags.Clone()
	c.Set(TagCreator, "x")
	if v, _ := tags.Get(TagCreator); v != "paint" {
		t.Error("Clone shares storage")
	}
	if len(LabelsTag()) != 8 {
		t.Errorf("LabelsTag() = %v", LabelsTag())
	}
}

func TestDataKeepsOwnTags(t *testing.T) {
	info := NewInfo(vmath.V2i{X: 2, Y: 2}, pixel.RGBAU8)
	info.Tags.Set(TagDescription, "a")
	d := mustNew(t, info)
	info.Tags[0].Value = "changed"

	got := d.Info()
	if v, _ := got.Tags.Get(TagDescription); v != "a" {
		t.Errorf("tags follow the caller's slice: %q", v)
	}
	got.Tags[0].Value = "changed"
	if v, _ := d.Clone().Info().Tags.Get(TagDescription); v != "a" {
		t.Errorf("Info() exposes the buffer's tags: %q", v)
	}

	conv, err := Converted(d, pixel.LU16)
	if err != nil {
		t.Fatal(err)
	}
	if !conv.Info().Tags.Equal(d.Info().Tags) {
		t.Error("Converted dropped tags")
	}
}
