package fileseq

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mrjoshuak/go-imageseq/container"
	"github.com/mrjoshuak/go-imageseq/seq"
)

// Compress groups numbered files into sequences. With mode seq.CompressOff
// files are returned unchanged. Otherwise numbered files with matching
// names are merged into the first of them, marked TypeSeq and their frames
// sorted; seq.CompressRange also fills each sequence in from start to end.
//
// When exts is not empty only files with one of those extensions, compared
// without case, are grouped; the rest stay plain. The input slice is not
// modified.
func Compress(files []File, mode seq.Compress, exts ...string) []File {
	if mode == seq.CompressOff {
		return files
	}
	allowed := container.NewSet(container.Convert(exts, strings.ToLower)...)

	out := make([]File, 0, len(files))
	last := -1
	for _, f := range files {
		f.Seq.Frames = append([]int64(nil), f.Seq.Frames...)
		grouped := f.IsSeqValid() &&
			(allowed.Len() == 0 || allowed.Has(strings.ToLower(f.Extension)))
		if grouped {
			if last != -1 && out[last].Add(f) {
				continue
			}
			last = -1
			for k := range out {
				if out[k].Type == TypeSeq && out[k].Add(f) {
					last = k
					break
				}
			}
			if last != -1 {
				continue
			}
			f.Type = TypeSeq
			last = len(out)
		}
		out = append(out, f)
	}

	for i := range out {
		if out[i].Type != TypeSeq {
			continue
		}
		seq.Sort(&out[i].Seq)
		if mode == seq.CompressRange && !out[i].Seq.IsEmpty() {
			s := out[i].Seq
			out[i].Seq = seq.FromRange(s.Start(), s.End(), s.Pad)
		}
	}
	return out
}

// ReadDir lists the files of dir, skipping subdirectories, and groups
// them with Compress.
func ReadDir(dir string, mode seq.Compress, exts ...string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	files := make([]File, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		files = append(files, Parse(filepath.Join(dir, e.Name())))
	}
	return Compress(files, mode, exts...), nil
}

// Resolve parses name and, when its number is a '#' placeholder, replaces
// it with the matching sequence found in the file's directory.
func Resolve(name string) (File, error) {
	f := Parse(name)
	if !f.IsWildcard() {
		return f, nil
	}
	dir := f.Path
	if dir == "" {
		dir = "."
	}
	files, err := ReadDir(dir, seq.CompressSparse, f.Extension)
	if err != nil {
		return f, err
	}
	m := WildcardMatch(f, files)
	if m.IsWildcard() {
		return f, fmt.Errorf("fileseq: no files match %q: %w", name, os.ErrNotExist)
	}
	return m, nil
}
