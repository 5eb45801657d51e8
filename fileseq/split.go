// Package fileseq groups numbered file names such as plate.0001.exr into
// sequences and expands sequence names back into files.
package fileseq

// Parts are the pieces of a file name. Concatenated in order they give
// back the original name.
type Parts struct {
	Path      string
	Base      string
	Number    string
	Extension string
}

func (p Parts) String() string {
	return p.Path + p.Base + p.Number + p.Extension
}

func isPathSeparator(c byte) bool { return c == '/' || c == '\\' }
func isSeqChar(c byte) bool       { return ('0' <= c && c <= '9') || c == '#' }
func isSeqSeparator(c byte) bool  { return c == '-' || c == ',' }

// padMatch reports whether two numbers can belong to one sequence: when
// either is zero padded both must have the same width.
func padMatch(a, b string) bool {
	if (len(a) > 1 && a[0] == '0') || (len(b) > 1 && b[0] == '0') {
		return len(a) == len(b)
	}
	return true
}

// Split breaks name into path, base, number and extension.
//
// The extension starts at the last dot of the final path element, unless
// that dot is the first character of name. The number is the run of digits,
// '#' and the separators '-' and ',' before the extension, trimmed back to
// the last separator where zero padded widths disagree. A '-' directly
// before the number is read as a sign, so "shot-2.png" has number "-2".
func Split(name string) Parts {
	var p Parts
	n := len(name)
	if n == 0 {
		return p
	}

	i := n - 1
	for ; name[i] != '.' && !isPathSeparator(name[i]) && i > 0; i-- {
	}
	if i > 0 && name[i] == '.' {
		p.Extension = name[i:]
		i--
	} else {
		i = n - 1
	}

	if i >= 0 && isSeqChar(name[i]) {
		end := i
		sep := -1
		var word string
		for ; i > 0; i-- {
			c := name[i-1]
			if !isSeqChar(c) || isSeqSeparator(c) {
				if sep != -1 && !padMatch(name[i:sep], word) {
					i = sep + 1
					break
				}
				if sep == -1 {
					word = name[i : end+1]
				} else {
					word = name[i:sep]
				}
				sep = i - 1
			}
			if !isSeqChar(c) && !isSeqSeparator(c) {
				break
			}
		}
		p.Number = name[i : end+1]
		i--
	}

	if i >= 0 && !isPathSeparator(name[i]) {
		end := i
		for ; i > 0 && !isPathSeparator(name[i-1]); i-- {
		}
		p.Base = name[i : end+1]
		i--
	}

	if i >= 0 {
		p.Path = name[:i+1]
	}
	return p
}
