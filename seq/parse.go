package seq

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrParse is matched by every error returned from Parse.
var ErrParse = errors.New("seq: malformed frame list")

// ParseError reports a token of a frame list that could not be parsed.
type ParseError struct {
	Token string
	Err   error // underlying cause, may be nil
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("seq: invalid token %q: %v", e.Token, e.Err)
	}
	return fmt.Sprintf("seq: invalid token %q", e.Token)
}

// Unwrap returns ErrParse and the underlying cause.
func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrParse, e.Err}
	}
	return []error{ErrParse}
}

// Parse parses range notation produced by Format.
//
// The list is split on commas. Each token is a frame "N" or an inclusive
// range "A-B", where either endpoint may be negative ("-3--1"). A token
// made only of '#' characters is a padding placeholder: it sets the pad
// and adds no frames. A number written with a leading zero sets the pad to
// its digit count; when tokens disagree the largest pad wins.
//
// The empty string parses to the single frame 0. Parsing stops at the
// first malformed token and returns a *ParseError.
func Parse(s string) (Seq, error) {
	if s == "" {
		return Seq{Frames: []int64{0}}, nil
	}
	var out Seq
	for _, tok := range strings.Split(s, ",") {
		if err := parseToken(&out, tok); err != nil {
			return Seq{}, err
		}
	}
	return out, nil
}

// ParseLenient parses like Parse but skips malformed tokens. The returned
// error joins one *ParseError per skipped token and is nil when every token
// parsed.
func ParseLenient(s string) (Seq, error) {
	if s == "" {
		return Seq{Frames: []int64{0}}, nil
	}
	var (
		out  Seq
		errs []error
	)
	for _, tok := range strings.Split(s, ",") {
		if err := parseToken(&out, tok); err != nil {
			errs = append(errs, err)
		}
	}
	return out, errors.Join(errs...)
}

func parseToken(out *Seq, tok string) error {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return &ParseError{Token: tok}
	}

	// The range separator is the first '-' that is not a leading sign.
	if i := strings.IndexByte(tok[1:], '-'); i >= 0 {
		a, padA, err := parseNumber(tok[:i+1])
		if err != nil {
			return &ParseError{Token: tok, Err: err}
		}
		b, padB, err := parseNumber(tok[i+2:])
		if err != nil {
			return &ParseError{Token: tok, Err: err}
		}
		out.Frames = append(out.Frames, expand(a, b)...)
		out.Pad = max(out.Pad, padA, padB)
		return nil
	}

	frame, pad, err := ParseFrame(tok)
	if err != nil {
		return err
	}
	if frame >= 0 || tok[0] != '#' {
		out.Frames = append(out.Frames, frame)
	}
	out.Pad = max(out.Pad, pad)
	return nil
}

// ParseFrame parses a single frame number and reports its pad. A string of
// '#' characters is a placeholder and parses to frame -1 with a pad equal
// to its length.
func ParseFrame(s string) (frame int64, pad int, err error) {
	if s != "" && strings.Trim(s, "#") == "" {
		return -1, len(s), nil
	}
	frame, pad, err = parseNumber(s)
	if err != nil {
		return 0, 0, &ParseError{Token: s, Err: err}
	}
	return frame, pad, nil
}

var errDigits = errors.New("expected digits")

func parseNumber(s string) (int64, int, error) {
	digits := strings.TrimPrefix(s, "-")
	if digits == "" {
		return 0, 0, errDigits
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, 0, errDigits
		}
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, 0, err
	}
	pad := 0
	if len(digits) == len(s) && len(digits) > 1 && digits[0] == '0' {
		pad = len(digits)
	}
	return v, pad, nil
}
