package installer

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is an ordered sequence of non-negative integer components.
// Hex versions are normalized to a single decimal component before they get
// here, so every comparison is purely numeric.
type Version []uint64

// String returns the dotted decimal form.
func (v Version) String() string {
	parts := make([]string, len(v))
	for i, c := range v {
		parts[i] = strconv.FormatUint(c, 10)
	}
	return strings.Join(parts, ".")
}

// Comparison is the outcome of comparing a reference version to another.
type Comparison int

const (
	Equal            Comparison = iota // both versions are the same
	ReferenceGreater                   // the reference is newer
	ReferenceLess                      // the reference is older
)

// String returns the comparison name.
func (c Comparison) String() string {
	switch c {
	case Equal:
		return "Equal"
	case ReferenceGreater:
		return "ReferenceGreater"
	case ReferenceLess:
		return "ReferenceLess"
	default:
		return fmt.Sprintf("Comparison(%d)", int(c))
	}
}

// Compare compares reference against difference component by component.
// Missing trailing components count as 0, so "1.2" equals "1.2.0.0".
func Compare(reference, difference Version) Comparison {
	n := max(len(reference), len(difference))
	for i := 0; i < n; i++ {
		var r, d uint64
		if i < len(reference) {
			r = reference[i]
		}
		if i < len(difference) {
			d = difference[i]
		}

		if r > d {
			return ReferenceGreater
		}
		if r < d {
			return ReferenceLess
		}
	}
	return Equal
}

// ParseDecimalVersion splits a dotted decimal string such as "1.02.3" into
// its components. Leading zeros are accepted; empty components are not.
func ParseDecimalVersion(s string) (Version, error) {
	if s == "" {
		return nil, &ParseError{Input: s, Reason: "empty version"}
	}

	parts := strings.Split(s, ".")
	v := make(Version, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return nil, &ParseError{Input: s, Reason: "empty version component"}
		}
		n, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil, &ParseError{Input: s, Reason: fmt.Sprintf("component %q is not a number", part)}
		}
		v = append(v, n)
	}
	return v, nil
}

// ParseHexVersion converts a hexadecimal integer (at most 32 bits) into a
// single-component decimal version: "ff" -> 255.
func ParseHexVersion(s string) (Version, error) {
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return nil, &ParseError{Input: s, Reason: "not a 32-bit hexadecimal value"}
	}
	return Version{n}, nil
}
