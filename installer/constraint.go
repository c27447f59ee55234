package installer

import (
	"fmt"
	"regexp"
	"strings"
)

// Base is the numeral system a version string is written in.
type Base int

const (
	Decimal Base = iota // dotted decimal, e.g. "10.1.3"
	Hex                 // single hexadecimal integer, e.g. "1f0a"
)

// String returns the base name.
func (b Base) String() string {
	if b == Hex {
		return "Hex"
	}
	return "Decimal"
}

var (
	decimalPattern = regexp.MustCompile(`^[0-9.]*(\^[0-9.]*)?$`)
	hexPattern     = regexp.MustCompile(`^[0-9A-Fa-f]*(\^[0-9A-Fa-f]*)?$`)
	decimalValue   = regexp.MustCompile(`^[0-9.]+$`)
	hexValue       = regexp.MustCompile(`^[0-9A-Fa-f]+$`)
)

// ParseError explains why a constraint pattern or system version could not
// be interpreted.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unparseable version %q: %s", e.Input, e.Reason)
}

// Constraint is a parsed vendor version constraint. Exact is set for the
// single-value form; Lower and Upper (both inclusive, either may be nil) are
// set for the "lower^upper" range form. A nil bound is unbounded.
type Constraint struct {
	Base  Base
	Exact Version
	Lower Version
	Upper Version
}

// ParseConstraint parses a vendor constraint pattern. All whitespace is
// removed first. A pattern made only of digits and dots is decimal; one made
// only of hex digits is hexadecimal; either may contain a single '^' to
// express an inclusive range.
func ParseConstraint(pattern string) (Constraint, error) {
	p := strings.Join(strings.Fields(pattern), "")

	var (
		c     Constraint
		parse func(string) (Version, error)
	)
	switch {
	case decimalPattern.MatchString(p):
		c.Base, parse = Decimal, ParseDecimalVersion
	case hexPattern.MatchString(p):
		c.Base, parse = Hex, ParseHexVersion
	default:
		return Constraint{}, &ParseError{Input: pattern, Reason: "unknown character set"}
	}

	lower, upper, isRange := strings.Cut(p, "^")
	if !isRange {
		exact, err := parse(p)
		if err != nil {
			return Constraint{}, err
		}
		c.Exact = exact
		return c, nil
	}

	if lower != "" {
		v, err := parse(lower)
		if err != nil {
			return Constraint{}, err
		}
		c.Lower = v
	}
	if upper != "" {
		v, err := parse(upper)
		if err != nil {
			return Constraint{}, err
		}
		c.Upper = v
	}
	return c, nil
}

// ParseSystemVersion parses an installed version as reported by the system.
// It must be entirely dotted decimal or entirely hexadecimal; surrounding
// whitespace from the query output is ignored.
func ParseSystemVersion(s string) (Version, error) {
	v := strings.TrimSpace(s)
	switch {
	case decimalValue.MatchString(v):
		return ParseDecimalVersion(v)
	case hexValue.MatchString(v):
		return ParseHexVersion(v)
	default:
		return nil, &ParseError{Input: s, Reason: "not a decimal or hexadecimal version"}
	}
}

// Allows reports whether v satisfies every bound set on the constraint.
// A range with neither bound allows everything.
func (c Constraint) Allows(v Version) bool {
	if c.Exact != nil && Compare(v, c.Exact) != Equal {
		return false
	}
	if c.Upper != nil && Compare(v, c.Upper) == ReferenceGreater {
		return false
	}
	if c.Lower != nil && Compare(v, c.Lower) == ReferenceLess {
		return false
	}
	return true
}

// String renders the constraint in normalized decimal form.
func (c Constraint) String() string {
	if c.Exact != nil {
		return c.Exact.String()
	}
	return c.Lower.String() + "^" + c.Upper.String()
}

// Outcome is the result of evaluating a constraint against a system version.
// Unparseable must be kept apart from NotSatisfied: it means the input was
// malformed, not that the installed version is wrong.
type Outcome int

const (
	Satisfied Outcome = iota
	NotSatisfied
	Unparseable
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Satisfied:
		return "Satisfied"
	case NotSatisfied:
		return "NotSatisfied"
	case Unparseable:
		return "Unparseable"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Evaluate checks the system version against the vendor constraint pattern.
// Any parse failure yields Unparseable.
func Evaluate(pattern, systemVersion string) Outcome {
	outcome, _ := evaluate(pattern, systemVersion)
	return outcome
}

// evaluate is Evaluate that also returns the *ParseError behind Unparseable.
func evaluate(pattern, systemVersion string) (Outcome, error) {
	c, err := ParseConstraint(pattern)
	if err != nil {
		return Unparseable, err
	}
	v, err := ParseSystemVersion(systemVersion)
	if err != nil {
		return Unparseable, err
	}
	if c.Allows(v) {
		return Satisfied, nil
	}
	return NotSatisfied, nil
}
