package urlmatch

import (
	"fmt"
	"regexp"

	"github.com/vitalvas/navmatch/pathpattern"
)

// ValueMatcher constrains a single query value or the fragment. It is one
// of Bool, Exact, Predicate or Pattern. A nil ValueMatcher imposes no
// constraint.
type ValueMatcher interface {
	valueMatcher()
}

// Bool requires the value to be present and not blank. The boolean itself
// is not compared: Bool(false) behaves like Bool(true).
type Bool bool

// Exact requires the value to be present and equal to the string.
type Exact string

// Predicate delegates the decision. present is false when the query key is
// missing; value is then "".
type Predicate func(value string, present bool, key string) bool

// Pattern requires the value to match the regular expression. A missing
// value is tested as "".
type Pattern struct {
	*regexp.Regexp
}

func (Bool) valueMatcher()      {}
func (Exact) valueMatcher()     {}
func (Predicate) valueMatcher() {}
func (Pattern) valueMatcher()   {}

// NewPattern wraps a compiled regexp.
func NewPattern(re *regexp.Regexp) Pattern {
	return Pattern{Regexp: re}
}

// MustPattern compiles expr into a Pattern and panics on error.
func MustPattern(expr string) Pattern {
	return Pattern{Regexp: regexp.MustCompile(expr)}
}

// Present returns a matcher requiring a non-blank value.
func Present() ValueMatcher {
	return Bool(true)
}

// Macro returns an anchored Pattern for one of the pathpattern macros,
// e.g. "uuid" or "int".
func Macro(name string) (Pattern, error) {
	p, ok := pathpattern.Macro(name)
	if !ok {
		return Pattern{}, fmt.Errorf("urlmatch: unknown macro %q", name)
	}

	re, err := regexp.Compile("^(?:" + p + ")$")
	if err != nil {
		return Pattern{}, err
	}

	return Pattern{Regexp: re}, nil
}

// matchValue reports whether an observed value satisfies expected.
func matchValue(value string, present bool, key string, expected ValueMatcher) bool {
	switch v := expected.(type) {
	case nil:
		return true
	case Bool:
		return present && value != ""
	case Exact:
		return present && value == string(v)
	case Predicate:
		if v == nil {
			return true
		}
		return v(value, present, key)
	case Pattern:
		if v.Regexp == nil {
			return true
		}
		return v.MatchString(value)
	default:
		return true
	}
}
