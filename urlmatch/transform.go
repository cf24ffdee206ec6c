package urlmatch

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
)

// ErrUnknownTransform is returned by TransformByKind for unknown kinds.
var ErrUnknownTransform = errors.New("urlmatch: unknown transform")

// Transform converts a captured path value into a parameter value.
type Transform func(value, name string) any

// Identity returns the captured value unchanged.
func Identity(value, _ string) any {
	return value
}

// Unescape percent-decodes the value per RFC 3986 Section 2.1. The raw
// value is returned when it is not validly encoded.
func Unescape(value, _ string) any {
	if s, err := url.PathUnescape(value); err == nil {
		return s
	}
	return value
}

// Int parses the value as a base-10 int. The raw value is returned when it
// does not parse.
func Int(value, _ string) any {
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	return value
}

// UUID parses the value as a uuid.UUID. The raw value is returned when it
// does not parse.
func UUID(value, _ string) any {
	if id, err := uuid.Parse(value); err == nil {
		return id
	}
	return value
}

// ByName dispatches to the transform registered for the parameter name,
// or to fallback. A nil fallback means Identity.
func ByName(transforms map[string]Transform, fallback Transform) Transform {
	if fallback == nil {
		fallback = Identity
	}
	return func(value, name string) any {
		if t, ok := transforms[name]; ok && t != nil {
			return t(value, name)
		}
		return fallback(value, name)
	}
}

// TransformByKind returns a stock transform by name: "string" (or ""),
// "unescape", "int" or "uuid".
func TransformByKind(kind string) (Transform, error) {
	switch kind {
	case "", "string":
		return Identity, nil
	case "unescape":
		return Unescape, nil
	case "int":
		return Int, nil
	case "uuid":
		return UUID, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownTransform, kind)
	}
}
