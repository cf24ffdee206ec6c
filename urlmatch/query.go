package urlmatch

import (
	"net/url"
	"strings"
)

// parseQuery parses a raw query string. The first value of a repeated key
// wins and malformed pairs are skipped.
func parseQuery(raw string) map[string]string {
	// ParseQuery keeps every valid pair even when it reports an error.
	values, _ := url.ParseQuery(strings.TrimPrefix(raw, "?"))

	query := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			query[k] = v[0]
		}
	}
	return query
}

// matchQuery parses raw and checks every matcher against its value. It
// returns the full parsed query when all matchers pass.
func (m *Matcher) matchQuery(raw string, matchers map[string]ValueMatcher) (map[string]string, bool) {
	query := m.queries.parse(raw)

	for key, expected := range matchers {
		value, present := query[key]
		if !matchValue(value, present, key, expected) {
			return nil, false
		}
	}

	return query, true
}
