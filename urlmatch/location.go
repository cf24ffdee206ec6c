package urlmatch

import (
	"net/http"
	"net/url"
	"strings"
)

// Location is a URL split into the parts the matcher looks at.
type Location struct {
	// Path is the path, still percent-encoded.
	Path string
	// Query is the raw query string without the leading "?".
	Query string
	// Fragment is the raw fragment without the leading "#".
	Fragment string
}

// ParseLocation splits a raw URL into path, query and fragment. Scheme
// and authority of an absolute URL are dropped. It never fails.
func ParseLocation(raw string) Location {
	var loc Location

	if i := strings.IndexByte(raw, '#'); i >= 0 {
		loc.Fragment = raw[i+1:]
		raw = raw[:i]
	}
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		loc.Query = raw[i+1:]
		raw = raw[:i]
	}
	loc.Path = stripOrigin(raw)

	return loc
}

// LocationFromURL returns the location of u using its escaped path.
func LocationFromURL(u *url.URL) Location {
	return Location{
		Path:     u.EscapedPath(),
		Query:    u.RawQuery,
		Fragment: u.EscapedFragment(),
	}
}

// LocationFromRequest returns the location of the request URL.
func LocationFromRequest(r *http.Request) Location {
	return LocationFromURL(r.URL)
}

// String reassembles the location into a relative URL.
func (l Location) String() string {
	var b strings.Builder
	b.WriteString(l.Path)
	if l.Query != "" {
		b.WriteByte('?')
		b.WriteString(l.Query)
	}
	if l.Fragment != "" {
		b.WriteByte('#')
		b.WriteString(l.Fragment)
	}
	return b.String()
}

// stripOrigin removes "scheme://authority" from an absolute URL.
func stripOrigin(s string) string {
	i := strings.Index(s, "://")
	if i <= 0 || !isScheme(s[:i]) {
		return s
	}

	rest := s[i+3:]
	if j := strings.IndexByte(rest, '/'); j >= 0 {
		return rest[j:]
	}
	return ""
}

// isScheme reports whether s is a valid URI scheme per RFC 3986
// Section 3.1.
func isScheme(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z':
		case i > 0 && ('0' <= c && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return true
}
