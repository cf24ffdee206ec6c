package pathpattern

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Options controls how a template is turned into a regexp.
type Options struct {
	// End requires the pattern to consume the whole path. When false the
	// match may stop at any "/" boundary (prefix matching).
	End bool
	// Strict makes the trailing slash significant. When false a trailing
	// "/" in the path or the template is optional.
	Strict bool
}

// Key describes one capture slot of a compiled pattern.
type Key struct {
	// Name is the parameter name, or its position ("0", "1", ...) for
	// unnamed groups and asterisks.
	Name string
	// Prefix is the "/" or "." that precedes the parameter, if any.
	Prefix string
	// Delimiter is the character a default parameter cannot contain.
	Delimiter string
	// Pattern is the regexp fragment a single value must match.
	Pattern string
	// Optional is set by the "?" and "*" modifiers.
	Optional bool
	// Repeat is set by the "*" and "+" modifiers.
	Repeat bool
	// Partial reports that the parameter is followed by text other than its
	// prefix, so an optional parameter still requires the prefix.
	Partial bool
}

// Pattern is a compiled path template. It is immutable and safe for
// concurrent use.
type Pattern struct {
	template string
	options  Options
	regexp   *regexp.Regexp
	keys     []Key
	names    []string
}

// Match is the outcome of a successful Exec.
type Match struct {
	// Path is the matched portion of the input.
	Path string
	// Values holds the captured values aligned with Pattern.Names. Optional
	// parameters that did not participate are "".
	Values []string
}

// token is either a literal run or a parameter.
type token struct {
	literal string
	key     *Key
}

// Compile parses a path template and returns the compiled pattern.
func Compile(tpl string, opts Options) (*Pattern, error) {
	tokens, err := parse(tpl)
	if err != nil {
		return nil, err
	}

	var keys []Key
	for _, t := range tokens {
		if t.key != nil {
			keys = append(keys, *t.key)
		}
	}

	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.Name
	}

	if err := checkDuplicateNames(tpl, names); err != nil {
		return nil, err
	}

	reg, err := regexp.Compile(buildRegexp(tokens, opts))
	if err != nil {
		return nil, fmt.Errorf("pathpattern: compiling %q: %w", tpl, err)
	}

	if reg.NumSubexp() != len(keys)+1 {
		return nil, fmt.Errorf("pathpattern: unexpected capture groups in %q", tpl)
	}

	return &Pattern{
		template: tpl,
		options:  opts,
		regexp:   reg,
		keys:     keys,
		names:    names,
	}, nil
}

// MustCompile is like Compile but panics if the template cannot be parsed.
func MustCompile(tpl string, opts Options) *Pattern {
	p, err := Compile(tpl, opts)
	if err != nil {
		panic(err)
	}
	return p
}

// Exec matches path against the pattern. It returns nil when the path does
// not match.
func (p *Pattern) Exec(path string) *Match {
	idx := p.regexp.FindStringSubmatchIndex(path)
	if idx == nil {
		return nil
	}

	m := &Match{
		Path:   path[idx[2]:idx[3]],
		Values: make([]string, len(p.keys)),
	}
	for i := range p.keys {
		start, end := idx[2*(i+2)], idx[2*(i+2)+1]
		if start >= 0 {
			m.Values[i] = path[start:end]
		}
	}

	return m
}

// Names returns the capture slot names in declaration order.
func (p *Pattern) Names() []string {
	return p.names
}

// Keys returns a copy of the capture slot descriptions.
func (p *Pattern) Keys() []Key {
	keys := make([]Key, len(p.keys))
	copy(keys, p.keys)
	return keys
}

// Options returns the options the pattern was compiled with.
func (p *Pattern) Options() Options {
	return p.options
}

// Regexp returns the compiled regular expression.
func (p *Pattern) Regexp() *regexp.Regexp {
	return p.regexp
}

// String returns the source template.
func (p *Pattern) String() string {
	return p.template
}

// parse splits a template into literal and parameter tokens.
func parse(tpl string) ([]token, error) {
	var (
		tokens     []token
		lit        strings.Builder
		escapedEnd bool
		unnamed    int
	)

	flush := func() {
		if lit.Len() > 0 {
			tokens = append(tokens, token{literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(tpl); {
		var (
			name     string
			patt     string
			asterisk bool
		)

		c := tpl[i]
		switch {
		case c == '\\':
			if i+1 < len(tpl) {
				lit.WriteByte(tpl[i+1])
				i += 2
			} else {
				lit.WriteByte(c)
				i++
			}
			escapedEnd = true
			continue

		case c == ':' && i+1 < len(tpl) && isNameByte(tpl[i+1]):
			j := i + 1
			for j < len(tpl) && isNameByte(tpl[j]) {
				j++
			}
			name = tpl[i+1 : j]
			i = j
			if i < len(tpl) && tpl[i] == '(' {
				var err error
				if patt, i, err = readGroup(tpl, i); err != nil {
					return nil, err
				}
			}

		case c == '(':
			var err error
			if patt, i, err = readGroup(tpl, i); err != nil {
				return nil, err
			}
			name = strconv.Itoa(unnamed)
			unnamed++

		case c == '{':
			end, err := closingBrace(tpl, i)
			if err != nil {
				return nil, err
			}
			parts := strings.SplitN(tpl[i+1:end], ":", 2)
			if parts[0] == "" {
				return nil, fmt.Errorf("pathpattern: missing name in %q from %q", tpl[i:end+1], tpl)
			}
			name = parts[0]
			if len(parts) == 2 {
				if parts[1] == "" {
					return nil, fmt.Errorf("pathpattern: empty pattern for %q in %q", name, tpl)
				}
				patt = parts[1]
			}
			i = end + 1

		case c == '*':
			name = strconv.Itoa(unnamed)
			unnamed++
			patt = ".*"
			asterisk = true
			i++

		case c == '}':
			return nil, fmt.Errorf("pathpattern: unbalanced braces in %q", tpl)

		case c == ')':
			return nil, fmt.Errorf("pathpattern: unbalanced parentheses in %q", tpl)

		default:
			lit.WriteByte(c)
			escapedEnd = false
			i++
			continue
		}

		key := &Key{Name: name}

		if !asterisk && i < len(tpl) {
			switch tpl[i] {
			case '?':
				key.Optional = true
				i++
			case '*':
				key.Optional = true
				key.Repeat = true
				i++
			case '+':
				key.Repeat = true
				i++
			}
		}

		if s := lit.String(); s != "" && !escapedEnd {
			if last := s[len(s)-1]; last == '/' || last == '.' {
				key.Prefix = string(last)
				lit.Reset()
				lit.WriteString(s[:len(s)-1])
			}
		}
		flush()
		escapedEnd = false

		key.Delimiter = "/"
		if key.Prefix != "" {
			key.Delimiter = key.Prefix
		}
		key.Partial = key.Prefix != "" && i < len(tpl) && tpl[i] != key.Prefix[0]

		if patt == "" {
			patt = "[^" + regexp.QuoteMeta(key.Delimiter) + "]+?"
		} else {
			patt = expandMacro(patt)
		}
		if err := checkParamPattern(tpl, name, patt); err != nil {
			return nil, err
		}
		key.Pattern = patt

		tokens = append(tokens, token{key: key})
	}

	flush()

	return tokens, nil
}

// buildRegexp assembles the anchored regexp for the tokens. Group 1 always
// holds the matched portion of the path; parameters follow in order.
func buildRegexp(tokens []token, opts Options) string {
	var route strings.Builder

	for _, t := range tokens {
		if t.key == nil {
			route.WriteString(regexp.QuoteMeta(t.literal))
			continue
		}

		k := t.key
		prefix := regexp.QuoteMeta(k.Prefix)
		capture := "(?:" + k.Pattern + ")"
		if k.Repeat {
			capture += "(?:" + prefix + capture + ")*"
		}

		switch {
		case k.Optional && !k.Partial:
			capture = "(?:" + prefix + "(" + capture + "))?"
		case k.Optional:
			capture = prefix + "(" + capture + ")?"
		default:
			capture = prefix + "(" + capture + ")"
		}
		route.WriteString(capture)
	}

	endsWithDelimiter := false
	if n := len(tokens); n > 0 && tokens[n-1].key == nil {
		endsWithDelimiter = strings.HasSuffix(tokens[n-1].literal, "/")
	}

	body := route.String()
	if !opts.Strict && endsWithDelimiter {
		body = strings.TrimSuffix(body, "/")
	}

	var pattern string
	switch {
	case opts.End && opts.Strict:
		pattern = "^(" + body + ")$"
	case opts.End:
		pattern = "^(" + body + "/?)$"
	case opts.Strict && endsWithDelimiter:
		pattern = "^(" + body + ")"
	case opts.Strict:
		pattern = "^(" + body + ")(?:/|$)"
	default:
		pattern = "^(" + body + "(?:/$)?)(?:/|$)"
	}

	return "(?i)" + pattern
}

// readGroup reads a parenthesized group starting at s[i] == '(' and returns
// its content and the index just past the closing parenthesis.
func readGroup(s string, i int) (string, int, error) {
	var (
		depth   int
		inClass bool
	)
	for j := i; j < len(s); j++ {
		switch c := s[j]; {
		case c == '\\':
			j++
		case inClass:
			if c == ']' {
				inClass = false
			}
		case c == '[':
			inClass = true
		case c == '(':
			depth++
		case c == ')':
			if depth--; depth == 0 {
				if j == i+1 {
					return "", 0, fmt.Errorf("pathpattern: empty group at offset %d in %q", i, s)
				}
				return s[i+1 : j], j + 1, nil
			}
		}
	}
	return "", 0, fmt.Errorf("pathpattern: unbalanced parentheses in %q", s)
}

// closingBrace returns the index of the '}' matching the '{' at s[i].
func closingBrace(s string, i int) (int, error) {
	level := 0
	for j := i; j < len(s); j++ {
		switch s[j] {
		case '{':
			level++
		case '}':
			if level--; level == 0 {
				return j, nil
			}
		}
	}
	return 0, fmt.Errorf("pathpattern: unbalanced braces in %q", s)
}

// checkParamPattern rejects parameter patterns that do not compile or that
// contain capturing groups, which would shift the parameter positions.
func checkParamPattern(tpl, name, patt string) error {
	re, err := regexp.Compile(patt)
	if err != nil {
		return fmt.Errorf("pathpattern: invalid pattern %q in parameter %q: %w", patt, name, err)
	}
	if re.NumSubexp() > 0 {
		return fmt.Errorf("pathpattern: capturing group in parameter %q of %q, use (?:...)", name, tpl)
	}
	return nil
}

// checkDuplicateNames returns an error if any parameter name is repeated.
func checkDuplicateNames(tpl string, names []string) error {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			return fmt.Errorf("pathpattern: duplicated parameter %q in %q", n, tpl)
		}
		seen[n] = true
	}
	return nil
}

func isNameByte(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}
