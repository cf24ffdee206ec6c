package urlmatch

import (
	"github.com/vitalvas/navmatch/pathpattern"
)

// Descriptor describes what a URL must look like to match.
type Descriptor struct {
	// Path is the path template, see package pathpattern. Required.
	Path string
	// Query maps query keys to the constraint on their value.
	Query map[string]ValueMatcher
	// Hash constrains the fragment.
	Hash ValueMatcher
}

// Options tunes a single match call. A nil *Options uses the defaults.
type Options struct {
	// Partial matches a path prefix instead of the whole path.
	Partial bool
	// Strict makes the trailing slash significant.
	Strict bool
	// Transform builds Result.Params from the captured values. When nil,
	// Result.Params stays nil.
	Transform Transform
}

func (o *Options) compileOptions() CompileOptions {
	if o == nil {
		return CompileOptions{}
	}
	return CompileOptions{Partial: o.Partial, Strict: o.Strict}
}

// Result is a successful match.
type Result struct {
	// Params holds the transformed path parameters. It is nil unless a
	// Transform was supplied, and non-nil (possibly empty) otherwise.
	Params map[string]any
	// Query is the full parsed query.
	Query map[string]string
	// Hash is the fragment of the location.
	Hash string
	// MatchedPath is the portion of the path the pattern consumed.
	MatchedPath string
	// Matchers is the descriptor that matched.
	Matchers *Descriptor
	// Partial echoes Options.Partial.
	Partial bool
}

// Transformed reports whether Params was built by a Transform.
func (r *Result) Transformed() bool {
	return r.Params != nil
}

// Config configures a Matcher.
type Config struct {
	// CacheLimit caps the number of cached compiled patterns. Defaults to
	// DefaultCacheLimit. Past the cap patterns are compiled on every use.
	CacheLimit int

	// OnCacheFull is called once when the pattern cache reaches its cap.
	OnCacheFull func(limit int)
}

// Matcher matches URLs against descriptors. It owns the compiled pattern
// and parsed query caches and is safe for concurrent use.
type Matcher struct {
	patterns *patternCache
	queries  queryCache
}

// New returns a Matcher with empty caches.
func New(cfg Config) *Matcher {
	return &Matcher{
		patterns: newPatternCache(cfg.CacheLimit, cfg.OnCacheFull),
	}
}

// Default is the process-wide Matcher used by the package-level functions.
var Default = New(Config{})

// Match matches rawURL against d using the Default matcher.
func Match(rawURL string, d *Descriptor, opts *Options) *Result {
	return Default.Match(rawURL, d, opts)
}

// MatchLocation matches loc against d using the Default matcher.
func MatchLocation(loc Location, d *Descriptor, opts *Options) *Result {
	return Default.MatchLocation(loc, d, opts)
}

// Compile returns the compiled pattern for tpl, from the cache when
// possible. Use it to validate descriptors up front.
func (m *Matcher) Compile(tpl string, opts CompileOptions) (*pathpattern.Pattern, error) {
	return m.patterns.compile(tpl, opts)
}

// CachedPatterns returns the number of compiled patterns in the cache.
func (m *Matcher) CachedPatterns() int {
	return m.patterns.len()
}

// Match splits rawURL and matches it against d. See MatchLocation.
func (m *Matcher) Match(rawURL string, d *Descriptor, opts *Options) *Result {
	return m.MatchLocation(ParseLocation(rawURL), d, opts)
}

// MatchLocation matches loc against d and returns nil when the path, the
// query or the fragment does not satisfy it.
//
// A malformed path template is a programming error and panics; validate
// templates beforehand with Compile.
func (m *Matcher) MatchLocation(loc Location, d *Descriptor, opts *Options) *Result {
	co := opts.compileOptions()

	pm, names, err := m.matchPath(loc.Path, d.Path, co)
	if err != nil {
		panic(err)
	}
	if pm == nil {
		return nil
	}

	query, ok := m.matchQuery(loc.Query, d.Query)
	if !ok {
		return nil
	}

	if d.Hash != nil && !matchValue(loc.Fragment, true, "", d.Hash) {
		return nil
	}

	var params map[string]any
	if opts != nil && opts.Transform != nil {
		params = make(map[string]any, len(names))
		for i, name := range names {
			params[name] = opts.Transform(pm.Values[i], name)
		}
	}

	matched := pm.Path
	if d.Path == "/" && matched == "" {
		matched = "/"
	}

	return &Result{
		Params:      params,
		Query:       query,
		Hash:        loc.Fragment,
		MatchedPath: matched,
		Matchers:    d,
		Partial:     co.Partial,
	}
}
