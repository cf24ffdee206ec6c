// Package urlmatch matches a URL (path, query and fragment) against a
// route descriptor and returns the captured parameters, the parsed query
// and the fragment.
//
// # Matching
//
//	d := &urlmatch.Descriptor{
//	    Path:  "/users/:id",
//	    Query: map[string]urlmatch.ValueMatcher{"tab": urlmatch.Exact("profile")},
//	}
//	res := urlmatch.Match("/users/42?tab=profile#bio", d, &urlmatch.Options{
//	    Transform: urlmatch.Int,
//	})
//	if res != nil {
//	    fmt.Println(res.MatchedPath, res.Params["id"], res.Hash) // /users/42 42 bio
//	}
//
// The path is checked first, then every query matcher, then the fragment.
// The first failure returns nil. Path templates use the syntax of package
// pathpattern.
//
// # Value Matchers
//
// Query values and the fragment are constrained with a ValueMatcher:
//
//	Bool(true)                present and not blank (Bool(false) too)
//	Exact("x")                present and equal
//	Predicate(fn)             fn(value, present, key)
//	MustPattern(`^[0-9]+$`)   regexp match, a missing value is ""
//	nil                       no constraint
//
// Query keys without a matcher are ignored for matching but still
// returned in Result.Query.
//
// # Options
//
// Partial matches a path prefix ending at a "/" boundary, for nested
// routes. Strict makes the trailing slash significant. Transform turns the
// captured strings into Result.Params; without it Params is nil.
//
// # Caching
//
// A Matcher caches compiled patterns per (Partial, Strict) combination and
// parsed queries per raw query string. After Config.CacheLimit patterns
// (DefaultCacheLimit by default) it stops caching new patterns and
// compiles them on every use; cached entries are never evicted. The query
// cache is unbounded.
//
// Package-level Match and MatchLocation use the Default matcher. Create a
// separate Matcher with New for isolated caches.
//
// # HTTP
//
// Guard wraps a handler so only requests matching a descriptor reach it:
//
//	mw, err := urlmatch.Guard(d, urlmatch.GuardConfig{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	http.Handle("/users/", mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
//	    res := urlmatch.ResultFromRequest(r)
//	    fmt.Fprintln(w, res.MatchedPath)
//	})))
package urlmatch
