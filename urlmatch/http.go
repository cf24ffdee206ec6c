package urlmatch

import (
	"context"
	"errors"
	"net/http"
)

// resultContextKey is the context key for the match result.
type resultContextKey struct{}

// ResultFromContext returns the match result stored by Guard, if any.
func ResultFromContext(ctx context.Context) *Result {
	if res, ok := ctx.Value(resultContextKey{}).(*Result); ok {
		return res
	}
	return nil
}

// ResultFromRequest returns the match result for the current request, if
// any. This only works inside a handler wrapped by Guard.
func ResultFromRequest(r *http.Request) *Result {
	return ResultFromContext(r.Context())
}

// WithResult returns a shallow copy of r carrying res. It is intended for
// testing handlers that read ResultFromRequest.
func WithResult(r *http.Request, res *Result) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), resultContextKey{}, res))
}

// GuardConfig configures the Guard middleware.
type GuardConfig struct {
	// Matcher performs the matching. Defaults to Default.
	Matcher *Matcher

	// Options are passed to every match call.
	Options *Options

	// NotFoundHandler serves requests that do not match. Defaults to
	// http.NotFoundHandler().
	NotFoundHandler http.Handler

	// LogFunc is an optional callback invoked for every request with the
	// match result, nil when the request did not match.
	LogFunc func(r *http.Request, res *Result)
}

// Guard returns a middleware that only lets requests matching d through.
// Matching requests carry their Result in the context; the rest go to
// NotFoundHandler. The path template is compiled up front and its error,
// if any, is returned.
func Guard(d *Descriptor, cfg GuardConfig) (func(http.Handler) http.Handler, error) {
	if d == nil {
		return nil, errors.New("urlmatch: guard requires a descriptor")
	}

	m := cfg.Matcher
	if m == nil {
		m = Default
	}

	if _, err := m.Compile(d.Path, cfg.Options.compileOptions()); err != nil {
		return nil, err
	}

	notFound := cfg.NotFoundHandler
	if notFound == nil {
		notFound = http.NotFoundHandler()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res := m.MatchLocation(LocationFromRequest(r), d, cfg.Options)

			if cfg.LogFunc != nil {
				cfg.LogFunc(r, res)
			}

			if res == nil {
				notFound.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, WithResult(r, res))
		})
	}, nil
}
