package routefile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/vitalvas/navmatch/urlmatch"
)

var (
	// ErrNoRoutes is returned when a document defines no routes.
	ErrNoRoutes = errors.New("routefile: no routes defined")

	// ErrDuplicateRoute is returned when two routes share a name.
	ErrDuplicateRoute = errors.New("routefile: duplicate route name")
)

// fallbackParam is the params key whose transform applies to parameters
// without their own entry.
const fallbackParam = "*"

// document is the top-level YAML layout.
type document struct {
	Routes []routeSpec `yaml:"routes"`
}

// routeSpec is the YAML layout of a single route.
type routeSpec struct {
	Name    string                `yaml:"name"`
	Path    string                `yaml:"path"`
	Partial bool                  `yaml:"partial"`
	Strict  bool                  `yaml:"strict"`
	Params  map[string]string     `yaml:"params"`
	Query   map[string]*ValueSpec `yaml:"query"`
	Hash    *ValueSpec            `yaml:"hash"`
}

// Route is a validated route ready for matching.
type Route struct {
	// Name identifies the route within its file.
	Name string
	// Descriptor is the compiled matcher descriptor.
	Descriptor *urlmatch.Descriptor
	// Options are the match options, including the parameter transform
	// when the route declares params.
	Options *urlmatch.Options
}

// Match evaluates rawURL against the route with m, or urlmatch.Default
// when m is nil.
func (r *Route) Match(m *urlmatch.Matcher, rawURL string) *urlmatch.Result {
	if m == nil {
		m = urlmatch.Default
	}
	return m.Match(rawURL, r.Descriptor, r.Options)
}

// File is a parsed route file.
type File struct {
	Routes []*Route
	byName map[string]*Route
}

// Route returns the route with the given name.
func (f *File) Route(name string) (*Route, bool) {
	r, ok := f.byName[name]
	return r, ok
}

// Names returns the route names in file order.
func (f *File) Names() []string {
	names := make([]string, len(f.Routes))
	for i, r := range f.Routes {
		names[i] = r.Name
	}
	return names
}

// Load reads and parses the route file at path.
func Load(path string, m *urlmatch.Matcher) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("routefile: %w", err)
	}

	f, err := Parse(data, m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse parses a YAML route document. Every path template is compiled
// through m (urlmatch.Default when nil), so a successful parse also warms
// the pattern cache and later matches cannot panic.
func Parse(data []byte, m *urlmatch.Matcher) (*File, error) {
	if m == nil {
		m = urlmatch.Default
	}

	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("routefile: %w", err)
	}

	if len(doc.Routes) == 0 {
		return nil, ErrNoRoutes
	}

	f := &File{
		Routes: make([]*Route, 0, len(doc.Routes)),
		byName: make(map[string]*Route, len(doc.Routes)),
	}

	for i, spec := range doc.Routes {
		r, err := buildRoute(spec, m)
		if err != nil {
			if spec.Name == "" {
				return nil, fmt.Errorf("routefile: route #%d: %w", i, err)
			}
			return nil, fmt.Errorf("routefile: route %q: %w", spec.Name, err)
		}
		if _, dup := f.byName[r.Name]; dup {
			return nil, fmt.Errorf("%w %q", ErrDuplicateRoute, r.Name)
		}
		f.byName[r.Name] = r
		f.Routes = append(f.Routes, r)
	}

	return f, nil
}

// buildRoute validates a route spec and compiles it.
func buildRoute(spec routeSpec, m *urlmatch.Matcher) (*Route, error) {
	if spec.Name == "" {
		return nil, errors.New("missing name")
	}
	if spec.Path == "" {
		return nil, errors.New("missing path")
	}

	opts := &urlmatch.Options{Partial: spec.Partial, Strict: spec.Strict}

	p, err := m.Compile(spec.Path, urlmatch.CompileOptions{Partial: spec.Partial, Strict: spec.Strict})
	if err != nil {
		return nil, err
	}

	if len(spec.Params) > 0 {
		if opts.Transform, err = buildTransform(spec.Params, p.Names()); err != nil {
			return nil, err
		}
	}

	d := &urlmatch.Descriptor{Path: spec.Path}

	if len(spec.Query) > 0 {
		d.Query = make(map[string]urlmatch.ValueMatcher, len(spec.Query))
		for _, key := range sortedKeys(spec.Query) {
			matcher, err := spec.Query[key].compile()
			if err != nil {
				return nil, fmt.Errorf("query %q: %w", key, err)
			}
			d.Query[key] = matcher
		}
	}

	if d.Hash, err = spec.Hash.compile(); err != nil {
		return nil, fmt.Errorf("hash: %w", err)
	}

	return &Route{Name: spec.Name, Descriptor: d, Options: opts}, nil
}

// buildTransform maps declared parameter kinds to a transform. Every key
// must name a parameter of the pattern or be the fallback key.
func buildTransform(kinds map[string]string, names []string) (urlmatch.Transform, error) {
	known := make(map[string]bool, len(names))
	for _, n := range names {
		known[n] = true
	}

	var fallback urlmatch.Transform
	byName := make(map[string]urlmatch.Transform, len(kinds))

	for _, name := range sortedKeys(kinds) {
		t, err := urlmatch.TransformByKind(kinds[name])
		if err != nil {
			return nil, fmt.Errorf("param %q: %w", name, err)
		}
		if name == fallbackParam {
			fallback = t
			continue
		}
		if !known[name] {
			return nil, fmt.Errorf("param %q is not in the path", name)
		}
		byName[name] = t
	}

	return urlmatch.ByName(byName, fallback), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
