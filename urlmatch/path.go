package urlmatch

import "github.com/vitalvas/navmatch/pathpattern"

// matchPath compiles tpl through the cache and runs it against path. The
// match is nil when the path does not match; names are the pattern's
// capture slots either way.
func (m *Matcher) matchPath(path, tpl string, opts CompileOptions) (*pathpattern.Match, []string, error) {
	p, err := m.patterns.compile(tpl, opts)
	if err != nil {
		return nil, nil, err
	}

	return p.Exec(path), p.Names(), nil
}
