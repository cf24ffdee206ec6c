package urlmatch

import (
	"maps"
	"sync"

	"github.com/vitalvas/navmatch/pathpattern"
)

// DefaultCacheLimit is the number of compiled patterns a Matcher keeps
// before it stops caching new ones.
const DefaultCacheLimit = 10000

// CompileOptions selects how a path pattern is compiled.
type CompileOptions struct {
	// Partial lets the pattern match a prefix of the path.
	Partial bool
	// Strict makes the trailing slash significant.
	Strict bool
}

// bucket returns the 2-bit cache index for the options.
func (o CompileOptions) bucket() int {
	b := 0
	if o.Partial {
		b |= 1
	}
	if o.Strict {
		b |= 2
	}
	return b
}

// patternCache stores compiled patterns per option bucket. Once limit
// patterns are stored it stops inserting; entries are never evicted.
type patternCache struct {
	mu      sync.RWMutex
	buckets [4]map[string]*pathpattern.Pattern
	count   int
	limit   int
	onFull  func(limit int)
}

func newPatternCache(limit int, onFull func(limit int)) *patternCache {
	if limit <= 0 {
		limit = DefaultCacheLimit
	}
	return &patternCache{limit: limit, onFull: onFull}
}

// compile returns the cached pattern for tpl, compiling it on a miss.
func (c *patternCache) compile(tpl string, opts CompileOptions) (*pathpattern.Pattern, error) {
	b := opts.bucket()

	c.mu.RLock()
	if p, ok := c.buckets[b][tpl]; ok {
		c.mu.RUnlock()
		return p, nil
	}
	c.mu.RUnlock()

	p, err := pathpattern.Compile(tpl, pathpattern.Options{
		End:    !opts.Partial,
		Strict: opts.Strict,
	})
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if existing, ok := c.buckets[b][tpl]; ok {
		c.mu.Unlock()
		return existing, nil
	}
	if c.count >= c.limit {
		c.mu.Unlock()
		return p, nil
	}
	if c.buckets[b] == nil {
		c.buckets[b] = make(map[string]*pathpattern.Pattern)
	}
	c.buckets[b][tpl] = p
	c.count++
	full := c.count == c.limit
	c.mu.Unlock()

	if full && c.onFull != nil {
		c.onFull(c.limit)
	}

	return p, nil
}

// len returns the number of cached patterns across all buckets.
func (c *patternCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.count
}

// queryCache caches parsed query strings by their raw form. Distinct
// query strings are expected to be few, so the cache is unbounded.
type queryCache struct {
	entries sync.Map // map[string]map[string]string
}

// parse returns the parsed query for raw. The result is a copy the caller
// may modify.
func (c *queryCache) parse(raw string) map[string]string {
	if raw == "" {
		return map[string]string{}
	}

	if v, ok := c.entries.Load(raw); ok {
		return maps.Clone(v.(map[string]string))
	}

	actual, _ := c.entries.LoadOrStore(raw, parseQuery(raw))

	return maps.Clone(actual.(map[string]string))
}
