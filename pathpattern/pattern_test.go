package pathpattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var full = Options{End: true}

func TestCompile(t *testing.T) {
	t.Run("static path", func(t *testing.T) {
		p, err := Compile("/foo/bar", full)
		require.NoError(t, err)
		assert.Equal(t, "/foo/bar", p.String())
		assert.Empty(t, p.Names())
		assert.NotNil(t, p.Exec("/foo/bar"))
		assert.Nil(t, p.Exec("/foo/baz"))
	})

	t.Run("named parameter", func(t *testing.T) {
		p, err := Compile("/users/:id", full)
		require.NoError(t, err)
		assert.Equal(t, []string{"id"}, p.Names())

		keys := p.Keys()
		require.Len(t, keys, 1)
		assert.Equal(t, "/", keys[0].Prefix)
		assert.Equal(t, "[^/]+?", keys[0].Pattern)
	})

	t.Run("brace parameter with macro", func(t *testing.T) {
		p, err := Compile("/users/{id:int}", full)
		require.NoError(t, err)
		assert.Equal(t, []string{"id"}, p.Names())
		assert.NotNil(t, p.Exec("/users/42"))
		assert.Nil(t, p.Exec("/users/abc"))
	})

	t.Run("colon parameter with macro", func(t *testing.T) {
		p, err := Compile("/items/:id(uuid)", full)
		require.NoError(t, err)
		assert.NotNil(t, p.Exec("/items/550e8400-e29b-41d4-a716-446655440000"))
		assert.Nil(t, p.Exec("/items/42"))
	})

	t.Run("unnamed groups are numbered", func(t *testing.T) {
		p, err := Compile(`/(\d+)/(\w+)`, full)
		require.NoError(t, err)
		assert.Equal(t, []string{"0", "1"}, p.Names())
	})

	t.Run("options are kept", func(t *testing.T) {
		p, err := Compile("/a", Options{Strict: true})
		require.NoError(t, err)
		assert.Equal(t, Options{Strict: true}, p.Options())
		assert.NotNil(t, p.Regexp())
	})
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name    string
		tpl     string
		errPart string
	}{
		{name: "unbalanced open paren", tpl: "/:id(\\d+", errPart: "unbalanced parentheses"},
		{name: "unbalanced close paren", tpl: "/id)", errPart: "unbalanced parentheses"},
		{name: "unbalanced open brace", tpl: "/{id", errPart: "unbalanced braces"},
		{name: "unbalanced close brace", tpl: "/id}", errPart: "unbalanced braces"},
		{name: "missing brace name", tpl: "/{:[0-9]+}", errPart: "missing name"},
		{name: "empty brace pattern", tpl: "/{id:}", errPart: "empty pattern"},
		{name: "empty group", tpl: "/:id()", errPart: "empty group"},
		{name: "invalid regexp", tpl: "/:id(*a)", errPart: "invalid pattern"},
		{name: "capturing group in parameter", tpl: "/:id((a|b))", errPart: "capturing group"},
		{name: "duplicate names", tpl: "/:id/:id", errPart: "duplicated parameter"},
		{name: "duplicate across syntaxes", tpl: "/:id/{id}", errPart: "duplicated parameter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.tpl, full)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errPart)
			assert.Contains(t, err.Error(), "pathpattern:")
		})
	}

	t.Run("non-capturing group is allowed", func(t *testing.T) {
		p, err := Compile("/:id((?:a|b)+)", full)
		require.NoError(t, err)
		assert.NotNil(t, p.Exec("/abba"))
	})

	t.Run("MustCompile panics", func(t *testing.T) {
		assert.Panics(t, func() { MustCompile("/{id", full) })
	})
}

func TestExec(t *testing.T) {
	tests := []struct {
		name      string
		tpl       string
		opts      Options
		path      string
		wantPath  string
		wantVals  []string
		wantMatch bool
	}{
		{name: "param", tpl: "/users/:id", opts: full, path: "/users/42", wantMatch: true, wantPath: "/users/42", wantVals: []string{"42"}},
		{name: "param case insensitive", tpl: "/users/:id", opts: full, path: "/USERS/42", wantMatch: true, wantPath: "/USERS/42", wantVals: []string{"42"}},
		{name: "param does not cross slash", tpl: "/users/:id", opts: full, path: "/users/42/edit"},
		{name: "param requires value", tpl: "/users/:id", opts: full, path: "/users/"},
		{name: "two params", tpl: "/u/:uid/p/:pid", opts: full, path: "/u/1/p/2", wantMatch: true, wantPath: "/u/1/p/2", wantVals: []string{"1", "2"}},
		{name: "optional present", tpl: "/a/:b?", opts: full, path: "/a/x", wantMatch: true, wantPath: "/a/x", wantVals: []string{"x"}},
		{name: "optional absent", tpl: "/a/:b?", opts: full, path: "/a", wantMatch: true, wantPath: "/a", wantVals: []string{""}},
		{name: "zero or more", tpl: "/a/:rest*", opts: full, path: "/a/x/y/z", wantMatch: true, wantPath: "/a/x/y/z", wantVals: []string{"x/y/z"}},
		{name: "zero or more empty", tpl: "/a/:rest*", opts: full, path: "/a", wantMatch: true, wantPath: "/a", wantVals: []string{""}},
		{name: "one or more", tpl: "/a/:rest+", opts: full, path: "/a/x/y", wantMatch: true, wantPath: "/a/x/y", wantVals: []string{"x/y"}},
		{name: "one or more requires one", tpl: "/a/:rest+", opts: full, path: "/a"},
		{name: "asterisk", tpl: "/files/*", opts: full, path: "/files/a/b.txt", wantMatch: true, wantPath: "/files/a/b.txt", wantVals: []string{"a/b.txt"}},
		{name: "dot prefix", tpl: "/:name.:ext", opts: full, path: "/archive.tar.gz", wantMatch: true, wantPath: "/archive.tar.gz", wantVals: []string{"archive.tar", "gz"}},
		{name: "custom pattern", tpl: `/n/:id(\d+)`, opts: full, path: "/n/7", wantMatch: true, wantPath: "/n/7", wantVals: []string{"7"}},
		{name: "custom pattern mismatch", tpl: `/n/:id(\d+)`, opts: full, path: "/n/x"},
		{name: "escaped colon", tpl: `/a\:b`, opts: full, path: "/a:b", wantMatch: true, wantPath: "/a:b", wantVals: []string{}},
		{name: "regexp meta is literal", tpl: "/a+b", opts: full, path: "/a+b", wantMatch: true, wantPath: "/a+b", wantVals: []string{}},

		{name: "non strict trailing slash in path", tpl: "/a", opts: full, path: "/a/", wantMatch: true, wantPath: "/a/", wantVals: []string{}},
		{name: "non strict trailing slash in template", tpl: "/a/", opts: full, path: "/a", wantMatch: true, wantPath: "/a", wantVals: []string{}},
		{name: "strict rejects extra slash", tpl: "/a", opts: Options{End: true, Strict: true}, path: "/a/"},
		{name: "strict rejects missing slash", tpl: "/a/", opts: Options{End: true, Strict: true}, path: "/a"},
		{name: "strict exact slash", tpl: "/a/", opts: Options{End: true, Strict: true}, path: "/a/", wantMatch: true, wantPath: "/a/", wantVals: []string{}},

		{name: "root matches empty", tpl: "/", opts: full, path: "", wantMatch: true, wantPath: "", wantVals: []string{}},
		{name: "root matches slash", tpl: "/", opts: full, path: "/", wantMatch: true, wantPath: "/", wantVals: []string{}},
		{name: "root rejects deeper path", tpl: "/", opts: full, path: "/a"},

		{name: "prefix match", tpl: "/users", opts: Options{}, path: "/users/42/edit", wantMatch: true, wantPath: "/users", wantVals: []string{}},
		{name: "prefix stops at segment boundary", tpl: "/users", opts: Options{}, path: "/usersx"},
		{name: "prefix with param", tpl: "/users/:id", opts: Options{}, path: "/users/42/edit", wantMatch: true, wantPath: "/users/42", wantVals: []string{"42"}},
		{name: "prefix keeps final slash", tpl: "/users", opts: Options{}, path: "/users/", wantMatch: true, wantPath: "/users/", wantVals: []string{}},
		{name: "prefix root", tpl: "/", opts: Options{}, path: "/anything", wantMatch: true, wantPath: "", wantVals: []string{}},
		{name: "strict prefix with trailing slash template", tpl: "/users/", opts: Options{Strict: true}, path: "/users/42", wantMatch: true, wantPath: "/users/", wantVals: []string{}},
		{name: "strict prefix boundary", tpl: "/users", opts: Options{Strict: true}, path: "/users/42", wantMatch: true, wantPath: "/users", wantVals: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(tt.tpl, tt.opts)
			require.NoError(t, err)

			m := p.Exec(tt.path)
			if !tt.wantMatch {
				assert.Nil(t, m)
				return
			}
			require.NotNil(t, m)
			assert.Equal(t, tt.wantPath, m.Path)
			assert.Equal(t, tt.wantVals, m.Values)
		})
	}
}

func TestKeyModifiers(t *testing.T) {
	p := MustCompile("/:a?/:b*/:c+/:d", full)
	keys := p.Keys()
	require.Len(t, keys, 4)

	assert.True(t, keys[0].Optional)
	assert.False(t, keys[0].Repeat)
	assert.True(t, keys[1].Optional)
	assert.True(t, keys[1].Repeat)
	assert.False(t, keys[2].Optional)
	assert.True(t, keys[2].Repeat)
	assert.False(t, keys[3].Optional)
	assert.False(t, keys[3].Repeat)
}

func TestPartialKey(t *testing.T) {
	p := MustCompile("/:name.:ext", full)
	keys := p.Keys()
	require.Len(t, keys, 2)

	assert.True(t, keys[0].Partial)
	assert.Equal(t, "/", keys[0].Delimiter)
	assert.False(t, keys[1].Partial)
	assert.Equal(t, ".", keys[1].Prefix)
	assert.Equal(t, `[^\.]+?`, keys[1].Pattern)
}

func TestMacros(t *testing.T) {
	names := Macros()
	assert.Contains(t, names, "uuid")
	assert.IsIncreasing(t, names)

	p, ok := Macro("int")
	assert.True(t, ok)
	assert.Equal(t, "[0-9]+", p)

	_, ok = Macro("nope")
	assert.False(t, ok)

	assert.Equal(t, "[a-z]", expandMacro("[a-z]"))
}

func BenchmarkCompile(b *testing.B) {
	for i := 0; i < b.N; i++ {
		MustCompile("/users/:id/posts/:pid(int)", full)
	}
}

func BenchmarkExec(b *testing.B) {
	p := MustCompile("/users/:id/posts/:pid(int)", full)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Exec("/users/42/posts/7")
	}
}
