package routefile

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"gopkg.in/yaml.v3"

	"github.com/vitalvas/navmatch/urlmatch"
)

// ValueSpec is the YAML form of a urlmatch.ValueMatcher. A scalar boolean
// becomes urlmatch.Bool, any other scalar urlmatch.Exact, and null no
// constraint. A mapping selects exactly one of the forms below.
type ValueSpec struct {
	// Present is set for scalar booleans.
	Present *bool `yaml:"-"`
	// Equals requires an exact value.
	Equals *string `yaml:"equals"`
	// Pattern is a regular expression the value must match.
	Pattern string `yaml:"pattern"`
	// Macro names a pathpattern macro the whole value must match.
	Macro string `yaml:"macro"`
	// Glob is a doublestar glob the value must match.
	Glob string `yaml:"glob"`
	// Expr is an expr-lang boolean expression over value, present and key.
	Expr string `yaml:"expr"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *ValueSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		switch node.ShortTag() {
		case "!!null":
			return nil
		case "!!bool":
			var b bool
			if err := node.Decode(&b); err != nil {
				return err
			}
			v.Present = &b
		default:
			s := node.Value
			v.Equals = &s
		}
		return nil

	case yaml.MappingNode:
		type plain ValueSpec
		var p plain
		if err := node.Decode(&p); err != nil {
			return err
		}
		*v = ValueSpec(p)
		v.Present = nil
		if v.forms() != 1 {
			return fmt.Errorf("line %d: value spec needs exactly one of equals, pattern, macro, glob, expr", node.Line)
		}
		return nil

	default:
		return fmt.Errorf("line %d: value spec must be a scalar or a mapping", node.Line)
	}
}

// forms counts how many matcher forms are set.
func (v *ValueSpec) forms() int {
	n := 0
	if v.Present != nil {
		n++
	}
	if v.Equals != nil {
		n++
	}
	for _, s := range []string{v.Pattern, v.Macro, v.Glob, v.Expr} {
		if s != "" {
			n++
		}
	}
	return n
}

// compile turns the spec into a matcher. A nil spec or a null value yields
// a nil matcher.
func (v *ValueSpec) compile() (urlmatch.ValueMatcher, error) {
	if v == nil {
		return nil, nil
	}

	switch {
	case v.Present != nil:
		return urlmatch.Bool(*v.Present), nil

	case v.Equals != nil:
		return urlmatch.Exact(*v.Equals), nil

	case v.Pattern != "":
		re, err := regexp.Compile(v.Pattern)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", v.Pattern, err)
		}
		return urlmatch.NewPattern(re), nil

	case v.Macro != "":
		return urlmatch.Macro(v.Macro)

	case v.Glob != "":
		return globPredicate(v.Glob)

	case v.Expr != "":
		return exprPredicate(v.Expr)
	}

	return nil, nil
}

// globPredicate matches present values against a doublestar glob.
func globPredicate(glob string) (urlmatch.ValueMatcher, error) {
	if !doublestar.ValidatePattern(glob) {
		return nil, fmt.Errorf("glob %q: %w", glob, doublestar.ErrBadPattern)
	}

	return urlmatch.Predicate(func(value string, present bool, _ string) bool {
		if !present {
			return false
		}
		ok, err := doublestar.Match(glob, value)
		return err == nil && ok
	}), nil
}

// exprEnv is the environment expression predicates are compiled against.
func exprEnv(value string, present bool, key string) map[string]any {
	return map[string]any{
		"value":   value,
		"present": present,
		"key":     key,
	}
}

// exprPredicate compiles a boolean expr-lang expression. Evaluation errors
// count as a mismatch.
func exprPredicate(src string) (urlmatch.ValueMatcher, error) {
	program, err := expr.Compile(strings.TrimSpace(src), expr.Env(exprEnv("", false, "")), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("expr %q: %w", src, err)
	}

	return urlmatch.Predicate(func(value string, present bool, key string) bool {
		return runBool(program, exprEnv(value, present, key))
	}), nil
}

func runBool(program *vm.Program, env map[string]any) bool {
	out, err := expr.Run(program, env)
	if err != nil {
		return false
	}
	b, _ := out.(bool)
	return b
}
