package pathpattern

import "sort"

// patternMacros maps macro names to regexp fragments. A macro can stand in
// for a parameter pattern: ":id(uuid)" or "{id:uuid}".
var patternMacros = map[string]string{
	"uuid":     `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`,
	"int":      `[0-9]+`,
	"float":    `[0-9]*\.?[0-9]+`,
	"slug":     `[a-zA-Z0-9]+(?:-[a-zA-Z0-9]+)*`,
	"alpha":    `[a-zA-Z]+`,
	"alphanum": `[a-zA-Z0-9]+`,
	"date":     `[0-9]{4}-[0-9]{2}-[0-9]{2}`,
	"hex":      `[0-9a-fA-F]+`,
	// RFC 1035/1123: labels 1-63 chars.
	"domain": `(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)*[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?`,
}

// Macro returns the regexp fragment for a macro name.
func Macro(name string) (string, bool) {
	p, ok := patternMacros[name]
	return p, ok
}

// Macros returns the known macro names in sorted order.
func Macros() []string {
	names := make([]string, 0, len(patternMacros))
	for name := range patternMacros {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// expandMacro returns the regexp fragment for a macro name, or the input
// unchanged when it is not a known macro.
func expandMacro(pattern string) string {
	if p, ok := patternMacros[pattern]; ok {
		return p
	}

	return pattern
}
