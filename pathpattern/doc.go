// Package pathpattern compiles path templates into anchored regular
// expressions with an ordered list of named capture slots.
//
// # Syntax
//
//	/users/:id            named segment, matches [^/]+?
//	/users/:id(\d+)       named segment with a custom pattern
//	/users/{id}           brace form
//	/users/{id:uuid}      brace form with a pattern macro
//	/files/:path*         zero or more segments
//	/files/:path+         one or more segments
//	/docs/:page?          optional segment
//	/raw/(\d+)            unnamed group, named by position ("0", "1", ...)
//	/static/*             unnamed ".*" parameter
//	/a\:b                 escaped literal ":"
//
// A "/" or "." directly before a parameter is its prefix: optional
// parameters drop the prefix together with the value, and a default
// pattern never crosses the prefix character.
//
// Parameter patterns may not contain capturing groups; use (?:...).
//
// # Macros
//
// The following names expand to regexps when used as a parameter pattern:
//
//	uuid     - RFC 4122 UUID
//	int      - unsigned integer
//	float    - decimal number
//	slug     - URL-safe slug
//	alpha    - alphabetic characters
//	alphanum - alphanumeric characters
//	date     - ISO 8601 date
//	hex      - hexadecimal string
//	domain   - domain name per RFC 1123
//
// # Options
//
// End requires the whole path to be consumed; without it the pattern
// matches a prefix ending at a "/" boundary. Strict makes the trailing
// slash significant. Matching is case-insensitive.
//
//	p, err := pathpattern.Compile("/users/:id", pathpattern.Options{End: true})
//	if err != nil {
//	    return err
//	}
//	if m := p.Exec("/users/42"); m != nil {
//	    fmt.Println(m.Path, p.Names(), m.Values) // /users/42 [id] [42]
//	}
package pathpattern
