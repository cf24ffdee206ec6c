// Package routefile loads route descriptors from YAML.
//
//	routes:
//	  - name: user
//	    path: /users/:id
//	    params:
//	      id: int
//	    query:
//	      tab: profile               # exact value
//	      debug: true                # present and not blank
//	      page: {pattern: "^[0-9]+$"}
//	      ref: {macro: uuid}
//	      file: {glob: "docs/**/*.md"}
//	      n: {expr: "present && len(value) < 4"}
//	    hash: {equals: bio}
//	  - name: admin
//	    path: /admin
//	    partial: true
//
// params selects a transform per path parameter: string, unescape, int or
// uuid. The key "*" sets the transform for parameters without an entry.
// A route without params produces results with nil Params.
//
// Expressions use expr-lang syntax and see three variables: value (string),
// present (bool) and key (string). They must evaluate to a boolean.
//
// Parse compiles every path template through the given urlmatch.Matcher,
// so configuration errors surface at load time instead of at match time.
package routefile
