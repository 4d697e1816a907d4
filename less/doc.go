// Package less compiles the subset of LESS stylesheets lesstheme deals with:
// variable declarations, variable references inside values and nested
// rulesets. Everything else (mixins, guards, operations, at-rules with blocks,
// imports) is rejected with *Error rather than passed through.
//
// Compilation follows the classic two steps:
//
//	tree, err := less.Parse(source, less.WithModifyVars(overrides))
//	out, err := less.Transform(tree)
//	vars, css := out.Variables(), out.ToCSS()
//
// ToCSS always produces canonical layout: comma separated selectors one per
// line, a single declaration per line and a closing brace alone on its own
// line.
package less
