// Package theme converts LESS stylesheet into JavaScript theming module.
//
// Stylesheet is compiled twice. First pass collects top level variables,
// second one forces every variable to a unique quoted sentinel so resulting
// flat CSS keeps track of where each variable was used. Flat CSS is split into
// rules, rules marked with :local become scoped style accessors arranged by
// selector nesting, the rest is injected globally. Finally every sentinel is
// replaced with interpolation of theme object field.
package theme
