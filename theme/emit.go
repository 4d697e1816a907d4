package theme

import (
	_ "embed"
	"fmt"
	"io"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
)

//go:embed module.js.tmpl
var defaultTemplate string

const (
	DefaultRuntime    = "emotion"
	DefaultThemeParam = "theme"
)

// Options control emitted module.
type Options struct {
	// Runtime is module css and injectGlobal are imported from.
	Runtime string
	// ThemeParam is name of the module function parameter.
	ThemeParam string
	// Template replaces built-in module template when not empty.
	Template []byte
	// SourceName is mentioned in generated code header when not empty.
	SourceName string
}

func (o Options) withDefaults() Options {
	if o.Runtime == "" {
		o.Runtime = DefaultRuntime
	}
	if o.ThemeParam == "" {
		o.ThemeParam = DefaultThemeParam
	}
	return o
}

// ModuleData is passed to module template.
type ModuleData struct {
	Runtime    string
	ThemeParam string
	SourceName string
	Globals    []string
	Styles     []StyleData
}

// StyleData describes single style accessor. Top level accessors carry the
// whole subtree of their node, descendants only get a Label to produce
// distinct class names.
type StyleData struct {
	Key          string
	Label        string
	Declarations []string
	Nested       []NestedData
}

// NestedData is a child block inside style accessor.
type NestedData struct {
	Selector     string
	Declarations []string
	Nested       []NestedData
}

func buildNested(n *Node) []NestedData {
	var nested []NestedData
	for _, child := range n.Children() {
		selector := escapeTemplateLiteral(child.Segment)
		if child.IsScopedClass() {
			selector = ".${styles." + child.Key + "()}"
		}
		nested = append(nested, NestedData{
			Selector:     selector,
			Declarations: child.Declarations(),
			Nested:       buildNested(child),
		})
	}
	return nested
}

func buildModuleData(tree *LocalTree, globals *GlobalRules, opts Options) ModuleData {
	data := ModuleData{
		Runtime:    opts.Runtime,
		ThemeParam: opts.ThemeParam,
		SourceName: opts.SourceName,
		Globals:    globals.Blocks(),
	}
	roots := make(map[*Node]bool)
	for _, n := range tree.Roots() {
		roots[n] = true
	}
	for _, n := range tree.Nodes() {
		if !roots[n] {
			data.Styles = append(data.Styles, StyleData{Key: n.Key, Label: n.Key})
			continue
		}
		data.Styles = append(data.Styles, StyleData{
			Key:          n.Key,
			Declarations: n.Declarations(),
			Nested:       buildNested(n),
		})
	}
	return data
}

// Emit writes theming module for local tree and global rules.
func Emit(w io.Writer, tree *LocalTree, globals *GlobalRules, opts Options) error {
	opts = opts.withDefaults()

	text := defaultTemplate
	if len(opts.Template) > 0 {
		text = string(opts.Template)
	}

	tmpl, err := template.New("module").Funcs(sprig.FuncMap()).Parse(text)
	if err != nil {
		return fmt.Errorf("unable to parse module template: %w", err)
	}
	if err := tmpl.Execute(w, buildModuleData(tree, globals, opts)); err != nil {
		return fmt.Errorf("unable to execute module template: %w", err)
	}
	return nil
}
