package theme

import (
	"maps"
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/maruel/natural"

	"lesstheme/less"
)

var reSentinel = regexp.MustCompile(`'@([A-Za-z0-9_]+)'`)

// Placeholders keeps sentinel assigned to every stylesheet variable. Sentinel
// is quoted "@" followed by theme field name, it survives compilation as an
// opaque string and is turned into template literal interpolation later.
type Placeholders struct {
	sentinels map[string]string // variable name -> sentinel
	fields    map[string]string // theme field -> variable name
}

// NewPlaceholders assigns sentinels to variables. Variables whose names
// produce the same theme field are rejected with *CollisionError.
func NewPlaceholders(vars less.Variables) (Placeholders, error) {
	p := Placeholders{
		sentinels: make(map[string]string, len(vars)),
		fields:    make(map[string]string, len(vars)),
	}
	names := slices.Collect(maps.Keys(vars))
	sort.Sort(natural.StringSlice(names))

	for _, name := range names {
		id := Identifier(name)
		if id == "" {
			return Placeholders{}, &StructuralError{Reason: "variable name has no identifier characters", Text: "@" + name}
		}
		if prev, ok := p.fields[id]; ok {
			return Placeholders{}, &CollisionError{Identifier: id, Names: []string{prev, name}}
		}
		p.fields[id] = name
		p.sentinels[name] = "'@" + id + "'"
	}
	return p, nil
}

// Len returns number of known variables.
func (p Placeholders) Len() int {
	return len(p.sentinels)
}

// Sentinel returns sentinel for variable name.
func (p Placeholders) Sentinel(name string) (string, bool) {
	s, ok := p.sentinels[name]
	return s, ok
}

// Field returns theme field name for variable name.
func (p Placeholders) Field(name string) (string, bool) {
	s, ok := p.sentinels[name]
	if !ok {
		return "", false
	}
	return s[2 : len(s)-1], true
}

// ModifyVars returns overrides forcing every variable to its sentinel.
func (p Placeholders) ModifyVars() map[string]string {
	return maps.Clone(p.sentinels)
}

// Restore prepares text for JavaScript template literal and replaces every
// known sentinel with interpolation of the corresponding field of param.
// Quoted strings which only look like sentinels are left alone.
func (p Placeholders) Restore(text, param string) string {
	return reSentinel.ReplaceAllStringFunc(escapeTemplateLiteral(text), func(m string) string {
		id := m[2 : len(m)-1]
		if _, ok := p.fields[id]; !ok {
			return m
		}
		return "${" + param + "." + id + "}"
	})
}

var templateLiteralEscaper = strings.NewReplacer(`\`, `\\`, "`", "\\`", "${", `\${`)

func escapeTemplateLiteral(s string) string {
	return templateLiteralEscaper.Replace(s)
}
