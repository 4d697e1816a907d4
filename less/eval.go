package less

import (
	"maps"
	"slices"
	"strings"

	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Transformed is stylesheet with variables evaluated and nesting flattened.
type Transformed struct {
	variables Variables
	blocks    []block
}

type block struct {
	selectors    []string
	declarations []string
}

type evaluator struct {
	resolved map[*variable]string
	active   map[*variable]bool
}

// Transform evaluates every variable reference and flattens nested rulesets.
func Transform(tree *Tree) (*Transformed, error) {
	e := &evaluator{
		resolved: make(map[*variable]string),
		active:   make(map[*variable]bool),
	}

	root := tree.root
	vars := make(Variables, len(root.vars))
	for _, name := range slices.Sorted(maps.Keys(root.vars)) {
		value, err := e.resolve(root.vars[name])
		if err != nil {
			return nil, err
		}
		vars[name] = value
	}

	out := &Transformed{variables: vars}
	if err := e.flatten(root, nil, out); err != nil {
		return nil, err
	}

	tree.log.Debug("Stylesheet transformed", zap.Int("variables", len(vars)), zap.Int("rules", len(out.blocks)))
	return out, nil
}

// Variables returns evaluated values of top level variables.
func (t *Transformed) Variables() Variables {
	return maps.Clone(t.variables)
}

// ToCSS renders flattened stylesheet.
func (t *Transformed) ToCSS() string {
	var b strings.Builder
	for _, blk := range t.blocks {
		b.WriteString(strings.Join(blk.selectors, ",\n"))
		b.WriteString(" {\n")
		for _, d := range blk.declarations {
			b.WriteString("  ")
			b.WriteString(d)
			b.WriteString(";\n")
		}
		b.WriteString("}\n")
	}
	return b.String()
}

func (e *evaluator) resolve(v *variable) (string, error) {
	if s, ok := e.resolved[v]; ok {
		return s, nil
	}
	if e.active[v] {
		return "", errorf(v.line, "recursive variable definition for @%s", v.name)
	}
	e.active[v] = true
	s, err := e.value(v.value, v.scope)
	delete(e.active, v)
	if err != nil {
		return "", err
	}
	e.resolved[v] = s
	return s, nil
}

func (e *evaluator) value(tokens []token, scope *ruleset) (string, error) {
	var (
		b     strings.Builder
		space bool
	)
	for _, t := range tokens {
		if t.tt == css.WhitespaceToken {
			space = b.Len() > 0
			continue
		}
		text := t.data
		if t.tt == css.AtKeywordToken {
			v := scope.lookup(t.data[1:])
			if v == nil {
				return "", errorf(t.line, "variable %s is undefined", t.data)
			}
			s, err := e.resolve(v)
			if err != nil {
				return "", err
			}
			text = s
		}
		if space {
			b.WriteByte(' ')
			space = false
		}
		b.WriteString(text)
	}
	return b.String(), nil
}

func (e *evaluator) flatten(rs *ruleset, parents []string, out *Transformed) error {
	selectors := joinSelectors(parents, rs.selectors)
	if rs.parent != nil && len(rs.decls) > 0 {
		blk := block{selectors: selectors, declarations: make([]string, 0, len(rs.decls))}
		for _, d := range rs.decls {
			value, err := e.value(d.value, rs)
			if err != nil {
				return err
			}
			blk.declarations = append(blk.declarations, d.property+": "+value)
		}
		out.blocks = append(out.blocks, blk)
	}
	for _, child := range rs.children {
		if err := e.flatten(child, selectors, out); err != nil {
			return err
		}
	}
	return nil
}

// joinSelectors builds nested selector list, "&" refers to parent selector.
func joinSelectors(parents, children []string) []string {
	if len(parents) == 0 {
		return children
	}
	joined := make([]string, 0, len(parents)*len(children))
	for _, c := range children {
		for _, p := range parents {
			if strings.Contains(c, "&") {
				joined = append(joined, strings.ReplaceAll(c, "&", p))
			} else {
				joined = append(joined, p+" "+c)
			}
		}
	}
	return joined
}
