package theme

import (
	"regexp"
	"slices"
	"strings"

	"github.com/elliotchance/orderedmap/v3"
)

// Node is a single selector segment of local rule. Key names style accessor in
// emitted module. Verbatim segments came from :global markers and are never
// replaced with generated class names.
type Node struct {
	Name     string
	Segment  string
	Key      string
	Verbatim bool

	children     *orderedmap.OrderedMap[string, *Node]
	declarations *orderedmap.OrderedMap[string, string]
}

func newNode(name, segment, key string) *Node {
	return &Node{
		Name:         name,
		Segment:      segment,
		Key:          key,
		children:     orderedmap.NewOrderedMap[string, *Node](),
		declarations: orderedmap.NewOrderedMap[string, string](),
	}
}

// Children returns direct children in first encounter order.
func (n *Node) Children() []*Node {
	return slices.Collect(n.children.Values())
}

// Child returns direct child with given name.
func (n *Node) Child(name string) *Node {
	for child := range n.children.Values() {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// Declarations returns node's own declarations without trailing semicolons.
func (n *Node) Declarations() []string {
	return slices.Collect(n.declarations.Values())
}

// merge adds declarations, repeated property keeps its position and takes the
// latest value.
func (n *Node) merge(declarations []string) {
	for _, d := range declarations {
		property, _, _ := strings.Cut(d, ":")
		n.declarations.Set(strings.TrimSpace(property), d)
	}
}

var rePlainClass = regexp.MustCompile(`^\.-?[A-Za-z_][A-Za-z0-9_-]*$`)

// IsPlainClass reports whether segment is a single class selector.
func (n *Node) IsPlainClass() bool {
	return rePlainClass.MatchString(n.Segment)
}

// IsScopedClass reports whether segment is referenced through generated class
// name of its own style accessor.
func (n *Node) IsScopedClass() bool {
	return !n.Verbatim && n.IsPlainClass()
}

// LocalTree holds local rules arranged by selector nesting.
type LocalTree struct {
	root *Node
	keys map[string]*Node
}

func NewLocalTree() *LocalTree {
	return &LocalTree{
		root: newNode("", "", ""),
		keys: make(map[string]*Node),
	}
}

// Add inserts declarations under selector path creating missing nodes.
// Selector lists produce one path per selector. Only descendant combinator is
// supported. Segments wrapped in :global, or following bare :global marker,
// become verbatim nodes.
func (t *LocalTree) Add(selector string, declarations []string) error {
	for _, sel := range splitTopLevel(selector, ',') {
		segments := splitSegments(sel)

		var (
			parent   = t.root
			names    = make([]string, 0, len(segments))
			path     = make([]string, 0, len(segments))
			verbatim bool
		)
		for _, raw := range segments {
			if raw == markerGlobal {
				verbatim = true
				continue
			}
			if hasCombinator(raw) {
				return &StructuralError{Reason: "combinators are not supported in local selectors", Text: selector}
			}
			seg, global := raw, verbatim || strings.Contains(raw, markerGlobal)
			if global {
				var err error
				if seg, err = unwrapMarkers(raw, markerGlobal); err != nil {
					return err
				}
			}
			name := Identifier(strings.TrimLeft(seg, ".#"))
			if name == "" {
				return &StructuralError{Reason: "selector segment " + raw + " has no identifier characters", Text: selector}
			}
			names = append(names, name)
			path = append(path, seg)

			node, ok := parent.children.Get(raw)
			if !ok {
				key := Identifier(strings.Join(names, "-"))
				if other, exists := t.keys[key]; exists {
					return &StructuralError{
						Reason: "selectors " + t.path(other) + " and " + strings.Join(path, " ") + " produce the same style key " + key,
						Text:   selector,
					}
				}
				node = newNode(name, seg, key)
				node.Verbatim = global
				parent.children.Set(raw, node)
				t.keys[key] = node
			}
			parent = node
		}
		if parent == t.root {
			return &StructuralError{Reason: "empty selector in list", Text: selector}
		}
		parent.merge(declarations)
	}
	return nil
}

// path finds segments leading to node.
func (t *LocalTree) path(target *Node) string {
	var walk func(n *Node, prefix []string) []string
	walk = func(n *Node, prefix []string) []string {
		for child := range n.children.Values() {
			p := append(slices.Clone(prefix), child.Segment)
			if child == target {
				return p
			}
			if found := walk(child, p); found != nil {
				return found
			}
		}
		return nil
	}
	return strings.Join(walk(t.root, nil), " ")
}

// Roots returns top level nodes.
func (t *LocalTree) Roots() []*Node {
	return t.root.Children()
}

// Lookup follows node names from the top level.
func (t *LocalTree) Lookup(names ...string) *Node {
	n := t.root
	for _, name := range names {
		if n = n.Child(name); n == nil {
			return nil
		}
	}
	if n == t.root {
		return nil
	}
	return n
}

// Nodes returns all nodes in pre-order.
func (t *LocalTree) Nodes() []*Node {
	var (
		nodes []*Node
		walk  func(n *Node)
	)
	walk = func(n *Node) {
		for child := range n.children.Values() {
			nodes = append(nodes, child)
			walk(child)
		}
	}
	walk(t.root)
	return nodes
}

// Len returns number of nodes.
func (t *LocalTree) Len() int {
	return len(t.keys)
}

// hasCombinator looks for child, adjacent or general sibling combinator
// outside of parentheses and attribute selectors.
func hasCombinator(seg string) bool {
	depth := 0
	for i := 0; i < len(seg); i++ {
		switch seg[i] {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case '>', '+', '~':
			if depth == 0 {
				return true
			}
		}
	}
	return false
}

// splitSegments splits selector on whitespace outside of parentheses and
// attribute selectors.
func splitSegments(sel string) []string {
	var segments []string
	for _, part := range splitTopLevel(strings.TrimSpace(sel), ' ') {
		if part = strings.TrimSpace(part); part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

func splitTopLevel(s string, sep byte) []string {
	var (
		parts []string
		depth int
		start int
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}
