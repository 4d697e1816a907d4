package theme

import (
	"fmt"
	"strconv"
	"strings"
)

type treeWriter struct {
	w *strings.Builder
}

func (tw treeWriter) line(depth int, format string, args ...any) {
	for range depth {
		tw.w.WriteString("  ")
	}
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

func (tw treeWriter) text(depth int, label, value string) {
	for range depth {
		tw.w.WriteString("  ")
	}
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(strconv.Quote(value))
	tw.w.WriteByte('\n')
}

// Dump renders tree for debugging: node segment with its style key followed by
// node's own declarations and children, indented by depth.
func (t *LocalTree) Dump() string {
	tw := treeWriter{w: &strings.Builder{}}

	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		for child := range n.children.Values() {
			tw.line(depth, "%s [%s]", child.Segment, child.Key)
			for _, d := range child.Declarations() {
				tw.text(depth+1, "decl", d)
			}
			walk(child, depth+1)
		}
	}
	walk(t.root, 0)
	return tw.w.String()
}
