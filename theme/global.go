package theme

import (
	"slices"
	"strings"

	"github.com/elliotchance/orderedmap/v3"
)

// GlobalRules collects rendered global blocks in insertion order, identical
// blocks are kept once.
type GlobalRules struct {
	blocks *orderedmap.OrderedMap[string, struct{}]
}

func NewGlobalRules() *GlobalRules {
	return &GlobalRules{blocks: orderedmap.NewOrderedMap[string, struct{}]()}
}

// Add renders block and stores it unless identical block is already present.
// Returns true when block was added.
func (g *GlobalRules) Add(selector string, declarations []string) bool {
	var b strings.Builder
	b.WriteString(selector)
	b.WriteString(" {\n")
	for _, d := range declarations {
		b.WriteString("  ")
		b.WriteString(d)
		b.WriteString(";\n")
	}
	b.WriteString("};")

	block := b.String()
	if g.blocks.Has(block) {
		return false
	}
	g.blocks.Set(block, struct{}{})
	return true
}

// Blocks returns rendered blocks.
func (g *GlobalRules) Blocks() []string {
	return slices.Collect(g.blocks.Keys())
}

func (g *GlobalRules) Len() int {
	return g.blocks.Len()
}
