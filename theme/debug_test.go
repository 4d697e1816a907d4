package theme

import "testing"

func TestLocalTree_Dump(t *testing.T) {
	tree := NewLocalTree()
	if tree.Dump() != "" {
		t.Errorf("Dump() of empty tree = %q", tree.Dump())
	}

	if err := tree.Add(".item", []string{"padding: 4px"}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := tree.Add(".item .itemPadLeft", []string{`content: "x"`}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	want := ".item [item]\n" +
		"  decl: \"padding: 4px\"\n" +
		"  .itemPadLeft [itemItemPadLeft]\n" +
		"    decl: \"content: \\\"x\\\"\"\n"
	if got := tree.Dump(); got != want {
		t.Errorf("Dump() = %q, want %q", got, want)
	}
}
