package theme

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGlobalRules(t *testing.T) {
	g := NewGlobalRules()

	if !g.Add(".menu", []string{"background: ${theme.dropdownMenuBg}", "color: red"}) {
		t.Error("Add() = false for new block")
	}
	if g.Add(".menu", []string{"background: ${theme.dropdownMenuBg}", "color: red"}) {
		t.Error("Add() = true for duplicate block")
	}
	if !g.Add(".menu", []string{"color: red"}) {
		t.Error("Add() = false for different block with the same selector")
	}
	g.Add("html", nil)

	want := []string{
		".menu {\n  background: ${theme.dropdownMenuBg};\n  color: red;\n};",
		".menu {\n  color: red;\n};",
		"html {\n};",
	}
	if diff := cmp.Diff(want, g.Blocks()); diff != "" {
		t.Errorf("Blocks() mismatch (-want +got):\n%s", diff)
	}
	if g.Len() != 3 {
		t.Errorf("Len() = %d, want 3", g.Len())
	}
}
