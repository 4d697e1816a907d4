package theme

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"lesstheme/less"
)

func TestNewPlaceholders(t *testing.T) {
	p, err := NewPlaceholders(less.Variables{"dropdown-menu-bg": "#fff", "gap": "4px"})
	if err != nil {
		t.Fatalf("NewPlaceholders() error = %v", err)
	}

	if s, ok := p.Sentinel("dropdown-menu-bg"); !ok || s != "'@dropdownMenuBg'" {
		t.Errorf("Sentinel() = %q, %v, want '@dropdownMenuBg'", s, ok)
	}
	if f, ok := p.Field("gap"); !ok || f != "gap" {
		t.Errorf("Field() = %q, %v, want gap", f, ok)
	}
	if _, ok := p.Sentinel("missing"); ok {
		t.Error("Sentinel() found unknown variable")
	}

	want := map[string]string{"dropdown-menu-bg": "'@dropdownMenuBg'", "gap": "'@gap'"}
	if diff := cmp.Diff(want, p.ModifyVars()); diff != "" {
		t.Errorf("ModifyVars() mismatch (-want +got):\n%s", diff)
	}
}

func TestNewPlaceholders_Collision(t *testing.T) {
	_, err := NewPlaceholders(less.Variables{"a-b": "1px", "aB": "2px"})

	var cerr *CollisionError
	if !errors.As(err, &cerr) {
		t.Fatalf("NewPlaceholders() error = %v, want *CollisionError", err)
	}
	if cerr.Identifier != "aB" {
		t.Errorf("Identifier = %q, want aB", cerr.Identifier)
	}
	if diff := cmp.Diff([]string{"a-b", "aB"}, cerr.Names); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}
}

func TestPlaceholders_Restore(t *testing.T) {
	p, err := NewPlaceholders(less.Variables{"primary": "red", "border-width": "1px", "a": "0"})
	if err != nil {
		t.Fatalf("NewPlaceholders() error = %v", err)
	}

	tests := []struct {
		name  string
		in    string
		param string
		want  string
	}{
		{"none", "color: red", "theme", "color: red"},
		{"single", "color: '@primary'", "theme", "color: ${theme.primary}"},
		{"many", "border: '@borderWidth' solid '@primary'", "theme", "border: ${theme.borderWidth} solid ${theme.primary}"},
		{"repeated", "margin: '@a' '@a'", "t", "margin: ${t.a} ${t.a}"},
		{"unknown sentinel", "content: '@media'", "theme", "content: '@media'"},
		{"backtick", "content: \"`\"", "theme", "content: \"\\`\""},
		{"backslash", `content: "\2014"`, "theme", `content: "\\2014"`},
		{"interpolation lookalike", "content: \"${x}\"", "theme", "content: \"\\${x}\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Restore(tt.in, tt.param); got != tt.want {
				t.Errorf("Restore(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
