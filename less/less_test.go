package less

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func compile(t *testing.T, source string, opts ...Option) (*Transformed, error) {
	t.Helper()

	log := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	tree, err := Parse(source, append([]Option{WithLogger(log)}, opts...)...)
	if err != nil {
		return nil, err
	}
	return Transform(tree)
}

func mustCompile(t *testing.T, source string, opts ...Option) *Transformed {
	t.Helper()

	out, err := compile(t, source, opts...)
	if err != nil {
		t.Fatalf("compile error = %v", err)
	}
	return out
}

func TestToCSS(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name: "nesting and lazy variables",
			source: `@primary: #1890ff;
@menu-bg: @primary;
// menu styles
.menu {
  /* block comment */
  background: @menu-bg;
  .item { color: red; padding: 0 @gap; }
}
@gap: 4px;
`,
			want: ".menu {\n  background: #1890ff;\n}\n" +
				".menu .item {\n  color: red;\n  padding: 0 4px;\n}\n",
		},
		{
			name:   "parent reference and selector lists",
			source: ".a, .b { &:hover { color: red; } > .c { margin: 0; } }",
			want: ".a:hover,\n.b:hover {\n  color: red;\n}\n" +
				".a > .c,\n.b > .c {\n  margin: 0;\n}\n",
		},
		{
			name:   "combinators are normalized",
			source: ".a>.b+.c   ~   .d { top: 0; }",
			want:   ".a > .b + .c ~ .d {\n  top: 0;\n}\n",
		},
		{
			name:   "line comments",
			source: ".a { color: red; // trailing\n  font: 12px/1.5 sans-serif; }",
			want:   ".a {\n  color: red;\n  font: 12px/1.5 sans-serif;\n}\n",
		},
		{
			name:   "block comment opener inside line comment",
			source: "// sources live in src/*.less\n.a { top: 0; }\n.b { top: 1px; }\n",
			want:   ".a {\n  top: 0;\n}\n.b {\n  top: 1px;\n}\n",
		},
		{
			name:   "unclosed url inside line comment",
			source: "// see url(docs\n.a { top: 0; }\n.b { top: 1px; }\n",
			want:   ".a {\n  top: 0;\n}\n.b {\n  top: 1px;\n}\n",
		},
		{
			name:   "slashes in strings and urls are not comments",
			source: ".a { background: url(http://x.org/a.png); content: \"//\"; } // done",
			want:   ".a {\n  background: url(http://x.org/a.png);\n  content: \"//\";\n}\n",
		},
		{
			name:   "functions and strings",
			source: `.a { background: url("x.png") no-repeat; color: rgba(0,  0, 0, 0.5) !important; }`,
			want:   ".a {\n  background: url(\"x.png\") no-repeat;\n  color: rgba(0, 0, 0, 0.5) !important;\n}\n",
		},
		{
			name:   "markers are kept verbatim",
			source: "@gap: 8px;\n:local(.item) .itemPadLeft { padding-left: @gap; }",
			want:   ":local(.item) .itemPadLeft {\n  padding-left: 8px;\n}\n",
		},
		{
			name:   "empty rulesets are dropped",
			source: ".a { .b { } .c { color: red; } }",
			want:   ".a .c {\n  color: red;\n}\n",
		},
		{
			name:   "empty stylesheet",
			source: "@a: 1px;\n",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := mustCompile(t, tt.source)
			if diff := cmp.Diff(tt.want, out.ToCSS()); diff != "" {
				t.Errorf("ToCSS() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestVariables(t *testing.T) {
	out := mustCompile(t, `@primary: #1890ff;
@menu-bg: @primary;
@border: 1px solid @menu-bg;
.a { @local: red; color: @local; }
`)

	want := Variables{
		"primary": "#1890ff",
		"menu-bg": "#1890ff",
		"border":  "1px solid #1890ff",
	}
	if diff := cmp.Diff(want, out.Variables()); diff != "" {
		t.Errorf("Variables() mismatch (-want +got):\n%s", diff)
	}

	vars := out.Variables()
	vars["primary"] = "changed"
	if out.Variables()["primary"] != "#1890ff" {
		t.Error("Variables() returned internal map")
	}
}

func TestLexicalScope(t *testing.T) {
	out := mustCompile(t, `@c: red;
.a { @c: blue; color: @c; .b { color: @c; } }
.d { color: @c; }
.e { color: @c; @c: green; }
`)

	want := ".a {\n  color: blue;\n}\n" +
		".a .b {\n  color: blue;\n}\n" +
		".d {\n  color: red;\n}\n" +
		".e {\n  color: green;\n}\n"
	if diff := cmp.Diff(want, out.ToCSS()); diff != "" {
		t.Errorf("ToCSS() mismatch (-want +got):\n%s", diff)
	}
	if got := out.Variables()["c"]; got != "red" {
		t.Errorf("Variables()[c] = %q, want red", got)
	}
}

func TestWithModifyVars(t *testing.T) {
	source := `@primary: blue;
@menu-bg: @primary;
.menu { color: @primary; background: @menu-bg; }
`

	out := mustCompile(t, source, WithModifyVars(map[string]string{
		"@primary": "'@primary'",
		"menu-bg":  "'@menuBg'",
		"extra":    "0",
	}))

	want := ".menu {\n  color: '@primary';\n  background: '@menuBg';\n}\n"
	if diff := cmp.Diff(want, out.ToCSS()); diff != "" {
		t.Errorf("ToCSS() mismatch (-want +got):\n%s", diff)
	}

	wantVars := Variables{"primary": "'@primary'", "menu-bg": "'@menuBg'", "extra": "0"}
	if diff := cmp.Diff(wantVars, out.Variables()); diff != "" {
		t.Errorf("Variables() mismatch (-want +got):\n%s", diff)
	}
}

func TestModifyVarsDoNotReachNestedScopes(t *testing.T) {
	out := mustCompile(t, "@c: red;\n.a { @c: blue; color: @c; }\n", WithModifyVars(map[string]string{"c": "'@c'"}))
	if want := ".a {\n  color: blue;\n}\n"; out.ToCSS() != want {
		t.Errorf("ToCSS() = %q, want %q", out.ToCSS(), want)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"undefined variable", ".a { color: @nope; }", "variable @nope is undefined"},
		{"recursive variables", "@a: @b;\n@b: @a;\n.x { color: @a; }", "recursive variable definition"},
		{"self reference", "@a: @a;", "recursive variable definition for @a"},
		{"media", "@media screen { .a { color: red; } }", "at-rule @media is not supported"},
		{"import", `@import "x.less";`, "at-rule @import is not supported"},
		{"detached ruleset", "@detached: { color: red; }", "detached ruleset"},
		{"interpolation", ".@{name} { color: red; }", "interpolation is not supported"},
		{"mixin call", ".a { .b(); }", "mixins are not supported"},
		{"root declaration", "color: red;", "outside of any ruleset"},
		{"missing brace", ".a { color: red;", "missing closing brace"},
		{"stray brace", ".a { color: red; } }", "unexpected closing brace"},
		{"empty selector", "{ color: red; }", "missing selector"},
		{"unbalanced parentheses", ".a { color: rgb(0, 0; }", "unbalanced parentheses"},
		{"unterminated comment", ".a { color: red; }\n/* tail .b { top: 0; }", "line 2: unterminated comment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compile(t, tt.source)
			if err == nil {
				t.Fatal("expected error")
			}
			var lerr *Error
			if !errors.As(err, &lerr) {
				t.Fatalf("error type = %T, want *Error", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestErrorLineAfterLineComments(t *testing.T) {
	_, err := compile(t, "// one /* two\n// url(three\n.a {\n  color: @nope;\n}\n")
	var lerr *Error
	if !errors.As(err, &lerr) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if lerr.Line != 4 {
		t.Errorf("Line = %d, want 4", lerr.Line)
	}
}

func TestErrorLine(t *testing.T) {
	_, err := compile(t, "\n\n.a {\n  color: @nope;\n}\n")
	var lerr *Error
	if !errors.As(err, &lerr) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if lerr.Line != 4 {
		t.Errorf("Line = %d, want 4", lerr.Line)
	}
	if want := "less: line 4: variable @nope is undefined"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
