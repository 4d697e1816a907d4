package convert

import (
	"bytes"
	"path/filepath"
	"testing"

	cli "github.com/urfave/cli/v3"

	"lesstheme/config"
	"lesstheme/less"
)

func variablesCommand(buf *bytes.Buffer) *cli.Command {
	return &cli.Command{
		Name:   "variables",
		Action: Variables,
		Writer: buf,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Value: "yaml"},
		},
	}
}

func TestVariables(t *testing.T) {
	ctx, _ := setupTestEnv(t)
	src := filepath.Join(t.TempDir(), "menu.less")
	writeTestFile(t, src, "@dropdown-menu-bg: #fff;\n@border: 1px solid @dropdown-menu-bg;\n")

	tests := []struct {
		format string
		want   string
	}{
		{"yaml", "border: \"1px solid #fff\"\ndropdownMenuBg: \"#fff\"\n"},
		{"json", "{\n  \"border\": \"1px solid #fff\",\n  \"dropdownMenuBg\": \"#fff\"\n}\n"},
		{"js", "export default {\n  border: \"1px solid #fff\",\n  dropdownMenuBg: \"#fff\",\n};\n"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := variablesCommand(&buf).Run(ctx, []string{"variables", "--format", tt.format, src}); err != nil {
				t.Fatalf("Variables() error = %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("Variables() = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestVariables_Errors(t *testing.T) {
	ctx, _ := setupTestEnv(t)
	src := filepath.Join(t.TempDir(), "menu.less")
	writeTestFile(t, src, "@a: @b;\n")

	var buf bytes.Buffer
	if err := variablesCommand(&buf).Run(ctx, []string{"variables", "--format", "toml", src}); err == nil {
		t.Error("Expected error for unknown format")
	}
	if err := variablesCommand(&buf).Run(ctx, []string{"variables", src}); err == nil {
		t.Error("Expected error for undefined variable")
	}
	if err := variablesCommand(&buf).Run(ctx, []string{"variables"}); err == nil {
		t.Error("Expected error without source")
	}
}

func TestWriteDefaults_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := writeDefaults(&buf, less.Variables{"a": "1"}, config.ThemeFormat(42)); err == nil {
		t.Error("Expected error for unsupported format")
	}
	if buf.Len() != 0 {
		t.Errorf("writeDefaults() wrote %q for unsupported format", buf.String())
	}
}
