package theme

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	"lesstheme/less"
)

func TestDefaults(t *testing.T) {
	vars := less.Variables{
		"item-pad":         "4px 8px",
		"dropdown-menu-bg": "#fff",
		"gap-10":           "10px",
		"gap-2":            "2px",
	}
	d, err := NewDefaults(vars)
	if err != nil {
		t.Fatalf("NewDefaults() error = %v", err)
	}
	if diff := cmp.Diff([]string{"dropdownMenuBg", "gap2", "gap10", "itemPad"}, d.Fields()); diff != "" {
		t.Errorf("Fields() mismatch (-want +got):\n%s", diff)
	}

	tests := []struct {
		name  string
		write func(io.Writer) error
		want  string
	}{
		{
			name:  "yaml",
			write: d.WriteYAML,
			want:  "dropdownMenuBg: \"#fff\"\ngap2: \"2px\"\ngap10: \"10px\"\nitemPad: \"4px 8px\"\n",
		},
		{
			name:  "json",
			write: d.WriteJSON,
			want:  "{\n  \"dropdownMenuBg\": \"#fff\",\n  \"gap2\": \"2px\",\n  \"gap10\": \"10px\",\n  \"itemPad\": \"4px 8px\"\n}\n",
		},
		{
			name:  "js",
			write: d.WriteJS,
			want:  "export default {\n  dropdownMenuBg: \"#fff\",\n  gap2: \"2px\",\n  gap10: \"10px\",\n  itemPad: \"4px 8px\",\n};\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.write(&buf); err != nil {
				t.Fatalf("write error = %v", err)
			}
			if diff := cmp.Diff(tt.want, buf.String()); diff != "" {
				t.Errorf("write mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDefaults_EmptyJSON(t *testing.T) {
	d, err := NewDefaults(less.Variables{})
	if err != nil {
		t.Fatalf("NewDefaults() error = %v", err)
	}
	var buf bytes.Buffer
	if err := d.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	if buf.String() != "{}\n" {
		t.Errorf("WriteJSON() = %q, want {}", buf.String())
	}
}

func TestDefaults_Collision(t *testing.T) {
	var cerr *CollisionError
	if _, err := NewDefaults(less.Variables{"a-b": "1", "aB": "2"}); !errors.As(err, &cerr) {
		t.Errorf("NewDefaults() error = %v, want *CollisionError", err)
	}
}
