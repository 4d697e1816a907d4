package theme

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/maruel/natural"
	"gopkg.in/yaml.v3"

	"lesstheme/less"
)

// Defaults is default theme object: evaluated variable values keyed by theme
// field names, fields in natural order.
type Defaults struct {
	fields []string
	values map[string]string
}

// NewDefaults maps variables to theme fields the same way module
// interpolations do.
func NewDefaults(vars less.Variables) (*Defaults, error) {
	placeholders, err := NewPlaceholders(vars)
	if err != nil {
		return nil, err
	}

	d := &Defaults{
		fields: make([]string, 0, len(vars)),
		values: make(map[string]string, len(vars)),
	}
	for name, value := range vars {
		field, _ := placeholders.Field(name)
		d.values[field] = value
		d.fields = append(d.fields, field)
	}
	sort.Sort(natural.StringSlice(d.fields))
	return d, nil
}

// Fields returns theme field names.
func (d *Defaults) Fields() []string {
	return d.fields
}

func (d *Defaults) WriteYAML(w io.Writer) error {
	return writeDefaultsYAML(w, d.fields, d.values)
}

func (d *Defaults) WriteJSON(w io.Writer) error {
	return writeDefaultsObject(w, d.fields, d.values, "{\n", "}\n", true)
}

// WriteJS writes ES module with default export.
func (d *Defaults) WriteJS(w io.Writer) error {
	return writeDefaultsObject(w, d.fields, d.values, "export default {\n", "};\n", false)
}

func writeDefaultsYAML(w io.Writer, fields []string, values map[string]string) error {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range fields {
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: f},
			&yaml.Node{Kind: yaml.ScalarNode, Style: yaml.DoubleQuotedStyle, Value: values[f]},
		)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("unable to encode theme defaults: %w", err)
	}
	return enc.Close()
}

// writeDefaultsObject writes JSON or JavaScript object literal keeping fields
// order. JSON strings are valid JavaScript strings too.
func writeDefaultsObject(w io.Writer, fields []string, values map[string]string, open, closing string, quoteKeys bool) error {
	bw := bufio.NewWriter(w)
	if len(fields) == 0 && quoteKeys {
		open, closing = "{", "}\n"
	}
	bw.WriteString(open)
	for i, f := range fields {
		key := f
		if quoteKeys {
			data, err := json.Marshal(f)
			if err != nil {
				return err
			}
			key = string(data)
		}
		value, err := json.Marshal(values[f])
		if err != nil {
			return err
		}
		fmt.Fprintf(bw, "  %s: %s", key, value)
		if i < len(fields)-1 || !quoteKeys {
			bw.WriteByte(',')
		}
		bw.WriteByte('\n')
	}
	bw.WriteString(closing)
	return bw.Flush()
}
