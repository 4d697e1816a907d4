package theme

import (
	"fmt"
	"strings"
)

// StructuralError reports flattened CSS that does not have the expected rule
// shape. Text is the offending fragment.
type StructuralError struct {
	Reason string
	Text   string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("malformed rule: %s: %q", e.Reason, e.Text)
}

// CollisionError reports several variables mapping to the same theme field.
type CollisionError struct {
	Identifier string
	Names      []string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("variables @%s map to the same theme field %q", strings.Join(e.Names, ", @"), e.Identifier)
}
