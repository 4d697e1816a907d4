package theme

import "strings"

// SplitRules breaks flattened CSS into rule units. Unit ends on a closing
// brace which brings nesting depth back to zero, braces inside quoted strings
// are ignored. Blank lines are dropped and remaining lines trimmed. Text which
// does not end up in a closed unit is reported with *StructuralError.
func SplitRules(flat string) ([]string, error) {
	var (
		units   []string
		current []string
		depth   int
	)

	for line := range strings.SplitSeq(flat, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		current = append(current, line)

		var (
			quote  byte
			closed bool
		)
		for i := 0; i < len(line); i++ {
			c := line[i]
			switch {
			case quote != 0:
				if c == '\\' {
					i++
				} else if c == quote {
					quote = 0
				}
				continue
			case closed && c != ' ' && c != '\t':
				return nil, &StructuralError{Reason: "text after closing brace", Text: strings.Join(current, "\n")}
			case c == '"' || c == '\'':
				quote = c
			case c == '{':
				depth++
			case c == '}':
				depth--
				if depth < 0 {
					return nil, &StructuralError{Reason: "unexpected closing brace", Text: strings.Join(current, "\n")}
				}
				closed = depth == 0
			}
		}

		if closed {
			units = append(units, strings.Join(current, "\n"))
			current = nil
		}
	}

	if len(current) > 0 {
		reason := "text outside of any rule"
		if depth > 0 {
			reason = "missing closing brace"
		}
		return nil, &StructuralError{Reason: reason, Text: strings.Join(current, "\n")}
	}
	return units, nil
}
