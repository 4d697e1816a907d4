package theme

import (
	"regexp"
	"strings"
)

// Rule is a single flattened CSS rule.
type Rule struct {
	Selector     string
	Declarations []string
	Local        bool
}

var reSelectorStart = regexp.MustCompile(`^[#.:*\[&_a-zA-Z]`)

const (
	markerLocal  = ":local"
	markerGlobal = ":global"
)

// ParseRule classifies rule unit produced by SplitRules. Rule is local when
// its selector starts with :local marker. Markers are removed from resulting
// selector except :global inside local rules, those are left for the tree to
// mark verbatim segments. Declarations lose trailing semicolons.
func ParseRule(unit string) (Rule, error) {
	head, body, ok := cutBlock(strings.TrimSpace(unit))
	if !ok || !reSelectorStart.MatchString(head) {
		return Rule{}, &StructuralError{Reason: "unit is not a single selector block", Text: unit}
	}

	selector := collapseSpaces(head)
	local := markerAt(selector, 0, markerLocal)

	markers := []string{markerLocal, markerGlobal}
	if local {
		markers = markers[:1]
	}
	selector, err := unwrapMarkers(selector, markers...)
	if err != nil {
		return Rule{}, err
	}
	if selector == "" {
		return Rule{}, &StructuralError{Reason: "empty selector", Text: unit}
	}

	return Rule{
		Selector:     selector,
		Declarations: splitDeclarations(body),
		Local:        local,
	}, nil
}

// cutBlock splits "selector { body }" on the first brace outside of quoted
// strings. Unit must end with the matching closing brace and body may not
// hold unquoted braces of its own.
func cutBlock(unit string) (head, body string, ok bool) {
	var (
		quote byte
		open  = -1
	)
	for i := 0; i < len(unit); i++ {
		c := unit[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '{':
			if open >= 0 {
				return "", "", false
			}
			open = i
		case c == '}':
			if open < 0 || i != len(unit)-1 {
				return "", "", false
			}
			return strings.TrimSpace(unit[:open]), unit[open+1 : i], true
		}
	}
	return "", "", false
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func isIdentByte(c byte) bool {
	return c == '-' || c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// markerAt reports whether marker starts at position i of s and is not a
// prefix of longer pseudo class name.
func markerAt(s string, i int, marker string) bool {
	if !strings.HasPrefix(s[i:], marker) {
		return false
	}
	end := i + len(marker)
	return end == len(s) || !isIdentByte(s[end])
}

// unwrapMarkers replaces ":marker(x)" with x and drops bare markers for every
// requested marker, others are kept as is.
func unwrapMarkers(selector string, markers ...string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(selector); {
		marker := ""
		for _, m := range markers {
			if markerAt(selector, i, m) {
				marker = m
				break
			}
		}
		if marker == "" {
			b.WriteByte(selector[i])
			i++
			continue
		}

		i += len(marker)
		if i == len(selector) || selector[i] != '(' {
			// bare marker applies to the rest of selector
			continue
		}

		depth, start := 0, i+1
		for ; i < len(selector); i++ {
			if selector[i] == '(' {
				depth++
			} else if selector[i] == ')' {
				depth--
				if depth == 0 {
					break
				}
			}
		}
		if depth != 0 {
			return "", &StructuralError{Reason: "unbalanced " + marker + " marker", Text: selector}
		}
		inner, err := unwrapMarkers(selector[start:i], markers...)
		if err != nil {
			return "", err
		}
		b.WriteString(inner)
		i++
	}
	return collapseSpaces(b.String()), nil
}

// splitDeclarations splits rule body on semicolons and line breaks outside of
// quoted strings and parentheses.
func splitDeclarations(body string) []string {
	var (
		decls []string
		quote byte
		depth int
		start int
	)
	add := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			decls = append(decls, s)
		}
	}

	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(':
			depth++
		case c == ')':
			if depth > 0 {
				depth--
			}
		case (c == ';' || c == '\n') && depth == 0:
			add(body[start:i])
			start = i + 1
		}
	}
	add(body[start:])
	return decls
}
