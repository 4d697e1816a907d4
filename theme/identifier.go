package theme

import (
	"regexp"
	"strings"

	"github.com/iancoleman/strcase"
)

var reNonWord = regexp.MustCompile(`[^A-Za-z0-9]+`)

// Identifier turns arbitrary name into lower camel case JavaScript
// identifier. Any run of non alphanumeric characters is a word break, letters
// directly following a digit keep their case ("item2x" stays "item2x"), result
// starting with a digit gets "_" prefix. Empty string is returned when name
// has no alphanumeric characters.
func Identifier(name string) string {
	name = strings.Trim(reNonWord.ReplaceAllString(name, "-"), "-")
	if name == "" {
		return ""
	}
	id := keepCaseAfterDigits(strcase.ToLowerCamel(name), name)
	if isDigit(id[0]) {
		id = "_" + id
	}
	return id
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// keepCaseAfterDigits undoes capitalization strcase applies to a lower case
// letter which follows a digit inside the same word. Name holds alphanumerics
// and single dashes only, id has the same alphanumerics in the same order.
func keepCaseAfterDigits(id, name string) string {
	b := []byte(id)
	j := 0
	for i := 0; i < len(name); i++ {
		if name[i] == '-' {
			continue
		}
		if j == len(b) {
			return id
		}
		if i > 0 && isDigit(name[i-1]) && name[i] >= 'a' && name[i] <= 'z' {
			b[j] = name[i]
		}
		j++
	}
	if j != len(b) {
		return id
	}
	return string(b)
}
