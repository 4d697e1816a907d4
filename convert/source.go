package convert

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var boms = [][]byte{{0xEF, 0xBB, 0xBF}, {0xFE, 0xFF}, {0xFF, 0xFE}}

func hasBOM(data []byte) bool {
	for _, bom := range boms {
		if bytes.HasPrefix(data, bom) {
			return true
		}
	}
	return false
}

func readSource(path string, cp encoding.Encoding) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("unable to read source: %w", err)
	}
	return decodeSource(data, cp)
}

// decodeSource converts stylesheet to UTF-8. BOM always wins, otherwise
// forced code page is used when specified. Without either data must be valid
// UTF-8.
func decodeSource(data []byte, cp encoding.Encoding) (string, error) {
	if cp == nil && !hasBOM(data) {
		if !utf8.Valid(data) {
			return "", errors.New("source is not valid UTF-8, source encoding must be configured")
		}
		return string(data), nil
	}

	fallback := unicode.UTF8.NewDecoder()
	if cp != nil {
		fallback = cp.NewDecoder()
	}
	out, _, err := transform.Bytes(unicode.BOMOverride(fallback), data)
	if err != nil {
		return "", fmt.Errorf("unable to decode source: %w", err)
	}
	return string(out), nil
}
