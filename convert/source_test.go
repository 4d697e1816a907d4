package convert

import (
	"bytes"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

func TestDecodeSource(t *testing.T) {
	const text = "/* цвет */ .a { color: red; }"

	utf16le, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String(text)
	if err != nil {
		t.Fatalf("encode utf-16: %v", err)
	}
	cp1251, err := charmap.Windows1251.NewEncoder().String(text)
	if err != nil {
		t.Fatalf("encode windows-1251: %v", err)
	}

	tests := []struct {
		name string
		data []byte
		cp   encoding.Encoding
	}{
		{"utf-8", []byte(text), nil},
		{"utf-8 with BOM", append([]byte{0xEF, 0xBB, 0xBF}, text...), nil},
		{"utf-16 with BOM", []byte(utf16le), nil},
		{"forced code page", []byte(cp1251), charmap.Windows1251},
		{"BOM wins over code page", append([]byte{0xEF, 0xBB, 0xBF}, text...), charmap.Windows1251},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeSource(tt.data, tt.cp)
			if err != nil {
				t.Fatalf("decodeSource() error = %v", err)
			}
			if got != text {
				t.Errorf("decodeSource() = %q, want %q", got, text)
			}
		})
	}
}

func TestDecodeSource_InvalidUTF8(t *testing.T) {
	cp1251, _ := charmap.Windows1251.NewEncoder().String("цвет")
	if _, err := decodeSource([]byte(cp1251), nil); err == nil {
		t.Error("Expected error for non UTF-8 source without code page")
	}
}

func TestReadSource_Missing(t *testing.T) {
	if _, err := readSource(filepath.Join(t.TempDir(), "absent.less"), nil); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestHasBOM(t *testing.T) {
	if hasBOM([]byte("abc")) || !hasBOM(bytes.Join([][]byte{{0xFF, 0xFE}, []byte("a")}, nil)) {
		t.Error("hasBOM() misdetected BOM")
	}
}
