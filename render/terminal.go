package render

import (
	"fmt"
	"os"
	"strings"
)

// Charset selects the characters cells are drawn with.
type Charset int

const (
	CharsetUnicode Charset = iota // shaded blocks and dots
	CharsetASCII                  // plain ASCII for terminals without UTF-8
)

// String returns the string representation of a Charset.
func (c Charset) String() string {
	if c == CharsetASCII {
		return "ascii"
	}
	return "unicode"
}

// ParseCharset accepts "unicode", "ascii" or "auto". Auto detects the
// charset from the environment.
func ParseCharset(s string) (Charset, error) {
	switch strings.ToLower(s) {
	case "unicode", "utf8", "utf-8":
		return CharsetUnicode, nil
	case "ascii":
		return CharsetASCII, nil
	case "", "auto":
		return DetectCharset(), nil
	default:
		return CharsetUnicode, fmt.Errorf("unknown charset %q (want unicode, ascii or auto)", s)
	}
}

// DetectCharset picks a charset from the locale.
// GRIDPATH_TERMINAL_MODE=ascii or =unicode overrides detection.
func DetectCharset() Charset {
	switch os.Getenv("GRIDPATH_TERMINAL_MODE") {
	case "ascii":
		return CharsetASCII
	case "unicode":
		return CharsetUnicode
	}
	if detectUTF8Locale() {
		return CharsetUnicode
	}
	return CharsetASCII
}

// detectUTF8Locale checks if the locale supports UTF-8.
func detectUTF8Locale() bool {
	for _, env := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		value := os.Getenv(env)
		if value == "" {
			continue
		}
		// The first non-empty variable decides, as for setlocale.
		upper := strings.ToUpper(value)
		return strings.Contains(upper, "UTF-8") || strings.Contains(upper, "UTF8")
	}
	return false
}

var asciiRunes = map[Cell]rune{
	Empty:     '.',
	Visited:   ':',
	Obstacle:  '#',
	Line:      '-',
	Path:      '*',
	Sample:    'o',
	EndpointA: 'A',
	EndpointB: 'B',
}

// RuneIn returns the character for the cell in the given charset.
func (c Cell) RuneIn(cs Charset) rune {
	if cs == CharsetASCII {
		if r, ok := asciiRunes[c]; ok {
			return r
		}
		return '.'
	}
	return c.Rune()
}
