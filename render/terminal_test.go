package render

import (
	"testing"

	"gridpath/core"
)

func TestDetectCharset(t *testing.T) {
	tests := []struct {
		name     string
		mode     string
		lcAll    string
		lang     string
		expected Charset
	}{
		{"utf8 lang", "", "", "en_US.UTF-8", CharsetUnicode},
		{"utf8 lowercase", "", "", "C.utf8", CharsetUnicode},
		{"posix locale", "", "", "C", CharsetASCII},
		{"no locale", "", "", "", CharsetASCII},
		{"lc_all wins", "", "C", "en_US.UTF-8", CharsetASCII},
		{"forced ascii", "ascii", "", "en_US.UTF-8", CharsetASCII},
		{"forced unicode", "unicode", "", "C", CharsetUnicode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GRIDPATH_TERMINAL_MODE", tt.mode)
			t.Setenv("LC_ALL", tt.lcAll)
			t.Setenv("LC_CTYPE", "")
			t.Setenv("LANG", tt.lang)

			if got := DetectCharset(); got != tt.expected {
				t.Errorf("DetectCharset() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseCharset(t *testing.T) {
	if cs, err := ParseCharset("ASCII"); err != nil || cs != CharsetASCII {
		t.Errorf("ParseCharset(ASCII) = %v, %v", cs, err)
	}
	if cs, err := ParseCharset("unicode"); err != nil || cs != CharsetUnicode {
		t.Errorf("ParseCharset(unicode) = %v, %v", cs, err)
	}
	if _, err := ParseCharset("ebcdic"); err == nil {
		t.Error("ParseCharset accepted an unknown charset")
	}
}

func TestCellRunesDistinct(t *testing.T) {
	cells := []Cell{Empty, Visited, Obstacle, Line, Path, Sample, EndpointA, EndpointB}
	for _, cs := range []Charset{CharsetUnicode, CharsetASCII} {
		seen := make(map[rune]Cell)
		for _, c := range cells {
			r := c.RuneIn(cs)
			if prev, ok := seen[r]; ok {
				t.Errorf("%v: cells %d and %d share rune %q", cs, prev, c, r)
			}
			seen[r] = c
			if cs == CharsetASCII && r > 0x7f {
				t.Errorf("ascii charset uses non-ASCII rune %q", r)
			}
		}
	}
}

func TestRenderASCII(t *testing.T) {
	s := newSession(t, core.Point{0, 0}, core.Point{3, 3},
		"....",
		"..#.",
		"....",
		"....",
	)

	got := Visualizer{ShowPath: true, Charset: CharsetASCII}.Render(s)
	want := "A...\n.*#.\n..*.\n...B\n"
	if got != want {
		t.Errorf("Render mismatch.\nGot:\n%s\nWant:\n%s", got, want)
	}
}
