package calculation

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func FuzzScan(f *testing.F) {
	f.Add("x")
	f.Add("1 + 2")
	f.Add("a.b")
	f.Add(" 2*( x+1 ) ")
	f.Fuzz(func(t *testing.T, s string) {
		if !utf8.ValidString(s) {
			t.Skip()
		}
		toks, err := Scan(s)
		if err != nil {
			return
		}
		for _, tok := range toks {
			if tok == "" || strings.ContainsAny(tok, Blanks) {
				t.Errorf("%q: bad token %q", s, tok)
			}
		}
		want := strings.Map(func(r rune) rune {
			if strings.ContainsRune(Blanks, r) {
				return -1
			}
			return r
		}, s)
		if got := strings.Join(toks, ""); got != want {
			t.Errorf("%q: tokens %q do not cover the input", s, toks)
		}
	})
}

func FuzzCompile(f *testing.F) {
	f.Add("x")
	f.Add("2 - 3 * 4")
	f.Add("(((")
	f.Fuzz(func(t *testing.T, s string) {
		e, err := Compile(s)
		if (e == nil) == (err == nil) {
			t.Errorf("%q: tree %v with error %v", s, e, err)
		}
	})
}
