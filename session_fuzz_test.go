package calculation_test

import (
	"strconv"
	"strings"
	"testing"

	calc "github.com/zephyrtronium/calculation"
)

func FuzzCalculate(f *testing.F) {
	f.Add("x")
	f.Add("2 * 3 - 1")
	f.Add("((1+2)")
	f.Add("1/0")
	f.Add("6 ÷ 2 × 3")
	f.Add("--x*-(y")
	f.Fuzz(func(t *testing.T, s string) {
		sess := calc.NewSession(calc.WithLogger(nil), calc.Symbols(), calc.SetVar("x", 3))
		r := sess.Calculate(s)
		if r == calc.ErrorResult {
			return
		}
		if _, err := strconv.ParseFloat(r, 64); err != nil {
			t.Errorf("%q gave unparseable result %q", s, r)
		}
		if strings.Contains(r, ".") && strings.HasSuffix(r, "0") || strings.HasSuffix(r, ".") {
			t.Errorf("%q gave untrimmed result %q", s, r)
		}
		if again := sess.Calculate(s); again != r {
			t.Errorf("%q gave %q then %q", s, r, again)
		}
	})
}
