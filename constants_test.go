package calculation

import (
	"math"
	"testing"
)

func TestConstantValues(t *testing.T) {
	want := map[string]float64{
		"pi":   math.Pi,
		"e":    math.E,
		"ln2":  math.Ln2,
		"ln10": math.Ln10,
	}
	for _, prec := range []uint{0, 53, 64, 256} {
		got := ConstantValues(prec)
		if len(got) != len(want) {
			t.Errorf("prec %d: want %d constants, got %v", prec, len(want), got)
		}
		for name, v := range want {
			r, ok := got[name]
			if !ok {
				t.Errorf("prec %d: missing %s", prec, name)
				continue
			}
			if math.Abs(r-v) > 1e-15*v {
				t.Errorf("prec %d: %s: want %g, got %g", prec, name, v, r)
			}
		}
	}
}

func TestConstantValuesIndependent(t *testing.T) {
	a := ConstantValues(0)
	a["pi"] = 3
	if b := ConstantValues(0); b["pi"] == 3 {
		t.Error("modifying one result changed another")
	}
}
