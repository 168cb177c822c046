package calculation

import (
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// constants are the named values that the Constants option seeds into a
// session's variables. Each function must set out to its result at the
// precision of out; its return value is ignored.
var constants = map[string]func(out *big.Float) *big.Float{
	"pi": bigfloat.Pi,
	"e": func(out *big.Float) *big.Float {
		one := new(big.Float).SetPrec(out.Prec()).SetInt64(1)
		return bigfloat.Exp(out, one)
	},
	"ln2": func(out *big.Float) *big.Float {
		two := new(big.Float).SetPrec(out.Prec()).SetInt64(2)
		return bigfloat.Log(out, two)
	},
	"ln10": func(out *big.Float) *big.Float {
		ten := new(big.Float).SetPrec(out.Prec()).SetInt64(10)
		return bigfloat.Log(out, ten)
	},
}

// ConstantValues computes the named constants pi, e, ln2, and ln10 to prec
// bits and rounds each to the nearest float64. If prec is 0, the default is
// 64.
func ConstantValues(prec uint) map[string]float64 {
	if prec == 0 {
		prec = 64
	}
	r := make(map[string]float64, len(constants))
	for name, f := range constants {
		v := new(big.Float).SetPrec(prec)
		f(v)
		r[name], _ = v.Float64()
	}
	return r
}
