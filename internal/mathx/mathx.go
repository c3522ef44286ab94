// Package mathx holds the small numeric helpers shared by the generators.
// Rounding follows the browser convention the demo front end was tuned
// against: halves round towards positive infinity.
package mathx

import (
	"math"
	"math/big"
	"strconv"
)

func Round(x float64) float64 { return math.Floor(x + 0.5) }

// Round1 rounds to one decimal place.
func Round1(x float64) float64 { return math.Floor(x*10+0.5) / 10 }

func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func Lerp(a, b, t float64) float64 { return a + (b-a)*t }

// Fixed formats x with the given number of decimals. Exact ties round away
// from zero, matching the browser's toFixed; strconv rounds them to even.
func Fixed(x float64, decimals int) string {
	r := new(big.Rat)
	if r.SetFloat64(x) == nil {
		return strconv.FormatFloat(x, 'f', decimals, 64)
	}
	pow := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	r.Mul(r, new(big.Rat).SetInt(pow))
	if r.Denom().Cmp(big.NewInt(2)) != 0 {
		return strconv.FormatFloat(x, 'f', decimals, 64)
	}
	// |r| is k + 1/2
	n := new(big.Int).Abs(r.Num())
	n.Add(n, big.NewInt(1)).Rsh(n, 1)
	if r.Sign() < 0 {
		n.Neg(n)
	}
	return new(big.Rat).SetFrac(n, pow).FloatString(decimals)
}
