package calc_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/zephyrtronium/bigfloat"

	"github.com/zephyrtronium/calc"
)

const oraclePrec = 256

// chain builds an expression by folding leaves into an accumulator with the
// operations selected by ops, along with its value computed at high
// precision. Every intermediate value is positive, so no operation leaves its
// domain.
func chain(leaves []float64, ops []int, x float64) (*calc.Expr, *big.Float) {
	newf := func(v float64) *big.Float {
		return new(big.Float).SetPrec(oraclePrec).SetFloat64(v)
	}
	if len(leaves) == 0 {
		// Shrinking may empty the slice.
		leaves = []float64{1}
	}
	e, want := calc.Num(leaves[0]), newf(leaves[0])
	for i, op := range ops {
		leaf := leaves[(i+1)%len(leaves)]
		switch op {
		case 0:
			e = calc.Add(e, calc.Num(leaf))
			want.Add(want, newf(leaf))
		case 1:
			e = calc.Mul(e, calc.Num(leaf))
			want.Mul(want, newf(leaf))
		case 2:
			e = calc.Div(e, calc.Num(leaf))
			want.Quo(want, newf(leaf))
		case 3:
			// Map the leaf from [0.5, 4] onto an exponent in [0.5, 1.25].
			p := 0.5 + (leaf-0.5)*0.75/3.5
			e = calc.Pow(calc.Abs(e), calc.Num(p))
			bigfloat.Pow(want, want, newf(p))
		case 4:
			e = calc.Mul(e, calc.Var("x"))
			want.Mul(want, newf(x))
		default:
			e = calc.Add(e, calc.Log(calc.Num(math.E), calc.Add(calc.Var("x"), calc.Num(leaf))))
			ln := bigfloat.Log(newf(0), newf(x+leaf))
			want.Add(want, ln)
		}
	}
	return e, want
}

func TestEvalProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	leaves := gen.SliceOfN(8, gen.Float64Range(0.5, 4))
	ops := gen.SliceOfN(12, gen.IntRange(0, 5))
	xs := gen.Float64Range(0.5, 4)

	properties.Property("substitution agrees with binding", prop.ForAll(
		func(leaves []float64, ops []int, x float64) bool {
			e, _ := chain(leaves, ops, x)
			want, err := e.EvalWithVar("x", x)
			if err != nil {
				return false
			}
			c := e.Clone()
			c.SubstituteNum("x", x)
			got, err := c.EvalConst()
			return err == nil && got == want
		},
		leaves, ops, xs,
	))

	properties.Property("evaluation matches a high precision oracle", prop.ForAll(
		func(leaves []float64, ops []int, x float64) bool {
			e, want := chain(leaves, ops, x)
			got, err := e.EvalWithVar("x", x)
			if err != nil {
				return false
			}
			w, _ := want.Float64()
			return math.Abs(got-w) <= 1e-9*math.Abs(w)
		},
		leaves, ops, xs,
	))

	properties.Property("rendering round trips through the parser", prop.ForAll(
		func(leaves []float64, ops []int, x float64) bool {
			e, _ := chain(leaves, ops, x)
			p, err := calc.Parse(e.String(), false)
			return err == nil && p.Equal(e)
		},
		leaves, ops, xs,
	))

	properties.Property("folding preserves the value", prop.ForAll(
		func(leaves []float64, ops []int, x float64) bool {
			e, _ := chain(leaves, ops, x)
			c := e.Clone()
			c.SubstituteNum("x", x)
			want, err := c.EvalConst()
			if err != nil {
				return false
			}
			f, err := calc.Parse(c.String(), true)
			if err != nil {
				return false
			}
			got, ok := f.Value()
			return ok && got == want
		},
		leaves, ops, xs,
	))

	properties.TestingRun(t)
}
