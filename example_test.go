package calc_test

import (
	"context"
	"fmt"

	"github.com/zephyrtronium/calc"
)

func Example() {
	a, err := calc.Parse("2*x^3 - 3*x^2/2 + x - 5", true)
	if err != nil {
		panic(err)
	}
	r, err := a.EvalWithVar("x", 2)
	fmt.Println(a, r, err)

	// Output:
	// ((((2 * (x ^ 3)) - ((3 * (x ^ 2)) / 2)) + x) - 5) 7 <nil>
}

func ExampleParse_fold() {
	a, _ := calc.Parse("2.5*8 + 4*(1 - x)", true)
	b, _ := calc.Parse("2.5*8 + 4*(1 - x)", false)
	fmt.Println(a)
	fmt.Println(b)

	// Output:
	// (20 + (4 * (1 - x)))
	// ((2.5 * 8) + (4 * (1 - x)))
}

func ExampleExpr_Substitute() {
	a, _ := calc.Parse("x*y + D(x, x^2)", true)
	a.Substitute("y", calc.Num(4))
	fmt.Println(a)
	a.Substitute("x", calc.Num(3))
	fmt.Println(a)
	r, _ := a.EvalConst()
	fmt.Printf("%.4f\n", r)

	// Output:
	// ((x * 4) + D(x, (x ^ 2)))
	// ((3 * 4) + D(x, (x ^ 2))[x = 3])
	// 18.0000
}

func ExampleExpr_Table() {
	a, _ := calc.Parse("x^2", true)
	xs := calc.Points(0, 2, 5)
	ys, _ := a.Table(context.Background(), nil, "x", xs)
	for i, x := range xs {
		fmt.Println(x, ys[i])
	}

	// Output:
	// 0 0
	// 0.5 0.25
	// 1 1
	// 1.5 2.25
	// 2 4
}
