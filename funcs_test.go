package calc

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
)

func TestFuncArity(t *testing.T) {
	cases := []struct {
		name string
		ok   []int
	}{
		{"sin", []int{1}},
		{"cos", []int{1}},
		{"tan", []int{1}},
		{"cot", []int{1}},
		{"abs", []int{1}},
		{"ln", []int{1}},
		{"log", []int{1, 2}},
		{"D", []int{2}},
	}
	if len(funcs) != len(cases) {
		t.Errorf("function table has %d entries, want %d", len(funcs), len(cases))
	}
	for _, c := range cases {
		fn, ok := funcs[c.name]
		if !ok {
			t.Errorf("missing %s", c.name)
			continue
		}
		for n := 0; n <= 3; n++ {
			if got, want := fn.arity(n), contains(c.ok, n); got != want {
				t.Errorf("%s with %d args: want %t, got %t", c.name, n, want, got)
			}
		}
	}
}

func contains(s []int, n int) bool {
	for _, v := range s {
		if v == n {
			return true
		}
	}
	return false
}

func TestFuncBuild(t *testing.T) {
	x := Var("x")
	if got := funcs["log"].build([]*Expr{x}).String(); got != "log(10, x)" {
		t.Errorf("log(x) built %s", got)
	}
	if got := funcs["log"].build([]*Expr{Num(2), x}).String(); got != "log(2, x)" {
		t.Errorf("log(2, x) built %s", got)
	}
	b, _ := funcs["ln"].build([]*Expr{x}).Operands()
	if v, ok := b.Value(); !ok || v != math.E {
		t.Errorf("ln(x) has base %v", b)
	}
	if funcs["D"].build != nil {
		t.Error("D has a builder")
	}
}

func TestLogb(t *testing.T) {
	cases := []struct {
		b, x, want, tol float64
	}{
		{2, 1024, 10, 0},
		{math.E, math.E, 1, 1e-15},
		{10, 1000, 3, 1e-15},
		{3, 81, 4, 1e-12},
		{0.5, 2, -1, 1e-15},
	}
	for _, c := range cases {
		if got := logb(c.b, c.x); math.Abs(got-c.want) > c.tol {
			t.Errorf("log base %g of %g: want %g, got %g", c.b, c.x, c.want, got)
		}
	}
}

func TestDomainErrorMessage(t *testing.T) {
	cases := []struct {
		name string
		f    func() (float64, error)
		msg  string
		err  error
	}{
		{"div", func() (float64, error) { return binop(Div(nil, nil), 1, 0) }, "division by zero in /(1, 0)", ErrDivisionByZero},
		{"cot", func() (float64, error) { return unop(Cot(nil), 0) }, "division by zero in cot(0)", ErrDivisionByZero},
		{"log", func() (float64, error) { return binop(Log(nil, nil), 10, -2) }, "invalid logarithm in log(10, -2)", ErrInvalidLogarithm},
		{"pow", func() (float64, error) { return binop(Pow(nil, nil), 0, -1) }, "invalid exponentiation in ^(0, -1)", ErrInvalidExponentiation},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := c.f()
			if err == nil {
				t.Fatal("no error")
			}
			if err.Error() != c.msg {
				t.Errorf("wrong message: want %q, got %q", c.msg, err.Error())
			}
			if !errors.Is(err, c.err) {
				t.Errorf("%v does not wrap %v", err, c.err)
			}
		})
	}
}

func TestOpPanics(t *testing.T) {
	cases := []struct {
		name string
		f    func()
	}{
		{"binop-sin", func() { binop(Sin(Num(0)), 1, 2) }},
		{"binop-num", func() { binop(Num(0), 1, 2) }},
		{"unop-add", func() { unop(Add(Num(0), Num(1)), 1) }},
		{"unop-deriv", func() { unop(Derivative(Var("x"), "x", nil), 1) }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			defer func() {
				r := recover()
				if r == nil {
					t.Fatal("no panic")
				}
				err, ok := r.(error)
				if !ok || !errors.HasAssertionFailure(err) {
					t.Errorf("panicked with %v, not an assertion failure", r)
				}
			}()
			c.f()
		})
	}
}
