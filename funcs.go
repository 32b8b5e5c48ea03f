package calc

import (
	"math"
	"strconv"

	"github.com/cockroachdb/errors"
)

// Domain failures. A *DomainError unwraps to one of these.
var (
	ErrDivisionByZero        = errors.New("division by zero")
	ErrInvalidExponentiation = errors.New("invalid exponentiation")
	ErrInvalidLogarithm      = errors.New("invalid logarithm")
)

// DomainError is an error returned when an operator or function is applied to
// arguments outside its domain.
type DomainError struct {
	// Op is the operator symbol or function name.
	Op string
	// X and Y are the operands. Y is unused for functions of one argument.
	X, Y float64
	// Err is the sentinel describing the failure.
	Err error
}

func (err *DomainError) Error() string {
	r := err.Err.Error() + " in " + err.Op
	if err.Op == "cot" {
		return r + "(" + fmtnum(err.X) + ")"
	}
	return r + "(" + fmtnum(err.X) + ", " + fmtnum(err.Y) + ")"
}

func (err *DomainError) Unwrap() error {
	return err.Err
}

func fmtnum(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// funcs is the table of callable names. Calls to any other name are
// rejected by the parser.
var funcs = map[string]struct {
	// arity reports whether the function accepts n arguments.
	arity func(n int) bool
	// build creates the node for a call with an acceptable argument count.
	build func(args []*Expr) *Expr
}{
	"sin": {exactly(1), func(a []*Expr) *Expr { return Sin(a[0]) }},
	"cos": {exactly(1), func(a []*Expr) *Expr { return Cos(a[0]) }},
	"tan": {exactly(1), func(a []*Expr) *Expr { return Tan(a[0]) }},
	"cot": {exactly(1), func(a []*Expr) *Expr { return Cot(a[0]) }},
	"abs": {exactly(1), func(a []*Expr) *Expr { return Abs(a[0]) }},
	"ln":  {exactly(1), func(a []*Expr) *Expr { return Log(Num(math.E), a[0]) }},
	"log": {
		func(n int) bool { return n == 1 || n == 2 },
		func(a []*Expr) *Expr {
			if len(a) == 1 {
				return Log(Num(10), a[0])
			}
			return Log(a[0], a[1])
		},
	},
	// D is handled by the parser because its first argument is a name, but
	// it is listed here so that its arity is checked the same way.
	"D": {exactly(2), nil},
}

func exactly(k int) func(int) bool {
	return func(n int) bool { return n == k }
}

// binop applies the arithmetic of a binary node to its operand values. Panics
// if e is not a binary node.
func binop(e *Expr, x, y float64) (float64, error) {
	switch e.kind {
	case KindAdd:
		return x + y, nil
	case KindSub:
		return x - y, nil
	case KindMul:
		return x * y, nil
	case KindDiv:
		if y == 0 {
			return 0, &DomainError{Op: "/", X: x, Y: y, Err: ErrDivisionByZero}
		}
		return x / y, nil
	case KindPow:
		if x == 0 && y <= 0 {
			return 0, &DomainError{Op: "^", X: x, Y: y, Err: ErrInvalidExponentiation}
		}
		return math.Pow(x, y), nil
	case KindLog:
		if x <= 0 || y <= 0 {
			return 0, &DomainError{Op: "log", X: x, Y: y, Err: ErrInvalidLogarithm}
		}
		return logb(x, y), nil
	default:
		panic(errors.AssertionFailedf("calc: not a binary operation: %v", e.kind))
	}
}

// logb computes the base b logarithm of x, using the exact library routines
// for the common bases.
func logb(b, x float64) float64 {
	switch b {
	case 2:
		return math.Log2(x)
	case 10:
		return math.Log10(x)
	case math.E:
		return math.Log(x)
	default:
		return math.Log(x) / math.Log(b)
	}
}

// unop applies the function of a unary node to its operand value. Panics if e
// is not a unary node.
func unop(e *Expr, x float64) (float64, error) {
	switch e.kind {
	case KindSin:
		return math.Sin(x), nil
	case KindCos:
		return math.Cos(x), nil
	case KindTan:
		return math.Tan(x), nil
	case KindCot:
		t := math.Tan(x)
		if t == 0 {
			return 0, &DomainError{Op: "cot", X: x, Err: ErrDivisionByZero}
		}
		return 1 / t, nil
	case KindAbs:
		return math.Abs(x), nil
	default:
		panic(errors.AssertionFailedf("calc: not a unary function: %v", e.kind))
	}
}
