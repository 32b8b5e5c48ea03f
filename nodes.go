package calc

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Expr is a node in the abstract syntax tree of an expression. Each node owns
// its children exclusively; nodes are never shared between trees.
type Expr struct {
	kind Kind

	// num is the value of a KindNum.
	num float64
	// name is the name of a KindVar or the bound variable of a
	// KindDerivative.
	name string

	// left is the only operand of unary kinds, the base of KindLog, and the
	// differentiated expression of KindDerivative.
	left *Expr
	// right is the second operand of binary kinds and the delayed
	// substitution of KindDerivative, if any.
	right *Expr
}

// Kind is the type of an expression node.
type Kind int8

const (
	kindNone Kind = iota

	KindNum
	KindVar

	KindAdd
	KindSub
	KindMul
	KindDiv
	KindPow
	KindLog

	KindSin
	KindCos
	KindTan
	KindCot
	KindAbs

	KindDerivative
)

var kindNames = [...]string{
	kindNone:       "None",
	KindNum:        "Num",
	KindVar:        "Var",
	KindAdd:        "Add",
	KindSub:        "Sub",
	KindMul:        "Mul",
	KindDiv:        "Div",
	KindPow:        "Pow",
	KindLog:        "Log",
	KindSin:        "Sin",
	KindCos:        "Cos",
	KindTan:        "Tan",
	KindCot:        "Cot",
	KindAbs:        "Abs",
	KindDerivative: "Derivative",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Binary reports whether k is a kind with two operands.
func (k Kind) Binary() bool {
	return KindAdd <= k && k <= KindLog
}

// Unary reports whether k is a function kind with one operand.
func (k Kind) Unary() bool {
	return KindSin <= k && k <= KindAbs
}

// Num creates a number node.
func Num(v float64) *Expr {
	return &Expr{kind: KindNum, num: v}
}

// Var creates a variable reference.
func Var(name string) *Expr {
	return &Expr{kind: KindVar, name: name}
}

func binary(k Kind, l, r *Expr) *Expr {
	return &Expr{kind: k, left: l, right: r}
}

func unary(k Kind, x *Expr) *Expr {
	return &Expr{kind: k, left: x}
}

// The constructors below take ownership of their arguments.

func Add(l, r *Expr) *Expr { return binary(KindAdd, l, r) }
func Sub(l, r *Expr) *Expr { return binary(KindSub, l, r) }
func Mul(l, r *Expr) *Expr { return binary(KindMul, l, r) }
func Div(l, r *Expr) *Expr { return binary(KindDiv, l, r) }
func Pow(l, r *Expr) *Expr { return binary(KindPow, l, r) }

// Log creates the base b logarithm of x.
func Log(b, x *Expr) *Expr { return binary(KindLog, b, x) }

func Sin(x *Expr) *Expr { return unary(KindSin, x) }
func Cos(x *Expr) *Expr { return unary(KindCos, x) }
func Tan(x *Expr) *Expr { return unary(KindTan, x) }
func Cot(x *Expr) *Expr { return unary(KindCot, x) }
func Abs(x *Expr) *Expr { return unary(KindAbs, x) }

// Derivative creates the derivative of f with respect to v. If sub is not
// nil, the derivative is taken at the value of sub rather than at the value
// of v.
func Derivative(f *Expr, v string, sub *Expr) *Expr {
	return &Expr{kind: KindDerivative, name: v, left: f, right: sub}
}

// Kind returns the type of the node.
func (e *Expr) Kind() Kind {
	return e.kind
}

// Value returns the value of a number node and whether e is one.
func (e *Expr) Value() (float64, bool) {
	return e.num, e.kind == KindNum
}

// Name returns the name of a variable or the variable of a derivative.
func (e *Expr) Name() string {
	return e.name
}

// Operands returns the children of the node. For a derivative, the second
// operand is the delayed substitution, which may be nil.
func (e *Expr) Operands() (*Expr, *Expr) {
	return e.left, e.right
}

// Clone returns a deep copy of the expression.
func (e *Expr) Clone() *Expr {
	if e == nil {
		return nil
	}
	c := *e
	c.left = e.left.Clone()
	c.right = e.right.Clone()
	return &c
}

// Equal reports whether two expressions are structurally identical. Numbers
// compare by their bits, so a NaN leaf equals itself and 0 differs from -0.
func (e *Expr) Equal(f *Expr) bool {
	if e == nil || f == nil {
		return e == f
	}
	if e.kind != f.kind || e.name != f.name {
		return false
	}
	if e.kind == KindNum && math.Float64bits(e.num) != math.Float64bits(f.num) {
		return false
	}
	return e.left.Equal(f.left) && e.right.Equal(f.right)
}

// Vars returns the sorted names of the variables the expression refers to.
// The variable of a derivative counts only if the derivative has no delayed
// substitution.
func (e *Expr) Vars() []string {
	m := make(map[string]bool)
	e.vars(m)
	if len(m) == 0 {
		return nil
	}
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (e *Expr) vars(m map[string]bool) {
	switch e.kind {
	case KindNum:
	case KindVar:
		m[e.name] = true
	case KindDerivative:
		inner := make(map[string]bool)
		e.left.vars(inner)
		delete(inner, e.name)
		for k := range inner {
			m[k] = true
		}
		if e.right != nil {
			e.right.vars(m)
		} else {
			m[e.name] = true
		}
	default:
		e.left.vars(m)
		if e.right != nil {
			e.right.vars(m)
		}
	}
}

func (e *Expr) String() string {
	var b strings.Builder
	e.fmt(&b)
	return b.String()
}

func (e *Expr) fmt(b *strings.Builder) {
	switch e.kind {
	case KindNum:
		b.WriteString(strconv.FormatFloat(e.num, 'g', -1, 64))
	case KindVar:
		b.WriteString(e.name)
	case KindAdd, KindSub, KindMul, KindDiv, KindPow:
		b.WriteByte('(')
		e.left.fmt(b)
		b.WriteByte(' ')
		b.WriteByte(binopSymbol(e))
		b.WriteByte(' ')
		e.right.fmt(b)
		b.WriteByte(')')
	case KindLog:
		b.WriteString("log(")
		e.left.fmt(b)
		b.WriteString(", ")
		e.right.fmt(b)
		b.WriteByte(')')
	case KindSin, KindCos, KindTan, KindCot, KindAbs:
		b.WriteString(unopName(e))
		b.WriteByte('(')
		e.left.fmt(b)
		b.WriteByte(')')
	case KindDerivative:
		b.WriteString("D(")
		b.WriteString(e.name)
		b.WriteString(", ")
		e.left.fmt(b)
		b.WriteByte(')')
		if e.right != nil {
			b.WriteByte('[')
			b.WriteString(e.name)
			b.WriteString(" = ")
			e.right.fmt(b)
			b.WriteByte(']')
		}
	default:
		panic(errors.AssertionFailedf("calc: invalid node kind %v after writing %q", e.kind, b.String()))
	}
}

// binopSymbol gets the operator symbol of an arithmetic node. Panics if e is
// not one.
func binopSymbol(e *Expr) byte {
	switch e.kind {
	case KindAdd:
		return '+'
	case KindSub:
		return '-'
	case KindMul:
		return '*'
	case KindDiv:
		return '/'
	case KindPow:
		return '^'
	default:
		panic(errors.AssertionFailedf("calc: not an arithmetic operator: %v", e.kind))
	}
}

// unopName gets the function name of a unary node. Panics if e is not one.
func unopName(e *Expr) string {
	switch e.kind {
	case KindSin:
		return "sin"
	case KindCos:
		return "cos"
	case KindTan:
		return "tan"
	case KindCot:
		return "cot"
	case KindAbs:
		return "abs"
	default:
		panic(errors.AssertionFailedf("calc: not a unary function: %v", e.kind))
	}
}
