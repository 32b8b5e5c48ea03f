package calc

import (
	"strconv"

	"github.com/cockroachdb/errors"
)

// Binding is a value for a named variable.
type Binding struct {
	Name  string
	Value float64
}

// scope resolves variable values during evaluation.
type scope interface {
	lookup(name string) (float64, bool)
}

type noVars struct{}

func (noVars) lookup(string) (float64, bool) { return 0, false }

type oneVar Binding

func (v oneVar) lookup(name string) (float64, bool) {
	return v.Value, name == v.Name
}

// bindings is a scope searched in order. Lookup is linear in the number of
// bindings, which is fine for the handful of variables an expression uses.
type bindings []Binding

func (b bindings) lookup(name string) (float64, bool) {
	for _, v := range b {
		if v.Name == name {
			return v.Value, true
		}
	}
	return 0, false
}

// rebind is a scope which gives one variable a new value and defers all
// others to a parent scope.
type rebind struct {
	Binding
	parent scope
}

func (s *rebind) lookup(name string) (float64, bool) {
	if name == s.Name {
		return s.Value, true
	}
	return s.parent.lookup(name)
}

// EvalConst evaluates an expression that has no free variables.
func (e *Expr) EvalConst() (float64, error) {
	return e.eval(noVars{}, DefaultStep)
}

// EvalWithVar evaluates an expression with a single variable defined.
func (e *Expr) EvalWithVar(name string, value float64) (float64, error) {
	return e.eval(oneVar{name, value}, DefaultStep)
}

// EvalWith evaluates an expression with any number of variables defined. If a
// name appears more than once, the first binding is used.
func (e *Expr) EvalWith(vars []Binding) (float64, error) {
	return e.eval(bindings(vars), DefaultStep)
}

// eval computes the value of the node. h is the step for derivatives.
func (e *Expr) eval(s scope, h float64) (float64, error) {
	switch k := e.kind; {
	case k == KindNum:
		return e.num, nil
	case k == KindVar:
		v, ok := s.lookup(e.name)
		if !ok {
			return 0, &NameError{Name: e.name}
		}
		return v, nil
	case k.Binary():
		x, err := e.left.eval(s, h)
		if err != nil {
			return 0, err
		}
		y, err := e.right.eval(s, h)
		if err != nil {
			return 0, err
		}
		return binop(e, x, y)
	case k.Unary():
		x, err := e.left.eval(s, h)
		if err != nil {
			return 0, err
		}
		return unop(e, x)
	case k == KindDerivative:
		x, err := e.point(s, h)
		if err != nil {
			return 0, err
		}
		return centralDiff(e.left, e.name, x, h, s)
	default:
		panic(errors.AssertionFailedf("calc: invalid AST node %v", k))
	}
}

// NameError is an error from a lookup for a variable that has no value.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}

// Context holds variable definitions for evaluating expressions. It is not
// safe to Set variables in a Context concurrently with its other methods.
type Context struct {
	names map[string]float64
	step  float64
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	varopt  Binding
	varsopt map[string]float64
	stepopt float64
)

func (varopt) ctxOption()  {}
func (varsopt) ctxOption() {}
func (stepopt) ctxOption() {}

// SetVar sets the value of a variable in the context.
func SetVar(name string, val float64) ContextOption {
	return varopt{name, val}
}

// SetVars sets the values of any number of variables in the context.
func SetVars(vars map[string]float64) ContextOption {
	return varsopt(vars)
}

// Step sets the step used to approximate derivatives. Steps that are not
// positive select DefaultStep.
func Step(h float64) ContextOption {
	return stepopt(h)
}

// NewContext creates a new evaluation context.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{step: DefaultStep}
	return ctx.Clone(opts...)
}

// Clone creates a copy of a context and applies options to it.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		names: make(map[string]float64, len(ctx.names)),
		step:  ctx.step,
	}
	for k, v := range ctx.names {
		n.names[k] = v
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case varopt:
			n.names[opt.Name] = opt.Value
		case varsopt:
			for k, v := range opt {
				n.names[k] = v
			}
		case stepopt:
			n.step = float64(opt)
			if n.step <= 0 {
				n.step = DefaultStep
			}
		default:
			panic(errors.AssertionFailedf("calc: unknown option type %T", opt))
		}
	}
	return &n
}

// Set sets the value of a variable. Returns ctx for chaining.
func (ctx *Context) Set(name string, value float64) *Context {
	if ctx.names == nil {
		ctx.names = make(map[string]float64)
	}
	ctx.names[name] = value
	return ctx
}

// Lookup returns the value of a variable and whether it is defined.
func (ctx *Context) Lookup(name string) (float64, bool) {
	v, ok := ctx.names[name]
	return v, ok
}

func (ctx *Context) lookup(name string) (float64, bool) {
	return ctx.Lookup(name)
}

// Step returns the step the context uses to approximate derivatives.
func (ctx *Context) Step() float64 {
	return ctx.step
}

// Eval evaluates an expression using the variables defined in ctx.
func (ctx *Context) Eval(e *Expr) (float64, error) {
	return e.eval(ctx, ctx.step)
}
