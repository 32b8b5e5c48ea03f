package calc

// DefaultStep is the step used to approximate derivatives when none is given.
const DefaultStep = 0.001

// ApproxDerivative approximates the derivative of e with respect to v at x
// using the central difference (f(x+h) - f(x-h)) / 2h, where f evaluates e
// with only v defined. If h is not positive, DefaultStep is used. The error
// of the approximation is proportional to h² for smooth functions.
func (e *Expr) ApproxDerivative(v string, x, h float64) (float64, error) {
	return centralDiff(e, v, x, h, noVars{})
}

// centralDiff differentiates f with respect to v at x, resolving variables
// other than v through s.
func centralDiff(f *Expr, v string, x, h float64, s scope) (float64, error) {
	if h <= 0 {
		h = DefaultStep
	}
	// The inner evaluation uses the same step so that nested derivatives
	// are consistent with the outer one.
	hi, err := f.eval(&rebind{Binding{v, x + h}, s}, h)
	if err != nil {
		return 0, err
	}
	lo, err := f.eval(&rebind{Binding{v, x - h}, s}, h)
	if err != nil {
		return 0, err
	}
	return (hi - lo) / (2 * h), nil
}

// point finds the value at which a derivative node is evaluated: the delayed
// substitution if there is one, otherwise the value of the bound variable.
func (e *Expr) point(s scope, h float64) (float64, error) {
	if e.right != nil {
		return e.right.eval(s, h)
	}
	x, ok := s.lookup(e.name)
	if !ok {
		return 0, &NameError{Name: e.name}
	}
	return x, nil
}

// Func returns a function of one variable which evaluates e with v bound to
// its argument. e must not be modified while the function is in use.
func (e *Expr) Func(v string) func(x float64) (float64, error) {
	return func(x float64) (float64, error) {
		return e.EvalWithVar(v, x)
	}
}

// Substitute replaces every reference to the variable name with a copy of
// value, in place. A derivative with respect to name keeps name free in the
// differentiated expression; the value is recorded as the point at which the
// derivative is taken instead.
//
// Substitution does not rename bound variables. A value mentioning the
// variable of an enclosing derivative is captured by it: substituting x for y
// in D(x, x*y) gives D(x, (x * x)), which differentiates both factors.
func (e *Expr) Substitute(name string, value *Expr) {
	switch e.kind {
	case KindNum:
	case KindVar:
		if e.name == name {
			*e = *value.Clone()
		}
	case KindDerivative:
		if e.name != name {
			e.left.Substitute(name, value)
		}
		switch {
		case e.right != nil:
			e.right.Substitute(name, value)
		case e.name == name:
			e.right = value.Clone()
		}
	default:
		e.left.Substitute(name, value)
		if e.right != nil {
			e.right.Substitute(name, value)
		}
	}
}

// SubstituteNum replaces every reference to the variable name with v.
func (e *Expr) SubstituteNum(name string, v float64) {
	e.Substitute(name, Num(v))
}
