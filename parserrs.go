package calc

import "strconv"

// TokenError is an error indicating a token that cannot appear where it was
// found. It implements InputError. If Tok.Kind is TokenEOF, the input ended
// where more was expected, e.g. before a closing parenthesis.
type TokenError struct {
	// Tok is the unexpected token.
	Tok Token
}

func (err *TokenError) Error() string {
	if err.Tok.Kind == TokenEOF {
		return errpos(err.Tok.Pos, "unexpected end of input")
	}
	return errpos(err.Tok.Pos, "unexpected token "+strconv.Quote(err.Tok.Text))
}

func (err *TokenError) Pos() int {
	return err.Tok.Pos
}

// CallError is an error indicating a function call with the wrong number of
// arguments. It implements InputError.
type CallError struct {
	// Col is the position of the function name.
	Col int
	// Func is the function name that was called.
	Func string
	// Len is the number of arguments supplied.
	Len int
}

func (err *CallError) Error() string {
	return errpos(err.Col, "wrong number of arguments: cannot call "+err.Func+" with "+strconv.Itoa(err.Len))
}

func (err *CallError) Pos() int {
	return err.Col
}

// FuncError is an error indicating a call to a name that is not a function.
// It implements InputError.
type FuncError struct {
	// Col is the position of the name.
	Col int
	// Name is the name that was called.
	Name string
}

func (err *FuncError) Error() string {
	return errpos(err.Col, "function not recognized: "+strconv.Quote(err.Name))
}

func (err *FuncError) Pos() int {
	return err.Col
}

// DerivativeError is an error indicating a derivative whose first argument is
// not a variable name. It implements InputError.
type DerivativeError struct {
	// Col is the position of the D.
	Col int
	// Arg is the rendered first argument.
	Arg string
}

func (err *DerivativeError) Error() string {
	return errpos(err.Col, "derivative argument must be a variable, not "+err.Arg)
}

func (err *DerivativeError) Pos() int {
	return err.Col
}

// FoldError is an error from evaluating a constant subexpression while
// parsing. It implements InputError and unwraps to the evaluation error.
type FoldError struct {
	// Col is the position of the token that completed the subexpression.
	Col int
	// Err is the evaluation error.
	Err error
}

func (err *FoldError) Error() string {
	return errpos(err.Col, "evaluating constant: "+err.Err.Error())
}

func (err *FoldError) Unwrap() error {
	return err.Err
}

func (err *FoldError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*TokenError)(nil)
	_ InputError = (*CallError)(nil)
	_ InputError = (*FuncError)(nil)
	_ InputError = (*DerivativeError)(nil)
	_ InputError = (*FoldError)(nil)
	_ InputError = (*LexError)(nil)
)
