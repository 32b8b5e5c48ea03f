// Package calc implements a floating-point calculator with a numerical
// derivative operator.
//
// Expressions use the usual infix operators + - * / and ^, where ^ binds
// tightest and groups to the right, so "2^3^2" is "2^(3^2)". Leading signs
// belong to the term they precede: "-2^2" is "(-2)^2". Function calls are
// always written with parentheses: sin, cos, tan, cot and abs take one
// argument; ln(x) is the natural logarithm; log(x) is the base 10 logarithm
// and log(b, x) is the base b logarithm of x. D(x, f) is the derivative of f
// with respect to the variable x, approximated by a central difference at the
// current value of x.
//
// Parsing can fold constant subexpressions into numbers as it goes, so that
// "2*3 + x" parses to "(6 + x)". Variables are resolved only at evaluation,
// so one parsed expression can be evaluated for many inputs; Table does so
// concurrently over a list of points.
package calc
