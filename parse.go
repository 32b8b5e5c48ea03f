package calc

import "unicode/utf8"

// Expr = Sum
// Sum = Product { ('+' | '-') Product }
// Product = Power { ('*' | '/') Power }
// Power = Atom [ '^' Power ]
// Atom = { '+' | '-' } ( num | name | name '(' Args ')' | '(' Expr ')' )
// Args = Expr { ',' Expr }

// Parse parses an expression. If fold is true, every subexpression whose
// operands are all numbers is evaluated during parsing and replaced by its
// value; an evaluation error there fails the parse with a *FoldError.
func Parse(src string, fold bool) (*Expr, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return ParseTokens(toks, fold)
}

// ParseTokens parses an expression from a token sequence as produced by
// Tokenize.
func ParseTokens(toks []Token, fold bool) (*Expr, error) {
	p := parser{toks: toks, implicit: fold}
	n, _, err := p.parseterm(exprprec)
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Kind != TokenEOF {
		return nil, &TokenError{Tok: tok}
	}
	return n, nil
}

type parser struct {
	toks []Token
	k    int
	// implicit enables constant folding.
	implicit bool
}

// peek returns the next token without consuming it. Past the last token, the
// result is a TokenEOF positioned just after the input.
func (p *parser) peek() Token {
	if p.k < len(p.toks) {
		return p.toks[p.k]
	}
	pos := 1
	if len(p.toks) > 0 {
		last := p.toks[len(p.toks)-1]
		pos = last.Pos + utf8.RuneCountInString(last.Text)
	}
	return Token{Kind: TokenEOF, Pos: pos}
}

// next consumes and returns the next token. TokenEOF is never consumed.
func (p *parser) next() Token {
	tok := p.peek()
	if tok.Kind != TokenEOF {
		p.k++
	}
	return tok
}

// fold evaluates n if it is constant and folding is enabled. pos is the
// position to report for an evaluation error.
func (p *parser) fold(n *Expr, isConst bool, pos int) (*Expr, bool, error) {
	if !isConst || !p.implicit {
		return n, isConst, nil
	}
	v, err := n.EvalConst()
	if err != nil {
		return nil, false, &FoldError{Col: pos, Err: err}
	}
	return Num(v), true, nil
}

// parseterm parses operands joined by binary operators that bind more tightly
// than until. The second result reports whether the term has no variables.
func (p *parser) parseterm(until operator) (*Expr, bool, error) {
	n, isConst, err := p.parseatom()
	if err != nil {
		return nil, false, err
	}
	for {
		tok := p.peek()
		prec := infix(tok.Kind)
		if prec.op == kindNone || !prec.moreBinding(until) {
			return n, isConst, nil
		}
		p.next()
		rhs, rc, err := p.parseterm(prec)
		if err != nil {
			return nil, false, err
		}
		n, isConst, err = p.fold(binary(prec.op, n, rhs), isConst && rc, tok.Pos)
		if err != nil {
			return nil, false, err
		}
	}
}

// parseatom parses a signed number, variable, call, or parenthesized
// subexpression.
func (p *parser) parseatom() (*Expr, bool, error) {
	neg := false
	for {
		tok := p.peek()
		if tok.Kind != TokenPlus && tok.Kind != TokenMinus {
			break
		}
		p.next()
		if tok.Kind == TokenMinus {
			neg = !neg
		}
	}
	var (
		n       *Expr
		isConst bool
		err     error
	)
	tok := p.next()
	switch tok.Kind {
	case TokenNum:
		n, isConst = Num(tok.Num), true
	case TokenIdent:
		if p.peek().Kind == TokenLParen {
			n, isConst, err = p.parsecall(tok)
			if err != nil {
				return nil, false, err
			}
		} else {
			n = Var(tok.Text)
		}
	case TokenLParen:
		n, isConst, err = p.parseterm(exprprec)
		if err != nil {
			return nil, false, err
		}
		if end := p.next(); end.Kind != TokenRParen {
			return nil, false, &TokenError{Tok: end}
		}
	default:
		return nil, false, &TokenError{Tok: tok}
	}
	if neg {
		return p.fold(Mul(Num(-1), n), isConst, tok.Pos)
	}
	return n, isConst, nil
}

// parsecall parses the argument list of a call to the function named by tok.
// The next token must be the open parenthesis.
func (p *parser) parsecall(tok Token) (*Expr, bool, error) {
	fn, ok := funcs[tok.Text]
	if !ok {
		return nil, false, &FuncError{Col: tok.Pos, Name: tok.Text}
	}
	p.next()
	var args []*Expr
	isConst := true
	for {
		a, c, err := p.parseterm(exprprec)
		if err != nil {
			return nil, false, err
		}
		args = append(args, a)
		isConst = isConst && c
		end := p.next()
		if end.Kind == TokenRParen {
			break
		}
		if end.Kind != TokenComma {
			return nil, false, &TokenError{Tok: end}
		}
	}
	if !fn.arity(len(args)) {
		return nil, false, &CallError{Col: tok.Pos, Func: tok.Text, Len: len(args)}
	}
	if fn.build == nil {
		// D(v, f): the variable is a name, not a value, so a derivative is
		// never constant.
		if args[0].kind != KindVar {
			return nil, false, &DerivativeError{Col: tok.Pos, Arg: args[0].String()}
		}
		return Derivative(args[1], args[0].name, nil), false, nil
	}
	return p.fold(fn.build(args), isConst, tok.Pos)
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op Kind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// infix gets the binary operator for a token. If there is no such operator,
// then the result has an op of kindNone.
func infix(k TokenKind) operator {
	switch k {
	case TokenPlus:
		return operator{1, false, KindAdd}
	case TokenMinus:
		return operator{1, false, KindSub}
	case TokenStar:
		return operator{5, false, KindMul}
	case TokenSlash:
		return operator{5, false, KindDiv}
	case TokenCaret:
		return operator{15, true, KindPow}
	default:
		return operator{}
	}
}

// exprprec is the precedence required to parse an entire subexpression.
var exprprec = operator{-128, true, kindNone}
