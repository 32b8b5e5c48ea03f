package calc

import (
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
)

// Token is a lexical token of an expression.
type Token struct {
	// Kind is the token type.
	Kind TokenKind
	// Num is the value of a TokenNum.
	Num float64
	// Text is the source text of the token.
	Text string
	// Pos is the 1-based column of the first rune of the token.
	Pos int
}

func (t Token) String() string {
	switch t.Kind {
	case TokenNum, TokenIdent:
		return t.Kind.String() + "(" + t.Text + ")@" + strconv.Itoa(t.Pos)
	case TokenEOF:
		return "end of input"
	default:
		return strconv.Quote(t.Text) + "@" + strconv.Itoa(t.Pos)
	}
}

// TokenKind is the type of a token.
type TokenKind int8

const (
	tokenNone TokenKind = iota

	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenCaret
	TokenLParen
	TokenRParen
	TokenComma
	// TokenNum is a number literal.
	TokenNum
	// TokenIdent is a variable or function name.
	TokenIdent
	// TokenEOF indicates the end of the input. The lexer never produces it;
	// the parser reports it when it runs out of tokens.
	TokenEOF
)

var tokenNames = [...]string{
	tokenNone:   "None",
	TokenPlus:   "Plus",
	TokenMinus:  "Minus",
	TokenStar:   "Star",
	TokenSlash:  "Slash",
	TokenCaret:  "Caret",
	TokenLParen: "LParen",
	TokenRParen: "RParen",
	TokenComma:  "Comma",
	TokenNum:    "Num",
	TokenIdent:  "Ident",
	TokenEOF:    "EOF",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenNames) {
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenNames[k]
}

// Operators contains the runes which lex to single-rune tokens.
const Operators = "+-*/^(),"

var opkinds = [...]TokenKind{TokenPlus, TokenMinus, TokenStar, TokenSlash, TokenCaret, TokenLParen, TokenRParen, TokenComma}

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{src: src}
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// next scans the next token from the input. At the end of the input, the
// result is an empty token with io.EOF.
func (l *lexer) next() (Token, error) {
	defer l.buf.Reset()
	for {
		r, err := l.readRune()
		if err != nil {
			return Token{}, err
		}
		tok := Token{Pos: l.rune}
		switch {
		case unicode.IsSpace(r):
			continue
		case '0' <= r && r <= '9':
			l.unreadRune()
			if err := l.scanNum(); err != nil {
				return tok, err
			}
			tok.Text = l.buf.String()
			tok.Kind = TokenNum
			// ParseFloat saturates to ±Inf on overflow, which is the value
			// we want, so only syntax errors matter.
			v, err := strconv.ParseFloat(tok.Text, 64)
			if err != nil && !errors.Is(err, strconv.ErrRange) {
				return tok, l.error("number")
			}
			tok.Num = v
			return tok, nil
		case r == '_', unicode.IsLetter(r):
			l.unreadRune()
			if err := l.scanIdent(); err != nil {
				return tok, err
			}
			tok.Text = l.buf.String()
			tok.Kind = TokenIdent
			return tok, nil
		default:
			if k := strings.IndexRune(Operators, r); k >= 0 {
				tok.Text = Operators[k : k+1]
				tok.Kind = opkinds[k]
				return tok, nil
			}
			// Write the rune so that it shows up in the error message.
			l.buf.WriteRune(r)
			return tok, l.error("")
		}
	}
}

// scanNum scans digits, optionally followed by a dot and at least one more
// digit.
func (l *lexer) scanNum() error {
	dot, frac := false, false
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		switch {
		case '0' <= r && r <= '9':
			l.buf.WriteRune(r)
			if dot {
				frac = true
			}
			continue
		case r == '.' && !dot:
			l.buf.WriteRune(r)
			dot = true
			continue
		}
		l.unreadRune()
		break
	}
	if dot && !frac {
		return l.error("number")
	}
	return nil
}

func (l *lexer) scanIdent() error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// next unreads the rune that decides ident scanning before
				// calling scanIdent, so we have scanned at least one rune.
				return nil
			}
			return err
		}
		switch {
		case r == '_', unicode.IsLetter(r), unicode.IsDigit(r):
			l.buf.WriteRune(r)
		default:
			l.unreadRune()
			return nil
		}
	}
}

func (l *lexer) error(kind string) error {
	return &LexError{
		Text: l.buf.String(),
		Kind: kind,
		Col:  l.rune,
	}
}

// Tokenize splits src into tokens. Whitespace separates tokens and is
// otherwise ignored. The result never contains a TokenEOF.
func Tokenize(src string) ([]Token, error) {
	return tokenize(strings.NewReader(src))
}

func tokenize(src io.RuneScanner) ([]Token, error) {
	scan := lex(src)
	var toks []Token
	for {
		tok, err := scan.next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return toks, nil
			}
			return nil, err
		}
		toks = append(toks, tok)
	}
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the token the lexer was scanning when the invalid rune was
	// encountered, plus the invalid rune.
	Text string
	// Kind is "number" for a malformed numeric literal or the empty string
	// for a rune that cannot start any token.
	Kind string
	// Col is the total number of runes scanned by the lexer up to and
	// including this error.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "" {
		return "unexpected character at " + pos + ": " + strconv.Quote(err.Text)
	}
	return "malformed " + err.Kind + " literal at " + pos + ": " + err.Text
}

func (err *LexError) Pos() int {
	return err.Col
}
