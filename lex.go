package rpn

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Token is a lexical token of algebraic input.
type Token struct {
	// Kind is the token type.
	Kind TokenKind
	// Text is the source text of the token. Function tokens include the open
	// parenthesis, without any space that came before it. Tokens produced by
	// Parse name the function instead.
	Text string
	// Pos is the rune position of the token in the input, starting at 1.
	Pos int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// TokenKind is the type of a token.
type TokenKind int8

const (
	TokenNone TokenKind = iota
	// TokenFunc is a function name followed by an open parenthesis.
	TokenFunc
	// TokenComma separates function arguments.
	TokenComma
	// TokenIdent is a bare identifier, generally the target of an assignment.
	TokenIdent
	// TokenVar is a variable reference, like $x.
	TokenVar
	// TokenConst is a named constant, like #pi.
	TokenConst
	// TokenSci is a number in scientific notation, like 1.5e3.
	TokenSci
	// TokenFloat is a number with a decimal point.
	TokenFloat
	// TokenInt is an integer.
	TokenInt
	// TokenPrev is @, the previous answer.
	TokenPrev
	TokenOpen
	TokenClose
	// TokenAssign is =.
	TokenAssign
	TokenPow
	TokenMul
	TokenDiv
	TokenMod
	TokenAdd
	TokenSub
	// TokenNeg is a unary minus.
	TokenNeg
	TokenGT
	TokenLT
	TokenGE
	TokenLE
	// TokenEq is ==.
	TokenEq
	numTokenKinds
)

var tokennames = [numTokenKinds]string{
	TokenNone:   "None",
	TokenFunc:   "Func",
	TokenComma:  "Comma",
	TokenIdent:  "Ident",
	TokenVar:    "Var",
	TokenConst:  "Const",
	TokenSci:    "Sci",
	TokenFloat:  "Float",
	TokenInt:    "Int",
	TokenPrev:   "Prev",
	TokenOpen:   "Open",
	TokenClose:  "Close",
	TokenAssign: "Assign",
	TokenPow:    "Pow",
	TokenMul:    "Mul",
	TokenDiv:    "Div",
	TokenMod:    "Mod",
	TokenAdd:    "Add",
	TokenSub:    "Sub",
	TokenNeg:    "Neg",
	TokenGT:     "GT",
	TokenLT:     "LT",
	TokenGE:     "GE",
	TokenLE:     "LE",
	TokenEq:     "Eq",
}

func (k TokenKind) String() string {
	if k < 0 || k >= numTokenKinds {
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokennames[k]
}

// lhs is the set of tokens that can be the left operand of an implicit
// multiplication.
var lhs = [numTokenKinds]bool{
	TokenVar:   true,
	TokenConst: true,
	TokenSci:   true,
	TokenFloat: true,
	TokenInt:   true,
	TokenPrev:  true,
	TokenClose: true,
}

// rhs is the set of tokens that can be the right operand of an implicit
// multiplication.
var rhs = [numTokenKinds]bool{
	TokenFunc:  true,
	TokenVar:   true,
	TokenConst: true,
	TokenSci:   true,
	TokenFloat: true,
	TokenInt:   true,
	TokenPrev:  true,
	TokenOpen:  true,
	TokenNeg:   true,
}

// unary is the set of tokens after which a minus is a negation. A minus at
// the start of input is also unary.
var unary = [numTokenKinds]bool{
	TokenNone:   true,
	TokenFunc:   true,
	TokenOpen:   true,
	TokenAdd:    true,
	TokenSub:    true,
	TokenNeg:    true,
	TokenMod:    true,
	TokenMul:    true,
	TokenDiv:    true,
	TokenPow:    true,
	TokenAssign: true,
	TokenComma:  true,
	TokenGT:     true,
	TokenLT:     true,
	TokenGE:     true,
	TokenLE:     true,
	TokenEq:     true,
}

// Lex scans algebraic input into tokens. A minus which cannot be a binary
// operator becomes TokenNeg, and a multiplication is inserted between
// adjacent terms, so that "2$x" scans like "2*$x".
func Lex(src string) ([]Token, error) {
	l := lexer{src: src, col: 1}
	var toks []Token
	prev := TokenNone
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokenNone {
			return toks, nil
		}
		if tok.Kind == TokenSub && unary[prev] {
			tok.Kind = TokenNeg
		}
		if lhs[prev] && rhs[tok.Kind] {
			toks = append(toks, Token{Kind: TokenMul, Text: "*", Pos: tok.Pos})
		}
		toks = append(toks, tok)
		prev = tok.Kind
	}
}

type lexer struct {
	src string
	// off is the byte offset of the next rune.
	off int
	// col is the rune position of the next rune.
	col int
}

// peek returns the next rune without consuming it, or -1 at the end of input.
func (l *lexer) peek() rune {
	return l.peekAt(l.off)
}

func (l *lexer) peekAt(off int) rune {
	if off >= len(l.src) {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(l.src[off:])
	return r
}

// advance consumes the next rune.
func (l *lexer) advance() {
	_, sz := utf8.DecodeRuneInString(l.src[l.off:])
	l.off += sz
	l.col++
}

// next scans the next token. At the end of input, the result is a token of
// kind TokenNone.
func (l *lexer) next() (Token, error) {
	for unicode.IsSpace(l.peek()) {
		l.advance()
	}
	start, col := l.off, l.col
	tok := Token{Pos: col}
	r := l.peek()
	switch {
	case r == -1:
		return tok, nil
	case isdigit(r), r == '.' && isdigit(l.peekAt(l.off+1)):
		tok.Kind = l.scanNum()
	case isletter(r):
		l.scanIdent()
		tok.Kind = TokenIdent
		// A function name may be separated from its parenthesis by spaces.
		end, k := l.off, l.off
		for r := l.peekAt(k); unicode.IsSpace(r); r = l.peekAt(k) {
			k += utf8.RuneLen(r)
		}
		if l.peekAt(k) == '(' {
			for l.off <= k {
				l.advance()
			}
			tok.Kind = TokenFunc
			tok.Text = l.src[start:end] + "("
			return tok, nil
		}
	case r == '$', r == '#':
		l.advance()
		if !isletter(l.peek()) {
			return tok, &LexError{Text: string(r), Col: col}
		}
		l.scanIdent()
		tok.Kind = TokenVar
		if r == '#' {
			tok.Kind = TokenConst
		}
	default:
		l.advance()
		tok.Kind = punct(r)
		switch {
		case tok.Kind == TokenNone:
			return tok, &LexError{Text: string(r), Col: col}
		case l.peek() != '=':
			// Single-rune token.
		case tok.Kind == TokenAssign:
			l.advance()
			tok.Kind = TokenEq
		case tok.Kind == TokenGT:
			l.advance()
			tok.Kind = TokenGE
		case tok.Kind == TokenLT:
			l.advance()
			tok.Kind = TokenLE
		}
	}
	tok.Text = l.src[start:l.off]
	return tok, nil
}

// scanNum scans the longest number at the current position. Scientific
// notation takes priority over floats, and floats over integers.
func (l *lexer) scanNum() TokenKind {
	kind := TokenInt
	for isdigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' {
		kind = TokenFloat
		l.advance()
		for isdigit(l.peek()) {
			l.advance()
		}
	}
	if r := l.peek(); r != 'e' && r != 'E' {
		return kind
	}
	// The exponent needs at least one digit. Otherwise, the e is the start of
	// the next token.
	k := l.off + 1
	if r := l.peekAt(k); r == '+' || r == '-' {
		k++
	}
	if !isdigit(l.peekAt(k)) {
		return kind
	}
	for l.off < k {
		l.advance()
	}
	for isdigit(l.peek()) {
		l.advance()
	}
	return TokenSci
}

func (l *lexer) scanIdent() {
	for r := l.peek(); isletter(r) || isdigit(r); r = l.peek() {
		l.advance()
	}
}

// punct gets the kind of a single-rune token.
func punct(r rune) TokenKind {
	switch r {
	case '(':
		return TokenOpen
	case ')':
		return TokenClose
	case ',':
		return TokenComma
	case '@':
		return TokenPrev
	case '=':
		return TokenAssign
	case '^':
		return TokenPow
	case '*':
		return TokenMul
	case '/':
		return TokenDiv
	case '%':
		return TokenMod
	case '+':
		return TokenAdd
	case '-':
		return TokenSub
	case '>':
		return TokenGT
	case '<':
		return TokenLT
	default:
		return TokenNone
	}
}

func isdigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isletter(r rune) bool {
	return r == '_' || 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}
