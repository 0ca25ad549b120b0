package rpn

import "strings"

// Parse converts a sequence of tokens in algebraic order into RPN order using
// the shunting-yard algorithm. Function tokens in the result hold only the
// function name. Parse does not check that parentheses are balanced: an open
// parenthesis with no match is discarded, and a close parenthesis with no
// match only ends the operators before it.
func Parse(toks []Token) []Token {
	out := make([]Token, 0, len(toks))
	ops := make([]Token, 0, 8)
	pop := func() Token {
		t := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		return t
	}
	for _, tok := range toks {
		switch tok.Kind {
		case TokenFunc:
			// The name goes below an open parenthesis so that it is emitted
			// when the matching close parenthesis pops it.
			name := Token{Kind: TokenFunc, Text: strings.TrimSuffix(tok.Text, "("), Pos: tok.Pos}
			ops = append(ops, name, Token{Kind: TokenOpen, Text: "(", Pos: tok.Pos})
		case TokenOpen, TokenNeg:
			// Prefix operators never pop anything.
			ops = append(ops, tok)
		case TokenComma:
			for len(ops) > 0 && ops[len(ops)-1].Kind != TokenOpen {
				out = append(out, pop())
			}
		case TokenClose:
			for len(ops) > 0 {
				t := pop()
				if t.Kind == TokenOpen {
					if len(ops) > 0 && ops[len(ops)-1].Kind == TokenFunc {
						out = append(out, pop())
					}
					break
				}
				out = append(out, t)
			}
		default:
			p := precedence(tok.Kind)
			if p.prec == 0 {
				// Not an operator.
				out = append(out, tok)
				continue
			}
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				if top.Kind == TokenOpen {
					break
				}
				if top.Kind != TokenFunc && !precedence(top.Kind).before(p) {
					break
				}
				out = append(out, pop())
			}
			ops = append(ops, tok)
		}
	}
	for len(ops) > 0 {
		if t := pop(); t.Kind != TokenOpen {
			out = append(out, t)
		}
	}
	return out
}

// Compile lexes and parses algebraic input and returns the engine commands
// that evaluate it.
func Compile(src string) ([]string, error) {
	toks, err := Lex(src)
	if err != nil {
		return nil, err
	}
	rpn := Parse(toks)
	cmds := make([]string, len(rpn))
	for i, tok := range rpn {
		cmds[i] = tok.Command()
	}
	return cmds, nil
}

// Command returns the engine command for a token. Operators become the names
// of the operations they perform; other tokens are their text.
func (t Token) Command() string {
	if c := opcommands[t.Kind]; c != "" {
		return c
	}
	return t.Text
}

var opcommands = [numTokenKinds]string{
	TokenAssign: "invstore",
	TokenPow:    "power",
	TokenMul:    "multiply",
	TokenDiv:    "divide",
	TokenMod:    "mod",
	TokenAdd:    "add",
	TokenSub:    "subtract",
	TokenNeg:    "chs",
	TokenGT:     "gt",
	TokenLT:     "lt",
	TokenGE:     "geq",
	TokenLE:     "leq",
	TokenEq:     "eq",
}

type operator struct {
	// prec is the precedence value. Higher is more binding. Zero means the
	// token is not an operator.
	prec int8
	// right indicates right-associativity.
	right bool
}

// before returns whether an operator p already on the stack is applied before
// a following operator q.
func (p operator) before(q operator) bool {
	if p.prec != q.prec {
		return p.prec > q.prec
	}
	return !q.right
}

// precedence gets the operator for a token kind.
func precedence(k TokenKind) operator {
	switch k {
	case TokenOpen:
		return operator{1, false}
	case TokenGT, TokenLT, TokenGE, TokenLE, TokenEq:
		return operator{2, false}
	case TokenAdd, TokenSub:
		return operator{3, false}
	case TokenMul, TokenDiv, TokenMod:
		return operator{4, false}
	case TokenNeg:
		return operator{5, true}
	case TokenPow:
		return operator{6, true}
	case TokenAssign:
		return operator{7, false}
	default:
		return operator{}
	}
}
