package rpn

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		src  string
		rpn  string
	}{
		{"num", "1", "1"},
		{"mul-add", "$A * $B + $C", "$A $B * $C +"},
		{"add-mul", "$A + $B * $C", "$A $B $C * +"},
		{"paren", "($A + $B) * $C", "$A $B + $C *"},
		{"right-paren", "$A * ($B + $C)", "$A $B $C + *"},
		{"sub4", "w-x-y-z", "w x - y - z -"},
		{"div3", "8/4/2", "8 4 / 2 /"},
		{"pow3", "2^3^2", "2 3 2 ^ ^"},
		{"mod", "10 % 3", "10 3 %"},
		{"desc", "$w^$x*$y+$z", "$w $x ^ $y * $z +"},
		{"asc", "$w+$x*$y^$z", "$w $x $y $z ^ * +"},
		{"call", "sqrt(5*(1+0.2))", "5 1 0.2 + * sqrt"},
		{"call2", "blog(2,8)", "2 8 blog"},
		{"call-args", "f(1, 2+3, 4)", "1 2 3 + 4 f"},
		{"nested", "sin(cos(#pi))", "#pi cos sin"},
		{"call-const", "sin(#pi/2)", "#pi 2 / sin"},
		{"call-mul", "2 sin(#pi)", "2 #pi sin *"},
		{"neg", "-1", "1 -"},
		{"negpow", "-2^2", "2 2 ^ -"},
		{"powneg", "2^-1", "2 1 - ^"},
		{"negmul", "-3*2", "3 - 2 *"},
		{"subneg", "1 - -1", "1 1 - -"},
		{"negparen", "-(1+2)", "1 2 + -"},
		{"implicit", "2$x", "2 $x *"},
		{"implicit-paren", "3(4+5)", "3 4 5 + *"},
		{"implicit-const", "#pi$x", "#pi $x *"},
		{"prev", "@/2", "@ 2 /"},
		{"assign", "x = 5", "x 5 ="},
		{"assign-paren", "x = (3 + 4)", "x 3 4 + ="},
		{"assign-binds-tightest", "x = 3 + 4", "x 3 = 4 +"},
		{"compare", "1 + 2 > 2", "1 2 + 2 >"},
		{"compare-all", "1 < 2 == 2 >= 1", "1 2 < 2 == 1 >="},
		{"unclosed", "(1+2", "1 2 +"},
		{"unclosed-call", "sqrt(4", "4 sqrt"},
		{"unopened", "1+2)*3", "1 2 + 3 *"},
		{"sci", "1.5e3 * 2", "1.5e3 2 *"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			toks, err := Lex(c.src)
			if err != nil {
				t.Fatalf("failed to lex %q: %v", c.src, err)
			}
			rpn := Parse(toks)
			got := make([]string, len(rpn))
			for i, tok := range rpn {
				got[i] = tok.Text
			}
			if diff := cmp.Diff(strings.Fields(c.rpn), got); diff != "" {
				t.Errorf("wrong RPN for %q (-want +got):\n%s", c.src, diff)
			}
		})
	}
}

func TestCompile(t *testing.T) {
	cases := []struct {
		src  string
		cmds string
	}{
		{"1+1", "1 1 add"},
		{"$A * $B + $C", "$A $B multiply $C add"},
		{"8 / 4 - 2", "8 4 divide 2 subtract"},
		{"2^-1", "2 1 chs power"},
		{"-9 % 4", "9 chs 4 mod"},
		{"x = 5", "x 5 invstore"},
		{"1 > 2", "1 2 gt"},
		{"1 < 2", "1 2 lt"},
		{"1 >= 2", "1 2 geq"},
		{"1 <= 2", "1 2 leq"},
		{"1 == 2", "1 2 eq"},
		{"blog(2, 8)", "2 8 blog"},
		{"0.1000000000000000000001 + @", "0.1000000000000000000001 @ add"},
	}
	for _, c := range cases {
		got, err := Compile(c.src)
		if err != nil {
			t.Errorf("compiling %q: %v", c.src, err)
			continue
		}
		if diff := cmp.Diff(strings.Fields(c.cmds), got); diff != "" {
			t.Errorf("wrong commands for %q (-want +got):\n%s", c.src, diff)
		}
	}
	if _, err := Compile("1 ? 2"); err == nil {
		t.Error("compiling invalid input gave no error")
	}
}

func TestPrecedenceOrder(t *testing.T) {
	order := [][]TokenKind{
		{TokenOpen},
		{TokenGT, TokenLT, TokenGE, TokenLE, TokenEq},
		{TokenAdd, TokenSub},
		{TokenMul, TokenDiv, TokenMod},
		{TokenNeg},
		{TokenPow},
		{TokenAssign},
	}
	for i, level := range order {
		for _, k := range level {
			p := precedence(k)
			if p.prec != precedence(level[0]).prec {
				t.Errorf("%v has precedence %d, but %v has %d", k, p.prec, level[0], precedence(level[0]).prec)
			}
			if i > 0 && p.prec <= precedence(order[i-1][0]).prec {
				t.Errorf("%v does not bind tighter than %v", k, order[i-1][0])
			}
		}
	}
	for _, k := range []TokenKind{TokenInt, TokenVar, TokenFunc, TokenComma, TokenClose} {
		if p := precedence(k); p.prec != 0 {
			t.Errorf("%v is an operator with precedence %d", k, p.prec)
		}
	}
}

func TestCommandNamesCoverOperators(t *testing.T) {
	for k, c := range opcommands {
		if c == "" {
			continue
		}
		if !IsCommand(c) {
			t.Errorf("%v compiles to %q, which is not a command", TokenKind(k), c)
		}
	}
}
