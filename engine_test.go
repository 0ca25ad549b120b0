package rpn_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/rpn"
)

// exec executes each command, failing the test on any error.
func exec(t *testing.T, e *rpn.Engine, cmds ...string) {
	t.Helper()
	for _, c := range cmds {
		_, err := e.Execute(c)
		require.NoError(t, err, "executing %q", c)
	}
}

// stack renders the engine's stack, bottom first.
func stack(e *rpn.Engine) []string {
	s := e.Stack()
	r := make([]string, len(s))
	for i, v := range s {
		r[i] = v.String()
	}
	return r
}

func top(t *testing.T, e *rpn.Engine) rpn.Value {
	t.Helper()
	s := e.Stack()
	require.NotEmpty(t, s)
	return s[len(s)-1]
}

func TestExecuteResults(t *testing.T) {
	cases := []struct {
		name string
		cmds string
		want string
	}{
		{"add", "1 1 add", "2"},
		{"add-exact", "0.1 0.2 add", "0.3"},
		{"subtract", "1 3 subtract", "-2"},
		{"multiply", "1.5 4 multiply", "6"},
		{"divide", "1 4 divide", "0.25"},
		{"divide-places", "1 3 divide", "0.3333333333333333"},
		{"mod", "-9 4 mod", "-1"},
		{"modulo", "-9 4 modulo", "-1"},
		{"mod-pos", "10 4 mod", "2"},
		{"power", "2 10 power", "1024"},
		{"power-neg", "2 -1 power", "0.5"},
		{"power-zero", "0 0 power", "1"},
		{"power-zero-base", "0 3 power", "0"},
		{"power-big", "3 100 power", "515377520732011331036461129765621272702107522001"},
		{"power-small", "0.5 20 power", "0.00000095367431640625"},
		{"power-tiny", "0.5 200000 power", "0"},
		{"power-neg-tiny", "2 -200000 power", "0"},
		{"power-one-huge", "-1 1e12 power", "1"},
		{"power-one-odd", "-1 1000000000001 power", "-1"},
		{"sqrt-tiny", "1e-100000 sqrt", "0"},
		{"exp-tiny", "-20000 exp", "0"},
		{"sqrt", "16 sqrt", "4"},
		{"round", "2.5 round", "3"},
		{"round-neg", "-2.4 round", "-2"},
		{"abs", "-1.5 abs", "1.5"},
		{"chs", "1.5 chs", "-1.5"},
		{"chs-neg", "-7 chs", "7"},
		{"invert", "4 invert", "0.25"},
		{"exp", "0 exp", "1"},
		{"log", "1000 log", "3"},
		{"ln", "#e ln", "1"},
		{"blog", "2 8 blog", "3"},
		{"blog-frac", "4 2 blog", "0.5"},
		{"eq", "2 2 eq", "1"},
		{"eq-false", "2 3 eq", "0"},
		{"gt", "#pi 3 gt", "1"},
		{"lt", "1 2 lt", "1"},
		{"geq", "2 2 geq", "1"},
		{"leq", "3 2 leq", "0"},
		{"sin", "#pi 2 divide sin", "1"},
		{"cos", "#pi cos", "-1"},
		{"sec", "#pi 3 divide sec", "2"},
		{"cot", "#pi cot", "Undefined"},
		{"tan-zero", "0 tan", "0"},
		{"depth", "a b depth", "2"},
		{"const-arith", "#pi 0 add", "3.14159265358979323846"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := rpn.New()
			exec(t, e, strings.Fields(c.cmds)...)
			assert.Equal(t, c.want, top(t, e).String())
		})
	}
}

func TestExecuteApprox(t *testing.T) {
	cases := []struct {
		name string
		cmds string
		want float64
	}{
		{"sqrt2", "2 sqrt", 1.4142135623730951},
		{"frac-power", "2 0.5 power", 1.4142135623730951},
		{"cube-root", "27 1 3 divide power", 3},
		{"exp1", "1 exp", 2.718281828459045},
		{"ln2", "2 ln", 0.6931471805599453},
		{"log2", "2 log", 0.3010299956639812},
		{"sin1", "1 sin", 0.8414709848078965},
		{"sin-e", "#e sin", 0.41078129050290885},
		{"sin-large", "1e18 sin", math.Sin(1e18)},
		{"cos-large", "1e15 cos", math.Cos(1e15)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := rpn.New()
			exec(t, e, strings.Fields(c.cmds)...)
			v := top(t, e)
			assert.Equal(t, rpn.KindNumber, v.Kind())
			assert.InDelta(t, c.want, v.Float64(), 1e-14)
		})
	}
}

func TestLargeNumbers(t *testing.T) {
	e := rpn.New()
	exec(t, e, "1e100000", "1", "add")
	s := top(t, e).String()
	assert.Len(t, s, 100001)
	assert.True(t, strings.HasPrefix(s, "10") && strings.HasSuffix(s, "01"))
	exec(t, e, "1e100000", "sqrt", "log")
	assert.InDelta(t, 50000, top(t, e).Float64(), 1e-9)
	exec(t, e, "1e-100000", "chs", "abs")
	assert.Equal(t, int32(-100000), top(t, e).Decimal().Exponent())
}

func TestConstantFolding(t *testing.T) {
	cases := []struct {
		cmds string
		want rpn.Constant
	}{
		{"#pi 2 multiply", rpn.TwoPi},
		{"2 #pi multiply", rpn.TwoPi},
		{"#pi 2 divide", rpn.HalfPi},
		{"#pi 3 divide", rpn.ThirdPi},
		{"#pi 4 divide", rpn.QuarterPi},
		{"#pi 6 divide", rpn.SixthPi},
		{"#pi 8 divide", rpn.EighthPi},
		{"#pi", rpn.Pi},
	}
	for _, c := range cases {
		e := rpn.New()
		exec(t, e, strings.Fields(c.cmds)...)
		v := top(t, e)
		assert.Equal(t, rpn.KindConstant, v.Kind(), c.cmds)
		assert.Equal(t, c.want, v.Constant(), c.cmds)
	}
	// Other operands produce plain numbers.
	for _, cmds := range []string{"#pi 3 multiply", "#pi 5 divide", "#pi 2.5 divide", "#e 2 multiply", "#pi 2 add"} {
		e := rpn.New()
		exec(t, e, strings.Fields(cmds)...)
		assert.Equal(t, rpn.KindNumber, top(t, e).Kind(), cmds)
	}
}

func TestExecuteErrors(t *testing.T) {
	cases := []struct {
		name  string
		setup string
		cmd   string
		is    error
		as    func(error) bool
	}{
		{"divide-zero", "1 0", "divide", rpn.ErrDivideByZero, nil},
		{"divide-zero-float", "1 0.0", "divide", rpn.ErrDivideByZero, nil},
		{"mod-zero", "1 0", "mod", rpn.ErrDivideByZero, nil},
		{"invert-zero", "0", "invert", rpn.ErrDivideByZero, nil},
		{"power-zero-neg", "0 -1", "power", rpn.ErrDivideByZero, nil},
		{"power-huge", "10 1e10", "power", rpn.ErrOverflow, nil},
		{"power-digits", "10 200000", "power", rpn.ErrOverflow, nil},
		{"power-huge-base", "1e100000 30", "power", rpn.ErrOverflow, nil},
		{"multiply-huge", "1e100000 1e100000", "multiply", rpn.ErrOverflow, nil},
		{"multiply-tiny", "1e-60000 1e-60000", "multiply", rpn.ErrOverflow, nil},
		{"divide-huge", "1e100000 1e-100000", "divide", rpn.ErrOverflow, nil},
		{"add-huge", "9e100000 9e100000", "add", rpn.ErrOverflow, nil},
		{"literal-huge", "", "1e2000000000", rpn.ErrOverflow, nil},
		{"literal-tiny", "", "1e-2000000000", rpn.ErrOverflow, nil},
		{"exp-huge", "10001", "exp", rpn.ErrOverflow, nil},
		{"power-neg-frac", "-8 0.5", "power", rpn.ErrDomain, nil},
		{"sqrt-neg", "-1", "sqrt", rpn.ErrDomain, nil},
		{"log-zero", "0", "log", rpn.ErrDomain, nil},
		{"ln-neg", "-1", "ln", rpn.ErrDomain, nil},
		{"blog-base-one", "1 8", "blog", rpn.ErrDivideByZero, nil},
		{"blog-neg", "2 -8", "blog", rpn.ErrDomain, nil},
		{"rolldown-empty", "", "rolldown", rpn.ErrEmptyStack, nil},
		{"rollup-empty", "", "rollup", rpn.ErrEmptyStack, nil},
		{"undo-empty", "", "undo", rpn.ErrCannotUndo, nil},
		{"redo-empty", "1", "redo", rpn.ErrCannotRedo, nil},
		{"add-one", "1", "add", nil, isOperandError("add", 2, 1)},
		{"drop-empty", "", "drop", nil, isOperandError("drop", 1, 0)},
		{"swap-one", "1", "swap", nil, isOperandError("swap", 2, 1)},
		{"dup-empty", "", "dup", nil, isOperandError("dup", 1, 0)},
		{"sin-empty", "", "sin", nil, isOperandError("sin", 1, 0)},
		{"store-one", "x", "store", nil, isOperandError("store", 2, 1)},
		{"prev-empty", "", "update_previous_answer", nil, isOperandError("update_previous_answer", 1, 0)},
		{"add-text", "1 x", "add", nil, isTypeError("add", 2, rpn.KindText)},
		{"add-undefined", "Undefined 1", "add", nil, isTypeError("add", 1, rpn.KindUndefined)},
		{"sqrt-text", "x", "sqrt", nil, isTypeError("sqrt", 1, rpn.KindText)},
		{"sin-text", "x", "sin", nil, isComputeError("sin")},
		{"sin-huge", "1e31", "sin", nil, isComputeError("sin")},
		{"cot-undefined", "#pi cot", "cot", nil, isComputeError("cot")},
		{"store-number", "1 3", "store", nil, isIdentError("3")},
		{"store-bad", "1 a-b", "store", nil, isIdentError("a-b")},
		{"invstore-bad", "1b 2", "invstore", nil, isIdentError("1b")},
		{"purge-bad", "#pi", "purge", nil, isIdentError("3.14159265358979323846")},
		{"purge-missing", "x", "purge", nil, isNameError("x")},
		{"recall-missing", "", "$x", nil, isNameError("x")},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := rpn.New()
			exec(t, e, strings.Fields(c.setup)...)
			before := e.State()
			_, err := e.Execute(c.cmd)
			require.Error(t, err)
			if c.is != nil {
				assert.ErrorIs(t, err, c.is)
			}
			if c.as != nil {
				assert.True(t, c.as(err), "wrong error %#v", err)
			}
			assert.Equal(t, before, e.State(), "failed command changed state")
		})
	}
}

func isOperandError(op string, need, have int) func(error) bool {
	return func(err error) bool {
		var e *rpn.OperandError
		return errors.As(err, &e) && e.Op == op && e.Need == need && e.Have == have
	}
}

func isTypeError(op string, arg int, got rpn.Kind) func(error) bool {
	return func(err error) bool {
		var e *rpn.TypeError
		return errors.As(err, &e) && e.Op == op && e.Arg == arg && e.Got == got
	}
}

func isComputeError(op string) func(error) bool {
	return func(err error) bool {
		var e *rpn.ComputeError
		return errors.As(err, &e) && e.Op == op
	}
}

func isIdentError(name string) func(error) bool {
	return func(err error) bool {
		var e *rpn.IdentError
		return errors.As(err, &e) && e.Name == name
	}
}

func isNameError(name string) func(error) bool {
	return func(err error) bool {
		var e *rpn.NameError
		return errors.As(err, &e) && e.Name == name
	}
}

func TestStackOps(t *testing.T) {
	cases := []struct {
		name string
		cmds string
		want []string
	}{
		{"push", "1 2.5 x #pi Undefined", []string{"1", "2.5", "x", "3.14159265358979323846", "Undefined"}},
		{"drop", "1 2 drop", []string{"1"}},
		{"swap", "1 2 swap", []string{"2", "1"}},
		{"dup", "1 2 dup", []string{"1", "2", "2"}},
		{"dup-drop", "1 2 dup drop", []string{"1", "2"}},
		{"rolldown", "1 2 3 rolldown", []string{"3", "1", "2"}},
		{"rollup", "1 2 3 rollup", []string{"2", "3", "1"}},
		{"roll-inverse", "1 2 3 rollup rolldown", []string{"1", "2", "3"}},
		{"roll-one", "1 rollup", []string{"1"}},
		{"clear", "1 2 3 clear", []string{}},
		{"clear-empty", "clear", []string{}},
		{"depth-empty", "depth", []string{"0"}},
		{"refresh", "1 refresh", []string{"1"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := rpn.New()
			exec(t, e, strings.Fields(c.cmds)...)
			assert.Equal(t, c.want, stack(e))
		})
	}
}

func TestReplies(t *testing.T) {
	e := rpn.New()
	r, err := e.Execute("1")
	require.NoError(t, err)
	assert.Equal(t, rpn.ReplyStack, r.Kind)
	require.Len(t, r.Stack, 1)
	assert.True(t, r.Stack[0].Equal(rpn.Int(1)))

	r, err = e.Execute("   ")
	require.NoError(t, err)
	assert.Equal(t, rpn.ReplyStack, r.Kind)
	assert.Len(t, r.Stack, 1)

	r, err = e.Execute("commands")
	require.NoError(t, err)
	assert.Equal(t, rpn.ReplyCommands, r.Kind)
	assert.Contains(t, r.Commands, "quit")
	assert.Contains(t, r.Commands, "update_previous_answer")
	assert.IsIncreasing(t, r.Commands)
	assert.Equal(t, rpn.CommandNames(), r.Commands)
	for _, c := range r.Commands {
		assert.True(t, rpn.IsCommand(c), c)
	}
	assert.Equal(t, []string{"1"}, stack(e))

	// Replies hold copies.
	r, err = e.Execute("refresh")
	require.NoError(t, err)
	r.Stack[0] = rpn.Text("changed")
	assert.Equal(t, []string{"1"}, stack(e))
}

func TestQuit(t *testing.T) {
	e := rpn.New()
	exec(t, e, "1")
	r, err := e.Execute("quit")
	require.NoError(t, err)
	assert.Equal(t, rpn.ReplyQuit, r.Kind)
	assert.True(t, e.Quit())
	_, err = e.Execute("2")
	assert.ErrorIs(t, err, rpn.ErrQuit)
	_, err = e.Run("2", rpn.ModeRPN)
	assert.ErrorIs(t, err, rpn.ErrQuit)
	assert.Equal(t, []string{"1"}, stack(e))
}

func TestVariables(t *testing.T) {
	e := rpn.New()
	exec(t, e, "-1.2", "a", "store")
	v, ok := e.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, "-1.2", v.String())
	assert.Empty(t, e.Stack())

	// A non-identifier name fails and leaves everything alone.
	exec(t, e, "1", "3")
	before := e.State()
	_, err := e.Execute("store")
	var ierr *rpn.IdentError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, before, e.State())

	exec(t, e, "clear", "$a", "$a", "multiply")
	assert.Equal(t, []string{"1.44"}, stack(e))
	_, ok = e.Lookup("a")
	assert.True(t, ok, "clear removed variables")

	exec(t, e, "b", "#pi", "invstore")
	v, ok = e.Lookup("b")
	require.True(t, ok)
	assert.Equal(t, rpn.Pi, v.Constant())

	exec(t, e, "a", "purge")
	_, ok = e.Lookup("a")
	assert.False(t, ok)
	assert.Equal(t, []string{"1.44"}, stack(e))

	vars := e.Vars()
	assert.Len(t, vars, 1)
	delete(vars, "b")
	_, ok = e.Lookup("b")
	assert.True(t, ok, "Vars returned the engine's own map")
}

func TestOptionVars(t *testing.T) {
	e := rpn.New(
		rpn.SetVar("x", rpn.Int(3)),
		rpn.SetVar("not valid", rpn.Int(4)),
		rpn.SetVars(map[string]rpn.Value{"y": rpn.Text("why"), "1z": rpn.Int(5)}),
		nil,
	)
	assert.Len(t, e.Vars(), 2)
	exec(t, e, "$x", "$y")
	assert.Equal(t, []string{"3", "why"}, stack(e))
	// The initial variables are part of the first state.
	assert.ErrorIs(t, execErr(e, "undo", "undo", "undo"), rpn.ErrCannotUndo)
	assert.Len(t, e.Vars(), 2)
}

func execErr(e *rpn.Engine, cmds ...string) error {
	for _, c := range cmds {
		if _, err := e.Execute(c); err != nil {
			return err
		}
	}
	return nil
}

func TestPlaces(t *testing.T) {
	e := rpn.New(rpn.Places(4))
	exec(t, e, "2", "3", "divide")
	assert.Equal(t, "0.6667", top(t, e).String())
	exec(t, e, "2", "sqrt")
	assert.Equal(t, "1.4142", top(t, e).String())
}

func TestPreviousAnswer(t *testing.T) {
	e := rpn.New()
	assert.Equal(t, "0", e.PreviousAnswer().String())
	exec(t, e, "@")
	assert.Equal(t, []string{"0"}, stack(e))
	exec(t, e, "5", "update_previous_answer")
	assert.Equal(t, "5", e.PreviousAnswer().String())
	assert.Equal(t, []string{"0", "5"}, stack(e))
	exec(t, e, "@", "add")
	assert.Equal(t, []string{"0", "10"}, stack(e))
}

func TestUndoRedo(t *testing.T) {
	e := rpn.New()
	exec(t, e, "1", "2", "test", "undo")
	assert.Equal(t, []string{"1", "2"}, stack(e))
	exec(t, e, "redo")
	assert.Equal(t, []string{"1", "2", "test"}, stack(e))

	// Undo and redo move variables with the stack.
	exec(t, e, "clear", "5", "x", "store")
	before := e.State()
	exec(t, e, "undo")
	_, ok := e.Lookup("x")
	assert.False(t, ok)
	assert.Equal(t, []string{"5", "x"}, stack(e))
	exec(t, e, "redo")
	assert.Equal(t, before, e.State())

	// Multiple steps.
	exec(t, e, "undo", "undo", "undo")
	assert.Empty(t, stack(e))
	exec(t, e, "redo", "redo")
	assert.Equal(t, []string{"5", "x"}, stack(e))

	// A new mutation discards everything that could be redone.
	exec(t, e, "7")
	assert.ErrorIs(t, execErr(e, "redo"), rpn.ErrCannotRedo)
	assert.Equal(t, []string{"5", "x", "7"}, stack(e))
}

func TestUndoSkipsFailures(t *testing.T) {
	e := rpn.New()
	exec(t, e, "1", "x")
	require.Error(t, execErr(e, "add"))
	exec(t, e, "undo")
	assert.Equal(t, []string{"1"}, stack(e))
}

func TestUndoSkipsQueries(t *testing.T) {
	e := rpn.New()
	exec(t, e, "1", "commands", "refresh", "update_previous_answer", "undo")
	assert.Empty(t, stack(e))
	assert.ErrorIs(t, execErr(e, "undo"), rpn.ErrCannotUndo)
}

func TestHistoryDepth(t *testing.T) {
	e := rpn.New()
	for i := 0; i < 25; i++ {
		exec(t, e, "1")
	}
	// The current state is one of the twenty.
	for i := 0; i < 19; i++ {
		exec(t, e, "undo")
	}
	assert.ErrorIs(t, execErr(e, "undo"), rpn.ErrCannotUndo)
	assert.Len(t, e.Stack(), 6)

	e = rpn.New(rpn.HistoryDepth(3))
	exec(t, e, "1", "2", "3", "4", "5", "undo", "undo")
	assert.Equal(t, []string{"1", "2", "3"}, stack(e))
	assert.ErrorIs(t, execErr(e, "undo"), rpn.ErrCannotUndo)
	exec(t, e, "redo", "redo")
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, stack(e))
}
