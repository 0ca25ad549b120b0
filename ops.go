package rpn

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// opcode identifies an engine operation.
type opcode int8

const (
	opNone opcode = iota

	// arithmetic
	opAdd
	opSub
	opMul
	opDiv
	opPow
	opSqrt
	opMod
	opRound
	opAbs
	opChs
	opInvert
	opExp
	opLog
	opLn
	opBlog

	// comparison
	opEq
	opGT
	opLT
	opGeq
	opLeq

	// trigonometry
	opSin
	opCos
	opTan
	opCsc
	opSec
	opCot

	// stack
	opDrop
	opSwap
	opDup
	opRollDown
	opRollUp
	opClear
	opDepth

	// variables
	opStore
	opInvStore
	opPurge

	// session
	opUndo
	opRedo
	opRefresh
	opCommands
	opUpdatePrev
	opQuit
)

// commands is the dispatch table from command names to operations.
var commands = map[string]opcode{
	"add":      opAdd,
	"subtract": opSub,
	"multiply": opMul,
	"divide":   opDiv,
	"power":    opPow,
	"sqrt":     opSqrt,
	"mod":      opMod,
	"modulo":   opMod,
	"round":    opRound,
	"abs":      opAbs,
	"chs":      opChs,
	"invert":   opInvert,
	"exp":      opExp,
	"log":      opLog,
	"ln":       opLn,
	"blog":     opBlog,

	"eq":  opEq,
	"gt":  opGT,
	"lt":  opLT,
	"geq": opGeq,
	"leq": opLeq,

	"sin": opSin,
	"cos": opCos,
	"tan": opTan,
	"csc": opCsc,
	"sec": opSec,
	"cot": opCot,

	"drop":     opDrop,
	"swap":     opSwap,
	"dup":      opDup,
	"rolldown": opRollDown,
	"rollup":   opRollUp,
	"clear":    opClear,
	"depth":    opDepth,

	"store":    opStore,
	"invstore": opInvStore,
	"purge":    opPurge,

	"undo":                   opUndo,
	"redo":                   opRedo,
	"refresh":                opRefresh,
	"commands":               opCommands,
	"update_previous_answer": opUpdatePrev,
	"quit":                   opQuit,
}

var commandnames = func() []string {
	v := make([]string, 0, len(commands))
	for k := range commands {
		v = append(v, k)
	}
	sort.Strings(v)
	return v
}()

// CommandNames returns the sorted names of all commands an engine recognizes.
func CommandNames() []string {
	return append([]string(nil), commandnames...)
}

// IsCommand returns whether name is the name of an operation rather than a
// literal.
func IsCommand(name string) bool {
	_, ok := commands[name]
	return ok
}

// apply executes an operation other than the session operations, which
// Execute handles itself.
func (e *Engine) apply(op opcode, name string) error {
	switch op {
	case opAdd, opSub, opMul, opDiv, opPow, opMod, opBlog,
		opEq, opGT, opLT, opGeq, opLeq:
		args, err := e.operands(name, 2, true)
		if err != nil {
			return err
		}
		r, err := e.binary(op, args[0], args[1])
		if err != nil {
			return err
		}
		if !inRange(r.num) {
			return ErrOverflow
		}
		e.drop(2)
		e.push(r)
	case opSqrt, opRound, opAbs, opChs, opInvert, opExp, opLog, opLn:
		args, err := e.operands(name, 1, true)
		if err != nil {
			return err
		}
		r, err := e.unary(op, args[0])
		if err != nil {
			return err
		}
		if !inRange(r.num) {
			return ErrOverflow
		}
		e.drop(1)
		e.push(r)
	case opSin, opCos, opTan, opCsc, opSec, opCot:
		// Trig functions report other kinds themselves.
		args, err := e.operands(name, 1, false)
		if err != nil {
			return err
		}
		var r Value
		switch op {
		case opSin:
			r, err = args[0].Sin()
		case opCos:
			r, err = args[0].Cos()
		case opTan:
			r, err = args[0].Tan()
		case opCsc:
			r, err = args[0].Csc()
		case opSec:
			r, err = args[0].Sec()
		case opCot:
			r, err = args[0].Cot()
		}
		if err != nil {
			return err
		}
		e.drop(1)
		e.push(r)
	case opDrop:
		if _, err := e.pop(name, 1, false); err != nil {
			return err
		}
	case opSwap:
		args, err := e.pop(name, 2, false)
		if err != nil {
			return err
		}
		e.push(args[1], args[0])
	case opDup:
		args, err := e.operands(name, 1, false)
		if err != nil {
			return err
		}
		e.push(args[0])
	case opRollDown:
		// The top moves to the bottom.
		if len(e.stack) == 0 {
			return ErrEmptyStack
		}
		top := e.stack[len(e.stack)-1]
		copy(e.stack[1:], e.stack[:len(e.stack)-1])
		e.stack[0] = top
	case opRollUp:
		// The bottom moves to the top.
		if len(e.stack) == 0 {
			return ErrEmptyStack
		}
		bot := e.stack[0]
		copy(e.stack, e.stack[1:])
		e.stack[len(e.stack)-1] = bot
	case opClear:
		e.drop(len(e.stack))
	case opDepth:
		e.push(Int(int64(len(e.stack))))
	case opStore, opInvStore:
		args, err := e.operands(name, 2, false)
		if err != nil {
			return err
		}
		val, id := args[0], args[1]
		if op == opInvStore {
			val, id = id, val
		}
		if id.kind != KindText || !IsIdent(id.text) {
			return &IdentError{Name: id.String()}
		}
		e.drop(2)
		e.vars[id.text] = val
	case opPurge:
		args, err := e.operands(name, 1, false)
		if err != nil {
			return err
		}
		id := args[0]
		if id.kind != KindText || !IsIdent(id.text) {
			return &IdentError{Name: id.String()}
		}
		if _, ok := e.vars[id.text]; !ok {
			return &NameError{Name: id.text}
		}
		e.drop(1)
		delete(e.vars, id.text)
	default:
		panic("rpn: unhandled operation " + name)
	}
	return nil
}

// binary computes an operation of two numeric operands.
func (e *Engine) binary(op opcode, a, b Value) (Value, error) {
	switch op {
	case opAdd:
		return Num(a.num.Add(b.num)), nil
	case opSub:
		return Num(a.num.Sub(b.num)), nil
	case opMul:
		return mul(a, b)
	case opDiv:
		return div(a, b, e.places)
	case opPow:
		return e.pow(a, b)
	case opMod:
		y := b.Float64()
		if y == 0 {
			return Value{}, ErrDivideByZero
		}
		return Float(math.Mod(a.Float64(), y)), nil
	case opBlog:
		return e.blog(a, b)
	case opEq:
		return truth(a.Float64() == b.Float64()), nil
	case opGT:
		return truth(a.Float64() > b.Float64()), nil
	case opLT:
		return truth(a.Float64() < b.Float64()), nil
	case opGeq:
		return truth(a.Float64() >= b.Float64()), nil
	case opLeq:
		return truth(a.Float64() <= b.Float64()), nil
	default:
		panic("rpn: not a binary operation")
	}
}

// unary computes an operation of one numeric operand.
func (e *Engine) unary(op opcode, a Value) (Value, error) {
	switch op {
	case opSqrt:
		return e.sqrt(a)
	case opRound:
		return Float(math.Round(a.Float64())), nil
	case opAbs:
		return Num(a.num.Abs()), nil
	case opChs:
		return Num(a.num.Neg()), nil
	case opInvert:
		x := a.Float64()
		if x == 0 {
			return Value{}, ErrDivideByZero
		}
		return Float(1 / x), nil
	case opExp:
		return e.exp(a)
	case opLog:
		d, err := e.log10(a, "log")
		if err != nil {
			return Value{}, err
		}
		return Num(d), nil
	case opLn:
		d, err := e.ln(a, "ln")
		if err != nil {
			return Value{}, err
		}
		return Num(d), nil
	default:
		panic("rpn: not a unary operation")
	}
}

var (
	two       = decimal.NewFromInt(2)
	half      = decimal.New(5, -1)
	truthy    = Int(1)
	falsy     = Int(0)
	maxPowExp = decimal.NewFromInt(math.MaxInt32)
)

func truth(b bool) Value {
	if b {
		return truthy
	}
	return falsy
}

// mul multiplies two values, folding 2×π into the constant 2π.
func mul(a, b Value) (Value, error) {
	if a.Constant() == Pi && b.kind == KindNumber && b.num.Equal(two) ||
		b.Constant() == Pi && a.kind == KindNumber && a.num.Equal(two) {
		return FromConstant(TwoPi), nil
	}
	if a.num.IsZero() || b.num.IsZero() {
		return Int(0), nil
	}
	// The product's exponent is the sum of the exponents, and its magnitude
	// is within one of the sum of the magnitudes.
	if int64(a.num.Exponent())+int64(b.num.Exponent()) < -maxExp || magnitude(a.num)+magnitude(b.num) > maxExp+2 {
		return Value{}, ErrOverflow
	}
	return Num(a.num.Mul(b.num)), nil
}

// div divides two values, folding π/n into a constant for n in 2, 3, 4, 6, 8.
func div(a, b Value, places int32) (Value, error) {
	if b.num.IsZero() {
		return Value{}, ErrDivideByZero
	}
	if magnitude(a.num)-magnitude(b.num) > maxExp+2 {
		return Value{}, ErrOverflow
	}
	if a.Constant() == Pi && b.kind == KindNumber && b.num.IsInteger() {
		if c, ok := piDivisions[b.num.IntPart()]; ok {
			return FromConstant(c), nil
		}
	}
	return Num(a.num.DivRound(b.num, places)), nil
}
