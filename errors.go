package rpn

import (
	"errors"
	"strconv"
)

var (
	// ErrDivideByZero is returned by division, modulo, and inversion by zero.
	ErrDivideByZero = errors.New("division by zero")
	// ErrOverflow is returned when a number or a result is too large or too
	// small in magnitude to represent.
	ErrOverflow = errors.New("overflow")
	// ErrEmptyStack is returned when rolling an empty stack.
	ErrEmptyStack = errors.New("empty stack")
	// ErrCannotUndo is returned by undo when there is no earlier state.
	ErrCannotUndo = errors.New("cannot undo further")
	// ErrCannotRedo is returned by redo when there is no undone state.
	ErrCannotRedo = errors.New("cannot redo further")
	// ErrQuit is returned by an engine after it has executed quit.
	ErrQuit = errors.New("session has quit")
	// ErrDomain is matched by every DomainError.
	ErrDomain = errors.New("argument outside domain")
)

// LexError indicates input that is not any token. It implements InputError.
type LexError struct {
	// Text is the unrecognized input.
	Text string
	// Col is the rune position of the start of Text.
	Col int
}

func (err *LexError) Error() string {
	return errpos(err.Col, "invalid token "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Col
}

// OperandError indicates that there were too few values on the stack for an
// operation.
type OperandError struct {
	// Op is the operation.
	Op string
	// Need is the number of operands the operation requires.
	Need int
	// Have is the number of values that were on the stack.
	Have int
}

func (err *OperandError) Error() string {
	return err.Op + " needs " + strconv.Itoa(err.Need) + " operands but the stack has " + strconv.Itoa(err.Have)
}

// TypeError indicates an operand of the wrong kind.
type TypeError struct {
	// Op is the operation.
	Op string
	// Arg is the 1-based index of the operand, counting from the deepest.
	Arg int
	// Got is the kind of the operand.
	Got Kind
}

func (err *TypeError) Error() string {
	return err.Op + ": operand " + strconv.Itoa(err.Arg) + " is " + err.Got.String() + ", not a number"
}

// DomainError indicates an argument outside a function's domain, like the
// logarithm of a negative number. It matches ErrDomain with errors.Is.
type DomainError struct {
	// X is the out-of-domain argument.
	X Value
	// Func is the name of the function.
	Func string
}

func (err *DomainError) Error() string {
	return err.X.String() + " outside domain of " + err.Func
}

func (err *DomainError) Is(target error) bool {
	return target == ErrDomain
}

// ComputeError indicates a function which could not be computed on its
// operand, e.g. the sine of text.
type ComputeError struct {
	// Op is the function.
	Op string
	// Arg is the operand.
	Arg Value
}

func (err *ComputeError) Error() string {
	return "could not " + err.Op + " operand " + strconv.Quote(err.Arg.String())
}

// NameError is an error from a lookup for a variable that is not defined.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}

// IdentError indicates a value used as a variable name that is not a valid
// identifier.
type IdentError struct {
	// Name is the invalid name.
	Name string
}

func (err *IdentError) Error() string {
	return "invalid identifier: " + strconv.Quote(err.Name)
}

// KindError indicates an unknown value kind in serialized state.
type KindError struct {
	Text string
}

func (err *KindError) Error() string {
	return "unknown value kind " + strconv.Quote(err.Text)
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Errors from lexing
// implement InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var _ InputError = (*LexError)(nil)
