package rpn

import (
	"math"
	"regexp"
	"strconv"

	"github.com/shopspring/decimal"
)

// Kind is the type tag of a Value.
type Kind int8

const (
	// KindNumber is an exact decimal number. It is the kind of the zero Value.
	KindNumber Kind = iota
	// KindText is a literal string, like a variable name awaiting a store.
	KindText
	// KindConstant is a named constant.
	KindConstant
	// KindUndefined is the result of an operation with no defined value.
	KindUndefined
)

var kindnames = [...]string{
	KindNumber:    "number",
	KindText:      "text",
	KindConstant:  "constant",
	KindUndefined: "undefined",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindnames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindnames[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(kindnames) {
		return nil, &KindError{Text: k.String()}
	}
	return []byte(kindnames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	for i, s := range kindnames {
		if s == string(text) {
			*k = Kind(i)
			return nil
		}
	}
	return &KindError{Text: string(text)}
}

// Value is a value on an engine's stack or in its variables. Values are
// immutable; operations on them produce new values. The zero Value is the
// number 0.
type Value struct {
	kind Kind
	// c is the constant if kind is KindConstant.
	c Constant
	// num is the numeric value if kind is KindNumber or KindConstant.
	num decimal.Decimal
	// text is the string if kind is KindText.
	text string
}

// Num creates a number value.
func Num(d decimal.Decimal) Value {
	return Value{kind: KindNumber, num: d}
}

// Int creates a number value from an integer.
func Int(n int64) Value {
	return Num(decimal.NewFromInt(n))
}

// Float creates a number value from a float64. Infinities and NaN produce
// Undefined.
func Float(f float64) Value {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return Undefined()
	}
	return Num(decimal.NewFromFloat(f))
}

// Text creates a text value.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// FromConstant creates a value holding a named constant.
func FromConstant(c Constant) Value {
	return Value{kind: KindConstant, c: c, num: c.Decimal()}
}

// Undefined creates an undefined value.
func Undefined() Value {
	return Value{kind: KindUndefined}
}

// Kind returns the value's type tag.
func (v Value) Kind() Kind {
	return v.kind
}

// Constant returns the named constant the value holds, or ConstNone if it is
// not a constant.
func (v Value) Constant() Constant {
	if v.kind != KindConstant {
		return ConstNone
	}
	return v.c
}

// IsNumeric returns whether the value is a number or a constant.
func (v Value) IsNumeric() bool {
	return v.kind == KindNumber || v.kind == KindConstant
}

// Decimal returns the numeric value of a number or constant. Other kinds give
// zero.
func (v Value) Decimal() decimal.Decimal {
	return v.num
}

// Float64 returns the numeric value as the nearest float64.
func (v Value) Float64() float64 {
	return v.num.InexactFloat64()
}

// String renders the value. Numbers and constants render as their decimal
// values, so a constant loses its identity when its string is parsed again.
func (v Value) String() string {
	switch v.kind {
	case KindNumber, KindConstant:
		return v.num.String()
	case KindText:
		return v.text
	case KindUndefined:
		return undef
	default:
		panic("rpn: invalid value kind " + v.kind.String())
	}
}

// Equal returns whether two values have the same kind and the same value.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		return v.num.Equal(w.num)
	case KindConstant:
		return v.c == w.c
	case KindText:
		return v.text == w.text
	default:
		return true
	}
}

// isnum matches text that looks like a number.
var isnum = regexp.MustCompile(`^[+-]?([0-9]+\.?[0-9]*|\.[0-9]+)([eE][+-]?[0-9]+)?$`)

// isident matches valid variable names.
var isident = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// maxExp bounds the decimal magnitude of numbers. Nonzero numbers have no
// digits below 10^-maxExp and are less than 10^(maxExp+1) in magnitude.
const maxExp = 100000

// inRange returns whether d is within the magnitudes numbers may have.
func inRange(d decimal.Decimal) bool {
	if d.IsZero() {
		return true
	}
	return d.Exponent() >= -maxExp && magnitude(d) <= maxExp+1
}

// magnitude is one more than the floor of log10|d| for nonzero d.
func magnitude(d decimal.Decimal) int64 {
	return int64(d.Exponent()) + int64(d.NumDigits())
}

// ParseValue classifies literal text. Text that looks like a number is a
// number, "Undefined" is undefined, #name is the named constant if one
// exists, and anything else is text. A number too large or too small to be
// represented is text.
func ParseValue(s string) Value {
	if s == undef {
		return Undefined()
	}
	if len(s) > 1 && s[0] == '#' {
		if c := LookupConstant(s[1:]); c != ConstNone {
			return FromConstant(c)
		}
	}
	if isnum.MatchString(s) {
		if d, err := decimal.NewFromString(s); err == nil && inRange(d) {
			if d.IsZero() {
				d = decimal.Zero
			}
			return Num(d)
		}
	}
	return Text(s)
}

// isNumber returns whether s looks like a number, whether or not it can be
// represented.
func isNumber(s string) bool {
	return isnum.MatchString(s)
}

// IsIdent returns whether s is a valid variable name.
func IsIdent(s string) bool {
	return isident.MatchString(s)
}
