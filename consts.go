package rpn

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Constant is a named constant that keeps its identity on the stack.
type Constant int8

const (
	ConstNone Constant = iota
	Pi
	HalfPi    // π/2
	ThirdPi   // π/3
	QuarterPi // π/4
	SixthPi   // π/6
	EighthPi  // π/8
	TwoPi     // 2π
	E
	Tau
	C   // speed of light in m/s
	G   // gravitational constant in m³/(kg s²)
	Phi // golden ratio
)

type constinfo struct {
	// name is the name recognized after #.
	name string
	// sym is the symbol used for display.
	sym string
	// val is the decimal value of the constant.
	val decimal.Decimal
}

var constants = [...]constinfo{
	ConstNone: {},
	Pi:        {"pi", "π", decimal.RequireFromString("3.14159265358979323846")},
	HalfPi:    {"halfpi", "π/2", decimal.RequireFromString("1.57079632679489661923")},
	ThirdPi:   {"thirdpi", "π/3", decimal.RequireFromString("1.04719755119659774615")},
	QuarterPi: {"quarterpi", "π/4", decimal.RequireFromString("0.78539816339744830962")},
	SixthPi:   {"sixthpi", "π/6", decimal.RequireFromString("0.52359877559829887308")},
	EighthPi:  {"eighthpi", "π/8", decimal.RequireFromString("0.39269908169872415481")},
	TwoPi:     {"twopi", "2π", decimal.RequireFromString("6.28318530717958647693")},
	E:         {"e", "e", decimal.RequireFromString("2.71828182845904523536")},
	Tau:       {"tau", "τ", decimal.RequireFromString("6.28318530717958647693")},
	C:         {"c", "c", decimal.RequireFromString("299792458")},
	G:         {"G", "G", decimal.RequireFromString("6.67430e-11")},
	Phi:       {"phi", "φ", decimal.RequireFromString("1.61803398874989484820")},
}

// constnames maps names and symbols to constants.
var constnames = func() map[string]Constant {
	m := make(map[string]Constant, 2*len(constants))
	for k := range constants {
		c := Constant(k)
		if c == ConstNone {
			continue
		}
		m[constants[k].name] = c
		m[constants[k].sym] = c
	}
	return m
}()

// LookupConstant finds a constant by its name, like "pi", or its symbol, like
// "π/2". The result is ConstNone if there is no such constant.
func LookupConstant(name string) Constant {
	return constnames[name]
}

// Name returns the name used to refer to the constant after #.
func (c Constant) Name() string {
	if !c.valid() {
		return ""
	}
	return constants[c].name
}

// String returns the constant's symbol.
func (c Constant) String() string {
	if !c.valid() {
		return "Constant(" + strconv.Itoa(int(c)) + ")"
	}
	return constants[c].sym
}

// Decimal returns the decimal value of the constant.
func (c Constant) Decimal() decimal.Decimal {
	if !c.valid() {
		return decimal.Zero
	}
	return constants[c].val
}

func (c Constant) valid() bool {
	return c > ConstNone && int(c) < len(constants)
}

// piDivisions are the constants produced by dividing π by small integers.
var piDivisions = map[int64]Constant{
	2: HalfPi,
	3: ThirdPi,
	4: QuarterPi,
	6: SixthPi,
	8: EighthPi,
}

// trigFunc identifies one of the six trigonometric functions.
type trigFunc int8

const (
	trigSin trigFunc = iota
	trigCos
	trigTan
	trigCsc
	trigSec
	trigCot
	numTrig
)

func (f trigFunc) String() string {
	return [...]string{"sin", "cos", "tan", "csc", "sec", "cot"}[f]
}

// undef marks an undefined entry in exacttrig.
const undef = "Undefined"

// exacttrig holds the results of the trigonometric functions at constants
// which are textbook angles, ordered sin, cos, tan, csc, sec, cot.
var exacttrig = map[Constant][numTrig]string{
	Pi:        {"0", "-1", "0", undef, "-1", undef},
	TwoPi:     {"0", "1", "0", undef, "1", undef},
	HalfPi:    {"1", "0", undef, "1", undef, "0"},
	ThirdPi:   {"0.86602540378443864676", "0.5", "1.73205080756887729353", "1.15470053837925152902", "2", "0.57735026918962576451"},
	QuarterPi: {"0.70710678118654752440", "0.70710678118654752440", "1", "1.41421356237309504880", "1.41421356237309504880", "1"},
	SixthPi:   {"0.5", "0.86602540378443864676", "0.57735026918962576451", "2", "1.15470053837925152902", "1.73205080756887729353"},
	EighthPi:  {"0.38268343236508977173", "0.92387953251128675613", "0.41421356237309504880", "2.61312592975275305571", "1.08239220029239396880", "2.41421356237309504880"},
}

// exact looks up the exact value of a trigonometric function at a constant.
// ok is false if there is no table entry.
func exact(c Constant, f trigFunc) (v Value, ok bool) {
	row, ok := exacttrig[c]
	if !ok {
		return Value{}, false
	}
	s := row[f]
	if s == undef {
		return Undefined(), true
	}
	return Num(decimal.RequireFromString(s)), true
}
