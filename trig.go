package rpn

import "github.com/shopspring/decimal"

// trigPlaces is the number of decimal places kept by trigonometric functions
// of numbers. The decimal implementations are accurate to about that many
// once the argument is reduced to [-π, π].
const trigPlaces = 15

var (
	one = decimal.NewFromInt(1)

	// pi60 and twoPi60 are π and 2π to 60 places, enough to reduce any
	// argument up to maxTrigArg without losing the places kept.
	pi60    = decimal.RequireFromString("3.141592653589793238462643383279502884197169399375105820974944")
	twoPi60 = decimal.RequireFromString("6.283185307179586476925286766559005768394338798750211641949889")
	// maxTrigArg is the largest magnitude trig functions accept.
	maxTrigArg = decimal.New(1, 30)
)

// reducePlaces is the number of places kept by reduced arguments.
const reducePlaces = 40

// Sin computes the sine of a number or constant.
func (v Value) Sin() (Value, error) { return v.trig(trigSin) }

// Cos computes the cosine of a number or constant.
func (v Value) Cos() (Value, error) { return v.trig(trigCos) }

// Tan computes the tangent of a number or constant.
func (v Value) Tan() (Value, error) { return v.trig(trigTan) }

// Csc computes the cosecant of a number or constant.
func (v Value) Csc() (Value, error) { return v.trig(trigCsc) }

// Sec computes the secant of a number or constant.
func (v Value) Sec() (Value, error) { return v.trig(trigSec) }

// Cot computes the cotangent of a number or constant.
func (v Value) Cot() (Value, error) { return v.trig(trigCot) }

// trig evaluates a trigonometric function. Constants which are textbook angles
// give exact results. Where the function has a pole, the result is Undefined.
func (v Value) trig(f trigFunc) (Value, error) {
	switch v.kind {
	case KindConstant:
		if r, ok := exact(v.c, f); ok {
			return r, nil
		}
	case KindNumber: // do nothing
	default:
		return Value{}, &ComputeError{Op: f.String(), Arg: v}
	}
	if v.num.Abs().GreaterThan(maxTrigArg) {
		return Value{}, &ComputeError{Op: f.String(), Arg: v}
	}
	d := reduce(v.num)
	switch f {
	case trigSin:
		return Num(dsin(d)), nil
	case trigCos:
		return Num(dcos(d)), nil
	case trigTan:
		c := dcos(d)
		if c.IsZero() {
			return Undefined(), nil
		}
		return Num(dsin(d).DivRound(c, trigPlaces)), nil
	case trigCsc:
		return recip(dsin(d)), nil
	case trigSec:
		return recip(dcos(d)), nil
	case trigCot:
		s := dsin(d)
		if s.IsZero() {
			return Undefined(), nil
		}
		return Num(dcos(d).DivRound(s, trigPlaces)), nil
	default:
		panic("rpn: invalid trig function")
	}
}

// reduce returns an angle in [-π, π] equivalent to d.
func reduce(d decimal.Decimal) decimal.Decimal {
	if d.Abs().LessThanOrEqual(pi60) {
		return d
	}
	k := d.DivRound(twoPi60, 0)
	return d.Sub(k.Mul(twoPi60)).Round(reducePlaces)
}

func dsin(d decimal.Decimal) decimal.Decimal {
	if d.IsZero() {
		return decimal.Zero
	}
	return d.Sin().Round(trigPlaces)
}

func dcos(d decimal.Decimal) decimal.Decimal {
	if d.IsZero() {
		return one
	}
	return d.Cos().Round(trigPlaces)
}

// recip is 1/d, or Undefined if d is zero.
func recip(d decimal.Decimal) Value {
	if d.IsZero() {
		return Undefined()
	}
	return Num(one.DivRound(d, trigPlaces))
}
