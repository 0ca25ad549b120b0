package rpn

import (
	"errors"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
	"github.com/zephyrtronium/bigfloat"
)

// maxPowDigits bounds the size of integer powers computed exactly.
const maxPowDigits = maxExp

// maxBinExp is the binary exponent corresponding to maxExp.
const maxBinExp = maxExp*3322/1000 + 4

// maxExpArg bounds the argument of exp so that results remain printable.
var maxExpArg = decimal.NewFromInt(10000)

// pow raises a to the power b. Integer exponents are computed exactly when
// the result is small enough to write out. Otherwise, the power is computed
// in floating point and rounded to the engine's places.
func (e *Engine) pow(a, b Value) (Value, error) {
	x, y := a.num, b.num
	if x.IsZero() {
		switch y.Sign() {
		case -1:
			return Value{}, ErrDivideByZero
		case 0:
			return Int(1), nil
		default:
			return Int(0), nil
		}
	}
	neg := false
	if x.Sign() < 0 {
		if !y.IsInteger() {
			return Value{}, &DomainError{X: a, Func: "power"}
		}
		neg = !y.Mod(two).IsZero()
	}
	if x.Abs().Equal(one) {
		if neg {
			return Int(-1), nil
		}
		return Int(1), nil
	}
	mag := log10abs(x) * y.InexactFloat64()
	if math.IsNaN(mag) || mag >= maxExp+1 {
		return Value{}, ErrOverflow
	}
	if y.IsInteger() && y.Abs().LessThanOrEqual(maxPowExp) {
		n := y.IntPart()
		k := abs64(n)
		if int64(x.NumDigits())*k <= maxPowDigits && int64(x.Exponent())*k >= -maxExp {
			if n < 0 {
				return Num(one.DivRound(ipow(x, k), e.places)), nil
			}
			return Num(ipow(x, n)), nil
		}
	}
	if mag < -float64(e.places+1) {
		return Int(0), nil
	}
	var r Value
	err := e.bigcall("power", a, func(z *big.Float) {
		z.Set(bigfloat.Pow(z, e.bigf(x.Abs()), e.bigf(y)))
		if neg {
			z.Neg(z)
		}
	}, &r)
	return r, err
}

// log10abs estimates log10|d| for nonzero d.
func log10abs(d decimal.Decimal) float64 {
	d = d.Abs()
	if u := d.Sub(one); u.Abs().LessThan(half) {
		return math.Log1p(u.InexactFloat64()) / math.Ln10
	}
	var mant big.Float
	exp2 := new(big.Float).SetInt(d.Coefficient()).MantExp(&mant)
	m, _ := mant.Float64()
	return math.Log10(m) + float64(exp2)*math.Log10(2) + float64(d.Exponent())
}

// ipow computes x^n for n ≥ 0 by squaring.
func ipow(x decimal.Decimal, n int64) decimal.Decimal {
	r := one
	for n > 0 {
		if n&1 != 0 {
			r = r.Mul(x)
		}
		n >>= 1
		if n > 0 {
			x = x.Mul(x)
		}
	}
	return r
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

func (e *Engine) sqrt(a Value) (Value, error) {
	if a.num.Sign() < 0 {
		return Value{}, &DomainError{X: a, Func: "sqrt"}
	}
	var r Value
	err := e.bigcall("sqrt", a, func(z *big.Float) {
		z.Sqrt(e.bigf(a.num))
	}, &r)
	return r, err
}

func (e *Engine) exp(a Value) (Value, error) {
	if a.num.GreaterThan(maxExpArg) {
		return Value{}, ErrOverflow
	}
	if a.num.Neg().GreaterThan(maxExpArg) {
		return Int(0), nil
	}
	var r Value
	err := e.bigcall("exp", a, func(z *big.Float) {
		bigfloat.Exp(z, e.bigf(a.num))
	}, &r)
	return r, err
}

// ln computes the natural logarithm. fn names the operation for errors.
func (e *Engine) ln(a Value, fn string) (decimal.Decimal, error) {
	if a.num.Sign() <= 0 {
		return decimal.Zero, &DomainError{X: a, Func: fn}
	}
	var r Value
	err := e.bigcall(fn, a, func(z *big.Float) {
		bigfloat.Log(z, e.bigf(a.num))
	}, &r)
	return r.num, err
}

// log10 computes the common logarithm. fn names the operation for errors.
func (e *Engine) log10(a Value, fn string) (decimal.Decimal, error) {
	if a.num.Sign() <= 0 {
		return decimal.Zero, &DomainError{X: a, Func: fn}
	}
	var r Value
	err := e.bigcall(fn, a, func(z *big.Float) {
		bigfloat.Log(z, e.bigf(a.num))
		ten := new(big.Float).SetPrec(e.prec).SetInt64(10)
		bigfloat.Log(ten, ten)
		z.Quo(z, ten)
	}, &r)
	return r.num, err
}

// blog computes the logarithm of x in base b. Both logarithms are taken at
// full precision before dividing.
func (e *Engine) blog(b, x Value) (Value, error) {
	if b.num.Sign() <= 0 {
		return Value{}, &DomainError{X: b, Func: "blog"}
	}
	if x.num.Sign() <= 0 {
		return Value{}, &DomainError{X: x, Func: "blog"}
	}
	if b.num.Equal(one) {
		return Value{}, ErrDivideByZero
	}
	var r Value
	err := e.bigcall("blog", x, func(z *big.Float) {
		bigfloat.Log(z, e.bigf(x.num))
		lb := bigfloat.Log(new(big.Float).SetPrec(e.prec), e.bigf(b.num))
		z.Quo(z, lb)
	}, &r)
	return r, err
}

// bigf converts a decimal to a big.Float at the engine's precision.
func (e *Engine) bigf(d decimal.Decimal) *big.Float {
	f, _, err := new(big.Float).SetPrec(e.prec).Parse(d.String(), 10)
	if err != nil {
		panic("rpn: invalid decimal " + d.String() + " (" + err.Error() + ")")
	}
	return f
}

// bigcall evaluates f at the engine's precision and stores the result,
// rounded to the engine's decimal places, in r. If f panics with big.ErrNaN,
// the result is a DomainError on x. Results too large to represent are
// ErrOverflow, and results too small to survive rounding are zero.
func (e *Engine) bigcall(fn string, x Value, f func(z *big.Float), r *Value) (err error) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		err = p.(error) // panic if not error
		if errors.As(err, &big.ErrNaN{}) {
			err = &DomainError{X: x, Func: fn}
			return
		}
		panic(err)
	}()
	z := new(big.Float).SetPrec(e.prec)
	f(z)
	if z.IsInf() {
		return ErrOverflow
	}
	switch exp2 := z.MantExp(nil); {
	case exp2 > maxBinExp:
		return ErrOverflow
	case z.Sign() == 0 || exp2 < -int(float64(e.places)*math.Log2(10))-2:
		*r = Int(0)
		return nil
	}
	d, err := decimal.NewFromString(z.Text('e', int(e.prec*3/10)))
	if err != nil {
		return ErrOverflow
	}
	if d.Exponent() < -e.places {
		d = d.Round(e.places)
	}
	*r = Num(d)
	return nil
}
