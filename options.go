package rpn

// Option is an option used when creating an engine.
type Option interface {
	engineOption()
}

type (
	varopt struct {
		name string
		val  Value
	}
	varsopt    map[string]Value
	placesopt  int32
	precopt    uint
	historyopt int
)

func (varopt) engineOption()     {}
func (varsopt) engineOption()    {}
func (placesopt) engineOption()  {}
func (precopt) engineOption()    {}
func (historyopt) engineOption() {}

// SetVar sets the initial value of a variable. Names which are not valid
// identifiers are ignored.
func SetVar(name string, val Value) Option {
	return varopt{name, val}
}

// SetVars sets the initial values of any number of variables.
func SetVars(vars map[string]Value) Option {
	return varsopt(vars)
}

// Places sets the number of decimal places kept by division and by functions
// whose results are generally irrational. The default is 16.
func Places(n int32) Option {
	return placesopt(n)
}

// Prec sets the precision in bits of intermediate floating-point calculations
// for logarithms, square roots, and fractional powers. The default is 256.
func Prec(prec uint) Option {
	return precopt(prec)
}

// HistoryDepth sets the number of states kept for undo. The default is 20.
func HistoryDepth(n int) Option {
	return historyopt(n)
}

const (
	defaultPlaces  = 16
	defaultPrec    = 256
	defaultHistory = 20
)
