package rpn

import "github.com/google/shlex"

// Mode is the syntax of input lines.
type Mode int8

const (
	// ModeAlgebraic is infix input like "2(3 + 4)".
	ModeAlgebraic Mode = iota
	// ModeRPN is whitespace-separated commands like "2 3 4 add multiply".
	// Words may be quoted like shell words to push text containing spaces.
	ModeRPN
)

func (m Mode) String() string {
	switch m {
	case ModeAlgebraic:
		return "algebraic"
	case ModeRPN:
		return "rpn"
	default:
		return "Mode(?)"
	}
}

// ParseMode parses the name of a mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "algebraic", "alg", "infix":
		return ModeAlgebraic, true
	case "rpn", "postfix":
		return ModeRPN, true
	default:
		return 0, false
	}
}

// Run executes a line of input. Each command on the line is a separate step
// in the undo history. After algebraic input, the top of the stack becomes the
// previous answer.
//
// If any command fails, the entire line is rolled back, including the undo
// history, and the error is returned. If the line contains quit, the commands
// after it are not executed.
func (e *Engine) Run(line string, mode Mode) (Reply, error) {
	if e.quit {
		return Reply{}, ErrQuit
	}
	var cmds []string
	switch mode {
	case ModeAlgebraic:
		var err error
		cmds, err = Compile(line)
		if err != nil {
			return Reply{}, err
		}
	case ModeRPN:
		var err error
		cmds, err = shlex.Split(line)
		if err != nil {
			return Reply{}, err
		}
	default:
		panic("rpn: invalid mode " + mode.String())
	}
	saved := e.checkpoint()
	r := e.reply()
	for _, cmd := range cmds {
		var err error
		r, err = e.Execute(cmd)
		if err != nil {
			e.rollback(saved)
			return Reply{}, err
		}
		if r.Kind == ReplyQuit {
			return r, nil
		}
	}
	if mode == ModeAlgebraic && len(e.stack) != 0 {
		e.prev = e.stack[len(e.stack)-1]
	}
	return r, nil
}

// checkpoint is everything Run needs to undo a partially executed line.
type checkpoint struct {
	state snapshot
	prev  Value
	hist  history[snapshot]
}

func (e *Engine) checkpoint() checkpoint {
	h := e.hist
	h.past = append([]snapshot(nil), h.past...)
	h.future = append([]snapshot(nil), h.future...)
	return checkpoint{state: e.save(), prev: e.prev, hist: h}
}

func (e *Engine) rollback(c checkpoint) {
	e.load(c.state)
	e.prev = c.prev
	e.hist = c.hist
}
