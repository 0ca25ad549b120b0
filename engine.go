package rpn

import (
	"maps"
	"strings"
)

// Engine executes RPN commands against a stack of values. It owns the stack,
// a table of variables, the previous answer, and an undo history of the stack
// and variables. An Engine is not safe to use concurrently.
type Engine struct {
	stack []Value
	vars  map[string]Value
	prev  Value
	hist  history[snapshot]

	places int32
	prec   uint
	quit   bool
}

// snapshot is a saved state of an engine.
type snapshot struct {
	stack []Value
	vars  map[string]Value
}

// ReplyKind is the kind of a successful reply from an engine.
type ReplyKind int8

const (
	// ReplyStack carries the stack after a command.
	ReplyStack ReplyKind = iota
	// ReplyCommands carries the list of command names.
	ReplyCommands
	// ReplyQuit indicates that the session is over.
	ReplyQuit
)

// Reply is the result of executing a command.
type Reply struct {
	Kind ReplyKind
	// Stack is a copy of the stack, bottom first, for ReplyStack.
	Stack []Value
	// Commands is the sorted list of command names for ReplyCommands.
	Commands []string
}

// New creates an engine with an empty stack. The previous answer is 0.
func New(opts ...Option) *Engine {
	e := Engine{
		vars:   make(map[string]Value),
		places: defaultPlaces,
		prec:   defaultPrec,
	}
	depth := defaultHistory
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case varopt:
			if IsIdent(opt.name) {
				e.vars[opt.name] = opt.val
			}
		case varsopt:
			for k, v := range opt {
				if IsIdent(k) {
					e.vars[k] = v
				}
			}
		case placesopt:
			e.places = int32(opt)
		case precopt:
			e.prec = uint(opt)
		case historyopt:
			depth = int(opt)
		default:
			panic("rpn: unknown option type")
		}
	}
	e.hist = newHistory(depth, e.save())
	return &e
}

// Execute runs one command. If cmd names an operation, the operation is
// applied; otherwise cmd is a literal to push. @ is the previous answer, $name
// is the value of a variable, #name is a named constant, and anything else
// is parsed with ParseValue.
//
// If the command fails, the engine is left exactly as it was.
func (e *Engine) Execute(cmd string) (Reply, error) {
	if e.quit {
		return Reply{}, ErrQuit
	}
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return e.reply(), nil
	}
	op, ok := commands[cmd]
	if !ok {
		v, err := e.literal(cmd)
		if err != nil {
			return Reply{}, err
		}
		e.stack = append(e.stack, v)
		e.hist.record(e.save())
		return e.reply(), nil
	}
	switch op {
	case opQuit:
		e.quit = true
		return Reply{Kind: ReplyQuit}, nil
	case opCommands:
		return Reply{Kind: ReplyCommands, Commands: CommandNames()}, nil
	case opRefresh:
		return e.reply(), nil
	case opUpdatePrev:
		if len(e.stack) == 0 {
			return Reply{}, &OperandError{Op: cmd, Need: 1, Have: 0}
		}
		e.prev = e.stack[len(e.stack)-1]
		return e.reply(), nil
	case opUndo:
		s, ok := e.hist.undo()
		if !ok {
			return Reply{}, ErrCannotUndo
		}
		e.load(s)
		return e.reply(), nil
	case opRedo:
		s, ok := e.hist.redo()
		if !ok {
			return Reply{}, ErrCannotRedo
		}
		e.load(s)
		return e.reply(), nil
	}
	if err := e.apply(op, cmd); err != nil {
		// Operations check their operands before changing anything, but
		// restoring the current state guarantees it.
		e.load(e.hist.current())
		return Reply{}, err
	}
	e.hist.record(e.save())
	return e.reply(), nil
}

// literal resolves a value to push.
func (e *Engine) literal(cmd string) (Value, error) {
	switch {
	case cmd == "@":
		return e.prev, nil
	case cmd[0] == '$':
		v, ok := e.vars[cmd[1:]]
		if !ok {
			return Value{}, &NameError{Name: cmd[1:]}
		}
		return v, nil
	default:
		v := ParseValue(cmd)
		if v.kind == KindText && isNumber(cmd) {
			return Value{}, ErrOverflow
		}
		return v, nil
	}
}

// Stack returns a copy of the stack, bottom first.
func (e *Engine) Stack() []Value {
	return append([]Value(nil), e.stack...)
}

// Vars returns a copy of the variables.
func (e *Engine) Vars() map[string]Value {
	return maps.Clone(e.vars)
}

// Lookup returns the value of a variable. ok is false if it is not defined.
func (e *Engine) Lookup(name string) (v Value, ok bool) {
	v, ok = e.vars[name]
	return v, ok
}

// PreviousAnswer returns the value that @ pushes.
func (e *Engine) PreviousAnswer() Value {
	return e.prev
}

// Quit reports whether the engine has executed quit.
func (e *Engine) Quit() bool {
	return e.quit
}

func (e *Engine) reply() Reply {
	return Reply{Kind: ReplyStack, Stack: e.Stack()}
}

// save copies the current state.
func (e *Engine) save() snapshot {
	return snapshot{
		stack: append([]Value(nil), e.stack...),
		vars:  maps.Clone(e.vars),
	}
}

// load replaces the current state with a copy of s.
func (e *Engine) load(s snapshot) {
	e.stack = append(e.stack[:0], s.stack...)
	e.vars = maps.Clone(s.vars)
	if e.vars == nil {
		e.vars = make(map[string]Value)
	}
}

// operands checks that the top n values of the stack exist and, if numeric is
// true, that they are all numbers or constants within the range of
// magnitudes numbers may have. It returns a copy of them, deepest first,
// without removing them.
func (e *Engine) operands(op string, n int, numeric bool) ([]Value, error) {
	if len(e.stack) < n {
		return nil, &OperandError{Op: op, Need: n, Have: len(e.stack)}
	}
	args := e.stack[len(e.stack)-n:]
	if numeric {
		for i, v := range args {
			if !v.IsNumeric() {
				return nil, &TypeError{Op: op, Arg: i + 1, Got: v.kind}
			}
			if !inRange(v.num) {
				return nil, ErrOverflow
			}
		}
	}
	return append([]Value(nil), args...), nil
}

// pop removes the top n values of the stack after checking them as operands
// does. Nothing is removed if the check fails.
func (e *Engine) pop(op string, n int, numeric bool) ([]Value, error) {
	args, err := e.operands(op, n, numeric)
	if err != nil {
		return nil, err
	}
	e.drop(n)
	return args, nil
}

// drop removes the top n values.
func (e *Engine) drop(n int) {
	clear(e.stack[len(e.stack)-n:])
	e.stack = e.stack[:len(e.stack)-n]
}

func (e *Engine) push(vals ...Value) {
	e.stack = append(e.stack, vals...)
}
