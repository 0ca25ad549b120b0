package rpn

import "sort"

// Item is a serializable form of a Value.
type Item struct {
	Kind Kind   `yaml:"kind" json:"kind"`
	Text string `yaml:"text" json:"text"`
}

// State is a serializable snapshot of an engine's stack, variables, and
// previous answer.
type State struct {
	Stack     []Item          `yaml:"stack" json:"stack"`
	Variables map[string]Item `yaml:"variables,omitempty" json:"variables,omitempty"`
	Previous  Item            `yaml:"previous" json:"previous"`
}

// ItemOf converts a value to an item. Constants are stored by name so that
// they keep their identity.
func ItemOf(v Value) Item {
	if v.kind == KindConstant {
		return Item{Kind: KindConstant, Text: v.c.Name()}
	}
	return Item{Kind: v.kind, Text: v.String()}
}

// Value converts an item back to a value.
func (it Item) Value() (Value, error) {
	switch it.Kind {
	case KindNumber:
		v := ParseValue(it.Text)
		if v.kind != KindNumber {
			return Value{}, &ItemError{Item: it}
		}
		return v, nil
	case KindText:
		return Text(it.Text), nil
	case KindConstant:
		c := LookupConstant(it.Text)
		if c == ConstNone {
			return Value{}, &ItemError{Item: it}
		}
		return FromConstant(c), nil
	case KindUndefined:
		return Undefined(), nil
	default:
		return Value{}, &KindError{Text: it.Kind.String()}
	}
}

// ItemError indicates an item whose text is invalid for its kind.
type ItemError struct {
	Item Item
}

func (err *ItemError) Error() string {
	return "invalid " + err.Item.Kind.String() + " item " + err.Item.Text
}

// State returns a snapshot of the engine.
func (e *Engine) State() State {
	s := State{
		Stack:    make([]Item, len(e.stack)),
		Previous: ItemOf(e.prev),
	}
	for i, v := range e.stack {
		s.Stack[i] = ItemOf(v)
	}
	if len(e.vars) != 0 {
		s.Variables = make(map[string]Item, len(e.vars))
		for k, v := range e.vars {
			s.Variables[k] = ItemOf(v)
		}
	}
	return s
}

// Restore replaces the engine's stack, variables, and previous answer with
// those in s and discards the undo history. If s is invalid, the engine is
// unchanged.
func (e *Engine) Restore(s State) error {
	stack := make([]Value, len(s.Stack))
	for i, it := range s.Stack {
		v, err := it.Value()
		if err != nil {
			return err
		}
		stack[i] = v
	}
	// Check variables in a fixed order so errors are deterministic.
	names := make([]string, 0, len(s.Variables))
	for k := range s.Variables {
		names = append(names, k)
	}
	sort.Strings(names)
	vars := make(map[string]Value, len(names))
	for _, k := range names {
		if !IsIdent(k) {
			return &IdentError{Name: k}
		}
		v, err := s.Variables[k].Value()
		if err != nil {
			return err
		}
		vars[k] = v
	}
	prev, err := s.Previous.Value()
	if err != nil {
		return err
	}
	e.stack, e.vars, e.prev = stack, vars, prev
	e.hist.reset(e.save())
	return nil
}
