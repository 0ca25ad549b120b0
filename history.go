package rpn

// history is a bounded record of states for undo and redo. The most recent
// state in past is the current state.
type history[S any] struct {
	past   []S
	future []S
	max    int
}

func newHistory[S any](max int, initial S) history[S] {
	if max < 1 {
		max = 1
	}
	h := history[S]{
		past:   make([]S, 0, max),
		future: make([]S, 0, max),
		max:    max,
	}
	h.past = append(h.past, initial)
	return h
}

// record adds a new current state, evicting the oldest state if the history
// is full. Recording a state discards everything that can be redone.
func (h *history[S]) record(s S) {
	h.push(s)
	clear(h.future)
	h.future = h.future[:0]
}

func (h *history[S]) push(s S) {
	if len(h.past) >= h.max {
		n := copy(h.past, h.past[1:])
		var zero S
		h.past[n] = zero
		h.past = h.past[:n]
	}
	h.past = append(h.past, s)
}

// current returns the current state.
func (h *history[S]) current() S {
	return h.past[len(h.past)-1]
}

// undo discards the current state and returns the one before it. ok is false
// if there is no earlier state.
func (h *history[S]) undo() (s S, ok bool) {
	if len(h.past) < 2 {
		return s, false
	}
	cur := h.past[len(h.past)-1]
	var zero S
	h.past[len(h.past)-1] = zero
	h.past = h.past[:len(h.past)-1]
	h.future = append(h.future, cur)
	return h.current(), true
}

// redo restores the most recently undone state. ok is false if nothing has
// been undone since the last record.
func (h *history[S]) redo() (s S, ok bool) {
	if len(h.future) == 0 {
		return s, false
	}
	s = h.future[len(h.future)-1]
	var zero S
	h.future[len(h.future)-1] = zero
	h.future = h.future[:len(h.future)-1]
	h.push(s)
	return s, true
}

// reset discards all history and makes s the only state.
func (h *history[S]) reset(s S) {
	clear(h.past)
	clear(h.future)
	h.past = append(h.past[:0], s)
	h.future = h.future[:0]
}
