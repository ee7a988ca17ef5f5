package editor

// History is the undo/redo stack. It stores full immutable snapshots, never
// references into live state, so replaying is just swapping values.
type History struct {
	past   []State
	future []State
}

// Record remembers the state that an action is about to replace. Any pending
// redo branch is discarded.
func (h *History) Record(before State) {
	h.past = append(h.past, before)
	h.future = nil
}

// Undo exchanges the current state for the most recent snapshot. The second
// return is false when there is nothing to undo.
func (h *History) Undo(current State) (State, bool) {
	if len(h.past) == 0 {
		return current, false
	}

	prev := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append(h.future, current)
	return prev, true
}

// Redo reverses the most recent Undo.
func (h *History) Redo(current State) (State, bool) {
	if len(h.future) == 0 {
		return current, false
	}

	next := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	h.past = append(h.past, current)
	return next, true
}

func (h *History) CanUndo() bool { return len(h.past) > 0 }
func (h *History) CanRedo() bool { return len(h.future) > 0 }
