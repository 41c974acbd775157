package history

// History holds the undo (done) and redo (recall) stacks.
// The zero value is an empty, unlimited history.
type History[T any] struct {
	done   []T
	recall []T

	// maxEntries caps len(done). Zero means unlimited.
	maxEntries int
}

// New creates a history that keeps at most maxEntries snapshots on the undo
// stack. maxEntries <= 0 means unlimited.
func New[T any](maxEntries int) *History[T] {
	if maxEntries < 0 {
		maxEntries = 0
	}
	return &History[T]{maxEntries: maxEntries}
}

// Init clears both stacks and records the initial state as the floor.
func (h *History[T]) Init(initial T) {
	h.done = h.done[:0]
	h.recall = h.recall[:0]
	h.done = append(h.done, initial)
}

// Snapshot pushes the current state and clears the redo stack.
func (h *History[T]) Snapshot(current T) {
	h.done = append(h.done, current)
	h.recall = h.recall[:0]
	h.trim()
}

// Undo moves the newest snapshot to the redo stack and returns the state
// below it. It returns false when only the floor remains.
func (h *History[T]) Undo() (T, bool) {
	if len(h.done) <= 1 {
		var zero T
		return zero, false
	}

	last := h.done[len(h.done)-1]
	h.done = h.done[:len(h.done)-1]
	h.recall = append(h.recall, last)
	return h.Checkout()
}

// Redo moves the newest undone snapshot back and returns it.
func (h *History[T]) Redo() (T, bool) {
	if len(h.recall) == 0 {
		var zero T
		return zero, false
	}

	next := h.recall[len(h.recall)-1]
	h.recall = h.recall[:len(h.recall)-1]
	h.done = append(h.done, next)
	return h.Checkout()
}

// Checkout returns the current state without changing the stacks.
func (h *History[T]) Checkout() (T, bool) {
	if len(h.done) == 0 {
		var zero T
		return zero, false
	}
	return h.done[len(h.done)-1], true
}

// CanUndo reports whether Undo would succeed.
func (h *History[T]) CanUndo() bool {
	return len(h.done) > 1
}

// CanRedo reports whether Redo would succeed.
func (h *History[T]) CanRedo() bool {
	return len(h.recall) > 0
}

// Len returns the number of snapshots on the undo stack, floor included.
func (h *History[T]) Len() int {
	return len(h.done)
}

// RedoLen returns the number of snapshots on the redo stack.
func (h *History[T]) RedoLen() int {
	return len(h.recall)
}

// trim drops the oldest snapshots once the limit is exceeded. At least one
// entry always remains; the oldest survivor becomes the new floor.
func (h *History[T]) trim() {
	if h.maxEntries <= 0 || len(h.done) <= h.maxEntries {
		return
	}
	excess := len(h.done) - h.maxEntries
	kept := make([]T, h.maxEntries)
	copy(kept, h.done[excess:])
	h.done = kept
}
