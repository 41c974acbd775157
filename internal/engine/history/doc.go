// Package history provides snapshot-based undo/redo for the editor engine.
//
// Unlike a command log, History stores whole values. The engine snapshots
// its state after each user-level action and restores snapshots on undo and
// redo. The oldest snapshot is the floor: it is never undone away, so there
// is always a state to return to.
//
//	h := history.New[int](0) // no entry limit
//	h.Init(0)
//	h.Snapshot(1)
//	h.Snapshot(2)
//
//	v, ok := h.Undo() // 1, true
//	v, ok = h.Redo()  // 2, true
//
// Taking a snapshot after an undo discards the redo stack.
package history
