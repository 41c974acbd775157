// Package engine provides the edit model of the hex editor.
//
// A Model owns one file's bytes, the caret into them and the undo history.
// It is the only place where the buffer is mutated, and every mutation
// re-bounds the caret so it always stays inside the buffer for the current
// caret kind.
//
// # Basic Usage
//
//	m := engine.New(engine.WithFS(vfs.NewOSFS()))
//	if err := m.Open("image.bin"); err != nil {
//	    return err
//	}
//
//	m.ToInsert()
//	m.Edit(m.Index(), m.Index(), []byte{0x41})
//	m.IncIndex(1)
//	m.Snapshot()
//
//	m.Undo() // back to the state recorded by Open
//
// # History
//
// Edits are not recorded automatically. Callers group edits into one
// user-visible step and call Snapshot once the step is complete. Open
// records the floor snapshot, which Undo never removes.
//
// # Thread Safety
//
// A Model is not safe for concurrent use. The application funnels all
// input through a single event loop that owns the model.
package engine
