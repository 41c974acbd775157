// Package dispatcher turns key events into edits on the model.
//
// The Controller owns the modal state between key events. Each event is
// first matched against the current mode (Normal, Insert, Replace, Visual
// or Command) by the transition table, which emits zero or more Actions
// and picks the next mode. Actions are then applied to the engine model
// and reported to the view.
//
// # Actions
//
// Actions mirror the operations a user can trigger: moving the caret,
// composing a byte, deleting, yanking and pasting, clipboard transfer,
// undo and redo, saving and quitting, mode changes and scripts. Apply
// runs one action directly, which is how commands typed after ':' and
// scripts reach the model.
//
// # Collaborators
//
// The controller talks to the outside through small interfaces:
//   - View: scrolling, status head, body, offset and mode
//   - Clipboard: byte transfer to the system clipboard
//   - ScriptRunner: Lua code typed with :lua or loaded with :source
//
// Clipboard and ScriptRunner are optional. Without them the related
// actions report an error on the status line.
//
// # Failure handling
//
// No key event may leave the controller in an invalid state. Rejected
// edits and I/O errors become status messages. A panic inside an action
// is recovered (unless disabled with WithPanicRecovery), logged, and the
// controller falls back to Normal mode.
//
// # Usage
//
//	model := engine.New()
//	if err := model.Open(path); err != nil {
//	    return err
//	}
//	c := dispatcher.New(model, renderer,
//	    dispatcher.WithClipboard(clipboard.New(true)),
//	    dispatcher.WithLogger(logger),
//	)
//	for ev := range keys {
//	    if !c.Dispatch(ev) {
//	        break
//	    }
//	}
package dispatcher
