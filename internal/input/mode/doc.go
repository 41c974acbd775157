// Package mode defines the modal state of the editor.
//
// The editor is always in exactly one of five modes:
//   - Normal: navigation and single-key commands
//   - Insert: bytes are composed and inserted at the caret
//   - Replace: bytes are composed and overwrite the caret byte, once or
//     repeatedly
//   - Visual: a byte range is selected
//   - Command: an ex-style command line is being typed
//
// State is a closed tagged union. Insert and Replace carry the entry
// machine that is composing the current byte; Command carries the text
// typed so far. States are values; transitions build new ones.
package mode
