// Package key provides the key event type consumed by the editor's modal
// controller.
//
// Terminal backends translate their native events into Event values:
//
//   - Key: identifies a special key, or KeyRune for characters
//   - Modifier: Ctrl, Alt, Shift and Meta bits
//   - Event: one key press
//
// # Key Specifications
//
// Parse and ParseKeys read Vim-style notation, which keeps tests and
// scripted input readable:
//
//	key.Parse("<C-c>")             // Ctrl+c
//	key.ParseKeys("i41<Esc>:q!<CR>") // seven events
package key
