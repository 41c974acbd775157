// Package cursor provides the caret model for the hex editor.
//
// A caret is always expressed in byte offsets and never exceeds the extent
// of the buffer it points into. The bound is carried by a Bounded counter,
// which clamps its value on every mutation.
//
// # Caret kinds
//
// The caret has four kinds, one per editing intent:
//
//   - Index: an insertion point between bytes. It may sit one past the
//     last byte, so its maximum equals the buffer length.
//   - Offset: a position on a byte, used for navigation and deletion.
//     Its maximum is the last byte (zero for an empty buffer).
//   - Replace: bounded like Offset; marks that the next byte overwrites.
//   - Visual: a selection made of two Offset-bounded endpoints. The second
//     endpoint is the active one that movement updates.
//
// Switching between kinds goes through ToNormal, ToInsert, ToReplace and
// ToVisual, which keep the value where legal and adjust the maximum so the
// bound always matches the kind.
package cursor
