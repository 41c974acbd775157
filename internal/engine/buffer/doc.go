// Package buffer provides the flat byte buffer edited by the hex editor.
//
// A Buffer is a plain []byte. Every edit is expressed as a splice that
// replaces a half-open range with new bytes, which covers insertion
// (empty range), deletion (empty replacement) and overwrite:
//
//	buf := buffer.New([]byte{0x00, 0x01, 0x02})
//
//	buf.Splice(1, 1, []byte{0xff}) // 00 ff 01 02
//	buf.Splice(0, 2, nil)          // 01 02
//	buf.Splice(1, 2, []byte{0x41}) // 01 41
//
// Splices copy, so each edit costs O(len). Accessors that hand out slices
// return copies unless documented otherwise.
package buffer
