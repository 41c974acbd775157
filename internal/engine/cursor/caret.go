package cursor

import "fmt"

// Kind identifies which variant a Caret holds.
type Kind uint8

const (
	// KindOffset is a caret on a byte (normal mode).
	KindOffset Kind = iota
	// KindIndex is an insertion point between bytes.
	KindIndex
	// KindReplace is a caret on a byte that is about to be overwritten.
	KindReplace
	// KindVisual is a two-endpoint selection.
	KindVisual
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindOffset:
		return "offset"
	case KindIndex:
		return "index"
	case KindReplace:
		return "replace"
	case KindVisual:
		return "visual"
	default:
		return "unknown"
	}
}

// Caret is the cursor of the editor. It is a small value type; copying a
// Caret copies its counters.
//
// For KindVisual, start is the anchor and pos is the active endpoint.
// For every other kind only pos is meaningful.
type Caret struct {
	kind  Kind
	start Bounded
	pos   Bounded
}

// Offset returns an on-byte caret.
func Offset(pos Bounded) Caret {
	return Caret{kind: KindOffset, pos: pos}
}

// Index returns an insertion caret.
func Index(pos Bounded) Caret {
	return Caret{kind: KindIndex, pos: pos}
}

// Replace returns an overwrite caret.
func Replace(pos Bounded) Caret {
	return Caret{kind: KindReplace, pos: pos}
}

// Visual returns a selection caret. end is the active endpoint.
func Visual(start, end Bounded) Caret {
	return Caret{kind: KindVisual, start: start, pos: end}
}

// Kind returns the active variant.
func (c Caret) Kind() Kind {
	return c.kind
}

// Position returns the representative counter: the only counter for
// Index/Offset/Replace and the active endpoint for Visual.
func (c Caret) Position() Bounded {
	return c.pos
}

// Endpoints returns both Visual endpoints (anchor, active).
// For other kinds both values equal Position().
func (c Caret) Endpoints() (start, end Bounded) {
	if c.kind != KindVisual {
		return c.pos, c.pos
	}
	return c.start, c.pos
}

// Index returns the representative position.
func (c Caret) Index() int {
	return c.pos.Value()
}

// SetIndex moves the representative position, clamped to its bound.
func (c *Caret) SetIndex(index int) {
	c.pos.SetValue(index)
}

// IncIndex moves the representative position forward.
func (c *Caret) IncIndex(n int) {
	c.pos.Add(n)
}

// DecIndex moves the representative position backward.
func (c *Caret) DecIndex(n int) {
	c.pos.Sub(n)
}

// Range returns the normalized (low, high) byte range covered by the caret.
// For non-Visual carets low == high == Index().
func (c Caret) Range() (low, high int) {
	start, end := c.Endpoints()
	low, high = start.Value(), end.Value()
	if low > high {
		low, high = high, low
	}
	return low, high
}

// Pivot swaps the Visual endpoints so the anchor becomes active.
// It reports whether anything changed.
func (c *Caret) Pivot() bool {
	if c.kind != KindVisual {
		return false
	}
	c.start, c.pos = c.pos, c.start
	return true
}

// Rebound re-clamps the caret to a buffer of the given length without
// changing its kind.
func (c *Caret) Rebound(length int) {
	switch c.kind {
	case KindIndex:
		c.pos.SetMax(length)
	case KindOffset, KindReplace:
		c.pos.SetMax(SaturatingSub(length, 1))
	case KindVisual:
		c.start.SetMax(SaturatingSub(length, 1))
		c.pos.SetMax(SaturatingSub(length, 1))
	}
}

// ToNormal converts to an Offset caret. An insertion point steps back onto
// the byte before it.
func (c Caret) ToNormal() Caret {
	if c.kind == KindIndex {
		return Offset(NewBounded(
			SaturatingSub(c.pos.Value(), 1),
			SaturatingSub(c.pos.Max(), 1),
		))
	}
	return Offset(c.pos)
}

// ToInsert converts to an Index caret, which gains one slot past the last byte.
func (c Caret) ToInsert() Caret {
	if c.kind == KindIndex {
		return c
	}
	return Index(NewBounded(c.pos.Value(), SaturatingAdd(c.pos.Max(), 1)))
}

// ToReplace converts to a Replace caret.
func (c Caret) ToReplace() Caret {
	if c.kind == KindIndex {
		return Replace(NewBounded(c.pos.Value(), SaturatingSub(c.pos.Max(), 1)))
	}
	return Replace(c.pos)
}

// ToVisual converts to a single-byte selection. A Visual caret is returned
// unchanged.
func (c Caret) ToVisual() Caret {
	switch c.kind {
	case KindVisual:
		return c
	case KindIndex:
		p := NewBounded(c.pos.Value(), SaturatingSub(c.pos.Max(), 1))
		return Visual(p, p)
	default:
		return Visual(c.pos, c.pos)
	}
}

// String implements fmt.Stringer for debugging and log fields.
func (c Caret) String() string {
	if c.kind == KindVisual {
		return fmt.Sprintf("visual(%d/%d, %d/%d)",
			c.start.Value(), c.start.Max(), c.pos.Value(), c.pos.Max())
	}
	return fmt.Sprintf("%s(%d/%d)", c.kind, c.pos.Value(), c.pos.Max())
}
