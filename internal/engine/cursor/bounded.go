package cursor

import "math"

// Bounded is a non-negative integer clamped to [0, max].
// Every mutating method reclamps, so Value() <= Max() always holds.
type Bounded struct {
	value int
	max   int
}

// NewBounded creates a counter, clamping value to max.
// Negative arguments are treated as zero.
func NewBounded(value, max int) Bounded {
	b := Bounded{value: nonNegative(value), max: nonNegative(max)}
	b.adjust()
	return b
}

// Value returns the current value.
func (b Bounded) Value() int {
	return b.value
}

// Max returns the current upper bound.
func (b Bounded) Max() int {
	return b.max
}

// SetValue sets the value and reclamps it.
func (b *Bounded) SetValue(value int) {
	b.value = nonNegative(value)
	b.adjust()
}

// SetMax changes the upper bound, which may pull the value down.
func (b *Bounded) SetMax(max int) {
	b.max = nonNegative(max)
	b.adjust()
}

// Add increases the value, saturating at math.MaxInt before clamping.
func (b *Bounded) Add(n int) {
	if n < 0 {
		b.Sub(-n)
		return
	}
	b.value = SaturatingAdd(b.value, n)
	b.adjust()
}

// Sub decreases the value, stopping at zero.
func (b *Bounded) Sub(n int) {
	if n < 0 {
		b.Add(-n)
		return
	}
	b.value = SaturatingSub(b.value, n)
	b.adjust()
}

// Rem replaces the value with value % n. A zero divisor leaves it unchanged.
func (b *Bounded) Rem(n int) {
	if n <= 0 {
		return
	}
	b.value %= n
	b.adjust()
}

// Plus returns a copy with n added.
func (b Bounded) Plus(n int) Bounded {
	b.Add(n)
	return b
}

// Minus returns a copy with n subtracted.
func (b Bounded) Minus(n int) Bounded {
	b.Sub(n)
	return b
}

func (b *Bounded) adjust() {
	if b.value > b.max {
		b.value = b.max
	}
}

// SaturatingAdd returns a+b for non-negative operands, capped at math.MaxInt.
func SaturatingAdd(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

// SaturatingSub returns a-b, or zero when b > a.
func SaturatingSub(a, b int) int {
	if b >= a {
		return 0
	}
	return a - b
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
