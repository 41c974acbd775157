package cursor

import (
	"math"
	"testing"

	"pgregory.net/rapid"
)

func TestNewBoundedClamps(t *testing.T) {
	tests := []struct {
		name      string
		value     int
		max       int
		wantValue int
		wantMax   int
	}{
		{"within", 3, 10, 3, 10},
		{"at max", 10, 10, 10, 10},
		{"above max", 11, 10, 10, 10},
		{"zero max", 5, 0, 0, 0},
		{"negative value", -4, 10, 0, 10},
		{"negative max", 4, -1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBounded(tt.value, tt.max)
			if b.Value() != tt.wantValue {
				t.Errorf("Value() = %d, want %d", b.Value(), tt.wantValue)
			}
			if b.Max() != tt.wantMax {
				t.Errorf("Max() = %d, want %d", b.Max(), tt.wantMax)
			}
		})
	}
}

func TestBoundedSaturatingArithmetic(t *testing.T) {
	b := NewBounded(2, 10)

	b.Sub(5)
	if b.Value() != 0 {
		t.Errorf("Sub past zero = %d, want 0", b.Value())
	}

	b.Add(math.MaxInt)
	if b.Value() != 10 {
		t.Errorf("Add(MaxInt) = %d, want 10", b.Value())
	}

	b.Add(-3)
	if b.Value() != 7 {
		t.Errorf("Add(-3) = %d, want 7", b.Value())
	}

	b.Rem(4)
	if b.Value() != 3 {
		t.Errorf("Rem(4) = %d, want 3", b.Value())
	}

	b.Rem(0)
	if b.Value() != 3 {
		t.Errorf("Rem(0) changed value to %d", b.Value())
	}
}

func TestBoundedSetMaxReclamps(t *testing.T) {
	b := NewBounded(8, 10)
	b.SetMax(4)
	if b.Value() != 4 {
		t.Errorf("Value() after SetMax(4) = %d, want 4", b.Value())
	}

	b.SetMax(20)
	if b.Value() != 4 {
		t.Errorf("growing max moved value to %d", b.Value())
	}

	b.SetValue(25)
	if b.Value() != 20 {
		t.Errorf("SetValue(25) = %d, want 20", b.Value())
	}
}

func TestBoundedPlusMinusDoNotMutate(t *testing.T) {
	b := NewBounded(5, 10)
	if got := b.Plus(3).Value(); got != 8 {
		t.Errorf("Plus(3) = %d, want 8", got)
	}
	if got := b.Minus(7).Value(); got != 0 {
		t.Errorf("Minus(7) = %d, want 0", got)
	}
	if b.Value() != 5 {
		t.Errorf("receiver mutated to %d", b.Value())
	}
}

func TestSaturatingHelpers(t *testing.T) {
	if got := SaturatingAdd(math.MaxInt-1, 5); got != math.MaxInt {
		t.Errorf("SaturatingAdd overflow = %d, want MaxInt", got)
	}
	if got := SaturatingSub(3, 5); got != 0 {
		t.Errorf("SaturatingSub(3, 5) = %d, want 0", got)
	}
	if got := SaturatingSub(5, 3); got != 2 {
		t.Errorf("SaturatingSub(5, 3) = %d, want 2", got)
	}
}

func TestBoundedInvariantProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		max := rapid.IntRange(0, math.MaxInt).Draw(t, "max")
		value := rapid.IntRange(0, math.MaxInt).Draw(t, "value")
		b := NewBounded(value, max)
		if b.Value() > max {
			t.Fatalf("NewBounded(%d, %d).Value() = %d exceeds max", value, max, b.Value())
		}

		ops := rapid.SliceOf(rapid.IntRange(0, 3)).Draw(t, "ops")
		for i, op := range ops {
			n := rapid.IntRange(0, math.MaxInt).Draw(t, "n")
			switch op {
			case 0:
				b.Add(n)
			case 1:
				b.Sub(n)
			case 2:
				b.Rem(n)
			case 3:
				b.SetMax(n)
			}
			if b.Value() > b.Max() {
				t.Fatalf("step %d: value %d exceeds max %d", i, b.Value(), b.Max())
			}
		}
	})
}
