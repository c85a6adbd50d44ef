package buf

import (
	"errors"
	"math"
	"testing"
)

func TestAddOverflowSafe(t *testing.T) {
	if sum, ok := AddOverflowSafe(10, 5); !ok || sum != 15 {
		t.Fatalf("AddOverflowSafe(10,5)=%d,%v want 15,true", sum, ok)
	}
	if _, ok := AddOverflowSafe(math.MaxInt, 1); ok {
		t.Fatalf("expected overflow when adding to MaxInt")
	}
	if _, ok := AddOverflowSafe(math.MinInt, -1); ok {
		t.Fatalf("expected underflow when subtracting from MinInt")
	}
}

func TestMulOverflowSafe(t *testing.T) {
	if p, ok := MulOverflowSafe(1<<20, 24); !ok || p != 24<<20 {
		t.Fatalf("MulOverflowSafe(1<<20,24)=%d,%v", p, ok)
	}
	if p, ok := MulOverflowSafe(0, math.MaxInt); !ok || p != 0 {
		t.Fatalf("zero operand should never overflow, got %d,%v", p, ok)
	}
	if _, ok := MulOverflowSafe(math.MaxInt/2+1, 2); ok {
		t.Fatalf("expected overflow for MaxInt/2+1 * 2")
	}
	if _, ok := MulOverflowSafe(math.MinInt, -1); ok {
		t.Fatalf("expected overflow for MinInt * -1")
	}
}

func TestSlotBytes(t *testing.T) {
	n, err := SlotBytes(15, 8)
	if err != nil || n != 120 {
		t.Fatalf("SlotBytes(15,8)=%d,%v want 120,nil", n, err)
	}
	if _, err := SlotBytes(-1, 8); err == nil {
		t.Fatalf("SlotBytes should reject negative count")
	}
	if _, err := SlotBytes(1, -8); err == nil {
		t.Fatalf("SlotBytes should reject negative slot size")
	}
	_, err = SlotBytes(math.MaxInt/4, 16)
	if !errors.Is(err, ErrOverflow) {
		t.Fatalf("SlotBytes overflow error = %v, want ErrOverflow", err)
	}
}

func TestMulDivSaturates(t *testing.T) {
	if got := MulDiv(10, 3, 2); got != 15 {
		t.Fatalf("MulDiv(10,3,2)=%d want 15", got)
	}
	if got := MulDiv(6, 9, 4); got != 13 {
		t.Fatalf("MulDiv(6,9,4)=%d want 13", got)
	}
	if got := MulDiv(math.MaxInt, 9, 4); got != math.MaxInt {
		t.Fatalf("MulDiv should saturate, got %d", got)
	}
	if got := MulDiv(math.MaxInt-1, 1, 2); got != (math.MaxInt-1)/2 {
		t.Fatalf("MulDiv(max-1,1,2)=%d", got)
	}
	if got := AddSaturating(math.MaxInt, 1); got != math.MaxInt {
		t.Fatalf("AddSaturating should clamp, got %d", got)
	}
}

func TestInRange(t *testing.T) {
	if !InRange(0, 1) || !InRange(4, 5) {
		t.Fatalf("InRange rejected a valid index")
	}
	if InRange(5, 5) || InRange(-1, 5) || InRange(0, 0) {
		t.Fatalf("InRange accepted an invalid index")
	}
}
