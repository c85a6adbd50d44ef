// Package buf contains overflow-safe size arithmetic for slot storage.
package buf

import (
	"errors"
	"fmt"
	"math"
)

// ErrOverflow reports that a size computation does not fit in an int.
var ErrOverflow = errors.New("size overflow")

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// MulOverflowSafe multiplies a and b, returning ok = false when the result would overflow int.
// This is essential for count * elementSize calculations when sizing slot storage.
func MulOverflowSafe(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	// For positive numbers, check if result would overflow
	if a > 0 && b > 0 {
		if a > math.MaxInt/b {
			return 0, false
		}
	}
	// For negative numbers
	if a < 0 && b < 0 {
		if a < math.MaxInt/b {
			return 0, false
		}
	}
	// Mixed signs - check against MinInt
	if a > 0 && b < 0 {
		if b < math.MinInt/a {
			return 0, false
		}
	}
	if a < 0 && b > 0 {
		if a < math.MinInt/b {
			return 0, false
		}
	}
	return a * b, true
}

// SlotBytes returns the number of bytes needed for count slots of slotSize
// bytes each, or an error wrapping ErrOverflow.
//
//	n, err := buf.SlotBytes(capacity, int(unsafe.Sizeof(zero)))
//	if err != nil {
//	    return fmt.Errorf("resize: %w", err)
//	}
func SlotBytes(count, slotSize int) (int, error) {
	if count < 0 {
		return 0, fmt.Errorf("negative count: %d", count)
	}
	if slotSize < 0 {
		return 0, fmt.Errorf("negative slot size: %d", slotSize)
	}
	total, ok := MulOverflowSafe(count, slotSize)
	if !ok {
		return 0, fmt.Errorf("%w: count=%d * slotSize=%d", ErrOverflow, count, slotSize)
	}
	return total, nil
}

// MulDiv returns n*num/den, saturating at math.MaxInt instead of wrapping.
// n and num must be non-negative and den positive.
func MulDiv(n, num, den int) int {
	if p, ok := MulOverflowSafe(n, num); ok {
		return p / den
	}
	// n*num overflowed: divide first. Loses at most num-1 units of precision,
	// which is irrelevant at these magnitudes.
	q := n / den
	if p, ok := MulOverflowSafe(q, num); ok {
		return p
	}
	return math.MaxInt
}

// AddSaturating returns a+b clamped to math.MaxInt. Both must be non-negative.
func AddSaturating(a, b int) int {
	if s, ok := AddOverflowSafe(a, b); ok {
		return s
	}
	return math.MaxInt
}

// InRange reports whether 0 <= i < n.
func InRange(i, n int) bool {
	return uint(i) < uint(n)
}
