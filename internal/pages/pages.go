// Package pages provides platform-specific helpers for obtaining anonymous,
// page-granular memory outside the Go heap.
//
// Mapped memory is not scanned by the garbage collector. Callers must only
// store pointer-free data in it.
package pages

import "os"

// Size is the system page size.
var Size = os.Getpagesize()

// RoundUp rounds n up to a multiple of the page size.
func RoundUp(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + Size - 1) &^ (Size - 1)
}
