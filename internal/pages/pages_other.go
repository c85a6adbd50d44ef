//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package pages

import "fmt"

// Mapped reports whether Alloc returns memory outside the Go heap.
const Mapped = false

// Alloc returns n zeroed bytes from the Go heap when mmap is not available.
func Alloc(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("pages: negative size %d", n)
	}
	if n == 0 {
		return nil, nil
	}
	return make([]byte, n, RoundUp(n)), nil
}

// Free drops the reference; the garbage collector reclaims the memory.
func Free(data []byte) error {
	return nil
}
