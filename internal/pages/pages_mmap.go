//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package pages

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Mapped reports whether Alloc returns memory outside the Go heap.
const Mapped = true

// Alloc maps n zeroed bytes of private anonymous memory. The returned slice
// has length n; its backing mapping is rounded up to whole pages.
func Alloc(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("pages: negative size %d", n)
	}
	if n == 0 {
		return nil, nil
	}
	data, err := unix.Mmap(-1, 0, RoundUp(n), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("pages: mmap %d bytes: %w", n, err)
	}
	return data[:n], nil
}

// Free unmaps memory returned by Alloc. Freeing nil is a no-op; freeing
// anything else that is not a live mapping from Alloc reports EINVAL.
func Free(data []byte) error {
	if cap(data) == 0 {
		return nil
	}
	if err := unix.Munmap(data[:cap(data)]); err != nil {
		return fmt.Errorf("pages: munmap %d bytes: %w", cap(data), err)
	}
	return nil
}
