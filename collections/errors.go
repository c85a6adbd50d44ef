package collections

import "errors"

var (
	// ErrEmpty indicates a pop from an empty stack.
	ErrEmpty = errors.New("collections: stack is empty")

	// ErrFull indicates a push onto a full bounded stack.
	ErrFull = errors.New("collections: stack is full")

	// ErrInvalidPolicy indicates a GrowthConfig that cannot drive a resizing container.
	ErrInvalidPolicy = errors.New("collections: invalid growth policy")
)
