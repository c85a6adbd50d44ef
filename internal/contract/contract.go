// Package contract defines the two fatal failure classes shared by slabkit's
// containers and allocators.
//
// A Violation reports a broken caller contract (popping an empty stack,
// indexing past capacity, freeing a pointer the pool never handed out). An
// AllocFailure reports that backing memory could not be obtained. Both are
// raised with panic; they are never returned as ordinary errors and never
// corrected silently. Checks are always compiled in.
package contract

import (
	"errors"
	"fmt"
	"runtime"
)

var (
	// ErrPrecondition is the class of every Violation.
	ErrPrecondition = errors.New("precondition violated")

	// ErrAllocation is the class of every AllocFailure.
	ErrAllocation = errors.New("allocation failed")
)

// Violation is the panic payload for a broken precondition.
type Violation struct {
	Op    string // operation that detected the violation, e.g. "Array.Pop"
	Cond  string // the condition that did not hold
	Where string // file:line of the check that failed
}

func (v *Violation) Error() string {
	if v.Where == "" {
		return fmt.Sprintf("%s: %v: %s", v.Op, ErrPrecondition, v.Cond)
	}
	return fmt.Sprintf("%s: %v: %s (at %s)", v.Op, ErrPrecondition, v.Cond, v.Where)
}

func (v *Violation) Unwrap() error { return ErrPrecondition }

// AllocFailure is the panic payload for exhausted or unobtainable memory.
type AllocFailure struct {
	Op    string
	Bytes int // requested size in bytes, -1 when the size itself overflowed
	Err   error
}

func (a *AllocFailure) Error() string {
	if a.Bytes < 0 {
		return fmt.Sprintf("%s: %v: size overflow: %v", a.Op, ErrAllocation, a.Err)
	}
	return fmt.Sprintf("%s: %v: %d bytes: %v", a.Op, ErrAllocation, a.Bytes, a.Err)
}

// Unwrap exposes both the class and the underlying cause to errors.Is.
func (a *AllocFailure) Unwrap() []error {
	if a.Err == nil {
		return []error{ErrAllocation}
	}
	return []error{ErrAllocation, a.Err}
}

// Require panics with a Violation when ok is false. The reported location is
// the line of the failed check.
func Require(ok bool, op, cond string) {
	if ok {
		return
	}
	panic(&Violation{Op: op, Cond: cond, Where: caller(2)})
}

// Requiref is Require with a formatted condition. The message is only
// formatted on failure.
func Requiref(ok bool, op, format string, args ...any) {
	if ok {
		return
	}
	panic(&Violation{Op: op, Cond: fmt.Sprintf(format, args...), Where: caller(2)})
}

// Fail panics with an AllocFailure.
func Fail(op string, bytes int, err error) {
	panic(&AllocFailure{Op: op, Bytes: bytes, Err: err})
}

// Recover converts a contract panic raised inside fn into an error. Any other
// panic is re-raised unchanged.
func Recover(fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		switch e := r.(type) {
		case *Violation:
			err = e
		case *AllocFailure:
			err = e
		default:
			panic(r)
		}
	}()
	fn()
	return nil
}

func caller(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s:%d", file, line)
}
