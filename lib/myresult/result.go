package myresult

import "fmt"

// Result carries either a value or an error, never both. Accessing the
// wrong side is a programming error and panics rather than returning a
// zero value that would hide the bug.
type Result[T any] struct {
	success bool
	value   T
	err     error
}

func Success[T any](value T) Result[T] {
	return Result[T]{
		success: true,
		value:   value,
	}
}

func Failure[T any](err error) Result[T] {
	return Result[T]{
		success: false,
		err:     err,
	}
}

func (r Result[T]) Succeeded() bool {
	return r.success
}

func (r Result[T]) Failed() bool {
	return !r.success
}

func (r Result[T]) MustValue() T {
	if !r.success {
		panic(fmt.Sprintf("cannot access value on failure result: %s", r.err))
	}
	return r.value
}

func (r Result[T]) MustError() error {
	if r.success {
		panic("cannot access error on success result")
	}
	return r.err
}
