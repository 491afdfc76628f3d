package backend

import "fmt"

// State of a fetched resource
type State int

const (
	StatePending State = iota
	StateOk
	StateErr
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateOk:
		return "ok"
	case StateErr:
		return "error"
	default:
		return "unknown"
	}
}

// Result holds the outcome of one backend fetch
type Result[T any] struct {
	State State
	Value T
	Err   error
}

// Success wraps a fetched value
func Success[T any](value T) Result[T] {
	return Result[T]{State: StateOk, Value: value}
}

// Failure wraps a fetch error
func Failure[T any](err error) Result[T] {
	return Result[T]{State: StateErr, Err: err}
}

// Ok reports whether the fetch succeeded
func (r Result[T]) Ok() bool {
	return r.State == StateOk
}

// Get returns the value, or an error when the fetch failed or never ran
func (r Result[T]) Get() (T, error) {
	switch r.State {
	case StateOk:
		return r.Value, nil
	case StateErr:
		var zero T
		return zero, r.Err
	default:
		var zero T
		return zero, fmt.Errorf("result is still pending")
	}
}

// OrEmpty returns the value, or the zero value when unavailable
func (r Result[T]) OrEmpty() T {
	if r.State == StateOk {
		return r.Value
	}
	var zero T
	return zero
}
