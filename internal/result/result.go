// Package result provides the Success / Error / Loading sum type returned by
// every remote or simulated operation of the client.
package result

import "fmt"

// State identifies which variant a Result holds.
type State int

const (
	StateLoading State = iota
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "loading"
	}
}

// Kind classifies an Error result.
type Kind int

const (
	KindNone       Kind = iota
	KindNetwork         // connectivity or transport failure
	KindServer          // non-2xx status or malformed envelope
	KindValidation      // rejected input
	KindNotFound        // missing token or record
	KindStorage         // local store failure
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindServer:
		return "server"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindStorage:
		return "storage"
	default:
		return "none"
	}
}

// Result is the outcome of an operation. The zero value is Loading.
type Result[T any] struct {
	state   State
	data    T
	kind    Kind
	message string
}

// Success wraps a successful payload.
func Success[T any](data T) Result[T] {
	return Result[T]{state: StateSuccess, data: data}
}

// Error builds a failed result carrying a human-readable message.
func Error[T any](kind Kind, message string) Result[T] {
	return Result[T]{state: StateError, kind: kind, message: message}
}

// Errorf is Error with fmt formatting.
func Errorf[T any](kind Kind, format string, args ...any) Result[T] {
	return Error[T](kind, fmt.Sprintf(format, args...))
}

// Loading builds an in-progress result.
func Loading[T any]() Result[T] {
	return Result[T]{state: StateLoading}
}

func (r Result[T]) State() State { return r.state }
func (r Result[T]) IsSuccess() bool { return r.state == StateSuccess }
func (r Result[T]) IsError() bool { return r.state == StateError }
func (r Result[T]) IsLoading() bool { return r.state == StateLoading }
func (r Result[T]) Kind() Kind { return r.kind }
func (r Result[T]) Message() string { return r.message }

// Data returns the payload. It is the zero value unless the result is a Success.
func (r Result[T]) Data() T { return r.data }

// Err returns the failure as an error, or nil for Success and Loading.
func (r Result[T]) Err() error {
	if r.state != StateError {
		return nil
	}
	return &Failure{Kind: r.kind, Message: r.message}
}

// Recast carries an Error or Loading result over to another payload type.
// It panics when given a Success, which has no meaningful conversion.
func Recast[U, T any](r Result[T]) Result[U] {
	if r.state == StateSuccess {
		panic("result: Recast called on a success")
	}
	return Result[U]{state: r.state, kind: r.kind, message: r.message}
}

// Map transforms the payload of a Success and carries any other variant over.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if r.state != StateSuccess {
		return Recast[U](r)
	}
	return Success(fn(r.data))
}

// Failure is the error form of an Error result.
type Failure struct {
	Kind    Kind
	Message string
}

func (f *Failure) Error() string { return f.Message }
