// Package assert holds checks that only fire in debug builds (-tags debug).
package assert

import "fmt"

// AssertionError is the panic value of a failed assertion.
type AssertionError struct {
	Msg string
}

func (e *AssertionError) Error() string {
	return e.Msg
}

func newError(format string, args ...any) *AssertionError {
	return &AssertionError{Msg: fmt.Sprintf(format, args...)}
}
