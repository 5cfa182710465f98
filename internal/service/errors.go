package service

import "fmt"

// ValidationError signals that input violates a task invariant. The caller
// can recover by correcting the input; the message is safe to show to users.
type ValidationError struct {
	msg string
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string { return e.msg }

// NotFoundError signals that an operation targeted a task id that does not
// exist. It is kept distinct from ValidationError so callers can map it to a
// missing-resource response.
type NotFoundError struct {
	ID uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task with id %d not found", e.ID)
}
