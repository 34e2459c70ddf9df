package todoapi

import "errors"

var (
	// ErrValidation matches errors raised before any request is sent.
	ErrValidation = errors.New("validation failed")
	// ErrTransport matches errors raised by the request or the response.
	ErrTransport = errors.New("transport failed")
)

// Error is the single error kind returned by Client operations.
type Error struct {
	Op      string
	Message string
	kind    error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Message
	}
	return e.Op + " todo: " + e.Message
}

// Is reports whether target is the sentinel for this error's kind.
func (e *Error) Is(target error) bool {
	return target == e.kind
}

func validationError(op, msg string) *Error {
	return &Error{Op: op, Message: msg, kind: ErrValidation}
}

func transportError(op, msg string) *Error {
	return &Error{Op: op, Message: msg, kind: ErrTransport}
}
