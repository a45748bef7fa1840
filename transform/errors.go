package transform

import "fmt"

// ErrKind classifies fatal transformation errors.
type ErrKind int

const (
	// ErrMalformedInput indicates the tree shape violates a structural
	// precondition, such as an unsupported for-in left-hand side or an
	// unrecognized node kind. The input is assumed already syntax-checked,
	// so this points at a pipeline bug or an unsupported construct.
	ErrMalformedInput ErrKind = iota

	// ErrInternal indicates a pass-author error, such as requesting a
	// runtime helper that was never registered and has no shared default.
	ErrInternal
)

func (k ErrKind) String() string {
	switch k {
	case ErrMalformedInput:
		return "malformed input"
	case ErrInternal:
		return "internal error"
	default:
		return "unknown error"
	}
}

// Error is a fatal transformation failure. Passes raise these via panic;
// Pipeline.Run recovers them and returns them as ordinary errors. There is
// no recoverable error category: a failure aborts the whole compilation
// unit.
type Error struct {
	Kind    ErrKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewMalformedError returns a malformed-input error.
func NewMalformedError(format string, args ...interface{}) *Error {
	return &Error{Kind: ErrMalformedInput, Message: fmt.Sprintf(format, args...)}
}

// NewInternalError returns an internal-consistency error.
func NewInternalError(format string, args ...interface{}) *Error {
	return &Error{Kind: ErrInternal, Message: fmt.Sprintf(format, args...)}
}

// recoverError converts a recovered *Error panic into an ordinary error
// return. Other panic values are re-raised.
func recoverError(errp *error) {
	switch r := recover().(type) {
	case nil:
	case *Error:
		*errp = r
	default:
		panic(r)
	}
}
