package parser

import (
	"fmt"

	"github.com/deepnoodle-ai/retrograde/internal/token"
	"github.com/hashicorp/go-multierror"
)

// ErrorOpts is a struct that holds a variety of error data.
// All fields are optional, although one of `Cause` or `Message`
// are recommended. If `Cause` is set, `Message` will be ignored.
type ErrorOpts struct {
	ErrType       string
	Message       string
	Cause         error
	File          string
	StartPosition token.Position
	EndPosition   token.Position
	SourceCode    string
}

// NewParserError returns a new BaseParserError populated with
// the given error data.
func NewParserError(opts ErrorOpts) *BaseParserError {
	return &BaseParserError{
		errType:       opts.ErrType,
		message:       opts.Message,
		cause:         opts.Cause,
		file:          opts.File,
		startPosition: opts.StartPosition,
		endPosition:   opts.EndPosition,
		sourceCode:    opts.SourceCode,
	}
}

// NewSyntaxError returns a new SyntaxError populated with the given error data.
func NewSyntaxError(opts ErrorOpts) *SyntaxError {
	opts.ErrType = "syntax error"
	return &SyntaxError{BaseParserError: NewParserError(opts)}
}

// ParserError is an interface that all parser errors implement.
type ParserError interface {
	Type() string
	Message() string
	Cause() error
	File() string
	StartPosition() token.Position
	EndPosition() token.Position
	SourceCode() string
	Error() string
	FriendlyErrorMessage() string
}

// BaseParserError is the simplest implementation of ParserError.
type BaseParserError struct {
	// Type of the error, e.g. "syntax error"
	errType string
	// The error message
	message string
	// The wrapped error
	cause error
	// File where the error occurred
	file string
	// Start position of the error in the input string
	startPosition token.Position
	// End position of the error in the input string
	endPosition token.Position
	// Relevant line of source code text
	sourceCode string
}

func (e *BaseParserError) Error() string {
	var msg string
	if e.cause != nil {
		msg = e.cause.Error()
	} else if e.message != "" {
		msg = e.message
	}
	if e.errType != "" {
		msg = fmt.Sprintf("%s: %s", e.errType, msg)
	}
	if e.startPosition.IsValid() {
		if e.file != "" {
			msg = fmt.Sprintf("%s (%s: line %d, column %d)",
				msg, e.file, e.startPosition.LineNumber(), e.startPosition.ColumnNumber())
		} else {
			msg = fmt.Sprintf("%s (line %d, column %d)",
				msg, e.startPosition.LineNumber(), e.startPosition.ColumnNumber())
		}
	}
	return msg
}

func (e *BaseParserError) Type() string { return e.errType }

func (e *BaseParserError) Message() string { return e.message }

func (e *BaseParserError) Cause() error { return e.cause }

func (e *BaseParserError) Unwrap() error { return e.cause }

func (e *BaseParserError) File() string { return e.file }

func (e *BaseParserError) StartPosition() token.Position { return e.startPosition }

func (e *BaseParserError) EndPosition() token.Position { return e.endPosition }

func (e *BaseParserError) SourceCode() string { return e.sourceCode }

// FriendlyErrorMessage returns the error message along with the offending
// line of source code and a marker pointing at the error position.
func (e *BaseParserError) FriendlyErrorMessage() string {
	msg := e.Error()
	if e.sourceCode == "" {
		return msg
	}
	marker := ""
	for i := 0; i < e.startPosition.Column; i++ {
		marker += " "
	}
	marker += "^"
	return fmt.Sprintf("%s\n\n%s\n%s", msg, e.sourceCode, marker)
}

// SyntaxError indicates the input program was malformed at the token level.
type SyntaxError struct {
	*BaseParserError
}

// NewErrors combines multiple parser errors into a single error value.
// Returns nil if the slice is empty.
func NewErrors(errs []ParserError) error {
	var result *multierror.Error
	for _, err := range errs {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}
