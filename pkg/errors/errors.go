// Package errors defines the coded errors shared by the potplant packages,
// the CLI and the HTTP API.
//
// Every failure a caller can act on carries a [Code]. Genotype failures
// come in two kinds: [ErrCodeInvalidSyntax] when the expanded text is not
// a parseable tree, and [ErrCodeSchemaViolation] when the tree has the
// wrong shape. A violation records the path of the offending node:
//
//	err := errors.Violation("stalks[2].leaf.params", "want number, got %q", v)
//	err.Error() // SCHEMA_VIOLATION at stalks[2].leaf.params: want number, got "x"
//
// Users never see either kind in detail. [UserMessage] collapses both to
// [RejectedMessage], while [Detail] keeps the location for logs.
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error class.
type Code string

const (
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidSyntax   Code = "INVALID_SYNTAX"
	ErrCodeSchemaViolation Code = "SCHEMA_VIOLATION"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"
	ErrCodeInternal        Code = "INTERNAL_ERROR"
	ErrCodeUnsupported     Code = "UNSUPPORTED"
)

// RejectedMessage is what users see for any genotype that fails to decode.
const RejectedMessage = "invalid code"

// rootPath names the genotype itself when a violation has no deeper path.
const rootPath = "genotype"

// Error is a coded error. Path is set for schema violations and names the
// offending node of the parameter tree.
type Error struct {
	Code    Code
	Path    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	head := string(e.Code)
	if e.Path != "" {
		head += " at " + e.Path
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", head, e.Message, e.Cause)
	}
	return head + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an error with code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is New with an underlying cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Violation returns a schema violation at path. An empty path refers to
// the whole genotype.
func Violation(path, format string, args ...any) *Error {
	if path == "" {
		path = rootPath
	}
	return &Error{Code: ErrCodeSchemaViolation, Path: path, Message: fmt.Sprintf(format, args...)}
}

// Is reports whether the first *Error in err's chain has code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsRejected reports whether err rejects a genotype.
func IsRejected(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidSyntax, ErrCodeSchemaViolation:
		return true
	}
	return false
}

// UserMessage returns the text shown to users for err. Rejections collapse
// to RejectedMessage and coded errors drop their code.
func UserMessage(err error) string {
	if IsRejected(err) {
		return RejectedMessage
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Detail returns the location and message of err without its code, for
// logging what UserMessage hides.
func Detail(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	msg := e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	if e.Path != "" {
		return e.Path + ": " + msg
	}
	return msg
}
