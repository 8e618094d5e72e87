// Package errors provides the unified error handling system for CaseGate.
//
// Error Code Format: AABBCCC (7 digits)
//
//	AA  (00-99): Service/Module code - identifies the source subsystem
//	BB  (00-99): Category code - identifies the error category
//	CCC (000-999): Sequence number - specific error within the category
//
// Service Codes (AA):
//
//	00: Common/Base errors (shared by all subsystems)
//	01: Access engine (matrix, resolver, scope, decision, gateway)
//	02: Audit subsystem
//	03: Registry subsystem (programs, memberships, blocks)
//	04: Session subsystem (confidentiality context)
//	10-19: Infrastructure errors (DB, Cache)
//
// Category Codes (BB):
//
//	00: Success
//	01: Request/Validation errors (400)
//	02: Authentication errors (401)
//	03: Authorization errors (403)
//	04: Resource not found errors (404)
//	05: Conflict errors (409)
//	07: Internal errors (500)
//	08: Database errors (500)
//	09: Cache errors (500)
//	12: Configuration errors (500)
//
// Usage:
//
//	// Using predefined errors
//	return errors.ErrInvalidParam.WithMessage("program id is required")
//
//	// Wrapping underlying errors
//	return errors.ErrDatabase.WithCause(err)
package errors

import (
	"fmt"
	"net/http"

	"google.golang.org/grpc/codes"
)

// Errno represents a structured error with code and message.
type Errno struct {
	// Code is the unique error code
	Code int `json:"code"`

	// HTTP is the HTTP status code to return
	HTTP int `json:"-"`

	// GRPCCode is the gRPC status code
	GRPCCode codes.Code `json:"-"`

	// Message is the human-readable error message
	Message string `json:"message"`

	// cause is the underlying error
	cause error
}

// Error implements the error interface.
func (e *Errno) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("errno %d: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("errno %d: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Errno) Unwrap() error {
	return e.cause
}

// WithCause creates a new Errno with the given cause.
func (e *Errno) WithCause(cause error) *Errno {
	return &Errno{
		Code:     e.Code,
		HTTP:     e.HTTP,
		GRPCCode: e.GRPCCode,
		Message:  e.Message,
		cause:    cause,
	}
}

// WithMessage creates a new Errno with a custom message.
func (e *Errno) WithMessage(msg string) *Errno {
	return &Errno{
		Code:     e.Code,
		HTTP:     e.HTTP,
		GRPCCode: e.GRPCCode,
		Message:  msg,
		cause:    e.cause,
	}
}

// WithMessagef creates a new Errno with a formatted message.
func (e *Errno) WithMessagef(format string, args ...interface{}) *Errno {
	return &Errno{
		Code:     e.Code,
		HTTP:     e.HTTP,
		GRPCCode: e.GRPCCode,
		Message:  fmt.Sprintf(format, args...),
		cause:    e.cause,
	}
}

// HTTPStatus returns the HTTP status code.
func (e *Errno) HTTPStatus() int {
	if e.HTTP != 0 {
		return e.HTTP
	}
	return http.StatusInternalServerError
}

// GRPCStatus returns the gRPC status code.
func (e *Errno) GRPCStatus() codes.Code {
	if e.GRPCCode != codes.OK {
		return e.GRPCCode
	}
	return codes.Internal
}

// Is checks if this error matches the target error code.
func (e *Errno) Is(target error) bool {
	if t, ok := target.(*Errno); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a new Errno with the given parameters.
func New(code int, httpStatus int, grpcCode codes.Code, message string) *Errno {
	return &Errno{
		Code:     code,
		HTTP:     httpStatus,
		GRPCCode: grpcCode,
		Message:  message,
	}
}
