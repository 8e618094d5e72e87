package errors

import (
	stderrors "errors"
)

// FromError converts any error into an *Errno. Unknown errors map to
// ErrInternal with the original error preserved as the cause.
func FromError(err error) *Errno {
	if err == nil {
		return nil
	}
	var e *Errno
	if stderrors.As(err, &e) {
		return e
	}
	return ErrInternal.WithCause(err)
}

// IsCode reports whether err carries the given error code.
func IsCode(err error, code int) bool {
	var e *Errno
	if stderrors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// Is reports whether err matches target, delegating to the standard library.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As delegates to the standard library.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}
