package hderrors

import (
	"github.com/pkg/errors"
)

// These variables identify the kind of failure an HD wallet operation
// ended with. Every one of them is terminal for the operation that
// returned it.
var (
	// ErrInvalidSeed indicates the seed produced a master scalar that is
	// zero or not below the curve order, or that the seed was empty.
	ErrInvalidSeed = newHDError("ErrInvalidSeed")

	// ErrInvalidDerivation indicates a child derivation produced an
	// invalid scalar or point, or exceeded the maximum depth.
	ErrInvalidDerivation = newHDError("ErrInvalidDerivation")

	// ErrUnsupportedOperation indicates the operation requires material
	// the key doesn't have, e.g. hardened derivation from a public key.
	ErrUnsupportedOperation = newHDError("ErrUnsupportedOperation")

	// ErrSerialization indicates an extended key could not be encoded.
	ErrSerialization = newHDError("ErrSerialization")

	// ErrMalformedInput indicates encoded input (extended key, path,
	// signature) failed to decode.
	ErrMalformedInput = newHDError("ErrMalformedInput")

	// ErrSigning indicates a digest could not be signed.
	ErrSigning = newHDError("ErrSigning")
)

// HDError identifies a failure of the HD wallet engine.
// Callers should compare against the Err* variables with errors.Is.
type HDError struct {
	message string
	inner   error
}

// Error satisfies the error interface and prints human-readable errors.
func (e HDError) Error() string {
	if e.inner != nil {
		return e.message + ": " + e.inner.Error()
	}
	return e.message
}

// Unwrap satisfies the errors.Unwrap interface
func (e HDError) Unwrap() error {
	return e.inner
}

// Cause satisfies the github.com/pkg/errors.Cause interface
func (e HDError) Cause() error {
	return e.inner
}

// Is reports whether target is an HDError of the same kind, regardless
// of the inner error either of them carries.
func (e HDError) Is(target error) bool {
	var other HDError
	if !errors.As(target, &other) {
		return false
	}
	return e.message == other.message
}

func newHDError(message string) HDError {
	return HDError{message: message, inner: nil}
}

// Wrap returns an error of the given kind carrying cause as its inner
// error, annotated with a stack trace.
func Wrap(kind HDError, cause error) error {
	return errors.WithStack(HDError{message: kind.message, inner: cause})
}

// Errorf returns an error of the given kind with a formatted message.
func Errorf(kind HDError, format string, args ...interface{}) error {
	return errors.Wrapf(kind, format, args...)
}
