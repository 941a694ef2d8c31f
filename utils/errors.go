package utils

import "github.com/pkg/errors"

// ErrEncoding matches every EncodingError with errors.Is
var ErrEncoding = errors.New("encoding error")

// EncodingError reports malformed address, number or string input
type EncodingError struct {
	Input  string
	Reason string
	Err    error
}

func newEncodingError(input, reason string, cause error) *EncodingError {
	return &EncodingError{Input: input, Reason: reason, Err: cause}
}

func (e *EncodingError) Error() string {
	if e.Err != nil {
		return e.Reason + ": " + e.Input + ": " + e.Err.Error()
	}
	return e.Reason + ": " + e.Input
}

func (e *EncodingError) Unwrap() error { return e.Err }

func (e *EncodingError) Is(target error) bool { return target == ErrEncoding }
