package openai

import (
	"errors"
	"fmt"
)

// ErrAPIKeyNotSet is returned by [Client] calls when no API key is configured.
var ErrAPIKeyNotSet = errors.New("API key is not set")

const (
	opEncode = "encode"
	opDecode = "decode"
)

// ValidationError reports a request that failed local validation. It is
// raised while building, never after network I/O has started.
type ValidationError struct {
	// Field is the JSON name of the offending field (e.g. "prompt").
	Field string
	// Reason describes the violated rule (e.g. "is required").
	Reason string
	// Err is the underlying validator error, if any.
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// CodecError reports a JSON encoding or decoding failure: malformed input,
// a missing required key, a wrong value type or an unknown enum token.
type CodecError struct {
	// Op is "encode" or "decode".
	Op string
	// Target names the Go type being encoded or decoded.
	Target string
	Err    error
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Target, e.Err)
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

// asCodecError returns err unchanged when it already carries a *CodecError
// or *ValidationError and wraps it into a *CodecError otherwise.
func asCodecError(op, target string, err error) error {
	var codecErr *CodecError
	if errors.As(err, &codecErr) {
		return codecErr
	}
	var validationErr *ValidationError
	if op == opEncode && errors.As(err, &validationErr) {
		return validationErr
	}
	return &CodecError{Op: op, Target: target, Err: err}
}
