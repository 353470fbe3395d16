package member

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownKind   = errors.New("unknown member kind")
	ErrKindMismatch  = errors.New("member kind mismatch")
	ErrInvalidMember = errors.New("invalid member")
	ErrMissingFields = errors.New("missing fields")
	ErrEmptyField    = errors.New("empty field")
	ErrInvalidValue  = errors.New("invalid value")
)

// ParseError reports which field stopped a record from decoding.
type ParseError struct {
	Kind  Kind
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("decode %s field %s: %v", e.Kind, e.Field, e.Err)
	}
	return fmt.Sprintf("decode %s field %s (%q): %v", e.Kind, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
