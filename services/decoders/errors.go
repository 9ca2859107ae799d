package decoders

import (
	"errors"
	"fmt"
)

// Error kinds. Every decoding failure matches exactly one of them with
// errors.Is.
var (
	ErrStructural        = errors.New("structural error")
	ErrUnregisteredField = errors.New("unregistered field")
	ErrValueShape        = errors.New("value-shape error")
)

// FieldError identifies the field (column name, INFO key or FORMAT key) and
// raw value that failed to decode.
type FieldError struct {
	Field string
	Value string
	Kind  error
	Err   error
}

func (e *FieldError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: field %q (value %q)", e.Kind, e.Field, e.Value)
	}
	return fmt.Sprintf("%s: field %q (value %q): %s", e.Kind, e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func (e *FieldError) Is(target error) bool {
	return target == e.Kind
}

func structuralError(field, value string, format string, args ...interface{}) error {
	return &FieldError{Field: field, Value: value, Kind: ErrStructural, Err: fmt.Errorf(format, args...)}
}

func unregisteredFieldError(registry, field, value string) error {
	return &FieldError{Field: field, Value: value, Kind: ErrUnregisteredField, Err: fmt.Errorf("not in the %s registry", registry)}
}

func valueShapeError(field, value string, err error) error {
	return &FieldError{Field: field, Value: value, Kind: ErrValueShape, Err: err}
}
