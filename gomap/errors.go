package gomap

import (
	"fmt"
	"reflect"
)

// MarshalError represents a record that cannot be converted
type MarshalError struct {
	Type    reflect.Type // nil when the record itself is nil
	Message string
	Err     error
}

func (e *MarshalError) Error() string {
	if e.Type != nil {
		return fmt.Sprintf("marshal error for %s: %s", e.Type, e.Message)
	}
	return fmt.Sprintf("marshal error: %s", e.Message)
}

func (e *MarshalError) Unwrap() error {
	return e.Err
}

// SchemaError represents a struct type whose fields cannot be compiled
type SchemaError struct {
	Type reflect.Type
	Err  error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error for %s: %v", e.Type, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}
