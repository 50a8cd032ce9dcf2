package schema

import (
	"errors"
	"fmt"
)

// Kind classifies schema compilation errors.
type Kind int

const (
	// DuplicateKey means two fields resolve to the same output key.
	DuplicateKey Kind = iota + 1
	// InvalidFieldName means a source name or output key is empty.
	InvalidFieldName
	// MissingAccessor means a field has no accessor bound.
	MissingAccessor
	// NullableRequired means a field is declared required but its type
	// admits an absent value.
	NullableRequired
	// UnsupportedType means a field type has no canonical text form.
	UnsupportedType
	// InvalidTag means field metadata is malformed or contradictory.
	InvalidTag
)

var (
	ErrDuplicateKey     = errors.New("duplicate key")
	ErrInvalidFieldName = errors.New("invalid field name")
	ErrMissingAccessor  = errors.New("missing accessor")
	ErrNullableRequired = errors.New("required field is nullable")
	ErrUnsupportedType  = errors.New("unsupported field type")
	ErrInvalidTag       = errors.New("invalid field tag")
)

func (k Kind) sentinel() error {
	switch k {
	case DuplicateKey:
		return ErrDuplicateKey
	case InvalidFieldName:
		return ErrInvalidFieldName
	case MissingAccessor:
		return ErrMissingAccessor
	case NullableRequired:
		return ErrNullableRequired
	case UnsupportedType:
		return ErrUnsupportedType
	case InvalidTag:
		return ErrInvalidTag
	}
	return nil
}

func (k Kind) String() string {
	if err := k.sentinel(); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is returned when a field list cannot be compiled into a schema.
type Error struct {
	Kind    Kind
	Field   string // source name, may be empty
	Key     string // output key, may be empty
	Message string
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	switch {
	case e.Field != "" && e.Key != "" && e.Key != e.Field:
		return fmt.Sprintf("schema error at field %q (key %q): %s", e.Field, e.Key, msg)
	case e.Field != "":
		return fmt.Sprintf("schema error at field %q: %s", e.Field, msg)
	case e.Key != "":
		return fmt.Sprintf("schema error at key %q: %s", e.Key, msg)
	}
	return fmt.Sprintf("schema error: %s", msg)
}

// Unwrap returns the sentinel for the error's kind so callers can use
// errors.Is(err, ErrDuplicateKey) and friends.
func (e *Error) Unwrap() error {
	return e.Kind.sentinel()
}

// RequiredFieldMissing is the panic value raised during conversion when a
// required field's accessor reports absence. It means the field was
// classified as required while its values can in fact be absent.
type RequiredFieldMissing struct {
	Field string
	Key   string
}

func (r RequiredFieldMissing) Error() string {
	return fmt.Sprintf("required field %q (key %q) is absent", r.Field, r.Key)
}
