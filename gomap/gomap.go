package gomap

import (
	"reflect"

	"github.com/signadot/qparams/convert"
	"github.com/signadot/qparams/schema"
)

// ToQueryParams converts v, a struct or non-nil pointer to struct, using
// the default registry.
func ToQueryParams(v any, opts ...convert.Option) (convert.Params, error) {
	return DefaultRegistry.ToQueryParams(v, opts...)
}

// ToEncodedParams is ToQueryParams with percent-encoded values.
func ToEncodedParams(v any) (convert.Params, error) {
	return DefaultRegistry.ToQueryParams(v, convert.EncodeValues())
}

// ToQueryParams converts v, a struct or non-nil pointer to struct.
func (r *Registry) ToQueryParams(v any, opts ...convert.Option) (convert.Params, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, &MarshalError{Message: "nil value"}
	}
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, &MarshalError{Type: rv.Type(), Message: "nil pointer"}
	}
	s, err := r.SchemaOf(rv.Type())
	if err != nil {
		return nil, err
	}
	return convert.Convert(s, v, opts...), nil
}

// Register compiles the schema for T eagerly, so that declaration errors
// surface at startup rather than on first use.
func Register[T any]() error {
	_, err := DefaultRegistry.SchemaOf(reflect.TypeFor[T]())
	return err
}

// MustRegister is like Register but panics on error.
func MustRegister[T any]() {
	if err := Register[T](); err != nil {
		panic(err)
	}
}

// Mapper converts values of one struct type. Once constructed it cannot
// fail.
type Mapper[T any] struct {
	schema *schema.Schema
}

// For returns a Mapper for T, a struct type or pointer to one, compiled
// in the default registry.
func For[T any]() (*Mapper[T], error) {
	return ForRegistry[T](DefaultRegistry)
}

// ForRegistry is like For but compiles in r.
func ForRegistry[T any](r *Registry) (*Mapper[T], error) {
	s, err := r.SchemaOf(reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}
	return &Mapper[T]{schema: s}, nil
}

// MustFor is like For but panics on error.
func MustFor[T any]() *Mapper[T] {
	m, err := For[T]()
	if err != nil {
		panic(err)
	}
	return m
}

// Schema returns the compiled schema.
func (m *Mapper[T]) Schema() *schema.Schema {
	return m.schema
}

// Params converts v. If T is a pointer type, v must not be nil.
func (m *Mapper[T]) Params(v T, opts ...convert.Option) convert.Params {
	return convert.Convert(m.schema, v, opts...)
}

// EncodedParams converts v with percent-encoded values.
func (m *Mapper[T]) EncodedParams(v T) convert.Params {
	return convert.Convert(m.schema, v, convert.EncodeValues())
}
