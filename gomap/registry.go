package gomap

import (
	"reflect"
	"sync"

	"github.com/signadot/qparams/schema"
)

// Registry caches one compiled schema per struct type.
//
// Each type is compiled at most once; concurrent first callers for the
// same type wait for that single compilation. Compilation errors are
// cached alongside schemas, since they can only be fixed by changing the
// type's declaration.
type Registry struct {
	entries sync.Map // reflect.Type -> *entry
	compile func(reflect.Type) (*schema.Schema, error)
}

type entry struct {
	once   sync.Once
	schema *schema.Schema
	err    error
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{compile: CompileType}
}

// DefaultRegistry is used by the package level functions.
var DefaultRegistry = NewRegistry()

// SchemaOf returns the schema for typ, a struct type or a pointer to one.
func (r *Registry) SchemaOf(typ reflect.Type) (*schema.Schema, error) {
	if typ == nil {
		return nil, &MarshalError{Message: "nil type"}
	}
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil, &MarshalError{Type: typ, Message: "expected a struct or pointer to struct"}
	}
	v, ok := r.entries.Load(typ)
	if !ok {
		v, _ = r.entries.LoadOrStore(typ, &entry{})
	}
	e := v.(*entry)
	e.once.Do(func() {
		e.schema, e.err = r.compile(typ)
	})
	return e.schema, e.err
}

// Len returns the number of types seen, including those that failed.
func (r *Registry) Len() int {
	n := 0
	r.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// CompileType compiles typ's schema without caching it.
func CompileType(typ reflect.Type) (*schema.Schema, error) {
	fields, err := GetStructFields(typ)
	if err != nil {
		return nil, &SchemaError{Type: typ, Err: err}
	}
	s, err := schema.Compile(RawFields(fields))
	if err != nil {
		return nil, &SchemaError{Type: typ, Err: err}
	}
	return s, nil
}
