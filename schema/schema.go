package schema

import (
	"fmt"
	"strings"
)

// Accessor reads one field from a record. present is false when the
// field's value is absent.
type Accessor func(rec any) (value any, present bool)

// RawField is an uncompiled field declaration.
type RawField struct {
	// Name is the field's identifier in the record type.
	Name string

	// Rename overrides the output key when non-empty.
	Rename string

	// Required marks a field whose value is always present.
	Required bool

	// Get reads the field from a record.
	Get Accessor
}

// Field is a validated field descriptor.
type Field struct {
	// Name is the field's identifier in the record type.
	Name string

	// Key is the query parameter name.
	Key string

	// Required fields always contribute a pair; optional ones only when
	// present.
	Required bool

	get Accessor
}

// Lookup reads the field's value from rec.
func (f Field) Lookup(rec any) (any, bool) {
	return f.get(rec)
}

func (f Field) String() string {
	var b strings.Builder
	b.WriteString(f.Name)
	if f.Key != f.Name {
		b.WriteString("->")
		b.WriteString(f.Key)
	}
	if f.Required {
		b.WriteString(" (required)")
	}
	return b.String()
}

// Schema is the compiled, ordered field list of one record type. It is
// immutable and safe for concurrent use.
type Schema struct {
	fields []Field
	keys   map[string]int
}

// Compile validates fields and freezes them, in order, into a Schema.
func Compile(fields []RawField) (*Schema, error) {
	s := &Schema{
		fields: make([]Field, 0, len(fields)),
		keys:   make(map[string]int, len(fields)),
	}
	for i := range fields {
		raw := &fields[i]
		if raw.Name == "" {
			return nil, &Error{
				Kind:    InvalidFieldName,
				Key:     raw.Rename,
				Message: fmt.Sprintf("field %d has an empty name", i),
			}
		}
		key := raw.Name
		if raw.Rename != "" {
			key = raw.Rename
		}
		if strings.TrimSpace(key) == "" {
			return nil, &Error{
				Kind:    InvalidFieldName,
				Field:   raw.Name,
				Message: "output key is blank",
			}
		}
		if j, ok := s.keys[key]; ok {
			return nil, &Error{
				Kind:    DuplicateKey,
				Field:   raw.Name,
				Key:     key,
				Message: fmt.Sprintf("key %q already used by field %q", key, s.fields[j].Name),
			}
		}
		if raw.Get == nil {
			return nil, &Error{Kind: MissingAccessor, Field: raw.Name, Key: key}
		}
		s.keys[key] = len(s.fields)
		s.fields = append(s.fields, Field{
			Name:     raw.Name,
			Key:      key,
			Required: raw.Required,
			get:      raw.Get,
		})
	}
	return s, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(fields []RawField) *Schema {
	s, err := Compile(fields)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of fields.
func (s *Schema) Len() int {
	return len(s.fields)
}

// Field returns the i'th field in declaration order.
func (s *Schema) Field(i int) Field {
	return s.fields[i]
}

// Fields returns a copy of the fields in declaration order.
func (s *Schema) Fields() []Field {
	res := make([]Field, len(s.fields))
	copy(res, s.fields)
	return res
}

// Keys returns the output keys in declaration order.
func (s *Schema) Keys() []string {
	res := make([]string, len(s.fields))
	for i := range s.fields {
		res[i] = s.fields[i].Key
	}
	return res
}

// Lookup finds the field with output key key.
func (s *Schema) Lookup(key string) (Field, bool) {
	i, ok := s.keys[key]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}
