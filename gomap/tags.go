package gomap

import (
	"encoding"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/signadot/qparams/schema"
)

// TagKey is the struct tag key read by this package.
const TagKey = "query"

// FieldInfo holds field metadata extracted from a struct type and its tags.
type FieldInfo struct {
	// Name is the struct field name
	Name string

	// Key is the query parameter name (Rename if set, otherwise Name)
	Key string

	// Rename is the rename= tag value, if any
	Rename string

	// Index is the field's index path, as for reflect.Value.FieldByIndex
	Index []int

	// Type is the Go type of the field
	Type reflect.Type

	// Required indicates the field always produces a parameter
	Required bool

	// OmitEmpty makes a value-typed field absent at its zero value
	OmitEmpty bool
}

// fieldOpts are the options of one `query:"..."` tag.
type fieldOpts struct {
	rename    string
	required  bool
	omitEmpty bool
	exclude   bool
}

// ParseStructTag parses a struct tag string and returns a map of key-value pairs.
// Handles comma-separated values: `query:"rename=type,required"`
// Supports quoted values with spaces: `query:"rename='with spaces'"`
func ParseStructTag(tag string) (map[string]string, error) {
	result := make(map[string]string)
	for _, part := range splitTag(tag) {
		idx := strings.IndexByte(part, '=')
		if idx < 0 {
			// a flag
			result[part] = ""
			continue
		}
		key := strings.TrimSpace(part[:idx])
		if key == "" {
			return nil, fmt.Errorf("invalid tag: empty key in %q", part)
		}
		result[key] = unquoteValue(strings.TrimSpace(part[idx+1:]))
	}
	return result, nil
}

// splitTag splits a tag on commas and unquoted spaces.
func splitTag(tag string) []string {
	var (
		parts   []string
		current strings.Builder
		quote   byte
	)
	flush := func() {
		if part := strings.TrimSpace(current.String()); part != "" {
			parts = append(parts, part)
		}
		current.Reset()
	}
	for i := 0; i < len(tag); i++ {
		c := tag[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
			current.WriteByte(c)
		case c == '\'' || c == '"':
			quote = c
			current.WriteByte(c)
		case c == ',' || c == ' ':
			flush()
		default:
			current.WriteByte(c)
		}
	}
	flush()
	return parts
}

// unquoteValue removes surrounding single or double quotes from a value.
func unquoteValue(value string) string {
	if len(value) < 2 {
		return value
	}
	first, last := value[0], value[len(value)-1]
	if (first == '\'' || first == '"') && first == last {
		return value[1 : len(value)-1]
	}
	return value
}

func parseFieldOpts(field reflect.StructField) (fieldOpts, error) {
	var opts fieldOpts
	tag, ok := field.Tag.Lookup(TagKey)
	if !ok {
		return opts, nil
	}
	parsed, err := ParseStructTag(tag)
	if err != nil {
		return opts, &schema.Error{Kind: schema.InvalidTag, Field: field.Name, Message: err.Error()}
	}
	for k, v := range parsed {
		switch k {
		case "-", "exclude", "required", "omitempty":
			if v != "" {
				return opts, &schema.Error{Kind: schema.InvalidTag, Field: field.Name, Message: fmt.Sprintf("option %q takes no value", k)}
			}
		}
		switch k {
		case "-", "exclude":
			opts.exclude = true
		case "required":
			opts.required = true
		case "omitempty":
			opts.omitEmpty = true
		case "rename":
			if v == "" {
				return opts, &schema.Error{Kind: schema.InvalidTag, Field: field.Name, Message: "rename requires a value"}
			}
			opts.rename = v
		default:
			return opts, &schema.Error{Kind: schema.InvalidTag, Field: field.Name, Message: fmt.Sprintf("unknown option %q", k)}
		}
	}
	if opts.required && opts.omitEmpty {
		return opts, &schema.Error{Kind: schema.InvalidTag, Field: field.Name, Message: "required and omitempty are exclusive"}
	}
	return opts, nil
}

// GetStructFields extracts field information from a struct type, in
// declaration order.
//
// Only exported fields are considered. Anonymous struct fields (and
// pointers to structs) without a text form are flattened in place; fields
// promoted through an embedded pointer are optional, since the pointer
// may be nil.
func GetStructFields(typ reflect.Type) ([]*FieldInfo, error) {
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("expected struct type, got %s", typ.Kind())
	}
	var fields []*FieldInfo
	if err := collectFields(typ, nil, false, map[reflect.Type]bool{typ: true}, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func collectFields(typ reflect.Type, index []int, viaPtr bool, visiting map[reflect.Type]bool, out *[]*FieldInfo) error {
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		opts, err := parseFieldOpts(field)
		if err != nil {
			return err
		}
		if opts.exclude {
			continue
		}
		fieldIndex := append(slices.Clone(index), i)

		if field.Anonymous && opts.rename == "" {
			embedded, isPtr := field.Type, false
			if embedded.Kind() == reflect.Pointer {
				embedded, isPtr = embedded.Elem(), true
			}
			if embedded.Kind() == reflect.Struct && !hasTextForm(field.Type) {
				if opts.required || opts.omitEmpty {
					return &schema.Error{Kind: schema.InvalidTag, Field: field.Name, Message: "options on an embedded struct"}
				}
				if visiting[embedded] {
					return &schema.Error{Kind: schema.UnsupportedType, Field: field.Name, Message: "recursive embedding"}
				}
				visiting[embedded] = true
				err := collectFields(embedded, fieldIndex, viaPtr || isPtr, visiting, out)
				delete(visiting, embedded)
				if err != nil {
					return err
				}
				continue
			}
		}

		if !field.IsExported() {
			continue
		}
		info, err := newFieldInfo(field, fieldIndex, opts, viaPtr)
		if err != nil {
			return err
		}
		*out = append(*out, info)
	}
	return nil
}

func newFieldInfo(field reflect.StructField, index []int, opts fieldOpts, viaPtr bool) (*FieldInfo, error) {
	typ := field.Type
	nullable := viaPtr || isNullable(typ)
	if !isSupported(typ) {
		return nil, &schema.Error{
			Kind:    schema.UnsupportedType,
			Field:   field.Name,
			Message: fmt.Sprintf("type %s has no text form", typ),
		}
	}
	if opts.required && nullable {
		msg := fmt.Sprintf("type %s can be nil", typ)
		if viaPtr {
			msg = "promoted through an embedded pointer"
		}
		return nil, &schema.Error{Kind: schema.NullableRequired, Field: field.Name, Message: msg}
	}
	if opts.omitEmpty && isNullable(typ) {
		return nil, &schema.Error{Kind: schema.InvalidTag, Field: field.Name, Message: "omitempty on a nullable field"}
	}
	key := field.Name
	if opts.rename != "" {
		key = opts.rename
	}
	return &FieldInfo{
		Name:      field.Name,
		Key:       key,
		Rename:    opts.rename,
		Index:     index,
		Type:      typ,
		Required:  !nullable && !opts.omitEmpty,
		OmitEmpty: opts.omitEmpty,
	}, nil
}

var (
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
	stringerType      = reflect.TypeFor[fmt.Stringer]()
)

// hasTextForm reports whether values of typ render themselves as text.
// Pointer receiver methods do not count for non-pointer types: record
// fields are not addressable when the record is passed by value.
func hasTextForm(typ reflect.Type) bool {
	return typ.Implements(textMarshalerType) || typ.Implements(stringerType)
}

func isNullable(typ reflect.Type) bool {
	switch typ.Kind() {
	case reflect.Pointer, reflect.Interface:
		return true
	}
	return false
}

// isSupported reports whether typ has a canonical text form. Pointers
// are allowed one level deep.
func isSupported(typ reflect.Type) bool {
	if hasTextForm(typ) {
		return true
	}
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
		if hasTextForm(typ) {
			return true
		}
	}
	switch typ.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Interface:
		return true
	}
	return false
}

// accessor reads the field from a struct value or a pointer to one.
func (fi *FieldInfo) accessor() schema.Accessor {
	return func(rec any) (any, bool) {
		v := reflect.ValueOf(rec)
		if v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return nil, false
			}
			v = v.Elem()
		}
		for i, x := range fi.Index {
			if i > 0 && v.Kind() == reflect.Pointer {
				if v.IsNil() {
					return nil, false
				}
				v = v.Elem()
			}
			v = v.Field(x)
		}
		switch v.Kind() {
		case reflect.Pointer:
			if v.IsNil() {
				return nil, false
			}
		case reflect.Interface:
			if v.IsNil() {
				return nil, false
			}
			if e := v.Elem(); e.Kind() == reflect.Pointer && e.IsNil() {
				return nil, false
			}
		}
		if fi.OmitEmpty && v.IsZero() {
			return nil, false
		}
		return v.Interface(), true
	}
}

// RawFields converts field infos into schema declarations.
func RawFields(fields []*FieldInfo) []schema.RawField {
	res := make([]schema.RawField, len(fields))
	for i, fi := range fields {
		res[i] = schema.RawField{
			Name:     fi.Name,
			Rename:   fi.Rename,
			Required: fi.Required,
			Get:      fi.accessor(),
		}
	}
	return res
}
