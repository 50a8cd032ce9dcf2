// Package manifest declares query parameter schemas for dynamic records.
//
// A manifest is a YAML document listing fields in output order:
//
//	name: products
//	fields:
//	  - name: id
//	    required: true
//	  - name: product_type
//	    rename: type
//	    required: true
//	  - name: min_price
//	  - name: max_price
//	  - name: trace_id
//	    exclude: true
//
// Records are maps decoded from YAML or JSON. A field is absent when its
// key is missing or null.
package manifest

import (
	"encoding"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/goccy/go-yaml"
	"github.com/signadot/qparams/schema"
)

// Manifest is a named, ordered list of field declarations.
type Manifest struct {
	Name   string  `yaml:"name,omitempty"`
	Fields []Field `yaml:"fields"`
}

// Field declares one record field.
type Field struct {
	Name     string `yaml:"name"`
	Rename   string `yaml:"rename,omitempty"`
	Required bool   `yaml:"required,omitempty"`
	Exclude  bool   `yaml:"exclude,omitempty"`
}

// Key returns the output key of f.
func (f *Field) Key() string {
	if f.Rename != "" {
		return f.Rename
	}
	return f.Name
}

// Load decodes a manifest. Unknown keys are rejected.
func Load(r io.Reader) (*Manifest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	m := &Manifest{}
	if err := yaml.UnmarshalWithOptions(data, m, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("error decoding manifest: %w", err)
	}
	return m, nil
}

// LoadFile decodes the manifest at path.
func LoadFile(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if m.Name == "" {
		m.Name = path
	}
	return m, nil
}

// RawFields returns the schema declarations of the non-excluded fields.
func (m *Manifest) RawFields() []schema.RawField {
	res := make([]schema.RawField, 0, len(m.Fields))
	for i := range m.Fields {
		f := &m.Fields[i]
		if f.Exclude {
			continue
		}
		res = append(res, schema.RawField{
			Name:     f.Name,
			Rename:   f.Rename,
			Required: f.Required,
			Get:      lookup(f.Name),
		})
	}
	return res
}

// Compile compiles the manifest into a schema over map[string]any records.
func (m *Manifest) Compile() (*schema.Schema, error) {
	return schema.Compile(m.RawFields())
}

func lookup(name string) schema.Accessor {
	return func(rec any) (any, bool) {
		m, _ := rec.(map[string]any)
		v, ok := m[name]
		if !ok || v == nil {
			return nil, false
		}
		return v, true
	}
}

// RecordError describes a record that does not fit its manifest.
type RecordError struct {
	Field   string
	Message string
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record field %q: %s", e.Field, e.Message)
}

// Check verifies that rec can be converted: required fields are present
// and every declared value is a scalar. Dynamic records must pass Check
// before conversion, since a missing required field is fatal there.
func (m *Manifest) Check(rec map[string]any) error {
	var errs []error
	for i := range m.Fields {
		f := &m.Fields[i]
		if f.Exclude {
			continue
		}
		v, ok := rec[f.Name]
		if !ok || v == nil {
			if f.Required {
				errs = append(errs, &RecordError{Field: f.Name, Message: "required field is missing"})
			}
			continue
		}
		if !isScalar(v) {
			errs = append(errs, &RecordError{Field: f.Name, Message: fmt.Sprintf("%T is not a scalar", v)})
		}
	}
	return errors.Join(errs...)
}

func isScalar(v any) bool {
	if _, ok := v.(encoding.TextMarshaler); ok {
		return true
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return false
	}
	return true
}

// DecodeRecords reads a stream of YAML (or JSON) documents, one record
// per document. Empty documents are skipped.
func DecodeRecords(r io.Reader) ([]map[string]any, error) {
	dec := yaml.NewDecoder(r)
	var res []map[string]any
	for {
		var rec map[string]any
		err := dec.Decode(&rec)
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		if err != nil {
			return nil, fmt.Errorf("error decoding record %d: %w", len(res)+1, err)
		}
		if rec == nil {
			continue
		}
		res = append(res, rec)
	}
}
