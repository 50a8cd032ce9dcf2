package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/qparams/convert"
	"github.com/signadot/qparams/schema"
)

func TestLoadFile(t *testing.T) {
	m, err := LoadFile(filepath.Join("testdata", "products.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	want := &Manifest{
		Name: "products",
		Fields: []Field{
			{Name: "id", Required: true},
			{Name: "product_type", Rename: "type", Required: true},
			{Name: "min_price"},
			{Name: "max_price"},
			{Name: "trace_id", Exclude: true},
		},
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("manifest mismatch (-want +got):\n%s", diff)
	}
	if got := m.Fields[1].Key(); got != "type" {
		t.Errorf("Key() = %q, want type", got)
	}
}

func TestLoadFileDefaultsName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anon.yaml")
	if err := os.WriteFile(path, []byte("fields:\n  - name: a\n"), 0644); err != nil {
		t.Fatal(err)
	}
	m, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.Name != path {
		t.Errorf("Name = %q, want %q", m.Name, path)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := Load(strings.NewReader("fields:\n  - name: a\n    optional: true\n"))
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestConvertRecords(t *testing.T) {
	m, err := LoadFile(filepath.Join("testdata", "products.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	s, err := m.Compile()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"id", "type", "min_price", "max_price"}, s.Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}

	f, err := os.Open(filepath.Join("testdata", "products_records.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	recs, err := DecodeRecords(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 {
		t.Fatalf("got %d records, want 3", len(recs))
	}

	want := []convert.Params{
		{{Key: "id", Value: "999"}, {Key: "type", Value: "accessory"}, {Key: "max_price", Value: "100"}},
		{{Key: "id", Value: "1000"}, {Key: "type", Value: "gift%20card"}, {Key: "min_price", Value: "5"}},
		{{Key: "id", Value: "1001"}, {Key: "type", Value: "book"}, {Key: "max_price", Value: "12.5"}},
	}
	for i, rec := range recs {
		if err := m.Check(rec); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
		if diff := cmp.Diff(want[i], convert.Encoded(s, rec)); diff != "" {
			t.Errorf("record %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name   string
		fields []Field
		want   error
	}{
		{
			name:   "duplicate rename",
			fields: []Field{{Name: "a", Rename: "x"}, {Name: "b", Rename: "x"}},
			want:   schema.ErrDuplicateKey,
		},
		{
			name:   "rename onto name",
			fields: []Field{{Name: "type"}, {Name: "product_type", Rename: "type"}},
			want:   schema.ErrDuplicateKey,
		},
		{
			name:   "empty name",
			fields: []Field{{Rename: "x"}},
			want:   schema.ErrInvalidFieldName,
		},
		{
			name:   "excluded duplicate is fine",
			fields: []Field{{Name: "a"}, {Name: "a", Exclude: true}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Manifest{Fields: tt.fields}
			_, err := m.Compile()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	m := &Manifest{Fields: []Field{
		{Name: "id", Required: true},
		{Name: "tags"},
		{Name: "secret", Exclude: true, Required: true},
	}}
	tests := []struct {
		name   string
		rec    map[string]any
		fields []string
	}{
		{"ok", map[string]any{"id": 1}, nil},
		{"extra keys ignored", map[string]any{"id": 1, "other": []any{1}}, nil},
		{"missing required", map[string]any{}, []string{"id"}},
		{"null required", map[string]any{"id": nil}, []string{"id"}},
		{"non scalar", map[string]any{"id": map[string]any{}, "tags": []any{"a"}}, []string{"id", "tags"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.Check(tt.rec)
			var got []string
			if err != nil {
				for _, e := range err.(interface{ Unwrap() []error }).Unwrap() {
					var rerr *RecordError
					if !errors.As(e, &rerr) {
						t.Fatalf("unexpected error %T", e)
					}
					got = append(got, rerr.Field)
				}
			}
			if diff := cmp.Diff(tt.fields, got); diff != "" {
				t.Errorf("failing fields mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeRecordsError(t *testing.T) {
	_, err := DecodeRecords(strings.NewReader("a: 1\n---\n- not\n- a map\n"))
	if err == nil {
		t.Fatal("expected error for non-map document")
	}
}
