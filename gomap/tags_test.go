package gomap

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/qparams/schema"
)

func TestParseStructTag(t *testing.T) {
	tests := []struct {
		name    string
		tag     string
		want    map[string]string
		wantErr bool
	}{
		{
			name: "empty tag",
			tag:  "",
			want: map[string]string{},
		},
		{
			name: "single key-value",
			tag:  "rename=type",
			want: map[string]string{"rename": "type"},
		},
		{
			name: "key-value and flag",
			tag:  "rename=type,required",
			want: map[string]string{"rename": "type", "required": ""},
		},
		{
			name: "with spaces",
			tag:  "rename=type, required",
			want: map[string]string{"rename": "type", "required": ""},
		},
		{
			name: "space separated",
			tag:  "rename=type required",
			want: map[string]string{"rename": "type", "required": ""},
		},
		{
			name: "dash as exclude",
			tag:  "-",
			want: map[string]string{"-": ""},
		},
		{
			name: "quoted value with spaces",
			tag:  "rename='please encode'",
			want: map[string]string{"rename": "please encode"},
		},
		{
			name: "quoted value with spaces and other keys",
			tag:  "rename='please encode',required",
			want: map[string]string{"rename": "please encode", "required": ""},
		},
		{
			name: "double quoted value",
			tag:  `rename="page size"`,
			want: map[string]string{"rename": "page size"},
		},
		{
			name: "quoted comma",
			tag:  "rename='a,b',omitempty",
			want: map[string]string{"rename": "a,b", "omitempty": ""},
		},
		{
			name:    "empty key",
			tag:     "=value",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStructTag(tt.tag)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStructTag() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseStructTag() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

type Paging struct {
	Page    int `query:"rename=page"`
	PerPage int `query:"rename=per_page,omitempty"`
}

type sorting struct {
	Sort string `query:"rename=sort"`
}

type Filter struct {
	Owner string `query:"rename=owner"`
}

type listRequest struct {
	Query string `query:"rename=q"`
	Paging
	sorting
	*Filter
	Since    time.Time
	Status   *string `query:"rename=status"`
	internal string
	Debug    bool `query:"-"`
}

func TestGetStructFields(t *testing.T) {
	fields, err := GetStructFields(reflect.TypeFor[listRequest]())
	if err != nil {
		t.Fatal(err)
	}
	type row struct {
		Name     string
		Key      string
		Index    []int
		Required bool
	}
	var got []row
	for _, f := range fields {
		got = append(got, row{f.Name, f.Key, f.Index, f.Required})
	}
	want := []row{
		{"Query", "q", []int{0}, true},
		{"Page", "page", []int{1, 0}, true},
		{"PerPage", "per_page", []int{1, 1}, false},
		{"Sort", "sort", []int{2, 0}, true},
		{"Owner", "owner", []int{3, 0}, false},
		{"Since", "Since", []int{4}, true},
		{"Status", "status", []int{5}, false},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestGetStructFieldsNotStruct(t *testing.T) {
	if _, err := GetStructFields(reflect.TypeFor[int]()); err == nil {
		t.Error("expected error for non-struct type")
	}
}

func TestFieldErrors(t *testing.T) {
	tests := []struct {
		name string
		typ  reflect.Type
		want error
	}{
		{
			name: "required pointer",
			typ: reflect.TypeFor[struct {
				A *int `query:"required"`
			}](),
			want: schema.ErrNullableRequired,
		},
		{
			name: "required interface",
			typ: reflect.TypeFor[struct {
				A any `query:"required"`
			}](),
			want: schema.ErrNullableRequired,
		},
		{
			name: "embedded pointer with excluded struct",
			typ: reflect.TypeFor[struct {
				*Paging
				B struct{ X int } `query:"-"`
			}](),
		},
		{
			name: "slice",
			typ: reflect.TypeFor[struct {
				Tags []string
			}](),
			want: schema.ErrUnsupportedType,
		},
		{
			name: "map",
			typ: reflect.TypeFor[struct {
				M *map[string]string
			}](),
			want: schema.ErrUnsupportedType,
		},
		{
			name: "nested struct",
			typ: reflect.TypeFor[struct {
				Inner struct{ X int }
			}](),
			want: schema.ErrUnsupportedType,
		},
		{
			name: "unknown option",
			typ: reflect.TypeFor[struct {
				A int `query:"optional"`
			}](),
			want: schema.ErrInvalidTag,
		},
		{
			name: "required and omitempty",
			typ: reflect.TypeFor[struct {
				A int `query:"required,omitempty"`
			}](),
			want: schema.ErrInvalidTag,
		},
		{
			name: "omitempty pointer",
			typ: reflect.TypeFor[struct {
				A *int `query:"omitempty"`
			}](),
			want: schema.ErrInvalidTag,
		},
		{
			name: "flag with value",
			typ: reflect.TypeFor[struct {
				P *int `query:"required=false"`
			}](),
			want: schema.ErrInvalidTag,
		},
		{
			name: "omitempty with value",
			typ: reflect.TypeFor[struct {
				A int `query:"omitempty=false"`
			}](),
			want: schema.ErrInvalidTag,
		},
		{
			name: "exclude with value",
			typ: reflect.TypeFor[struct {
				A int `query:"exclude=no"`
			}](),
			want: schema.ErrInvalidTag,
		},
		{
			name: "empty rename",
			typ: reflect.TypeFor[struct {
				A int `query:"rename="`
			}](),
			want: schema.ErrInvalidTag,
		},
		{
			name: "duplicate rename",
			typ: reflect.TypeFor[struct {
				A int `query:"rename=x"`
				B int `query:"rename=x"`
			}](),
			want: schema.ErrDuplicateKey,
		},
		{
			name: "rename collides with embedded field",
			typ: reflect.TypeFor[struct {
				P int `query:"rename=page"`
				Paging
			}](),
			want: schema.ErrDuplicateKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := CompileType(tt.typ)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected %v, got schema with keys %v", tt.want, s.Keys())
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
			var serr *SchemaError
			if !errors.As(err, &serr) || serr.Type != tt.typ {
				t.Errorf("expected SchemaError for %v, got %#v", tt.typ, err)
			}
		})
	}
}

type requiredEmbedPtr struct {
	*inner
}

type inner struct {
	A int `query:"required"`
}

func TestRequiredThroughEmbeddedPointer(t *testing.T) {
	_, err := CompileType(reflect.TypeFor[requiredEmbedPtr]())
	if !errors.Is(err, schema.ErrNullableRequired) {
		t.Fatalf("got %v, want %v", err, schema.ErrNullableRequired)
	}
}

type node struct {
	*node
	V int
}

func TestRecursiveEmbedding(t *testing.T) {
	_, err := CompileType(reflect.TypeFor[node]())
	if !errors.Is(err, schema.ErrUnsupportedType) {
		t.Fatalf("got %v, want %v", err, schema.ErrUnsupportedType)
	}
}
