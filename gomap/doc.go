// Package gomap converts Go structs into ordered query parameters.
//
// # Usage
//
//	type ProductRequest struct {
//	    ID          int    `query:"rename=id"`
//	    ProductType string `query:"rename=type"`
//	    MinPrice    *int   `query:"rename=min_price"`
//	    MaxPrice    *int   `query:"rename=max_price"`
//	    Trace       string `query:"-"`
//	}
//
//	params, err := gomap.ToQueryParams(ProductRequest{ID: 999, ProductType: "accessory", MaxPrice: &max})
//	// [{id 999} {type accessory} {max_price 100}]
//
//	// Percent-encoded values
//	params, err = gomap.ToEncodedParams(req)
//
//	// Typed, compiled once up front
//	m := gomap.MustFor[ProductRequest]()
//	params = m.Params(req)
//
// # Tags
//
// The `query` tag uses comma or space separated options:
//
//   - rename=name sets the parameter key; quote values with spaces: rename='page size'
//   - required documents that a value-typed field is always sent; it is an
//     error on pointer or interface fields, which may be nil
//   - omitempty makes a value-typed field absent at its zero value
//   - exclude, or -, skips the field
//
// Pointer and interface fields are optional and produce no parameter when
// nil. Other fields are required. Parameters appear in field declaration
// order, with embedded structs flattened in place.
//
// Only scalar values are supported: strings, booleans, numbers and types
// implementing encoding.TextMarshaler or fmt.Stringer. Slices, maps and
// plain structs are rejected when the type is first compiled.
//
// # Related Packages
//
//   - github.com/signadot/qparams/schema - schema compilation
//   - github.com/signadot/qparams/convert - conversion and encoding
package gomap
