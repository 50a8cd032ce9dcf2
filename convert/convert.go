// Package convert applies compiled field schemas to records, producing
// ordered query parameter pairs.
//
//	params := convert.Convert(s, rec) // raw values
//	params := convert.Encoded(s, rec) // percent-encoded values
//
// Pairs follow the schema's declaration order. Optional fields whose value
// is absent contribute nothing. Keys are never encoded.
package convert

import (
	"github.com/signadot/qparams/schema"
)

// Convert walks s in order and emits one pair per present field of rec.
//
// A required field reporting absence is a schema defect, not a runtime
// condition, and panics with schema.RequiredFieldMissing.
func Convert(s *schema.Schema, rec any, opts ...Option) Params {
	cfg := newConfig()
	for _, opt := range opts {
		opt.apply(cfg)
	}
	res := make(Params, 0, s.Len())
	for i := range s.Len() {
		f := s.Field(i)
		v, ok := f.Lookup(rec)
		if !ok {
			if f.Required {
				panic(schema.RequiredFieldMissing{Field: f.Name, Key: f.Key})
			}
			continue
		}
		val := cfg.stringify(v)
		if cfg.encode != nil {
			val = cfg.encode(val)
		}
		res = append(res, Pair{Key: f.Key, Value: val})
	}
	return res
}

// Encoded is shorthand for Convert(s, rec, EncodeValues()).
func Encoded(s *schema.Schema, rec any) Params {
	return Convert(s, rec, EncodeValues())
}
