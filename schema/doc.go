// Package schema compiles ordered field declarations into immutable
// field schemas.
//
// A [Schema] lists the fields of one record type in declaration order.
// Each [Field] carries the source name, the output key used as the query
// parameter name, whether the field is required, and the accessor that
// reads the field from a record.
//
//	s, err := schema.Compile([]schema.RawField{
//	    {Name: "id", Required: true, Get: getID},
//	    {Name: "product_type", Rename: "type", Required: true, Get: getType},
//	    {Name: "min_price", Get: getMinPrice},
//	})
//
// Compilation is atomic: either every field validates and a schema is
// returned, or an [*Error] is returned and no schema exists.
//
// # Related Packages
//
//   - github.com/signadot/qparams/convert - applies a schema to records
//   - github.com/signadot/qparams/gomap - derives schemas from struct tags
//   - github.com/signadot/qparams/manifest - derives schemas from YAML manifests
package schema
