// Package schemaful projects JSON documents through JSON Schema: the result
// keeps only the members a schema declares, following $ref into the
// schema's definitions and copying untyped subtrees verbatim.
//
// Layout:
//
//   - document: the parsed tree (ordered objects, last duplicate wins).
//   - jsonschema: the schema model, loaders (JSON, YAML, CRD bundles) and
//     $ref resolution.
//   - source/gojson, source/json: token drivers (goccy/go-json by default).
//   - internal/engine: tree building and duplicate/depth/size enforcement.
//   - internal/project: the projection work queue.
//   - cmd/schemaful: the CLI.
//
// Typical usage:
//
//	s, err := jsonschema.Parse(schemaJSON)
//	v, err := schemaful.Project(data, s)
//	v, err = schemaful.Project(data, s, schemaful.ProjectOpt{
//		Strictness: schemaful.Strictness{OnDuplicateKey: schemaful.Error},
//		MaxDepth:   64,
//	})
//
// Errors are *SchemaError for schemas projection cannot follow and
// *TypeMismatchError for input whose shape disagrees with the schema.
// ToIssues converts any returned error into path-addressed Issues.
package schemaful
