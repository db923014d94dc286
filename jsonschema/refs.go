package jsonschema

import "strings"

// Definitions maps a definition name to its schema.
type Definitions map[string]*Schema

// DefinitionTable returns the document's definitions, taken from
// "definitions" when it is non-empty and from "$defs" otherwise. The two
// tables are never merged.
func (s *Schema) DefinitionTable() Definitions {
	if s == nil {
		return nil
	}
	if len(s.Definitions) > 0 {
		return s.Definitions
	}
	return s.Defs
}

var refTokenUnescaper = strings.NewReplacer("~1", "/", "~0", "~")

// RefName returns the last segment of a $ref pointer such as
// "#/definitions/Model" or "#/$defs/Model".
func RefName(ref string) string {
	name := ref[strings.LastIndexByte(ref, '/')+1:]
	return refTokenUnescaper.Replace(name)
}

// Resolve follows s.Ref one hop. Schemas without $ref are returned as is.
func (d Definitions) Resolve(s *Schema) (*Schema, error) {
	if s == nil || s.Ref == "" {
		return s, nil
	}
	target, ok := d[RefName(s.Ref)]
	if !ok || target == nil {
		return nil, &SchemaError{Err: ErrUnresolvedRef, Ref: s.Ref, Schema: s}
	}
	return target, nil
}
