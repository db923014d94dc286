package project

import (
	"github.com/reoring/schemaful/document"
	eng "github.com/reoring/schemaful/internal/engine"
	"github.com/reoring/schemaful/jsonschema"
)

// field decides how one member or element is carried into target: copied
// verbatim, queued for expansion, or rejected.
func (r *run) field(s *jsonschema.Schema, at slot, value *document.Node, target *Container, path string) error {
	if value.IsNull() {
		target.set(at, nil)
		return nil
	}
	if s == nil {
		s = &jsonschema.Schema{}
	}
	if s.Ref != "" {
		resolved, err := r.resolve(s, path)
		if err != nil {
			return err
		}
		s = resolved
	}

	switch {
	case s.Type.IsArray() && plainItems(s.Items):
		if !value.IsArray() {
			return mismatch(ShapeArray, value, path)
		}
		r.tracef("verbatim array %s", eng.NormalizePointer(path))
		target.set(at, value.Materialize())

	case (s.Type.IsAbsent() && s.Ref == "") ||
		(s.Type.IsObject() && !s.HasProperties() && s.AdditionalProperties.IsEmpty()):
		if !value.IsObject() {
			return mismatch(ShapeObject, value, path)
		}
		if s.HasCombinator() {
			r.tracef("verbatim object %s (combinator)", eng.NormalizePointer(path))
		} else {
			r.tracef("verbatim object %s", eng.NormalizePointer(path))
		}
		target.set(at, value.Materialize())

	case s.Type.IsScalar():
		if !value.IsScalar() {
			return mismatch(ShapeScalar, value, path)
		}
		target.set(at, value.Value())

	case s.Type.IsArray():
		child := NewSequence(value.Len())
		target.attach(at, child)
		r.push(frame{schema: s, source: value, target: child, path: path})

	case s.Type.IsObject():
		child := NewKeyed()
		target.attach(at, child)
		r.push(frame{schema: s, source: value, target: child, path: path})

	default:
		return invalidType(s, path)
	}
	return nil
}

// plainItems reports whether an items schema leaves elements unshaped: it
// neither references a definition nor declares properties.
func plainItems(items *jsonschema.Schema) bool {
	return items == nil || (items.Ref == "" && !items.HasProperties())
}
