// Package project implements schema-guided projection: it walks a resolved
// schema together with a parsed document and builds a pruned copy holding
// only what the schema declares.
package project

import (
	"errors"

	"github.com/reoring/schemaful/document"
	eng "github.com/reoring/schemaful/internal/engine"
	"github.com/reoring/schemaful/jsonschema"
)

// Tracef receives debug traces; nil disables tracing.
type Tracef func(format string, args ...any)

// frame is one pending object or array expansion.
type frame struct {
	schema *jsonschema.Schema
	source *document.Node
	target *Container
	path   string
}

type run struct {
	defs  jsonschema.Definitions
	queue []frame
	trace Tracef
}

// Run projects source through root, which must already be resolved and be
// of type object or array, and returns the filled root container value.
// The first error aborts the run.
func Run(defs jsonschema.Definitions, root *jsonschema.Schema, source *document.Node, trace Tracef) (any, error) {
	var target *Container
	switch {
	case root.Type.IsObject():
		target = NewKeyed()
	case root.Type.IsArray():
		target = NewSequence(source.Len())
	default:
		return nil, invalidType(root, "")
	}
	r := &run{defs: defs, trace: trace}
	r.queue = append(r.queue, frame{schema: root, source: source, target: target})
	for len(r.queue) > 0 {
		last := len(r.queue) - 1
		f := r.queue[last]
		r.queue[last] = frame{}
		r.queue = r.queue[:last]
		if err := r.expand(f); err != nil {
			return nil, err
		}
	}
	return target.Value(), nil
}

func (r *run) tracef(format string, args ...any) {
	if r.trace != nil {
		r.trace(format, args...)
	}
}

func (r *run) push(f frame) { r.queue = append(r.queue, f) }

func (r *run) resolve(s *jsonschema.Schema, path string) (*jsonschema.Schema, error) {
	res, err := r.defs.Resolve(s)
	if err != nil {
		var se *jsonschema.SchemaError
		if errors.As(err, &se) && se.Path == "" {
			se.Path = eng.NormalizePointer(path)
		}
		return nil, err
	}
	return res, nil
}

func (r *run) expand(f frame) error {
	s := f.schema
	r.tracef("frame %s type=%s", eng.NormalizePointer(f.path), s.Type)
	switch {
	case s.Type.IsObject():
		if !f.source.IsObject() {
			return mismatch(ShapeObject, f.source, f.path)
		}
		if s.HasProperties() {
			for _, name := range s.Properties.Names() {
				value, ok := f.source.Get(name)
				if !ok {
					continue
				}
				ps, _ := s.Properties.Get(name)
				if err := r.field(ps, keySlot(name), value, f.target, eng.JoinPointer(f.path, name)); err != nil {
					return err
				}
			}
			return nil
		}
		ap, err := r.resolve(s.AdditionalProperties, f.path)
		if err != nil {
			return err
		}
		if !ap.IsEmpty() {
			for name, value := range f.source.Members() {
				// Earlier copies of a repeated key lose to the last one.
				if last, _ := f.source.Get(name); last != value {
					continue
				}
				if err := r.field(ap, keySlot(name), value, f.target, eng.JoinPointer(f.path, name)); err != nil {
					return err
				}
			}
			return nil
		}
		f.target.Merge(f.source.MaterializeObject())
		return nil

	case s.Type.IsArray():
		if !f.source.IsArray() {
			return mismatch(ShapeArray, f.source, f.path)
		}
		items, err := r.resolve(s.Items, f.path)
		if err != nil {
			return err
		}
		if items == nil {
			items = &jsonschema.Schema{}
		}
		for i, value := range f.source.Elements() {
			if err := r.field(items, indexSlot(i), value, f.target, eng.JoinIndex(f.path, i)); err != nil {
				return err
			}
		}
		return nil

	default:
		return invalidType(s, f.path)
	}
}

func invalidType(s *jsonschema.Schema, path string) error {
	return &jsonschema.SchemaError{Err: jsonschema.ErrInvalidType, Ref: s.Ref, Type: s.Type, Path: eng.NormalizePointer(path), Schema: s}
}
