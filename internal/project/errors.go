package project

import (
	"fmt"

	"github.com/reoring/schemaful/document"
	eng "github.com/reoring/schemaful/internal/engine"
)

// Shape is the structural expectation a schema places on a value.
type Shape string

const (
	ShapeObject Shape = "object"
	ShapeArray  Shape = "array"
	ShapeScalar Shape = "scalar"
)

// TypeMismatchError reports an input value whose shape disagrees with the
// schema at that position.
type TypeMismatchError struct {
	Expected Shape
	Actual   document.Kind
	Path     string // JSON pointer of the offending value
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("schemaful: expected %s at %s, got %s", e.Expected, e.Path, e.Actual)
}

func mismatch(expected Shape, n *document.Node, path string) error {
	return &TypeMismatchError{Expected: expected, Actual: n.Kind(), Path: eng.NormalizePointer(path)}
}
