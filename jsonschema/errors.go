package jsonschema

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrUnresolvedRef marks a $ref whose name is missing from the
	// definitions table.
	ErrUnresolvedRef = errors.New("unresolvable $ref")
	// ErrInvalidType marks a type tag projection cannot act on.
	ErrInvalidType = errors.New("invalid schema type")
)

// SchemaError reports a schema document that projection cannot follow. It
// wraps ErrUnresolvedRef or ErrInvalidType.
type SchemaError struct {
	Err    error
	Ref    string
	Type   Type
	Path   string // JSON pointer of the input value being projected, when known
	Schema *Schema
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("jsonschema: ")
	b.WriteString(e.Err.Error())
	if e.Ref != "" {
		b.WriteString(" ")
		b.WriteString(strconv.Quote(e.Ref))
	}
	if e.Type != "" {
		b.WriteString(" type=")
		b.WriteString(strconv.Quote(string(e.Type)))
	}
	if e.Path != "" {
		b.WriteString(" at ")
		b.WriteString(e.Path)
	}
	return b.String()
}

func (e *SchemaError) Unwrap() error { return e.Err }
