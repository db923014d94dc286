package schemaful

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/schemaful/i18n"
	eng "github.com/reoring/schemaful/internal/engine"
	"github.com/reoring/schemaful/internal/project"
	"github.com/reoring/schemaful/jsonschema"
)

// Issue codes.
const (
	CodeInvalidType  = "invalid_type"
	CodeSchemaError  = "schema_error"
	CodeParseError   = "parse_error"
	CodeDuplicateKey = "duplicate_key"
	CodeTruncated    = "truncated"
)

// Schema and shape errors returned by Project. Use errors.As to inspect them.
type (
	SchemaError       = jsonschema.SchemaError
	TypeMismatchError = project.TypeMismatchError
	Shape             = project.Shape
)

const (
	ShapeObject = project.ShapeObject
	ShapeArray  = project.ShapeArray
	ShapeScalar = project.ShapeScalar
)

var (
	// ErrUnresolvedRef is wrapped by SchemaError when a $ref names no definition.
	ErrUnresolvedRef = jsonschema.ErrUnresolvedRef
	// ErrInvalidType is wrapped by SchemaError when a schema cannot drive projection.
	ErrInvalidType = jsonschema.ErrInvalidType
	// ErrEmptyDocument is returned for input without a JSON value.
	ErrEmptyDocument = eng.ErrEmptyDocument
	// ErrTrailingData is returned when the input holds more than one value.
	ErrTrailingData = eng.ErrTrailingData
)

// Issue is one user-facing error entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /items/2/price).
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
	// Params carries structured details (e.g., {"expected":"object"}) for
	// i18n and observability.
	Params map[string]string
}

// Issues is a collection of issues that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(iss), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s at %s", iss[i].Code, iss[i].Path)
	}
	if len(iss) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(iss))
	}
	return b.String()
}

// Localize returns a copy whose messages come from tr. A nil tr uses the
// package-level translator of i18n.
func (iss Issues) Localize(tr i18n.Translator) Issues {
	out := make(Issues, len(iss))
	for i, it := range iss {
		if tr != nil {
			it.Message = tr.Message(it.Code, it.Params)
		} else {
			it.Message = i18n.T(it.Code, it.Params)
		}
		out[i] = it
	}
	return out
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// ToIssues converts any error returned by this package into Issues.
func ToIssues(err error) Issues {
	if err == nil {
		return nil
	}
	if iss, ok := AsIssues(err); ok {
		return iss
	}
	var tm *TypeMismatchError
	if errors.As(err, &tm) {
		return Issues{{
			Path:    eng.NormalizePointer(tm.Path),
			Code:    CodeInvalidType,
			Message: err.Error(),
			Cause:   err,
			Params:  map[string]string{"expected": string(tm.Expected), "got": tm.Actual.String()},
		}}
	}
	var se *SchemaError
	if errors.As(err, &se) {
		params := map[string]string{"reason": se.Err.Error()}
		if se.Ref != "" {
			params["ref"] = se.Ref
		}
		if !se.Type.IsAbsent() {
			params["type"] = string(se.Type)
		}
		return Issues{{Path: eng.NormalizePointer(se.Path), Code: CodeSchemaError, Message: err.Error(), Cause: err, Params: params}}
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return Issues{{Path: ie.Path, Code: ie.Code, Message: ie.Message, Cause: err}}
	}
	return Issues{{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err}}
}
