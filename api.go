package schemaful

import (
	"fmt"
	"io"

	"github.com/reoring/schemaful/document"
	eng "github.com/reoring/schemaful/internal/engine"
	"github.com/reoring/schemaful/internal/project"
	"github.com/reoring/schemaful/jsonschema"
)

// Parser turns JSON input into document trees and projects them. It keeps a
// scratch stack between calls, so a Parser must not be used from several
// goroutines at once. The package-level functions allocate one per call.
type Parser struct {
	opt     ProjectOpt
	builder eng.Builder
}

// NewParser returns a Parser configured by the last opt supplied.
func NewParser(opts ...ProjectOpt) *Parser {
	opt := lastOpt(opts)
	return &Parser{opt: opt, builder: eng.Builder{Numbers: numberConv(opt.Numbers)}}
}

func numberConv(m NumberMode) eng.NumberConv {
	switch m {
	case NumberFloat64:
		return eng.Float64
	case NumberAuto:
		return eng.Auto
	default:
		return eng.JSONNumber
	}
}

func (p *Parser) driver() JSONDriver {
	if p.opt.Driver != nil {
		return p.opt.Driver
	}
	return CurrentJSONDriver()
}

func (p *Parser) debugf(format string, args ...any) {
	if p.opt.Logger != nil {
		p.opt.Logger.Debugf(format, args...)
	}
}

func (p *Parser) enforce(src Source) eng.TokenSource {
	eo := eng.EnforceOptions{
		OnDuplicate: dupStrictness(p.opt.Strictness.OnDuplicateKey),
		MaxDepth:    p.opt.MaxDepth,
		MaxBytes:    p.opt.MaxBytes,
	}
	if !eo.Enabled() {
		return src
	}
	if eo.OnDuplicate == eng.DupWarn {
		eo.IssueSink = func(si eng.SimpleIssue) {
			p.debugf("%s at %s", si.Message, si.Path)
		}
	}
	return eng.WrapWithEnforcement(src, eo)
}

func dupStrictness(s Severity) eng.DuplicateStrictness {
	switch s {
	case Warn:
		return eng.DupWarn
	case Error:
		return eng.DupError
	default:
		return eng.DupIgnore
	}
}

// ParseSource builds a document tree from an arbitrary token source.
func (p *Parser) ParseSource(src Source) (*document.Node, error) {
	n, err := p.builder.Build(p.enforce(src))
	if err != nil {
		return nil, fmt.Errorf("schemaful: parse: %w", err)
	}
	return n, nil
}

// Parse builds a document tree from data.
func (p *Parser) Parse(data []byte) (*document.Node, error) {
	if p.opt.MaxBytes > 0 && int64(len(data)) > p.opt.MaxBytes {
		return nil, truncated(p.opt.MaxBytes)
	}
	return p.ParseSource(p.driver().NewBytes(data))
}

// ParseReader builds a document tree from r. When MaxBytes is set the input
// is buffered up to the limit first.
func (p *Parser) ParseReader(r io.Reader) (*document.Node, error) {
	if p.opt.MaxBytes > 0 {
		data, err := io.ReadAll(io.LimitReader(r, p.opt.MaxBytes+1))
		if err != nil {
			return nil, fmt.Errorf("schemaful: read: %w", err)
		}
		return p.Parse(data)
	}
	return p.ParseSource(p.driver().NewReader(r))
}

func truncated(limit int64) error {
	return eng.IssueError{SimpleIssue: eng.SimpleIssue{
		Code:    CodeTruncated,
		Path:    "/",
		Message: fmt.Sprintf("max bytes exceeded (%d)", limit),
	}}
}

// Project parses data and returns the subset of it described by schema.
func (p *Parser) Project(data []byte, schema *jsonschema.Schema) (any, error) {
	return p.project(schema, func() (*document.Node, error) { return p.Parse(data) })
}

// ProjectReader is Project over a stream.
func (p *Parser) ProjectReader(r io.Reader, schema *jsonschema.Schema) (any, error) {
	return p.project(schema, func() (*document.Node, error) { return p.ParseReader(r) })
}

// ProjectNode projects an already parsed document.
func (p *Parser) ProjectNode(doc *document.Node, schema *jsonschema.Schema) (any, error) {
	return p.project(schema, func() (*document.Node, error) { return doc, nil })
}

func (p *Parser) project(schema *jsonschema.Schema, load func() (*document.Node, error)) (any, error) {
	if schema == nil {
		schema = &jsonschema.Schema{}
	}
	defs := schema.DefinitionTable()
	root, err := defs.Resolve(schema)
	if err != nil {
		return nil, err
	}
	doc, err := load()
	if err != nil {
		return nil, err
	}
	if !root.Type.IsObject() && !root.Type.IsArray() {
		p.debugf("root type=%q is not structured, decoding in full", root.Type)
		return doc.Materialize(), nil
	}
	var trace project.Tracef
	if p.opt.Logger != nil {
		trace = p.opt.Logger.Debugf
	}
	return project.Run(defs, root, doc, trace)
}

// Decode parses data and returns it in full, with objects as
// map[string]any and arrays as []any.
func (p *Parser) Decode(data []byte) (any, error) {
	doc, err := p.Parse(data)
	if err != nil {
		return nil, err
	}
	return doc.Materialize(), nil
}

// Project parses data and returns the subset of it described by schema.
// Objects become map[string]any and arrays []any.
func Project(data []byte, schema *jsonschema.Schema, opts ...ProjectOpt) (any, error) {
	return NewParser(opts...).Project(data, schema)
}

// ProjectString is Project for text input.
func ProjectString(text string, schema *jsonschema.Schema, opts ...ProjectOpt) (any, error) {
	return NewParser(opts...).Project([]byte(text), schema)
}

// ProjectReader is Project over a stream.
func ProjectReader(r io.Reader, schema *jsonschema.Schema, opts ...ProjectOpt) (any, error) {
	return NewParser(opts...).ProjectReader(r, schema)
}

// Decode parses data without a schema.
func Decode(data []byte, opts ...ProjectOpt) (any, error) {
	return NewParser(opts...).Decode(data)
}
