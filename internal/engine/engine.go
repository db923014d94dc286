package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/reoring/schemaful/document"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

var (
	// ErrEmptyDocument is returned when the input holds no JSON value.
	ErrEmptyDocument = errors.New("empty document")
	// ErrTrailingData is returned when tokens follow the root value.
	ErrTrailingData = errors.New("trailing data after top-level value")
	errUnexpected   = errors.New("unexpected token")
)

// NumberConv converts the literal text of a JSON number.
type NumberConv func(string) (any, error)

// JSONNumber keeps numbers as json.Number.
func JSONNumber(s string) (any, error) { return json.Number(s), nil }

// Float64 decodes numbers as float64.
func Float64(s string) (any, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Auto decodes integral literals as int64 when they fit and everything else
// as float64.
func Auto(s string) (any, error) {
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	if math.IsInf(f, 0) {
		return nil, fmt.Errorf("number %s out of range", s)
	}
	return f, nil
}

type buildFrame struct {
	object bool
	key    string
	keys   []string
	vals   []*document.Node
}

// Builder turns a token stream into a document tree without recursion. The
// zero value is ready to use; a Builder reuses its stack between calls and
// must not be shared across goroutines.
type Builder struct {
	Numbers NumberConv
	stack   []buildFrame
}

// Build consumes exactly one JSON value from src and returns its tree. Any
// further token is reported as ErrTrailingData.
func (b *Builder) Build(src TokenSource) (*document.Node, error) {
	conv := b.Numbers
	if conv == nil {
		conv = JSONNumber
	}
	b.stack = b.stack[:0]
	first := true
	for {
		tok, err := src.NextToken()
		if err != nil {
			if errors.Is(err, io.EOF) {
				if first {
					return nil, ErrEmptyDocument
				}
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
		first = false

		var n *document.Node
		switch tok.Kind {
		case KindBeginObject:
			b.stack = append(b.stack, buildFrame{object: true})
			continue
		case KindBeginArray:
			b.stack = append(b.stack, buildFrame{})
			continue
		case KindKey:
			if len(b.stack) == 0 || !b.stack[len(b.stack)-1].object {
				return nil, fmt.Errorf("%w: key %q outside object", errUnexpected, tok.String)
			}
			b.stack[len(b.stack)-1].key = tok.String
			continue
		case KindEndObject, KindEndArray:
			top := len(b.stack) - 1
			if top < 0 || b.stack[top].object != (tok.Kind == KindEndObject) {
				return nil, fmt.Errorf("%w: mismatched container end", errUnexpected)
			}
			f := b.stack[top]
			b.stack[top] = buildFrame{}
			b.stack = b.stack[:top]
			if f.object {
				n = document.NewObject(f.keys, f.vals)
			} else {
				n = document.NewArray(f.vals...)
			}
		case KindString:
			n = document.NewString(tok.String)
		case KindNumber:
			v, err := conv(tok.Number)
			if err != nil {
				return nil, err
			}
			n = document.NewNumber(tok.Number, v)
		case KindBool:
			n = document.NewBool(tok.Bool)
		case KindNull:
			n = document.Null()
		default:
			return nil, fmt.Errorf("%w: kind %d", errUnexpected, tok.Kind)
		}

		if len(b.stack) == 0 {
			if _, err := src.NextToken(); err == nil {
				return nil, ErrTrailingData
			} else if !errors.Is(err, io.EOF) {
				return nil, err
			}
			return n, nil
		}
		top := &b.stack[len(b.stack)-1]
		if top.object {
			top.keys = append(top.keys, top.key)
		}
		top.vals = append(top.vals, n)
	}
}
