// Package document holds the read-only tree produced by parsing a JSON input.
//
// A Node is one of six kinds. Objects keep their members in input order and
// support lookup by key; arrays are positional. Nodes are immutable once built
// and are only valid for the duration of the call that produced them.
package document

import (
	"encoding/json"
	"fmt"
	"iter"
	"sort"
)

// Kind enumerates node kinds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindObject
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// indexThreshold is the member count above which objects get a lookup map.
const indexThreshold = 8

// Node is a read-only handle into a parsed document.
type Node struct {
	kind  Kind
	b     bool
	str   string
	num   any
	keys  []string
	elems []*Node
	index map[string]int
}

var nullNode = &Node{kind: KindNull}

// Null returns the shared null node.
func Null() *Node { return nullNode }

// NewBool returns a boolean node.
func NewBool(v bool) *Node { return &Node{kind: KindBool, b: v} }

// NewString returns a string node.
func NewString(s string) *Node { return &Node{kind: KindString, str: s} }

// NewNumber returns a number node. text is the literal as it appeared in the
// input; v is its converted value (json.Number, float64 or int64).
func NewNumber(text string, v any) *Node {
	if v == nil {
		v = json.Number(text)
	}
	return &Node{kind: KindNumber, str: text, num: v}
}

// NewObject returns an object node. keys and vals must have equal length and
// are retained without copying. When a key repeats, the last member wins on
// lookup.
func NewObject(keys []string, vals []*Node) *Node {
	if len(keys) != len(vals) {
		panic("document: NewObject keys/vals length mismatch")
	}
	n := &Node{kind: KindObject, keys: keys, elems: vals}
	if len(keys) > indexThreshold {
		n.index = make(map[string]int, len(keys))
		for i, k := range keys {
			n.index[k] = i
		}
	}
	return n
}

// NewArray returns an array node retaining elems without copying.
func NewArray(elems ...*Node) *Node { return &Node{kind: KindArray, elems: elems} }

func (n *Node) Kind() Kind     { return n.kind }
func (n *Node) IsNull() bool   { return n == nil || n.kind == KindNull }
func (n *Node) IsObject() bool { return n != nil && n.kind == KindObject }
func (n *Node) IsArray() bool  { return n != nil && n.kind == KindArray }
func (n *Node) IsScalar() bool { return !n.IsObject() && !n.IsArray() }
func (n *Node) Text() string   { return n.str }

// Len returns the member count of an object or the element count of an
// array, and 0 for scalars.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	return len(n.elems)
}

// Get looks up key in an object node.
func (n *Node) Get(key string) (*Node, bool) {
	if !n.IsObject() {
		return nil, false
	}
	if n.index != nil {
		i, ok := n.index[key]
		if !ok {
			return nil, false
		}
		return n.elems[i], true
	}
	for i := len(n.keys) - 1; i >= 0; i-- {
		if n.keys[i] == key {
			return n.elems[i], true
		}
	}
	return nil, false
}

// Keys returns the member names of an object in input order. The slice must
// not be modified.
func (n *Node) Keys() []string {
	if !n.IsObject() {
		return nil
	}
	return n.keys
}

// Members iterates object members in input order, duplicates included.
func (n *Node) Members() iter.Seq2[string, *Node] {
	return func(yield func(string, *Node) bool) {
		if !n.IsObject() {
			return
		}
		for i, k := range n.keys {
			if !yield(k, n.elems[i]) {
				return
			}
		}
	}
}

// Elements iterates array elements with their positions.
func (n *Node) Elements() iter.Seq2[int, *Node] {
	return func(yield func(int, *Node) bool) {
		if !n.IsArray() {
			return
		}
		for i, e := range n.elems {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Value returns the Go value of a scalar node: string, bool, nil or the
// converted number. Containers return their materialized form.
func (n *Node) Value() any {
	if n == nil {
		return nil
	}
	switch n.kind {
	case KindBool:
		return n.b
	case KindNumber:
		return n.num
	case KindString:
		return n.str
	case KindObject, KindArray:
		return n.Materialize()
	default:
		return nil
	}
}

// FromValue builds a node tree from plain Go values: maps with string keys,
// slices of any, strings, bools, nil, json.Number and the built-in numeric
// types. Map members are ordered by key.
func FromValue(v any) (*Node, error) {
	switch t := v.(type) {
	case nil:
		return Null(), nil
	case *Node:
		return t, nil
	case bool:
		return NewBool(t), nil
	case string:
		return NewString(t), nil
	case json.Number:
		return NewNumber(string(t), t), nil
	case float64:
		return NewNumber(fmt.Sprint(t), t), nil
	case float32:
		return NewNumber(fmt.Sprint(t), float64(t)), nil
	case int:
		return NewNumber(fmt.Sprint(t), int64(t)), nil
	case int64:
		return NewNumber(fmt.Sprint(t), t), nil
	case int32:
		return NewNumber(fmt.Sprint(t), int64(t)), nil
	case []any:
		elems := make([]*Node, len(t))
		for i, e := range t {
			en, err := FromValue(e)
			if err != nil {
				return nil, err
			}
			elems[i] = en
		}
		return NewArray(elems...), nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		vals := make([]*Node, len(keys))
		for i, k := range keys {
			vn, err := FromValue(t[k])
			if err != nil {
				return nil, err
			}
			vals[i] = vn
		}
		return NewObject(keys, vals), nil
	default:
		return nil, fmt.Errorf("document: unsupported value of type %T", v)
	}
}
