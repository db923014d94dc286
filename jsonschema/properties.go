package jsonschema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	eng "github.com/reoring/schemaful/internal/engine"
	"github.com/reoring/schemaful/source/gojson"
)

// Properties is an ordered name → schema mapping. Declaration order is kept
// when loading JSON or YAML so that projection visits fields the way the
// schema lists them.
type Properties struct {
	names  []string
	byName map[string]*Schema
}

// NewProperties builds Properties from alternating name, schema pairs.
func NewProperties(pairs ...any) *Properties {
	p := &Properties{}
	for i := 0; i+1 < len(pairs); i += 2 {
		name, _ := pairs[i].(string)
		s, _ := pairs[i+1].(*Schema)
		p.Set(name, s)
	}
	return p
}

// Set adds or replaces a property, keeping the original position on replace.
func (p *Properties) Set(name string, s *Schema) {
	if p.byName == nil {
		p.byName = make(map[string]*Schema)
	}
	if _, ok := p.byName[name]; !ok {
		p.names = append(p.names, name)
	}
	p.byName[name] = s
}

func (p *Properties) Get(name string) (*Schema, bool) {
	if p == nil {
		return nil, false
	}
	s, ok := p.byName[name]
	return s, ok
}

func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.names)
}

// Names returns property names in declaration order.
func (p *Properties) Names() []string {
	if p == nil {
		return nil
	}
	return p.names
}

func (p *Properties) UnmarshalJSON(b []byte) error {
	var m map[string]*Schema
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	names, err := topLevelKeys(b)
	if err != nil {
		return err
	}
	*p = Properties{byName: make(map[string]*Schema, len(m))}
	for _, n := range names {
		if s, ok := m[n]; ok {
			p.Set(n, s)
		}
	}
	// keys the scan could not see (should not happen) go last, sorted
	if len(p.names) != len(m) {
		var rest []string
		for n := range m {
			if _, ok := p.byName[n]; !ok {
				rest = append(rest, n)
			}
		}
		sort.Strings(rest)
		for _, n := range rest {
			p.Set(n, m[n])
		}
	}
	return nil
}

// topLevelKeys lists the member names of the JSON object in b, in order.
func topLevelKeys(b []byte) ([]string, error) {
	src := gojson.NewBytes(b)
	var names []string
	depth := 0
	for {
		tok, err := src.NextToken()
		if errors.Is(err, io.EOF) {
			return names, nil
		}
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case eng.KindBeginObject, eng.KindBeginArray:
			depth++
		case eng.KindEndObject, eng.KindEndArray:
			depth--
			if depth == 0 {
				return names, nil
			}
		case eng.KindKey:
			if depth == 1 {
				names = append(names, tok.String)
			}
		}
	}
}

func (p *Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, n := range p.Names() {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(n)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(p.byName[n])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (p *Properties) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("jsonschema: properties must be a mapping (line %d)", value.Line)
	}
	*p = Properties{}
	for i := 0; i+1 < len(value.Content); i += 2 {
		var s Schema
		if err := value.Content[i+1].Decode(&s); err != nil {
			return err
		}
		p.Set(value.Content[i].Value, &s)
	}
	return nil
}

func (p *Properties) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range p.Names() {
		var v yaml.Node
		if err := v.Encode(p.byName[name]); err != nil {
			return nil, err
		}
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: name}, &v)
	}
	return n, nil
}
