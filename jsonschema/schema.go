// Package jsonschema holds the schema document consumed by projection: the
// subset of JSON Schema that shapes a document (type, $ref, properties,
// additionalProperties, items and definition tables), plus the annotations
// that commonly travel with generated schemas.
package jsonschema

import (
	"bytes"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Type is a schema type tag. A list of tags is stored comma-joined with
// "null" members removed, so ["object","null"] becomes "object".
type Type string

const (
	TypeObject  Type = "object"
	TypeArray   Type = "array"
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeInteger Type = "integer"
	TypeBoolean Type = "boolean"
	TypeNull    Type = "null"
)

func (t Type) IsAbsent() bool { return t == "" }
func (t Type) IsObject() bool { return t == TypeObject }
func (t Type) IsArray() bool  { return t == TypeArray }

// IsScalar reports whether every tag in t is a known non-container tag.
func (t Type) IsScalar() bool {
	if t == "" {
		return false
	}
	for _, part := range strings.Split(string(t), ",") {
		switch Type(part) {
		case TypeString, TypeNumber, TypeInteger, TypeBoolean, TypeNull:
		default:
			return false
		}
	}
	return true
}

func normalizeTypes(list []string) Type {
	kept := list[:0:0]
	for _, s := range list {
		if s != string(TypeNull) {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return TypeNull
	}
	return Type(strings.Join(kept, ","))
}

func (t *Type) UnmarshalJSON(b []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(b), []byte("[")) {
		var list []string
		if err := json.Unmarshal(b, &list); err != nil {
			return err
		}
		*t = normalizeTypes(list)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*t = Type(s)
	return nil
}

func (t Type) MarshalJSON() ([]byte, error) {
	if strings.Contains(string(t), ",") {
		return json.Marshal(strings.Split(string(t), ","))
	}
	return json.Marshal(string(t))
}

func (t *Type) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.SequenceNode {
		var list []string
		if err := value.Decode(&list); err != nil {
			return err
		}
		*t = normalizeTypes(list)
		return nil
	}
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	*t = Type(s)
	return nil
}

// Schema is one node of a schema document. Boolean schemas (true/false) set
// Bool and nothing else; they impose no shape.
type Schema struct {
	Ref         string `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Type        Type   `json:"type,omitempty" yaml:"type,omitempty"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Format      string `json:"format,omitempty" yaml:"format,omitempty"`
	Default     any    `json:"default,omitempty" yaml:"default,omitempty"`
	Enum        []any  `json:"enum,omitempty" yaml:"enum,omitempty"`

	// Object
	Properties           *Properties `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required             []string    `json:"required,omitempty" yaml:"required,omitempty"`
	AdditionalProperties *Schema     `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`

	// Array
	Items    *Schema `json:"items,omitempty" yaml:"items,omitempty"`
	MinItems *int    `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems *int    `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`

	// Combinators are carried but never interpreted by projection.
	AnyOf []*Schema `json:"anyOf,omitempty" yaml:"anyOf,omitempty"`
	OneOf []*Schema `json:"oneOf,omitempty" yaml:"oneOf,omitempty"`
	AllOf []*Schema `json:"allOf,omitempty" yaml:"allOf,omitempty"`

	Definitions map[string]*Schema `json:"definitions,omitempty" yaml:"definitions,omitempty"`
	Defs        map[string]*Schema `json:"$defs,omitempty" yaml:"$defs,omitempty"`

	Bool *bool `json:"-" yaml:"-"`

	// keywords counts the members of the decoded schema object, including
	// keywords this struct does not model.
	keywords int
}

// HasProperties reports whether s declares at least one property.
func (s *Schema) HasProperties() bool { return s != nil && s.Properties.Len() > 0 }

// IsEmpty reports whether s carries no keyword at all. A decoded schema is
// judged by its source members, so unmodelled keywords such as "minimum"
// count. Boolean schemas are empty.
func (s *Schema) IsEmpty() bool {
	if s == nil || s.Bool != nil {
		return true
	}
	if s.keywords > 0 {
		return false
	}
	return s.Ref == "" && s.Type == "" && s.Title == "" && s.Description == "" &&
		s.Format == "" && s.Default == nil && len(s.Enum) == 0 &&
		s.Properties == nil && len(s.Required) == 0 && s.AdditionalProperties == nil &&
		s.Items == nil && s.MinItems == nil && s.MaxItems == nil &&
		len(s.AnyOf) == 0 && len(s.OneOf) == 0 && len(s.AllOf) == 0 &&
		len(s.Definitions) == 0 && len(s.Defs) == 0
}

// HasCombinator reports whether s uses anyOf, oneOf or allOf.
func (s *Schema) HasCombinator() bool {
	return s != nil && (len(s.AnyOf) > 0 || len(s.OneOf) > 0 || len(s.AllOf) > 0)
}

type plainSchema Schema

func (s *Schema) UnmarshalJSON(b []byte) error {
	switch string(bytes.TrimSpace(b)) {
	case "true", "false":
		v := string(bytes.TrimSpace(b)) == "true"
		*s = Schema{Bool: &v}
		return nil
	}
	var p plainSchema
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	var members map[string]json.RawMessage
	if err := json.Unmarshal(b, &members); err != nil {
		return err
	}
	*s = Schema(p)
	s.keywords = len(members)
	return nil
}

func (s *Schema) MarshalJSON() ([]byte, error) {
	if s.Bool != nil {
		return json.Marshal(*s.Bool)
	}
	return json.Marshal((*plainSchema)(s))
}

func (s *Schema) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode && value.Tag == "!!bool" {
		var v bool
		if err := value.Decode(&v); err != nil {
			return err
		}
		*s = Schema{Bool: &v}
		return nil
	}
	var p plainSchema
	if err := value.Decode(&p); err != nil {
		return err
	}
	*s = Schema(p)
	if value.Kind == yaml.MappingNode {
		s.keywords = len(value.Content) / 2
	}
	return nil
}
