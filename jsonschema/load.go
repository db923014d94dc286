package jsonschema

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ErrCRDNotFound is returned by LoadCRD when no document matches.
var ErrCRDNotFound = errors.New("jsonschema: CRD kind not found in YAML bundle")

// Parse decodes a JSON schema document.
func Parse(data []byte) (*Schema, error) {
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("jsonschema: invalid JSON: %w", err)
	}
	return &s, nil
}

// ParseYAML decodes a YAML schema document.
func ParseYAML(data []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("jsonschema: invalid YAML: %w", err)
	}
	return &s, nil
}

// FromMap converts a loosely typed schema, such as one produced by a code
// generator, into a Schema. Map iteration has no order, so properties come
// out sorted by name.
func FromMap(m map[string]any) (*Schema, error) {
	if m == nil {
		return nil, errors.New("jsonschema: nil schema")
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("jsonschema: cannot marshal input: %w", err)
	}
	return Parse(b)
}

// LoadCRD scans a multi-document YAML bundle and returns the
// openAPIV3Schema of the first CustomResourceDefinition whose
// spec.names.kind equals kind. A served version is preferred; the legacy
// spec.validation location is used as a fallback.
func LoadCRD(bundle []byte, kind string) (*Schema, error) {
	dec := yaml.NewDecoder(bytes.NewReader(bundle))
	for {
		var doc yaml.Node
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("jsonschema: invalid YAML: %w", err)
		}
		root := &doc
		if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
			root = root.Content[0]
		}
		if scalarAt(root, "kind") != "CustomResourceDefinition" {
			continue
		}
		spec := mappingValue(root, "spec")
		if scalarAt(mappingValue(spec, "names"), "kind") != kind {
			continue
		}
		node := crdSchemaNode(spec)
		if node == nil {
			return nil, fmt.Errorf("jsonschema: CRD %s has no openAPIV3Schema", kind)
		}
		var s Schema
		if err := node.Decode(&s); err != nil {
			return nil, fmt.Errorf("jsonschema: CRD %s: %w", kind, err)
		}
		return &s, nil
	}
	return nil, ErrCRDNotFound
}

func crdSchemaNode(spec *yaml.Node) *yaml.Node {
	var firstFound *yaml.Node
	if vers := mappingValue(spec, "versions"); vers != nil && vers.Kind == yaml.SequenceNode {
		for _, v := range vers.Content {
			oas := mappingValue(mappingValue(v, "schema"), "openAPIV3Schema")
			if oas == nil {
				continue
			}
			if scalarAt(v, "served") != "false" {
				return oas
			}
			if firstFound == nil {
				firstFound = oas
			}
		}
	}
	if firstFound != nil {
		return firstFound
	}
	return mappingValue(mappingValue(spec, "validation"), "openAPIV3Schema")
}

func mappingValue(n *yaml.Node, key string) *yaml.Node {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

func scalarAt(n *yaml.Node, key string) string {
	v := mappingValue(n, key)
	if v == nil || v.Kind != yaml.ScalarNode {
		return ""
	}
	return v.Value
}
