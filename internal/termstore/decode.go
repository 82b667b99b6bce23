package termstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-megamenu/pkg/taxonomy"
)

// document is the object form of a term-set payload. Bare arrays are accepted
// as well.
type document struct {
	ID    string              `json:"id,omitempty" yaml:"id,omitempty"`
	Name  string              `json:"name,omitempty" yaml:"name,omitempty"`
	Terms []taxonomy.TermNode `json:"terms" yaml:"terms"`
}

// Decode parses a term-set payload. The format is picked from the name's
// extension; anything other than .yaml/.yml is treated as JSON.
func Decode(name string, data []byte) ([]taxonomy.TermNode, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return decodeYAML(data)
	default:
		return decodeJSON(data)
	}
}

func decodeJSON(data []byte) ([]taxonomy.TermNode, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("termstore: empty document")
	}

	if trimmed[0] == '[' {
		var terms []taxonomy.TermNode
		if err := json.Unmarshal(trimmed, &terms); err != nil {
			return nil, fmt.Errorf("termstore: decode json: %w", err)
		}
		return terms, nil
	}

	var doc document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("termstore: decode json: %w", err)
	}
	return doc.Terms, nil
}

func decodeYAML(data []byte) ([]taxonomy.TermNode, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("termstore: decode yaml: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, errors.New("termstore: empty document")
	}

	node := root.Content[0]
	switch node.Kind {
	case yaml.SequenceNode:
		var terms []taxonomy.TermNode
		if err := node.Decode(&terms); err != nil {
			return nil, fmt.Errorf("termstore: decode yaml: %w", err)
		}
		return terms, nil
	case yaml.MappingNode:
		var doc document
		if err := node.Decode(&doc); err != nil {
			return nil, fmt.Errorf("termstore: decode yaml: %w", err)
		}
		return doc.Terms, nil
	default:
		return nil, fmt.Errorf("termstore: decode yaml: unexpected top-level node at line %d", node.Line)
	}
}
