package config

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML accepts either a mapping of table number to entries, which
// keeps the declaration order of the mapping, or a list of {id, entries}.
func (t *Tables) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		tables := make(Tables, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			id, err := strconv.Atoi(key.Value)
			if err != nil {
				return fmt.Errorf("line %d: table number must be an integer, got %q", key.Line, key.Value)
			}
			var entries []EntryConfig
			if err := value.Decode(&entries); err != nil {
				return fmt.Errorf("line %d: table %d: %w", value.Line, id, err)
			}
			tables = append(tables, &TableConfig{ID: id, Entries: entries})
		}
		*t = tables
		return nil
	case yaml.SequenceNode:
		var tables []*TableConfig
		if err := node.Decode(&tables); err != nil {
			return err
		}
		*t = tables
		return nil
	default:
		return fmt.Errorf("line %d: tables must be a mapping of table number to entries", node.Line)
	}
}

// MarshalYAML writes tables back as an ordered mapping.
func (t Tables) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, table := range t {
		var entries yaml.Node
		if err := entries.Encode(table.Entries); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(table.ID)},
			&entries,
		)
	}
	return node, nil
}

// MarshalYAML writes an entry in flow style: [target, gateway].
func (e EntryConfig) MarshalYAML() (interface{}, error) {
	return flowSequence([]string(e))
}

func (s *ServerEntry) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*s = ServerEntry{Address: node.Value}
		return nil
	case yaml.SequenceNode:
		pair, err := decodePair(node)
		if err != nil {
			return err
		}
		*s = ServerEntry{Domain: pair[0], Address: pair[1]}
		return nil
	case yaml.MappingNode:
		type plain ServerEntry
		return node.Decode((*plain)(s))
	default:
		return fmt.Errorf("line %d: server must be an address or [domain, address]", node.Line)
	}
}

func (s ServerEntry) MarshalYAML() (interface{}, error) {
	if s.Domain == "" {
		return s.Address, nil
	}
	return flowSequence([]string{s.Domain, s.Address})
}

func (r *RecordEntry) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*r = RecordEntry{Raw: node.Value}
		return nil
	case yaml.SequenceNode:
		pair, err := decodePair(node)
		if err != nil {
			return err
		}
		*r = RecordEntry{Name: pair[0], Value: pair[1]}
		return nil
	case yaml.MappingNode:
		type plain RecordEntry
		return node.Decode((*plain)(r))
	default:
		return fmt.Errorf("line %d: record must be a string or [name, value]", node.Line)
	}
}

func (r RecordEntry) MarshalYAML() (interface{}, error) {
	if r.Raw != "" {
		return r.Raw, nil
	}
	return flowSequence([]string{r.Name, r.Value})
}

func decodePair(node *yaml.Node) ([2]string, error) {
	var values []string
	if err := node.Decode(&values); err != nil {
		return [2]string{}, err
	}
	if len(values) != 2 {
		return [2]string{}, fmt.Errorf("line %d: expected 2 elements, got %d", node.Line, len(values))
	}
	return [2]string{values[0], values[1]}, nil
}

func flowSequence(values []string) (*yaml.Node, error) {
	var node yaml.Node
	if err := node.Encode(values); err != nil {
		return nil, err
	}
	node.Style = yaml.FlowStyle
	return &node, nil
}
