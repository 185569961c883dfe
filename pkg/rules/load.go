package rules

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/probelens-labs/probelens/pkg/dataset"
)

// Load reads and parses a rules file.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	set, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// Parse parses a YAML rules document. Structural problems - a
// non-mapping root, a non-mapping column entry, a row rule missing name
// or expr - are reported as ConfigError.
func Parse(data []byte) (*Set, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, configErrorf("invalid YAML: %v", err)
	}

	set := &Set{Columns: map[string]ColumnRule{}}
	if len(doc.Content) == 0 {
		// Empty document: no rules.
		return set, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return set, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, configErrorf("rules file must be a mapping at root")
	}

	for i := 0; i < len(root.Content); i += 2 {
		key := root.Content[i].Value
		value := root.Content[i+1]
		switch key {
		case "columns":
			if err := parseColumns(value, set); err != nil {
				return nil, err
			}
		case "unique_keys":
			if err := parseUniqueKeys(value, set); err != nil {
				return nil, err
			}
		case "row_rules":
			if err := parseRowRules(value, set); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}

// rawColumnRule mirrors the YAML shape of one column entry.
type rawColumnRule struct {
	Type      string   `yaml:"type"`
	Required  bool     `yaml:"required"`
	Min       *float64 `yaml:"min"`
	Max       *float64 `yaml:"max"`
	Regex     string   `yaml:"regex"`
	Allowed   []any    `yaml:"allowed"`
	NotFuture bool     `yaml:"not_future"`
}

func parseColumns(node *yaml.Node, set *Set) error {
	if isNullNode(node) {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return configErrorf("columns must be a mapping")
	}
	for i := 0; i < len(node.Content); i += 2 {
		name := node.Content[i].Value
		entry := node.Content[i+1]
		if entry.Kind != yaml.MappingNode {
			return configErrorf("column rule for %s must be a mapping", name)
		}
		var raw rawColumnRule
		if err := entry.Decode(&raw); err != nil {
			return configErrorf("column rule for %s: %v", name, err)
		}

		rule := ColumnRule{
			Type:      raw.Type,
			Required:  raw.Required,
			Min:       raw.Min,
			Max:       raw.Max,
			NotFuture: raw.NotFuture,
		}
		if raw.Regex != "" {
			// Patterns are anchored to match only at the start of
			// the value.
			re, err := regexp.Compile("^(?:" + raw.Regex + ")")
			if err != nil {
				return configErrorf("column rule for %s: invalid regex: %v", name, err)
			}
			rule.Pattern = re
		}
		for _, item := range raw.Allowed {
			rule.Allowed = append(rule.Allowed, scalarValue(item))
		}

		set.Columns[name] = rule
		set.columnOrder = append(set.columnOrder, name)
	}
	return nil
}

func parseUniqueKeys(node *yaml.Node, set *Set) error {
	if isNullNode(node) {
		return nil
	}
	if node.Kind != yaml.SequenceNode {
		return configErrorf("unique_keys must be a list")
	}
	for _, entry := range node.Content {
		switch entry.Kind {
		case yaml.SequenceNode:
			var cols []string
			for _, col := range entry.Content {
				cols = append(cols, col.Value)
			}
			set.UniqueKeys = append(set.UniqueKeys, cols)
		case yaml.ScalarNode:
			// A bare scalar is promoted to a single-column key.
			set.UniqueKeys = append(set.UniqueKeys, []string{entry.Value})
		default:
			return configErrorf("unique_keys entries must be column names or lists of column names")
		}
	}
	return nil
}

func parseRowRules(node *yaml.Node, set *Set) error {
	if isNullNode(node) {
		return nil
	}
	if node.Kind != yaml.SequenceNode {
		return configErrorf("row_rules must be a list")
	}
	for _, entry := range node.Content {
		var raw struct {
			Name string `yaml:"name"`
			Expr string `yaml:"expr"`
		}
		if entry.Kind != yaml.MappingNode || entry.Decode(&raw) != nil || raw.Name == "" || raw.Expr == "" {
			return configErrorf("each row_rule must include name and expr")
		}
		set.RowRules = append(set.RowRules, RowRule{Name: raw.Name, Expr: raw.Expr})
	}
	return nil
}

func isNullNode(node *yaml.Node) bool {
	return node == nil || (node.Kind == yaml.ScalarNode && node.Tag == "!!null")
}

// scalarValue converts a decoded YAML scalar to a cell value so allowed
// sets can match numbers numerically.
func scalarValue(v any) dataset.Value {
	switch t := v.(type) {
	case nil:
		return dataset.Null()
	case bool:
		return dataset.Bool(t)
	case int:
		return dataset.Number(float64(t))
	case int64:
		return dataset.Number(float64(t))
	case float64:
		return dataset.Number(t)
	case string:
		return dataset.Text(t)
	default:
		return dataset.Text(fmt.Sprint(t))
	}
}
