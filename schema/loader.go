package schema

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseTables decodes a table config document. YAML and JSON are both accepted.
//
// Each table is either a mapping of alias to field name with a reserved
// "identifier" entry:
//
//	users:
//	  identifier: id
//	  id: id
//	  name: name
//	  email: email
//
// or the explicit form:
//
//	users:
//	  identifier: id
//	  fields: [name, email]
func ParseTables(data []byte) (TableConfig, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrInvalidTableConfig, err)
	}

	cfg := make(TableConfig)
	if len(doc.Content) == 0 {
		return cfg, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must be a mapping", ErrInvalidTableConfig)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		table, err := parseTable(root.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("%w: table %q: %w", ErrInvalidTableConfig, key, err)
		}
		cfg[key] = table
	}

	return cfg, nil
}

func parseTable(node *yaml.Node) (Table, error) {
	if node.Kind != yaml.MappingNode {
		return Table{}, errors.New("table definition must be a mapping")
	}

	var t Table
	seen := make(map[string]struct{})
	add := func(field string) {
		if field == "" {
			return
		}
		if _, ok := seen[field]; ok {
			return
		}
		seen[field] = struct{}{}
		t.Fields = append(t.Fields, field)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i].Value, node.Content[i+1]
		switch {
		case key == IdentifierKey:
			if val.Kind != yaml.ScalarNode {
				return Table{}, errors.New("identifier must be a scalar")
			}
			t.Identifier = strings.TrimSpace(val.Value)
		case key == "fields" && val.Kind == yaml.SequenceNode:
			for _, item := range val.Content {
				if item.Kind != yaml.ScalarNode {
					return Table{}, errors.New("fields must be a list of names")
				}
				add(strings.TrimSpace(item.Value))
			}
		case val.Kind == yaml.ScalarNode:
			add(strings.TrimSpace(val.Value))
		default:
			return Table{}, fmt.Errorf("field %q must map to a field name", key)
		}
	}

	if t.Identifier == "" {
		return Table{}, ErrMissingIdentifier
	}
	return t, nil
}

// LoadTablesFile reads and parses a table config file.
func LoadTablesFile(path string) (TableConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadConfigFile, err)
	}
	return ParseTables(data)
}

type rawCondition struct {
	Type     string        `yaml:"type"`
	Field    string        `yaml:"field"`
	Operator string        `yaml:"operator"`
	Queue    *string       `yaml:"queue"`
	If       *rawCondition `yaml:"if"`
	Then     *rawCondition `yaml:"then"`
	Else     *rawCondition `yaml:"else"`
}

type rawHandlerConfig struct {
	SearchQueue string `yaml:"searchqueue"`
	Lookup      struct {
		Conditions map[string]rawCondition `yaml:"conditions"`
	} `yaml:"lookup"`
}

// ParseHandlerConfig decodes and validates a handler config document.
//
//	searchqueue: q
//	lookup:
//	  conditions:
//	    name:
//	      field: name
//	    contact:
//	      type: conditionalFallback
//	      if: {field: email, operator: present}
//	      then: {field: email}
//	      else: {field: phone, operator: prefix}
func ParseHandlerConfig(data []byte) (HandlerConfig, error) {
	var raw rawHandlerConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return HandlerConfig{}, errors.Join(ErrInvalidHandlerConfig, err)
	}

	cfg := HandlerConfig{SearchQueue: strings.TrimSpace(raw.SearchQueue)}
	if len(raw.Lookup.Conditions) == 0 {
		return cfg, nil
	}

	cfg.Lookup.Conditions = make(Conditions, len(raw.Lookup.Conditions))
	for name, rc := range raw.Lookup.Conditions {
		cond, err := rc.build()
		if err != nil {
			return HandlerConfig{}, fmt.Errorf("%w: condition %q: %w", ErrInvalidHandlerConfig, name, err)
		}
		cfg.Lookup.Conditions[name] = cond
	}
	return cfg, nil
}

// LoadHandlerConfigFile reads and parses a handler config file.
func LoadHandlerConfigFile(path string) (HandlerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return HandlerConfig{}, errors.Join(ErrFailedToReadConfigFile, err)
	}
	return ParseHandlerConfig(data)
}

func (rc rawCondition) build() (Condition, error) {
	switch ConditionType(rc.Type) {
	case "", TypeSimple:
		if rc.If != nil || rc.Then != nil || rc.Else != nil {
			return nil, fmt.Errorf("%w: if/then/else require type %q", ErrInvalidCondition, TypeConditionalFallback)
		}
		return rc.simple()
	case TypeConditionalFallback:
		if rc.Then == nil || rc.Else == nil {
			return nil, fmt.Errorf("%w: %s requires then and else", ErrInvalidCondition, TypeConditionalFallback)
		}
		var fc FallbackCondition
		var err error
		if rc.If != nil {
			if fc.If, err = rc.If.simple(); err != nil {
				return nil, fmt.Errorf("if: %w", err)
			}
		}
		if fc.Then, err = rc.Then.simple(); err != nil {
			return nil, fmt.Errorf("then: %w", err)
		}
		if fc.Else, err = rc.Else.simple(); err != nil {
			return nil, fmt.Errorf("else: %w", err)
		}
		return fc, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownConditionType, rc.Type)
	}
}

func (rc rawCondition) simple() (SimpleCondition, error) {
	if rc.Type != "" && ConditionType(rc.Type) != TypeSimple {
		return SimpleCondition{}, fmt.Errorf("%w: nested condition cannot be %q", ErrInvalidCondition, rc.Type)
	}
	field := strings.TrimSpace(rc.Field)
	if field == "" {
		return SimpleCondition{}, fmt.Errorf("%w: field is required", ErrInvalidCondition)
	}
	op := Operator(strings.TrimSpace(rc.Operator))
	if op == "" {
		op = OperatorLike
	}
	if !op.valid() {
		return SimpleCondition{}, fmt.Errorf("%w: unknown operator %q", ErrInvalidCondition, rc.Operator)
	}
	return SimpleCondition{Field: field, Operator: op, Queue: rc.Queue}, nil
}
