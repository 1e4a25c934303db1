package rules

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ruleFile is the on-disk schema, shared by the JSON and YAML loaders:
//
//	{
//	  "fallback": "OTHER",
//	  "tags": {
//	    "SALES": {"keywords": ["buy", "pricing"]},
//	    "OTHER": {"keywords": []}
//	  }
//	}
//
// "fallback" is optional; a missing or empty "keywords" list is allowed.
type ruleFile struct {
	Fallback string             `json:"fallback" yaml:"fallback"`
	Tags     map[string]ruleTag `json:"tags" yaml:"tags"`
}

type ruleTag struct {
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// FromFile loads and validates a rule set from a JSON or YAML file, chosen
// by file extension (.yaml/.yml for YAML, anything else parses as JSON).
func FromFile(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file: %w", err)
	}

	var file ruleFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse rule file %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse rule file %s: %w", path, err)
		}
	}

	if len(file.Tags) == 0 {
		return nil, fmt.Errorf("rule file %s has no tags section: %w", path, ErrNoCategories)
	}

	categories := make(map[string][]string, len(file.Tags))
	for name, tag := range file.Tags {
		categories[name] = tag.Keywords
	}

	rs, err := New(categories, file.Fallback)
	if err != nil {
		return nil, fmt.Errorf("rule file %s: %w", path, err)
	}
	return rs, nil
}
