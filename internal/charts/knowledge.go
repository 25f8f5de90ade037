package charts

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v2"
)

//go:embed charts.yaml
var knowledgeBaseYAML []byte

// Descriptor describes one chart type: what it is for and what data it needs.
// The JSON field names are the wire format served by GET /charts-config.
type Descriptor struct {
	ID               int                    `json:"id" yaml:"id"`
	Name             string                 `json:"name" yaml:"name"`
	Title            string                 `json:"title" yaml:"title"`
	Why              []string               `json:"why" yaml:"why"`
	UseCases         []string               `json:"use_cases" yaml:"use_cases"`
	DataRequirements map[string]interface{} `json:"data_requirements" yaml:"data_requirements"`
}

// MinimalDescriptor is the size-reduced projection embedded in selection
// prompts. Titles and data requirements are omitted to bound token usage.
type MinimalDescriptor struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Why      []string `json:"why"`
	UseCases []string `json:"use_cases"`
}

// KnowledgeBase is the immutable chart descriptor collection. It is loaded
// once at startup and read-only afterwards; callers must not modify the
// slices and maps it hands out.
type KnowledgeBase struct {
	descriptors  []Descriptor
	requirements map[string]map[string]interface{}
}

type knowledgeBaseFile struct {
	Charts []Descriptor `yaml:"charts"`
}

// Load parses the embedded knowledge base and builds the derived indexes.
func Load() (*KnowledgeBase, error) {
	var file knowledgeBaseFile
	if err := yaml.Unmarshal(knowledgeBaseYAML, &file); err != nil {
		return nil, fmt.Errorf("failed to parse chart knowledge base: %w", err)
	}
	if len(file.Charts) == 0 {
		return nil, fmt.Errorf("chart knowledge base is empty")
	}

	seenIDs := make(map[int]bool, len(file.Charts))
	seenNames := make(map[string]bool, len(file.Charts))
	requirements := make(map[string]map[string]interface{}, len(file.Charts))

	for i := range file.Charts {
		chart := &file.Charts[i]
		if chart.Name == "" {
			return nil, fmt.Errorf("chart descriptor %d has no name", i)
		}
		if seenNames[chart.Name] {
			return nil, fmt.Errorf("duplicate chart name %q", chart.Name)
		}
		if seenIDs[chart.ID] {
			return nil, fmt.Errorf("duplicate chart id %d (%s)", chart.ID, chart.Name)
		}
		seenNames[chart.Name] = true
		seenIDs[chart.ID] = true

		// yaml.v2 decodes nested mappings as map[interface{}]interface{},
		// which encoding/json refuses to marshal.
		chart.DataRequirements = normalizeMap(chart.DataRequirements)
		requirements[chart.Name] = chart.DataRequirements
	}

	return &KnowledgeBase{
		descriptors:  file.Charts,
		requirements: requirements,
	}, nil
}

// Descriptors returns the full descriptor collection in authored order.
func (kb *KnowledgeBase) Descriptors() []Descriptor {
	return kb.descriptors
}

// Minimal returns the reduced projection used by selection prompts.
func (kb *KnowledgeBase) Minimal() []MinimalDescriptor {
	minimal := make([]MinimalDescriptor, len(kb.descriptors))
	for i, chart := range kb.descriptors {
		minimal[i] = MinimalDescriptor{
			ID:       chart.ID,
			Name:     chart.Name,
			Why:      chart.Why,
			UseCases: chart.UseCases,
		}
	}
	return minimal
}

// Requirements returns the chart name → data requirements index embedded in
// mapping and query-building prompts.
func (kb *KnowledgeBase) Requirements() map[string]map[string]interface{} {
	return kb.requirements
}

// Count returns the number of chart descriptors.
func (kb *KnowledgeBase) Count() int {
	return len(kb.descriptors)
}

func normalizeMap(m map[string]interface{}) map[string]interface{} {
	normalized := make(map[string]interface{}, len(m))
	for k, v := range m {
		normalized[k] = normalizeValue(v)
	}
	return normalized
}

func normalizeValue(v interface{}) interface{} {
	switch value := v.(type) {
	case map[interface{}]interface{}:
		normalized := make(map[string]interface{}, len(value))
		for k, nested := range value {
			normalized[fmt.Sprintf("%v", k)] = normalizeValue(nested)
		}
		return normalized
	case []interface{}:
		normalized := make([]interface{}, len(value))
		for i, item := range value {
			normalized[i] = normalizeValue(item)
		}
		return normalized
	default:
		return v
	}
}
