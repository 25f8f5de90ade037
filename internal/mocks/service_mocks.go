package mocks

import (
	"context"

	"chartassist-api/internal/charts"
	"chartassist-api/internal/llm"
)

// MockChartService is a scriptable llm.ChartService for handler tests.
// Unset hooks fall back to empty results.
type MockChartService struct {
	ChartsConfigFunc  func() []charts.Descriptor
	ChooseChartsFunc  func(ctx context.Context, userPrompt string) (*llm.Selection, error)
	SuggestChartsFunc func(ctx context.Context, userPrompts []string) []llm.Suggestion
	MapSchemaFunc     func(ctx context.Context, userPrompt string, chosen []llm.ChartChoice, schema map[string]interface{}) (*llm.SchemaMapping, error)
	BuildQueriesFunc  func(ctx context.Context, datasetMetadata map[string]interface{}, suggestions []map[string]interface{}) (*llm.QueryPlan, error)
}

func (m *MockChartService) ChartsConfig() []charts.Descriptor {
	if m.ChartsConfigFunc != nil {
		return m.ChartsConfigFunc()
	}
	return []charts.Descriptor{}
}

func (m *MockChartService) ChooseCharts(ctx context.Context, userPrompt string) (*llm.Selection, error) {
	if m.ChooseChartsFunc != nil {
		return m.ChooseChartsFunc(ctx, userPrompt)
	}
	return &llm.Selection{ChosenCharts: []llm.ChartChoice{}}, nil
}

func (m *MockChartService) SuggestCharts(ctx context.Context, userPrompts []string) []llm.Suggestion {
	if m.SuggestChartsFunc != nil {
		return m.SuggestChartsFunc(ctx, userPrompts)
	}
	suggestions := make([]llm.Suggestion, len(userPrompts))
	for i, userPrompt := range userPrompts {
		suggestions[i] = llm.Suggestion{UserPrompt: userPrompt, ChosenCharts: []llm.ChartChoice{}}
	}
	return suggestions
}

func (m *MockChartService) MapSchema(ctx context.Context, userPrompt string, chosen []llm.ChartChoice, schema map[string]interface{}) (*llm.SchemaMapping, error) {
	if m.MapSchemaFunc != nil {
		return m.MapSchemaFunc(ctx, userPrompt, chosen, schema)
	}
	return &llm.SchemaMapping{Charts: []llm.MappedChart{}}, nil
}

func (m *MockChartService) BuildQueries(ctx context.Context, datasetMetadata map[string]interface{}, suggestions []map[string]interface{}) (*llm.QueryPlan, error) {
	if m.BuildQueriesFunc != nil {
		return m.BuildQueriesFunc(ctx, datasetMetadata, suggestions)
	}
	return llm.EmptyQueryPlan(), nil
}
