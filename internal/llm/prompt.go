package llm

import (
	"encoding/json"
	"fmt"

	"chartassist-api/internal/charts"
)

// Prompt construction is pure: identical inputs always produce identical
// message text, so every completion call is reproducible independent of the
// model. Map-valued inputs are marshalled with encoding/json, which emits
// object keys in sorted order.

const selectionSystemPrompt = `You are a data visualization assistant.
You are given a list of chart configurations (with id, name, why, and use_cases).
Your task is:
1. Read the user request carefully.
2. Compare it with the provided chart configurations.
3. You must choose ALL charts that are relevant to the user's request, not just the most obvious one.
4. If no chart is relevant, return {"chosen_charts": []}.
5. Return ONLY the chosen charts as JSON in this format:

{
  "chosen_charts": [
    {
      "id": <chart_id>,
      "name": "<chart_name>"
    }
  ]
}

Return JSON ONLY. No extra text, no markdown, no explanations.`

const mappingSystemPrompt = `Your task:
- For each chart, suggest the best mapping of schema columns to the chart's data requirements.
- Use the user's request to understand what columns matter (e.g., "sales by region" -> x_axis=region, y_axis=SUM(sales)).
- Infer derived metrics from the request if needed (e.g., "profit margin" -> profit/sales, "GDP per capita" -> gdp/population, "average sales" -> AVG(sales)).
- Fill missing numeric axes with sensible aggregations (COUNT, SUM, AVG) if the user implicitly asks for summaries.
- Include optional fields (color, size, labels, series) if a suitable column exists in the schema to enrich the visualization.
- For charts with multiple metrics, suggest series as structured objects: {"name": "<metric_name>", "metric": "<column or expression>"}.
- Handle time-based columns smartly: infer month, quarter, year, or week if the user mentions a trend.
- Only assign schema columns that exist in the dataset.
- If no suitable column is found for a requirement, set it to null.
- Some charts may not need x/y axes (e.g., pie, radar, word cloud, treemap). In those cases, fill only the relevant requirements; optional fields may be added if useful.
- Avoid generic nulls for optional enrichment fields if a categorical column exists; use the first suitable column.
- Return ONLY JSON in this format:

{
  "charts": [
    {
      "name": "<chart_name>",
      "structure": {
        "<requirement_1>": "<column_name, expression, or null>",
        "<requirement_2>": "<column_name, expression, or null>",
        "<requirement_3>": "<column_name, expression, or null>",
        "optional": {
          "color": "<column_name or null>",
          "size": "<column_name or null>",
          "labels": "<column_name or null>",
          "series": [{"name": "<metric_name>", "metric": "<column or expression>"}]
        }
      }
    }
  ]
}`

const querySystemPrompt = `You are a data visualization assistant that turns chart suggestions into query and encoding specs.
Your task:
- For each suggestion, build one chart entry describing the query to run and the visual encoding to use.
- Use the suggestion's user prompt to understand which columns matter; prefer exact column matches from the dataset metadata.
- Fill missing numeric fields with sensible aggregations (COUNT, SUM, AVG) when the prompt implies a summary.
- Support derived metrics as expressions (ratios, per-capita, margins) when the prompt asks for them.
- If the prompt implies a trend, infer a time grain (day, week, month, quarter, year) for the time column.
- Only reference columns that are actually present in the dataset metadata.
- If no suitable column exists for a field, set it to null.
- Proportion and hierarchy charts may not need axis fields; populate only the requirements that apply.
- Return ONLY JSON in this format:

{
  "intent": "visualization",
  "charts": [
    {
      "user_prompt": "<the suggestion's prompt>",
      "chart_id": <chart_id or null>,
      "chart_type": "<chart_name>",
      "query": {
        "<field>": "<column_name, expression, or null>"
      },
      "encoding": {
        "<channel>": "<column_name or null>"
      }
    }
  ]
}

Return JSON ONLY. No extra text, no markdown, no explanations.`

type mappingPayload struct {
	UserRequest       string                            `json:"user_request"`
	Schema            map[string]interface{}            `json:"schema"`
	ChosenCharts      []ChartChoice                     `json:"chosen_charts"`
	ChartRequirements map[string]map[string]interface{} `json:"chart_requirements"`
}

type queryPayload struct {
	DatasetMetadata   map[string]interface{}            `json:"dataset_metadata"`
	Suggestions       []map[string]interface{}          `json:"suggestions"`
	ChartRequirements map[string]map[string]interface{} `json:"chart_requirements"`
}

// SelectionMessages builds the prompt pair asking the model to pick every
// relevant chart for one user prompt.
func SelectionMessages(userPrompt string, minimal []charts.MinimalDescriptor) ([]Message, error) {
	configJSON, err := json.Marshal(minimal)
	if err != nil {
		return nil, fmt.Errorf("failed to encode chart config: %w", err)
	}

	return []Message{
		{Role: RoleSystem, Content: selectionSystemPrompt},
		{Role: RoleUser, Content: fmt.Sprintf("User request: %s\n\nCharts config: %s", userPrompt, configJSON)},
	}, nil
}

// MappingMessages builds the prompt pair asking the model to map dataset
// columns onto the chosen charts' data requirements.
func MappingMessages(userPrompt string, chosen []ChartChoice, schema map[string]interface{}, requirements map[string]map[string]interface{}) ([]Message, error) {
	payload := mappingPayload{
		UserRequest:       userPrompt,
		Schema:            schema,
		ChosenCharts:      chosen,
		ChartRequirements: requirements,
	}

	payloadJSON, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode mapping payload: %w", err)
	}

	return []Message{
		{Role: RoleSystem, Content: mappingSystemPrompt},
		{Role: RoleUser, Content: string(payloadJSON)},
	}, nil
}

// QueryMessages builds the prompt pair asking the model to turn chart
// suggestions into query/encoding specs against free-form dataset metadata.
func QueryMessages(datasetMetadata map[string]interface{}, suggestions []map[string]interface{}, requirements map[string]map[string]interface{}) ([]Message, error) {
	payload := queryPayload{
		DatasetMetadata:   datasetMetadata,
		Suggestions:       suggestions,
		ChartRequirements: requirements,
	}

	payloadJSON, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode query payload: %w", err)
	}

	return []Message{
		{Role: RoleSystem, Content: querySystemPrompt},
		{Role: RoleUser, Content: string(payloadJSON)},
	}, nil
}
