package llm

// ChartChoice references one chart descriptor by name and optionally id.
// It is produced by the model and not cross-checked against the knowledge
// base; downstream consumers treat it as opaque.
type ChartChoice struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name"`
}

// Selection is the envelope the model returns for chart selection.
type Selection struct {
	ChosenCharts []ChartChoice `json:"chosen_charts"`
}

// Suggestion pairs one input prompt with its chart selection. The batch
// suggest operation returns one Suggestion per input prompt, in input order.
type Suggestion struct {
	UserPrompt   string        `json:"user_prompt"`
	ChosenCharts []ChartChoice `json:"chosen_charts"`
}

// MappedChart is the model's column-to-requirement assignment for one chart.
// Structure is open-ended since requirement sets vary per chart type; values
// may be column names, expressions, nested groupings, or null.
type MappedChart struct {
	Name      string                 `json:"name"`
	Structure map[string]interface{} `json:"structure"`
}

// SchemaMapping is the envelope the model returns for schema mapping.
type SchemaMapping struct {
	Charts []MappedChart `json:"charts"`
}

// IntentVisualization is the only intent the query-building envelope
// currently carries.
const IntentVisualization = "visualization"

// QueryPlan is the envelope the model returns for query building. Chart
// entries are open-ended maps; their shape is the model's to choose.
type QueryPlan struct {
	Intent string                   `json:"intent"`
	Charts []map[string]interface{} `json:"charts"`
}

// EmptyQueryPlan is the well-defined fallback used when the model's
// query-building output cannot be parsed.
func EmptyQueryPlan() *QueryPlan {
	return &QueryPlan{
		Intent: IntentVisualization,
		Charts: []map[string]interface{}{},
	}
}
