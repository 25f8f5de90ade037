package llm

import (
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
)

// The validator interprets raw model text as a fixed JSON envelope. A strict
// decode is attempted first; if that fails the text is run through
// json-repair once (markdown fences, trailing commas, single quotes) and
// decoded again. Text that still does not yield an object with the expected
// envelope key is a MalformedOutputError carrying the raw text; the
// per-endpoint policy (hard error vs. empty fallback) lives in the service.

// ParseSelection decodes a {"chosen_charts": [...]} envelope.
func ParseSelection(raw string) (*Selection, error) {
	payload, err := envelopeValue(raw, "chosen_charts")
	if err != nil {
		return nil, NewMalformedOutputError("chart selection", raw, err)
	}

	var chosen []ChartChoice
	if err := json.Unmarshal(payload, &chosen); err != nil {
		return nil, NewMalformedOutputError("chart selection", raw, err)
	}
	if chosen == nil {
		chosen = []ChartChoice{}
	}

	return &Selection{ChosenCharts: chosen}, nil
}

// ParseSchemaMapping decodes a {"charts": [...]} envelope.
func ParseSchemaMapping(raw string) (*SchemaMapping, error) {
	payload, err := envelopeValue(raw, "charts")
	if err != nil {
		return nil, NewMalformedOutputError("schema mapping", raw, err)
	}

	var mapped []MappedChart
	if err := json.Unmarshal(payload, &mapped); err != nil {
		return nil, NewMalformedOutputError("schema mapping", raw, err)
	}
	if mapped == nil {
		mapped = []MappedChart{}
	}

	return &SchemaMapping{Charts: mapped}, nil
}

// ParseQueryPlan decodes an {"intent": ..., "charts": [...]} envelope. A
// missing intent defaults to "visualization".
func ParseQueryPlan(raw string) (*QueryPlan, error) {
	fields, err := envelopeFields(raw)
	if err != nil {
		return nil, NewMalformedOutputError("query building", raw, err)
	}

	payload, ok := fields["charts"]
	if !ok {
		return nil, NewMalformedOutputError("query building", raw, fmt.Errorf("missing %q key in envelope", "charts"))
	}

	var chartEntries []map[string]interface{}
	if err := json.Unmarshal(payload, &chartEntries); err != nil {
		return nil, NewMalformedOutputError("query building", raw, err)
	}
	if chartEntries == nil {
		chartEntries = []map[string]interface{}{}
	}

	intent := IntentVisualization
	if rawIntent, ok := fields["intent"]; ok {
		var decoded string
		if err := json.Unmarshal(rawIntent, &decoded); err == nil && decoded != "" {
			intent = decoded
		}
	}

	return &QueryPlan{Intent: intent, Charts: chartEntries}, nil
}

func envelopeValue(raw, key string) (json.RawMessage, error) {
	fields, err := envelopeFields(raw)
	if err != nil {
		return nil, err
	}

	payload, ok := fields[key]
	if !ok {
		return nil, fmt.Errorf("missing %q key in envelope", key)
	}
	return payload, nil
}

func envelopeFields(raw string) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	strictErr := json.Unmarshal([]byte(raw), &fields)
	if strictErr == nil {
		return fields, nil
	}

	repaired, err := jsonrepair.RepairJSON(raw)
	if err != nil {
		return nil, strictErr
	}
	if err := json.Unmarshal([]byte(repaired), &fields); err != nil {
		return nil, strictErr
	}
	return fields, nil
}
