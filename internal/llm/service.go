package llm

import (
	"context"
	"sync"

	"chartassist-api/internal/charts"

	"go.uber.org/zap"
)

// ChartService exposes the chart assistant operations. Each operation is one
// completion round trip (one per item for SuggestCharts); the knowledge base
// is the only shared state and it is read-only.
type ChartService interface {
	// ChartsConfig returns the full knowledge base.
	ChartsConfig() []charts.Descriptor

	// ChooseCharts asks the model which chart types are relevant to the
	// prompt. Malformed model output is an error.
	ChooseCharts(ctx context.Context, userPrompt string) (*Selection, error)

	// SuggestCharts runs chart selection for each prompt. A failed item
	// degrades to an empty selection; the result order matches the input
	// order and the call itself never fails.
	SuggestCharts(ctx context.Context, userPrompts []string) []Suggestion

	// MapSchema asks the model to map dataset columns onto the chosen
	// charts' data requirements. Malformed model output is an error.
	MapSchema(ctx context.Context, userPrompt string, chosen []ChartChoice, schema map[string]interface{}) (*SchemaMapping, error)

	// BuildQueries asks the model to turn suggestions into query/encoding
	// specs. Malformed model output degrades to an empty plan; gateway
	// failures still surface as errors.
	BuildQueries(ctx context.Context, datasetMetadata map[string]interface{}, suggestions []map[string]interface{}) (*QueryPlan, error)
}

type chartService struct {
	logger   *zap.Logger
	provider CompletionProvider
	kb       *charts.KnowledgeBase
}

// NewChartService creates a ChartService backed by the given completion
// provider and knowledge base.
func NewChartService(logger *zap.Logger, provider CompletionProvider, kb *charts.KnowledgeBase) ChartService {
	return &chartService{
		logger:   logger,
		provider: provider,
		kb:       kb,
	}
}

func (s *chartService) ChartsConfig() []charts.Descriptor {
	return s.kb.Descriptors()
}

func (s *chartService) ChooseCharts(ctx context.Context, userPrompt string) (*Selection, error) {
	s.logger.Info("Choosing charts", zap.String("user_prompt", userPrompt))

	messages, err := SelectionMessages(userPrompt, s.kb.Minimal())
	if err != nil {
		return nil, err
	}

	raw, err := s.provider.Complete(ctx, messages)
	if err != nil {
		s.logger.Error("Completion call failed", zap.Error(err))
		return nil, err
	}

	selection, err := ParseSelection(raw)
	if err != nil {
		s.logger.Error("Model output was not a valid selection envelope",
			zap.String("raw_output", raw))
		return nil, err
	}

	s.logger.Info("Charts chosen", zap.Int("count", len(selection.ChosenCharts)))
	return selection, nil
}

func (s *chartService) SuggestCharts(ctx context.Context, userPrompts []string) []Suggestion {
	s.logger.Info("Suggesting charts", zap.Int("prompt_count", len(userPrompts)))

	suggestions := make([]Suggestion, len(userPrompts))

	var wg sync.WaitGroup
	for i, userPrompt := range userPrompts {
		wg.Add(1)
		go func(i int, userPrompt string) {
			defer wg.Done()
			suggestions[i] = Suggestion{
				UserPrompt:   userPrompt,
				ChosenCharts: s.suggestOne(ctx, userPrompt),
			}
		}(i, userPrompt)
	}
	wg.Wait()

	return suggestions
}

// suggestOne runs one selection round trip. Any failure degrades to an empty
// selection so one bad item does not abort the whole batch.
func (s *chartService) suggestOne(ctx context.Context, userPrompt string) []ChartChoice {
	messages, err := SelectionMessages(userPrompt, s.kb.Minimal())
	if err != nil {
		s.logger.Warn("Failed to build selection prompt, degrading to empty selection",
			zap.String("user_prompt", userPrompt), zap.Error(err))
		return []ChartChoice{}
	}

	raw, err := s.provider.Complete(ctx, messages)
	if err != nil {
		s.logger.Warn("Completion call failed, degrading to empty selection",
			zap.String("user_prompt", userPrompt), zap.Error(err))
		return []ChartChoice{}
	}

	selection, err := ParseSelection(raw)
	if err != nil {
		s.logger.Warn("Model output unparseable, degrading to empty selection",
			zap.String("user_prompt", userPrompt), zap.String("raw_output", raw))
		return []ChartChoice{}
	}

	return selection.ChosenCharts
}

func (s *chartService) MapSchema(ctx context.Context, userPrompt string, chosen []ChartChoice, schema map[string]interface{}) (*SchemaMapping, error) {
	s.logger.Info("Mapping schema to charts",
		zap.String("user_prompt", userPrompt),
		zap.Int("chosen_count", len(chosen)))

	messages, err := MappingMessages(userPrompt, chosen, schema, s.kb.Requirements())
	if err != nil {
		return nil, err
	}

	raw, err := s.provider.Complete(ctx, messages)
	if err != nil {
		s.logger.Error("Completion call failed", zap.Error(err))
		return nil, err
	}

	mapping, err := ParseSchemaMapping(raw)
	if err != nil {
		s.logger.Error("Model output was not a valid mapping envelope",
			zap.String("raw_output", raw))
		return nil, err
	}

	return mapping, nil
}

func (s *chartService) BuildQueries(ctx context.Context, datasetMetadata map[string]interface{}, suggestions []map[string]interface{}) (*QueryPlan, error) {
	s.logger.Info("Building queries", zap.Int("suggestion_count", len(suggestions)))

	messages, err := QueryMessages(datasetMetadata, suggestions, s.kb.Requirements())
	if err != nil {
		return nil, err
	}

	raw, err := s.provider.Complete(ctx, messages)
	if err != nil {
		s.logger.Error("Completion call failed", zap.Error(err))
		return nil, err
	}

	plan, err := ParseQueryPlan(raw)
	if err != nil {
		// Downstream chart rendering skips an empty plan, so an
		// unparseable answer degrades instead of erroring.
		s.logger.Warn("Model output unparseable, degrading to empty query plan",
			zap.String("raw_output", raw))
		return EmptyQueryPlan(), nil
	}

	return plan, nil
}
