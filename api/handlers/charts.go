package handlers

import (
	"net/http"

	"chartassist-api/internal/llm"
	"chartassist-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ChartsHandler serves the chart assistant endpoints.
type ChartsHandler struct {
	service llm.ChartService
	logger  *logger.Logger
}

// NewChartsHandler creates a new ChartsHandler instance.
func NewChartsHandler(service llm.ChartService, logger *logger.Logger) *ChartsHandler {
	return &ChartsHandler{
		service: service,
		logger:  logger,
	}
}

// ChooseChartsRequest is the body for POST /choose-charts.
type ChooseChartsRequest struct {
	UserPrompt string `json:"user_prompt" binding:"required"`
}

// SuggestChartsRequest is the body for POST /suggest-charts.
type SuggestChartsRequest struct {
	UserPrompts []string `json:"user_prompts" binding:"required"`
}

// SuggestChartsResponse wraps the per-prompt suggestions.
type SuggestChartsResponse struct {
	Suggestions []llm.Suggestion `json:"suggestions"`
}

// MapSchemaRequest is the body for POST /map-schema.
type MapSchemaRequest struct {
	UserPrompt       string                 `json:"user_prompt" binding:"required"`
	ChosenCharts     []llm.ChartChoice      `json:"chosen_charts" binding:"required"`
	SchemaDefinition map[string]interface{} `json:"schema_definition" binding:"required"`
}

// BuildQueriesRequest is the body for POST /build-queries.
type BuildQueriesRequest struct {
	DatasetMetadata map[string]interface{}   `json:"dataset_metadata" binding:"required"`
	Suggestions     []map[string]interface{} `json:"suggestions" binding:"required"`
}

// GetChartsConfig returns the full chart knowledge base.
func (h *ChartsHandler) GetChartsConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.ChartsConfig())
}

// ChooseCharts suggests relevant chart types for one prompt.
func (h *ChartsHandler) ChooseCharts(c *gin.Context) {
	var request ChooseChartsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.logger.Error("Invalid choose-charts request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	selection, err := h.service.ChooseCharts(c.Request.Context(), request.UserPrompt)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, selection)
}

// SuggestCharts runs chart selection for a batch of prompts. Individual
// failures degrade to empty selections, so this always returns 200 with one
// entry per input prompt.
func (h *ChartsHandler) SuggestCharts(c *gin.Context) {
	var request SuggestChartsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.logger.Error("Invalid suggest-charts request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	suggestions := h.service.SuggestCharts(c.Request.Context(), request.UserPrompts)
	c.JSON(http.StatusOK, SuggestChartsResponse{Suggestions: suggestions})
}

// MapSchema maps dataset columns onto the chosen charts' data requirements.
func (h *ChartsHandler) MapSchema(c *gin.Context) {
	var request MapSchemaRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.logger.Error("Invalid map-schema request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	mapping, err := h.service.MapSchema(c.Request.Context(), request.UserPrompt, request.ChosenCharts, request.SchemaDefinition)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapping)
}

// BuildQueries turns chart suggestions into query/encoding specs. An
// unparseable model answer degrades to an empty plan inside the service, so
// only gateway failures surface as errors here.
func (h *ChartsHandler) BuildQueries(c *gin.Context) {
	var request BuildQueriesRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.logger.Error("Invalid build-queries request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	plan, err := h.service.BuildQueries(c.Request.Context(), request.DatasetMetadata, request.Suggestions)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

// renderError translates service failures into HTTP 500 responses. Malformed
// model output carries the raw text in the details so callers can diagnose
// what the model actually said.
func (h *ChartsHandler) renderError(c *gin.Context, err error) {
	if malformed, ok := llm.AsMalformedOutput(err); ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "completion API returned non-JSON response",
			"details": malformed.RawOutput,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "error calling completion API",
		"details": err.Error(),
	})
}
