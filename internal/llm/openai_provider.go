package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"chartassist-api/internal/config"

	"go.uber.org/zap"
)

// OpenAIProvider implements CompletionProvider against any OpenAI-compatible
// chat-completions endpoint (OpenAI, OpenRouter, local gateways).
type OpenAIProvider struct {
	config     config.LLMConfig
	logger     *zap.Logger
	httpClient *http.Client
}

type chatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type chatCompletionResponse struct {
	Choices []chatCompletionChoice `json:"choices"`
	Error   *providerError         `json:"error,omitempty"`
}

type chatCompletionChoice struct {
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

type providerError struct {
	Code    interface{} `json:"code"`
	Message string      `json:"message"`
	Type    string      `json:"type"`
}

// NewOpenAIProvider creates a provider with a request timeout taken from
// config.
func NewOpenAIProvider(cfg config.LLMConfig, logger *zap.Logger) *OpenAIProvider {
	return &OpenAIProvider{
		config: cfg,
		logger: logger,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// Complete implements CompletionProvider. Temperature is fixed at 0 so the
// sampling is deterministic; there is exactly one request per call.
func (p *OpenAIProvider) Complete(ctx context.Context, messages []Message) (string, error) {
	if p.config.APIKey == "" {
		return "", NewConfigurationError("api_key", "completion API key is required")
	}

	request := chatCompletionRequest{
		Model:       p.config.Model,
		Messages:    messages,
		Temperature: 0,
	}

	requestBody, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion request: %w", err)
	}

	url := strings.TrimSuffix(p.config.BaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(requestBody))
	if err != nil {
		return "", NewNetworkError("create_request", "failed to create HTTP request", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.config.APIKey)

	httpResp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", NewNetworkError("http_request", "failed to reach completion API", err)
	}
	defer httpResp.Body.Close()

	responseBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", NewNetworkError("read_response", "failed to read response body", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return "", p.handleHTTPError(httpResp.StatusCode, responseBody)
	}

	var response chatCompletionResponse
	if err := json.Unmarshal(responseBody, &response); err != nil {
		return "", NewAPIError(httpResp.StatusCode, "INVALID_RESPONSE", "completion API returned unparseable body")
	}

	if response.Error != nil {
		return "", NewAPIError(httpResp.StatusCode, response.Error.Type, response.Error.Message)
	}

	if len(response.Choices) == 0 {
		return "", NewAPIError(httpResp.StatusCode, "EMPTY_CHOICES", "completion API returned no choices")
	}

	content := response.Choices[0].Message.Content
	p.logger.Debug("Completion received",
		zap.String("model", p.config.Model),
		zap.String("finish_reason", response.Choices[0].FinishReason),
		zap.Int("content_length", len(content)))

	return content, nil
}

// ModelInfo implements CompletionProvider.
func (p *OpenAIProvider) ModelInfo() ModelInfo {
	return ModelInfo{
		Name:    p.config.Model,
		BaseURL: p.config.BaseURL,
	}
}

func (p *OpenAIProvider) handleHTTPError(statusCode int, responseBody []byte) error {
	message := string(responseBody)
	status := ""

	var response chatCompletionResponse
	if err := json.Unmarshal(responseBody, &response); err == nil && response.Error != nil {
		message = response.Error.Message
		status = response.Error.Type
	}

	switch statusCode {
	case http.StatusUnauthorized:
		return NewAPIError(statusCode, "INVALID_API_KEY", message)
	case http.StatusForbidden:
		return NewAPIError(statusCode, "INSUFFICIENT_QUOTA", message)
	case http.StatusNotFound:
		return NewAPIError(statusCode, "MODEL_NOT_FOUND", message)
	case http.StatusTooManyRequests:
		return NewAPIError(statusCode, "RATE_LIMIT_EXCEEDED", message)
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return NewAPIError(statusCode, "SERVICE_UNAVAILABLE", message)
	default:
		return NewAPIError(statusCode, status, message)
	}
}
