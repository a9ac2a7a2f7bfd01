package openai

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/mikey/llm-scam-detector/internal/core"
)

// Client talks to any OpenAI-compatible chat-completion endpoint (OpenAI,
// LM Studio, Ollama, vLLM). One underlying HTTP connection pool is shared
// across calls; the client never retries.
type Client struct {
	api         *openai.Client
	httpClient  *http.Client
	modelName   string
	maxTokens   int
	temperature float32
	logger      *zap.Logger
}

// NewClient creates a client for the given endpoint. An empty baseURL targets
// the official OpenAI API; apiKey may be empty for local servers. timeout
// bounds every request unless a per-call override is given.
func NewClient(
	baseURL string,
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
	timeout time.Duration,
	logger *zap.Logger,
) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	httpClient := &http.Client{Timeout: timeout}
	cfg.HTTPClient = httpClient

	return &Client{
		api:         openai.NewClientWithConfig(cfg),
		httpClient:  httpClient,
		modelName:   modelName,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger,
	}
}

// Complete sends one chat completion request and returns the raw reply text.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string, opts *core.CompletionOptions) (string, error) {
	model := c.modelName
	maxTokens := c.maxTokens
	temperature := c.temperature
	if opts != nil {
		if opts.Model != "" {
			model = opts.Model
		}
		if opts.MaxTokens > 0 {
			maxTokens = opts.MaxTokens
		}
		if opts.Temperature != nil {
			temperature = *opts.Temperature
		}
		if opts.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
			defer cancel()
		}
	}

	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	started := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", mapError(err)
	}
	c.logger.Debug("Chat completion finished",
		zap.String("model", model),
		zap.Duration("elapsed", time.Since(started)))

	if len(resp.Choices) == 0 {
		return "", &core.UpstreamError{Detail: "no choices in completion response"}
	}
	return resp.Choices[0].Message.Content, nil
}

// mapError sorts upstream failures into the taxonomy: a status from the
// endpoint is an UpstreamError, anything that kept the request from
// completing is a TransportError.
func mapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &core.UpstreamError{StatusCode: apiErr.HTTPStatusCode, Detail: apiErr.Message}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.HTTPStatusCode > 0 {
			return &core.UpstreamError{StatusCode: reqErr.HTTPStatusCode, Detail: reqErr.Error()}
		}
	}
	return &core.TransportError{Err: err}
}

// ModelName returns the configured model identifier.
func (c *Client) ModelName() string {
	return c.modelName
}

// Close releases idle connections held by the shared pool.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
