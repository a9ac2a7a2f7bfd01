package gemini

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/mikey/llm-scam-detector/internal/core"
)

// Client implements the completion port against Google Gemini.
type Client struct {
	client      *genai.Client
	modelName   string
	maxTokens   int
	temperature float32
	logger      *zap.Logger
}

// NewClient creates a Gemini-backed completion client.
func NewClient(
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
	logger *zap.Logger,
) (*Client, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Client{
		client:      client,
		modelName:   modelName,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger,
	}, nil
}

// Complete sends one generation request and returns the raw reply text.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string, opts *core.CompletionOptions) (string, error) {
	modelName := c.modelName
	maxTokens := c.maxTokens
	temperature := c.temperature
	if opts != nil {
		if opts.Model != "" {
			modelName = opts.Model
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

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(temperature)
	model.SetMaxOutputTokens(int32(maxTokens))
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	started := time.Now()
	resp, err := model.GenerateContent(ctx, genai.Text(userPrompt))
	if err != nil {
		return "", mapError(err)
	}
	c.logger.Debug("Gemini generation finished",
		zap.String("model", modelName),
		zap.Duration("elapsed", time.Since(started)))

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", &core.UpstreamError{Detail: "empty Gemini response"}
	}
	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}

func mapError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return &core.UpstreamError{StatusCode: gerr.Code, Detail: gerr.Message}
	}
	return &core.TransportError{Err: err}
}

// ModelName returns the configured model identifier.
func (c *Client) ModelName() string {
	return c.modelName
}

// Close closes the underlying API connection.
func (c *Client) Close() error {
	return c.client.Close()
}
