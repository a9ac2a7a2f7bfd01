package bedrock

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/mikey/llm-scam-detector/internal/core"
)

// Client implements the completion port against Amazon Bedrock. The request
// payload shape depends on the model family.
type Client struct {
	api         *bedrockruntime.Client
	modelID     string
	maxTokens   int
	temperature float32
	logger      *zap.Logger
}

// NewClient creates a Bedrock-backed completion client.
func NewClient(
	api *bedrockruntime.Client,
	modelID string,
	maxTokens int,
	temperature float32,
	logger *zap.Logger,
) *Client {
	return &Client{
		api:         api,
		modelID:     modelID,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger,
	}
}

// Complete invokes the model once and returns the raw reply text.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string, opts *core.CompletionOptions) (string, error) {
	modelID := c.modelID
	maxTokens := c.maxTokens
	temperature := c.temperature
	if opts != nil {
		if opts.Model != "" {
			modelID = opts.Model
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

	prompt := systemPrompt + "\n\n" + userPrompt

	var payload []byte
	var err error
	switch {
	case isAnthropicModel(modelID):
		payload, err = json.Marshal(map[string]any{
			"prompt":               "\n\nHuman: " + prompt + "\n\nAssistant:",
			"max_tokens_to_sample": maxTokens,
			"temperature":          temperature,
		})
	case isAmazonTitanModel(modelID):
		payload, err = json.Marshal(map[string]any{
			"inputText": prompt,
			"textGenerationConfig": map[string]any{
				"maxTokenCount": maxTokens,
				"temperature":   temperature,
			},
		})
	default:
		payload, err = json.Marshal(map[string]any{
			"prompt":      prompt,
			"max_tokens":  maxTokens,
			"temperature": temperature,
		})
	}
	if err != nil {
		return "", &core.TransportError{Err: err}
	}

	started := time.Now()
	resp, err := c.api.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     &modelID,
		Body:        payload,
		Accept:      aws.String("application/json"),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", mapError(err)
	}
	c.logger.Debug("Bedrock invocation finished",
		zap.String("model_id", modelID),
		zap.Duration("elapsed", time.Since(started)))

	return extractText(modelID, resp.Body)
}

// extractText pulls the reply text out of the model-family-specific envelope.
func extractText(modelID string, body []byte) (string, error) {
	switch {
	case isAnthropicModel(modelID):
		var out struct {
			Completion string `json:"completion"`
		}
		if err := json.Unmarshal(body, &out); err != nil {
			return "", &core.UpstreamError{Detail: "unreadable Claude response envelope"}
		}
		return out.Completion, nil
	case isAmazonTitanModel(modelID):
		var out struct {
			Results []struct {
				OutputText string `json:"outputText"`
			} `json:"results"`
		}
		if err := json.Unmarshal(body, &out); err != nil {
			return "", &core.UpstreamError{Detail: "unreadable Titan response envelope"}
		}
		if len(out.Results) == 0 {
			return "", &core.UpstreamError{Detail: "empty Titan response"}
		}
		return out.Results[0].OutputText, nil
	default:
		var out struct {
			Output   string `json:"output"`
			Text     string `json:"text"`
			Response string `json:"response"`
		}
		if err := json.Unmarshal(body, &out); err != nil {
			return "", &core.UpstreamError{Detail: "unreadable response envelope"}
		}
		switch {
		case out.Output != "":
			return out.Output, nil
		case out.Text != "":
			return out.Text, nil
		case out.Response != "":
			return out.Response, nil
		}
		return string(body), nil
	}
}

func mapError(err error) error {
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		return &core.UpstreamError{
			StatusCode: respErr.HTTPStatusCode(),
			Detail:     respErr.Error(),
		}
	}
	return &core.TransportError{Err: err}
}

// ModelName returns the configured model identifier.
func (c *Client) ModelName() string {
	return c.modelID
}

// Close is a no-op; the SDK client owns no per-instance resources.
func (c *Client) Close() error {
	return nil
}

func isAnthropicModel(modelID string) bool {
	return strings.HasPrefix(modelID, "anthropic.claude")
}

func isAmazonTitanModel(modelID string) bool {
	return strings.HasPrefix(modelID, "amazon.titan")
}
