package openai

import (
	"go.uber.org/zap"

	"github.com/mikey/llm-scam-detector/internal/config"
	"github.com/mikey/llm-scam-detector/internal/core"
)

// Factory creates OpenAI-compatible completion clients from configuration.
type Factory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewFactory creates a new factory for OpenAI clients.
func NewFactory(cfg *config.Config, logger *zap.Logger) *Factory {
	return &Factory{cfg: cfg, logger: logger}
}

// CreateClient creates a client from the openai.* configuration section.
func (f *Factory) CreateClient() (core.CompletionClient, error) {
	timeout, err := f.cfg.GetDuration("openai.timeout")
	if err != nil {
		return nil, err
	}
	return NewClient(
		f.cfg.GetString("openai.base_url"),
		f.cfg.GetString("openai.api_key"),
		f.cfg.GetString("openai.model"),
		f.cfg.GetInt("openai.max_tokens"),
		float32(f.cfg.GetFloat64("openai.temperature")),
		timeout,
		f.logger,
	), nil
}
