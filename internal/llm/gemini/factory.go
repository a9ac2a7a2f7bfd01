package gemini

import (
	"go.uber.org/zap"

	"github.com/mikey/llm-scam-detector/internal/config"
	"github.com/mikey/llm-scam-detector/internal/core"
)

// Factory creates Gemini completion clients from configuration.
type Factory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewFactory creates a new Gemini factory.
func NewFactory(cfg *config.Config, logger *zap.Logger) *Factory {
	return &Factory{cfg: cfg, logger: logger}
}

// CreateClient creates a client from the gemini.* configuration section.
func (f *Factory) CreateClient() (core.CompletionClient, error) {
	return NewClient(
		f.cfg.GetString("gemini.api_key"),
		f.cfg.GetString("gemini.model"),
		f.cfg.GetInt("gemini.max_tokens"),
		float32(f.cfg.GetFloat64("gemini.temperature")),
		f.logger,
	)
}
