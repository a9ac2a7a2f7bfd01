package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mikey/llm-scam-detector/internal/config"
	"github.com/mikey/llm-scam-detector/internal/core"
	"github.com/mikey/llm-scam-detector/internal/llm/bedrock"
	"github.com/mikey/llm-scam-detector/internal/llm/gemini"
	"github.com/mikey/llm-scam-detector/internal/llm/openai"
)

// LLMFactory creates completion clients
type LLMFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewLLMFactory creates a new LLM factory
func NewLLMFactory(cfg *config.Config, logger *zap.Logger) *LLMFactory {
	return &LLMFactory{cfg: cfg, logger: logger}
}

// CreateCompletionClient creates a completion client based on the configuration
func (f *LLMFactory) CreateCompletionClient() (core.CompletionClient, error) {
	llmConfig := f.cfg.GetLLM()

	switch llmConfig.Provider {
	case "openai":
		return openai.NewFactory(f.cfg, f.logger).CreateClient()
	case "bedrock":
		return bedrock.NewFactory(f.cfg, f.logger).CreateClient()
	case "gemini":
		return gemini.NewFactory(f.cfg, f.logger).CreateClient()
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", llmConfig.Provider)
	}
}
