package bedrock

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"go.uber.org/zap"

	"github.com/mikey/llm-scam-detector/internal/config"
	"github.com/mikey/llm-scam-detector/internal/core"
)

// Factory creates Bedrock completion clients from configuration.
type Factory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewFactory creates a new Bedrock factory.
func NewFactory(cfg *config.Config, logger *zap.Logger) *Factory {
	return &Factory{cfg: cfg, logger: logger}
}

// CreateClient creates a client from the bedrock.* configuration section.
func (f *Factory) CreateClient() (core.CompletionClient, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(f.cfg.GetString("bedrock.region")))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return NewClient(
		bedrockruntime.NewFromConfig(awsCfg),
		f.cfg.GetString("bedrock.model_id"),
		f.cfg.GetInt("bedrock.max_tokens"),
		float32(f.cfg.GetFloat64("bedrock.temperature")),
		f.logger,
	), nil
}
