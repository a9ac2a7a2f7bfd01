package di

import (
	"context"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/llm-scam-detector/internal/config"
	"github.com/mikey/llm-scam-detector/internal/core"
	"github.com/mikey/llm-scam-detector/internal/factory"
	"github.com/mikey/llm-scam-detector/internal/logging"
	"github.com/mikey/llm-scam-detector/internal/server"
	"github.com/mikey/llm-scam-detector/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewLLMFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(utils.NewTextProcessor); err != nil {
		return nil, err
	}

	// Register completion client
	if err := container.Provide(func(f *factory.LLMFactory) (core.CompletionClient, error) {
		return f.CreateCompletionClient()
	}); err != nil {
		return nil, err
	}

	// Register pattern store
	if err := container.Provide(func(f *factory.StoreFactory) (core.PatternStore, error) {
		return f.CreatePatternStore()
	}); err != nil {
		return nil, err
	}

	// Register pattern catalog, seeded from the store (or the built-in
	// library when the store is empty and defaults are enabled)
	if err := container.Provide(func(store core.PatternStore, f *factory.StoreFactory, logger *zap.Logger) (*core.PatternCatalog, error) {
		patterns, err := store.LoadAll(context.Background())
		if err != nil {
			return nil, err
		}
		if len(patterns) == 0 && f.ShouldLoadDefaults() {
			patterns = core.CommonPatterns()
			if err := store.ReplaceAll(context.Background(), patterns); err != nil {
				logger.Warn("Failed to seed pattern store with defaults", zap.Error(err))
			}
		}
		logger.Info("Loaded pattern catalog", zap.Int("patterns", len(patterns)))
		return core.NewPatternCatalog(patterns...)
	}); err != nil {
		return nil, err
	}

	// Register risk policy
	if err := container.Provide(func(cfg *config.Config) core.RiskPolicy {
		return core.RiskPolicy{
			EscalateThreshold:   cfg.GetFloat64("risk.escalate_threshold"),
			DeescalateThreshold: cfg.GetFloat64("risk.deescalate_threshold"),
		}
	}); err != nil {
		return nil, err
	}

	// Register detector
	if err := container.Provide(func(
		client core.CompletionClient,
		catalog *core.PatternCatalog,
		policy core.RiskPolicy,
		cfg *config.Config,
		logger *zap.Logger,
	) *core.ScamDetector {
		return core.NewScamDetector(client, catalog, policy, cfg.GetLLM().MaxInFlight, logger)
	}); err != nil {
		return nil, err
	}

	// Register HTTP server
	if err := container.Provide(server.NewServer); err != nil {
		return nil, err
	}

	return container, nil
}
