package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mikey/llm-scam-detector/internal/config"
	"github.com/mikey/llm-scam-detector/internal/core"
	"github.com/mikey/llm-scam-detector/internal/factory"
	"github.com/mikey/llm-scam-detector/internal/logging"
)

// environment bundles the pieces a command needs to run analyses.
type environment struct {
	cfg      *config.Config
	logger   *zap.Logger
	detector *core.ScamDetector
	client   core.CompletionClient
}

func (e *environment) close() {
	if e.client != nil {
		if err := e.client.Close(); err != nil {
			e.logger.Warn("Failed to close LLM client", zap.Error(err))
		}
	}
	e.logger.Sync()
}

// buildEnvironment loads configuration (file/env first, then flag overrides),
// creates the completion client, and assembles a detector with the requested
// catalog.
func buildEnvironment(cmd *cobra.Command) (*environment, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}
	applyFlagOverrides(cmd, cfg)

	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonLog, _ := cmd.Flags().GetBool("json-log")
	logger, err := logging.InitConsoleLogger(verbose, jsonLog)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	client, err := factory.NewLLMFactory(cfg, logger).CreateCompletionClient()
	if err != nil {
		return nil, err
	}

	catalog, err := loadCatalog(cmd)
	if err != nil {
		client.Close()
		return nil, err
	}

	policy := core.RiskPolicy{
		EscalateThreshold:   cfg.GetFloat64("risk.escalate_threshold"),
		DeescalateThreshold: cfg.GetFloat64("risk.deescalate_threshold"),
	}
	detector := core.NewScamDetector(client, catalog, policy, cfg.GetLLM().MaxInFlight, logger)

	return &environment{cfg: cfg, logger: logger, detector: detector, client: client}, nil
}

// applyFlagOverrides writes explicitly-set flags over file/env configuration.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("provider") {
		v, _ := flags.GetString("provider")
		cfg.Set("llm.provider", v)
	}
	if flags.Changed("base-url") {
		v, _ := flags.GetString("base-url")
		cfg.Set("openai.base_url", v)
	}
	if flags.Changed("api-key") {
		v, _ := flags.GetString("api-key")
		cfg.Set("openai.api_key", v)
	}
	if flags.Changed("model") {
		v, _ := flags.GetString("model")
		cfg.Set("openai.model", v)
	}
	if flags.Changed("max-tokens") {
		v, _ := flags.GetInt("max-tokens")
		cfg.Set("openai.max_tokens", v)
	}
	if flags.Changed("temperature") {
		v, _ := flags.GetFloat64("temperature")
		cfg.Set("openai.temperature", v)
	}
	if flags.Changed("timeout") {
		v, _ := flags.GetString("timeout")
		cfg.Set("openai.timeout", v)
	}
}

// loadCatalog builds the pattern catalog from a file export, the built-in
// library, or nothing.
func loadCatalog(cmd *cobra.Command) (*core.PatternCatalog, error) {
	patternsFile, _ := cmd.Flags().GetString("patterns-file")
	noDefaults, _ := cmd.Flags().GetBool("no-default-patterns")

	if patternsFile != "" {
		data, err := os.ReadFile(patternsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read patterns file: %w", err)
		}
		catalog, err := core.NewPatternCatalog()
		if err != nil {
			return nil, err
		}
		if _, err := catalog.Import(data, core.ImportReplace); err != nil {
			return nil, err
		}
		return catalog, nil
	}
	if noDefaults {
		return core.NewPatternCatalog()
	}
	return core.NewPatternCatalog(core.CommonPatterns()...)
}
