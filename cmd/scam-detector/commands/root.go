package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the scam-detector CLI.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "scam-detector",
		Short: "LLM-backed scam pattern detection for messages and posts",
		Long: `scam-detector analyzes free-text messages against a catalog of
plain-English scam pattern descriptions using an LLM service reachable
over an OpenAI-compatible chat-completion API.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().String("provider", "", "LLM provider (openai, bedrock, gemini)")
	root.PersistentFlags().String("base-url", "", "Base URL of the OpenAI-compatible endpoint")
	root.PersistentFlags().String("api-key", "", "API key for the endpoint")
	root.PersistentFlags().String("model", "", "Model identifier")
	root.PersistentFlags().Int("max-tokens", 0, "Maximum tokens in the model reply")
	root.PersistentFlags().Float64("temperature", -1, "Sampling temperature")
	root.PersistentFlags().String("timeout", "", "Request timeout (e.g. 120s)")
	root.PersistentFlags().String("patterns-file", "", "Load the pattern catalog from a JSON export")
	root.PersistentFlags().Bool("no-default-patterns", false, "Start with an empty catalog instead of the built-in library")
	root.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().Bool("json-log", false, "Output logs in JSON format")

	root.AddCommand(NewAnalyzeCommand())
	root.AddCommand(NewBatchCommand())
	root.AddCommand(NewPatternsCommand())

	return root
}
