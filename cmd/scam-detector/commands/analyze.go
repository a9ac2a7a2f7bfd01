package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/mikey/llm-scam-detector/internal/core"
)

// NewAnalyzeCommand analyzes a single message from an argument, a file, or stdin.
func NewAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [text]",
		Short: "Analyze one message for scam patterns",
		Example: `  # Analyze an argument
  scam-detector analyze "You've won! Pay $500 to claim your prize."

  # Analyze a file against a local LM Studio server
  scam-detector analyze --file post.txt --base-url http://localhost:1234/v1

  # Pipe from stdin and print the raw JSON result
  cat dm.txt | scam-detector analyze --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readContent(cmd, args)
			if err != nil {
				return err
			}

			env, err := buildEnvironment(cmd)
			if err != nil {
				return err
			}
			defer env.close()

			title, _ := cmd.Flags().GetString("title")
			author, _ := cmd.Flags().GetString("author")
			msg := &core.Message{Content: content, Title: title, Author: author}

			result, err := env.detector.Analyze(cmd.Context(), msg)
			if err != nil {
				return err
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			return printResult(result, asJSON)
		},
	}

	cmd.Flags().String("file", "", "Read message content from a file (stdin if neither file nor argument given)")
	cmd.Flags().String("title", "", "Message title")
	cmd.Flags().String("author", "", "Message author")
	cmd.Flags().Bool("json", false, "Print the result as JSON")
	return cmd
}

func readContent(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	file, _ := cmd.Flags().GetString("file")
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

func printResult(result *core.DetectionResult, asJSON bool) error {
	if asJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	verdict := "CLEAN"
	if result.IsScam {
		verdict = "SCAM"
	}
	fmt.Printf("Verdict:    %s\n", verdict)
	fmt.Printf("Risk level: %s\n", result.RiskLevel)
	fmt.Printf("Summary:    %s\n", result.Summary)
	if len(result.MatchedPatterns) > 0 {
		fmt.Println("Matches:")
		for _, m := range result.MatchedPatterns {
			fmt.Printf("  - %s (confidence %.2f)\n", m.PatternName, m.Confidence)
			for _, ev := range m.Evidence {
				fmt.Printf("      %q\n", ev)
			}
			if m.Explanation != "" {
				fmt.Printf("      %s\n", m.Explanation)
			}
		}
	}
	if len(result.Notes) > 0 {
		fmt.Println("Notes:")
		for _, note := range result.Notes {
			fmt.Printf("  - %s\n", note)
		}
	}
	if result.ModelUsed != "" {
		fmt.Printf("Model:      %s\n", result.ModelUsed)
	}
	return nil
}
