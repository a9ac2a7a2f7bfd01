package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/mikey/llm-scam-detector/internal/core"
)

// NewBatchCommand analyzes a stream of messages, one JSON object per line.
func NewBatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "Analyze a JSONL stream of messages",
		Long: `Reads one message per line from the given file (or stdin) and analyzes
them concurrently. Each line is either a JSON object with "content",
"title" and "author" fields, or plain text.`,
		Example: `  # Analyze a JSONL file, stopping at the first failure
  scam-detector batch messages.jsonl --fail-fast

  # Pipe plain-text lines and print JSON results
  printf 'hello\nsend me gift cards\n' | scam-detector batch --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msgs, err := readBatchInput(cmd, args)
			if err != nil {
				return err
			}
			if len(msgs) == 0 {
				return fmt.Errorf("no messages to analyze")
			}

			env, err := buildEnvironment(cmd)
			if err != nil {
				return err
			}
			defer env.close()

			failFast, _ := cmd.Flags().GetBool("fail-fast")
			results, err := env.detector.AnalyzeBatch(cmd.Context(), msgs, &core.BatchOptions{FailFast: failFast})
			if err != nil {
				return err
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			return printBatchResults(results, asJSON)
		},
	}

	cmd.Flags().Bool("fail-fast", false, "Abort the batch on the first failed analysis")
	cmd.Flags().Bool("json", false, "Print results as JSON")
	return cmd
}

func readBatchInput(cmd *cobra.Command, args []string) ([]core.Message, error) {
	in := os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to open input file: %w", err)
		}
		defer f.Close()
		in = f
	}

	var msgs []core.Message
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "{") {
			var msg core.Message
			if err := json.Unmarshal([]byte(line), &msg); err != nil {
				return nil, fmt.Errorf("invalid message on line %d: %w", len(msgs)+1, err)
			}
			msgs = append(msgs, msg)
			continue
		}
		msgs = append(msgs, core.Message{Content: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return msgs, nil
}

func printBatchResults(results []core.BatchResult, asJSON bool) error {
	if asJSON {
		type slot struct {
			Result *core.DetectionResult `json:"result,omitempty"`
			Error  string                `json:"error,omitempty"`
		}
		out := make([]slot, len(results))
		for i, r := range results {
			out[i].Result = r.Result
			if r.Err != nil {
				out[i].Error = r.Err.Error()
			}
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	var failed int
	for i, r := range results {
		if r.Err != nil {
			failed++
			fmt.Printf("[%d] ERROR: %v\n", i, r.Err)
			continue
		}
		verdict := "CLEAN"
		if r.Result.IsScam {
			verdict = "SCAM"
		}
		fmt.Printf("[%d] %s risk=%s %s\n", i, verdict, r.Result.RiskLevel, r.Result.Summary)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d analyses failed", failed, len(results))
	}
	return nil
}
