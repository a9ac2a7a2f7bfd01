package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mikey/llm-scam-detector/internal/core"
)

// NewPatternsCommand inspects and converts pattern catalogs without touching
// the LLM endpoint.
func NewPatternsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "Inspect and convert scam pattern catalogs",
	}
	cmd.AddCommand(newPatternsListCommand())
	cmd.AddCommand(newPatternsExportCommand())
	cmd.AddCommand(newPatternsImportCommand())
	return cmd
}

// builtinPatterns resolves a named category of the built-in library.
func builtinPatterns(category string) ([]core.ScamPattern, error) {
	switch category {
	case "common":
		return core.CommonPatterns(), nil
	case "financial":
		return core.FinancialPatterns(), nil
	case "marketplace":
		return core.MarketplacePatterns(), nil
	case "employment":
		return core.EmploymentPatterns(), nil
	case "tech":
		return core.TechPatterns(), nil
	default:
		return nil, fmt.Errorf("unknown pattern category %q", category)
	}
}

// resolveCatalog picks the catalog for a patterns subcommand: a built-in
// category when requested, otherwise whatever the shared flags select.
func resolveCatalog(cmd *cobra.Command) (*core.PatternCatalog, error) {
	category, _ := cmd.Flags().GetString("category")
	if category != "" {
		patterns, err := builtinPatterns(category)
		if err != nil {
			return nil, err
		}
		return core.NewPatternCatalog(patterns...)
	}
	return loadCatalog(cmd)
}

func newPatternsListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the patterns the detector would use",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := resolveCatalog(cmd)
			if err != nil {
				return err
			}
			patterns := catalog.Snapshot()
			if len(patterns) == 0 {
				fmt.Println("No patterns configured.")
				return nil
			}
			for _, p := range patterns {
				fmt.Printf("%-22s %-8s %s\n", p.Name, p.Severity, p.Description)
			}
			return nil
		},
	}
	cmd.Flags().String("category", "", "Restrict to a built-in category (common, financial, marketplace, employment, tech)")
	return cmd
}

func newPatternsExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the catalog as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := resolveCatalog(cmd)
			if err != nil {
				return err
			}
			data, err := catalog.Export()
			if err != nil {
				return err
			}
			output, _ := cmd.Flags().GetString("output")
			if output == "" {
				fmt.Println(string(data))
				return nil
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			fmt.Printf("Exported %d patterns to %s\n", catalog.Len(), output)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "Write the export to a file instead of stdout")
	cmd.Flags().String("category", "", "Restrict to a built-in category (common, financial, marketplace, employment, tech)")
	return cmd
}

func newPatternsImportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Validate an import file and merge it over the current catalog",
		Long: `Reads a pattern export, merges it over the catalog the detector would
use (built-ins unless --no-default-patterns), reports skipped duplicates,
and optionally writes the merged catalog back out.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read import file: %w", err)
			}

			catalog, err := loadCatalog(cmd)
			if err != nil {
				return err
			}

			mode := core.ImportMerge
			if replace, _ := cmd.Flags().GetBool("replace"); replace {
				mode = core.ImportReplace
			}
			skipped, err := catalog.Import(data, mode)
			if err != nil {
				return err
			}

			fmt.Printf("Catalog now holds %d patterns.\n", catalog.Len())
			for _, name := range skipped {
				fmt.Printf("Skipped duplicate: %s\n", name)
			}

			output, _ := cmd.Flags().GetString("output")
			if output != "" {
				merged, err := catalog.Export()
				if err != nil {
					return err
				}
				if err := os.WriteFile(output, merged, 0o644); err != nil {
					return fmt.Errorf("failed to write merged catalog: %w", err)
				}
				fmt.Printf("Wrote merged catalog to %s\n", output)
			}
			return nil
		},
	}
	cmd.Flags().Bool("replace", false, "Replace the catalog instead of merging")
	cmd.Flags().StringP("output", "o", "", "Write the resulting catalog to a file")
	return cmd
}
