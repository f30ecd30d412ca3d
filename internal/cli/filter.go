package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/ts-extractor/internal/config"
)

// filterCmd represents the filter command
var filterCmd = &cobra.Command{
	Use:   "filter <input>",
	Short: "Remove private members from an extracted document",
	Long: `Filter reads a document written by extract, removes private class members
and every item only they reference, and writes the result.

Input ending in .db, .sqlite or .sqlite3 is read as SQLite, anything else
as JSON; - reads JSON from stdin.

Examples:
  # Write a public-only copy of api.json
  ts-extractor filter api.json --out public.json

  # Drop items unreachable from the entry files as well
  ts-extractor filter api.db --prune --out public.json
`,
	Args: cobra.ExactArgs(1),
	RunE: runFilter,
}

func init() {
	rootCmd.AddCommand(filterCmd)

	f := filterCmd.Flags()
	f.StringP("out", "o", "-", "Output file, - for stdout")
	f.String("format", config.FormatJSON, "Output format: json or sqlite")
	f.Bool("pretty", true, "Indent JSON output")
	f.Bool("prune", false, "Also remove items unreachable from the entry files")
}

func runFilter(cmd *cobra.Command, args []string) error {
	root, err := workingRoot()
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr())

	doc, err := readInput(args[0], cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	filtered, err := doc.FilterPrivate()
	if err != nil {
		return fmt.Errorf("failed to filter document: %w", err)
	}

	if prune, _ := cmd.Flags().GetBool("prune"); prune {
		removed, err := filtered.Prune()
		if err != nil {
			return fmt.Errorf("failed to prune document: %w", err)
		}
		logger.Debug("pruned unreachable items", "removed", removed)
	}

	out := config.OutputConfig{PathSeparator: "/"}
	out.Path, _ = cmd.Flags().GetString("out")
	out.Format, _ = cmd.Flags().GetString("format")
	out.Pretty, _ = cmd.Flags().GetBool("pretty")

	if err := writeOutput(filtered, out, root, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logger.Info("filtered document",
		"items", len(filtered.Registry),
		"removed", len(doc.Registry)-len(filtered.Registry))
	return nil
}
