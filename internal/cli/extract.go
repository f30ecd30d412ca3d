package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/ts-extractor/internal/config"
	"github.com/mvp-joe/ts-extractor/internal/watcher"
)

var (
	watchFlag bool
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract [entry files...]",
	Short: "Extract the API of a TypeScript project",
	Long: `Extract loads the project from its entry files, resolves every declaration
they expose and writes the resulting document.

Examples:
  # Extract using ts-extractor.yml in the current directory
  ts-extractor extract

  # Extract specific entry files to stdout
  ts-extractor extract src/index.ts src/cli.ts --out -

  # Write a SQLite database without private members
  ts-extractor extract --format sqlite --out api.db --strip-private

  # Rebuild the document whenever a source file changes
  ts-extractor extract --watch
`,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	f := extractCmd.Flags()
	f.String("project", "", "Project directory (overrides project.directory)")
	f.StringSlice("include", nil, "Glob patterns adding entry files")
	f.StringSlice("external", nil, "External packages to extract")
	f.StringSlice("ignore-kind", nil, "Item kinds never registered")
	f.Bool("exclude-private", false, "Skip private class members during extraction")
	f.String("id-strategy", "", "ID strategy: sequential, hash or uuid")
	f.StringP("out", "o", "", "Output file, - for stdout")
	f.String("format", "", "Output format: json or sqlite")
	f.String("separator", "", `Path separator used in output: / or \`)
	f.Bool("pretty", true, "Indent JSON output")
	f.Bool("strip-private", false, "Remove private members from the document")
	f.BoolVarP(&watchFlag, "watch", "w", false, "Watch for file changes and extract again")
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root, err := workingRoot()
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfigFromDir(root)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := applyExtractFlags(cmd, cfg, root, args); err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr())
	ex := &extraction{cfg: cfg, logger: logger}
	if !quietFlag {
		ex.progress = NewCLIProgressReporter(cmd.ErrOrStderr())
	}

	if err := extractOnce(ctx, ex, root, cmd.OutOrStdout()); err != nil {
		return err
	}
	if !watchFlag {
		return nil
	}
	return watchAndExtract(ctx, ex, root, cmd.OutOrStdout())
}

// applyExtractFlags overrides cfg with the flags the user set and the
// positional entry files, then validates the result.
func applyExtractFlags(cmd *cobra.Command, cfg *config.Config, root string, args []string) error {
	f := cmd.Flags()

	if f.Changed("project") {
		dir, _ := f.GetString("project")
		cfg.Project.Directory = resolveAgainst(root, dir)
	}
	if len(args) > 0 {
		cfg.Project.Entry = args
	}
	if f.Changed("include") {
		cfg.Project.Include, _ = f.GetStringSlice("include")
	}
	if f.Changed("external") {
		cfg.Extraction.ExternalPackages, _ = f.GetStringSlice("external")
	}
	if f.Changed("ignore-kind") {
		cfg.Extraction.IgnoreKinds, _ = f.GetStringSlice("ignore-kind")
	}
	if f.Changed("exclude-private") {
		cfg.Extraction.ExcludePrivate, _ = f.GetBool("exclude-private")
	}
	if f.Changed("id-strategy") {
		cfg.Extraction.IDStrategy, _ = f.GetString("id-strategy")
	}
	if f.Changed("out") {
		cfg.Output.Path, _ = f.GetString("out")
	}
	if f.Changed("format") {
		cfg.Output.Format, _ = f.GetString("format")
	}
	if f.Changed("separator") {
		cfg.Output.PathSeparator, _ = f.GetString("separator")
	}
	if f.Changed("pretty") {
		cfg.Output.Pretty, _ = f.GetBool("pretty")
	}
	if f.Changed("strip-private") {
		cfg.Output.StripPrivate, _ = f.GetBool("strip-private")
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func extractOnce(ctx context.Context, ex *extraction, root string, stdout io.Writer) error {
	doc, _, err := ex.run(ctx)
	if err != nil {
		return err
	}
	if err := writeOutput(doc, ex.cfg.Output, root, stdout); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	ex.logger.Info("document written",
		"path", ex.cfg.Output.Path,
		"format", ex.cfg.Output.Format,
		"items", len(doc.Registry))
	return nil
}

// watchAndExtract runs a fresh extraction after every batch of source
// changes until ctx is cancelled. Failed runs are logged and watching
// continues.
func watchAndExtract(ctx context.Context, ex *extraction, root string, stdout io.Writer) error {
	w, err := watcher.New([]string{ex.cfg.Project.Directory}, watcher.WithLogger(ex.logger))
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer w.Stop()

	ex.logger.Info("watching for changes", "dir", ex.cfg.Project.Directory)
	err = w.Start(ctx, func(files []string) {
		ex.logger.Info("changes detected", "files", len(files))
		if err := extractOnce(ctx, ex, root, stdout); err != nil {
			ex.logger.Error("extraction failed", slog.Any("error", err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	<-ctx.Done()
	return nil
}
