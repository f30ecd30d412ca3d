package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose   bool
	quietFlag bool
	rootDir   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ts-extractor",
	Short: "Extract the public API of a TypeScript project",
	Long: `ts-extractor walks a TypeScript project from its entry files and writes
a flat registry of every declaration the entry files expose, with stable IDs
and references between them.

Configuration is read from ts-extractor.yml in the project directory and can
be overridden with TS_EXTRACTOR_* environment variables and flags.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "C", "", "directory holding ts-extractor.yml (default is the working directory)")
}

// newLogger returns the stderr text logger used for diagnostics.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case verbose:
		level = slog.LevelDebug
	case quietFlag:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// workingRoot returns --dir or the working directory.
func workingRoot() (string, error) {
	if rootDir != "" {
		return rootDir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return wd, nil
}
