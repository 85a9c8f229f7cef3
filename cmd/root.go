package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	Logger  *slog.Logger

	rootCmd = &cobra.Command{
		Use:   "tracelens",
		Short: "Analyze HAR traces and event timelines",
		Long: `Tracelens reads HTTP Archive (HAR) traces and event timelines, derives
performance and error statistics, filters them down to what matters, and
exports the results as JSON, CSV or Markdown.`,
		Example: `  tracelens har summary recording.har
  tracelens har export recording.har --format csv -o requests.csv
  tracelens timeline export incident.md --format json`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger()
		},
	}
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	// will be reconfigured in PersistentPreRun based on flags
	setupLogger()
}

// setupLogger configures the global slog logger based on the verbose flag
func setupLogger() {
	var opts *slog.HandlerOptions

	if verbose {
		opts = &slog.HandlerOptions{
			Level:     slog.LevelDebug,
			AddSource: true,
		}
	} else {
		opts = &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	Logger = slog.New(handler)
	slog.SetDefault(Logger)

	if verbose {
		Logger.Debug("verbose logging enabled",
			"level", slog.LevelDebug.String(),
			"pid", os.Getpid())
	}
}

// GetLogger returns the global logger instance
func GetLogger() *slog.Logger {
	if Logger == nil {
		setupLogger()
	}
	return Logger
}

// ValidateInputFile checks that the file exists and is not a directory.
// "-" stands for stdin and is always valid.
func ValidateInputFile(path string) error {
	if path == "" {
		return fmt.Errorf("input file path is required")
	}
	if path == "-" {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("input file does not exist: %s", path)
		}
		return fmt.Errorf("error accessing input file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("provided path is a directory, not a file: %s", path)
	}

	return nil
}

// readInput loads a whole input file, or stdin for "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if err := ValidateInputFile(path); err != nil {
		return nil, err
	}

	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	GetLogger().Debug("input loaded", "path", path, "bytes", len(data))
	return data, nil
}

// writeOutput writes text to path, or to the command's stdout when path is empty.
func writeOutput(cmd *cobra.Command, path, text string) error {
	if path == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), text)
		return err
	}

	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	GetLogger().Info("output written", "path", path, "bytes", len(text))
	return nil
}
