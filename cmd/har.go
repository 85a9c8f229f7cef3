package cmd

import (
	"fmt"
	"strings"

	"github.com/pb33f/tracelens/motor"
	"github.com/pb33f/tracelens/motor/model"
	"github.com/spf13/cobra"
)

var (
	harOutputFile   string
	harExportFormat string
	harFilterFormat string
	harDomain       string
	harStatus       int
	harContentType  string
	harURLPattern   string
	harRegex        bool
	harWidth        int
)

var harCmd = &cobra.Command{
	Use:   "har",
	Short: "Analyze, filter and export HAR traces",
	Long: `Analyze HTTP Archive (HAR) traces.

Every subcommand takes a HAR file path, or "-" to read from stdin.`,
}

var harSummaryCmd = &cobra.Command{
	Use:   "summary <file>",
	Short: "Print request counts, sizes, timings and error totals",
	Args:  cobra.ExactArgs(1),
	RunE:  runHARSummary,
}

var harExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export an analysis as JSON or per-request CSV",
	Example: `  tracelens har export recording.har
  tracelens har export recording.har --format csv -o requests.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runHARExport,
}

var harFilterCmd = &cobra.Command{
	Use:   "filter <file>",
	Short: "List entries matching domain, status, content type or URL filters",
	Long: `List the entries of a HAR trace that match every supplied filter.

Filters combine: each one narrows the entries left by the previous.`,
	Example: `  tracelens har filter recording.har --domain api.example.com
  tracelens har filter recording.har --status 404 --format csv
  tracelens har filter recording.har --url '/v[0-9]+/users' --regex`,
	Args: cobra.ExactArgs(1),
	RunE: runHARFilter,
}

func init() {
	rootCmd.AddCommand(harCmd)
	harCmd.AddCommand(harSummaryCmd, harExportCmd, harFilterCmd)

	harSummaryCmd.Flags().IntVar(&harWidth, "width", defaultTermWidth, "Table width in columns")

	harExportCmd.Flags().StringVarP(&harExportFormat, "format", "f", "json", "Output format: json, csv")
	harExportCmd.Flags().StringVarP(&harOutputFile, "output", "o", "", "Output file path (default: stdout)")

	harFilterCmd.Flags().StringVar(&harDomain, "domain", "", "Keep entries whose hostname equals this domain")
	harFilterCmd.Flags().IntVar(&harStatus, "status", 0, "Keep entries with this response status code")
	harFilterCmd.Flags().StringVar(&harContentType, "content-type", "", "Keep entries whose response MIME type contains this text")
	harFilterCmd.Flags().StringVar(&harURLPattern, "url", "", "Keep entries whose URL matches this pattern")
	harFilterCmd.Flags().BoolVar(&harRegex, "regex", false, "Treat --url as a regular expression")
	harFilterCmd.Flags().StringVarP(&harFilterFormat, "format", "f", "table", "Output format: table, json, csv")
	harFilterCmd.Flags().StringVarP(&harOutputFile, "output", "o", "", "Output file path (default: stdout)")
	harFilterCmd.Flags().IntVar(&harWidth, "width", defaultTermWidth, "Table width in columns")
}

// loadAnalysis reads and analyzes a HAR document.
func loadAnalysis(cmd *cobra.Command, path string) (*motor.TraceAnalysis, error) {
	data, err := readInput(cmd, path)
	if err != nil {
		return nil, err
	}

	analysis, err := motor.ParseFromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze %s: %w", displayName(path), err)
	}

	GetLogger().Debug("trace analyzed",
		"path", displayName(path),
		"entries", analysis.TotalRequests,
		"domains", len(analysis.Domains),
		"errors", len(analysis.ErrorEntries),
		"slow", len(analysis.SlowEntries),
		"fingerprint", analysis.Fingerprint)
	return analysis, nil
}

func runHARSummary(cmd *cobra.Command, args []string) error {
	analysis, err := loadAnalysis(cmd, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderSummary(displayName(args[0]), analysis))
	if len(analysis.Domains) > 0 {
		fmt.Fprintln(out, sectionTitle("Domains", len(analysis.Domains)))
		for _, d := range analysis.Domains {
			fmt.Fprintf(out, "  %s\n", d)
		}
	}
	if len(analysis.ErrorEntries) > 0 {
		fmt.Fprintln(out, sectionTitle("Errors", len(analysis.ErrorEntries)))
		fmt.Fprintln(out, renderEntryTable(analysis.ErrorEntries, harWidth))
	}
	if len(analysis.SlowEntries) > 0 {
		fmt.Fprintln(out, sectionTitle("Slow requests", len(analysis.SlowEntries)))
		fmt.Fprintln(out, renderEntryTable(analysis.SlowEntries, harWidth))
	}
	return nil
}

func runHARExport(cmd *cobra.Command, args []string) error {
	analysis, err := loadAnalysis(cmd, args[0])
	if err != nil {
		return err
	}

	var text string
	switch strings.ToLower(harExportFormat) {
	case "json":
		text, err = motor.ExportAnalysis(analysis)
	case "csv":
		text, err = motor.ExportToCSV(analysis)
	default:
		return fmt.Errorf("unsupported export format %q (use json or csv)", harExportFormat)
	}
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	return writeOutput(cmd, harOutputFile, text)
}

func runHARFilter(cmd *cobra.Command, args []string) error {
	analysis, err := loadAnalysis(cmd, args[0])
	if err != nil {
		return err
	}

	filtered, err := applyHARFilters(analysis)
	if err != nil {
		return err
	}
	GetLogger().Debug("filters applied", "before", analysis.TotalRequests, "after", filtered.TotalRequests)

	var text string
	switch strings.ToLower(harFilterFormat) {
	case "table":
		text = sectionTitle("Matching entries", filtered.TotalRequests) + "\n" +
			renderEntryTable(filtered.Entries, harWidth)
	case "json":
		text, err = motor.ExportAnalysis(filtered)
	case "csv":
		text, err = motor.ExportToCSV(filtered)
	default:
		return fmt.Errorf("unsupported filter format %q (use table, json or csv)", harFilterFormat)
	}
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	return writeOutput(cmd, harOutputFile, text)
}

// applyHARFilters narrows analysis by each flag that was set. Every step
// re-analyzes the surviving entries so the next filter and the export see
// consistent aggregates.
func applyHARFilters(analysis *motor.TraceAnalysis) (*motor.TraceAnalysis, error) {
	var steps []func(*motor.TraceAnalysis) ([]model.Entry, error)

	if harDomain != "" {
		steps = append(steps, func(a *motor.TraceAnalysis) ([]model.Entry, error) {
			return motor.FilterByDomain(a, harDomain), nil
		})
	}
	if harStatus != 0 {
		steps = append(steps, func(a *motor.TraceAnalysis) ([]model.Entry, error) {
			return motor.FilterByStatusCode(a, harStatus), nil
		})
	}
	if harContentType != "" {
		steps = append(steps, func(a *motor.TraceAnalysis) ([]model.Entry, error) {
			return motor.FilterByContentType(a, harContentType), nil
		})
	}
	if harURLPattern != "" {
		mode := motor.PlainText
		if harRegex {
			mode = motor.Regex
		}
		steps = append(steps, func(a *motor.TraceAnalysis) ([]model.Entry, error) {
			return motor.FilterByURL(a, harURLPattern, mode)
		})
	}

	current := analysis
	for _, step := range steps {
		entries, err := step(current)
		if err != nil {
			return nil, fmt.Errorf("invalid filter: %w", err)
		}
		next, err := motor.Analyze(model.Log{
			Version: current.Version,
			Creator: current.Creator,
			Browser: current.Browser,
			Pages:   current.Pages,
			Entries: entries,
		})
		if err != nil {
			return nil, fmt.Errorf("re-analysis of filtered entries failed: %w", err)
		}
		current = next
	}
	return current, nil
}

func displayName(path string) string {
	if path == "-" {
		return "stdin"
	}
	return path
}
