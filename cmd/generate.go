package cmd

import (
	"fmt"
	"time"

	"github.com/pb33f/tracelens/hargen"
	"github.com/pb33f/tracelens/motor/timeline"
	"github.com/spf13/cobra"
)

var (
	genEntryCount int
	genOutputFile string
	genSeed       int64
	genDictPath   string
	genErrorRate  float64
	genSlowRate   float64
	genDomains    []string
	genTimeline   bool
	genFormat     string
	genSpread     time.Duration
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate synthetic HAR traces or event timelines",
	Long: `Generate HAR (HTTP Archive) traces with a controlled share of failing and
slow requests, or event timelines in JSON or Markdown, for testing.

Examples:
  tracelens generate -n 100 -o test.har
  tracelens generate -n 1000 --error-rate 0.25 --slow-rate 0.05 --domains api.test,cdn.test
  tracelens generate --timeline -n 20 --format markdown -o incident.md`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().IntVarP(&genEntryCount, "entries", "n", 10, "Number of HAR entries or timeline events to generate")
	generateCmd.Flags().StringVarP(&genOutputFile, "output", "o", "", "Output file path (default: temp file for HAR, stdout for timelines)")
	generateCmd.Flags().Int64VarP(&genSeed, "seed", "s", 0, "Random seed for reproducibility (0 = use current time)")
	generateCmd.Flags().StringVarP(&genDictPath, "dict", "d", "/usr/share/dict/words", "Dictionary file path")
	generateCmd.Flags().Float64Var(&genErrorRate, "error-rate", hargen.DefaultGenerateOptions.ErrorRate, "Share of entries with an error status (0..1)")
	generateCmd.Flags().Float64Var(&genSlowRate, "slow-rate", hargen.DefaultGenerateOptions.SlowRate, "Share of entries slower than one second (0..1)")
	generateCmd.Flags().StringSliceVar(&genDomains, "domains", nil, "Hosts to spread requests over (comma-separated)")
	generateCmd.Flags().BoolVar(&genTimeline, "timeline", false, "Generate a timeline instead of a HAR trace")
	generateCmd.Flags().StringVarP(&genFormat, "format", "f", "json", "Timeline output format: json, markdown")
	generateCmd.Flags().DurationVar(&genSpread, "spread", time.Hour, "Window the timeline events fall within")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if genEntryCount < 0 {
		return fmt.Errorf("entry count must not be negative: %d", genEntryCount)
	}
	if genTimeline {
		return runGenerateTimeline(cmd)
	}

	opts := hargen.GenerateOptions{
		EntryCount:     genEntryCount,
		DictionaryPath: genDictPath,
		Seed:           genSeed,
		ErrorRate:      genErrorRate,
		SlowRate:       genSlowRate,
		Domains:        genDomains,
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Generating HAR file with %d entries...\n", genEntryCount)

	var result *hargen.GenerateResult
	var err error
	if genOutputFile != "" {
		result, err = hargen.GenerateToFile(genOutputFile, opts)
	} else {
		result, err = hargen.Generate(opts)
	}
	if err != nil {
		return fmt.Errorf("failed to generate HAR: %w", err)
	}

	GetLogger().Debug("har generated", "path", result.HARFilePath, "entries", result.TotalEntries, "seed", genSeed)

	fmt.Fprintf(out, "\n✓ Generated HAR file: %s\n", result.HARFilePath)
	fmt.Fprintf(out, "  Total entries: %d\n", result.TotalEntries)
	return nil
}

func runGenerateTimeline(cmd *cobra.Command) error {
	events := hargen.GenerateTimelineEvents(hargen.TimelineOptions{
		EventCount: genEntryCount,
		Seed:       genSeed,
		Spread:     genSpread,
	})
	tl := timeline.Process(events)

	var text string
	var err error
	switch genFormat {
	case "json":
		if text, err = timeline.ExportToJSON(tl); err != nil {
			return fmt.Errorf("failed to render timeline: %w", err)
		}
	case "markdown", "md":
		text = timeline.ExportToMarkdown(tl)
	default:
		return fmt.Errorf("unsupported timeline format %q (use json or markdown)", genFormat)
	}

	GetLogger().Debug("timeline generated", "events", len(tl.Events), "duration", tl.Duration)
	return writeOutput(cmd, genOutputFile, text)
}
