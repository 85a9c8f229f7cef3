package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/pb33f/tracelens/motor/model"
	"github.com/pb33f/tracelens/motor/timeline"
	"github.com/spf13/cobra"
)

var (
	tlInputFormat string
	tlFormat      string
	tlOutputFile  string
	tlFrom        string
	tlTo          string
	tlLabel       string
	tlWidth       int
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Order, filter and export event timelines",
	Long: `Work with event timelines.

Input is either a JSON document {"events": [...]} or a Markdown list of
"- [timestamp] label: description" lines. Events are always sorted by
timestamp; events sharing a timestamp keep their input order.`,
}

var timelineExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Convert a timeline to JSON or Markdown",
	Example: `  tracelens timeline export incident.md --format json
  tracelens timeline export events.json --format markdown --label deploy
  tracelens timeline export events.json --from 2024-01-01T00:00:00Z --to 2024-01-02T00:00:00Z`,
	Args: cobra.ExactArgs(1),
	RunE: runTimelineExport,
}

var timelineSummaryCmd = &cobra.Command{
	Use:   "summary <file>",
	Short: "Print the bounds and events of a timeline",
	Args:  cobra.ExactArgs(1),
	RunE:  runTimelineSummary,
}

func init() {
	rootCmd.AddCommand(timelineCmd)
	timelineCmd.AddCommand(timelineExportCmd, timelineSummaryCmd)

	for _, c := range []*cobra.Command{timelineExportCmd, timelineSummaryCmd} {
		c.Flags().StringVar(&tlInputFormat, "input", "auto", "Input format: auto, json, markdown")
		c.Flags().StringVar(&tlFrom, "from", "", "Drop events before this timestamp")
		c.Flags().StringVar(&tlTo, "to", "", "Drop events after this timestamp")
		c.Flags().StringVar(&tlLabel, "label", "", "Keep events whose label contains this text")
	}

	timelineExportCmd.Flags().StringVarP(&tlFormat, "format", "f", "json", "Output format: json, markdown")
	timelineExportCmd.Flags().StringVarP(&tlOutputFile, "output", "o", "", "Output file path (default: stdout)")
	timelineSummaryCmd.Flags().IntVar(&tlWidth, "width", defaultTermWidth, "Table width in columns")
}

// loadTimeline reads, parses and filters a timeline according to the command flags.
func loadTimeline(cmd *cobra.Command, path string) (*model.Timeline, error) {
	data, err := readInput(cmd, path)
	if err != nil {
		return nil, err
	}

	format, err := detectTimelineFormat(tlInputFormat, path, data)
	if err != nil {
		return nil, err
	}

	var tl *model.Timeline
	switch format {
	case "json":
		tl, err = timeline.ParseFromJSON(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", displayName(path), err)
		}
	case "markdown":
		tl = timeline.ParseFromMarkdown(string(data))
	}

	GetLogger().Debug("timeline parsed",
		"path", displayName(path),
		"format", format,
		"events", len(tl.Events))

	return filterTimeline(tl)
}

// detectTimelineFormat resolves "auto" from the file extension, then from the
// first non-space byte of the content.
func detectTimelineFormat(requested, path string, data []byte) (string, error) {
	switch strings.ToLower(requested) {
	case "json":
		return "json", nil
	case "markdown", "md":
		return "markdown", nil
	case "auto", "":
	default:
		return "", fmt.Errorf("unsupported input format %q (use auto, json or markdown)", requested)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json", nil
	case ".md", ".markdown":
		return "markdown", nil
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return "json", nil
	}
	return "markdown", nil
}

func filterTimeline(tl *model.Timeline) (*model.Timeline, error) {
	if tlFrom != "" || tlTo != "" {
		start, end := time.Time{}, time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)
		var err error
		if tlFrom != "" {
			if start, err = timeline.ParseTimestamp(tlFrom); err != nil {
				return nil, fmt.Errorf("invalid --from: %w", err)
			}
		}
		if tlTo != "" {
			if end, err = timeline.ParseTimestamp(tlTo); err != nil {
				return nil, fmt.Errorf("invalid --to: %w", err)
			}
		}
		if end.Before(start) {
			return nil, fmt.Errorf("--to %s is before --from %s", tlTo, tlFrom)
		}
		tl = timeline.FilterByDateRange(tl, start, end)
	}
	if tlLabel != "" {
		tl = timeline.FilterByLabel(tl, tlLabel)
	}
	return tl, nil
}

func runTimelineExport(cmd *cobra.Command, args []string) error {
	tl, err := loadTimeline(cmd, args[0])
	if err != nil {
		return err
	}

	var text string
	switch strings.ToLower(tlFormat) {
	case "json":
		if text, err = timeline.ExportToJSON(tl); err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
	case "markdown", "md":
		text = timeline.ExportToMarkdown(tl)
	default:
		return fmt.Errorf("unsupported export format %q (use json or markdown)", tlFormat)
	}
	return writeOutput(cmd, tlOutputFile, text)
}

func runTimelineSummary(cmd *cobra.Command, args []string) error {
	tl, err := loadTimeline(cmd, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTimelineSummary(displayName(args[0]), tl))
	if len(tl.Events) > 0 {
		fmt.Fprintln(out, sectionTitle("Events", len(tl.Events)))
		fmt.Fprintln(out, renderEventTable(tl.Events, tlWidth))
	}
	return nil
}
