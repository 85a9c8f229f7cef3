package timeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pb33f/tracelens/motor/model"
)

// ExportToJSON renders every field of tl as indented JSON. The output parses
// back with ParseFromJSON.
func ExportToJSON(tl *model.Timeline) (string, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(tl); err != nil {
		return "", fmt.Errorf("failed to encode timeline: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// ExportToMarkdown renders a header block and one bullet per event in the same
// grammar ParseFromMarkdown reads. Metadata is not written.
func ExportToMarkdown(tl *model.Timeline) string {
	var sb strings.Builder
	sb.WriteString("# Timeline\n\n")
	fmt.Fprintf(&sb, "**Duration:** %dms\n", tl.Duration.Milliseconds())
	fmt.Fprintf(&sb, "**Start:** %s\n", model.FormatTimestamp(tl.StartTime))
	fmt.Fprintf(&sb, "**End:** %s\n\n", model.FormatTimestamp(tl.EndTime))
	sb.WriteString("## Events\n\n")

	for _, e := range tl.Events {
		fmt.Fprintf(&sb, "- [%s] %s", model.FormatTimestamp(e.Timestamp), e.Event)
		if e.Description != "" {
			sb.WriteString(": " + e.Description)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
