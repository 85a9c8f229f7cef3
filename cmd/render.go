package cmd

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/table"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/pb33f/tracelens/motor"
	"github.com/pb33f/tracelens/motor/model"
)

const (
	minURLColumnWidth = 20
	maxURLColumnWidth = 100
	defaultTermWidth  = 120

	methodColumnWidth   = 8
	statusColumnWidth   = 12
	durationColumnWidth = 10
	sizeColumnWidth     = 10
)

// renderSummary draws the headline numbers of an analysis in a bordered panel.
func renderSummary(title string, a *motor.TraceAnalysis) string {
	metrics := motor.PerformanceMetrics(a)

	errorStyle := StatusOKStyle
	if len(a.ErrorEntries) > 0 {
		errorStyle = StatusErrorStyle
	}
	slowStyle := StatusOKStyle
	if len(a.SlowEntries) > 0 {
		slowStyle = StatusWarningStyle
	}

	rows := [][2]string{
		{"Requests", ValueStyle.Render(fmt.Sprintf("%d", a.TotalRequests))},
		{"Total size", ValueStyle.Render(formatBytes(a.TotalSize))},
		{"Average time", ValueStyle.Render(formatDuration(a.AverageResponseTime))},
		{"Domains", ValueStyle.Render(fmt.Sprintf("%d", len(a.Domains)))},
		{"Errors", errorStyle.Render(fmt.Sprintf("%d", len(a.ErrorEntries)))},
		{"Slow requests", slowStyle.Render(fmt.Sprintf("%d", len(a.SlowEntries)))},
		{"Wait total", ValueStyle.Render(formatDuration(metrics.WaitTime))},
	}
	if a.Creator.Name != "" {
		rows = append(rows, [2]string{"Creator", a.Creator.Name + " " + a.Creator.Version})
	}
	if !a.TimeRange.Start.IsZero() {
		rows = append(rows, [2]string{"Captured", fmt.Sprintf("%s to %s",
			a.TimeRange.Start.Format("2006-01-02 15:04:05"),
			a.TimeRange.End.Format("2006-01-02 15:04:05"))})
	}

	return renderPanel(title, rows)
}

// renderTimelineSummary draws the bounds of a timeline in a bordered panel.
func renderTimelineSummary(title string, tl *model.Timeline) string {
	return renderPanel(title, [][2]string{
		{"Events", ValueStyle.Render(fmt.Sprintf("%d", len(tl.Events)))},
		{"Start", ValueStyle.Render(model.FormatTimestamp(tl.StartTime))},
		{"End", ValueStyle.Render(model.FormatTimestamp(tl.EndTime))},
		{"Duration", ValueStyle.Render(tl.Duration.String())},
	})
}

func renderPanel(title string, rows [][2]string) string {
	var sb strings.Builder
	sb.WriteString(TitleStyle.Render(title))
	for _, row := range rows {
		sb.WriteString("\n")
		sb.WriteString(LabelStyle.Render(fmt.Sprintf("%-14s", row[0])))
		sb.WriteString(row[1])
	}
	return PanelStyle.Render(sb.String())
}

// renderEntryTable draws a static table of entries.
func renderEntryTable(entries []model.Entry, terminalWidth int) string {
	if terminalWidth <= 0 {
		terminalWidth = defaultTermWidth
	}
	urlWidth := urlColumnWidth(terminalWidth)

	columns := []table.Column{
		{Title: "Method", Width: methodColumnWidth},
		{Title: "URL", Width: urlWidth},
		{Title: "Status", Width: statusColumnWidth},
		{Title: "Time", Width: durationColumnWidth},
		{Title: "Size", Width: sizeColumnWidth},
	}

	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, table.Row{
			formatMethod(e.Request.Method),
			formatURL(e.Request.URL, urlWidth),
			formatStatus(e.Response.StatusCode, e.Response.StatusText),
			formatDuration(e.Time),
			formatBytes(e.Response.Content.Size),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+1),
		table.WithWidth(terminalWidth),
	)
	t = ApplyTableStyles(t)
	return t.View()
}

// renderEventTable draws a static table of timeline events.
func renderEventTable(events []model.Event, terminalWidth int) string {
	if terminalWidth <= 0 {
		terminalWidth = defaultTermWidth
	}
	descWidth := terminalWidth - 26 - 20 - 6
	if descWidth < minURLColumnWidth {
		descWidth = minURLColumnWidth
	}

	columns := []table.Column{
		{Title: "Timestamp", Width: 26},
		{Title: "Event", Width: 20},
		{Title: "Description", Width: descWidth},
	}

	rows := make([]table.Row, 0, len(events))
	for _, e := range events {
		rows = append(rows, table.Row{
			model.FormatTimestamp(e.Timestamp),
			truncateString(e.Event, 20),
			truncateString(e.Description, descWidth),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+1),
		table.WithWidth(terminalWidth),
	)
	t = ApplyTableStyles(t)
	return t.View()
}

func urlColumnWidth(terminalWidth int) int {
	available := terminalWidth - methodColumnWidth - statusColumnWidth - durationColumnWidth - sizeColumnWidth - 10
	if available < minURLColumnWidth {
		return minURLColumnWidth
	}
	if available > maxURLColumnWidth {
		return maxURLColumnWidth
	}
	return available
}

func formatMethod(method string) string {
	if method == "" {
		method = "GET"
	}
	if len(method) > 7 {
		return method[:7]
	}
	return method
}

// formatURL shows host and path, truncated to width
func formatURL(fullURL string, width int) string {
	if fullURL == "" {
		return "/"
	}

	u, err := url.Parse(fullURL)
	if err != nil {
		return truncateString(fullURL, width)
	}

	path := u.Path
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path = path + "?" + u.RawQuery
	}
	return truncateString(u.Host+path, width)
}

func formatStatus(code int, text string) string {
	if code == 0 {
		return "---"
	}
	if text != "" {
		status := fmt.Sprintf("%d %s", code, text)
		if len(status) > statusColumnWidth {
			return fmt.Sprintf("%d", code)
		}
		return status
	}
	return fmt.Sprintf("%d", code)
}

func formatDuration(durationMs float64) string {
	if durationMs <= 0 {
		return "---"
	}

	d := time.Duration(durationMs * float64(time.Millisecond))

	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dμs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		seconds := float64(d.Milliseconds()) / 1000.0
		return fmt.Sprintf("%.1fs", seconds)
	default:
		minutes := int(d.Minutes())
		seconds := int(d.Seconds()) - (minutes * 60)
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	}
}

func formatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%dB", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%cB", float64(size)/float64(div), "KMGTPE"[exp])
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// sectionTitle renders a heading above a table.
func sectionTitle(text string, count int) string {
	return lipgloss.NewStyle().Bold(true).Foreground(RGBBlue).Render(fmt.Sprintf("%s (%d)", text, count))
}
