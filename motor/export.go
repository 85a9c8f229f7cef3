package motor

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pb33f/tracelens/motor/model"
)

// Metrics holds totals across every entry of an analysis, in milliseconds.
type Metrics struct {
	TotalTime   float64 `json:"totalTime"`
	DNSTime     float64 `json:"dnsTime"`
	ConnectTime float64 `json:"connectTime"`
	SendTime    float64 `json:"sendTime"`
	WaitTime    float64 `json:"waitTime"`
	ReceiveTime float64 `json:"receiveTime"`
	BlockedTime float64 `json:"blockedTime"`
	SSLTime     float64 `json:"sslTime"`
}

// PerformanceMetrics sums the elapsed time and every timing phase of a's entries.
// Phases recorded as -1 (not applicable) contribute nothing.
func PerformanceMetrics(a *TraceAnalysis) Metrics {
	var m Metrics
	for i := range a.Entries {
		entry := &a.Entries[i]
		m.TotalTime += entry.Time
		m.DNSTime += phase(entry.Timings.DNS)
		m.ConnectTime += phase(entry.Timings.Connect)
		m.SendTime += phase(entry.Timings.Send)
		m.WaitTime += phase(entry.Timings.Wait)
		m.ReceiveTime += phase(entry.Timings.Receive)
		m.BlockedTime += phase(entry.Timings.Blocked)
		m.SSLTime += phase(entry.Timings.SSL)
	}
	return m
}

func phase(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

type analysisDocument struct {
	Summary            analysisSummary `json:"summary"`
	PerformanceMetrics Metrics         `json:"performanceMetrics"`
	Errors             []errorRow      `json:"errors"`
	SlowRequests       []slowRow       `json:"slowRequests"`
}

type analysisSummary struct {
	TotalRequests       int      `json:"totalRequests"`
	TotalSize           int64    `json:"totalSize"`
	AverageResponseTime float64  `json:"averageResponseTime"`
	Domains             []string `json:"domains"`
	ErrorCount          int      `json:"errorCount"`
	SlowRequestCount    int      `json:"slowRequestCount"`
}

type errorRow struct {
	URL        string  `json:"url"`
	Status     int     `json:"status"`
	StatusText string  `json:"statusText"`
	Time       float64 `json:"time"`
}

type slowRow struct {
	URL  string  `json:"url"`
	Time float64 `json:"time"`
	Size int64   `json:"size"`
}

// ExportAnalysis renders a as an indented JSON report: summary, performanceMetrics,
// errors and slowRequests, in that order.
func ExportAnalysis(a *TraceAnalysis) (string, error) {
	domains := a.Domains
	if domains == nil {
		domains = []string{}
	}

	doc := analysisDocument{
		Summary: analysisSummary{
			TotalRequests:       a.TotalRequests,
			TotalSize:           a.TotalSize,
			AverageResponseTime: a.AverageResponseTime,
			Domains:             domains,
			ErrorCount:          len(a.ErrorEntries),
			SlowRequestCount:    len(a.SlowEntries),
		},
		PerformanceMetrics: PerformanceMetrics(a),
		Errors:             make([]errorRow, 0, len(a.ErrorEntries)),
		SlowRequests:       make([]slowRow, 0, len(a.SlowEntries)),
	}

	for _, entry := range a.ErrorEntries {
		doc.Errors = append(doc.Errors, errorRow{
			URL:        entry.Request.URL,
			Status:     entry.Response.StatusCode,
			StatusText: entry.Response.StatusText,
			Time:       entry.Time,
		})
	}
	for _, entry := range a.SlowEntries {
		doc.SlowRequests = append(doc.SlowRequests, slowRow{
			URL:  entry.Request.URL,
			Time: entry.Time,
			Size: entry.Response.Content.Size,
		})
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return "", fmt.Errorf("failed to encode analysis: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// CSVHeader lists the columns written by ExportToCSV.
var CSVHeader = []string{
	"URL",
	"Method",
	"Status",
	"Status Text",
	"Content Type",
	"Size",
	"Time",
	"DNS Time",
	"Connect Time",
	"Send Time",
	"Wait Time",
	"Receive Time",
}

// ExportToCSV renders one header row and one row per entry. Fields are quoted
// per RFC 4180 when they contain commas, quotes or line breaks.
func ExportToCSV(a *TraceAnalysis) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(CSVHeader); err != nil {
		return "", fmt.Errorf("failed to write csv header: %w", err)
	}
	for i := range a.Entries {
		if err := w.Write(csvRow(&a.Entries[i])); err != nil {
			return "", fmt.Errorf("failed to write csv row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.String(), nil
}

func csvRow(entry *model.Entry) []string {
	return []string{
		entry.Request.URL,
		entry.Request.Method,
		strconv.Itoa(entry.Response.StatusCode),
		entry.Response.StatusText,
		entry.Response.Content.MIMEType,
		strconv.FormatInt(entry.Response.Content.Size, 10),
		formatNumber(entry.Time),
		formatNumber(entry.Timings.DNS),
		formatNumber(entry.Timings.Connect),
		formatNumber(entry.Timings.Send),
		formatNumber(entry.Timings.Wait),
		formatNumber(entry.Timings.Receive),
	}
}

// formatNumber prints the shortest representation, 12 not 12.000000
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
