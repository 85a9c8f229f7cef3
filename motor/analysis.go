package motor

import (
	"fmt"
	"time"

	"github.com/pb33f/harhar"
	"github.com/pb33f/tracelens/motor/model"
)

const (
	// ErrorStatusThreshold is the lowest status code classified as an error.
	ErrorStatusThreshold = 400

	// SlowRequestThreshold in milliseconds, a request must take longer than this to be slow.
	SlowRequestThreshold = 1000.0
)

// TraceAnalysis holds the aggregates computed from a HAR log. It is produced once
// and never modified; filters return new slices.
type TraceAnalysis struct {
	Version string
	Creator harhar.Creator
	Browser *harhar.Creator
	Pages   []harhar.Page

	TotalRequests int
	TotalSize     int64

	// AverageResponseTime is the mean entry time in milliseconds, 0 for an empty log.
	AverageResponseTime float64

	// Domains holds each distinct hostname once, in order of first occurrence.
	Domains []string

	Entries      []model.Entry
	ErrorEntries []model.Entry
	SlowEntries  []model.Entry

	// Fingerprint is the xxhash digest of the source document, empty when analyzed from a model.Log.
	Fingerprint string

	// TimeRange spans the parseable startedDateTime values.
	TimeRange TimeRange

	// hostnames[i] is the hostname of Entries[i]
	hostnames []string
}

type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Analyze computes a TraceAnalysis over log in a single pass. It fails with
// model.ErrMalformedURL on the first entry whose URL yields no hostname.
func Analyze(log model.Log) (*TraceAnalysis, error) {
	entries := log.Entries
	if entries == nil {
		entries = []model.Entry{}
	}

	analysis := &TraceAnalysis{
		Version:       log.Version,
		Creator:       log.Creator,
		Browser:       log.Browser,
		Pages:         log.Pages,
		TotalRequests: len(entries),
		Domains:       make([]string, 0),
		Entries:       entries,
		ErrorEntries:  make([]model.Entry, 0),
		SlowEntries:   make([]model.Entry, 0),
		hostnames:     make([]string, len(entries)),
	}

	seen := make(map[string]struct{})
	var totalTime float64

	for i := range entries {
		entry := &entries[i]

		host, err := Hostname(entry.Request.URL)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", model.ErrMalformedURL, i, err)
		}
		analysis.hostnames[i] = host
		if _, ok := seen[host]; !ok {
			seen[host] = struct{}{}
			analysis.Domains = append(analysis.Domains, host)
		}

		analysis.TotalSize += entry.Response.Content.Size
		totalTime += entry.Time

		if entry.IsError(ErrorStatusThreshold) {
			analysis.ErrorEntries = append(analysis.ErrorEntries, *entry)
		}
		if entry.IsSlow(SlowRequestThreshold) {
			analysis.SlowEntries = append(analysis.SlowEntries, *entry)
		}

		analysis.TimeRange.include(entry.Start)
	}

	if len(entries) > 0 {
		analysis.AverageResponseTime = totalTime / float64(len(entries))
	}

	return analysis, nil
}

func (r *TimeRange) include(start string) {
	if start == "" {
		return
	}
	t, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return
	}
	if r.Start.IsZero() || t.Before(r.Start) {
		r.Start = t
	}
	if t.After(r.End) {
		r.End = t
	}
}

// hostnameAt returns the hostname of Entries[i], falling back to parsing the
// url for analyses that were not built by Analyze.
func (a *TraceAnalysis) hostnameAt(i int) string {
	if i < len(a.hostnames) {
		return a.hostnames[i]
	}
	host, _ := Hostname(a.Entries[i].Request.URL)
	return host
}
