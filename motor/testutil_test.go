package motor

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/pb33f/tracelens/hargen"
	"github.com/pb33f/tracelens/motor/model"
	"github.com/stretchr/testify/require"
)

// testEntry is the minimum needed to build one HAR entry in a fixture.
type testEntry struct {
	url      string
	status   int
	size     int64
	time     float64
	mimeType string
}

// buildHAR renders entries as a HAR document.
func buildHAR(t *testing.T, entries ...testEntry) []byte {
	t.Helper()

	items := make([]string, 0, len(entries))
	for i, e := range entries {
		mimeType := e.mimeType
		if mimeType == "" {
			mimeType = "application/json"
		}
		items = append(items, fmt.Sprintf(`{
      "startedDateTime": "2024-01-01T00:00:%02d.000Z",
      "time": %v,
      "request": {"method": "GET", "url": %q, "httpVersion": "HTTP/1.1", "headers": [], "queryString": []},
      "response": {"status": %d, "statusText": "", "httpVersion": "HTTP/1.1", "headers": [],
                   "content": {"size": %d, "mimeType": %q}},
      "cache": {},
      "timings": {"blocked": 0, "dns": 1, "connect": 2, "send": 3, "wait": %v, "receive": 4, "ssl": -1}
    }`, i, e.time, e.url, e.status, e.size, mimeType, e.time))
	}

	return []byte(`{"log": {"version": "1.2", "creator": {"name": "test", "version": "1.0"}, "entries": [` +
		strings.Join(items, ",") + `]}}`)
}

// endToEndHAR holds the two-entry trace used across the analysis tests.
func endToEndHAR(t *testing.T) []byte {
	return buildHAR(t,
		testEntry{url: "https://a.com/index.html", status: 200, size: 100, time: 500, mimeType: "text/html"},
		testEntry{url: "https://b.com/api/data?x=1", status: 500, size: 200, time: 1500},
	)
}

// generatedHAR produces a seeded synthetic HAR document.
func generatedHAR(t *testing.T, entries int) []byte {
	t.Helper()

	har, err := hargen.GenerateInMemory(hargen.GenerateOptions{
		EntryCount:     entries,
		Seed:           42,
		ErrorRate:      0.2,
		SlowRate:       0.2,
		DictionaryPath: "/nonexistent/words",
		StartTime:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	data, err := hargen.Marshal(har)
	require.NoError(t, err)
	return data
}

func mustParse(t *testing.T, data []byte) *TraceAnalysis {
	t.Helper()
	analysis, err := ParseFromJSON(data)
	require.NoError(t, err)
	return analysis
}

func urls(entries []model.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Request.URL)
	}
	return out
}
