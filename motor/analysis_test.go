package motor

import (
	"errors"
	"testing"
	"time"

	"github.com/pb33f/tracelens/motor/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(url string, status int, elapsed float64, size int64) model.Entry {
	return model.Entry{
		Time:     elapsed,
		Request:  model.Request{Method: "GET", URL: url},
		Response: model.Response{StatusCode: status, Content: model.Content{Size: size}},
	}
}

func TestAnalyze_ErrorThresholdIsInclusive(t *testing.T) {
	analysis, err := Analyze(model.Log{Entries: []model.Entry{
		entry("https://a.com/399", 399, 10, 0),
		entry("https://a.com/400", 400, 10, 0),
		entry("https://a.com/503", 503, 10, 0),
	}})
	require.NoError(t, err)

	assert.Equal(t, []string{"https://a.com/400", "https://a.com/503"}, urls(analysis.ErrorEntries))
}

func TestAnalyze_SlowThresholdIsStrict(t *testing.T) {
	analysis, err := Analyze(model.Log{Entries: []model.Entry{
		entry("https://a.com/1000", 200, 1000, 0),
		entry("https://a.com/1001", 200, 1001, 0),
		entry("https://a.com/1000.5", 200, 1000.5, 0),
	}})
	require.NoError(t, err)

	assert.Equal(t, []string{"https://a.com/1001", "https://a.com/1000.5"}, urls(analysis.SlowEntries))
}

func TestAnalyze_DomainsAreDistinct(t *testing.T) {
	analysis, err := Analyze(model.Log{Entries: []model.Entry{
		entry("https://api.example.com/users?page=1", 200, 1, 0),
		entry("https://cdn.example.com/app.js", 200, 1, 0),
		entry("https://api.example.com/users?page=2", 200, 1, 0),
		entry("http://API.Example.com:8080/other#frag", 200, 1, 0),
		entry("https://cdn.example.com/app.css", 200, 1, 0),
	}})
	require.NoError(t, err)

	assert.Equal(t, []string{"api.example.com", "cdn.example.com"}, analysis.Domains)
}

func TestAnalyze_Totals(t *testing.T) {
	analysis, err := Analyze(model.Log{Entries: []model.Entry{
		entry("https://a.com/1", 200, 100, 1024),
		entry("https://a.com/2", 200, 200, 2048),
		entry("https://a.com/3", 200, 600, 0),
	}})
	require.NoError(t, err)

	assert.Equal(t, 3, analysis.TotalRequests)
	assert.Equal(t, int64(3072), analysis.TotalSize)
	assert.InDelta(t, 300.0, analysis.AverageResponseTime, 1e-9)
	assert.Empty(t, analysis.Fingerprint)
}

func TestAnalyze_NilEntries(t *testing.T) {
	analysis, err := Analyze(model.Log{Version: "1.2"})
	require.NoError(t, err)

	assert.Equal(t, 0, analysis.TotalRequests)
	assert.Equal(t, 0.0, analysis.AverageResponseTime)
	assert.NotNil(t, analysis.Entries)
	assert.NotNil(t, analysis.Domains)
}

func TestAnalyze_MalformedURL(t *testing.T) {
	_, err := Analyze(model.Log{Entries: []model.Entry{
		entry("https://a.com/", 200, 1, 0),
		entry("http://[::1", 200, 1, 0),
	}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrMalformedURL))
}

func TestAnalyze_TimeRange(t *testing.T) {
	first := entry("https://a.com/1", 200, 1, 0)
	first.Start = "2024-01-01T10:00:05.250Z"
	second := entry("https://a.com/2", 200, 1, 0)
	second.Start = "2024-01-01T10:00:01Z"
	third := entry("https://a.com/3", 200, 1, 0)
	third.Start = "not a date"

	analysis, err := Analyze(model.Log{Entries: []model.Entry{first, second, third}})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 1, 0, time.UTC), analysis.TimeRange.Start.UTC())
	assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 5, 250_000_000, time.UTC), analysis.TimeRange.End.UTC())
}

func TestHostname(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://a.com", "a.com"},
		{"https://a.com/path?q=1#x", "a.com"},
		{"https://User:pw@Sub.A.COM:8443/", "sub.a.com"},
		{"http://127.0.0.1:9876/health", "127.0.0.1"},
		{"http://[::1]:8080/", "[::1]"},
		{"https://bücher.example/", "xn--bcher-kva.example"},
		{"data:text/plain,hello", ""},
		{"https://a.com/100%", "a.com"},
		{"https://a.com/%zz/x?q=1", "a.com"},
		{"https://Shop.A.com:443/50%off#top", "shop.a.com"},
		{"https://a.com:65535/", "a.com"},
	}

	for _, tc := range tests {
		t.Run(tc.url, func(t *testing.T) {
			got, err := Hostname(tc.url)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseFromJSON_StrayPercentInPath(t *testing.T) {
	analysis := mustParse(t, buildHAR(t,
		testEntry{url: "https://a.com/100%", status: 200, time: 10},
		testEntry{url: "https://b.com/%zz", status: 200, time: 10},
	))
	assert.Equal(t, []string{"a.com", "b.com"}, analysis.Domains)
}

func TestHostname_Invalid(t *testing.T) {
	for _, raw := range []string{
		"",
		"example.com/path",
		"/relative",
		"https://",
		"https:///path",
		"http://[::1",
		"://missing-scheme",
		"https://a.com:99999/",
		"https://a.com:65536/100%",
		"https://[::1/100%",
	} {
		_, err := Hostname(raw)
		assert.Error(t, err, raw)
	}
}
