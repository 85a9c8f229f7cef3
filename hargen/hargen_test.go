package hargen

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pb33f/tracelens/motor/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInMemory_Deterministic(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	opts := GenerateOptions{EntryCount: 25, Seed: 7, ErrorRate: 0.3, SlowRate: 0.2, StartTime: start}

	first, err := GenerateInMemory(opts)
	require.NoError(t, err)
	second, err := GenerateInMemory(opts)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first.Log.Entries, 25)
	assert.Equal(t, "1.2", first.Log.Version)
	assert.Equal(t, "hargen", first.Log.Creator.Name)
	assert.Equal(t, "2024-03-01T12:00:00Z", first.Log.Entries[0].Start)
}

func TestGenerateInMemory_Rates(t *testing.T) {
	all, err := GenerateInMemory(GenerateOptions{EntryCount: 40, Seed: 1, ErrorRate: 1, SlowRate: 1})
	require.NoError(t, err)
	for i, e := range all.Log.Entries {
		assert.True(t, e.IsError(400), "entry %d status %d", i, e.Response.StatusCode)
		assert.True(t, e.IsSlow(1000), "entry %d time %v", i, e.Time)
	}

	none, err := GenerateInMemory(GenerateOptions{EntryCount: 40, Seed: 1, ErrorRate: 0, SlowRate: 0})
	require.NoError(t, err)
	for i, e := range none.Log.Entries {
		assert.False(t, e.IsError(400), "entry %d status %d", i, e.Response.StatusCode)
		assert.False(t, e.IsSlow(1000), "entry %d time %v", i, e.Time)
	}
}

func TestGenerateInMemory_Domains(t *testing.T) {
	har, err := GenerateInMemory(GenerateOptions{EntryCount: 30, Seed: 3, Domains: []string{"only.test"}})
	require.NoError(t, err)
	for _, e := range har.Log.Entries {
		assert.Contains(t, e.Request.URL, "https://only.test/")
	}
}

func TestGenerateInMemory_InvalidRate(t *testing.T) {
	_, err := GenerateInMemory(GenerateOptions{EntryCount: 1, ErrorRate: 1.5})
	assert.Error(t, err)

	_, err = GenerateInMemory(GenerateOptions{EntryCount: 1, SlowRate: -0.1})
	assert.Error(t, err)
}

func TestGenerateEntry_TimeMatchesTimings(t *testing.T) {
	har, err := GenerateInMemory(GenerateOptions{EntryCount: 50, Seed: 11, SlowRate: 0.5})
	require.NoError(t, err)
	for _, e := range har.Log.Entries {
		assert.Equal(t, elapsed(e.Timings), e.Time)
		if e.Timings.SSL > 0 {
			assert.Greater(t, e.Timings.Connect, e.Timings.SSL)
		}
	}
}

func TestGenerateToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.har")

	result, err := GenerateToFile(path, GenerateOptions{EntryCount: 5, Seed: 2})
	require.NoError(t, err)
	assert.Equal(t, path, result.HARFilePath)
	assert.Equal(t, 5, result.TotalEntries)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"entries"`)
	assert.Contains(t, string(data), `"startedDateTime"`)
}

func TestGenerate_TempFile(t *testing.T) {
	result, err := Generate(GenerateOptions{EntryCount: 3, Seed: 2})
	require.NoError(t, err)
	defer os.Remove(result.HARFilePath)

	info, err := os.Stat(result.HARFilePath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestLoadDictionary_Fallback(t *testing.T) {
	dict, err := LoadDictionary("")
	require.NoError(t, err)
	assert.Equal(t, len(fallbackWords), dict.Size())

	dict, err = LoadDictionary(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Equal(t, len(fallbackWords), dict.Size())
}

func TestLoadDictionary_FiltersWords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words")
	require.NoError(t, os.WriteFile(path, []byte("ab\nApple\nbanana's\nCherry\nextraordinarily\n"), 0644))

	dict, err := LoadDictionary(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "cherry"}, dict.words)
}

func TestLoadDictionary_NoValidWords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words")
	require.NoError(t, os.WriteFile(path, []byte("a\nb2\n"), 0644))

	_, err := LoadDictionary(path)
	assert.Error(t, err)
}

func TestGenerateTimelineEvents(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	events := GenerateTimelineEvents(TimelineOptions{EventCount: 30, Seed: 5, StartTime: start, Spread: time.Minute})

	require.Len(t, events, 30)
	for i, e := range events {
		assert.NotEmpty(t, e.Event)
		assert.False(t, e.Timestamp.Before(start))
		assert.True(t, e.Timestamp.Before(start.Add(time.Minute)))
		assert.Equal(t, i, e.Metadata["sequence"])
	}

	again := GenerateTimelineEvents(TimelineOptions{EventCount: 30, Seed: 5, StartTime: start, Spread: time.Minute})
	assert.Equal(t, events, again)
}

func TestGenerateTimelineEvents_Empty(t *testing.T) {
	assert.Equal(t, []model.Event{}, GenerateTimelineEvents(TimelineOptions{Seed: 1}))
}

func TestMarshal_MatchesWrittenFile(t *testing.T) {
	opts := GenerateOptions{EntryCount: 4, Seed: 8, StartTime: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}

	har, err := GenerateInMemory(opts)
	require.NoError(t, err)
	data, err := Marshal(har)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.har")
	_, err = GenerateToFile(path, opts)
	require.NoError(t, err)
	written, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, string(data)+"\n", string(written))
}
