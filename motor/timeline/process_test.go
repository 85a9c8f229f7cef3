package timeline

import (
	"testing"
	"time"

	"github.com/pb33f/tracelens/hargen"
	"github.com/pb33f/tracelens/motor/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func at(seconds int, label string) model.Event {
	return model.Event{Timestamp: base.Add(time.Duration(seconds) * time.Second), Event: label}
}

func labels(tl *model.Timeline) []string {
	out := make([]string, 0, len(tl.Events))
	for _, e := range tl.Events {
		out = append(out, e.Event)
	}
	return out
}

func TestProcess_SortsAndBounds(t *testing.T) {
	tl := Process([]model.Event{at(30, "c"), at(10, "a"), at(20, "b")})

	assert.Equal(t, []string{"a", "b", "c"}, labels(tl))
	assert.True(t, tl.StartTime.Equal(base.Add(10*time.Second)))
	assert.True(t, tl.EndTime.Equal(base.Add(30*time.Second)))
	assert.Equal(t, 20*time.Second, tl.Duration)
}

func TestProcess_StableForEqualTimestamps(t *testing.T) {
	tl := Process([]model.Event{at(5, "first"), at(1, "early"), at(5, "second"), at(5, "third")})

	assert.Equal(t, []string{"early", "first", "second", "third"}, labels(tl))
}

func TestProcess_DoesNotModifyInput(t *testing.T) {
	input := []model.Event{at(2, "b"), at(1, "a")}
	_ = Process(input)

	assert.Equal(t, "b", input[0].Event)
	assert.Equal(t, "a", input[1].Event)
}

func TestProcess_SingleEvent(t *testing.T) {
	tl := Process([]model.Event{at(7, "only")})

	assert.True(t, tl.StartTime.Equal(tl.EndTime))
	assert.Equal(t, time.Duration(0), tl.Duration)
}

func TestProcess_EmptyUsesWallClock(t *testing.T) {
	fixed := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)
	nowFunc = func() time.Time { return fixed }
	t.Cleanup(func() { nowFunc = time.Now })

	tl := Process(nil)
	assert.NotNil(t, tl.Events)
	assert.Empty(t, tl.Events)
	assert.Equal(t, fixed, tl.StartTime)
	assert.Equal(t, fixed, tl.EndTime)
	assert.Equal(t, time.Duration(0), tl.Duration)
}

func TestProcess_GeneratedEventsStaySorted(t *testing.T) {
	events := hargen.GenerateTimelineEvents(hargen.TimelineOptions{
		EventCount: 500,
		Seed:       7,
		StartTime:  base,
		Spread:     2 * time.Minute,
	})

	tl := Process(events)
	require.Len(t, tl.Events, 500)

	for i := 1; i < len(tl.Events); i++ {
		prev, cur := tl.Events[i-1], tl.Events[i]
		require.False(t, cur.Timestamp.Before(prev.Timestamp), "events %d and %d out of order", i-1, i)
		if cur.Timestamp.Equal(prev.Timestamp) {
			// generator records its own order in metadata
			assert.Less(t, prev.Metadata["sequence"].(int), cur.Metadata["sequence"].(int))
		}
	}
	assert.Equal(t, tl.EndTime.Sub(tl.StartTime), tl.Duration)
}
