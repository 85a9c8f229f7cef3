package timeline

import (
	"testing"
	"time"

	"github.com/pb33f/tracelens/motor/model"
	"github.com/stretchr/testify/assert"
)

func TestFilterByDateRange_InclusiveBounds(t *testing.T) {
	tl := Process([]model.Event{at(0, "before"), at(10, "start"), at(15, "middle"), at(20, "end"), at(30, "after")})

	filtered := FilterByDateRange(tl, base.Add(10*time.Second), base.Add(20*time.Second))

	assert.Equal(t, []string{"start", "middle", "end"}, labels(filtered))
}

func TestFilterByDateRange_RederivesBounds(t *testing.T) {
	tl := Process([]model.Event{at(0, "a"), at(100, "b"), at(130, "c"), at(500, "d")})

	filtered := FilterByDateRange(tl, base.Add(50*time.Second), base.Add(200*time.Second))

	assert.True(t, filtered.StartTime.Equal(base.Add(100*time.Second)))
	assert.True(t, filtered.EndTime.Equal(base.Add(130*time.Second)))
	assert.Equal(t, 30*time.Second, filtered.Duration)

	// source timeline untouched
	assert.Len(t, tl.Events, 4)
	assert.Equal(t, 500*time.Second, tl.Duration)
}

func TestFilterByDateRange_NothingKept(t *testing.T) {
	fixed := time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC)
	nowFunc = func() time.Time { return fixed }
	t.Cleanup(func() { nowFunc = time.Now })

	tl := Process([]model.Event{at(0, "a")})
	filtered := FilterByDateRange(tl, base.Add(time.Hour), base.Add(2*time.Hour))

	assert.Empty(t, filtered.Events)
	assert.Equal(t, fixed, filtered.StartTime)
	assert.Equal(t, time.Duration(0), filtered.Duration)
}

func TestFilterByLabel(t *testing.T) {
	tl := Process([]model.Event{at(0, "deploy api"), at(5, "alert"), at(9, "deploy web")})

	filtered := FilterByLabel(tl, "deploy")

	assert.Equal(t, []string{"deploy api", "deploy web"}, labels(filtered))
	assert.Equal(t, 9*time.Second, filtered.Duration)
}
