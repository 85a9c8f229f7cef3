package hargen

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/pb33f/tracelens/motor/model"
)

var timelineLabels = []string{"started", "deployed", "alert", "rollback", "recovered", "scaled", "paged"}

// TimelineOptions configures timeline event generation
type TimelineOptions struct {
	EventCount int
	Seed       int64
	StartTime  time.Time     // earliest possible timestamp (default: now)
	Spread     time.Duration // events fall within StartTime + Spread (default: 1h)
}

// GenerateTimelineEvents returns unordered events; timestamps are truncated to
// the second so that collisions, and therefore stable ordering, get exercised.
func GenerateTimelineEvents(opts TimelineOptions) []model.Event {
	if opts.StartTime.IsZero() {
		opts.StartTime = time.Now()
	}
	if opts.Spread <= 0 {
		opts.Spread = time.Hour
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	base := opts.StartTime.UTC().Truncate(time.Second)
	seconds := int64(opts.Spread / time.Second)
	if seconds < 1 {
		seconds = 1
	}

	events := make([]model.Event, 0, opts.EventCount)
	for i := 0; i < opts.EventCount; i++ {
		offset := time.Duration(rng.Int63n(seconds)) * time.Second
		label := timelineLabels[rng.Intn(len(timelineLabels))]
		events = append(events, model.Event{
			Timestamp:   base.Add(offset),
			Event:       label,
			Description: fmt.Sprintf("%s #%d", label, i),
			Metadata:    map[string]any{"sequence": i},
		})
	}
	return events
}
