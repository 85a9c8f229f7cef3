package timeline

import (
	"slices"
	"time"

	"github.com/pb33f/tracelens/motor/model"
)

// nowFunc supplies the bounds of an empty timeline.
var nowFunc = time.Now

// Process sorts a copy of events by timestamp, keeping the original order of
// events that share a timestamp, and derives the start, end and duration.
// An empty timeline starts and ends at the current wall clock time.
func Process(events []model.Event) *model.Timeline {
	sorted := slices.Clone(events)
	if sorted == nil {
		sorted = []model.Event{}
	}
	slices.SortStableFunc(sorted, func(a, b model.Event) int {
		return a.Timestamp.Compare(b.Timestamp)
	})

	tl := &model.Timeline{Events: sorted}
	if len(sorted) == 0 {
		now := nowFunc()
		tl.StartTime = now
		tl.EndTime = now
		return tl
	}

	tl.StartTime = sorted[0].Timestamp
	tl.EndTime = sorted[len(sorted)-1].Timestamp
	tl.Duration = tl.EndTime.Sub(tl.StartTime)
	return tl
}
