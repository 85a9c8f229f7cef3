package timeline

import (
	"strings"
	"time"

	"github.com/pb33f/tracelens/motor/model"
)

// FilterByDateRange keeps the events with start <= timestamp <= end and
// derives a new timeline from them.
func FilterByDateRange(tl *model.Timeline, start, end time.Time) *model.Timeline {
	return filter(tl, func(e model.Event) bool {
		return !e.Timestamp.Before(start) && !e.Timestamp.After(end)
	})
}

// FilterByLabel keeps the events whose label contains substr.
func FilterByLabel(tl *model.Timeline, substr string) *model.Timeline {
	return filter(tl, func(e model.Event) bool {
		return strings.Contains(e.Event, substr)
	})
}

func filter(tl *model.Timeline, keep func(model.Event) bool) *model.Timeline {
	kept := make([]model.Event, 0, len(tl.Events))
	for _, e := range tl.Events {
		if keep(e) {
			kept = append(kept, e)
		}
	}
	return Process(kept)
}
