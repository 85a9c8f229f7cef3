package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// TimestampLayout renders timestamps in UTC with millisecond precision, e.g. 2024-01-01T00:00:00.000Z
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTimestamp renders t using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Event is a single labeled, timestamped occurrence.
type Event struct {
	Timestamp   time.Time
	Event       string
	Description string
	Metadata    map[string]any
}

type eventJSON struct {
	Timestamp   string         `json:"timestamp"`
	Event       string         `json:"event"`
	Description string         `json:"description,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// MarshalJSON renders the timestamp with TimestampLayout.
func (e Event) MarshalJSON() ([]byte, error) {
	return marshalPlain(eventJSON{
		Timestamp:   FormatTimestamp(e.Timestamp),
		Event:       e.Event,
		Description: e.Description,
		Metadata:    e.Metadata,
	})
}

// Timeline is an ordered, bounded sequence of events. Events are always sorted by
// timestamp and StartTime, EndTime and Duration always describe the current Events.
type Timeline struct {
	Events    []Event
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

type timelineJSON struct {
	Events    []Event `json:"events"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Duration  int64   `json:"duration"` // milliseconds
}

// MarshalJSON renders the timeline with the duration in milliseconds.
func (t Timeline) MarshalJSON() ([]byte, error) {
	events := t.Events
	if events == nil {
		events = []Event{}
	}
	return marshalPlain(timelineJSON{
		Events:    events,
		StartTime: FormatTimestamp(t.StartTime),
		EndTime:   FormatTimestamp(t.EndTime),
		Duration:  t.Duration.Milliseconds(),
	})
}

// marshalPlain is json.Marshal without HTML escaping, labels are free text.
func marshalPlain(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
