package timeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/pb33f/tracelens/motor/model"
)

// accepted textual layouts, tried in order. Layouts without a zone are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
}

// timestamps must render with a four-digit year to read back
var (
	minTimestampMillis = time.Date(0, time.January, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	maxTimestampMillis = time.Date(9999, time.December, 31, 23, 59, 59, 999_000_000, time.UTC).UnixMilli()
)

// ParseTimestamp reads a point in time from text. Precision is cut to the
// millisecond, the resolution timestamps are written with.
func ParseTimestamp(text string) (time.Time, error) {
	text = strings.TrimSpace(text)
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, text)
		if err != nil {
			continue
		}
		if ms := t.UnixMilli(); ms < minTimestampMillis || ms > maxTimestampMillis {
			return time.Time{}, fmt.Errorf("%w: %q is out of range", model.ErrInvalidTimestamp, text)
		}
		return truncateMillis(t), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", model.ErrInvalidTimestamp, text)
}

// parseRawTimestamp accepts a JSON string in any supported layout, or a JSON
// number of milliseconds since the unix epoch.
func parseRawTimestamp(raw json.RawMessage) (time.Time, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}, fmt.Errorf("%w: timestamp is required", model.ErrInvalidTimestamp)
	}

	if raw[0] == '"' {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return time.Time{}, fmt.Errorf("%w: %w", model.ErrInvalidTimestamp, err)
		}
		return ParseTimestamp(text)
	}

	var millis float64
	if err := json.Unmarshal(raw, &millis); err != nil {
		return time.Time{}, fmt.Errorf("%w: %s is neither text nor a number", model.ErrInvalidTimestamp, raw)
	}
	if math.IsNaN(millis) || math.IsInf(millis, 0) ||
		millis < float64(minTimestampMillis) || millis > float64(maxTimestampMillis) {
		return time.Time{}, fmt.Errorf("%w: %s is out of range", model.ErrInvalidTimestamp, raw)
	}
	return time.UnixMilli(int64(millis)).UTC(), nil
}

func truncateMillis(t time.Time) time.Time {
	return t.Add(-time.Duration(t.Nanosecond() % int(time.Millisecond)))
}
