package timeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/pb33f/tracelens/motor/model"
)

// markdownLine matches "- [timestamp] event: description"
var markdownLine = regexp.MustCompile(`^-\s*\[(.*?)\]\s*(.*?):\s*(.*)`)

type rawDocument struct {
	Events json.RawMessage `json:"events"`
}

type rawEvent struct {
	Timestamp   json.RawMessage `json:"timestamp"`
	Event       string          `json:"event"`
	Description string          `json:"description"`
	Metadata    map[string]any  `json:"metadata"`
}

// ParseFromJSON decodes {"events": [...]} into a processed timeline.
// Syntax errors are reported as model.ErrMalformedInput; a missing events array,
// a non-object event or an event without a label as model.ErrInvalidStructure;
// an unreadable timestamp as model.ErrInvalidTimestamp.
func ParseFromJSON(data []byte) (*model.Timeline, error) {
	if !json.Valid(data) {
		var probe json.RawMessage
		err := json.Unmarshal(data, &probe)
		if err == nil {
			err = fmt.Errorf("invalid json")
		}
		return nil, fmt.Errorf("%w: failed to parse timeline JSON: %w", model.ErrMalformedInput, err)
	}

	var doc rawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: timeline document must be an object: %w", model.ErrInvalidStructure, err)
	}

	events := bytes.TrimSpace(doc.Events)
	if len(events) == 0 || events[0] != '[' {
		return nil, fmt.Errorf("%w: events array is required", model.ErrInvalidStructure)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(events, &items); err != nil {
		return nil, fmt.Errorf("%w: events: %w", model.ErrInvalidStructure, err)
	}

	parsed := make([]model.Event, 0, len(items))
	for i, item := range items {
		event, err := decodeEvent(item)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		parsed = append(parsed, event)
	}

	return Process(parsed), nil
}

// ParseFromString is ParseFromJSON for text input.
func ParseFromString(text string) (*model.Timeline, error) {
	return ParseFromJSON([]byte(text))
}

func decodeEvent(item json.RawMessage) (model.Event, error) {
	if bytes.Equal(bytes.TrimSpace(item), []byte("null")) {
		return model.Event{}, fmt.Errorf("%w: event must be an object", model.ErrInvalidStructure)
	}

	decoder := json.NewDecoder(bytes.NewReader(item))
	decoder.UseNumber()

	var raw rawEvent
	if err := decoder.Decode(&raw); err != nil {
		return model.Event{}, fmt.Errorf("%w: %w", model.ErrInvalidStructure, err)
	}
	if raw.Event == "" {
		return model.Event{}, fmt.Errorf("%w: event label is required", model.ErrInvalidStructure)
	}

	ts, err := parseRawTimestamp(raw.Timestamp)
	if err != nil {
		return model.Event{}, err
	}

	return model.Event{
		Timestamp:   ts,
		Event:       raw.Event,
		Description: raw.Description,
		Metadata:    raw.Metadata,
	}, nil
}

// ParseFromMarkdown reads one event per "- [timestamp] event: description" line.
// Lines that do not match, have an empty label, or carry an unreadable timestamp
// are skipped. It never fails.
func ParseFromMarkdown(text string) *model.Timeline {
	events := make([]model.Event, 0)
	for _, line := range strings.Split(text, "\n") {
		match := markdownLine.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		label := strings.TrimSpace(match[2])
		if label == "" {
			continue
		}
		ts, err := ParseTimestamp(match[1])
		if err != nil {
			continue
		}

		events = append(events, model.Event{
			Timestamp:   ts,
			Event:       label,
			Description: strings.TrimSpace(match[3]),
		})
	}
	return Process(events)
}
