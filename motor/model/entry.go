package model

import "encoding/json"

// Entry describes one recorded request-response pair and its timing.
type Entry struct {
	// Start of the request (ISO 8601), kept as recorded.
	Start string `json:"startedDateTime"`

	// Time is the total elapsed time in milliseconds.
	Time float64 `json:"time"`

	// Request details
	Request Request `json:"request"`

	// Response details
	Response Response `json:"response"`

	// Cache is carried through untouched, it is never interpreted.
	Cache json.RawMessage `json:"cache,omitempty"`

	// Timings contains the per-phase breakdown of Time.
	Timings Timings `json:"timings"`
}

// IsError reports whether the response status is at or above threshold.
func (e *Entry) IsError(threshold int) bool {
	return e.Response.StatusCode >= threshold
}

// IsSlow reports whether the elapsed time is strictly above thresholdMs.
func (e *Entry) IsSlow(thresholdMs float64) bool {
	return e.Time > thresholdMs
}
