package model

import "github.com/pb33f/harhar"

// HAR represents the root of an HTTP Archive document.
//
// W3C Spec: https://w3c.github.io/web-performance/specs/HAR/Overview.html
type HAR struct {
	Log Log `json:"log"`
}

// Log represents a set of HTTP Request/Response Entries.
type Log struct {
	// Version of the log format.
	Version string `json:"version"`

	// Creator of this set of Log entries.
	Creator harhar.Creator `json:"creator"`

	// Browser information that produced this set of Log entries.
	Browser *harhar.Creator `json:"browser,omitempty"`

	// Pages are carried through from the source, they are not analyzed.
	Pages []harhar.Page `json:"pages,omitempty"`

	// Entries in source order.
	Entries []Entry `json:"entries"`
}
