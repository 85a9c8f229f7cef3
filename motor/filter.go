package motor

import (
	"strings"

	"github.com/pb33f/tracelens/motor/model"
)

// Filter returns the entries of a, in order, for which keep returns true.
// The analysis aggregates are not recomputed.
func Filter(a *TraceAnalysis, keep func(entry model.Entry) bool) []model.Entry {
	filtered := make([]model.Entry, 0)
	for _, entry := range a.Entries {
		if keep(entry) {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

// FilterByDomain returns the entries whose hostname is exactly domain.
func FilterByDomain(a *TraceAnalysis, domain string) []model.Entry {
	filtered := make([]model.Entry, 0)
	for i, entry := range a.Entries {
		if a.hostnameAt(i) == domain {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

// FilterByStatusCode returns the entries whose response status is exactly statusCode.
func FilterByStatusCode(a *TraceAnalysis, statusCode int) []model.Entry {
	return Filter(a, func(entry model.Entry) bool {
		return entry.Response.StatusCode == statusCode
	})
}

// FilterByContentType returns the entries whose response MIME type contains contentType.
// Matching is case-sensitive, "json" matches "application/json; charset=utf-8".
func FilterByContentType(a *TraceAnalysis, contentType string) []model.Entry {
	return Filter(a, func(entry model.Entry) bool {
		return strings.Contains(entry.Response.Content.MIMEType, contentType)
	})
}

// FilterByURL returns the entries whose request URL matches pattern.
func FilterByURL(a *TraceAnalysis, pattern string, mode SearchMode) ([]model.Entry, error) {
	match, err := newURLMatcher(pattern, mode)
	if err != nil {
		return nil, err
	}
	return Filter(a, func(entry model.Entry) bool {
		return match(entry.Request.URL)
	}), nil
}
