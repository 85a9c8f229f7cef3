package motor

import (
	"fmt"
	"regexp"
	"strings"
)

// SearchMode selects how FilterByURL interprets its pattern.
type SearchMode int

const (
	// PlainText matches a case-sensitive substring.
	PlainText SearchMode = iota
	// Regex matches a Go regular expression anywhere in the URL.
	Regex
)

func (m SearchMode) String() string {
	switch m {
	case PlainText:
		return "plain"
	case Regex:
		return "regex"
	default:
		return fmt.Sprintf("SearchMode(%d)", int(m))
	}
}

type urlMatcher func(url string) bool

func newURLMatcher(pattern string, mode SearchMode) (urlMatcher, error) {
	switch mode {
	case PlainText:
		return func(url string) bool {
			return strings.Contains(url, pattern)
		}, nil
	case Regex:
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
		}
		return re.MatchString, nil
	default:
		return nil, fmt.Errorf("unknown search mode %s", mode)
	}
}
