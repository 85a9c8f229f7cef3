package motor

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/idna"
)

// schemes that cannot exist without a host
var hostRequired = map[string]struct{}{
	"http":  {},
	"https": {},
	"ws":    {},
	"wss":   {},
	"ftp":   {},
}

// Hostname extracts the host component of an absolute URL the way a browser
// reports it: lower-cased, internationalised names in punycode, IPv6 bracketed.
func Hostname(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		// browsers record paths with stray '%' unescaped, only the authority matters here
		authority, ok := schemeAndAuthority(rawURL)
		if !ok {
			return "", err
		}
		if u, err = url.Parse(authority); err != nil {
			return "", err
		}
	}
	if u.Scheme == "" {
		return "", fmt.Errorf("url %q is not absolute", rawURL)
	}
	if port := u.Port(); port != "" {
		if n, err := strconv.Atoi(port); err != nil || n > 65535 {
			return "", fmt.Errorf("url %q has an invalid port %q", rawURL, port)
		}
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		if _, ok := hostRequired[strings.ToLower(u.Scheme)]; ok {
			return "", fmt.Errorf("url %q has no host", rawURL)
		}
		return "", nil
	}

	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() == nil {
			return "[" + host + "]", nil
		}
		return host, nil
	}

	ascii, err := idna.Punycode.ToASCII(host)
	if err != nil {
		return "", fmt.Errorf("url %q has an invalid host: %w", rawURL, err)
	}
	return ascii, nil
}

// schemeAndAuthority cuts rawURL down to "scheme://authority", dropping the
// path, query and fragment.
func schemeAndAuthority(rawURL string) (string, bool) {
	scheme, rest, found := strings.Cut(rawURL, "://")
	if !found || scheme == "" {
		return "", false
	}
	if end := strings.IndexAny(rest, "/?#"); end >= 0 {
		rest = rest[:end]
	}
	return scheme + "://" + rest, true
}
