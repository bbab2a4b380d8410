// Package origin normalizes raw website addresses into canonical origins.
//
// An Origin is scheme + host with no path, the unit of "one website" for
// discovery. It is derived once per lookup and used both as a cache key
// component and as the base for well-known path construction.
package origin

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Normalization errors.
var (
	// ErrUnparseable is returned when the address cannot be parsed as a
	// URL even after defaulting the scheme.
	ErrUnparseable = errors.New("address cannot be parsed as a URL")

	// ErrMissingHost is returned when the parsed address has no hostname,
	// e.g. "http://".
	ErrMissingHost = errors.New("address has no hostname")

	// ErrUnsupportedScheme is returned for non-HTTP(S) schemes such as
	// "ftp://". Discovery only speaks HTTP and HTTPS.
	ErrUnsupportedScheme = errors.New("address scheme is not http or https")
)

// Origin is a canonical scheme://host string. Immutable by construction:
// the only way to obtain one is Normalize.
type Origin string

// Normalize turns a raw user-supplied address into a canonical Origin.
//
// The scheme defaults to https when absent, scheme and host are
// lowercased, and path, query, and fragment are stripped. Normalize is a
// pure function and total over its error set: any failure is one of the
// package sentinel errors, wrapped with context.
func Normalize(raw string) (Origin, error) {
	trimmed := strings.TrimSpace(raw)
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnparseable, raw)
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}

	host := strings.ToLower(u.Host)
	if u.Hostname() == "" {
		return "", fmt.Errorf("%w: %q", ErrMissingHost, raw)
	}

	return Origin(scheme + "://" + host), nil
}

// String returns the origin as a scheme://host string.
func (o Origin) String() string {
	return string(o)
}

// Host returns the hostname of the origin without any port.
func (o Origin) Host() string {
	u, err := url.Parse(string(o))
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// URL joins a path onto the origin. The path is taken as-is apart from
// ensuring exactly one slash between origin and path.
func (o Origin) URL(path string) string {
	return strings.TrimSuffix(string(o), "/") + "/" + strings.TrimPrefix(path, "/")
}
