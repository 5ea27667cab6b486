package http

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	ErrEmptyURL          = errors.New("url is empty")
	ErrRelativeURL       = errors.New("url is not absolute")
	ErrUnsupportedScheme = errors.New("url scheme is not http or https")
	ErrMissingHost       = errors.New("url has no host")
)

// ParseTargetURL parses raw as an absolute http or https URL.
func ParseTargetURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrEmptyURL
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", raw, err)
	}

	if !u.IsAbs() {
		return nil, fmt.Errorf("%w: %q", ErrRelativeURL, raw)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}

	if u.Hostname() == "" {
		return nil, fmt.Errorf("%w: %q", ErrMissingHost, raw)
	}

	return u, nil
}
