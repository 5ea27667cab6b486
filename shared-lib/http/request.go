package http

import (
	"context"
	"fmt"
	"net/http"
)

// NewGetRequest creates a bare GET request for url bound to ctx.
// No headers are added beyond what net/http sets itself and no body is sent.
func NewGetRequest(ctx context.Context, url string) (*http.Request, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	target, err := ParseTargetURL(url)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create GET request: %w", err)
	}

	return req, nil
}
