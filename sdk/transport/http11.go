package transport

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"

	httputils "github.com/margo/wget/shared-lib/http"
)

type HTTP1Transport struct {
	client  *http.Client
	timeout time.Duration
}

// NewHTTP1Transport builds a transport on a private cleanhttp client so no
// state leaks through http.DefaultClient. A zero timeout leaves only the
// dial and TLS handshake limits of the underlying transport in place.
func NewHTTP1Transport(timeout time.Duration) *HTTP1Transport {
	client := cleanhttp.DefaultClient()
	client.Timeout = timeout

	return &HTTP1Transport{
		client:  client,
		timeout: timeout,
	}
}

// NewHTTP1TransportWithClient wraps an existing client, mainly for tests
// that point at an httptest server.
func NewHTTP1TransportWithClient(client *http.Client) *HTTP1Transport {
	return &HTTP1Transport{
		client:  client,
		timeout: client.Timeout,
	}
}

func (h *HTTP1Transport) Get(ctx context.Context, url string) (*Response, error) {
	req, err := httputils.NewGetRequest(ctx, url)
	if err != nil {
		return nil, err
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}

	return &Response{
		StatusCode:    resp.StatusCode,
		Status:        resp.Status,
		Header:        resp.Header,
		ContentLength: resp.ContentLength,
		Body:          resp.Body,
	}, nil
}

func (h *HTTP1Transport) Close() error {
	h.client.CloseIdleConnections()
	return nil
}

func (h *HTTP1Transport) Protocol() ProtocolType {
	return HTTP1
}
