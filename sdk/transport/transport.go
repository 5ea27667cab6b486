package transport

import (
	"context"
	"io"
	"net/http"
)

// Transport defines the capability the fetcher needs from the network:
// a single GET that hands back an unread, streaming body.
type Transport interface {
	// Get sends one GET request and returns the response without reading its body
	Get(ctx context.Context, url string) (*Response, error)

	// Close releases idle connections held by the transport
	Close() error

	// Protocol returns the transport protocol type
	Protocol() ProtocolType
}

// Response represents an in-flight response whose body has not been consumed
type Response struct {
	StatusCode    int
	Status        string
	Header        http.Header
	ContentLength int64
	Body          io.ReadCloser
}

type ProtocolType string

const (
	HTTP1 ProtocolType = "http1.1"
	HTTP2 ProtocolType = "http2.0"
	HTTP3 ProtocolType = "http3.0"
)
