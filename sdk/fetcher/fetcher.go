// Package fetcher opens a single HTTP GET for a target URL and hands back the
// unread response, classifying every failure before any body byte is read.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/kr/pretty"
	"go.uber.org/zap"

	"github.com/margo/wget/sdk/transport"
	"github.com/margo/wget/sdk/types"
	httputils "github.com/margo/wget/shared-lib/http"
)

// ResponseHandle is an open response whose body has not been consumed yet.
// Whoever holds it must call Close, directly or by draining it through the
// collector.
type ResponseHandle struct {
	URL           string
	StatusCode    int
	Header        http.Header
	ContentLength int64
	Body          io.ReadCloser

	closeOnce sync.Once
	closeErr  error
}

// Close releases the underlying connection. It is safe to call more than once.
func (h *ResponseHandle) Close() error {
	h.closeOnce.Do(func() {
		if h.Body != nil {
			h.closeErr = h.Body.Close()
		}
	})
	return h.closeErr
}

// ContentType returns the Content-Type header of the response.
func (h *ResponseHandle) ContentType() string {
	if h.Header == nil {
		return ""
	}
	return h.Header.Get("Content-Type")
}

// Fetcher issues one GET per call. There is no retry policy.
type Fetcher struct {
	transport transport.Transport
	validator *validator.Validate
	log       *zap.SugaredLogger
}

func NewFetcher(t transport.Transport, log *zap.SugaredLogger) *Fetcher {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Fetcher{
		transport: t,
		validator: validator.New(),
		log:       log,
	}
}

// Fetch validates rawURL, sends the request and accepts only 2xx responses.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*ResponseHandle, error) {
	if err := f.validate(rawURL); err != nil {
		return nil, err
	}

	f.log.Debugw("sending request", "url", rawURL, "protocol", f.transport.Protocol())

	resp, err := f.transport.Get(ctx, rawURL)
	if err != nil {
		f.log.Debugw("request failed", "url", rawURL, "error", err)
		return nil, types.NewDownloadError(types.ErrorKindNetwork, types.OperationSendingRequest, err).WithURL(rawURL)
	}

	f.log.Debugw("response received",
		"url", rawURL,
		"status", resp.StatusCode,
		"contentLength", resp.ContentLength,
		"headers", pretty.Sprint(resp.Header),
	)

	if err := validateResponse(resp); err != nil {
		// the body is discarded unread
		resp.Body.Close()
		return nil, types.NewDownloadError(types.ErrorKindRequestFailed, types.OperationSendingRequest, err).
			WithURL(rawURL).
			WithStatus(resp.StatusCode)
	}

	return &ResponseHandle{
		URL:           rawURL,
		StatusCode:    resp.StatusCode,
		Header:        resp.Header,
		ContentLength: resp.ContentLength,
		Body:          resp.Body,
	}, nil
}

func (f *Fetcher) validate(rawURL string) error {
	if err := f.validator.Struct(types.DownloadRequest{URL: rawURL}); err != nil {
		return types.NewDownloadError(types.ErrorKindInvalidInput, types.OperationValidatingURL,
			fmt.Errorf("invalid url %q: %w", rawURL, err)).WithURL(rawURL)
	}
	if _, err := httputils.ParseTargetURL(rawURL); err != nil {
		return types.NewDownloadError(types.ErrorKindInvalidInput, types.OperationValidatingURL, err).WithURL(rawURL)
	}
	return nil
}

// validateResponse validates the HTTP response status
func validateResponse(resp *transport.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("authentication failed: HTTP 401")
	case resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("access forbidden: HTTP 403")
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("file not found: HTTP 404")
	case resp.StatusCode >= 300 && resp.StatusCode < 400:
		return fmt.Errorf("unfollowed redirect: %s", statusText(resp))
	default:
		return fmt.Errorf("HTTP error: %s", statusText(resp))
	}
}

func statusText(resp *transport.Response) string {
	if resp.Status != "" {
		return resp.Status
	}
	return fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
}
