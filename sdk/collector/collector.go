// Package collector drains a response body chunk by chunk, either into an
// in-memory buffer or into a caller supplied sink.
package collector

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/margo/wget/sdk/fetcher"
	"github.com/margo/wget/sdk/types"
)

// maxSizeHint caps how much Content-Length is trusted for preallocation.
const maxSizeHint = 64 << 20

type Collector struct {
	chunkSize int
	progress  io.Writer
	log       *zap.SugaredLogger
}

// Option defines functional options for configuring the collector
type Option func(*Collector)

// WithChunkSize sets the read size per chunk
func WithChunkSize(size int) Option {
	return func(c *Collector) {
		c.chunkSize = size
	}
}

// WithProgress mirrors every chunk into w, typically a progress bar
func WithProgress(w io.Writer) Option {
	return func(c *Collector) {
		c.progress = w
	}
}

func NewCollector(log *zap.SugaredLogger, opts ...Option) *Collector {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	c := &Collector{
		chunkSize: DefaultChunkSize,
		log:       log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect reads the whole body into memory. On any failure the partial
// buffer is dropped and nil is returned. The handle is closed on return.
func (c *Collector) Collect(ctx context.Context, h *fetcher.ResponseHandle) ([]byte, error) {
	defer h.Close()

	var buf bytes.Buffer
	if h.ContentLength > 0 && h.ContentLength <= maxSizeHint {
		buf.Grow(int(h.ContentLength))
	}

	n, err := c.drain(ctx, h, &buf, false)
	if err != nil {
		c.log.Debugw("collection aborted", "url", h.URL, "received", n, "error", err)
		return nil, err
	}

	c.log.Debugw("collection finished", "url", h.URL, "bytes", n)
	return buf.Bytes(), nil
}

// CollectTo forwards each chunk to sink as it arrives and returns the number
// of bytes written. The handle is closed on return. Discarding what already
// reached the sink on failure is the caller's job.
func (c *Collector) CollectTo(ctx context.Context, h *fetcher.ResponseHandle, sink io.Writer) (int64, error) {
	defer h.Close()

	n, err := c.drain(ctx, h, sink, true)
	if err != nil {
		c.log.Debugw("streaming aborted", "url", h.URL, "written", n, "error", err)
		return n, err
	}

	c.log.Debugw("streaming finished", "url", h.URL, "bytes", n)
	return n, nil
}

func (c *Collector) drain(ctx context.Context, h *fetcher.ResponseHandle, sink io.Writer, sinkIsStorage bool) (int64, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	chunks := NewChunkReader(h.Body, c.chunkSize)
	var total int64

	for {
		if err := ctx.Err(); err != nil {
			return total, networkError(h.URL, err)
		}

		chunk, err := chunks.Next()
		if errors.Is(err, io.EOF) {
			return total, nil
		}
		if err != nil {
			return total, networkError(h.URL, err)
		}

		written, err := sink.Write(chunk)
		total += int64(written)
		if err == nil && written != len(chunk) {
			err = io.ErrShortWrite
		}
		if err != nil {
			kind := types.ErrorKindUnknown
			if sinkIsStorage {
				kind = types.ErrorKindStorage
			}
			return total, types.NewDownloadError(kind, types.OperationWritingFile,
				fmt.Errorf("failed to write chunk: %w", err)).WithURL(h.URL)
		}

		if c.progress != nil {
			// progress output is best effort
			_, _ = c.progress.Write(chunk)
		}
	}
}

func networkError(url string, err error) error {
	return types.NewDownloadError(types.ErrorKindNetwork, types.OperationReadingBody,
		fmt.Errorf("failed to read response body: %w", err)).WithURL(url)
}
