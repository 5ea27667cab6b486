package collector

import (
	"errors"
	"io"
)

// DefaultChunkSize is the read size used when none is configured.
const DefaultChunkSize = 32 * 1024

// maxEmptyReads bounds consecutive 0, nil reads before giving up.
const maxEmptyReads = 100

// Chunks is a lazy, finite sequence of body chunks. It cannot be restarted.
// Next returns io.EOF once the stream is exhausted; the returned slice is only
// valid until the following call.
type Chunks interface {
	Next() ([]byte, error)
}

// ChunkReader adapts an io.Reader into Chunks.
type ChunkReader struct {
	r    io.Reader
	buf  []byte
	done bool
	err  error
}

func NewChunkReader(r io.Reader, size int) *ChunkReader {
	if size <= 0 {
		size = DefaultChunkSize
	}
	return &ChunkReader{r: r, buf: make([]byte, size)}
}

func (c *ChunkReader) Next() ([]byte, error) {
	if c.done {
		return nil, c.err
	}

	for empty := 0; ; empty++ {
		if empty == maxEmptyReads {
			c.finish(io.ErrNoProgress)
			return nil, c.err
		}
		n, err := c.r.Read(c.buf)
		if n > 0 {
			if err != nil {
				// hand out the data now and report err on the next call
				c.finish(err)
			}
			return c.buf[:n], nil
		}
		if err != nil {
			c.finish(err)
			return nil, c.err
		}
	}
}

func (c *ChunkReader) finish(err error) {
	c.done = true
	if errors.Is(err, io.EOF) {
		c.err = io.EOF
		return
	}
	c.err = err
}
