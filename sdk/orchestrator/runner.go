package orchestrator

import (
	"context"
	"io"
	"path/filepath"

	"github.com/kr/pretty"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/margo/wget/sdk/collector"
	"github.com/margo/wget/sdk/fetcher"
	"github.com/margo/wget/sdk/types"
	"github.com/margo/wget/sdk/utils"
	"github.com/margo/wget/shared-lib/file"
	"github.com/margo/wget/shared-lib/text"
)

// ProgressSink receives a copy of every body chunk while a file is downloaded.
type ProgressSink interface {
	io.Writer
	Finish()
}

// ProgressFunc starts a sink for a download of total bytes (-1 if unknown)
// into name. Returning nil disables progress for that download.
type ProgressFunc func(total int64, name string) ProgressSink

// Runner executes the pipeline for one URL in the mode chosen at construction.
type Runner struct {
	mode      Mode
	fetcher   *fetcher.Fetcher
	dir       string
	chunkSize int
	progress  ProgressFunc
	log       *zap.SugaredLogger
}

// Option defines functional options for configuring the runner
type Option func(*Runner)

// WithDirectory sets the directory that derived filenames are placed in.
// An explicit output path is used as given.
func WithDirectory(dir string) Option {
	return func(r *Runner) {
		r.dir = dir
	}
}

// WithChunkSize sets the read size used while collecting the body
func WithChunkSize(size int) Option {
	return func(r *Runner) {
		r.chunkSize = size
	}
}

// WithProgress enables progress reporting for ModeSave
func WithProgress(fn ProgressFunc) Option {
	return func(r *Runner) {
		r.progress = fn
	}
}

func NewRunner(mode Mode, f *fetcher.Fetcher, log *zap.SugaredLogger, opts ...Option) *Runner {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	r := &Runner{
		mode:      mode,
		fetcher:   f,
		dir:       ".",
		chunkSize: collector.DefaultChunkSize,
		log:       log,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run fetches req.URL and either decodes it for printing or writes it to disk.
// Every failure is reported through Outcome.Err; Run never panics on network
// or storage problems.
func (r *Runner) Run(ctx context.Context, req types.DownloadRequest) Outcome {
	log := r.log.With("requestId", utils.GenerateRequestId(), "mode", r.mode.String())
	log.Debugw("starting run", "request", pretty.Sprint(req))

	var outcome Outcome
	switch r.mode {
	case ModeSave:
		outcome = r.save(ctx, log, req)
	default:
		outcome = r.print(ctx, log, req)
	}

	if outcome.Err != nil {
		log.Debugw("run failed", "url", req.URL, "kind", outcome.Kind(), "error", outcome.Err)
	} else {
		log.Infow("run finished", "url", req.URL, "bytes", outcome.Bytes, "path", outcome.Path)
	}
	return outcome
}

func (r *Runner) print(ctx context.Context, log *zap.SugaredLogger, req types.DownloadRequest) Outcome {
	h, err := r.fetcher.Fetch(ctx, req.URL)
	if err != nil {
		return failed(ModePrint, req.URL, err)
	}

	body, err := collector.NewCollector(log, collector.WithChunkSize(r.chunkSize)).Collect(ctx, h)
	if err != nil {
		return failed(ModePrint, req.URL, err)
	}

	decoded, err := text.Decode(body, h.ContentType())
	if err != nil {
		return failed(ModePrint, req.URL, err)
	}

	return Outcome{
		Mode:  ModePrint,
		URL:   req.URL,
		Bytes: int64(len(body)),
		Text:  decoded,
	}
}

func (r *Runner) save(ctx context.Context, log *zap.SugaredLogger, req types.DownloadRequest) Outcome {
	h, err := r.fetcher.Fetch(ctx, req.URL)
	if err != nil {
		return failed(ModeSave, req.URL, err)
	}

	dest := r.destination(req, h)
	log.Debugw("resolved destination", "url", req.URL, "path", dest)

	opts := []collector.Option{collector.WithChunkSize(r.chunkSize)}
	var sink ProgressSink
	if r.progress != nil {
		if sink = r.progress(h.ContentLength, filepath.Base(dest)); sink != nil {
			opts = append(opts, collector.WithProgress(sink))
			defer sink.Finish()
		}
	}
	c := collector.NewCollector(log, opts...)

	if req.Stream {
		return r.stream(ctx, c, h, req.URL, dest)
	}

	body, err := c.Collect(ctx, h)
	if err != nil {
		return failed(ModeSave, req.URL, err)
	}
	if err := file.Save(body, dest); err != nil {
		return failed(ModeSave, req.URL, err)
	}

	return Outcome{Mode: ModeSave, URL: req.URL, Path: dest, Bytes: int64(len(body))}
}

// stream writes chunks to a pending file as they arrive. The destination only
// appears once the whole body has been received.
func (r *Runner) stream(ctx context.Context, c *collector.Collector, h *fetcher.ResponseHandle, url, dest string) Outcome {
	pending, err := file.NewPending(dest)
	if err != nil {
		h.Close()
		return failed(ModeSave, url, err)
	}

	n, err := c.CollectTo(ctx, h, pending)
	if err != nil {
		return failed(ModeSave, url, multierr.Append(err, pending.Discard()))
	}
	if err := pending.Commit(); err != nil {
		return failed(ModeSave, url, err)
	}

	return Outcome{Mode: ModeSave, URL: url, Path: dest, Bytes: n}
}

// destination picks the output path: an explicit output wins, then the
// server's Content-Disposition filename when enabled, then the URL.
func (r *Runner) destination(req types.DownloadRequest, h *fetcher.ResponseHandle) string {
	if req.Output != "" {
		return req.Output
	}

	name := ""
	if req.ContentDisposition && h.Header != nil {
		name = file.FilenameFromContentDisposition(h.Header.Get("Content-Disposition"))
	}
	if name == "" {
		name = file.ResolveFilename(req.URL)
	}
	return filepath.Join(r.dir, name)
}
