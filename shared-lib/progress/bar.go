// Package progress renders download progress on a terminal.
package progress

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// Bar counts bytes written to it. A nil *Bar is valid and does nothing, which
// is what callers get when progress output is disabled.
type Bar struct {
	pb *progressbar.ProgressBar
}

// New starts a byte counting bar on out. total is the expected size, -1 when
// the server did not announce one (the bar then shows a spinner).
func New(out io.Writer, total int64, description string) *Bar {
	pb := progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
	return &Bar{pb: pb}
}

func (b *Bar) Write(p []byte) (int, error) {
	if b == nil {
		return len(p), nil
	}
	return b.pb.Write(p)
}

// Finish completes and clears the bar.
func (b *Bar) Finish() {
	if b == nil {
		return
	}
	_ = b.pb.Finish()
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
