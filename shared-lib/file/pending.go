package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
)

var ErrPendingFinished = errors.New("pending file already committed or discarded")

// Pending is a destination file being filled chunk by chunk. Data lands in a
// hidden temporary file next to the destination; Commit moves it into place
// and Discard throws it away. Exactly one of the two must be called.
type Pending struct {
	dest     string
	tmp      *os.File
	finished bool
}

// NewPending prepares a temporary file for dest in dest's directory.
func NewPending(dest string) (*Pending, error) {
	dir, base := filepath.Split(dest)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".*.part")
	if err != nil {
		return nil, storageError(dest, fmt.Errorf("failed to create temporary file: %w", err))
	}

	return &Pending{dest: dest, tmp: tmp}, nil
}

// Path returns the final destination path.
func (p *Pending) Path() string {
	return p.dest
}

func (p *Pending) Write(b []byte) (int, error) {
	if p.finished {
		return 0, ErrPendingFinished
	}
	return p.tmp.Write(b)
}

// Commit flushes the temporary file and renames it over the destination,
// replacing whatever was there.
func (p *Pending) Commit() error {
	if p.finished {
		return storageError(p.dest, ErrPendingFinished)
	}
	p.finished = true

	if err := multierr.Combine(p.tmp.Sync(), p.tmp.Close()); err != nil {
		os.Remove(p.tmp.Name())
		return storageError(p.dest, fmt.Errorf("failed to flush temporary file: %w", err))
	}

	if err := os.Chmod(p.tmp.Name(), DefaultFilePermissions); err != nil {
		os.Remove(p.tmp.Name())
		return storageError(p.dest, fmt.Errorf("failed to set file mode: %w", err))
	}

	if err := os.Rename(p.tmp.Name(), p.dest); err != nil {
		return storageError(p.dest, multierr.Append(
			fmt.Errorf("failed to rename temporary file: %w", err),
			os.Remove(p.tmp.Name()),
		))
	}

	return nil
}

// Discard closes and removes the temporary file. The destination is never
// touched. Calling Discard after Commit is a no-op.
func (p *Pending) Discard() error {
	if p.finished {
		return nil
	}
	p.finished = true

	err := multierr.Append(p.tmp.Close(), os.Remove(p.tmp.Name()))
	if err != nil {
		return storageError(p.dest, fmt.Errorf("failed to discard temporary file: %w", err))
	}
	return nil
}
