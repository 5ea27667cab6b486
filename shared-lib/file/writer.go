package file

import (
	"fmt"
	"os"

	"github.com/moby/sys/atomicwriter"
	"go.uber.org/multierr"

	"github.com/margo/wget/sdk/types"
)

// DefaultFilePermissions is the mode of files created by Save and Pending
const DefaultFilePermissions os.FileMode = 0o644

// Save writes data to path, creating the file or replacing its previous
// contents entirely. The bytes go to a temporary file in the same directory
// which is renamed over path only after a successful write and sync, so a
// failed save leaves any existing file untouched.
func Save(data []byte, path string) error {
	w, err := atomicwriter.New(path, DefaultFilePermissions)
	if err != nil {
		return storageError(path, fmt.Errorf("failed to create output file: %w", err))
	}

	_, writeErr := w.Write(data)
	if err := multierr.Append(writeErr, w.Close()); err != nil {
		return storageError(path, fmt.Errorf("failed to write file: %w", err))
	}

	return nil
}

func storageError(path string, err error) error {
	return types.NewDownloadError(types.ErrorKindStorage, types.OperationWritingFile,
		fmt.Errorf("%s: %w", path, err))
}
