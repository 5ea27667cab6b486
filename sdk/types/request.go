package types

// DownloadRequest is the immutable input of a single run.
type DownloadRequest struct {
	URL string `validate:"required,url"`

	// Output overrides the destination path derived from URL.
	Output string
	// Stream writes the body to disk chunk by chunk instead of buffering it.
	Stream bool
	// ContentDisposition prefers the server supplied filename when present.
	ContentDisposition bool
}
