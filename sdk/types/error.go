package types

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a fetch or download did not complete.
type ErrorKind string

const (
	ErrorKindNone          ErrorKind = ""
	ErrorKindInvalidInput  ErrorKind = "invalid-input"
	ErrorKindRequestFailed ErrorKind = "request-failed"
	ErrorKindNetwork       ErrorKind = "network"
	ErrorKindStorage       ErrorKind = "storage"
	ErrorKindDecode        ErrorKind = "decode"
	ErrorKindUnknown       ErrorKind = "unknown"
)

type Operation string

const (
	OperationValidatingURL  Operation = "validating-url"
	OperationSendingRequest Operation = "sending-request"
	OperationReadingBody    Operation = "reading-body"
	OperationWritingFile    Operation = "writing-file"
	OperationDecodingText   Operation = "decoding-text"
)

// DownloadError provides structured error handling for the download pipeline
type DownloadError struct {
	Kind       ErrorKind
	Operation  Operation
	URL        string
	StatusCode int
	Err        error
}

func (e *DownloadError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("[%s:%s] %v (url: %s, status: %d)", e.Kind, e.Operation, e.Err, e.URL, e.StatusCode)
	}
	if e.URL != "" {
		return fmt.Sprintf("[%s:%s] %v (url: %s)", e.Kind, e.Operation, e.Err, e.URL)
	}
	return fmt.Sprintf("[%s:%s] %v", e.Kind, e.Operation, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

func NewDownloadError(kind ErrorKind, operation Operation, err error) *DownloadError {
	return &DownloadError{
		Kind:      kind,
		Operation: operation,
		Err:       err,
	}
}

func (e *DownloadError) WithURL(url string) *DownloadError {
	e.URL = url
	return e
}

func (e *DownloadError) WithStatus(code int) *DownloadError {
	e.StatusCode = code
	return e
}

// KindOf returns the kind of the first DownloadError in err's chain.
// A nil error has no kind; any other unclassified error is ErrorKindUnknown.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ErrorKindNone
	}
	var de *DownloadError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ErrorKindUnknown
}

// IsKind reports whether err was classified as kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
