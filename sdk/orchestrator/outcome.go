package orchestrator

import "github.com/margo/wget/sdk/types"

// Exit codes follow GNU wget.
const (
	ExitSuccess       = 0
	ExitGeneric       = 1
	ExitInvalidInput  = 2
	ExitStorage       = 3
	ExitNetwork       = 4
	ExitRequestFailed = 8
)

// Outcome is the terminal result of one run. Err is nil on success.
type Outcome struct {
	Mode Mode
	URL  string

	// Path is the file written in ModeSave.
	Path string
	// Bytes is the number of body bytes printed or written.
	Bytes int64
	// Text is the decoded body in ModePrint.
	Text string

	Err error
}

func (o Outcome) Succeeded() bool {
	return o.Err == nil
}

func (o Outcome) Kind() types.ErrorKind {
	return types.KindOf(o.Err)
}

// ExitCode maps the outcome to the process exit status.
func (o Outcome) ExitCode() int {
	switch o.Kind() {
	case types.ErrorKindNone:
		return ExitSuccess
	case types.ErrorKindInvalidInput:
		return ExitInvalidInput
	case types.ErrorKindStorage:
		return ExitStorage
	case types.ErrorKindNetwork:
		return ExitNetwork
	case types.ErrorKindRequestFailed:
		return ExitRequestFailed
	default:
		return ExitGeneric
	}
}

func failed(mode Mode, url string, err error) Outcome {
	return Outcome{Mode: mode, URL: url, Err: err}
}
