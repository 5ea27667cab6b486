// Package orchestrator wires fetching, collecting, naming and writing into a
// single run and turns its result into user visible output and an exit code.
package orchestrator

// Mode selects what happens to a successfully fetched body. It is decided once
// when the runner is built and never changes afterwards.
type Mode int

const (
	// ModePrint decodes the body as text and prints it.
	ModePrint Mode = iota
	// ModeSave writes the body to a file named after the URL.
	ModeSave
)

// ModeFromFlag maps the --download flag to a Mode.
func ModeFromFlag(download bool) Mode {
	if download {
		return ModeSave
	}
	return ModePrint
}

func (m Mode) String() string {
	switch m {
	case ModePrint:
		return "print"
	case ModeSave:
		return "save"
	default:
		return "unknown"
	}
}
