package orchestrator

import (
	"fmt"
	"io"

	"github.com/docker/go-units"
	"github.com/fatih/color"
)

// Reporter turns an Outcome into what the user sees on stdout.
type Reporter struct {
	out     io.Writer
	success *color.Color
	failure *color.Color
}

// NewReporter writes to out. Colors are used only when colored is true,
// normally when out is a terminal.
func NewReporter(out io.Writer, colored bool) *Reporter {
	success := color.New(color.FgGreen)
	failure := color.New(color.FgRed, color.Bold)
	if colored {
		success.EnableColor()
		failure.EnableColor()
	} else {
		success.DisableColor()
		failure.DisableColor()
	}
	return &Reporter{out: out, success: success, failure: failure}
}

// Report prints the decoded text in print mode, a confirmation line in save
// mode or a single failure line, and returns the exit code for the outcome.
func (r *Reporter) Report(o Outcome) int {
	if !o.Succeeded() {
		r.failure.Fprintf(r.out, "Download failed: %v\n", o.Err)
		return o.ExitCode()
	}

	switch o.Mode {
	case ModeSave:
		r.success.Fprintf(r.out, "Downloaded %s (%s)\n", o.Path, units.HumanSize(float64(o.Bytes)))
	default:
		fmt.Fprint(r.out, o.Text)
	}
	return o.ExitCode()
}
