package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/margo/wget/sdk/fetcher"
	"github.com/margo/wget/sdk/orchestrator"
	"github.com/margo/wget/sdk/transport"
	"github.com/margo/wget/sdk/types"
	"github.com/margo/wget/shared-lib/logging"
	"github.com/margo/wget/shared-lib/progress"
)

type options struct {
	URL                string        `flag:"url" validate:"required"`
	Download           bool          `flag:"download"`
	Output             string        `flag:"output" validate:"excluded_without=Download"`
	ContentDisposition bool          `flag:"content-disposition" validate:"excluded_without=Download"`
	Stream             bool          `flag:"stream" validate:"excluded_without=Download"`
	Timeout            time.Duration `flag:"timeout" validate:"gte=0"`
	Quiet              bool          `flag:"quiet"`
	Verbose            bool          `flag:"verbose"`
}

var optionsValidator = newOptionsValidator()

func newOptionsValidator() *validator.Validate {
	v := validator.New()
	// report flag names instead of struct field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("flag"); name != "" {
			return name
		}
		return f.Name
	})
	return v
}

func (o *options) validate() error {
	err := optionsValidator.Struct(o)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	var combined error
	for _, fe := range fieldErrs {
		combined = multierr.Append(combined, describeFieldError(fe))
	}
	return combined
}

func describeFieldError(fe validator.FieldError) error {
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("a url is required, either as an argument or with --%s", fe.Field())
	case "excluded_without":
		return fmt.Errorf("--%s can only be used with --download", fe.Field())
	case "gte":
		return fmt.Errorf("--%s must not be negative", fe.Field())
	default:
		return fmt.Errorf("invalid value for --%s", fe.Field())
	}
}

func newRootCommand(opts *options, runE func(cmd *cobra.Command, args []string) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "wget [flags] <url>",
		Short:         "Fetch a URL and print it or save it to a file",
		Long:          "wget retrieves one resource over HTTP(S). By default the body is decoded\nas text and printed; with --download it is saved under a name derived\nfrom the URL.",
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runE,
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.URL, "url", "u", "", "url to fetch (alternative to the positional argument)")
	flags.BoolVarP(&opts.Download, "download", "d", false, "save to a file instead of printing")
	flags.StringVarP(&opts.Output, "output", "O", "", "destination filename (download mode)")
	flags.BoolVar(&opts.ContentDisposition, "content-disposition", false, "honour Content-Disposition filenames (download mode)")
	flags.BoolVar(&opts.Stream, "stream", false, "stream the body straight to disk (download mode)")
	flags.DurationVar(&opts.Timeout, "timeout", 0, "overall request timeout (0 = transport default)")
	flags.BoolVarP(&opts.Quiet, "quiet", "q", false, "no progress bar")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging on stderr")

	return cmd
}

// run parses args, performs one fetch and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts := &options{}
	code := orchestrator.ExitSuccess

	cmd := newRootCommand(opts, func(cmd *cobra.Command, positional []string) error {
		if len(positional) == 1 {
			if opts.URL != "" {
				return errors.New("give the url either as an argument or with --url, not both")
			}
			opts.URL = positional[0]
		}
		if err := opts.validate(); err != nil {
			return err
		}

		code = execute(cmd.Context(), opts, stdout, stderr)
		return nil
	})
	if args == nil {
		// cobra falls back to os.Args for a nil slice
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", cmd.Name())
		return orchestrator.ExitInvalidInput
	}
	return code
}

func execute(ctx context.Context, opts *options, stdout, stderr io.Writer) int {
	log, err := logging.New(opts.Verbose)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return orchestrator.ExitGeneric
	}
	defer func() { _ = log.Sync() }()

	t, err := transport.NewTransport(transport.Config{Protocol: transport.HTTP1, Timeout: opts.Timeout})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return orchestrator.ExitGeneric
	}
	defer t.Close()

	mode := orchestrator.ModeFromFlag(opts.Download)

	var runnerOpts []orchestrator.Option
	if mode == orchestrator.ModeSave && !opts.Quiet && progress.IsTerminal(stderr) {
		runnerOpts = append(runnerOpts, orchestrator.WithProgress(func(total int64, name string) orchestrator.ProgressSink {
			return progress.New(stderr, total, name)
		}))
	}

	runner := orchestrator.NewRunner(mode, fetcher.NewFetcher(t, log), log, runnerOpts...)
	outcome := runner.Run(ctx, types.DownloadRequest{
		URL:                opts.URL,
		Output:             opts.Output,
		Stream:             opts.Stream,
		ContentDisposition: opts.ContentDisposition,
	})

	return orchestrator.NewReporter(stdout, progress.IsTerminal(stdout)).Report(outcome)
}
