// Command wget fetches a single URL over HTTP(S) and prints the body as text
// or saves it to a file.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

var (
	osArgs = os.Args
	osExit = os.Exit

	version = "dev"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, osArgs[1:], os.Stdout, os.Stderr)
	stop()
	osExit(code)
}
