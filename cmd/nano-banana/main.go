// Command nano-banana generates images with Nano Banana Pro.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/42apps/nanobanana/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
