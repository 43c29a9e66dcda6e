package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/piwi3910/TatamiCut/internal/cli"
)

// Set via ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cli.SetVersion(version, commit, date)
	c := cli.New(os.Stderr, cli.LogInfo)

	// cobra prints the error itself
	if err := c.RootCommand().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		os.Exit(1)
	}
}
