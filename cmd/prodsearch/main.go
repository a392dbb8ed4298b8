// Command prodsearch searches a remote product catalog.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/prodsearch/internal/adapters/driving/cli"
	"github.com/custodia-labs/prodsearch/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)

	err := cli.Execute(ctx)
	if closeErr := cli.Close(context.WithoutCancel(ctx)); closeErr != nil {
		logger.Warn("Shutdown: %v", closeErr)
	}
	if err != nil {
		return 1
	}
	return 0
}
