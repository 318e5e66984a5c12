package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tshauck/yeyo/cmd"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cmd.Version = Version
	if err := cmd.Execute(ctx); err != nil {
		cmd.PrintError(os.Stderr, err)
		cancel()
		os.Exit(1)
	}
}
