package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"renamer/internal/errors"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errRenameFailures) {
			fmt.Fprintln(os.Stderr, errorText("Error: "+err.Error()))
		}
		stop()
		os.Exit(1)
	}
}
