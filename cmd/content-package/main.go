package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"contentpackage.run/cmd/content-package/deps"
)

const (
	// ReturnCodeSuccess is passed to os.Exit() when no error is reported.
	ReturnCodeSuccess = 0
	// ReturnCodeError is passed to os.Exit() if a command reports an error.
	ReturnCodeError = 1
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx)
	cancel()
	os.Exit(code)
}

func run(ctx context.Context) int {
	container, err := deps.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, "wiring dependencies:", err)
		return ReturnCodeError
	}

	var execErr error
	if err := container.Invoke(func(rootCmd *cobra.Command) {
		execErr = rootCmd.ExecuteContext(ctx)
	}); err != nil {
		fmt.Fprintln(os.Stderr, "initializing:", err)
		return ReturnCodeError
	}
	if execErr != nil {
		return ReturnCodeError
	}

	return ReturnCodeSuccess
}
