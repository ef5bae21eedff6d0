package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"engine-demo/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}
	code := app.ExitUsage
	var exit *app.ExitError
	if errors.As(err, &exit) {
		code = exit.Code
	}
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(code)
}
