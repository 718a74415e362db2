// Command ytt is the terminal client for the transcript backend.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := newCLI()
	if err := c.execute(ctx, os.Args[1:]); err != nil {
		_, _ = color.New(color.FgRed, color.Bold).Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
