// Package main is the entry point for the checkmate CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"checkmate/internal/cli"
	"checkmate/internal/commands"
	"checkmate/internal/prompt"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// A .env file in the working directory may supply CHECKMATE_* settings.
	_ = godotenv.Load()

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, cli.NewServiceFactory(os.Stderr)).
		WithPrompter(prompt.New(os.Stdin, os.Stderr))

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
