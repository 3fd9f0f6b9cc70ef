package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

const version = "0.3.0"

func signalCancelContext() (context.Context, func()) {
	ctx, cancel := context.WithCancelCause(context.Background())
	sigCh := make(chan os.Signal, 1)
	stopCh := make(chan struct{})
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigCh:
			cancel(fmt.Errorf("stopped by signal %s", sig.String()))
		case <-stopCh:
		}
	}()
	cleanup := func() {
		signal.Stop(sigCh)
		close(stopCh)
		cancel(nil)
	}
	return ctx, cleanup
}

func main() {
	// A missing .env file is fine; the environment and flags still apply.
	_ = godotenv.Load()

	config, err := parseArgs(os.Args[1:], os.Getenv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		usage(os.Stderr)
		os.Exit(1)
	}

	if config.ShowVersion {
		fmt.Printf("codeflat %s\n", version)
		return
	}

	logger := log.New(os.Stderr, "codeflat: ", 0)
	ctx, cleanup := signalCancelContext()

	err = run(ctx, config, os.Stdout, logger)
	cleanup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var unsupported *ErrUnsupportedLanguage
		if errors.As(err, &unsupported) {
			fmt.Fprintln(os.Stderr)
			usage(os.Stderr)
		}
		os.Exit(1)
	}
}
