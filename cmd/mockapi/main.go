// Command mockapi serves the order API from memory so the client can run
// without the real backend.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/keilahoriye/tilapiasuprememobile/cmd"
	"github.com/keilahoriye/tilapiasuprememobile/config"
	"github.com/keilahoriye/tilapiasuprememobile/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "mockapi startup failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := pflag.NewFlagSet("mockapi", pflag.ContinueOnError)
	configPath := fs.String("config", "", "Path to config file")
	envelope := fs.Bool("envelope", false, "Wrap success bodies in {success, data}")
	fs.String("port", "", "Listen port")
	fs.String("log-level", "", "Log level (debug, info, warn, error)")
	fs.String("timezone", "", "IANA zone wire timestamps are read in")
	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	cfg, err := config.LoadWithFlags(*configPath, fs)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	builder := cmd.NewBuilder(cfg)
	if *envelope {
		builder.WithEnvelope()
	}
	app, err := builder.Build()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return app.Run(ctx)
}
