package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/abushaidislam/study-guide/internal/cli"
	"github.com/abushaidislam/study-guide/internal/config"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// configPath pulls --config out of args ahead of cobra, which only parses
// flags after the App it runs against has been wired.
func configPath(args []string) string {
	fs := pflag.NewFlagSet("studyflow", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)
	path := fs.String("config", "", "")
	_ = fs.Parse(args)
	return *path
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel()}))

	cfg, err := config.NewLoader(logger).Load(configPath(os.Args[1:]))
	if err != nil {
		return err
	}

	app, cleanup, err := wire(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

func logLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(os.Getenv("STUDYFLOW_LOG_LEVEL"))); err != nil {
		return slog.LevelWarn
	}
	return level
}
