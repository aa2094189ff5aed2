package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/viant/custard"
	"github.com/viant/custard/pkg/log"
	"github.com/viant/custard/plugins/demo"
)

var ErrTasksFaulted = errors.New("tasks faulted")

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

func main() {
	manifestURL := flag.String(
		"manifest",
		"custard.yaml",
		"Manifest URL (any afs supported scheme)",
	)
	logLevel := flag.String(
		"log-level",
		"warn",
		"Log level: debug, info, warn or error",
	)
	quiet := flag.Bool(
		"quiet",
		false,
		"Do not print task transitions",
	)
	flag.Parse()

	setupLogging(*logLevel)
	if err := run(*manifestURL, *quiet); err != nil {
		slog.Error("Run failed", log.Error(err))
		os.Exit(1)
	}
}

func setupLogging(level string) {
	lvl, ok := logLevels[level]
	if !ok {
		lvl = slog.LevelWarn
	}
	slog.SetDefault(log.New(os.Stderr, "custard", custard.Version, lvl))
}

func run(manifestURL string, quiet bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var options []custard.Option
	if !quiet {
		options = append(options, custard.WithOutput(os.Stdout))
	}
	srv := custard.New(options...)
	if err := demo.Attach(srv.Registry()); err != nil {
		return err
	}
	m, err := srv.LoadManifest(ctx, manifestURL)
	if err != nil {
		return err
	}
	rt, err := srv.NewRuntime(ctx)
	if err != nil {
		return err
	}
	if err = rt.Deploy(ctx, m); err != nil {
		_ = rt.Shutdown(context.Background())
		return err
	}
	if err = rt.Start(ctx); err != nil {
		_ = rt.Shutdown(context.Background())
		return err
	}

	select {
	case <-rt.Done():
	case <-ctx.Done():
		slog.Info("Shutting down")
	}
	if err = rt.Shutdown(context.Background()); err != nil {
		return err
	}
	if faults := rt.Faults(); len(faults) > 0 {
		return errors.Join(append([]error{ErrTasksFaulted}, faults...)...)
	}
	return nil
}
