package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/goFullwidth/config"
	"github.com/goFullwidth/glyph"
	"github.com/goFullwidth/hook"
	"github.com/goFullwidth/intercept"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// setupLogging builds the root logger from the logging config. The returned
// closer releases the log file, if any.
func setupLogging(cfg config.LoggingConfig, level zerolog.Level) (zerolog.Logger, io.Closer, error) {
	var writers []io.Writer
	var closer io.Closer = nopCloser{}

	if cfg.Console {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	}

	if cfg.File != "" {
		// Ensure directory exists
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		logFile, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("failed to open log file: %w", err)
		}
		writers = append(writers, logFile)
		closer = logFile
	}

	if len(writers) == 0 {
		return zerolog.Nop(), closer, nil
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).Level(level).With().Timestamp().Logger()
	return logger, closer, nil
}

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", config.Path(), "path to the config file")
	debug := flag.Bool("debug", false, "log every translated key")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 2
	}

	level, _ := cfg.LogLevel()
	if *debug {
		level = zerolog.DebugLevel
	}

	logger, logFile, err := setupLogging(cfg.Logging, level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to setup logging: %v\n", err)
		return 1
	}
	defer logFile.Close()

	logger.Info().Str("config", *configPath).Msg("starting fullwidth keyboard filter")

	backend, err := hook.NewBackend(hook.Options{
		DeviceNames: cfg.Devices.Names,
		UInputPath:  cfg.Devices.UInputPath,
		VirtualName: cfg.Devices.VirtualName,
	}, logger.With().Str("subsystem", "hook").Logger())
	if err != nil {
		logger.Error().Err(err).Msg("no keyboard backend")
		return 1
	}

	// The table is complete before the hook sees a single event
	resolver := glyph.NewResolver(glyph.DefaultSymbolTable())
	controller := intercept.New(resolver, backend, backend,
		intercept.WithLogger(logger.With().Str("subsystem", "intercept").Logger()))

	// Set up graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().Int("symbols", resolver.Symbols().Len()).Msg("fullwidth filter active, press Ctrl+C to exit")
	err = hook.Run(ctx, backend, controller.HandleEvent, logger)

	stats := controller.Stats()
	logger.Info().
		Uint64("translated", stats.Translated).
		Uint64("passed", stats.Passed).
		Uint64("failed", stats.Failed).
		Msg("shutting down")

	var installErr *hook.InstallError
	switch {
	case errors.As(err, &installErr):
		logger.Error().Err(err).Msg("cannot intercept the keyboard")
		return 1
	case err != nil:
		logger.Error().Err(err).Msg("keyboard hook stopped")
		return 1
	}
	return 0
}
