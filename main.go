package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/gol-world/utils"
)

func main() {
	if err := realMain(os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func realMain(args []string, stderr io.Writer) error {
	flagSet := flag.NewFlagSet("gol-world", flag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.Usage = func() {
		fmt.Fprint(stderr, `
gol-world - Conway's Game of Life on a fixed-size grid.

Usage:
  gol-world [options] [PATTERN_FILE...]

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "config.yaml", "Path to a YAML or JSON configuration file.")
	stepsFlag := flagSet.Int("steps", -1, "Number of generations to simulate. Overrides the config when >= 0.")
	wrapFlag := flagSet.Bool("wrap", false, "Wrap the grid edges around (toroidal world).")
	logLevelFlag := flagSet.String("log-level", "", "Logging level: 'debug', 'info', 'warn', 'error'.")
	logFormatFlag := flagSet.String("log-format", "", "Log output format: 'text' or 'json'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	// Load configuration - fallback to defaults if file doesn't exist
	config, err := utils.LoadConfig(*configFlag)
	usingDefaults := false
	if err != nil {
		if !os.IsNotExist(errors.Cause(err)) {
			return err
		}
		config = utils.DefaultConfig()
		usingDefaults = true
	}

	config.Patterns = append(config.Patterns, flagSet.Args()...)
	if *stepsFlag >= 0 {
		config.Steps = *stepsFlag
	}
	if *wrapFlag {
		config.Wrap = true
	}
	if *logLevelFlag != "" {
		config.LogLevel = *logLevelFlag
	}
	if *logFormatFlag != "" {
		config.LogFormat = *logFormatFlag
	}
	if err = config.Validate(); err != nil {
		return err
	}

	logger := newLogger(stderr, config)
	slog.SetDefault(logger)
	if usingDefaults {
		logger.Info("using default configuration", "config", *configFlag)
	}

	if len(config.Patterns) == 0 {
		flagSet.Usage()
		return errors.New("no pattern files given")
	}

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return run(ctx, config, logger)
}

func newLogger(w io.Writer, config utils.Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(config.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.ToLower(config.LogFormat) == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
