package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/gol-world/model"
	"github.com/sheikhrachel/gol-world/utils"
)

// run simulates every configured pattern, each in its own goroutine with its own World
func run(ctx context.Context, config utils.Config, logger *slog.Logger) error {
	if config.Render && len(config.Patterns) > 1 {
		logger.Warn("rendering disabled, it needs a single pattern", "patterns", len(config.Patterns))
		config.Render = false
	}

	eg, ctx := errgroup.WithContext(ctx)
	for _, path := range config.Patterns {
		eg.Go(func() error {
			return simulatePattern(ctx, config, path, logger.With("pattern", path))
		})
	}
	return eg.Wait()
}

// simulatePattern loads one pattern and advances it config.Steps generations
func simulatePattern(ctx context.Context, config utils.Config, path string, logger *slog.Logger) error {
	initial, err := model.LoadPattern(path)
	if err != nil {
		return err
	}

	world, err := model.NewWorld(initial, config.Wrap)
	if err != nil {
		return errors.Wrapf(err, "[simulatePattern] failed to build world for %s", path)
	}
	logger.Info("world created",
		"rows", world.Rows(),
		"cols", world.Cols(),
		"boundary", world.Mode().String(),
		"population", initial.Population())

	// Nothing to observe between generations, let the engine run in chunks
	if !config.Render && config.StatsDir == "" && !config.StopOnCycle {
		return simulateUnobserved(ctx, config.Steps, world, logger)
	}

	var (
		stats    = utils.NewStats()
		history  = model.NewHistory(config.HistorySize)
		renderer = &model.TerminalRenderer{}
		grid     = world.State()
		name     = patternName(path)
	)
	recordGeneration(stats, name, world.Generation(), grid)
	history.Record(grid)
	if config.Render {
		if err = displayGeneration(renderer, grid); err != nil {
			return err
		}
	}

	for world.Generation() < config.Steps {
		if ctx.Err() != nil {
			logger.Info("simulation interrupted", "generation", world.Generation())
			break
		}

		frameStart := time.Now()
		grid = world.Evolve()
		stats.Update(world.Generation(), grid.Population(), time.Since(frameStart))
		recordGeneration(stats, name, world.Generation(), grid)

		if config.Render {
			if err = displayGeneration(renderer, grid); err != nil {
				return err
			}
			if !sleepContext(ctx, config.FrameRate) {
				logger.Info("simulation interrupted", "generation", world.Generation())
				break
			}
		}

		if period := history.Period(grid); period > 0 && config.StopOnCycle {
			logger.Info("cycle detected", "generation", world.Generation(), "period", period)
			break
		}
		history.Record(grid)
	}

	logger.Info("simulation finished",
		"generations", world.Generation(),
		"population", grid.Population(),
		"average_population", stats.AveragePopulation,
		"generations_per_second", stats.GenerationsPerSecond)

	if config.StatsDir != "" {
		return writeStats(config.StatsDir, name, stats.Records())
	}
	return nil
}

// unobservedChunk is how many generations run between cancellation checks
const unobservedChunk = 64

// simulateUnobserved advances world to steps generations, checking ctx between chunks
func simulateUnobserved(ctx context.Context, steps int, world *model.World, logger *slog.Logger) error {
	start := time.Now()
	final := world.State()
	for world.Generation() < steps {
		if ctx.Err() != nil {
			logger.Info("simulation interrupted", "generation", world.Generation())
			break
		}

		var err error
		if final, err = world.Simulate(min(unobservedChunk, steps-world.Generation())); err != nil {
			return err
		}
	}

	stats := utils.NewStats()
	stats.Update(world.Generation(), final.Population(), time.Since(start)/time.Duration(max(world.Generation(), 1)))
	logger.Info("simulation finished",
		"generations", world.Generation(),
		"population", final.Population(),
		"generations_per_second", stats.GenerationsPerSecond)
	return nil
}

func recordGeneration(stats *utils.Stats, name string, generation int, grid model.Grid) {
	stats.Record(utils.GenerationRecord{
		Pattern:    name,
		Generation: generation,
		Population: grid.Population(),
		Density:    grid.Density(),
		Hash:       grid.Hash(),
	})
}

func displayGeneration(renderer *model.TerminalRenderer, grid model.Grid) error {
	if err := renderer.Clear(); err != nil {
		slog.Debug("terminal not cleared", "error", err)
	}
	return renderer.Display(grid)
}

// sleepContext waits for d, returning false if ctx is done first
func sleepContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// patternName strips directory and extension from a pattern path
func patternName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func writeStats(dir, name string, records []utils.GenerationRecord) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "[writeStats] failed to create directory: %+v", dir)
	}

	path := filepath.Join(dir, name+".csv")
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "[writeStats] failed to create file: %+v", path)
	}
	defer f.Close()

	if err = utils.WriteCSV(f, records); err != nil {
		return errors.Wrapf(err, "[writeStats] failed to write file: %+v", path)
	}
	return nil
}
