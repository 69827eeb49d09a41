package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikhrachel/gol-world/model"
	"github.com/sheikhrachel/gol-world/utils"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func bufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, nil))
}

func writePattern(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readStats(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestRunWritesStats(t *testing.T) {
	dir := t.TempDir()
	statsDir := filepath.Join(dir, "stats")

	config := utils.DefaultConfig()
	config.Steps = 4
	config.StatsDir = statsDir
	config.Patterns = []string{
		writePattern(t, dir, "blinker.txt", "000\n111\n000\n"),
		writePattern(t, dir, "block.txt", "0000\n0110\n0110\n0000\n"),
	}

	require.NoError(t, run(context.Background(), config, discardLogger()))

	lines := readStats(t, filepath.Join(statsDir, "blinker.csv"))
	require.Len(t, lines, 6, "header plus generations 0 to 4")
	assert.Equal(t, "pattern,generation,population,density,hash", lines[0])
	assert.True(t, strings.HasPrefix(lines[5], "blinker,4,3,"))

	lines = readStats(t, filepath.Join(statsDir, "block.csv"))
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[1], "block,0,4,0.25,"))
}

func TestRunStopsOnCycle(t *testing.T) {
	dir := t.TempDir()

	config := utils.DefaultConfig()
	config.Steps = 50
	config.StopOnCycle = true
	config.StatsDir = dir
	config.Patterns = []string{writePattern(t, dir, "blinker.txt", "000\n111\n000\n")}

	require.NoError(t, run(context.Background(), config, discardLogger()))

	lines := readStats(t, filepath.Join(dir, "blinker.csv"))
	require.Len(t, lines, 4, "header plus generations 0 to 2")
	assert.True(t, strings.HasPrefix(lines[3], "blinker,2,"))
}

func TestRunWithoutObservers(t *testing.T) {
	dir := t.TempDir()

	config := utils.DefaultConfig()
	config.Steps = 150 // more than one chunk, not a multiple of it
	config.Wrap = true
	config.Patterns = []string{writePattern(t, dir, "glider.txt", ".O...\n..O..\nOOO..\n.....\n.....\n")}

	var logs bytes.Buffer
	require.NoError(t, run(context.Background(), config, bufferLogger(&logs)))
	assert.Contains(t, logs.String(), `msg="simulation finished"`)
	assert.Contains(t, logs.String(), "generations=150 ")
	assert.Contains(t, logs.String(), "generations_per_second=")
}

func TestRunRejectsBadPattern(t *testing.T) {
	dir := t.TempDir()

	config := utils.DefaultConfig()
	config.Patterns = []string{
		writePattern(t, dir, "good.txt", "010\n"),
		writePattern(t, dir, "ragged.txt", "010\n01\n"),
	}

	err := run(context.Background(), config, discardLogger())
	require.ErrorIs(t, err, model.ErrInvalidShape)
}

func TestRunCancelled(t *testing.T) {
	t.Run("with stats", func(t *testing.T) {
		dir := t.TempDir()

		config := utils.DefaultConfig()
		config.Steps = 1000
		config.StatsDir = dir
		config.Patterns = []string{writePattern(t, dir, "blinker.txt", "000\n111\n000\n")}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		require.NoError(t, run(ctx, config, discardLogger()))

		lines := readStats(t, filepath.Join(dir, "blinker.csv"))
		assert.Len(t, lines, 2, "only the initial generation is recorded")
	})

	t.Run("without observers", func(t *testing.T) {
		dir := t.TempDir()

		config := utils.DefaultConfig()
		config.Steps = 2_000_000
		config.Patterns = []string{writePattern(t, dir, "blinker.txt", "000\n111\n000\n")}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var logs bytes.Buffer
		require.NoError(t, run(ctx, config, bufferLogger(&logs)))
		assert.Contains(t, logs.String(), `msg="simulation interrupted"`)
		assert.Contains(t, logs.String(), "generations=0 ")
	})

	t.Run("during frame delay", func(t *testing.T) {
		dir := t.TempDir()

		config := utils.DefaultConfig()
		config.Steps = 10
		config.Render = true
		config.FrameRate = time.Hour
		config.StatsDir = dir
		config.Patterns = []string{writePattern(t, dir, "blinker.txt", "000\n111\n000\n")}

		ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		var logs bytes.Buffer
		require.NoError(t, run(ctx, config, bufferLogger(&logs)))
		assert.Contains(t, logs.String(), `msg="simulation interrupted" pattern=`)
		assert.Contains(t, logs.String(), "generation=1")

		lines := readStats(t, filepath.Join(dir, "blinker.csv"))
		assert.Len(t, lines, 3, "generations 0 and 1 are recorded")
	})
}

func TestRealMain(t *testing.T) {
	t.Run("help", func(t *testing.T) {
		var stderr bytes.Buffer
		require.NoError(t, realMain([]string{"-help"}, &stderr))
		assert.Contains(t, stderr.String(), "Usage:")
		assert.Contains(t, stderr.String(), `(default "config.yaml")`)
	})

	t.Run("no patterns", func(t *testing.T) {
		var stderr bytes.Buffer
		err := realMain([]string{"-config", filepath.Join(t.TempDir(), "missing.json")}, &stderr)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "using default configuration")
	})

	t.Run("pattern from args", func(t *testing.T) {
		dir := t.TempDir()
		pattern := writePattern(t, dir, "blinker.txt", "000\n111\n000\n")

		var stderr bytes.Buffer
		err := realMain([]string{
			"-config", filepath.Join(dir, "missing.json"),
			"-steps", "3",
			"-log-format", "json",
			pattern,
		}, &stderr)
		require.NoError(t, err)
		assert.Contains(t, stderr.String(), `"msg":"simulation finished"`)
		assert.Contains(t, stderr.String(), `"generations":3`)
	})

	t.Run("invalid log level", func(t *testing.T) {
		var stderr bytes.Buffer
		err := realMain([]string{"-config", filepath.Join(t.TempDir(), "missing.json"), "-log-level", "loud"}, &stderr)
		require.ErrorIs(t, err, utils.ErrInvalidConfig)
	})
}

func TestSamplePatterns(t *testing.T) {
	tests := []struct {
		file   string
		wrap   bool
		period int
	}{
		{"patterns/pentadecathlon.txt", false, 15},
		{"patterns/glider.txt", true, 32},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			initial, err := model.LoadPattern(tt.file)
			require.NoError(t, err)

			world, err := model.NewWorld(initial, tt.wrap)
			require.NoError(t, err)
			got, err := world.Simulate(tt.period)
			require.NoError(t, err)
			assert.True(t, initial.Equal(got))
		})
	}
}

func TestPatternName(t *testing.T) {
	assert.Equal(t, "glider", patternName("/tmp/patterns/glider.txt"))
	assert.Equal(t, "blinker", patternName("blinker"))
}
