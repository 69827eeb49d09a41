package utils

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsUpdate(t *testing.T) {
	s := NewStats()
	s.Update(1, 10, 100*time.Millisecond)
	assert.Equal(t, 1, s.TotalGenerations)
	assert.InDelta(t, 10.0, s.GenerationsPerSecond, 1e-9)
	assert.InDelta(t, 10.0, s.AveragePopulation, 1e-9)

	s.Update(2, 20, 0)
	assert.Equal(t, 2, s.TotalGenerations)
	assert.InDelta(t, 10.0, s.GenerationsPerSecond, 1e-9, "zero duration keeps the previous rate")
	assert.InDelta(t, 11.0, s.AveragePopulation, 1e-9)
}

func TestWriteCSV(t *testing.T) {
	s := NewStats()
	s.Record(GenerationRecord{Pattern: "blinker", Generation: 0, Population: 3, Density: 0.5, Hash: "aa"})
	s.Record(GenerationRecord{Pattern: "blinker", Generation: 1, Population: 3, Density: 0.5, Hash: "bb"})
	require.Len(t, s.Records(), 2)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, s.Records()))
	assert.Equal(t,
		"pattern,generation,population,density,hash\n"+
			"blinker,0,3,0.5,aa\n"+
			"blinker,1,3,0.5,bb\n",
		buf.String())
}
