package utils

import (
	"io"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
)

// GenerationRecord is one row of the per-generation statistics export
type GenerationRecord struct {
	Pattern    string  `csv:"pattern"`
	Generation int     `csv:"generation"`
	Population int     `csv:"population"`
	Density    float64 `csv:"density"`
	Hash       string  `csv:"hash"`
}

// Stats for performance monitoring
type Stats struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	TotalGenerations     int
	StartTime            time.Time

	records []GenerationRecord
}

func NewStats() *Stats {
	return &Stats{StartTime: time.Now()}
}

func (s *Stats) Update(generation int, population int, duration time.Duration) {
	s.TotalGenerations = generation
	if duration > 0 {
		s.GenerationsPerSecond = 1.0 / duration.Seconds()
	}

	// Simple moving average for population
	if s.AveragePopulation == 0 {
		s.AveragePopulation = float64(population)
	} else {
		s.AveragePopulation = (s.AveragePopulation * 0.9) + (float64(population) * 0.1)
	}
}

// Record keeps rec for the CSV export
func (s *Stats) Record(rec GenerationRecord) {
	s.records = append(s.records, rec)
}

// Records returns the recorded rows in insertion order
func (s *Stats) Records() []GenerationRecord {
	return s.records
}

// WriteCSV writes records with a header row
func WriteCSV(w io.Writer, records []GenerationRecord) error {
	if err := gocsv.Marshal(records, w); err != nil {
		return errors.Wrap(err, "[WriteCSV] failed to marshal records")
	}
	return nil
}
