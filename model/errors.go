package model

import "github.com/pkg/errors"

var (
	// ErrInvalidShape is returned for an empty or non-rectangular grid
	ErrInvalidShape = errors.New("invalid grid shape")
	// ErrInvalidCell is returned when a cell holds anything other than 0 or 1
	ErrInvalidCell = errors.New("invalid cell value")
	// ErrInvalidStepCount is returned when asked to simulate a negative number of generations
	ErrInvalidStepCount = errors.New("invalid step count")
)
