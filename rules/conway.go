package rules

const (
	dead  uint8 = 0
	alive uint8 = 1
)

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.

Fewer than two live neighbours kills the cell, more than three kills it, exactly
three makes it live. With exactly two neighbours the cell keeps its current value.
*/
func ApplyConwayRules(neighbours int, current uint8) uint8 {
	switch {
	case neighbours < 2:
		return dead
	case neighbours > 3:
		return dead
	case neighbours == 3:
		return alive
	default:
		return current
	}
}
