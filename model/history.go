package model

// History keeps the hashes of recently seen generations to detect still lifes and oscillators
type History struct {
	size   int
	hashes []string
}

// NewHistory creates a history holding at most size states
func NewHistory(size int) *History {
	if size < 1 {
		size = 1
	}
	return &History{size: size}
}

// Record adds g to the history, dropping the oldest state once full
func (h *History) Record(g Grid) {
	h.hashes = append(h.hashes, g.Hash())
	if len(h.hashes) > h.size {
		h.hashes = h.hashes[1:]
	}
}

// Period returns k if g matches the state recorded k records ago, 0 if no
// recorded state matches. The smallest such k wins.
func (h *History) Period(g Grid) int {
	current := g.Hash()
	for k := 1; k <= len(h.hashes); k++ {
		if h.hashes[len(h.hashes)-k] == current {
			return k
		}
	}
	return 0
}
