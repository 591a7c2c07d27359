package fuel

import "iter"

// HistoryCapacity is the number of readings a Monitor retains
const HistoryCapacity = 16

// history is a fixed-size ring buffer of levels. Once full, each push
// overwrites the oldest slot. It never allocates.
type history struct {
	levels [HistoryCapacity]Level
	head   int // next slot to write
	count  int
}

// push adds a level as the newest entry, evicting the oldest when full
func (h *history) push(level Level) {
	h.levels[h.head] = level
	h.head = (h.head + 1) % HistoryCapacity
	if h.count < HistoryCapacity {
		h.count++
	}
}

func (h *history) len() int {
	return h.count
}

// at returns the i-th entry counting from the oldest
func (h *history) at(i int) Level {
	start := (h.head - h.count + HistoryCapacity) % HistoryCapacity
	return h.levels[(start+i)%HistoryCapacity]
}

// oldestOrdered yields entries from oldest to newest
func (h *history) oldestOrdered() iter.Seq[Level] {
	return func(yield func(Level) bool) {
		for i := 0; i < h.count; i++ {
			if !yield(h.at(i)) {
				return
			}
		}
	}
}
