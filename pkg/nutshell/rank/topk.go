package rank

import "container/heap"

// ScoredWord is a piece of text with its score.
type ScoredWord struct {
	Text  string
	Score float64
}

func (s ScoredWord) String() string {
	return s.Text + " " + formatScore(s.Score)
}

// Before reports whether s ranks ahead of o: higher score first, and text
// ascending among equal scores.
func (s ScoredWord) Before(o ScoredWord) bool {
	if s.Score != o.Score {
		return s.Score > o.Score
	}
	return s.Text < o.Text
}

// TopK collects the k best scored items using a bounded min-heap.
type TopK struct {
	k int
	h scoreHeap
}

// NewTopK creates a collector for the k best items. k <= 0 collects nothing.
func NewTopK(k int) *TopK {
	if k < 0 {
		k = 0
	}
	capacity := k
	if capacity > 1024 {
		capacity = 1024
	}
	return &TopK{
		k: k,
		h: make(scoreHeap, 0, capacity),
	}
}

// Collect offers an item to the collector.
func (c *TopK) Collect(text string, score float64) {
	if c.k == 0 {
		return
	}
	item := ScoredWord{Text: text, Score: score}
	if c.h.Len() < c.k {
		heap.Push(&c.h, item)
		return
	}
	// h[0] is the worst item kept so far
	if item.Before(c.h[0]) {
		c.h[0] = item
		heap.Fix(&c.h, 0)
	}
}

// Len returns the number of items collected so far.
func (c *TopK) Len() int {
	return c.h.Len()
}

// Results returns the collected items, best first. The collector is empty
// afterwards.
func (c *TopK) Results() []ScoredWord {
	result := make([]ScoredWord, c.h.Len())
	for i := len(result) - 1; i >= 0; i-- {
		result[i] = heap.Pop(&c.h).(ScoredWord)
	}
	return result
}

// scoreHeap is a min-heap whose root is the lowest ranked item.
type scoreHeap []ScoredWord

func (h scoreHeap) Len() int           { return len(h) }
func (h scoreHeap) Less(i, j int) bool { return h[j].Before(h[i]) }
func (h scoreHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *scoreHeap) Push(x any)        { *h = append(*h, x.(ScoredWord)) }
func (h *scoreHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
