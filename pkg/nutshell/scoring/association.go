package scoring

import (
	"math"

	"github.com/cognicore/nutshell/pkg/nutshell/graph"
)

// Association measures how strongly two adjacent words attract each other,
// using pointwise mutual information over graph counts.
type Association struct {
	epsilon float64 // smoothing constant
}

// NewAssociation creates an association calculator with the given epsilon.
func NewAssociation(epsilon float64) *Association {
	if epsilon <= 0 {
		epsilon = 1.0
	}
	return &Association{epsilon: epsilon}
}

// PMI scores an edge from->to against chance. edge is the edge
// multiplicity, from and to are the two word frequencies and total is the
// graph's total frequency. Every count is smoothed by epsilon, so an edge
// seen as often as independent words would predict scores about 0.
func (a *Association) PMI(edge, from, to, total int) float64 {
	if total == 0 {
		return 0
	}
	observed := (float64(edge) + a.epsilon) * float64(total)
	expected := (float64(from) + a.epsilon) * (float64(to) + a.epsilon)
	return math.Log(observed / expected)
}

// NPMI scales PMI by the self-information of the edge, which bounds it to
// about [-1, 1]. Missing edges score 0.
func (a *Association) NPMI(edge, from, to, total int) float64 {
	if total == 0 || edge == 0 {
		return 0
	}
	selfInfo := -math.Log((float64(edge) + a.epsilon) / (float64(total) + a.epsilon))
	if selfInfo == 0 {
		return 0
	}
	return a.PMI(edge, from, to, total) / selfInfo
}

// Pair is an edge of the graph scored by association strength.
type Pair struct {
	From  string
	To    string
	Count int
	NPMI  float64
}

// Pairs scores every edge of the snapshot with at least minCount
// occurrences. Edges are returned in (from, to) order.
func (a *Association) Pairs(s *graph.Snapshot, minCount int) []Pair {
	total := s.TotalFrequency()
	var out []Pair
	for _, e := range s.Edges() {
		if e.Count < minCount {
			continue
		}
		out = append(out, Pair{
			From:  e.From,
			To:    e.To,
			Count: e.Count,
			NPMI:  a.NPMI(e.Count, s.Frequency(e.From), s.Frequency(e.To), total),
		})
	}
	return out
}
