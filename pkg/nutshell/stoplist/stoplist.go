package stoplist

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/cognicore/nutshell/pkg/nutshell/graph"
	"github.com/cognicore/nutshell/pkg/nutshell/scoring"
)

// Provider supplies the stop words used to split candidate phrases.
type Provider interface {
	Words() []string
}

// Manager holds a set of stop words.
type Manager struct {
	stops map[string]struct{}
}

// NewManager creates a manager with the given stop words. Words are
// lower-cased and trimmed; empty words and duplicates are dropped.
func NewManager(initialStops []string) *Manager {
	m := &Manager{stops: make(map[string]struct{}, len(initialStops))}
	for _, s := range initialStops {
		m.Add(s)
	}
	return m
}

// Read parses stop words separated by commas or whitespace.
func Read(r io.Reader) (*Manager, error) {
	m := NewManager(nil)
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanLines)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		})
		for _, f := range fields {
			m.Add(f)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stopwords: %w", err)
	}
	return m, nil
}

// IsStop checks if a token is a stopword
func (m *Manager) IsStop(token string) bool {
	_, ok := m.stops[strings.ToLower(token)]
	return ok
}

// Add adds a token to the stoplist
func (m *Manager) Add(token string) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return
	}
	m.stops[token] = struct{}{}
}

// Remove removes a token from the stoplist
func (m *Manager) Remove(token string) {
	delete(m.stops, strings.ToLower(token))
}

// Len returns the number of stop words.
func (m *Manager) Len() int {
	return len(m.stops)
}

// Words returns all stopwords, sorted.
func (m *Manager) Words() []string {
	result := make([]string, 0, len(m.stops))
	for s := range m.stops {
		result = append(result, s)
	}
	sort.Strings(result)
	return result
}

// Reason explains why a token is suggested as a stopword
type Reason struct {
	HighFreq    bool    // frequent across the graph
	LowAssoc    bool    // no strong association with any neighbour
	Promiscuous bool    // connects to many distinct words
	RelFreq     float64 // relative frequency
	NPMIMax     float64 // strongest association with any neighbour
	Spread      float64 // distinct neighbours per occurrence
}

// Candidate represents a candidate stopword
type Candidate struct {
	Token  string
	Reason Reason
	Score  float64 // confidence score
}

// Thresholds defines criteria for stopword identification
type Thresholds struct {
	FreqPercent float64 // e.g., 2% of all tokens
	NPMIMax     float64 // e.g., 0.15 - maximum NPMI with any neighbour
	Spread      float64 // e.g., 0.5 - distinct neighbours per occurrence
	MinCount    int     // ignore words seen fewer times
}

// DefaultThresholds returns sensible default thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		FreqPercent: 2.0,
		NPMIMax:     0.15,
		Spread:      0.5,
		MinCount:    5,
	}
}

// SuggestCandidates suggests words of a graph that behave like stop words:
// frequent, spread over many distinct neighbours, and without a strong
// association to any of them. Words already in the stoplist are skipped.
// Candidates are ordered by descending score.
func (m *Manager) SuggestCandidates(s *graph.Snapshot, th Thresholds) []Candidate {
	if th.FreqPercent <= 0 {
		th.FreqPercent = DefaultThresholds().FreqPercent
	}
	assoc := scoring.NewAssociation(1.0)

	best := make(map[string]float64)
	for _, p := range assoc.Pairs(s, 1) {
		for _, w := range []string{p.From, p.To} {
			if v, ok := best[w]; !ok || p.NPMI > v {
				best[w] = p.NPMI
			}
		}
	}

	var candidates []Candidate
	for _, e := range s.Entries() {
		if m.IsStop(e.Word) || e.Node.Frequency == 0 || e.Node.Frequency < th.MinCount {
			continue
		}
		npmiMax := best[e.Word]
		relFreq := s.RelativeFrequency(e.Word)
		spread := float64(e.Node.InDegree+e.Node.OutDegree) / float64(e.Node.Frequency)

		reason := Reason{
			HighFreq:    relFreq*100 > th.FreqPercent,
			LowAssoc:    npmiMax < th.NPMIMax,
			Promiscuous: spread > th.Spread,
			RelFreq:     relFreq,
			NPMIMax:     npmiMax,
			Spread:      spread,
		}
		if !(reason.HighFreq && reason.LowAssoc && reason.Promiscuous) {
			continue
		}

		score := (math.Min(relFreq*100/th.FreqPercent, 2)/2 + (1.0 - npmiMax) + math.Min(spread, 1)) / 3.0
		candidates = append(candidates, Candidate{
			Token:  e.Word,
			Reason: reason,
			Score:  score,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Token < candidates[j].Token
	})
	return candidates
}
