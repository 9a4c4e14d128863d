package scoring

import (
	"fmt"
	"math"

	"github.com/cognicore/nutshell/pkg/nutshell/graph"
	"github.com/cognicore/nutshell/pkg/nutshell/internalerr"
)

const (
	// DefaultUnknownScoreFactor places words missing from the corpus above
	// the best known word.
	DefaultUnknownScoreFactor = 1.3

	// Epsilon is the largest corpus score treated as zero.
	Epsilon = 1e-12
)

// Scores maps words to their scores.
type Scores map[string]float64

// Get returns the score of word, or 0 when it has none.
func (s Scores) Get(word string) float64 {
	return s[word]
}

// Engine computes word scores from graph snapshots.
type Engine struct {
	strategy      Strategy
	unknownFactor float64
}

// Config configures an Engine.
type Config struct {
	Strategy           Strategy
	UnknownScoreFactor float64 // <= 0 selects DefaultUnknownScoreFactor
}

// NewEngine validates the configuration and creates an engine.
func NewEngine(cfg Config) (*Engine, error) {
	if !cfg.Strategy.Valid() {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrUnknownStrategy, cfg.Strategy)
	}
	factor := cfg.UnknownScoreFactor
	if factor <= 0 {
		factor = DefaultUnknownScoreFactor
	}
	return &Engine{strategy: cfg.Strategy, unknownFactor: factor}, nil
}

// Strategy returns the engine's strategy.
func (e *Engine) Strategy() Strategy {
	return e.strategy
}

// UnknownScoreFactor returns the factor applied to unknown words.
func (e *Engine) UnknownScoreFactor() float64 {
	return e.unknownFactor
}

// WordScores scores every word of the snapshot against its own statistics.
func (e *Engine) WordScores(s *graph.Snapshot) Scores {
	out := make(Scores, s.NumWords())
	for _, entry := range s.Entries() {
		out[entry.Word] = e.strategy.Score(entry.Node, s.RelativeFrequency(entry.Word), false)
	}
	return out
}

// TextWordScores scores the words of text. Without a corpus this is
// WordScores(text). With a corpus, each word known to the corpus is scored
// relative to its corpus score. Words the corpus does not know, or scores at
// no more than Epsilon, receive a baseline above the best known score,
// multiplied by their text frequency.
func (e *Engine) TextWordScores(text, corpus *graph.Snapshot) Scores {
	if corpus == nil {
		return e.WordScores(text)
	}

	corpusScores := e.WordScores(corpus)
	out := make(Scores, text.NumWords())
	var unknown []graph.Entry

	for _, entry := range text.Entries() {
		word := entry.Word
		corpusScore, known := corpusScores[word]
		if !known || corpusScore <= Epsilon {
			unknown = append(unknown, entry)
			continue
		}

		score := e.strategy.Score(entry.Node, text.RelativeFrequency(word), true)
		if e.strategy == Entropy {
			// entropy contributions add up
			out[word] += score
			continue
		}
		out[word] = score / corpusScore
	}

	baseline := unknownBaseline(out, e.unknownFactor)
	for _, entry := range unknown {
		out[entry.Word] = baseline * float64(entry.Node.Frequency)
	}
	return out
}

// unknownBaseline returns min + (max-min)*factor over the known scores.
// With no known scores the baseline is 1, so unknown words score by
// frequency alone.
func unknownBaseline(known Scores, factor float64) float64 {
	if len(known) == 0 {
		return 1
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range known {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo + (hi-lo)*factor
}
