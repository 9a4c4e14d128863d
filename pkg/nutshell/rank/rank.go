package rank

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cognicore/nutshell/pkg/nutshell/scoring"
)

// minLineLength is the shortest line considered for an abstract.
const minLineLength = 2

// Ranker turns a word score table into ranked phrases, words and lines.
type Ranker struct {
	scores scoring.Scores
}

// New creates a ranker over the given word scores.
func New(scores scoring.Scores) *Ranker {
	if scores == nil {
		scores = scoring.Scores{}
	}
	return &Ranker{scores: scores}
}

// ScorePhrase returns the sum of the scores of the phrase's words. Words
// without a score contribute 0.
func (r *Ranker) ScorePhrase(phrase string) float64 {
	score := 0.0
	for _, w := range strings.Fields(strings.ToLower(phrase)) {
		score += r.scores.Get(w)
	}
	return score
}

// MultiWord ranks candidate phrases. Every occurrence of a phrase adds its
// score to the phrase total, so repeated phrases rank higher than a single
// occurrence of an equally scored phrase.
func (r *Ranker) MultiWord(candidates []string, n int) []ScoredWord {
	totals := make(map[string]float64)
	for _, c := range candidates {
		totals[c] += r.ScorePhrase(c)
	}

	top := NewTopK(n)
	for phrase, score := range totals {
		top.Collect(phrase, score)
	}
	return top.Results()
}

// SingleWord ranks every scored word.
func (r *Ranker) SingleWord(n int) []ScoredWord {
	top := NewTopK(n)
	for word, score := range r.scores {
		top.Collect(word, score)
	}
	return top.Results()
}

// Abstract ranks distinct lines by their phrase score. Lines are returned as
// given, case included.
func (r *Ranker) Abstract(lines []string, n int) []ScoredWord {
	seen := make(map[string]struct{}, len(lines))
	top := NewTopK(n)
	for _, line := range lines {
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		if utf8.RuneCountInString(strings.TrimSpace(line)) < minLineLength {
			continue
		}
		top.Collect(line, r.ScorePhrase(line))
	}
	return top.Results()
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'g', -1, 64)
}
