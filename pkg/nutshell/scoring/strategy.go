package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/cognicore/nutshell/pkg/nutshell/graph"
	"github.com/cognicore/nutshell/pkg/nutshell/internalerr"
)

// Strategy selects how a word score is derived from its graph node.
type Strategy int

const (
	// Degree scores a word by its number of distinct neighbours.
	Degree Strategy = iota + 1
	// WeightedDegree scores a word by the multiplicity of its edges.
	WeightedDegree
	// RelativeDegree is WeightedDegree divided by relative frequency.
	RelativeDegree
	// Frequency scores a word by its relative frequency.
	Frequency
	// Entropy scores a word by its self-information -p·ln(p).
	Entropy
)

var strategyNames = map[Strategy]string{
	Degree:         "DEGREE",
	WeightedDegree: "WEIGHTED_DEGREE",
	RelativeDegree: "RELATIVE_DEGREE",
	Frequency:      "FREQUENCY",
	Entropy:        "ENTROPY",
}

// Strategies returns all strategies in declaration order.
func Strategies() []Strategy {
	return []Strategy{Degree, WeightedDegree, RelativeDegree, Frequency, Entropy}
}

// StrategyNames returns the canonical names of all strategies.
func StrategyNames() []string {
	out := make([]string, 0, len(strategyNames))
	for _, s := range Strategies() {
		out = append(out, s.String())
	}
	return out
}

// ParseStrategy resolves a strategy name such as "WEIGHTED_DEGREE".
// Matching ignores case and surrounding whitespace.
func ParseStrategy(name string) (Strategy, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for s, n := range strategyNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q (valid: %s)", internalerr.ErrUnknownStrategy, name, strings.Join(StrategyNames(), ", "))
}

func (s Strategy) String() string {
	if n, ok := strategyNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// Valid reports whether s is one of the declared strategies.
func (s Strategy) Valid() bool {
	_, ok := strategyNames[s]
	return ok
}

// Score computes the score of one node. corpusContext is set when the text
// node is being compared against a corpus; it drops the frequency weight
// that Entropy otherwise applies.
func (s Strategy) Score(n graph.Node, relFreq float64, corpusContext bool) float64 {
	switch s {
	case Degree:
		return float64(n.InDegree + n.OutDegree)
	case WeightedDegree:
		return float64(n.WeightedInDegree + n.WeightedOutDegree)
	case RelativeDegree:
		if relFreq <= 0 {
			return 0
		}
		return float64(n.WeightedInDegree+n.WeightedOutDegree) / relFreq
	case Frequency:
		return relFreq
	case Entropy:
		if relFreq <= 0 {
			return 0
		}
		score := -relFreq * math.Log(relFreq)
		if !corpusContext {
			score *= float64(n.Frequency)
		}
		return score
	}
	return 0
}
