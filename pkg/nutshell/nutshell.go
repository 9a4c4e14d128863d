// Package nutshell extracts keywords, key phrases and key sentences from
// text using a word co-occurrence graph, optionally scored against a
// reference corpus.
package nutshell

import (
	"github.com/cognicore/nutshell/pkg/nutshell/graph"
	"github.com/cognicore/nutshell/pkg/nutshell/ingest"
	"github.com/cognicore/nutshell/pkg/nutshell/rank"
	"github.com/cognicore/nutshell/pkg/nutshell/scoring"
	"github.com/cognicore/nutshell/pkg/nutshell/stoplist"
)

// Analyzer is the keyword extraction facade. It owns a text graph, an
// optional corpus graph and the raw text lines.
//
// An Analyzer is not safe for concurrent use.
type Analyzer struct {
	extractor *ingest.Extractor
	engine    *scoring.Engine
	assoc     *scoring.Association

	text       *graph.Graph
	corpus     *graph.Graph // nil until the first corpus chunk
	candidates []string
	lines      []string
}

// Options configures an Analyzer
type Options struct {
	Stopwords          stoplist.Provider // nil means no stop words
	Strategy           scoring.Strategy
	MinCandidateLength int     // <= 0 selects ingest.DefaultMinLength
	UnknownScoreFactor float64 // <= 0 selects scoring.DefaultUnknownScoreFactor
}

// New creates an Analyzer. An invalid strategy is reported here, before
// any text is processed.
func New(opts Options) (*Analyzer, error) {
	engine, err := scoring.NewEngine(scoring.Config{
		Strategy:           opts.Strategy,
		UnknownScoreFactor: opts.UnknownScoreFactor,
	})
	if err != nil {
		return nil, err
	}

	var stops []string
	if opts.Stopwords != nil {
		stops = opts.Stopwords.Words()
	}

	return &Analyzer{
		extractor: ingest.NewExtractor(stops, opts.MinCandidateLength),
		engine:    engine,
		assoc:     scoring.NewAssociation(1.0),
		text:      graph.New(),
	}, nil
}

// Strategy returns the scoring strategy of the analyzer.
func (a *Analyzer) Strategy() scoring.Strategy {
	return a.engine.Strategy()
}

// AddText adds lines to the text under analysis.
func (a *Analyzer) AddText(lines []string) {
	candidates := a.extractor.ExtractAll(lines)
	a.text.AddAll(candidates)
	a.candidates = append(a.candidates, candidates...)
	a.lines = append(a.lines, lines...)
}

// AddCorpus adds lines to the reference corpus as one chunk, typically one
// corpus file. Chunks are built separately and merged, so the corpus does
// not depend on the order in which chunks arrive. The corpus only grows.
func (a *Analyzer) AddCorpus(lines []string) {
	chunk := graph.New()
	chunk.AddAll(a.extractor.ExtractAll(lines))
	if a.corpus == nil {
		a.corpus = chunk
		return
	}
	a.corpus.Merge(chunk)
}

// SetCorpus replaces the reference corpus with g, typically a graph loaded
// from a corpus cache. A nil graph removes the corpus.
func (a *Analyzer) SetCorpus(g *graph.Graph) {
	a.corpus = g
}

// Corpus returns the corpus graph, or nil when none was added.
func (a *Analyzer) Corpus() *graph.Graph {
	return a.corpus
}

// HasCorpus reports whether a reference corpus is present.
func (a *Analyzer) HasCorpus() bool {
	return a.corpus != nil
}

// ResetText clears the text side. The corpus is kept.
func (a *Analyzer) ResetText() {
	a.text = graph.New()
	a.candidates = nil
	a.lines = nil
}

// Text returns a snapshot of the text graph.
func (a *Analyzer) Text() *graph.Snapshot {
	return a.text.Freeze()
}

// Candidates returns the candidate phrases extracted so far, duplicates
// included.
func (a *Analyzer) Candidates() []string {
	out := make([]string, len(a.candidates))
	copy(out, a.candidates)
	return out
}

// WordScores scores every word of the text, against the corpus when one is
// present.
func (a *Analyzer) WordScores() scoring.Scores {
	var corpus *graph.Snapshot
	if a.corpus != nil {
		corpus = a.corpus.Freeze()
	}
	return a.engine.TextWordScores(a.text.Freeze(), corpus)
}

func (a *Analyzer) ranker() *rank.Ranker {
	return rank.New(a.WordScores())
}

// Keywords returns the n best candidate phrases.
func (a *Analyzer) Keywords(n int) []rank.ScoredWord {
	return a.ranker().MultiWord(a.candidates, n)
}

// SingleKeywords returns the n best single words.
func (a *Analyzer) SingleKeywords(n int) []rank.ScoredWord {
	return a.ranker().SingleWord(n)
}

// Abstract returns the n best distinct text lines.
func (a *Analyzer) Abstract(n int) []rank.ScoredWord {
	return a.ranker().Abstract(a.lines, n)
}

// ScoreString scores an arbitrary string against the current word scores.
func (a *Analyzer) ScoreString(s string) float64 {
	return a.ranker().ScorePhrase(s)
}

// Collocations returns the n adjacent word pairs of the text with the
// highest normalized PMI. Pairs are rendered as "from to".
func (a *Analyzer) Collocations(n int) []rank.ScoredWord {
	top := rank.NewTopK(n)
	for _, p := range a.assoc.Pairs(a.text.Freeze(), 1) {
		top.Collect(p.From+" "+p.To, p.NPMI)
	}
	return top.Results()
}
