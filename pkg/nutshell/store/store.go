package store

import (
	"context"
	"time"

	"github.com/cognicore/nutshell/pkg/nutshell/graph"
)

// CorpusStore persists corpus graphs so a reference corpus does not have to
// be rebuilt from its files on every run.
type CorpusStore interface {
	Close() error

	// SaveGraph stores g under name, replacing any graph stored before.
	SaveGraph(ctx context.Context, name string, g *graph.Graph) error
	// LoadGraph returns the graph stored under name. The bool is false when
	// no such graph exists.
	LoadGraph(ctx context.Context, name string) (*graph.Graph, bool, error)
	// ListGraphs describes all stored graphs, sorted by name.
	ListGraphs(ctx context.Context) ([]CorpusInfo, error)
	// DeleteGraph removes a stored graph. Missing graphs yield
	// internalerr.ErrNotFound.
	DeleteGraph(ctx context.Context, name string) error
}

// CorpusInfo summarizes a stored corpus graph
type CorpusInfo struct {
	Name      string
	Words     int
	Edges     int
	Tokens    int // total frequency
	UpdatedAt time.Time
}

// Describe summarizes g as it would be stored under name.
func Describe(name string, g *graph.Graph, at time.Time) CorpusInfo {
	return CorpusInfo{
		Name:      name,
		Words:     g.NumWords(),
		Edges:     g.NumEdges(),
		Tokens:    g.TotalFrequency(),
		UpdatedAt: at,
	}
}
