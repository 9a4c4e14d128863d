package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cognicore/nutshell/pkg/nutshell/graph"
	"github.com/cognicore/nutshell/pkg/nutshell/internalerr"
	"github.com/cognicore/nutshell/pkg/nutshell/store"
)

type entry struct {
	info  store.CorpusInfo
	words []graph.WordCount
	edges []graph.EdgeCount
}

// Store is an in-memory implementation of store.CorpusStore for tests.
type Store struct {
	mu      sync.RWMutex
	corpora map[string]entry
	closed  bool
	now     func() time.Time
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		corpora: make(map[string]entry),
		now:     time.Now,
	}
}

// Close implements store.CorpusStore.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// SaveGraph stores a copy of g's rows.
func (s *Store) SaveGraph(ctx context.Context, name string, g *graph.Graph) error {
	if name == "" || g == nil {
		return fmt.Errorf("%w: corpus name and graph required", internalerr.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return internalerr.ErrStoreClosed
	}

	s.corpora[name] = entry{
		info:  store.Describe(name, g, s.now()),
		words: g.Words(),
		edges: g.Edges(),
	}
	return nil
}

// LoadGraph rebuilds a stored graph.
func (s *Store) LoadGraph(ctx context.Context, name string) (*graph.Graph, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, false, internalerr.ErrStoreClosed
	}

	e, ok := s.corpora[name]
	if !ok {
		return nil, false, nil
	}
	return graph.Restore(e.words, e.edges), true, nil
}

// ListGraphs returns stored corpora sorted by name.
func (s *Store) ListGraphs(ctx context.Context) ([]store.CorpusInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, internalerr.ErrStoreClosed
	}

	out := make([]store.CorpusInfo, 0, len(s.corpora))
	for _, e := range s.corpora {
		out = append(out, e.info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// DeleteGraph removes a stored graph.
func (s *Store) DeleteGraph(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return internalerr.ErrStoreClosed
	}

	if _, ok := s.corpora[name]; !ok {
		return fmt.Errorf("corpus %q: %w", name, internalerr.ErrNotFound)
	}
	delete(s.corpora, name)
	return nil
}

var _ store.CorpusStore = (*Store)(nil)
