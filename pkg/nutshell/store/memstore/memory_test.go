package memstore

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/cognicore/nutshell/pkg/nutshell/graph"
	"github.com/cognicore/nutshell/pkg/nutshell/internalerr"
)

func corpusGraph() *graph.Graph {
	g := graph.New()
	g.AddAll([]string{"big lamp", "little lamp", "mary", "happy girl"})
	return g
}

func TestSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	s := New()

	g := corpusGraph()
	if err := s.SaveGraph(ctx, "lamps", g); err != nil {
		t.Fatalf("SaveGraph: %v", err)
	}

	// later mutations must not leak into the stored copy
	g.AddAll([]string{"big lamp"})

	loaded, found, err := s.LoadGraph(ctx, "lamps")
	if err != nil || !found {
		t.Fatalf("LoadGraph: found=%v err=%v", found, err)
	}
	if !reflect.DeepEqual(loaded.Entries(), corpusGraph().Entries()) {
		t.Errorf("loaded graph differs from saved graph")
	}

	_, found, err = s.LoadGraph(ctx, "missing")
	if err != nil || found {
		t.Errorf("missing corpus: found=%v err=%v", found, err)
	}
}

func TestListAndDelete(t *testing.T) {
	ctx := context.Background()
	s := New()

	for _, name := range []string{"zeta", "alpha"} {
		if err := s.SaveGraph(ctx, name, corpusGraph()); err != nil {
			t.Fatalf("SaveGraph(%s): %v", name, err)
		}
	}

	infos, err := s.ListGraphs(ctx)
	if err != nil {
		t.Fatalf("ListGraphs: %v", err)
	}
	if len(infos) != 2 || infos[0].Name != "alpha" || infos[1].Name != "zeta" {
		t.Fatalf("ListGraphs = %+v", infos)
	}
	if infos[0].Words != 6 || infos[0].Edges != 3 || infos[0].Tokens != 7 {
		t.Errorf("info = %+v, want 6 words, 3 edges, 7 tokens", infos[0])
	}

	if err := s.DeleteGraph(ctx, "alpha"); err != nil {
		t.Fatalf("DeleteGraph: %v", err)
	}
	if err := s.DeleteGraph(ctx, "alpha"); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("second delete: err = %v, want ErrNotFound", err)
	}
}

func TestInvalidInputAndClose(t *testing.T) {
	ctx := context.Background()
	s := New()

	if err := s.SaveGraph(ctx, "", corpusGraph()); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("empty name: err = %v, want ErrInvalidInput", err)
	}
	if err := s.SaveGraph(ctx, "x", nil); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("nil graph: err = %v, want ErrInvalidInput", err)
	}

	s.Close()
	if _, _, err := s.LoadGraph(ctx, "x"); !errors.Is(err, internalerr.ErrStoreClosed) {
		t.Errorf("load after close: err = %v, want ErrStoreClosed", err)
	}
}
