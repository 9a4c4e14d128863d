package scoring

import (
	"math"
	"testing"
)

func TestPMIBasic(t *testing.T) {
	a := NewAssociation(1.0)

	// (2+1)*6 / ((3+1)*(2+1)) = 1.5
	if got := a.PMI(2, 3, 2, 6); !almostEqual(got, math.Log(1.5)) {
		t.Errorf("PMI = %v, want %v", got, math.Log(1.5))
	}
	if got := a.PMI(1, 1, 1, 0); got != 0 {
		t.Errorf("PMI with N=0 = %v, want 0", got)
	}
}

func TestNPMIZeroCases(t *testing.T) {
	a := NewAssociation(0) // falls back to 1.0
	if got := a.NPMI(0, 3, 3, 10); got != 0 {
		t.Errorf("NPMI with no co-occurrence = %v, want 0", got)
	}
	if got := a.NPMI(3, 3, 3, 0); got != 0 {
		t.Errorf("NPMI with N=0 = %v, want 0", got)
	}
}

func TestPairsRanksCollocations(t *testing.T) {
	// new: 3, york: 2, idea: 1
	snap := snapshot("new york", "new york", "new idea")
	a := NewAssociation(1.0)

	pairs := a.Pairs(snap, 1)
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(pairs))
	}
	if pairs[0].From != "new" || pairs[0].To != "idea" || pairs[1].To != "york" {
		t.Errorf("pairs should be in edge order, got %+v", pairs)
	}
	if pairs[1].Count != 2 {
		t.Errorf("new->york count = %d, want 2", pairs[1].Count)
	}
	if pairs[1].NPMI <= pairs[0].NPMI {
		t.Errorf("new york (%v) should associate more strongly than new idea (%v)", pairs[1].NPMI, pairs[0].NPMI)
	}

	filtered := a.Pairs(snap, 2)
	if len(filtered) != 1 || filtered[0].To != "york" {
		t.Errorf("minCount=2 should keep only new->york, got %+v", filtered)
	}
}
