package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/cognicore/nutshell/pkg/nutshell/rank"
	"github.com/oklog/ulid/v2"
)

func TestBuilderEmptyItems(t *testing.T) {
	builder := New()

	r := builder.Build("empty", KindMultiWord, "DEGREE", nil)

	if len(r.Items) != 0 {
		t.Errorf("Empty input should produce 0 items, got %d", len(r.Items))
	}
	if _, err := ulid.ParseStrict(r.ID); err != nil {
		t.Errorf("ID %q is not a valid ULID: %v", r.ID, err)
	}

	var buf bytes.Buffer
	if err := r.Format(&buf); err != nil {
		t.Fatalf("Format: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Empty report should print nothing, got %q", buf.String())
	}
}

func TestBuilderCopiesItems(t *testing.T) {
	items := []rank.ScoredWord{{Text: "big lamp", Score: 3}}
	r := New().Build("mary", KindMultiWord, "WEIGHTED_DEGREE", items)

	items[0].Text = "changed"
	if r.Items[0].Text != "big lamp" {
		t.Errorf("report should not alias the input slice, got %q", r.Items[0].Text)
	}
}

func TestBuilderIDsAreOrdered(t *testing.T) {
	builder := New()
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	builder.now = func() time.Time { return fixed }

	prev := ""
	for i := 0; i < 50; i++ {
		r := builder.Build("r", KindSingleWord, "DEGREE", nil)
		if r.ID <= prev {
			t.Fatalf("ID %s should sort after %s", r.ID, prev)
		}
		if !r.CreatedAt.Equal(fixed) {
			t.Errorf("CreatedAt = %v, want %v", r.CreatedAt, fixed)
		}
		prev = r.ID
	}
}

func TestFormat(t *testing.T) {
	r := New().Build("mary", KindMultiWord, "WEIGHTED_DEGREE", []rank.ScoredWord{
		{Text: "big lamp", Score: 3},
		{Text: "happy girl", Score: 2.5},
	})

	var buf bytes.Buffer
	if err := r.Format(&buf); err != nil {
		t.Fatalf("Format: %v", err)
	}
	if got, want := buf.String(), "big lamp 3\nhappy girl 2.5\n"; got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}

	buf.Reset()
	if err := r.FormatWithHeader(&buf); err != nil {
		t.Fatalf("FormatWithHeader: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 lines, got %q", buf.String())
	}
	if !strings.HasPrefix(lines[0], "# mary (multi, WEIGHTED_DEGREE) ") {
		t.Errorf("header = %q", lines[0])
	}
}
