package report

import (
	"crypto/rand"
	"fmt"
	"io"
	"time"

	"github.com/cognicore/nutshell/pkg/nutshell/rank"
	"github.com/oklog/ulid/v2"
)

// Kind names the query a report answers.
type Kind string

const (
	KindMultiWord    Kind = "multi"
	KindSingleWord   Kind = "single"
	KindAbstract     Kind = "abstract"
	KindCollocations Kind = "pairs"
	KindStopwords    Kind = "stopwords"
)

// Builder constructs analysis reports
type Builder struct {
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

// New creates a new report builder
func New() *Builder {
	return &Builder{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

// Report is the ranked result of one query over one text.
type Report struct {
	ID        string
	Title     string
	Kind      Kind
	Strategy  string
	Items     []rank.ScoredWord
	CreatedAt time.Time
}

// Build creates a report. IDs of reports built by the same Builder sort in
// creation order.
func (b *Builder) Build(title string, kind Kind, strategy string, items []rank.ScoredWord) Report {
	now := b.now()
	r := Report{
		ID:        ulid.MustNew(ulid.Timestamp(now), b.entropy).String(),
		Title:     title,
		Kind:      kind,
		Strategy:  strategy,
		Items:     make([]rank.ScoredWord, len(items)),
		CreatedAt: now,
	}
	copy(r.Items, items)
	return r
}

// Format writes one "text score" line per item.
func (r Report) Format(w io.Writer) error {
	for _, item := range r.Items {
		if _, err := fmt.Fprintln(w, item.String()); err != nil {
			return err
		}
	}
	return nil
}

// FormatWithHeader writes a header line naming the report before its items.
func (r Report) FormatWithHeader(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "# %s (%s, %s) %s\n", r.Title, r.Kind, r.Strategy, r.ID); err != nil {
		return err
	}
	return r.Format(w)
}
