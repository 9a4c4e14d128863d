package ingest

import (
	"strings"
	"unicode/utf8"
)

// DefaultMinLength is the shortest candidate phrase kept, in characters.
const DefaultMinLength = 2

// Extractor splits lines into candidate phrases at runs of stop words.
type Extractor struct {
	stopwords  map[string]struct{} // entries as space-joined tokens
	maxStopLen int                 // tokens in the longest entry
	minLength  int
}

// NewExtractor creates an extractor for the given stop words. Duplicates and
// case differences are ignored. An entry of several words, or a hyphenated
// one, matches that exact token sequence. A minLength <= 0 selects
// DefaultMinLength.
func NewExtractor(stopwords []string, minLength int) *Extractor {
	if minLength <= 0 {
		minLength = DefaultMinLength
	}
	e := &Extractor{
		stopwords: make(map[string]struct{}, len(stopwords)),
		minLength: minLength,
	}
	for _, w := range stopwords {
		tokens := tokenize(w)
		if len(tokens) == 0 {
			continue
		}
		e.stopwords[strings.Join(tokens, " ")] = struct{}{}
		e.maxStopLen = max(e.maxStopLen, len(tokens))
	}
	return e
}

// tokenize lower-cases s and splits it on whitespace and hyphens.
func tokenize(s string) []string {
	return strings.Fields(strings.ReplaceAll(strings.ToLower(s), "-", " "))
}

// stopRun returns how many leading tokens the longest matching stop entry
// covers, or 0 when tokens does not start with a stop word.
func (e *Extractor) stopRun(tokens []string) int {
	for n := min(e.maxStopLen, len(tokens)); n > 0; n-- {
		if _, ok := e.stopwords[strings.Join(tokens[:n], " ")]; ok {
			return n
		}
	}
	return 0
}

// Extract returns the candidate phrases of a single line, in order and
// without deduplication. Hyphenated compounds are split into words.
func (e *Extractor) Extract(line string) []string {
	tokens := tokenize(line)

	var (
		out     []string
		segment []string
	)
	flush := func() {
		if len(segment) == 0 {
			return
		}
		phrase := strings.Join(segment, " ")
		segment = segment[:0]
		if utf8.RuneCountInString(phrase) >= e.minLength {
			out = append(out, phrase)
		}
	}

	for i := 0; i < len(tokens); {
		if n := e.stopRun(tokens[i:]); n > 0 {
			flush()
			i += n
			continue
		}
		segment = append(segment, tokens[i])
		i++
	}
	flush()
	return out
}

// ExtractAll returns the candidates of every line, in line order.
func (e *Extractor) ExtractAll(lines []string) []string {
	var out []string
	for _, line := range lines {
		out = append(out, e.Extract(line)...)
	}
	return out
}
