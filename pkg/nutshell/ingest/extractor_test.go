package ingest

import (
	"reflect"
	"testing"
)

func TestExtractSplitsOnStopwordRuns(t *testing.T) {
	ex := NewExtractor([]string{"has", "a", "is"}, 0)

	tests := []struct {
		name string
		line string
		want []string
	}{
		{"run of two stop words", "Mary has a little lamp", []string{"mary", "little lamp"}},
		{"single stop word", "Mary is happy", []string{"mary", "happy"}},
		{"stop word prefix inside word", "mary hasty apple", []string{"mary hasty apple"}},
		{"leading stop words", "a little lamp", []string{"little lamp"}},
		{"only stop words", "has a is a", nil},
		{"empty", "", nil},
		{"hyphenated compound", "a well-known fact", []string{"well known fact"}},
		{"short segment dropped", "x is lamp", []string{"lamp"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ex.Extract(tt.line)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestExtractPreservesDuplicates(t *testing.T) {
	ex := NewExtractor([]string{"and"}, 2)
	got := ex.ExtractAll([]string{"red apple and red apple", "red apple"})
	want := []string{"red apple", "red apple", "red apple"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractAll = %q, want %q", got, want)
	}
}

func TestExtractMinLength(t *testing.T) {
	ex := NewExtractor([]string{"of"}, 4)
	got := ex.Extract("cat of mouse")
	want := []string{"mouse"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract = %q, want %q", got, want)
	}
}

func TestExtractWithoutStopwords(t *testing.T) {
	ex := NewExtractor(nil, 0)
	got := ex.Extract("  Plain   Line  ")
	want := []string{"plain line"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract = %q, want %q", got, want)
	}
}

func TestExtractMatchesWholeTokens(t *testing.T) {
	ex := NewExtractor([]string{"e.g", "i.e"}, 0)
	got := ex.Extract("learning e.g quickly")
	want := []string{"learning", "quickly"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract = %q, want %q", got, want)
	}

	got = ex.Extract("learning exg quickly")
	want = []string{"learning exg quickly"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract = %q, want %q", got, want)
	}
}

func TestExtractNonASCIIWords(t *testing.T) {
	ex := NewExtractor([]string{"a", "se", "de", "la", "él"}, 2)

	tests := []struct {
		line string
		want []string
	}{
		{"bahía blanca", []string{"bahía blanca"}},
		{"señora de madrid", []string{"señora", "madrid"}},
		{"Él visitó la Ciudad de México", []string{"visitó", "ciudad", "méxico"}},
		{"árbol sea adelante", []string{"árbol sea adelante"}},
		{"niño a niña", []string{"niño", "niña"}},
	}
	for _, tt := range tests {
		if got := ex.Extract(tt.line); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Extract(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestExtractMultiWordStopEntries(t *testing.T) {
	ex := NewExtractor([]string{"of", "as well as", "so-called", "AS"}, 0)

	tests := []struct {
		line string
		want []string
	}{
		{"cats as well as dogs", []string{"cats", "dogs"}},
		{"cats as dogs", []string{"cats", "dogs"}},
		{"cats as well dogs", []string{"cats", "well dogs"}},
		{"the so-called expert", []string{"the", "expert"}},
		{"the so called expert of note", []string{"the", "expert", "note"}},
	}
	for _, tt := range tests {
		if got := ex.Extract(tt.line); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Extract(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestNewExtractorNormalizesStopwords(t *testing.T) {
	ex := NewExtractor([]string{"The", " and ", "", "the", "   "}, 0)
	got := ex.Extract("THE cat AND the hat")
	want := []string{"cat", "hat"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract = %q, want %q", got, want)
	}
}
