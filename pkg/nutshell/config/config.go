package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/nutshell/pkg/nutshell/ingest"
	"github.com/cognicore/nutshell/pkg/nutshell/internalerr"
	"github.com/cognicore/nutshell/pkg/nutshell/scoring"
	"github.com/cognicore/nutshell/pkg/nutshell/stoplist"
)

// Output kinds
const (
	OutputMulti    = "multi"
	OutputSingle   = "single"
	OutputAbstract = "abstract"
)

// Analysis is an analysis profile
type Analysis struct {
	Strategy           string  `yaml:"strategy"`
	MinCandidateLength int     `yaml:"min_candidate_length"`
	UnknownScoreFactor float64 `yaml:"unknown_score_factor"`
	Stopwords          string  `yaml:"stopwords"`
	Output             string  `yaml:"output"`
	Count              int     `yaml:"count"`
	Pairs              int     `yaml:"pairs"`
	CorpusDir          string  `yaml:"corpus_dir"`
	CorpusCache        string  `yaml:"corpus_cache"`
	Visualization      string  `yaml:"visualization"`
}

// DefaultAnalysis returns the profile used when no file is given.
func DefaultAnalysis() Analysis {
	return Analysis{
		Strategy:           scoring.WeightedDegree.String(),
		MinCandidateLength: ingest.DefaultMinLength,
		UnknownScoreFactor: scoring.DefaultUnknownScoreFactor,
		Output:             OutputMulti,
		Count:              10,
		Visualization:      "nutshell.html",
	}
}

// LoadAnalysis loads an analysis profile from a YAML file. Fields missing
// from the file keep their default values.
func LoadAnalysis(path string) (*Analysis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	a := DefaultAnalysis()
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &a, nil
}

// Validate checks the profile for values the analyzer cannot use.
func (a *Analysis) Validate() error {
	if _, err := scoring.ParseStrategy(a.Strategy); err != nil {
		return fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}
	switch a.Output {
	case OutputMulti, OutputSingle, OutputAbstract:
	default:
		return fmt.Errorf("%w: output %q (want %s, %s or %s)", internalerr.ErrInvalidConfig,
			a.Output, OutputMulti, OutputSingle, OutputAbstract)
	}
	if a.Count < 0 {
		return fmt.Errorf("%w: count must not be negative", internalerr.ErrInvalidConfig)
	}
	if a.Pairs < 0 {
		return fmt.Errorf("%w: pairs must not be negative", internalerr.ErrInvalidConfig)
	}
	if a.MinCandidateLength < 0 {
		return fmt.Errorf("%w: min_candidate_length must not be negative", internalerr.ErrInvalidConfig)
	}
	if a.UnknownScoreFactor <= 0 {
		return fmt.Errorf("%w: unknown_score_factor must be positive", internalerr.ErrInvalidConfig)
	}
	return nil
}

// Stoplist represents the stopword list configuration
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, err
	}

	return &sl, nil
}

// LoadStopwordsText loads stopwords from a plain file of comma or
// whitespace separated words.
func LoadStopwordsText(path string) (*Stoplist, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := stoplist.Read(f)
	if err != nil {
		return nil, err
	}
	return &Stoplist{Terms: m.Words()}, nil
}

// LoadStopwords picks the stoplist format from the file extension.
func LoadStopwords(path string) (*Stoplist, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadStoplist(path)
	default:
		return LoadStopwordsText(path)
	}
}
