package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/cognicore/nutshell/pkg/nutshell"
	"github.com/cognicore/nutshell/pkg/nutshell/cloud"
	"github.com/cognicore/nutshell/pkg/nutshell/config"
	"github.com/cognicore/nutshell/pkg/nutshell/ingest"
	"github.com/cognicore/nutshell/pkg/nutshell/rank"
	"github.com/cognicore/nutshell/pkg/nutshell/report"
	"github.com/cognicore/nutshell/pkg/nutshell/scoring"
	"github.com/cognicore/nutshell/pkg/nutshell/stoplist"
	"github.com/cognicore/nutshell/pkg/nutshell/store"
	"github.com/cognicore/nutshell/pkg/nutshell/store/sqlite"
)

const fullCorpusName = "Full Corpus"

func run(ctx context.Context, opts options, stdout io.Writer) error {
	profile, comp, err := loadProfile(opts)
	if err != nil {
		return err
	}

	analyzer, err := buildAnalyzer(profile, comp)
	if err != nil {
		return err
	}

	lines, err := ingest.ReadFile(opts.file)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	analyzer.AddText(lines)

	// The full corpus analyzer only feeds the visualization.
	var full *nutshell.Analyzer
	if profile.CorpusDir != "" {
		if opts.visualize {
			if full, err = buildAnalyzer(profile, comp); err != nil {
				return err
			}
		}
		var cache store.CorpusStore
		if profile.CorpusCache != "" {
			st, err := sqlite.OpenSQLite(ctx, profile.CorpusCache)
			if err != nil {
				return fmt.Errorf("open corpus cache: %w", err)
			}
			defer st.Close()
			cache = st
		}
		if err := loadCorpus(ctx, cache, profile, comp, analyzer, full); err != nil {
			return err
		}
	}

	builder := report.New()
	strategy := analyzer.Strategy().String()
	kind := report.Kind(profile.Output)

	items := query(analyzer, profile.Output, profile.Count)
	if err := builder.Build(opts.file, kind, strategy, items).Format(stdout); err != nil {
		return err
	}

	if profile.Pairs > 0 {
		pairs := builder.Build(opts.file, report.KindCollocations, strategy, analyzer.Collocations(profile.Pairs))
		if err := pairs.FormatWithHeader(stdout); err != nil {
			return err
		}
	}

	if opts.suggest > 0 {
		var stops []rank.ScoredWord
		for _, c := range comp.Stoplist.SuggestCandidates(analyzer.Text(), stoplist.DefaultThresholds()) {
			if len(stops) == opts.suggest {
				break
			}
			stops = append(stops, rank.ScoredWord{Text: c.Token, Score: c.Score})
		}
		if err := builder.Build(opts.file, report.KindStopwords, strategy, stops).FormatWithHeader(stdout); err != nil {
			return err
		}
	}

	if opts.visualize {
		page := cloud.NewPage()
		page.AddDataSet(opts.file, items)
		if full != nil {
			page.AddDataSet(fullCorpusName, query(full, profile.Output, profile.Count))
		}
		if err := page.WriteFile(profile.Visualization); err != nil {
			return err
		}
		log.Printf("Wrote visualization to %s", profile.Visualization)
	}
	return nil
}

// loadProfile loads the analysis profile and stoplist and applies the
// command line on top.
func loadProfile(opts options) (*config.Analysis, *config.Components, error) {
	loader := config.Loader{
		ConfigPath:   opts.configPath,
		StoplistPath: opts.stopwords,
		EnvFile:      opts.envFile,
	}
	comp, err := loader.Load()
	if err != nil {
		return nil, nil, err
	}

	if comp.Analysis.Stopwords == "" {
		if _, err := os.Stat(defaultStopFile); err == nil {
			sl, err := config.LoadStopwords(defaultStopFile)
			if err != nil {
				return nil, nil, err
			}
			comp.Stoplist = stoplist.NewManager(sl.Terms)
			comp.Analysis.Stopwords = defaultStopFile
		}
	}

	a := comp.Analysis
	if opts.output != "" {
		a.Output = opts.output
		a.Count = opts.count
	}
	if opts.strategy != "" {
		a.Strategy = opts.strategy
	}
	if opts.corpusDir != "" {
		a.CorpusDir = opts.corpusDir
	}
	if opts.cache != "" {
		a.CorpusCache = opts.cache
	}
	if opts.out != "" {
		a.Visualization = opts.out
	}
	if opts.pairs >= 0 {
		a.Pairs = opts.pairs
	}

	if err := a.Validate(); err != nil {
		return nil, nil, err
	}
	return a, comp, nil
}

func buildAnalyzer(a *config.Analysis, comp *config.Components) (*nutshell.Analyzer, error) {
	strategy, err := scoring.ParseStrategy(a.Strategy)
	if err != nil {
		return nil, err
	}
	return nutshell.New(nutshell.Options{
		Stopwords:          comp.Stoplist,
		Strategy:           strategy,
		MinCandidateLength: a.MinCandidateLength,
		UnknownScoreFactor: a.UnknownScoreFactor,
	})
}

func query(a *nutshell.Analyzer, output string, n int) []rank.ScoredWord {
	switch output {
	case config.OutputSingle:
		return a.SingleKeywords(n)
	case config.OutputAbstract:
		return a.Abstract(n)
	default:
		return a.Keywords(n)
	}
}

// loadCorpus fills the analyzer's corpus from the cache or from the corpus
// directory. A nil cache always reads the directory. full, when set,
// receives the corpus files as text.
func loadCorpus(ctx context.Context, cache store.CorpusStore, a *config.Analysis, comp *config.Components, analyzer, full *nutshell.Analyzer) error {
	files, err := corpusFiles(a.CorpusDir)
	if err != nil {
		return err
	}

	if cache == nil {
		return processCorpus(files, a.CorpusDir, analyzer, full)
	}

	key, err := corpusKey(a, comp, files)
	if err != nil {
		return err
	}

	g, found, err := cache.LoadGraph(ctx, key)
	if err != nil {
		return fmt.Errorf("load corpus cache: %w", err)
	}
	if found {
		log.Printf("Using cached corpus %s (%d words)", a.CorpusDir, g.NumWords())
		analyzer.SetCorpus(g)
		if full == nil {
			return nil
		}
		return processCorpus(files, a.CorpusDir, nil, full)
	}

	if err := processCorpus(files, a.CorpusDir, analyzer, full); err != nil {
		return err
	}
	if corpus := analyzer.Corpus(); corpus != nil {
		if err := cache.SaveGraph(ctx, key, corpus); err != nil {
			return fmt.Errorf("save corpus cache: %w", err)
		}
	}
	return nil
}

// processCorpus reads every corpus file once. Each file is added as corpus
// to analyzer and as text to full; either may be nil.
func processCorpus(files []string, dir string, analyzer, full *nutshell.Analyzer) error {
	for i, path := range files {
		lines, err := ingest.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read corpus: %w", err)
		}
		if full != nil {
			full.AddText(lines)
		}
		if analyzer != nil {
			analyzer.AddCorpus(lines)
		}
		log.Printf("Processing corpus %s: %d/%d %s", dir, i+1, len(files), filepath.Base(path))
	}
	return nil
}

// corpusFiles lists the readable files of dir, sorted by name.
func corpusFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read corpus dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !ingest.IsSupported(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// corpusKey names a cached corpus graph. The key changes whenever a corpus
// file or a setting that shapes the graph changes.
func corpusKey(a *config.Analysis, comp *config.Components, files []string) (string, error) {
	abs, err := filepath.Abs(a.CorpusDir)
	if err != nil {
		return "", err
	}

	h := sha256.New()
	fmt.Fprintf(h, "min=%d\n", a.MinCandidateLength)
	for _, w := range comp.Stoplist.Words() {
		fmt.Fprintf(h, "stop=%s\n", w)
	}
	for _, path := range files {
		info, err := os.Stat(path)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(h, "file=%s size=%d mod=%d\n", filepath.Base(path), info.Size(), info.ModTime().UnixNano())
	}
	return abs + "#" + hex.EncodeToString(h.Sum(nil))[:16], nil
}
