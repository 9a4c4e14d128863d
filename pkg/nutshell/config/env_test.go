package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvStrategy, "ENTROPY")
	t.Setenv(EnvMinCandidateLength, "4")
	t.Setenv(EnvUnknownScoreFactor, "not-a-number")
	t.Setenv(EnvCorpusDir, "/data/corpus")

	a := DefaultAnalysis()
	ApplyEnv(&a)

	if a.Strategy != "ENTROPY" {
		t.Errorf("Strategy = %q, want ENTROPY", a.Strategy)
	}
	if a.MinCandidateLength != 4 {
		t.Errorf("MinCandidateLength = %d, want 4", a.MinCandidateLength)
	}
	if a.UnknownScoreFactor != 1.3 {
		t.Errorf("unparsable factor should keep the default, got %v", a.UnknownScoreFactor)
	}
	if a.CorpusDir != "/data/corpus" {
		t.Errorf("CorpusDir = %q", a.CorpusDir)
	}
	if a.Visualization != "nutshell.html" {
		t.Errorf("unset variable changed Visualization to %q", a.Visualization)
	}
}

func TestLoaderEnvFile(t *testing.T) {
	dir := t.TempDir()
	stops := writeFile(t, dir, "stops.txt", "the, of")
	envFile := writeFile(t, dir, "nutshell.env", "NUTSHELL_STRATEGY=DEGREE\nNUTSHELL_STOPWORDS="+stops+"\n")

	// godotenv sets variables for the whole process and never overrides
	// existing ones; t.Setenv restores them after the test.
	for _, key := range []string{EnvStrategy, EnvStopwords} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	comp, err := (&Loader{EnvFile: envFile}).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if comp.Analysis.Strategy != "DEGREE" {
		t.Errorf("Strategy = %q, want DEGREE", comp.Analysis.Strategy)
	}
	if comp.Stoplist.Len() != 2 {
		t.Errorf("stoplist size = %d, want 2", comp.Stoplist.Len())
	}

	if _, err := (&Loader{EnvFile: filepath.Join(dir, "missing.env")}).Load(); err == nil {
		t.Error("missing env file should fail")
	}
}
