package config

import (
	"testing"
)

func TestLoaderAllEmpty(t *testing.T) {
	loader := Loader{}

	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Empty loader should succeed: %v", err)
	}

	if comp.Analysis == nil {
		t.Fatal("Should have default analysis profile")
	}
	if comp.Analysis.Output != OutputMulti {
		t.Errorf("Output = %q, want %q", comp.Analysis.Output, OutputMulti)
	}
	if comp.Stoplist == nil || comp.Stoplist.Len() != 0 {
		t.Error("Should have empty stoplist")
	}
}

func TestLoaderNonExistentConfig(t *testing.T) {
	loader := Loader{ConfigPath: "/nonexistent/nutshell.yaml"}

	if _, err := loader.Load(); err == nil {
		t.Error("Should error on nonexistent config")
	}
}

func TestLoaderNonExistentStoplist(t *testing.T) {
	loader := Loader{StoplistPath: "/nonexistent/stoplist.txt"}

	if _, err := loader.Load(); err == nil {
		t.Error("Should error on nonexistent stoplist")
	}
}

func TestLoaderStoplistFromProfile(t *testing.T) {
	dir := t.TempDir()
	stops := writeFile(t, dir, "stops.txt", "the a is")
	cfg := writeFile(t, dir, "nutshell.yaml", "stopwords: "+stops+"\n")

	comp, err := (&Loader{ConfigPath: cfg}).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if comp.Stoplist.Len() != 3 {
		t.Errorf("stoplist size = %d, want 3", comp.Stoplist.Len())
	}
}

func TestLoaderStoplistFlagOverridesProfile(t *testing.T) {
	dir := t.TempDir()
	profileStops := writeFile(t, dir, "profile.txt", "the a is")
	flagStops := writeFile(t, dir, "flag.yaml", "terms: [of]\n")
	cfg := writeFile(t, dir, "nutshell.yaml", "stopwords: "+profileStops+"\n")

	comp, err := (&Loader{ConfigPath: cfg, StoplistPath: flagStops}).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if comp.Stoplist.Len() != 1 || !comp.Stoplist.IsStop("of") {
		t.Errorf("flag stoplist should win, got %v", comp.Stoplist.Words())
	}
	if comp.Analysis.Stopwords != flagStops {
		t.Errorf("profile should record the stoplist used, got %q", comp.Analysis.Stopwords)
	}
}
