package config

import (
	"fmt"

	"github.com/cognicore/nutshell/pkg/nutshell/stoplist"
)

// Loader loads all configuration files and constructs components
type Loader struct {
	ConfigPath   string
	StoplistPath string // overrides the profile's stopwords entry
	EnvFile      string // optional dotenv file
}

// Components holds all loaded configuration components
type Components struct {
	Analysis *Analysis
	Stoplist *stoplist.Manager
}

// Load reads all configuration files and returns initialized components
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	// Load analysis profile
	if l.ConfigPath != "" {
		a, err := LoadAnalysis(l.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		comp.Analysis = a
	} else {
		a := DefaultAnalysis()
		comp.Analysis = &a
	}

	// Environment overrides the profile
	if l.EnvFile != "" {
		if err := LoadEnvFile(l.EnvFile); err != nil {
			return nil, err
		}
	}
	ApplyEnv(comp.Analysis)

	// Load stoplist
	path := l.StoplistPath
	if path == "" {
		path = comp.Analysis.Stopwords
	}
	if path != "" {
		sl, err := LoadStopwords(path)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		comp.Stoplist = stoplist.NewManager(sl.Terms)
		comp.Analysis.Stopwords = path
	} else {
		comp.Stoplist = stoplist.NewManager(nil)
	}

	return comp, nil
}
