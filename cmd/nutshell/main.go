package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/cognicore/nutshell/pkg/nutshell/scoring"
)

const (
	usageLine       = "nutshell -f <source.txt> -om|-os|-oa <n> [-c <directory>] [-v] [-sc <strategy>]"
	defaultStopFile = "stopwords_EN.txt"
)

// options holds the command line. Unset values fall back to the analysis
// profile.
type options struct {
	file       string
	output     string // multi, single or abstract; empty keeps the profile
	count      int
	corpusDir  string
	visualize  bool
	strategy   string
	stopwords  string
	configPath string
	envFile    string
	cache      string
	out        string
	pairs      int // < 0 keeps the profile
	suggest    int
}

func main() {
	opts, err := parseArgs(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	if err := run(context.Background(), opts, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// parseArgs parses and checks the command line. On invalid arguments it
// prints the problem and the usage to stderr.
func parseArgs(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("nutshell", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		opts     options
		multi    = fs.Int("om", -1, "Multi-word keyword output <n>")
		single   = fs.Int("os", -1, "Single-word keyword output <n>")
		abstract = fs.Int("oa", -1, "Abstract output <n>")
	)
	fs.StringVar(&opts.file, "f", "", "Source .txt or .html file (required)")
	fs.StringVar(&opts.corpusDir, "c", "", "Optional: corpus differential analysis vs all .txt/.html files in the directory")
	fs.BoolVar(&opts.visualize, "v", false, "Optional: create a word cloud visualization")
	fs.StringVar(&opts.strategy, "sc", "", "Optional: scoring strategy "+strings.Join(scoring.StrategyNames(), ", "))
	fs.StringVar(&opts.stopwords, "stop", "", "Optional: stop words file (default "+defaultStopFile+" when present)")
	fs.StringVar(&opts.configPath, "config", "", "Optional: YAML analysis profile")
	fs.StringVar(&opts.envFile, "env", "", "Optional: dotenv file with NUTSHELL_* settings")
	fs.StringVar(&opts.cache, "cache", "", "Optional: SQLite corpus cache")
	fs.StringVar(&opts.out, "out", "", "Optional: visualization file (default nutshell.html)")
	fs.IntVar(&opts.pairs, "pairs", -1, "Optional: also print the <n> strongest word pairs")
	fs.IntVar(&opts.suggest, "suggest-stop", 0, "Optional: also print up to <n> stop word candidates found in the text")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: %s\n", usageLine)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	invalid := func(format string, a ...any) (options, error) {
		err := fmt.Errorf(format, a...)
		fmt.Fprintf(stderr, "Invalid arguments: %v\n", err)
		fs.Usage()
		return options{}, err
	}

	if fs.NArg() > 0 {
		return invalid("unexpected argument %q", fs.Arg(0))
	}
	if opts.file == "" {
		return invalid("-f is required")
	}

	outputs := 0
	for _, o := range []struct {
		kind string
		n    int
	}{{"single", *single}, {"multi", *multi}, {"abstract", *abstract}} {
		if o.n < 0 {
			continue
		}
		outputs++
		opts.output, opts.count = o.kind, o.n
	}
	if outputs > 1 {
		return invalid("only one of -om, -os and -oa may be given")
	}
	if opts.output == "" && opts.configPath == "" {
		return invalid("one of -om, -os or -oa is required")
	}

	if opts.strategy != "" {
		if _, err := scoring.ParseStrategy(opts.strategy); err != nil {
			return invalid("%v", err)
		}
	}
	return opts, nil
}
