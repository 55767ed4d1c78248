package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
)

const usageHeader = `usage: %s -i DOCUMENT [options] [corpus ...]
Calculates keywords in a document, using a word corpus.

Options:
`

// options are the parsed command line arguments
type options struct {
	document  string
	corpus    []string
	minDF     int
	limit     int
	all       bool
	json      bool
	yaml      bool
	dropEmpty bool
	progress  bool
	verbose   bool
}

// usageError marks argument problems detected before any processing
type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

func newFlagSet(name string, o *options, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)

	o.minDF = 2
	o.limit = 10

	fs.StringVar(&o.document, "input-document", "", "document file to extract keywords from (required)")
	fs.StringVar(&o.document, "i", "", "shorthand for --input-document")
	fs.IntVar(&o.minDF, "min-df", o.minDF, "if a word occurs in fewer corpus documents than this, it's not considered")
	fs.Var(countVar{&o.limit}, "n", "limit output to this many words")
	fs.BoolVar(&o.all, "all", false, "don't limit the amount of words to output")
	fs.BoolVar(&o.json, "json", false, "get output as json")
	fs.BoolVar(&o.json, "j", false, "shorthand for --json")
	fs.BoolVar(&o.yaml, "yaml", false, "get output as yaml")
	fs.BoolVar(&o.yaml, "y", false, "shorthand for --yaml")
	fs.BoolVar(&o.dropEmpty, "drop-empty", false, "skip tokens that are empty after stripping punctuation")
	fs.BoolVar(&o.progress, "progress", false, "show a progress bar on stderr while loading the corpus")
	fs.BoolVar(&o.verbose, "verbose", false, "log debug output to stderr")
	fs.BoolVar(&o.verbose, "v", false, "shorthand for --verbose")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), usageHeader, name)
		fs.PrintDefaults()
	}
	return fs
}

// parseArgs parses flags and positional corpus files. Flags and corpus
// files may be interleaved; everything after "--" is a corpus file.
func parseArgs(name string, args []string, output io.Writer) (*options, error) {
	o := &options{}
	fs := newFlagSet(name, o, output)

	for {
		if err := fs.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return nil, err
			}
			return nil, &usageError{msg: err.Error()}
		}

		rest := fs.Args()
		consumed := len(args) - len(rest)
		if consumed > 0 && args[consumed-1] == "--" {
			o.corpus = append(o.corpus, rest...)
			break
		}
		if len(rest) == 0 {
			break
		}
		o.corpus = append(o.corpus, rest[0])
		args = rest[1:]
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})

	switch {
	case o.document == "":
		return nil, usagef("the following argument is required: --input-document/-i")
	case set["n"] && set["all"]:
		return nil, usagef("argument --all: not allowed with argument -n")
	case o.json && o.yaml:
		return nil, usagef("argument --yaml/-y: not allowed with argument --json/-j")
	}

	return o, nil
}

// countVar is an int flag that rejects negative values
type countVar struct {
	n *int
}

func (c countVar) String() string {
	if c.n == nil {
		return ""
	}
	return strconv.Itoa(*c.n)
}

func (c countVar) Set(s string) error {
	val, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	if val < 0 {
		return fmt.Errorf("%d is negative", val)
	}
	*c.n = val
	return nil
}
