package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/cheggaaa/pb/v3"
	"github.com/sirupsen/logrus"

	"github.com/knowledge-engine/tfidf/internal/config"
	"github.com/knowledge-engine/tfidf/internal/corpus"
	"github.com/knowledge-engine/tfidf/internal/engine"
	"github.com/knowledge-engine/tfidf/internal/fetcher"
	"github.com/knowledge-engine/tfidf/internal/report"
	"github.com/knowledge-engine/tfidf/internal/tfidf"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, filepath.Base(os.Args[0]), os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(name, args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		io.WriteString(stderr, name+": error: "+err.Error()+"\n")
		return exitUsage
	}

	// 1. Config
	logger := logrus.New()
	logger.SetOutput(stderr)
	if err := config.LoadEnvFile(config.GetStringEnv("TFIDF_ENV_FILE", ".env")); err != nil {
		logger.WithError(err).Warn("Ignoring env file")
	}
	cfg := config.Load()

	// 2. Logging
	configureLogger(logger, cfg.Log, opts.verbose)
	entry := logger.WithField("service", "tfidf")

	// 3. Corpus loading
	remote := corpus.URLSource{Fetcher: fetcher.NewFetcher(cfg.Fetch, entry)}
	loader := corpus.NewLoader(tfidf.NewTokenizer(opts.dropEmpty), remote, entry)
	if opts.progress {
		loader.Progress = &progressBar{out: stderr}
	}

	// 4. Ranking
	eng := engine.NewEngine(loader, entry)
	result, err := eng.Run(ctx, engine.Request{
		Document: opts.document,
		Corpus:   opts.corpus,
		Options: tfidf.RankOptions{
			MinDF: opts.minDF,
			Limit: opts.limit,
			All:   opts.all,
		},
	})
	if err != nil {
		entry.WithError(err).Error("Keyword extraction failed")
		return exitError
	}

	// 5. Output
	format := report.FormatTable
	switch {
	case opts.json:
		format = report.FormatJSON
	case opts.yaml:
		format = report.FormatYAML
	}
	if err := report.Write(stdout, format, result.Rows, result.CorpusWords); err != nil {
		entry.WithError(err).Error("Failed to write report")
		return exitError
	}

	return exitOK
}

func configureLogger(logger *logrus.Logger, cfg config.LogConfig, verbose bool) {
	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logger.WithField("level", cfg.Level).Warn("Unknown log level, using warn")
		level = logrus.WarnLevel
	}
	if verbose {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)
}

// progressBar reports corpus loading on a pb bar
type progressBar struct {
	out io.Writer
	bar *pb.ProgressBar
}

func (p *progressBar) Start(total int) {
	p.bar = pb.New(total)
	p.bar.SetWriter(p.out)
	p.bar.Start()
}

func (p *progressBar) Loaded(string, int) {
	p.bar.Increment()
}

func (p *progressBar) Finish() {
	p.bar.Finish()
}
