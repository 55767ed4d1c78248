package engine

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/knowledge-engine/tfidf/internal/corpus"
	"github.com/knowledge-engine/tfidf/internal/tfidf"
)

// Request describes one keyword extraction run
type Request struct {
	Document string   // path or URL of the document to extract keywords from
	Corpus   []string // additional corpus documents
	Options  tfidf.RankOptions
}

// Result holds the ranked rows and corpus statistics of a run
type Result struct {
	Rows            []tfidf.ScoreRow
	CorpusDocuments int
	CorpusWords     int
}

// Engine orchestrates loading and ranking
type Engine struct {
	Loader *corpus.Loader
	Logger *logrus.Entry
}

func NewEngine(loader *corpus.Loader, logger *logrus.Entry) *Engine {
	return &Engine{
		Loader: loader,
		Logger: logger.WithField("component", "engine"),
	}
}

// Run loads the corpus and ranks the words of the requested document
func (e *Engine) Run(ctx context.Context, req Request) (*Result, error) {
	c, err := e.Loader.Load(ctx, req.Document, req.Corpus)
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}

	e.Logger.WithFields(logrus.Fields{
		"documents": c.Len(),
		"words":     c.WordCount(),
		"target":    c.Target().Len(),
	}).Info("Corpus loaded")

	rows, err := tfidf.Rank(c.Target(), c.Documents(), req.Options)
	if err != nil {
		return nil, fmt.Errorf("failed to rank %s: %w", req.Document, err)
	}

	e.Logger.WithFields(logrus.Fields{
		"min_df": req.Options.MinDF,
		"rows":   len(rows),
	}).Info("Ranked document")

	return &Result{
		Rows:            rows,
		CorpusDocuments: c.Len(),
		CorpusWords:     c.WordCount(),
	}, nil
}
