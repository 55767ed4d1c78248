package tfidf

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNegativeLimit is returned by Rank for a negative row limit.
var ErrNegativeLimit = errors.New("limit must not be negative")

// ScoreRow holds one ranked word of the target document
type ScoreRow struct {
	Word  string
	TFIDF float64
	TF    float64
}

// RankOptions controls filtering and truncation of the ranking
type RankOptions struct {
	MinDF int  // words in fewer corpus documents are dropped
	Limit int  // maximum number of rows, ignored when All is set
	All   bool // keep every surviving row
}

// Rank scores every distinct word of doc against docs and returns the rows
// ordered by tf_idf descending, then tf descending, then word ascending.
func Rank(doc *Document, docs []*Document, opts RankOptions) ([]ScoreRow, error) {
	if doc.Len() == 0 {
		return nil, fmt.Errorf("rank %s: %w", doc.ID, ErrEmptyDocument)
	}
	if !opts.All && opts.Limit < 0 {
		return nil, ErrNegativeLimit
	}

	rows := make([]ScoreRow, 0, len(doc.counts))
	for _, word := range doc.Vocabulary() {
		df := DF(word, docs)
		// skip too rare words
		if df < opts.MinDF {
			continue
		}

		tf, err := TF(word, doc)
		if err != nil {
			return nil, err
		}
		idf, err := idf(len(docs), df)
		if err != nil {
			return nil, fmt.Errorf("rank %q: %w", word, err)
		}

		rows = append(rows, ScoreRow{
			Word:  word,
			TFIDF: tf * idf,
			TF:    tf,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].less(rows[j])
	})

	if !opts.All && len(rows) > opts.Limit {
		rows = rows[:opts.Limit]
	}
	return rows, nil
}

func (r ScoreRow) less(o ScoreRow) bool {
	if r.TFIDF != o.TFIDF {
		return r.TFIDF > o.TFIDF
	}
	if r.TF != o.TF {
		return r.TF > o.TF
	}
	return r.Word < o.Word
}
