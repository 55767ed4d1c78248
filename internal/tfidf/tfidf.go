// Package tfidf scores the words of a document against a corpus using
// term frequency and base-10 inverse document frequency.
package tfidf

import (
	"errors"
	"math"
)

var (
	// ErrEmptyDocument is returned when term frequency is taken over a
	// document with no tokens.
	ErrEmptyDocument = errors.New("document has no tokens")
	// ErrZeroDocumentFrequency is returned when idf is requested for a word
	// that no corpus document contains.
	ErrZeroDocumentFrequency = errors.New("word does not occur in any corpus document")
)

// TF is the number of occurrences of word in doc divided by the length of doc.
func TF(word string, doc *Document) (float64, error) {
	if doc.Len() == 0 {
		return 0, ErrEmptyDocument
	}
	return float64(doc.Count(word)) / float64(doc.Len()), nil
}

// DF counts the documents containing word at least once.
func DF(word string, docs []*Document) int {
	df := 0
	for _, doc := range docs {
		if doc.Contains(word) {
			df++
		}
	}
	return df
}

// IDF = log10(len(docs) / df)
func IDF(word string, docs []*Document) (float64, error) {
	return idf(len(docs), DF(word, docs))
}

// TFIDF grows with occurrences in doc and shrinks with occurrences in other documents.
func TFIDF(word string, doc *Document, docs []*Document) (float64, error) {
	tf, err := TF(word, doc)
	if err != nil {
		return 0, err
	}
	idf, err := IDF(word, docs)
	if err != nil {
		return 0, err
	}
	return tf * idf, nil
}

func idf(numDocs, df int) (float64, error) {
	if df == 0 {
		return 0, ErrZeroDocumentFrequency
	}
	return math.Log10(float64(numDocs) / float64(df)), nil
}
