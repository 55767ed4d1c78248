package tfidf

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// nonWord matches every run of characters that are not letters, numbers or '_'.
// Whitespace falls in this class too.
var nonWord = regexp.MustCompile(`[^\p{L}\p{N}_]+`)

// Document is the ordered token sequence read from one source
type Document struct {
	ID     string
	Tokens []string

	counts map[string]int
}

// NewDocument builds a document and indexes its vocabulary
func NewDocument(id string, tokens []string) *Document {
	counts := make(map[string]int, len(tokens))
	for _, token := range tokens {
		counts[token]++
	}
	return &Document{
		ID:     id,
		Tokens: tokens,
		counts: counts,
	}
}

// Len is the token count including duplicates and empty tokens.
func (d *Document) Len() int {
	return len(d.Tokens)
}

// Count returns the number of occurrences of word.
func (d *Document) Count(word string) int {
	return d.counts[word]
}

// Contains reports whether word occurs at least once.
func (d *Document) Contains(word string) bool {
	_, ok := d.counts[word]
	return ok
}

// Vocabulary returns the distinct words of the document in no particular order.
func (d *Document) Vocabulary() []string {
	words := make([]string, 0, len(d.counts))
	for word := range d.counts {
		words = append(words, word)
	}
	return words
}

// Tokenizer splits text into normalized tokens (lowercase, punctuation stripped)
type Tokenizer struct {
	// DropEmpty skips pieces that clean down to the empty string. By default
	// such pieces are kept as "" tokens and count towards document length.
	DropEmpty bool

	lower cases.Caser
}

func NewTokenizer(dropEmpty bool) *Tokenizer {
	return &Tokenizer{
		DropEmpty: dropEmpty,
		lower:     cases.Lower(language.Und),
	}
}

// Tokenize splits text on whitespace, strips non-word characters from each
// piece and lowercases the remainder.
func (t *Tokenizer) Tokenize(text string) []string {
	fields := strings.FieldsFunc(text, isSpace)
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		token := t.lower.String(nonWord.ReplaceAllString(field, ""))
		if token == "" && t.DropEmpty {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// TokenizeFile reads the whole file at path and tokenizes it.
func (t *Tokenizer) TokenizeFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return NewDocument(path, t.Tokenize(string(data))), nil
}

// isSpace also treats the ASCII information separators (0x1c-0x1f) as
// whitespace, which unicode.IsSpace does not.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
