// Package corpus loads the target document and the corpus it is scored against.
package corpus

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/knowledge-engine/tfidf/internal/fetcher"
	"github.com/knowledge-engine/tfidf/internal/tfidf"
)

// Corpus is the set of tokenized documents, always including the target
type Corpus struct {
	target *tfidf.Document
	docs   []*tfidf.Document
}

func (c *Corpus) Target() *tfidf.Document {
	return c.target
}

func (c *Corpus) Documents() []*tfidf.Document {
	return c.docs
}

func (c *Corpus) Len() int {
	return len(c.docs)
}

// WordCount is the total number of tokens over all documents, duplicates included.
func (c *Corpus) WordCount() int {
	n := 0
	for _, doc := range c.docs {
		n += doc.Len()
	}
	return n
}

// Progress observes document loading
type Progress interface {
	Start(total int)
	Loaded(ref string, tokens int)
	Finish()
}

type noProgress struct{}

func (noProgress) Start(int)          {}
func (noProgress) Loaded(string, int) {}
func (noProgress) Finish()            {}

// Loader tokenizes corpus references read from disk or, when a remote
// source is configured, over HTTP.
type Loader struct {
	Tokenizer *tfidf.Tokenizer
	Remote    Source
	Progress  Progress
	logger    *logrus.Entry
}

func NewLoader(tokenizer *tfidf.Tokenizer, remote Source, logger *logrus.Entry) *Loader {
	return &Loader{
		Tokenizer: tokenizer,
		Remote:    remote,
		Progress:  noProgress{},
		logger:    logger.WithField("component", "corpus_loader"),
	}
}

// Load tokenizes target and every unique reference in refs. The target is
// always part of the returned corpus.
func (l *Loader) Load(ctx context.Context, target string, refs []string) (*Corpus, error) {
	unique, err := Unique(target, refs)
	if err != nil {
		return nil, err
	}

	l.Progress.Start(len(unique))
	defer l.Progress.Finish()

	c := &Corpus{docs: make([]*tfidf.Document, 0, len(unique))}
	for i, ref := range unique {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		doc, err := l.load(ctx, ref)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			c.target = doc
		}
		c.docs = append(c.docs, doc)

		l.logger.WithFields(logrus.Fields{
			"ref":    ref,
			"tokens": doc.Len(),
		}).Debug("Loaded document")
		l.Progress.Loaded(ref, doc.Len())
	}

	return c, nil
}

func (l *Loader) load(ctx context.Context, ref string) (*tfidf.Document, error) {
	if !fetcher.IsURL(ref) {
		return l.Tokenizer.TokenizeFile(ref)
	}
	if l.Remote == nil {
		return nil, fmt.Errorf("%s: remote documents are not enabled", ref)
	}

	text, err := l.Remote.Read(ctx, ref)
	if err != nil {
		return nil, err
	}
	return tfidf.NewDocument(ref, l.Tokenizer.Tokenize(text)), nil
}

// Unique returns target followed by the references of refs that do not
// name an already listed document. Local files are compared by identity,
// so two paths to the same file count once; URLs are compared verbatim.
func Unique(target string, refs []string) ([]string, error) {
	unique := make([]string, 0, len(refs)+1)
	var files []os.FileInfo
	urls := make(map[string]bool)

	for _, ref := range append([]string{target}, refs...) {
		if fetcher.IsURL(ref) {
			if urls[ref] {
				continue
			}
			urls[ref] = true
			unique = append(unique, ref)
			continue
		}

		info, err := os.Stat(ref)
		if err != nil {
			return nil, fmt.Errorf("failed to stat document: %w", err)
		}
		if containsFile(files, info) {
			continue
		}
		files = append(files, info)
		unique = append(unique, ref)
	}

	return unique, nil
}

func containsFile(files []os.FileInfo, info os.FileInfo) bool {
	for _, f := range files {
		if os.SameFile(f, info) {
			return true
		}
	}
	return false
}
