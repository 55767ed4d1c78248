package corpus

import (
	"context"
	"fmt"

	"github.com/knowledge-engine/tfidf/internal/fetcher"
)

// Source reads the raw text behind a remote corpus reference
type Source interface {
	Read(ctx context.Context, ref string) (string, error)
}

// URLSource reads references over HTTP through a fetcher
type URLSource struct {
	Fetcher *fetcher.Fetcher
}

func (s URLSource) Read(ctx context.Context, url string) (string, error) {
	res, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	return res.Text, nil
}
