package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"github.com/knowledge-engine/tfidf/internal/config"
)

// ErrDisallowed is returned when robots.txt forbids fetching a URL
var ErrDisallowed = errors.New("disallowed by robots.txt")

// FetchResult contains the text extracted from a remote document
type FetchResult struct {
	URL         string
	Title       string
	Text        string
	ContentType string
	StatusCode  int
}

type Fetcher struct {
	client       *http.Client
	userAgent    string
	maxBodyBytes int64
	robots       *RobotsChecker
	logger       *logrus.Entry
}

func NewFetcher(cfg config.FetchConfig, logger *logrus.Entry) *Fetcher {
	client := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 2,
			IdleConnTimeout:     30 * time.Second,
		},
	}

	f := &Fetcher{
		client:       client,
		userAgent:    cfg.UserAgent,
		maxBodyBytes: cfg.MaxBodyBytes,
		logger:       logger.WithField("component", "fetcher"),
	}
	if cfg.RespectRobots {
		f.robots = NewRobotsChecker(client, cfg.UserAgent, f.logger)
	}
	return f
}

// IsURL reports whether ref should be fetched over HTTP instead of read from disk.
func IsURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// Fetch downloads a document and reduces HTML to its visible text
func (f *Fetcher) Fetch(ctx context.Context, url string) (*FetchResult, error) {
	if f.robots != nil {
		allowed, err := f.robots.Allowed(ctx, url)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, fmt.Errorf("%s: %w", url, ErrDisallowed)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	result := &FetchResult{
		URL:         url,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
	}

	if resp.StatusCode != http.StatusOK {
		return result, fmt.Errorf("received non-200 status code: %d", resp.StatusCode)
	}

	var body io.Reader = resp.Body
	if f.maxBodyBytes > 0 {
		body = io.LimitReader(resp.Body, f.maxBodyBytes)
	}

	if isHTML(result.ContentType) {
		if err := parseHTML(body, result); err != nil {
			return nil, fmt.Errorf("parsing error: %w", err)
		}
	} else {
		data, err := io.ReadAll(body)
		if err != nil {
			return nil, fmt.Errorf("failed to read body: %w", err)
		}
		result.Text = string(data)
	}

	f.logger.WithFields(logrus.Fields{
		"url":          url,
		"content_type": result.ContentType,
		"bytes":        len(result.Text),
	}).Debug("Fetched document")

	return result, nil
}

func isHTML(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}

// parseHTML keeps text nodes outside script and style and records the title
func parseHTML(body io.Reader, result *FetchResult) error {
	tokenizer := html.NewTokenizer(body)
	var textBuilder strings.Builder
	inScript := false
	inStyle := false
	inTitle := false

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			if tokenizer.Err() == io.EOF {
				result.Text = strings.Join(strings.Fields(textBuilder.String()), " ")
				return nil
			}
			return tokenizer.Err()

		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			switch string(name) {
			case "script":
				inScript = true
			case "style":
				inStyle = true
			case "title":
				inTitle = true
			}

		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			switch string(name) {
			case "script":
				inScript = false
			case "style":
				inStyle = false
			case "title":
				inTitle = false
			}

		case html.TextToken:
			text := strings.TrimSpace(string(tokenizer.Text()))
			if inTitle {
				result.Title = text
			}
			if !inScript && !inStyle && text != "" {
				textBuilder.WriteString(text)
				textBuilder.WriteByte(' ')
			}
		}
	}
}
