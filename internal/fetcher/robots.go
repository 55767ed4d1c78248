package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"
	"github.com/temoto/robotstxt"
)

// RobotsChecker fetches robots.txt once per host and answers allow/deny
// questions for the configured user agent. Not safe for concurrent use.
type RobotsChecker struct {
	client    *http.Client
	userAgent string
	logger    *logrus.Entry
	cache     map[string]*robotstxt.RobotsData
}

func NewRobotsChecker(client *http.Client, userAgent string, logger *logrus.Entry) *RobotsChecker {
	return &RobotsChecker{
		client:    client,
		userAgent: userAgent,
		logger:    logger,
		cache:     make(map[string]*robotstxt.RobotsData),
	}
}

// Allowed reports whether rawURL may be fetched. Hosts whose robots.txt
// cannot be retrieved are treated as allowing everything.
func (rc *RobotsChecker) Allowed(ctx context.Context, rawURL string) (bool, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false, fmt.Errorf("invalid URL: %w", err)
	}

	origin := u.Scheme + "://" + u.Host
	data, ok := rc.cache[origin]
	if !ok {
		data, err = rc.fetch(ctx, origin)
		if err != nil {
			rc.logger.WithError(err).WithField("host", u.Host).Warn("Failed to get robots.txt, allowing request")
			data = nil
		}
		// cache misses too, so a broken host is only tried once per run
		rc.cache[origin] = data
	}

	if data == nil {
		return true, nil
	}
	return data.TestAgent(u.RequestURI(), rc.userAgent), nil
}

func (rc *RobotsChecker) fetch(ctx context.Context, origin string) (*robotstxt.RobotsData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, origin+"/robots.txt", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create robots.txt request: %w", err)
	}
	req.Header.Set("User-Agent", rc.userAgent)

	resp, err := rc.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch robots.txt: %w", err)
	}
	defer resp.Body.Close()

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to parse robots.txt: %w", err)
	}
	return data, nil
}
