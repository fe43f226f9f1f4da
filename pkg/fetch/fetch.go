// Package fetch provides a small HTTP client for polite crawling: browser-like
// headers, randomized inter-request delays, and a bounded retry loop.
package fetch

import (
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"
)

// Client wraps the standard http.Client with retry and pacing behaviour.
type Client struct {
	httpClient *http.Client
	retries    int
	minDelay   time.Duration
	maxDelay   time.Duration
}

// NewClient creates a Client. retries is the number of attempts per URL;
// minDelay/maxDelay bound the random sleep inserted before every request.
func NewClient(retries int, minDelay, maxDelay time.Duration) *Client {
	if retries < 1 {
		retries = 1
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		retries:    retries,
		minDelay:   minDelay,
		maxDelay:   maxDelay,
	}
}

// Get fetches a URL and returns the response body. Failed attempts are
// retried with a longer randomized pause, mirroring how a human-paced
// crawler behaves; the last error is returned once attempts are exhausted.
func (c *Client) Get(url string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt < c.retries; attempt++ {
		// Small random delay to avoid overwhelming the server.
		sleepBetween(c.minDelay, c.maxDelay)

		body, err := c.get(url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if attempt < c.retries-1 {
			// Longer delay between retries.
			sleepBetween(5*time.Second, 10*time.Second)
		}
	}

	return nil, fmt.Errorf("failed to fetch %s after %d attempts: %w", url, c.retries, lastErr)
}

func (c *Client) get(url string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	// Mimic a regular browser; some sites reject default Go user agents.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	return io.ReadAll(resp.Body)
}

func sleepBetween(min, max time.Duration) {
	if max <= min {
		if min > 0 {
			time.Sleep(min)
		}
		return
	}
	time.Sleep(min + time.Duration(rand.Int63n(int64(max-min))))
}
