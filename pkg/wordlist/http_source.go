/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: http_source.go
Description: Word source for wordlists hosted over HTTP/HTTPS. Downloads the corpus,
parses it by format, and deduplicates the result. Requests carry the caller's
context and a configurable timeout.
*/

package wordlist

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// HTTPSource downloads words from an HTTP or HTTPS URL.
type HTTPSource struct {
	name    string
	desc    string
	url     string
	format  string
	timeout time.Duration

	mu    sync.Mutex
	dedup map[string]struct{}
}

// NewHTTPSource creates a source for a remote wordlist. Format follows the
// same values as NewFileSource.
func NewHTTPSource(name, desc, url, format string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		name:    name,
		desc:    desc,
		url:     url,
		format:  format,
		timeout: timeout,
		dedup:   make(map[string]struct{}),
	}
}

func (hs *HTTPSource) Name() string        { return hs.name }
func (hs *HTTPSource) Description() string { return hs.desc }

// FetchWords downloads and parses the wordlist, returning unique words.
func (hs *HTTPSource) FetchWords(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, hs.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	client := &http.Client{Timeout: hs.timeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch wordlist: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("wordlist server returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read wordlist body: %w", err)
	}

	words, err := parseWords(data, hs.format)
	if err != nil {
		return nil, err
	}

	hs.mu.Lock()
	defer hs.mu.Unlock()
	return dedupWords(words, hs.dedup), nil
}
