/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: html_source.go
Description: Word source that scrapes vocabulary from web pages. Fetches a page,
extracts text from a CSS selector, and splits it into candidate base words. Useful
for building target-specific dictionaries from a company's public site.
*/

package wordlist

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

// minScrapedLen drops the short function words that dominate page text.
const minScrapedLen = 3

// HTMLSource extracts words from a web page.
type HTMLSource struct {
	name     string
	desc     string
	url      string
	selector string
	timeout  time.Duration

	mu    sync.Mutex
	dedup map[string]struct{}
}

// NewHTMLSource creates a source that scrapes the text under a CSS selector.
// An empty selector scrapes the whole body.
func NewHTMLSource(name, desc, url, selector string, timeout time.Duration) *HTMLSource {
	return &HTMLSource{
		name:     name,
		desc:     desc,
		url:      url,
		selector: selector,
		timeout:  timeout,
		dedup:    make(map[string]struct{}),
	}
}

func (hs *HTMLSource) Name() string        { return hs.name }
func (hs *HTMLSource) Description() string { return hs.desc }

// FetchWords downloads the page and returns the unique words found under the
// selector, lowercased.
func (hs *HTMLSource) FetchWords(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, hs.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	client := &http.Client{Timeout: hs.timeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	selector := hs.selector
	if selector == "" {
		selector = "body"
	}

	var words []string
	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		words = append(words, splitText(sel.Text())...)
	})

	hs.mu.Lock()
	defer hs.mu.Unlock()
	return dedupWords(words, hs.dedup), nil
}

// splitText breaks page text into lowercase word candidates on any
// non-alphanumeric boundary.
func splitText(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	out := make([]string, 0, len(fields))
	for _, field := range fields {
		if len([]rune(field)) < minScrapedLen {
			continue
		}
		out = append(out, strings.ToLower(field))
	}
	return out
}
