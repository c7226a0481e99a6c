/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: wordlist.go
Description: Word source implementations for dictionaries and corpora. Sources
deduplicate their output and filter out empty and oversized entries so downstream
synthesis and generation see clean vocabulary regardless of origin.
*/

package wordlist

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
)

// maxWordLen drops corpus noise: nothing longer ever survives mangling
// budgets anyway.
const maxWordLen = 40

// FileSource reads words from a local file in txt, csv, or json format.
type FileSource struct {
	name   string
	desc   string
	path   string
	format string

	mu    sync.Mutex
	dedup map[string]struct{}
}

// NewFileSource creates a source for a local wordlist file. Format is one of
// "txt" (one word per line), "csv" (every field is a word), or "json" (array
// of strings).
func NewFileSource(name, desc, path, format string) *FileSource {
	return &FileSource{
		name:   name,
		desc:   desc,
		path:   path,
		format: format,
		dedup:  make(map[string]struct{}),
	}
}

func (fs *FileSource) Name() string        { return fs.name }
func (fs *FileSource) Description() string { return fs.desc }

// FetchWords reads and parses the file, returning unique words.
func (fs *FileSource) FetchWords(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(fs.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read wordlist file: %w", err)
	}

	words, err := parseWords(data, fs.format)
	if err != nil {
		return nil, err
	}
	return fs.filter(words), nil
}

func (fs *FileSource) filter(words []string) []string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return dedupWords(words, fs.dedup)
}

// parseWords turns raw content into a word list according to format.
func parseWords(data []byte, format string) ([]string, error) {
	switch format {
	case "txt":
		var words []string
		for _, line := range strings.Split(string(data), "\n") {
			words = append(words, strings.TrimSpace(line))
		}
		return words, nil
	case "csv":
		records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		var words []string
		for _, rec := range records {
			for _, field := range rec {
				words = append(words, strings.TrimSpace(field))
			}
		}
		return words, nil
	case "json":
		var words []string
		if err := json.Unmarshal(data, &words); err != nil {
			return nil, fmt.Errorf("failed to parse JSON wordlist: %w", err)
		}
		return words, nil
	default:
		return nil, fmt.Errorf("unsupported wordlist format: %s", format)
	}
}

// dedupWords filters out empty, oversized, and already-seen words. The seen
// set persists across calls so repeated fetches never re-emit a word.
func dedupWords(words []string, seen map[string]struct{}) []string {
	out := make([]string, 0, len(words))
	for _, word := range words {
		if word == "" || len([]rune(word)) > maxWordLen {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		out = append(out, word)
	}
	return out
}
