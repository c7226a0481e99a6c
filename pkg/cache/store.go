/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: store.go
Description: On-disk pattern cache. Learned pattern sets are stored as JSON files
keyed by a hash of their source corpus, under the user cache directory by default.
Supports save, load, list, age-based cleanup, and merging of multiple pattern sets.
*/

package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kleascm/akaylee-mangler/pkg/interfaces"
)

const (
	filePrefix = "patterns_"
	fileSuffix = ".json"
)

// Store manages cached pattern files in a single directory.
type Store struct {
	dir string
}

// NewStore opens a pattern store rooted at dir, creating it if needed. An
// empty dir selects <user cache dir>/akaylee-mangler.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("resolve user cache dir: %w", err)
		}
		dir = filepath.Join(base, "akaylee-mangler")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the store's directory.
func (s *Store) Dir() string {
	return s.dir
}

// Key derives the cache key for a source corpus path.
func Key(sourceFile string) string {
	sum := sha256.Sum256([]byte(sourceFile))
	return hex.EncodeToString(sum[:])[:16]
}

// Save stores a pattern set under the key of its source file and returns the
// key. A missing ID or timestamp is filled in before writing.
func (s *Store) Save(patterns interfaces.LearnedPatterns) (string, error) {
	if patterns.ID == "" {
		patterns.ID = uuid.New().String()
	}
	if patterns.CachedAt.IsZero() {
		patterns.CachedAt = time.Now().UTC()
	}

	data, err := json.MarshalIndent(patterns, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode patterns: %w", err)
	}

	key := Key(patterns.SourceFile)
	if err := os.WriteFile(s.path(key), data, 0o644); err != nil {
		return "", fmt.Errorf("write cache file: %w", err)
	}
	return key, nil
}

// Load reads the pattern set stored under key.
func (s *Store) Load(key string) (interfaces.LearnedPatterns, error) {
	return LoadFile(s.path(key))
}

// LoadFile reads a pattern set from an explicit path.
func LoadFile(path string) (interfaces.LearnedPatterns, error) {
	var patterns interfaces.LearnedPatterns

	data, err := os.ReadFile(path)
	if err != nil {
		return patterns, fmt.Errorf("read cache file: %w", err)
	}
	if err := json.Unmarshal(data, &patterns); err != nil {
		return patterns, fmt.Errorf("decode cache file %s: %w", path, err)
	}
	return patterns, nil
}

// Entry summarizes one cached pattern file.
type Entry struct {
	Key        string
	Path       string
	SourceFile string
	CachedAt   time.Time
	Appends    int
	Prepends   int
	Leet       int
}

// List returns metadata for every readable cache file in the store,
// unreadable files are skipped.
func (s *Store) List() ([]Entry, error) {
	names, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read cache dir: %w", err)
	}

	var entries []Entry
	for _, name := range names {
		key, ok := keyOf(name.Name())
		if !ok {
			continue
		}

		path := filepath.Join(s.dir, name.Name())
		patterns, err := LoadFile(path)
		if err != nil {
			continue
		}

		entries = append(entries, Entry{
			Key:        key,
			Path:       path,
			SourceFile: patterns.SourceFile,
			CachedAt:   patterns.CachedAt,
			Appends:    len(patterns.Appends),
			Prepends:   len(patterns.Prepends),
			Leet:       len(patterns.Leet),
		})
	}
	return entries, nil
}

// Cleanup removes cache files older than the given age by modification time.
// A zero age removes everything. Returns the number of files removed.
func (s *Store) Cleanup(olderThan time.Duration) (int, error) {
	names, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("read cache dir: %w", err)
	}

	removed := 0
	cutoff := time.Now().Add(-olderThan)
	for _, name := range names {
		if _, ok := keyOf(name.Name()); !ok {
			continue
		}

		path := filepath.Join(s.dir, name.Name())
		if olderThan > 0 {
			info, err := name.Info()
			if err != nil || info.ModTime().After(cutoff) {
				continue
			}
		}

		if err := os.Remove(path); err != nil {
			continue
		}
		removed++
	}
	return removed, nil
}

// Merge combines multiple pattern sets by summing counts per pattern. The
// result carries a fresh ID and a synthetic source name.
func Merge(sets []interfaces.LearnedPatterns) interfaces.LearnedPatterns {
	merged := interfaces.LearnedPatterns{
		ID:         uuid.New().String(),
		SourceFile: "merged",
		CachedAt:   time.Now().UTC(),
		Appends:    make(map[string]int),
		Prepends:   make(map[string]int),
		Leet:       make(map[string]int),
	}

	for _, set := range sets {
		for k, v := range set.Appends {
			merged.Appends[k] += v
		}
		for k, v := range set.Prepends {
			merged.Prepends[k] += v
		}
		for k, v := range set.Leet {
			merged.Leet[k] += v
		}
	}
	return merged
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, filePrefix+key+fileSuffix)
}

func keyOf(filename string) (string, bool) {
	if !strings.HasPrefix(filename, filePrefix) || !strings.HasSuffix(filename, fileSuffix) {
		return "", false
	}
	return strings.TrimSuffix(strings.TrimPrefix(filename, filePrefix), fileSuffix), true
}
