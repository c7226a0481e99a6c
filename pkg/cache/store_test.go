/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: store_test.go
Description: Tests for the on-disk pattern cache. Covers save/load round trips, key
derivation, listing, cleanup, merging, and structural validation of cache files.
*/

package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/akaylee-mangler/pkg/interfaces"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func samplePatterns(source string) interfaces.LearnedPatterns {
	return interfaces.LearnedPatterns{
		SourceFile: source,
		Appends:    map[string]int{"123": 40, "!": 12},
		Prepends:   map[string]int{"1": 3},
		Leet:       map[string]int{"a@": 5, "o0": 2},
	}
}

// TestSaveLoadRoundTrip verifies persistence and metadata fill-in
func TestSaveLoadRoundTrip(t *testing.T) {
	store := newStore(t)

	key, err := store.Save(samplePatterns("rockyou.txt"))
	require.NoError(t, err)
	assert.Equal(t, Key("rockyou.txt"), key)

	loaded, err := store.Load(key)
	require.NoError(t, err)
	assert.NotEmpty(t, loaded.ID)
	assert.WithinDuration(t, time.Now(), loaded.CachedAt, time.Minute)
	assert.Equal(t, "rockyou.txt", loaded.SourceFile)
	assert.Equal(t, map[string]int{"123": 40, "!": 12}, loaded.Appends)
	assert.Equal(t, map[string]int{"a@": 5, "o0": 2}, loaded.Leet)
}

// TestKey verifies key derivation is stable and source-dependent
func TestKey(t *testing.T) {
	assert.Equal(t, Key("rockyou.txt"), Key("rockyou.txt"))
	assert.NotEqual(t, Key("rockyou.txt"), Key("linkedin.txt"))
	assert.Len(t, Key("rockyou.txt"), 16)
}

// TestList verifies entry metadata for every stored set
func TestList(t *testing.T) {
	store := newStore(t)

	_, err := store.Save(samplePatterns("rockyou.txt"))
	require.NoError(t, err)
	_, err = store.Save(samplePatterns("linkedin.txt"))
	require.NoError(t, err)

	entries, err := store.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	sources := []string{entries[0].SourceFile, entries[1].SourceFile}
	assert.ElementsMatch(t, []string{"rockyou.txt", "linkedin.txt"}, sources)
	assert.Equal(t, 2, entries[0].Appends)
	assert.Equal(t, 2, entries[0].Leet)
}

// TestCleanup verifies age filtering and the remove-all path
func TestCleanup(t *testing.T) {
	store := newStore(t)
	_, err := store.Save(samplePatterns("rockyou.txt"))
	require.NoError(t, err)
	_, err = store.Save(samplePatterns("linkedin.txt"))
	require.NoError(t, err)

	// Fresh files survive an age-based cleanup.
	removed, err := store.Cleanup(time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 0, removed)

	removed, err = store.Cleanup(0)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	entries, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// TestMerge verifies per-pattern count summation
func TestMerge(t *testing.T) {
	a := samplePatterns("rockyou.txt")
	b := interfaces.LearnedPatterns{
		SourceFile: "linkedin.txt",
		Appends:    map[string]int{"123": 10, "2024": 7},
		Leet:       map[string]int{"a@": 1},
	}

	merged := Merge([]interfaces.LearnedPatterns{a, b})
	assert.NotEmpty(t, merged.ID)
	assert.Equal(t, "merged", merged.SourceFile)
	assert.Equal(t, 50, merged.Appends["123"])
	assert.Equal(t, 7, merged.Appends["2024"])
	assert.Equal(t, 6, merged.Leet["a@"])
	assert.Equal(t, 3, merged.Prepends["1"])
}

// TestValidateFile verifies structural checks on good and broken caches
func TestValidateFile(t *testing.T) {
	store := newStore(t)
	key, err := store.Save(samplePatterns("rockyou.txt"))
	require.NoError(t, err)

	report := store.Validate(key)
	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors)
	assert.Equal(t, 5, report.Patterns)

	dir := t.TempDir()

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte("not json"), 0o644))
	report = ValidateFile(broken)
	assert.False(t, report.Valid)
	assert.NotEmpty(t, report.Errors)

	partial := filepath.Join(dir, "partial.json")
	require.NoError(t, os.WriteFile(partial, []byte(`{"appends":{"123":4}}`), 0o644))
	report = ValidateFile(partial)
	assert.False(t, report.Valid)
	assert.Len(t, report.Errors, 2)
	assert.Contains(t, report.Warnings, `missing "source_file" metadata`)
}
