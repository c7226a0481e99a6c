/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: wordlist_test.go
Description: Tests for word sources. Covers file parsing per format, deduplication,
HTTP fetching, and HTML scraping against local test servers.
*/

package wordlist

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestFileSourceTxt verifies line parsing, trimming, and dedup
func TestFileSourceTxt(t *testing.T) {
	path := writeFile(t, "words.txt", "password\nadmin\n\n  admin  \nsecret\n")
	src := NewFileSource("dict", "test dictionary", path, "txt")

	assert.Equal(t, "dict", src.Name())

	words, err := src.FetchWords(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"password", "admin", "secret"}, words)

	// A second fetch yields nothing new.
	words, err = src.FetchWords(context.Background())
	require.NoError(t, err)
	assert.Empty(t, words)
}

// TestFileSourceCSV verifies that every field becomes a word
func TestFileSourceCSV(t *testing.T) {
	path := writeFile(t, "words.csv", "admin,password\nguest,demo\n")
	src := NewFileSource("csv", "", path, "csv")

	words, err := src.FetchWords(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"admin", "password", "guest", "demo"}, words)
}

// TestFileSourceJSON verifies array-of-strings parsing
func TestFileSourceJSON(t *testing.T) {
	path := writeFile(t, "words.json", `["admin","password","admin"]`)
	src := NewFileSource("json", "", path, "json")

	words, err := src.FetchWords(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"admin", "password"}, words)
}

// TestFileSourceErrors verifies unsupported formats and missing files
func TestFileSourceErrors(t *testing.T) {
	src := NewFileSource("bad", "", writeFile(t, "w.txt", "a\n"), "xml")
	_, err := src.FetchWords(context.Background())
	assert.Error(t, err)

	missing := NewFileSource("missing", "", filepath.Join(t.TempDir(), "nope.txt"), "txt")
	_, err = missing.FetchWords(context.Background())
	assert.Error(t, err)
}

// TestFileSourceLengthFilter verifies that oversized entries are dropped
func TestFileSourceLengthFilter(t *testing.T) {
	long := strings.Repeat("x", 50)
	path := writeFile(t, "words.txt", "ok\n"+long+"\n")
	src := NewFileSource("dict", "", path, "txt")

	words, err := src.FetchWords(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ok"}, words)
}

// TestHTTPSource verifies downloading and parsing a remote list
func TestHTTPSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("password\nadmin\npassword\n"))
	}))
	defer server.Close()

	src := NewHTTPSource("remote", "leak corpus", server.URL, "txt", 5*time.Second)
	words, err := src.FetchWords(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"password", "admin"}, words)
}

// TestHTTPSourceStatusError verifies non-2xx handling
func TestHTTPSourceStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	src := NewHTTPSource("remote", "", server.URL, "txt", 5*time.Second)
	_, err := src.FetchWords(context.Background())
	assert.Error(t, err)
}

// TestHTMLSource verifies scraping words from a page section
func TestHTMLSource(t *testing.T) {
	page := `<html><body>
		<nav>Home About</nav>
		<div class="content">Acme Widgets builds industrial widgets in Portland.</div>
	</body></html>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer server.Close()

	src := NewHTMLSource("site", "target site", server.URL, ".content", 5*time.Second)
	words, err := src.FetchWords(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"acme", "widgets", "builds", "industrial", "portland"}, words)
}

// TestHTMLSourceWholeBody verifies the default selector
func TestHTMLSourceWholeBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>alpha beta</p></body></html>`))
	}))
	defer server.Close()

	src := NewHTMLSource("site", "", server.URL, "", 5*time.Second)
	words, err := src.FetchWords(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, words)
}
