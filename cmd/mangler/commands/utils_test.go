/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils_test.go
Description: Tests for the command helpers: line reading, corpus parsing, and rule
weighting.
*/

package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestReadLines verifies comment and blank line skipping
func TestReadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("# header\npassword\n\n  admin  \n"), 0644))

	lines, err := readLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"password", "admin"}, lines)
}

// TestReadLinesMissingFile verifies the error path
func TestReadLinesMissingFile(t *testing.T) {
	_, err := readLines(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

// TestParseObservations verifies tab-separated corpus parsing
func TestParseObservations(t *testing.T) {
	obs, err := parseObservations([]string{"admin\tAdmin2024!", "password\tp@ssw0rd"})
	require.NoError(t, err)
	require.Len(t, obs, 2)
	assert.Equal(t, "admin", obs[0].Base)
	assert.Equal(t, "Admin2024!", obs[0].Password)
	assert.Equal(t, 1, obs[0].Frequency)

	_, err = parseObservations([]string{"no separator here"})
	assert.Error(t, err)
}

// TestWeightedByCount verifies frequency ordering and normalization
func TestWeightedByCount(t *testing.T) {
	weighted := weightedByCount(map[string]int{"c$1": 3, "$1": 6, "u": 1}, 10)
	require.Len(t, weighted, 3)

	assert.Equal(t, "$1", weighted[0].Text)
	assert.InDelta(t, 0.6, weighted[0].Frequency, 1e-9)
	assert.Equal(t, "c$1", weighted[1].Text)
	assert.Equal(t, "u", weighted[2].Text)

	assert.Nil(t, weightedByCount(nil, 0))
}
