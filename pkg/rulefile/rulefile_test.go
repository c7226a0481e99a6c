/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: rulefile_test.go
Description: Tests for rule file reading and writing, including comment handling,
malformed-line skipping, and header round trips.
*/

package rulefile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/akaylee-mangler/pkg/interfaces"
	"github.com/kleascm/akaylee-mangler/pkg/optimizer"
	"github.com/kleascm/akaylee-mangler/pkg/rules"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.rule")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestRead verifies that blank lines and comments are skipped
func TestRead(t *testing.T) {
	path := writeFile(t, "# header\n\n:\nc$1\n  u  \n# trailing comment\n")

	texts, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, []string{":", "c$1", "u"}, texts)
}

// TestReadPrograms verifies that malformed lines are collected, not fatal
func TestReadPrograms(t *testing.T) {
	path := writeFile(t, ":\nqqq\nc$1\ns4\n")

	programs, skipped, err := ReadPrograms(path)
	require.NoError(t, err)

	require.Len(t, programs, 2)
	assert.Equal(t, ":", programs[0].String())
	assert.Equal(t, "c$1", programs[1].String())

	require.Len(t, skipped, 2)
	assert.Equal(t, 2, skipped[0].Line)
	assert.Equal(t, "qqq", skipped[0].Text)
	assert.Error(t, skipped[0].Err)
	assert.Equal(t, 4, skipped[1].Line)
	assert.Equal(t, "s4", skipped[1].Text)
}

// TestWriteRoundTrip verifies the optimized-set header and rule lines
func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.rule")
	programs := []*rules.Program{rules.MustParse(":"), rules.MustParse("c$1")}
	stats := optimizer.Stats{
		OriginalCount:    4,
		OptimizedCount:   2,
		RemovedCount:     2,
		ReductionPercent: 50.0,
	}

	require.NoError(t, Write(path, programs, stats))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# Optimized mangling rules")
	assert.Contains(t, string(content), "# Removed: 2 redundant rules (50.0% reduction)")

	texts, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, []string{":", "c$1"}, texts)
}

// TestWriteWeighted verifies the generated-set writer keeps order
func TestWriteWeighted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gen.rule")
	weighted := []interfaces.WeightedRule{
		{Text: ":", Frequency: 1.0},
		{Text: "c$1$2$3", Frequency: 0.4},
		{Text: "sa@", Frequency: 0.2},
	}

	require.NoError(t, WriteWeighted(path, weighted))

	texts, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, []string{":", "c$1$2$3", "sa@"}, texts)
}

// TestReadMissingFile verifies the error path
func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.rule"))
	assert.Error(t, err)
}
