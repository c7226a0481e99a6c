/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: optimizer_test.go
Description: Tests for rule set minimization. Covers redundancy detection over a
sample vocabulary, representative selection, coverage preservation, isolation of
failing rules, determinism, and cancellation.
*/

package optimizer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/akaylee-mangler/pkg/rules"
)

func parseAll(t *testing.T, texts []string) []*rules.Program {
	t.Helper()
	programs := make([]*rules.Program, len(texts))
	for i, text := range texts {
		prog, err := rules.Parse(text)
		require.NoError(t, err, "parse %q", text)
		programs[i] = prog
	}
	return programs
}

func textsOf(programs []*rules.Program) []string {
	texts := make([]string, len(programs))
	for i, p := range programs {
		texts[i] = p.String()
	}
	return texts
}

// TestOptimizeRemovesRedundantRules verifies that rules indistinguishable over
// the sample collapse to the representative with the fewest ops
func TestOptimizeRemovesRedundantRules(t *testing.T) {
	programs := parseAll(t, []string{":", "c", "l", "u", "$1$2$3", ":$1$2$3", "c$1$2$3"})
	sample := []string{"test", "abc"}

	kept, stats, err := Optimize(context.Background(), programs, sample, 4)
	require.NoError(t, err)

	// "l" is identity on an already-lowercase sample, ":$1$2$3" repeats
	// "$1$2$3" with an extra op.
	assert.Equal(t, []string{":", "c", "u", "$1$2$3", "c$1$2$3"}, textsOf(kept))

	assert.Equal(t, 7, stats.OriginalCount)
	assert.Equal(t, 5, stats.OptimizedCount)
	assert.Equal(t, 2, stats.RemovedCount)
	assert.Equal(t, 2, stats.RedundantGroups)
	assert.InDelta(t, 28.6, stats.ReductionPercent, 0.001)
}

// TestOptimizePreservesCoverage verifies that the kept set produces exactly the
// output set of the original over the sample
func TestOptimizePreservesCoverage(t *testing.T) {
	programs := parseAll(t, []string{":", "l", "u", "c", "C", "$1", ":$1", "r", "d"})
	sample := DefaultSample()

	kept, _, err := Optimize(context.Background(), programs, sample, 0)
	require.NoError(t, err)

	outputs := func(set []*rules.Program) map[string]struct{} {
		seen := make(map[string]struct{})
		for _, prog := range set {
			for _, word := range sample {
				out, err := prog.Apply(word)
				require.NoError(t, err)
				seen[out] = struct{}{}
			}
		}
		return seen
	}

	assert.Equal(t, outputs(programs), outputs(kept))
}

// TestOptimizeKeepsFailingRules verifies that rules failing on the sample are
// isolated rather than grouped with working rules or each other
func TestOptimizeKeepsFailingRules(t *testing.T) {
	programs := parseAll(t, []string{":", "dddddddddd", "ddddddddddd"})
	sample := []string{"administrator"}

	kept, stats, err := Optimize(context.Background(), programs, sample, 2)
	require.NoError(t, err)

	assert.Equal(t, []string{":", "dddddddddd", "ddddddddddd"}, textsOf(kept))
	assert.Equal(t, 0, stats.RemovedCount)
}

// TestOptimizeDeterministic verifies identical results across repeated runs
func TestOptimizeDeterministic(t *testing.T) {
	programs := parseAll(t, []string{"c", "u", ":", "l", "$1", ":$1", "sa@", "csa@", "r", "d"})
	sample := DefaultSample()

	first, firstStats, err := Optimize(context.Background(), programs, sample, 8)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		again, againStats, err := Optimize(context.Background(), programs, sample, 8)
		require.NoError(t, err)
		assert.Equal(t, textsOf(first), textsOf(again))
		assert.Equal(t, firstStats, againStats)
	}
}

// TestOptimizeEmpty verifies the trivial input
func TestOptimizeEmpty(t *testing.T) {
	kept, stats, err := Optimize(context.Background(), nil, DefaultSample(), 4)
	require.NoError(t, err)
	assert.Empty(t, kept)
	assert.Equal(t, Stats{}, stats)
}

// TestOptimizeCancelled verifies that a cancelled context aborts the run
func TestOptimizeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	programs := parseAll(t, []string{":", "c", "u"})
	_, _, err := Optimize(ctx, programs, DefaultSample(), 2)
	assert.ErrorIs(t, err, context.Canceled)
}
