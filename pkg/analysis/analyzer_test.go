/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: analyzer_test.go
Description: Tests for corpus analysis, rule generation, pattern snapshots, and the
plain-text report writer.
*/

package analysis

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/akaylee-mangler/pkg/interfaces"
)

// TestAnalyzerCounters verifies the per-password statistics over a small corpus
func TestAnalyzerCounters(t *testing.T) {
	analyzer := NewAnalyzer()
	analyzer.Analyze([]string{"Password123", "admin!", "p@ss", "HELLO", "hello"}, nil)

	res := analyzer.Results()
	assert.Equal(t, 5, res.TotalPasswords)
	assert.Equal(t, 2, res.LengthDistribution[5])
	assert.Equal(t, 1, res.LengthDistribution[11])

	assert.Equal(t, 2, res.CharsetUsage["uppercase"])
	assert.Equal(t, 2, res.CharsetUsage["special"])

	assert.Equal(t, 1, res.CasePatterns["capitalize"])
	assert.Equal(t, 1, res.CasePatterns["all_upper"])
	assert.Equal(t, 3, res.CasePatterns["all_lower"])

	suffixes := countsByText(res.TopSuffixes)
	assert.Equal(t, 1, suffixes["123"])
	assert.Equal(t, 1, suffixes["!"])

	assert.Equal(t, 1, res.LeetPatterns["a"]["@"])
	assert.Equal(t, 1, res.LeetPatterns["i"]["1"])

	assert.Equal(t, 1, res.DigitPatterns["trailing_3"])
	assert.Equal(t, 1, res.DigitPatterns["value_123"])
	assert.Equal(t, 1, res.SpecialPatterns["trailing_!"])
}

// TestAnalyzerInference verifies rule learning against a base dictionary
func TestAnalyzerInference(t *testing.T) {
	analyzer := NewAnalyzer()
	analyzer.Analyze(
		[]string{"Admin2024!", "p@ssw0rd", "zzzqqqxxx"},
		[]string{"admin", "password"},
	)

	res := analyzer.Results()
	assert.Equal(t, 2, res.InferredTotal)

	inferred := countsByText(res.InferredRules)
	assert.Equal(t, 1, inferred["c$2$0$2$4$!"])
	assert.Equal(t, 1, inferred["sa@so0"])
}

// TestAnalyzerPatterns verifies the cacheable pattern snapshot
func TestAnalyzerPatterns(t *testing.T) {
	analyzer := NewAnalyzer()
	analyzer.Analyze([]string{"p@ss123", "admin123"}, nil)

	patterns := analyzer.Patterns("rockyou.txt")
	assert.NotEmpty(t, patterns.ID)
	assert.Equal(t, "rockyou.txt", patterns.SourceFile)
	assert.False(t, patterns.CachedAt.IsZero())

	assert.Equal(t, 2, patterns.Appends["123"])
	assert.Equal(t, 1, patterns.Leet["a@"])
	assert.Positive(t, patterns.TotalPatterns())
}

// TestGenerateRules verifies candidate weights and ordering
func TestGenerateRules(t *testing.T) {
	res := Results{
		TotalPasswords: 100,
		CasePatterns:   map[string]int{"capitalize": 30, "all_upper": 10},
		TopSuffixes:    []PatternCount{{Text: "123", Count: 40}, {Text: "!", Count: 20}},
		TopPrefixes:    []PatternCount{{Text: "123", Count: 5}},
		LeetPatterns:   map[string]map[string]int{"a": {"@": 25}},
	}

	rules := GenerateRules(res, 0)
	require.NotEmpty(t, rules)
	assert.Equal(t, ":", rules[0].Text)
	assert.Equal(t, 1.0, rules[0].Frequency)

	weights := make(map[string]float64, len(rules))
	for _, r := range rules {
		weights[r.Text] = r.Frequency
	}

	assert.InDelta(t, 0.40, weights["$1$2$3"], 1e-9)
	assert.InDelta(t, 0.30, weights["c"], 1e-9)
	assert.InDelta(t, 0.10, weights["u"], 1e-9)
	assert.InDelta(t, 0.25, weights["sa@"], 1e-9)
	assert.InDelta(t, 0.05, weights["^3^2^1"], 1e-9)
	assert.InDelta(t, 0.28, weights["c$1$2$3"], 1e-9)
	assert.InDelta(t, 0.20, weights["sa@$1$2$3"], 1e-9)

	// Weight descending throughout.
	for i := 1; i < len(rules); i++ {
		assert.GreaterOrEqual(t, rules[i-1].Frequency, rules[i].Frequency)
	}
}

// TestGenerateRulesCap verifies the maxRules cutoff
func TestGenerateRulesCap(t *testing.T) {
	res := Results{
		TotalPasswords: 10,
		CasePatterns:   map[string]int{"capitalize": 5, "all_upper": 2, "all_lower": 3},
	}

	rules := GenerateRules(res, 3)
	assert.Len(t, rules, 3)
	assert.Equal(t, ":", rules[0].Text)
}

// TestGenerateRulesFromPatterns verifies rule generation straight from a
// cached pattern set
func TestGenerateRulesFromPatterns(t *testing.T) {
	p := interfaces.LearnedPatterns{
		Appends:  map[string]int{"123": 40, "!": 10},
		Prepends: map[string]int{"1": 5},
		Leet:     map[string]int{"a@": 20},
	}

	rules := GenerateRulesFromPatterns(p, 0)
	require.NotEmpty(t, rules)

	weights := make(map[string]float64, len(rules))
	for _, r := range rules {
		weights[r.Text] = r.Frequency
	}

	assert.InDelta(t, 1.0, weights[":"], 1e-9)
	assert.InDelta(t, 1.0, weights["$1$2$3"], 1e-9)
	assert.InDelta(t, 0.25, weights["$!"], 1e-9)
	assert.InDelta(t, 0.7, weights["c$1$2$3"], 1e-9)
	assert.InDelta(t, 1.0, weights["^1"], 1e-9)
	assert.InDelta(t, 1.0, weights["sa@"], 1e-9)
	assert.InDelta(t, 0.5, weights["sa@$1$2$3"], 1e-9)
}

// TestGenerateRulesEmptyCorpus verifies that an empty analysis still yields
// the identity rule
func TestGenerateRulesEmptyCorpus(t *testing.T) {
	rules := GenerateRules(Results{}, 100)
	require.Len(t, rules, 1)
	assert.Equal(t, ":", rules[0].Text)
}

// TestWriteReport verifies the report contains the headline sections
func TestWriteReport(t *testing.T) {
	analyzer := NewAnalyzer()
	analyzer.Analyze([]string{"Password123", "admin!", "HELLO"}, nil)
	res := analyzer.Results()

	var buf bytes.Buffer
	err := WriteReport(&buf, res, []interfaces.WeightedRule{{Text: ":", Frequency: 1.0}})
	require.NoError(t, err)

	report := buf.String()
	assert.Contains(t, report, "WORDLIST ANALYSIS REPORT")
	assert.Contains(t, report, "Total passwords analyzed: 3")
	assert.Contains(t, report, "LENGTH DISTRIBUTION")
	assert.Contains(t, report, "CASE PATTERNS")
	assert.Contains(t, report, "frequency: 1.0000")
}

func countsByText(counts []PatternCount) map[string]int {
	out := make(map[string]int, len(counts))
	for _, c := range counts {
		out[c.Text] = c.Count
	}
	return out
}
