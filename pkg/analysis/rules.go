/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: rules.go
Description: Frequency-weighted rule generation from corpus analysis results. Turns
case, affix, and leet statistics into candidate mangling rules, combines the highest
value patterns, folds in rules learned by backward synthesis, and returns the top
candidates sorted by estimated frequency.
*/

package analysis

import (
	"sort"
	"strings"

	"github.com/kleascm/akaylee-mangler/pkg/interfaces"
)

// combinedLeet lists the substitutions worth pairing with common suffixes.
var combinedLeet = []struct{ base, sub string }{
	{"a", "@"},
	{"e", "3"},
	{"o", "0"},
	{"s", "$"},
}

// GenerateRules turns analysis results into a weighted candidate rule set.
// The identity rule is always present; case rules, affix rules, leet rules,
// and capitalize/leet + append combinations follow, plus the rules learned by
// backward synthesis. One entry per canonical rule text, keeping the highest
// weight; the result is sorted by weight descending (ties by text) and capped
// at maxRules.
func GenerateRules(res Results, maxRules int) []interfaces.WeightedRule {
	if res.TotalPasswords == 0 {
		return []interfaces.WeightedRule{{Text: ":", Frequency: 1.0}}
	}
	total := float64(res.TotalPasswords)

	type candidate struct {
		text string
		freq float64
	}
	var candidates []candidate
	add := func(text string, freq float64) {
		candidates = append(candidates, candidate{text: text, freq: freq})
	}

	add(":", 1.0)

	if n := res.CasePatterns["capitalize"]; n > 0 {
		add("c", float64(n)/total)
	}
	if n := res.CasePatterns["all_upper"]; n > 0 {
		add("u", float64(n)/total)
	}
	if n := res.CasePatterns["all_lower"]; n > 0 {
		add("l", float64(n)/total)
	}

	for _, suffix := range head(res.TopSuffixes, 30) {
		add(appendRule(suffix.Text), float64(suffix.Count)/total)
	}
	for _, prefix := range head(res.TopPrefixes, 15) {
		add(prependRule(prefix.Text), float64(prefix.Count)/total)
	}

	for base, subs := range res.LeetPatterns {
		for sub, count := range subs {
			add("s"+base+sub, float64(count)/total)
		}
	}

	// Capitalize + append is the single most productive human habit.
	for _, suffix := range head(res.TopSuffixes, 20) {
		add("c"+appendRule(suffix.Text), float64(suffix.Count)/total*0.7)
	}

	for _, leet := range combinedLeet {
		for _, suffix := range head(res.TopSuffixes, 10) {
			add("s"+leet.base+leet.sub+appendRule(suffix.Text), float64(suffix.Count)/total*0.5)
		}
	}

	if res.InferredTotal > 0 {
		for _, rule := range head(res.InferredRules, 100) {
			add(rule.Text, float64(rule.Count)/float64(res.InferredTotal))
		}
	}

	best := make(map[string]float64)
	for _, c := range candidates {
		if freq, ok := best[c.text]; !ok || c.freq > freq {
			best[c.text] = c.freq
		}
	}

	out := make([]interfaces.WeightedRule, 0, len(best))
	for text, freq := range best {
		out = append(out, interfaces.WeightedRule{Text: text, Frequency: freq})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Frequency != out[j].Frequency {
			return out[i].Frequency > out[j].Frequency
		}
		return out[i].Text < out[j].Text
	})

	if maxRules > 0 && len(out) > maxRules {
		out = out[:maxRules]
	}
	return out
}

// GenerateRulesFromPatterns turns a cached pattern set into a weighted rule
// set without re-analyzing the corpus. Pattern counts become weights relative
// to the largest count in their class.
func GenerateRulesFromPatterns(p interfaces.LearnedPatterns, maxRules int) []interfaces.WeightedRule {
	type candidate struct {
		text string
		freq float64
	}
	var candidates []candidate
	add := func(text string, freq float64) {
		candidates = append(candidates, candidate{text: text, freq: freq})
	}

	add(":", 1.0)
	add("c", 0.9)
	add("u", 0.8)
	add("l", 0.8)

	appends := topCounts(p.Appends, 50)
	appendMax := maxCount(appends)
	for _, suffix := range appends {
		freq := float64(suffix.Count) / appendMax
		add(appendRule(suffix.Text), freq)
		add("c"+appendRule(suffix.Text), freq*0.7)
	}

	prepends := topCounts(p.Prepends, 20)
	prependMax := maxCount(prepends)
	for _, prefix := range prepends {
		add(prependRule(prefix.Text), float64(prefix.Count)/prependMax)
	}

	leet := topCounts(p.Leet, 50)
	leetMax := maxCount(leet)
	for _, pair := range leet {
		if len([]rune(pair.Text)) != 2 {
			continue
		}
		freq := float64(pair.Count) / leetMax
		add("s"+pair.Text, freq)
		for _, suffix := range head(appends, 10) {
			add("s"+pair.Text+appendRule(suffix.Text), freq*0.5)
		}
	}

	best := make(map[string]float64)
	for _, c := range candidates {
		if freq, ok := best[c.text]; !ok || c.freq > freq {
			best[c.text] = c.freq
		}
	}

	out := make([]interfaces.WeightedRule, 0, len(best))
	for text, freq := range best {
		out = append(out, interfaces.WeightedRule{Text: text, Frequency: freq})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Frequency != out[j].Frequency {
			return out[i].Frequency > out[j].Frequency
		}
		return out[i].Text < out[j].Text
	})

	if maxRules > 0 && len(out) > maxRules {
		out = out[:maxRules]
	}
	return out
}

func maxCount(counts []PatternCount) float64 {
	max := 1
	for _, c := range counts {
		if c.Count > max {
			max = c.Count
		}
	}
	return float64(max)
}

// appendRule renders a suffix as a chain of append ops.
func appendRule(suffix string) string {
	var b strings.Builder
	for _, r := range suffix {
		b.WriteByte('$')
		b.WriteRune(r)
	}
	return b.String()
}

// prependRule renders a prefix as a chain of prepend ops, reversed so the
// program rebuilds it left to right.
func prependRule(prefix string) string {
	runes := []rune(prefix)
	var b strings.Builder
	for i := len(runes) - 1; i >= 0; i-- {
		b.WriteByte('^')
		b.WriteRune(runes[i])
	}
	return b.String()
}

func head(counts []PatternCount, n int) []PatternCount {
	if len(counts) > n {
		return counts[:n]
	}
	return counts
}
