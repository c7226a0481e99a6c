/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: report.go
Description: Human-readable analysis report writer. Renders the corpus statistics
and the top generated rules as a plain-text summary for operators.
*/

package analysis

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/kleascm/akaylee-mangler/pkg/interfaces"
)

const reportWidth = 70

// WriteReport renders a plain-text summary of the analysis and the generated
// rule set.
func WriteReport(w io.Writer, res Results, rules []interfaces.WeightedRule) error {
	total := res.TotalPasswords
	pct := func(count int) float64 {
		if total == 0 {
			return 0
		}
		return float64(count) / float64(total) * 100
	}

	var b strings.Builder
	rule := strings.Repeat("=", reportWidth)
	sep := strings.Repeat("-", reportWidth)

	fmt.Fprintf(&b, "%s\nWORDLIST ANALYSIS REPORT\n%s\n\n", rule, rule)
	fmt.Fprintf(&b, "Total passwords analyzed: %d\n\n", total)

	fmt.Fprintf(&b, "LENGTH DISTRIBUTION\n%s\n", sep)
	lengths := make([]int, 0, len(res.LengthDistribution))
	for length := range res.LengthDistribution {
		lengths = append(lengths, length)
	}
	sort.Ints(lengths)
	if len(lengths) > 15 {
		lengths = lengths[:15]
	}
	for _, length := range lengths {
		count := res.LengthDistribution[length]
		fmt.Fprintf(&b, "  %2d characters: %6d (%5.2f%%)\n", length, count, pct(count))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "CHARSET USAGE\n%s\n", sep)
	for _, charset := range []string{"lowercase", "uppercase", "digits", "special"} {
		if count, ok := res.CharsetUsage[charset]; ok {
			fmt.Fprintf(&b, "  %-12s: %6d (%5.2f%%)\n", charset, count, pct(count))
		}
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "TOP 20 SUFFIXES\n%s\n", sep)
	for _, suffix := range head(res.TopSuffixes, 20) {
		fmt.Fprintf(&b, "  %-12q: %6d (%5.2f%%)\n", suffix.Text, suffix.Count, pct(suffix.Count))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "CASE PATTERNS\n%s\n", sep)
	for _, pattern := range []string{"all_lower", "all_upper", "capitalize", "mixed", "has_upper"} {
		if count, ok := res.CasePatterns[pattern]; ok {
			fmt.Fprintf(&b, "  %-15s: %6d (%5.2f%%)\n", pattern, count, pct(count))
		}
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "TOP 20 GENERATED RULES (by frequency)\n%s\n", sep)
	top := rules
	if len(top) > 20 {
		top = top[:20]
	}
	for i, r := range top {
		fmt.Fprintf(&b, "  %2d. %-30s (frequency: %.4f)\n", i+1, r.Text, r.Frequency)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s\n", rule)

	_, err := io.WriteString(w, b.String())
	return err
}
