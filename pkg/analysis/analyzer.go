/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: analyzer.go
Description: Leak corpus analysis for the Akaylee Mangler. Accumulates length, charset,
position, affix, leet, case, digit, and special-character statistics over a password
corpus, and infers mangling rules against a base dictionary via backward synthesis.
The accumulated counters feed rule generation and pattern caching.
*/

package analysis

import (
	"sort"
	"strconv"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/kleascm/akaylee-mangler/pkg/interfaces"
	"github.com/kleascm/akaylee-mangler/pkg/synthesis"
)

// maxAffixLen bounds the prefix/suffix windows counted per password.
const maxAffixLen = 6

// PatternCount pairs a pattern string with its occurrence count.
type PatternCount struct {
	Text  string
	Count int
}

// Results is a compiled snapshot of the analyzer's counters.
type Results struct {
	TotalPasswords     int
	LengthDistribution map[int]int
	CharsetUsage       map[string]int
	TopSuffixes        []PatternCount
	TopPrefixes        []PatternCount
	LeetPatterns       map[string]map[string]int
	CasePatterns       map[string]int
	DigitPatterns      map[string]int
	SpecialPatterns    map[string]int
	PositionClasses    map[int]map[string]int
	InferredRules      []PatternCount
	InferredTotal      int
}

// Analyzer accumulates pattern statistics over one or more password batches.
// Not safe for concurrent use; feed it from a single goroutine.
type Analyzer struct {
	total           int
	lengthDist      map[int]int
	charsetUsage    map[string]int
	positionClasses map[int]map[string]int
	suffixCounts    map[string]int
	prefixCounts    map[string]int
	leetCounts      map[string]map[string]int
	casePatterns    map[string]int
	digitPatterns   map[string]int
	specialPatterns map[string]int
	ruleCounts      map[string]int
	inferredTotal   int
}

// NewAnalyzer creates an empty analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		lengthDist:      make(map[int]int),
		charsetUsage:    make(map[string]int),
		positionClasses: make(map[int]map[string]int),
		suffixCounts:    make(map[string]int),
		prefixCounts:    make(map[string]int),
		leetCounts:      make(map[string]map[string]int),
		casePatterns:    make(map[string]int),
		digitPatterns:   make(map[string]int),
		specialPatterns: make(map[string]int),
		ruleCounts:      make(map[string]int),
	}
}

// Analyze accumulates statistics for a batch of passwords. When a base
// dictionary is supplied, each password additionally goes through backward
// rule synthesis and the inferred rule texts are counted.
func (a *Analyzer) Analyze(passwords []string, dictionary []string) {
	for _, pwd := range passwords {
		a.analyzeSingle(pwd)

		if len(dictionary) > 0 {
			if _, prog, err := synthesis.InferFromDictionary(pwd, dictionary); err == nil {
				a.ruleCounts[prog.String()]++
				a.inferredTotal++
			}
		}
	}
}

// Results compiles the counters into an immutable snapshot. Affix and rule
// lists come back sorted by count descending, ties broken by text.
func (a *Analyzer) Results() Results {
	return Results{
		TotalPasswords:     a.total,
		LengthDistribution: cloneIntCounts(a.lengthDist),
		CharsetUsage:       cloneCounts(a.charsetUsage),
		TopSuffixes:        topCounts(a.suffixCounts, 50),
		TopPrefixes:        topCounts(a.prefixCounts, 50),
		LeetPatterns:       cloneNested(a.leetCounts),
		CasePatterns:       cloneCounts(a.casePatterns),
		DigitPatterns:      cloneCounts(a.digitPatterns),
		SpecialPatterns:    cloneCounts(a.specialPatterns),
		PositionClasses:    clonePositions(a.positionClasses),
		InferredRules:      topCounts(a.ruleCounts, 100),
		InferredTotal:      a.inferredTotal,
	}
}

// Patterns snapshots the affix and leet counters as a cacheable pattern set.
// Leet keys are two-character "base letter + substitute" pairs.
func (a *Analyzer) Patterns(sourceFile string) interfaces.LearnedPatterns {
	leet := make(map[string]int)
	for base, subs := range a.leetCounts {
		for sub, count := range subs {
			leet[base+sub] = count
		}
	}

	return interfaces.LearnedPatterns{
		ID:         uuid.New().String(),
		SourceFile: sourceFile,
		CachedAt:   time.Now().UTC(),
		Appends:    cloneCounts(a.suffixCounts),
		Prepends:   cloneCounts(a.prefixCounts),
		Leet:       leet,
	}
}

func (a *Analyzer) analyzeSingle(pwd string) {
	a.total++

	runes := []rune(pwd)
	a.lengthDist[len(runes)]++

	a.countCharsets(runes)
	a.countPositions(runes)
	a.countAffixes(runes)
	a.countLeet(runes)
	a.countCasePattern(runes)
	a.countDigitPattern(runes)
	a.countSpecialPattern(runes)
}

func (a *Analyzer) countCharsets(runes []rune) {
	var lower, upper, digit, special bool
	for _, r := range runes {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			if !unicode.IsLetter(r) {
				special = true
			}
		}
	}

	if lower {
		a.charsetUsage["lowercase"]++
	}
	if upper {
		a.charsetUsage["uppercase"]++
	}
	if digit {
		a.charsetUsage["digits"]++
	}
	if special {
		a.charsetUsage["special"]++
	}
}

// countPositions tracks the character class at each position, grouping
// positions beyond 10 together.
func (a *Analyzer) countPositions(runes []rune) {
	for i, r := range runes {
		pos := i
		if pos > 10 {
			pos = 10
		}
		if a.positionClasses[pos] == nil {
			a.positionClasses[pos] = make(map[string]int)
		}
		a.positionClasses[pos][classOf(r)]++
	}
}

// countAffixes counts numeric or special prefixes and suffixes of length 1
// through 6. Purely alphabetic affixes are word material, not mangling.
func (a *Analyzer) countAffixes(runes []rune) {
	limit := maxAffixLen
	if len(runes)-1 < limit {
		limit = len(runes) - 1
	}

	for n := 1; n <= limit; n++ {
		prefix := runes[:n]
		suffix := runes[len(runes)-n:]

		if isManglingAffix(suffix) {
			a.suffixCounts[string(suffix)]++
		}
		if isManglingAffix(prefix) {
			a.prefixCounts[string(prefix)]++
		}
	}
}

// countLeet records, per password, which leet characters appear alongside at
// least one letter.
func (a *Analyzer) countLeet(runes []rune) {
	hasAlpha := false
	for _, r := range runes {
		if unicode.IsLetter(r) {
			hasAlpha = true
			break
		}
	}
	if !hasAlpha {
		return
	}

	seen := make(map[rune]bool)
	for _, r := range runes {
		if seen[r] {
			continue
		}
		if base, ok := synthesis.LeetBase(r); ok {
			seen[r] = true
			if a.leetCounts[string(base)] == nil {
				a.leetCounts[string(base)] = make(map[string]int)
			}
			a.leetCounts[string(base)][string(r)]++
		}
	}
}

func (a *Analyzer) countCasePattern(runes []rune) {
	var letters, uppers, lowers, uppersAfterFirst int
	for i, r := range runes {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if unicode.IsUpper(r) {
			uppers++
			if i > 0 {
				uppersAfterFirst++
			}
		} else if unicode.IsLower(r) {
			lowers++
		}
	}
	if letters == 0 {
		return
	}

	switch {
	case uppers == letters:
		a.casePatterns["all_upper"]++
	case lowers == letters:
		a.casePatterns["all_lower"]++
	case unicode.IsUpper(runes[0]) && uppersAfterFirst == 0:
		a.casePatterns["capitalize"]++
	case unicode.IsLower(runes[0]) && uppersAfterFirst > 0:
		a.casePatterns["mixed"]++
	case uppers > 0:
		a.casePatterns["has_upper"]++
	}
}

func (a *Analyzer) countDigitPattern(runes []rune) {
	if trailing := trailingRun(runes, unicode.IsDigit); len(trailing) > 0 {
		a.digitPatterns[patternKey("trailing", len(trailing))]++
		a.digitPatterns["value_"+string(trailing)]++
	}
	if leading := leadingRun(runes, unicode.IsDigit); len(leading) > 0 {
		a.digitPatterns[patternKey("leading", len(leading))]++
	}
}

func (a *Analyzer) countSpecialPattern(runes []rune) {
	isSpecial := func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}

	if trailing := trailingRun(runes, isSpecial); len(trailing) > 0 {
		a.specialPatterns["trailing_"+string(trailing)]++
	}
	if leading := leadingRun(runes, isSpecial); len(leading) > 0 {
		a.specialPatterns["leading_"+string(leading)]++
	}
}

func classOf(r rune) string {
	switch {
	case unicode.IsLower(r):
		return "lower"
	case unicode.IsUpper(r):
		return "upper"
	case unicode.IsDigit(r):
		return "digit"
	default:
		return "special"
	}
}

// isManglingAffix reports whether the affix is all digits or contains at
// least one special character.
func isManglingAffix(affix []rune) bool {
	allDigits := true
	hasSpecial := false
	for _, r := range affix {
		if !unicode.IsDigit(r) {
			allDigits = false
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			hasSpecial = true
		}
	}
	return allDigits || hasSpecial
}

func trailingRun(runes []rune, match func(rune) bool) []rune {
	i := len(runes)
	for i > 0 && match(runes[i-1]) {
		i--
	}
	return runes[i:]
}

func leadingRun(runes []rune, match func(rune) bool) []rune {
	i := 0
	for i < len(runes) && match(runes[i]) {
		i++
	}
	return runes[:i]
}

func patternKey(kind string, n int) string {
	return kind + "_" + strconv.Itoa(n)
}

func topCounts(m map[string]int, limit int) []PatternCount {
	out := make([]PatternCount, 0, len(m))
	for text, count := range m {
		out = append(out, PatternCount{Text: text, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Text < out[j].Text
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func cloneCounts(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneIntCounts(m map[int]int) map[int]int {
	out := make(map[int]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneNested(m map[string]map[string]int) map[string]map[string]int {
	out := make(map[string]map[string]int, len(m))
	for k, v := range m {
		out[k] = cloneCounts(v)
	}
	return out
}

func clonePositions(m map[int]map[string]int) map[int]map[string]int {
	out := make(map[int]map[string]int, len(m))
	for k, v := range m {
		out[k] = cloneCounts(v)
	}
	return out
}
