/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: interfaces.go
Description: Shared interfaces and data types for the Akaylee Mangler. Defines the
types exchanged between the rule engine and its collaborators (pattern learners,
word sources, rule writers) to break import cycles and keep the engine free of
ambient state.
*/

package interfaces

import (
	"context"
	"time"
)

// Observation is a single (frequency, base, password) triple supplied by a
// pattern learner for batch rule synthesis. Frequency is carried through
// synthesis unchanged for downstream weighting.
type Observation struct {
	Frequency int
	Base      string
	Password  string
}

// WeightedRule pairs canonical rule text with a frequency weight. A candidate
// rule set keeps one entry per canonical text.
type WeightedRule struct {
	Text      string
	Frequency float64
}

// LearnedPatterns is an immutable snapshot of patterns learned from a leak
// corpus. It is passed by value into synthesis and rule generation; nothing in
// the engine mutates it after construction. Leet keys are two-character
// "base letter + substitute" pairs, e.g. "a@".
type LearnedPatterns struct {
	ID         string         `json:"id"`
	SourceFile string         `json:"source_file"`
	CachedAt   time.Time      `json:"cache_time"`
	Appends    map[string]int `json:"appends"`
	Prepends   map[string]int `json:"prepends"`
	Leet       map[string]int `json:"leet"`
}

// Clone returns a deep copy, preserving immutability of shared snapshots.
func (p LearnedPatterns) Clone() LearnedPatterns {
	out := p
	out.Appends = cloneCounts(p.Appends)
	out.Prepends = cloneCounts(p.Prepends)
	out.Leet = cloneCounts(p.Leet)
	return out
}

// TotalPatterns returns the number of distinct learned patterns.
func (p LearnedPatterns) TotalPatterns() int {
	return len(p.Appends) + len(p.Prepends) + len(p.Leet)
}

func cloneCounts(m map[string]int) map[string]int {
	if m == nil {
		return nil
	}
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// WordSource supplies words to the engine's collaborators: dictionaries for
// synthesis, leak corpora for analysis, sample vocabularies for optimization.
type WordSource interface {
	Name() string
	Description() string
	FetchWords(ctx context.Context) ([]string, error)
}

// WordFilter decides whether a candidate password may be emitted. Used by
// policy-based filtering on the output path.
type WordFilter interface {
	Validate(password string) bool
}
