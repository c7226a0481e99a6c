/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: synthesizer.go
Description: Backward rule synthesis for the Akaylee Mangler. Given a base word and an
observed password, reconstructs a rule program (case op, single-character leet
substitutions, literal affixes) that reproduces the transformation, or reports that
the transformation lies outside the supported model. Used to learn mangling rules
from real leaked-password corpora.
*/

package synthesis

import (
	"errors"
	"unicode"

	"github.com/kleascm/akaylee-mangler/pkg/rules"
)

// ErrNotFound reports that no rule program within the supported model (case op
// + single-character substitutions + literal affixes) reproduces the observed
// password from the base word. It is a routine outcome for a large fraction of
// real-world inputs, not a failure.
var ErrNotFound = errors.New("no rule program reproduces the observed password")

// caseCandidates are the case ops tried against the matched span, in order.
// The zero Op stands for "no case op"; at most one case op is ever emitted.
var caseCandidates = []rules.OpCode{0, rules.OpCapitalize, rules.OpUppercase, rules.OpInvCapitalize}

// Infer reconstructs a rule program that transforms base into observed.
//
// The base is located inside observed case-insensitively, retrying after leet
// normalization of observed. Characters before the match become prepend ops
// (emitted in reverse order of appearance), characters after it become append
// ops in forward order, the span's case pattern yields at most one case op, and
// leet differences yield substitution ops in position-ascending order with the
// first-seen mapping winning per distinct source character. The result is
// verified by forward execution; anything the model cannot express returns
// ErrNotFound rather than an incorrect program.
func Infer(base, observed string) (*rules.Program, error) {
	b := []rune(base)
	o := []rune(observed)
	if len(b) == 0 || len(o) < len(b) {
		return nil, ErrNotFound
	}

	start := indexFold(o, b)
	if start < 0 {
		start = indexFold(normalizeLeet(o), b)
	}
	if start < 0 {
		return nil, ErrNotFound
	}

	span := o[start : start+len(b)]
	prefix := o[:start]
	suffix := o[start+len(b):]

	for _, caseCode := range caseCandidates {
		caseBase := applyCase(b, caseCode)

		subs, ok := deriveSubstitutions(caseBase, span)
		if !ok {
			continue
		}

		ops := make([]rules.Op, 0, 1+len(subs)+len(prefix)+len(suffix))
		if caseCode != 0 {
			ops = append(ops, rules.Op{Code: caseCode})
		}
		ops = append(ops, subs...)
		for i := len(prefix) - 1; i >= 0; i-- {
			ops = append(ops, rules.Op{Code: rules.OpPrepend, X: prefix[i]})
		}
		for _, r := range suffix {
			ops = append(ops, rules.Op{Code: rules.OpAppend, X: r})
		}
		if len(ops) == 0 {
			ops = append(ops, rules.Op{Code: rules.OpIdentity})
		}

		prog := rules.NewProgram(ops)
		if out, err := prog.Apply(base); err == nil && out == observed {
			return prog, nil
		}
	}

	return nil, ErrNotFound
}

// InferFromDictionary selects the longest dictionary word contained in the
// password (ties broken by dictionary iteration order) and synthesizes a rule
// from it. Returns the chosen base alongside the program.
func InferFromDictionary(password string, dictionary []string) (string, *rules.Program, error) {
	o := []rune(password)
	norm := normalizeLeet(o)

	best := ""
	for _, word := range dictionary {
		w := []rune(word)
		if len(w) == 0 || len(w) <= len([]rune(best)) {
			continue
		}
		if indexFold(o, w) >= 0 || indexFold(norm, w) >= 0 {
			best = word
		}
	}
	if best == "" {
		return "", nil, ErrNotFound
	}

	prog, err := Infer(best, password)
	if err != nil {
		return "", nil, err
	}
	return best, prog, nil
}

// applyCase returns base transformed by the candidate case op. A zero code
// leaves the word unchanged.
func applyCase(base []rune, code rules.OpCode) []rune {
	out := make([]rune, len(base))
	copy(out, base)
	if len(out) == 0 {
		return out
	}

	switch code {
	case rules.OpCapitalize:
		out[0] = unicode.ToUpper(out[0])
		for i := 1; i < len(out); i++ {
			out[i] = unicode.ToLower(out[i])
		}
	case rules.OpUppercase:
		for i := range out {
			out[i] = unicode.ToUpper(out[i])
		}
	case rules.OpInvCapitalize:
		out[0] = unicode.ToLower(out[0])
		for i := 1; i < len(out); i++ {
			out[i] = unicode.ToUpper(out[i])
		}
	}
	return out
}

// deriveSubstitutions computes the substitution ops turning caseBase into span.
// Positions are scanned in ascending order; the first mapping seen for a
// distinct source character wins. Any difference the leet table cannot explain
// rejects the candidate; case differences are the case op's job, never a
// substitution's.
func deriveSubstitutions(caseBase, span []rune) ([]rules.Op, bool) {
	var subs []rules.Op
	seen := make(map[rune]rune)

	for i := range caseBase {
		from, to := caseBase[i], span[i]
		if from == to {
			continue
		}
		if _, leet := leetTable[to]; !leet {
			return nil, false
		}
		if plainLetter(to) != unicode.ToLower(from) {
			return nil, false
		}
		if prev, ok := seen[from]; ok {
			if prev != to {
				// Conflicting target for the same source character; the
				// first-seen mapping stands and verification decides.
				continue
			}
			continue
		}
		seen[from] = to
		subs = append(subs, rules.Op{Code: rules.OpSubstitute, X: from, Y: to})
	}

	return subs, true
}

// indexFold returns the rune index of the first case-insensitive occurrence of
// needle in haystack, or -1.
func indexFold(haystack, needle []rune) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if unicode.ToLower(haystack[i+j]) != unicode.ToLower(needle[j]) {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
