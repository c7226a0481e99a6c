/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: ops.go
Description: Rule operation definitions for the Akaylee Mangler. Defines the tagged
RuleOp variants of the mangling rule language (case folding, character substitution,
affixes, duplication, reversal, deletion) and their apply-to-word semantics.
*/

package rules

import (
	"strings"
	"unicode"
)

// OpCode identifies a single rule operation. The values are the op code
// characters of the rule text format.
type OpCode rune

const (
	OpIdentity       OpCode = ':' // no-op
	OpLowercase      OpCode = 'l' // lowercase all
	OpUppercase      OpCode = 'u' // uppercase all
	OpCapitalize     OpCode = 'c' // first char upper, rest lower
	OpInvCapitalize  OpCode = 'C' // first char lower, rest upper
	OpToggleCase     OpCode = 't' // swap case of every char
	OpReverse        OpCode = 'r' // reverse
	OpDuplicate      OpCode = 'd' // duplicate whole word
	OpDuplicateFirst OpCode = 'z' // duplicate first char
	OpDuplicateLast  OpCode = 'Z' // duplicate last char
	OpAppend         OpCode = '$' // $X: append literal X
	OpPrepend        OpCode = '^' // ^X: prepend literal X
	OpSubstitute     OpCode = 's' // sXY: replace every X with Y
	OpPurge          OpCode = '@' // @X: delete every X
)

// Op is a single rule operation. X and Y carry literal operands for the ops
// that take them ($X, ^X, @X use X; sXY uses both).
type Op struct {
	Code OpCode
	X    rune
	Y    rune
}

// operandCount returns how many operand characters an op code consumes,
// or -1 for an unknown op code.
func operandCount(code OpCode) int {
	switch code {
	case OpIdentity, OpLowercase, OpUppercase, OpCapitalize, OpInvCapitalize,
		OpToggleCase, OpReverse, OpDuplicate, OpDuplicateFirst, OpDuplicateLast:
		return 0
	case OpAppend, OpPrepend, OpPurge:
		return 1
	case OpSubstitute:
		return 2
	default:
		return -1
	}
}

// String renders the op in canonical rule text form.
func (op Op) String() string {
	var b strings.Builder
	b.WriteRune(rune(op.Code))
	switch operandCount(op.Code) {
	case 1:
		b.WriteRune(op.X)
	case 2:
		b.WriteRune(op.X)
		b.WriteRune(op.Y)
	}
	return b.String()
}

// apply transforms a word according to the op's semantics. Position-referencing
// ops on an empty word are no-ops.
func (op Op) apply(word []rune) []rune {
	switch op.Code {
	case OpIdentity:
		return word

	case OpLowercase:
		out := make([]rune, len(word))
		for i, r := range word {
			out[i] = unicode.ToLower(r)
		}
		return out

	case OpUppercase:
		out := make([]rune, len(word))
		for i, r := range word {
			out[i] = unicode.ToUpper(r)
		}
		return out

	case OpCapitalize:
		if len(word) == 0 {
			return word
		}
		out := make([]rune, len(word))
		out[0] = unicode.ToUpper(word[0])
		for i := 1; i < len(word); i++ {
			out[i] = unicode.ToLower(word[i])
		}
		return out

	case OpInvCapitalize:
		if len(word) == 0 {
			return word
		}
		out := make([]rune, len(word))
		out[0] = unicode.ToLower(word[0])
		for i := 1; i < len(word); i++ {
			out[i] = unicode.ToUpper(word[i])
		}
		return out

	case OpToggleCase:
		out := make([]rune, len(word))
		for i, r := range word {
			switch {
			case unicode.IsUpper(r):
				out[i] = unicode.ToLower(r)
			case unicode.IsLower(r):
				out[i] = unicode.ToUpper(r)
			default:
				out[i] = r
			}
		}
		return out

	case OpReverse:
		out := make([]rune, len(word))
		for i, r := range word {
			out[len(word)-1-i] = r
		}
		return out

	case OpDuplicate:
		out := make([]rune, 0, len(word)*2)
		out = append(out, word...)
		out = append(out, word...)
		return out

	case OpDuplicateFirst:
		if len(word) == 0 {
			return word
		}
		out := make([]rune, 0, len(word)+1)
		out = append(out, word[0])
		out = append(out, word...)
		return out

	case OpDuplicateLast:
		if len(word) == 0 {
			return word
		}
		out := make([]rune, 0, len(word)+1)
		out = append(out, word...)
		out = append(out, word[len(word)-1])
		return out

	case OpAppend:
		out := make([]rune, 0, len(word)+1)
		out = append(out, word...)
		out = append(out, op.X)
		return out

	case OpPrepend:
		out := make([]rune, 0, len(word)+1)
		out = append(out, op.X)
		out = append(out, word...)
		return out

	case OpSubstitute:
		out := make([]rune, len(word))
		for i, r := range word {
			if r == op.X {
				out[i] = op.Y
			} else {
				out[i] = r
			}
		}
		return out

	case OpPurge:
		out := make([]rune, 0, len(word))
		for _, r := range word {
			if r != op.X {
				out = append(out, r)
			}
		}
		return out
	}

	// Unknown codes cannot appear in a parsed program
	return word
}
