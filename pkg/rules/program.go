/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: program.go
Description: Compiled rule programs for the Akaylee Mangler. A Program is parsed once
from rule text and applied any number of times; execution is pure, deterministic, and
bounded by an output-length guard so pathological programs cannot exhaust memory.
*/

package rules

import "strings"

// DefaultMaxOutput is the output-length guard used by Apply. Chained growth ops
// (for example a long run of 'd') hit this bound instead of allocating without
// limit.
const DefaultMaxOutput = 256

// Program is an ordered sequence of rule operations. The zero-op program is the
// identity transform. A Program is immutable after construction and safe for
// concurrent use.
type Program struct {
	ops  []Op
	text string
}

// NewProgram compiles a sequence of ops into a Program. The canonical text is
// rendered once at construction.
func NewProgram(ops []Op) *Program {
	owned := make([]Op, len(ops))
	copy(owned, ops)

	var b strings.Builder
	for _, op := range owned {
		b.WriteString(op.String())
	}
	return &Program{ops: owned, text: b.String()}
}

// Parse scans rule text left to right and compiles it into a Program. Each op
// code consumes itself plus any required operand characters. An unknown op code
// or a missing operand at the end of text yields a *SyntaxError.
func Parse(text string) (*Program, error) {
	runes := []rune(text)
	ops := make([]Op, 0, len(runes))

	for i := 0; i < len(runes); i++ {
		code := OpCode(runes[i])
		n := operandCount(code)
		if n < 0 {
			return nil, &SyntaxError{Position: i, Code: runes[i], reason: "unknown op code"}
		}
		if n > 0 && i+n >= len(runes) {
			return nil, &SyntaxError{Position: i, Code: runes[i], reason: "missing operand for op"}
		}

		op := Op{Code: code}
		if n >= 1 {
			op.X = runes[i+1]
		}
		if n == 2 {
			op.Y = runes[i+2]
		}
		i += n
		ops = append(ops, op)
	}

	return &Program{ops: ops, text: text}, nil
}

// MustParse parses rule text and panics on a syntax error. Intended for
// compile-time-constant rules in tables and tests.
func MustParse(text string) *Program {
	p, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the canonical rule text. For any valid text T,
// Parse(T).String() == T.
func (p *Program) String() string {
	return p.text
}

// OpCount returns the number of ops in the program.
func (p *Program) OpCount() int {
	return len(p.ops)
}

// Ops returns a copy of the program's op sequence.
func (p *Program) Ops() []Op {
	out := make([]Op, len(p.ops))
	copy(out, p.ops)
	return out
}

// Apply runs the program over a word, each op's output feeding the next, with
// the default output-length guard. It never fails for any word except by
// exceeding the guard, in which case it returns a *LengthError.
func (p *Program) Apply(word string) (string, error) {
	return p.ApplyLimit(word, DefaultMaxOutput)
}

// ApplyLimit is Apply with an explicit output-length cap. A limit of zero or
// less disables the guard.
func (p *Program) ApplyLimit(word string, limit int) (string, error) {
	runes := []rune(word)
	for _, op := range p.ops {
		runes = op.apply(runes)
		if limit > 0 && len(runes) > limit {
			return "", &LengthError{Rule: p.text, Limit: limit}
		}
	}
	return string(runes), nil
}
