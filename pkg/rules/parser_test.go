/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: parser_test.go
Description: Tests for rule text parsing. Covers op code recognition, operand
consumption, canonical rendering, and syntax error positions.
*/

package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseRenderRoundTrip verifies that rendering a parsed program reproduces
// the original rule text exactly
func TestParseRenderRoundTrip(t *testing.T) {
	texts := []string{
		":",
		"l",
		"u",
		"c",
		"C",
		"t",
		"r",
		"d",
		"z",
		"Z",
		"$1",
		"^!",
		"sa@",
		"@e",
		"c$1$2$3",
		"lsa4$2$0$2$4",
		"^3^2^1u",
		"",
	}

	for _, text := range texts {
		prog, err := Parse(text)
		require.NoError(t, err, "parse %q", text)
		assert.Equal(t, text, prog.String())
	}
}

// TestParseOperands verifies that operand-taking ops consume their operands
func TestParseOperands(t *testing.T) {
	prog, err := Parse("sa@$1^2@x")
	require.NoError(t, err)
	require.Equal(t, 4, prog.OpCount())

	ops := prog.Ops()
	assert.Equal(t, Op{Code: OpSubstitute, X: 'a', Y: '@'}, ops[0])
	assert.Equal(t, Op{Code: OpAppend, X: '1'}, ops[1])
	assert.Equal(t, Op{Code: OpPrepend, X: '2'}, ops[2])
	assert.Equal(t, Op{Code: OpPurge, X: 'x'}, ops[3])
}

// TestParseUnknownOp verifies the syntax error position and code for an
// unknown op code
func TestParseUnknownOp(t *testing.T) {
	prog, err := Parse("q")
	require.Error(t, err)
	assert.Nil(t, prog)

	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
	assert.Equal(t, 0, synErr.Position)
	assert.Equal(t, 'q', synErr.Code)
}

// TestParseUnknownOpMidRule verifies the reported position inside a longer rule
func TestParseUnknownOpMidRule(t *testing.T) {
	_, err := Parse("c$1x")
	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
	assert.Equal(t, 3, synErr.Position)
	assert.Equal(t, 'x', synErr.Code)
}

// TestParseMissingOperand verifies that a truncated operand fails at the op code
func TestParseMissingOperand(t *testing.T) {
	cases := []struct {
		text string
		pos  int
		code rune
	}{
		{"$", 0, '$'},
		{"^", 0, '^'},
		{"s", 0, 's'},
		{"sa", 0, 's'},
		{"@", 0, '@'},
		{"c$", 1, '$'},
		{"l$1s4", 3, 's'},
	}

	for _, tc := range cases {
		_, err := Parse(tc.text)
		var synErr *SyntaxError
		require.ErrorAs(t, err, &synErr, "parse %q", tc.text)
		assert.Equal(t, tc.pos, synErr.Position, "parse %q", tc.text)
		assert.Equal(t, tc.code, synErr.Code, "parse %q", tc.text)
	}
}

// TestParseEmptyIsIdentity verifies that the empty program is the identity
// transform
func TestParseEmptyIsIdentity(t *testing.T) {
	prog, err := Parse("")
	require.NoError(t, err)
	assert.Equal(t, 0, prog.OpCount())

	out, err := prog.Apply("password")
	require.NoError(t, err)
	assert.Equal(t, "password", out)
}

// TestNewProgramRendersCanonicalText verifies construction from ops
func TestNewProgramRendersCanonicalText(t *testing.T) {
	prog := NewProgram([]Op{
		{Code: OpCapitalize},
		{Code: OpAppend, X: '1'},
		{Code: OpSubstitute, X: 'a', Y: '@'},
	})
	assert.Equal(t, "c$1sa@", prog.String())
}
