/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: synthesizer_test.go
Description: Tests for backward rule synthesis. Covers case ops, leet substitutions,
affixes, verification-or-nothing behavior, dictionary base selection, and batch
synthesis ordering and cancellation.
*/

package synthesis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/akaylee-mangler/pkg/interfaces"
)

func infer(t *testing.T, base, observed string) string {
	t.Helper()
	prog, err := Infer(base, observed)
	require.NoError(t, err, "infer %q -> %q", base, observed)

	out, err := prog.Apply(base)
	require.NoError(t, err)
	require.Equal(t, observed, out, "program %q must reproduce the observation", prog.String())

	return prog.String()
}

// TestInferCaseAndAppends verifies that a capitalized base with a numeric and
// special suffix yields a case op followed by appends
func TestInferCaseAndAppends(t *testing.T) {
	assert.Equal(t, "c$2$0$2$4$!", infer(t, "admin", "Admin2024!"))
	assert.Equal(t, "u$1$2$3", infer(t, "admin", "ADMIN123"))
	assert.Equal(t, "C", infer(t, "Hello", "hELLO"))
}

// TestInferIdentity verifies that an unchanged observation yields the explicit
// identity rule
func TestInferIdentity(t *testing.T) {
	assert.Equal(t, ":", infer(t, "password", "password"))
}

// TestInferLeet verifies substitution synthesis in position-ascending order
func TestInferLeet(t *testing.T) {
	assert.Equal(t, "sa@so0", infer(t, "password", "p@ssw0rd"))
	assert.Equal(t, "cse3$!", infer(t, "secret", "S3cr3t!"))
}

// TestInferPrefix verifies that prepends are emitted in reverse order so the
// program rebuilds the prefix left to right
func TestInferPrefix(t *testing.T) {
	assert.Equal(t, "^3^2^1", infer(t, "pass", "123pass"))
	assert.Equal(t, "^y^m$1", infer(t, "pass", "mypass1"))
}

// TestInferNotFound verifies that transformations outside the model are
// rejected rather than approximated
func TestInferNotFound(t *testing.T) {
	cases := []struct {
		base     string
		observed string
	}{
		{"admin", "xyz123"},   // base not contained
		{"admin", "ADmin"},    // mixed case beyond c/u/C
		{"banana", "b@nana"},  // partial substitution: sa@ hits every 'a'
		{"password", "pass"},  // observed shorter than base
		{"", "password"},      // empty base
		{"admin", "nimda123"}, // reversal is not in the model
	}

	for _, tc := range cases {
		_, err := Infer(tc.base, tc.observed)
		assert.ErrorIs(t, err, ErrNotFound, "infer %q -> %q", tc.base, tc.observed)
	}
}

// TestInferLocatesThroughLeet verifies that the base is found even when every
// occurrence in the observation is leet-mangled
func TestInferLocatesThroughLeet(t *testing.T) {
	assert.Equal(t, "sa@ss$so0$!", infer(t, "password", "p@$$w0rd!"))
}

// TestInferFromDictionary verifies longest-contained-word base selection
func TestInferFromDictionary(t *testing.T) {
	base, prog, err := InferFromDictionary("mypassword123", []string{"pass", "password", "word"})
	require.NoError(t, err)
	assert.Equal(t, "password", base)
	assert.Equal(t, "^y^m$1$2$3", prog.String())
}

// TestInferFromDictionaryTieBreak verifies that equal-length candidates keep
// the earlier dictionary entry
func TestInferFromDictionaryTieBreak(t *testing.T) {
	base, prog, err := InferFromDictionary("password", []string{"pass", "word"})
	require.NoError(t, err)
	assert.Equal(t, "pass", base)
	assert.Equal(t, "$w$o$r$d", prog.String())
}

// TestInferFromDictionaryLeet verifies containment through leet normalization
func TestInferFromDictionaryLeet(t *testing.T) {
	base, prog, err := InferFromDictionary("p@ssw0rd!", []string{"admin", "password"})
	require.NoError(t, err)
	assert.Equal(t, "password", base)
	assert.Equal(t, "sa@so0$!", prog.String())
}

// TestInferFromDictionaryNoMatch verifies the miss path
func TestInferFromDictionaryNoMatch(t *testing.T) {
	_, _, err := InferFromDictionary("qwerty", []string{"admin", "password"})
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestInferBatch verifies order preservation, frequency passthrough, and nil
// programs for unreproducible observations
func TestInferBatch(t *testing.T) {
	observations := []interfaces.Observation{
		{Frequency: 40, Base: "admin", Password: "Admin2024!"},
		{Frequency: 25, Base: "password", Password: "p@ssw0rd"},
		{Frequency: 9, Base: "admin", Password: "xyz123"},
		{Frequency: 3, Base: "pass", Password: "123pass"},
	}

	results, err := InferBatch(context.Background(), observations, 2)
	require.NoError(t, err)
	require.Len(t, results, len(observations))

	for i, res := range results {
		assert.Equal(t, observations[i], res.Observation, "result %d", i)
	}

	assert.Equal(t, "c$2$0$2$4$!", results[0].Program.String())
	assert.Equal(t, "sa@so0", results[1].Program.String())
	assert.Nil(t, results[2].Program)
	assert.Equal(t, "^3^2^1", results[3].Program.String())
}

// TestInferBatchCancelled verifies that a cancelled context aborts the batch
func TestInferBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	observations := []interfaces.Observation{
		{Base: "admin", Password: "Admin2024!"},
	}

	_, err := InferBatch(ctx, observations, 4)
	assert.ErrorIs(t, err, context.Canceled)
}
