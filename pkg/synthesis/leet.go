/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: leet.go
Description: Fixed leet-speak substitution table used by rule synthesis. Maps the
common single-character substitutions back to their plain-letter equivalents.
*/

package synthesis

// leetTable maps leet characters to the plain letters they stand in for.
// Only single-character substitutions are invertible by the synthesizer.
var leetTable = map[rune]rune{
	'@': 'a',
	'4': 'a',
	'3': 'e',
	'1': 'i',
	'!': 'i',
	'0': 'o',
	'$': 's',
	'5': 's',
	'7': 't',
}

// LeetBase returns the plain letter a leet character stands in for, and
// whether r is a known leet character at all.
func LeetBase(r rune) (rune, bool) {
	plain, ok := leetTable[r]
	return plain, ok
}

// plainLetter returns the plain-letter equivalent of r, or r itself when r is
// not a known leet character.
func plainLetter(r rune) rune {
	if plain, ok := leetTable[r]; ok {
		return plain
	}
	return r
}

// normalizeLeet replaces every known leet character with its plain letter.
// Length is preserved, so match positions map back onto the original word.
func normalizeLeet(word []rune) []rune {
	out := make([]rune, len(word))
	for i, r := range word {
		out[i] = plainLetter(r)
	}
	return out
}
