/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: sample.go
Description: Default sample vocabulary for rule set minimization. Mixes short and long
words, case variants, digits, and specials so that behaviorally distinct rules are
unlikely to collide on the whole sample.
*/

package optimizer

// DefaultSample returns the built-in sample vocabulary. The mix matters more
// than the size: single letters expose position ops, case variants expose case
// ops, words with digits and specials expose substitutions and purges.
func DefaultSample() []string {
	return []string{
		// Common passwords
		"password", "admin", "user", "test", "root", "guest",
		"demo", "login", "welcome", "hello",
		"master", "system", "super",

		// Short words and single letters
		"a", "b", "c", "x", "y", "z",
		"cat", "dog", "sun", "fun", "run", "top", "hot",

		// Medium and long words
		"apple", "table", "chair", "mouse", "keyboard",
		"corporation", "administrator", "technology", "development",

		// Case variants
		"PassWord", "AdmiN", "TeSt", "RoOt",

		// Digits and specials already attached
		"test123", "admin456", "pass789", "user000",
		"pass!", "admin@", "test#", "user$",

		// Names
		"john", "mary", "david", "sarah", "michael", "jennifer",

		// Years
		"2020", "2021", "2022", "2023", "2024", "2025",

		// Bare specials and digits
		"!", "@", "#", "$", "1", "2", "3",
	}
}
