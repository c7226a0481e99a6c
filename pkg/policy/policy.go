/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: policy.go
Description: Policy-based candidate filtering. A Policy describes target password
requirements (length bounds, character class minimums, blacklists, repetition
limits); compiled policies validate candidates so that generated wordlists only
contain passwords the target system would have accepted.
*/

package policy

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// specialChars is the character set counted as "special" by composition rules.
const specialChars = "!@#$%^&*()-_=+[]{}|;:,.<>?/\\`~\"' "

// Policy describes password requirements to filter candidates against.
// Compile validates the regex patterns and produces a reusable matcher.
type Policy struct {
	MinLength int
	MaxLength int

	RequireLowercase bool
	RequireUppercase bool
	RequireDigit     bool
	RequireSpecial   bool

	MinLowercase int
	MinUppercase int
	MinDigits    int
	MinSpecial   int

	BlacklistWords    []string
	BlacklistPatterns []string

	// MaxConsecutive limits runs of identical characters; zero disables the
	// check. AllowRepeating false rejects any adjacent repeat.
	MaxConsecutive int
	AllowRepeating bool
}

// Compiled is a validated, ready-to-use policy matcher. Safe for concurrent
// use.
type Compiled struct {
	policy   Policy
	words    []string
	patterns []*regexp.Regexp
}

// Compile validates the policy and compiles its blacklist patterns. Patterns
// match case-insensitively.
func Compile(p Policy) (*Compiled, error) {
	if p.MaxLength == 0 {
		p.MaxLength = 128
	}
	if p.MinLength > p.MaxLength {
		return nil, fmt.Errorf("policy: min length %d exceeds max length %d", p.MinLength, p.MaxLength)
	}

	c := &Compiled{policy: p}
	for _, word := range p.BlacklistWords {
		c.words = append(c.words, strings.ToLower(word))
	}
	for _, pattern := range p.BlacklistPatterns {
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			return nil, fmt.Errorf("policy: blacklist pattern %q: %w", pattern, err)
		}
		c.patterns = append(c.patterns, re)
	}
	return c, nil
}

// Validate reports whether a candidate meets every policy requirement.
func (c *Compiled) Validate(password string) bool {
	p := c.policy
	runes := []rune(password)

	if len(runes) < p.MinLength || len(runes) > p.MaxLength {
		return false
	}

	var lower, upper, digit, special int
	for _, r := range runes {
		switch {
		case unicode.IsLower(r):
			lower++
		case unicode.IsUpper(r):
			upper++
		case unicode.IsDigit(r):
			digit++
		}
		if strings.ContainsRune(specialChars, r) {
			special++
		}
	}

	if p.RequireLowercase && lower == 0 {
		return false
	}
	if p.RequireUppercase && upper == 0 {
		return false
	}
	if p.RequireDigit && digit == 0 {
		return false
	}
	if p.RequireSpecial && special == 0 {
		return false
	}
	if lower < p.MinLowercase || upper < p.MinUppercase ||
		digit < p.MinDigits || special < p.MinSpecial {
		return false
	}

	for _, re := range c.patterns {
		if re.MatchString(password) {
			return false
		}
	}
	if len(c.words) > 0 {
		folded := strings.ToLower(password)
		for _, word := range c.words {
			if strings.Contains(folded, word) {
				return false
			}
		}
	}

	if !p.AllowRepeating || p.MaxConsecutive > 0 {
		run := 1
		for i := 1; i < len(runes); i++ {
			if runes[i] != runes[i-1] {
				run = 1
				continue
			}
			run++
			if !p.AllowRepeating {
				return false
			}
			if p.MaxConsecutive > 0 && run > p.MaxConsecutive {
				return false
			}
		}
	}

	return true
}

// Filter returns the candidates that pass the policy, preserving order.
func (c *Compiled) Filter(passwords []string) []string {
	out := make([]string, 0, len(passwords))
	for _, pwd := range passwords {
		if c.Validate(pwd) {
			out = append(out, pwd)
		}
	}
	return out
}

// String summarizes the policy for log output.
func (c *Compiled) String() string {
	p := c.policy
	parts := []string{fmt.Sprintf("Length: %d-%d", p.MinLength, p.MaxLength)}

	var reqs []string
	if n := requiredCount(p.RequireLowercase, p.MinLowercase); n > 0 {
		reqs = append(reqs, fmt.Sprintf("lowercase>=%d", n))
	}
	if n := requiredCount(p.RequireUppercase, p.MinUppercase); n > 0 {
		reqs = append(reqs, fmt.Sprintf("uppercase>=%d", n))
	}
	if n := requiredCount(p.RequireDigit, p.MinDigits); n > 0 {
		reqs = append(reqs, fmt.Sprintf("digits>=%d", n))
	}
	if n := requiredCount(p.RequireSpecial, p.MinSpecial); n > 0 {
		reqs = append(reqs, fmt.Sprintf("special>=%d", n))
	}
	if len(reqs) > 0 {
		parts = append(parts, "Require: "+strings.Join(reqs, ", "))
	}

	if len(c.words) > 0 {
		parts = append(parts, fmt.Sprintf("Blacklist: %d words", len(c.words)))
	}
	if len(c.patterns) > 0 {
		parts = append(parts, fmt.Sprintf("Patterns: %d regex", len(c.patterns)))
	}
	if !p.AllowRepeating {
		parts = append(parts, "No repeating chars")
	} else if p.MaxConsecutive > 0 {
		parts = append(parts, fmt.Sprintf("Max consecutive: %d", p.MaxConsecutive))
	}

	return strings.Join(parts, " | ")
}

func requiredCount(required bool, min int) int {
	if required && min < 1 {
		return 1
	}
	return min
}

// Preset returns one of the built-in policies: basic, moderate, strong, or
// enterprise.
func Preset(name string) (*Compiled, error) {
	switch name {
	case "basic":
		return Compile(Policy{MinLength: 6, AllowRepeating: true})
	case "moderate":
		return Compile(Policy{
			MinLength:        8,
			RequireLowercase: true,
			RequireUppercase: true,
			RequireDigit:     true,
			AllowRepeating:   true,
		})
	case "strong":
		return Compile(Policy{
			MinLength:        12,
			RequireLowercase: true,
			RequireUppercase: true,
			RequireDigit:     true,
			RequireSpecial:   true,
			BlacklistWords:   []string{"password", "admin", "user", "test"},
			AllowRepeating:   true,
		})
	case "enterprise":
		return Compile(Policy{
			MinLength:    14,
			MinLowercase: 1,
			MinUppercase: 1,
			MinDigits:    1,
			MinSpecial:   1,
			BlacklistWords: []string{
				"password", "admin", "user", "test", "guest",
				"root", "administrator",
			},
			MaxConsecutive: 3,
			AllowRepeating: true,
		})
	default:
		return nil, fmt.Errorf("policy: unknown preset %q", name)
	}
}
