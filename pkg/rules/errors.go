/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: errors.go
Description: Error types for the rule interpreter. SyntaxError pinpoints where rule
parsing failed; LengthError reports a program whose output exceeded the configured
maximum length. Both are ordinary return values, never panics.
*/

package rules

import (
	"errors"
	"fmt"
)

// ErrLengthExceeded is the sentinel wrapped by every LengthError. Callers can
// branch with errors.Is(err, rules.ErrLengthExceeded).
var ErrLengthExceeded = errors.New("maximum output length exceeded")

// SyntaxError reports an unknown op code or a missing operand at the end of
// rule text. Position is the rune offset of the offending op code.
type SyntaxError struct {
	Position int
	Code     rune
	reason   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("rule syntax error at position %d: %s %q", e.Position, e.reason, e.Code)
}

// LengthError reports that applying Rule would exceed Limit output runes.
type LengthError struct {
	Rule  string
	Limit int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("rule %q: output exceeds %d characters: %v", e.Rule, e.Limit, ErrLengthExceeded)
}

// Unwrap lets errors.Is match ErrLengthExceeded.
func (e *LengthError) Unwrap() error {
	return ErrLengthExceeded
}
