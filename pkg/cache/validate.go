/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: validate.go
Description: Structural validation of cached pattern files. Checks JSON shape and
required fields without trusting the file to decode into the pattern struct, so a
corrupted cache reports what is wrong instead of failing opaquely.
*/

package cache

import (
	"encoding/json"
	"fmt"
	"os"
)

// Report collects the outcome of validating one cache file.
type Report struct {
	Valid    bool
	Errors   []string
	Warnings []string
	Patterns int
}

// Validate checks the cache file stored under key.
func (s *Store) Validate(key string) Report {
	return ValidateFile(s.path(key))
}

// ValidateFile checks a pattern cache file at an explicit path. The pattern
// maps must be present and hold numeric counts; missing metadata is only a
// warning.
func ValidateFile(path string) Report {
	report := Report{Valid: true}
	fail := func(format string, args ...any) {
		report.Valid = false
		report.Errors = append(report.Errors, fmt.Sprintf(format, args...))
	}
	warn := func(format string, args ...any) {
		report.Warnings = append(report.Warnings, fmt.Sprintf(format, args...))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fail("cache file not readable: %v", err)
		return report
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		fail("invalid JSON: %v", err)
		return report
	}

	total := 0
	for _, field := range []string{"appends", "prepends", "leet"} {
		msg, ok := raw[field]
		if !ok {
			fail("missing required field: %s", field)
			continue
		}

		var counts map[string]json.Number
		if err := json.Unmarshal(msg, &counts); err != nil {
			fail("field %q must be an object of numeric counts: %v", field, err)
			continue
		}
		total += len(counts)
	}
	report.Patterns = total

	for _, field := range []string{"source_file", "cache_time"} {
		if _, ok := raw[field]; !ok {
			warn("missing %q metadata", field)
		}
	}
	if report.Valid && total == 0 {
		warn("cache contains no patterns")
	}

	return report
}
