/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: rulefile.go
Description: Rule file reading and writing. Rule files are plain text, one rule per
line, with blank lines and '#' comments ignored. Writers emit a small header block
describing how the file was produced.
*/

package rulefile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kleascm/akaylee-mangler/pkg/interfaces"
	"github.com/kleascm/akaylee-mangler/pkg/optimizer"
	"github.com/kleascm/akaylee-mangler/pkg/rules"
)

// Skipped records a rule line that failed to parse.
type Skipped struct {
	Line int
	Text string
	Err  error
}

// Read returns the rule texts in a file, skipping blank lines and comments.
func Read(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rule file: %w", err)
	}
	defer f.Close()

	return readLines(f)
}

// ReadPrograms parses every rule in a file. Unparseable lines are collected
// as Skipped entries rather than failing the whole file; corpus-derived rule
// files routinely carry a few malformed lines.
func ReadPrograms(path string) ([]*rules.Program, []Skipped, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open rule file: %w", err)
	}
	defer f.Close()

	var programs []*rules.Program
	var skipped []Skipped

	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		prog, err := rules.Parse(text)
		if err != nil {
			skipped = append(skipped, Skipped{Line: line, Text: text, Err: err})
			continue
		}
		programs = append(programs, prog)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("read rule file: %w", err)
	}

	return programs, skipped, nil
}

// Write stores an optimized rule set with a header describing the
// minimization run.
func Write(path string, programs []*rules.Program, stats optimizer.Stats) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create rule file: %w", err)
	}

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "# Optimized mangling rules\n")
	fmt.Fprintf(w, "# Original: %d rules\n", stats.OriginalCount)
	fmt.Fprintf(w, "# Optimized: %d rules\n", stats.OptimizedCount)
	fmt.Fprintf(w, "# Removed: %d redundant rules (%.1f%% reduction)\n", stats.RemovedCount, stats.ReductionPercent)
	fmt.Fprintf(w, "#\n")
	for _, prog := range programs {
		fmt.Fprintf(w, "%s\n", prog.String())
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write rule file: %w", err)
	}
	return f.Close()
}

// WriteWeighted stores a generated rule set ordered as given. Weights are for
// the producer's bookkeeping and are not written; downstream crackers consume
// plain rule lines.
func WriteWeighted(path string, weighted []interfaces.WeightedRule) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create rule file: %w", err)
	}

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "# Generated mangling rules\n")
	fmt.Fprintf(w, "# Rules: %d\n", len(weighted))
	fmt.Fprintf(w, "#\n")
	for _, rule := range weighted {
		fmt.Fprintf(w, "%s\n", rule.Text)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write rule file: %w", err)
	}
	return f.Close()
}

func readLines(r io.Reader) ([]string, error) {
	var out []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		out = append(out, text)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read rule file: %w", err)
	}
	return out, nil
}
