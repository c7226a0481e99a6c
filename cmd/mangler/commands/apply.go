/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: apply.go
Description: Apply command implementation for the Akaylee Mangler. Streams a wordlist
through a rule set with a parallel worker pool, filters candidates through an
optional password policy, deduplicates, and writes the result.
*/

package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/akaylee-mangler/pkg/policy"
	"github.com/kleascm/akaylee-mangler/pkg/rulefile"
	"github.com/kleascm/akaylee-mangler/pkg/rules"
	"github.com/kleascm/akaylee-mangler/pkg/wordlist"
)

// RunApply executes the rule application process
func RunApply(cmd *cobra.Command, args []string) error {
	fmt.Println("🚀 Akaylee Mangler - Applying Rules")
	fmt.Println("===================================")
	fmt.Println()

	// Load configuration first
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Setup logging
	if err := SetupLogging(); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	logger, err := NewFileLogger()
	if err != nil {
		return fmt.Errorf("failed to setup file logging: %w", err)
	}
	defer logger.Close()

	// Load the rule set
	rulesFile := viper.GetString("rules_file")
	programs, skipped, err := rulefile.ReadPrograms(rulesFile)
	if err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}
	for _, s := range skipped {
		fmt.Printf("⚠️  Skipping invalid rule on line %d: %q (%v)\n", s.Line, s.Text, s.Err)
		logger.LogRuleFailure(s.Text, s.Err, map[string]interface{}{"line": s.Line})
	}
	if len(programs) == 0 {
		return fmt.Errorf("no valid rules in %s", rulesFile)
	}
	fmt.Printf("📜 Loaded %d rules from %s\n", len(programs), rulesFile)

	// Load the wordlist
	wordlistFile := viper.GetString("wordlist_file")
	source := wordlist.NewFileSource("wordlist", "input wordlist", wordlistFile, viper.GetString("wordlist_format"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n🛑 Received shutdown signal, stopping...")
		cancel()
	}()

	words, err := source.FetchWords(ctx)
	if err != nil {
		return fmt.Errorf("failed to load wordlist: %w", err)
	}
	fmt.Printf("📖 Loaded %d words from %s\n", len(words), wordlistFile)

	// Compile the password policy if one was requested
	var filter *policy.Compiled
	if preset := viper.GetString("policy"); preset != "" {
		filter, err = policy.Preset(preset)
		if err != nil {
			return fmt.Errorf("failed to load policy: %w", err)
		}
		fmt.Printf("🛡️  Policy: %s\n", filter)
	}

	maxLength := viper.GetInt("max_length")
	workers := viper.GetInt("apply_workers")
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	fmt.Printf("⚙️  Workers: %d, max candidate length: %d\n", workers, maxLength)
	fmt.Println()

	start := time.Now()
	stats, err := generateCandidates(ctx, programs, words, filter, maxLength, workers, viper.GetString("output_file"))
	if err != nil {
		return err
	}

	// Surface rules that failed on every word they saw
	for text, count := range stats.ruleFailures {
		logger.LogRuleFailure(text, fmt.Errorf("failed on %d words", count), nil)
	}

	logger.LogStats(int64(len(words)), stats.generated, stats.written, map[string]interface{}{
		"rules":    len(programs),
		"duration": time.Since(start).String(),
	})

	fmt.Printf("📊 Generated %d candidates (%d unique after filtering)\n", stats.generated, stats.written)
	fmt.Printf("⏱️  Completed in %s\n", time.Since(start).Round(time.Millisecond))
	fmt.Printf("💾 Candidates written to %s\n", viper.GetString("output_file"))
	fmt.Println()
	fmt.Println("✨ Rule application completed!")
	return nil
}

// applyStats aggregates counters from the worker pool.
type applyStats struct {
	generated    int64
	written      int64
	ruleFailures map[string]int
}

// generateCandidates fans words out to workers, applies every rule to every
// word, and funnels unique candidates to the output file. Candidate order
// follows wordlist order, rule order within a word.
func generateCandidates(ctx context.Context, programs []*rules.Program, words []string, filter *policy.Compiled, maxLength int, workers int, outputPath string) (applyStats, error) {
	stats := applyStats{ruleFailures: make(map[string]int)}

	out, err := os.Create(outputPath)
	if err != nil {
		return stats, fmt.Errorf("failed to create output file: %w", err)
	}
	w := bufio.NewWriter(out)

	type wordResult struct {
		index      int
		candidates []string
		failures   []string
	}

	indexes := make(chan int, workers)
	results := make(chan wordResult, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range indexes {
				if ctx.Err() != nil {
					return
				}
				res := wordResult{index: idx}
				for _, prog := range programs {
					candidate, err := prog.ApplyLimit(words[idx], maxLength)
					if err != nil {
						res.failures = append(res.failures, prog.String())
						continue
					}
					res.candidates = append(res.candidates, candidate)
				}
				results <- res
			}
		}()
	}

	go func() {
		defer close(indexes)
		for i := range words {
			select {
			case indexes <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	// Collect per-word results, replay them in wordlist order, dedup, write.
	pending := make(map[int]wordResult)
	next := 0
	seen := make(map[string]struct{})

	flush := func(res wordResult) error {
		for _, text := range res.failures {
			stats.ruleFailures[text]++
		}
		stats.generated += int64(len(res.candidates))
		for _, candidate := range res.candidates {
			if filter != nil && !filter.Validate(candidate) {
				continue
			}
			if _, dup := seen[candidate]; dup {
				continue
			}
			seen[candidate] = struct{}{}
			stats.written++
			if _, err := w.WriteString(candidate + "\n"); err != nil {
				return fmt.Errorf("failed to write candidate: %w", err)
			}
		}
		return nil
	}

	for res := range results {
		pending[res.index] = res
		for {
			ready, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++
			if err := flush(ready); err != nil {
				out.Close()
				return stats, err
			}
		}
	}

	// Drain anything a cancelled run left out of order.
	if len(pending) > 0 {
		order := make([]int, 0, len(pending))
		for idx := range pending {
			order = append(order, idx)
		}
		sort.Ints(order)
		for _, idx := range order {
			if err := flush(pending[idx]); err != nil {
				out.Close()
				return stats, err
			}
		}
	}

	if err := ctx.Err(); err != nil {
		w.Flush()
		out.Close()
		return stats, err
	}
	if err := w.Flush(); err != nil {
		out.Close()
		return stats, fmt.Errorf("failed to flush output: %w", err)
	}
	return stats, out.Close()
}
