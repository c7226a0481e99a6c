/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: infer.go
Description: Infer command implementation for the Akaylee Mangler. Reconstructs
mangling rules from observed passwords, either for a single base/password pair
or for a whole corpus against a base dictionary.
*/

package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/akaylee-mangler/pkg/interfaces"
	"github.com/kleascm/akaylee-mangler/pkg/rulefile"
	"github.com/kleascm/akaylee-mangler/pkg/synthesis"
)

// RunInfer executes rule inference
func RunInfer(cmd *cobra.Command, args []string) error {
	fmt.Println("🔍 Akaylee Mangler - Rule Inference")
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

	base := viper.GetString("infer_base")
	password := viper.GetString("infer_password")
	corpus := viper.GetString("infer_corpus")

	switch {
	case base != "" && password != "":
		return inferSingle(base, password)
	case corpus != "":
		return inferCorpus(corpus)
	default:
		return fmt.Errorf("either --base and --password, or --corpus must be provided")
	}
}

// inferSingle reconstructs the rule for one base/password pair
func inferSingle(base, password string) error {
	prog, err := synthesis.Infer(base, password)
	if errors.Is(err, synthesis.ErrNotFound) {
		fmt.Printf("❌ No rule found: %q cannot be derived from %q\n", password, base)
		return nil
	}
	if err != nil {
		return fmt.Errorf("inference failed: %w", err)
	}

	fmt.Printf("📝 Base:     %s\n", base)
	fmt.Printf("🔑 Password: %s\n", password)
	fmt.Printf("✨ Rule:     %s\n", prog)
	return nil
}

// inferCorpus reconstructs rules for a whole corpus. With --dictionary each
// corpus line is a password and the base is located in the dictionary; without
// it each line must be a tab-separated "base<TAB>password" pair.
func inferCorpus(corpusFile string) error {
	logger, err := NewFileLogger()
	if err != nil {
		return fmt.Errorf("failed to setup file logging: %w", err)
	}
	defer logger.Close()

	lines, err := readLines(corpusFile)
	if err != nil {
		return err
	}
	fmt.Printf("📖 Loaded %d corpus entries from %s\n", len(lines), corpusFile)

	workers := viper.GetInt("infer_workers")
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n🛑 Received shutdown signal, stopping...")
		cancel()
	}()

	start := time.Now()
	ruleCounts := make(map[string]int)
	matched := 0

	if dictFile := viper.GetString("infer_dictionary"); dictFile != "" {
		dictionary, err := readLines(dictFile)
		if err != nil {
			return err
		}
		fmt.Printf("📚 Loaded %d dictionary words from %s\n", len(dictionary), dictFile)

		matched, err = inferAgainstDictionary(ctx, lines, dictionary, workers, ruleCounts, logger.LogSynthesis)
		if err != nil {
			return err
		}
	} else {
		observations, err := parseObservations(lines)
		if err != nil {
			return err
		}
		results, err := synthesis.InferBatch(ctx, observations, workers)
		if err != nil {
			return fmt.Errorf("batch inference failed: %w", err)
		}
		for _, res := range results {
			if res.Program == nil {
				continue
			}
			matched++
			ruleCounts[res.Program.String()]++
			logger.LogSynthesis(res.Observation.Base, res.Observation.Password, res.Program.String(), nil)
		}
	}

	fmt.Println()
	fmt.Printf("📊 Inferred rules for %d/%d entries (%d unique rules)\n", matched, len(lines), len(ruleCounts))
	fmt.Printf("⏱️  Completed in %s\n", time.Since(start).Round(time.Millisecond))

	weighted := weightedByCount(ruleCounts, matched)
	if output := viper.GetString("infer_output"); output != "" {
		if err := rulefile.WriteWeighted(output, weighted); err != nil {
			return fmt.Errorf("failed to write rules: %w", err)
		}
		fmt.Printf("💾 Rules written to %s\n", output)
	} else {
		fmt.Println()
		for i, rule := range weighted {
			if i >= 20 {
				fmt.Printf("   ... and %d more\n", len(weighted)-20)
				break
			}
			fmt.Printf("   %-20s (frequency: %.4f)\n", rule.Text, rule.Frequency)
		}
	}

	fmt.Println()
	fmt.Println("✨ Inference completed!")
	return nil
}

// inferAgainstDictionary runs dictionary-based inference across a worker pool.
func inferAgainstDictionary(ctx context.Context, passwords []string, dictionary []string, workers int, ruleCounts map[string]int, logFn func(string, string, string, map[string]interface{})) (int, error) {
	type outcome struct {
		base     string
		password string
		rule     string
	}

	if workers > len(passwords) {
		workers = len(passwords)
	}
	indexes := make(chan int, workers)
	outcomes := make(chan outcome, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range indexes {
				if ctx.Err() != nil {
					return
				}
				base, prog, err := synthesis.InferFromDictionary(passwords[idx], dictionary)
				if err != nil {
					continue
				}
				outcomes <- outcome{base: base, password: passwords[idx], rule: prog.String()}
			}
		}()
	}

	go func() {
		defer close(indexes)
		for i := range passwords {
			select {
			case indexes <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	matched := 0
	for out := range outcomes {
		matched++
		ruleCounts[out.rule]++
		logFn(out.base, out.password, out.rule, nil)
	}
	if err := ctx.Err(); err != nil {
		return matched, err
	}
	return matched, nil
}

// parseObservations parses tab-separated "base<TAB>password" corpus lines.
func parseObservations(lines []string) ([]interfaces.Observation, error) {
	observations := make([]interfaces.Observation, 0, len(lines))
	for i, line := range lines {
		base, password, found := strings.Cut(line, "\t")
		if !found {
			return nil, fmt.Errorf("line %d: expected tab-separated base and password (or use --dictionary)", i+1)
		}
		observations = append(observations, interfaces.Observation{
			Frequency: 1,
			Base:      strings.TrimSpace(base),
			Password:  strings.TrimSpace(password),
		})
	}
	return observations, nil
}

// weightedByCount converts rule occurrence counts into weighted rules sorted
// by frequency descending, ties broken by rule text.
func weightedByCount(ruleCounts map[string]int, total int) []interfaces.WeightedRule {
	if total == 0 {
		return nil
	}
	out := make([]interfaces.WeightedRule, 0, len(ruleCounts))
	for text, count := range ruleCounts {
		out = append(out, interfaces.WeightedRule{Text: text, Frequency: float64(count) / float64(total)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Frequency != out[j].Frequency {
			return out[i].Frequency > out[j].Frequency
		}
		return out[i].Text < out[j].Text
	})
	return out
}
