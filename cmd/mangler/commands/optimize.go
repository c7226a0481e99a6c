/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: optimize.go
Description: Optimize command implementation for the Akaylee Mangler. Removes
behaviorally redundant rules from a rule set by fingerprinting each rule's
outputs over a sample vocabulary.
*/

package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/akaylee-mangler/pkg/optimizer"
	"github.com/kleascm/akaylee-mangler/pkg/rulefile"
)

// RunOptimize executes rule set optimization
func RunOptimize(cmd *cobra.Command, args []string) error {
	fmt.Println("🔧 Akaylee Mangler - Rule Set Optimization")
	fmt.Println("==========================================")
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
	input := viper.GetString("optimize_input")
	programs, skipped, err := rulefile.ReadPrograms(input)
	if err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}
	for _, s := range skipped {
		fmt.Printf("⚠️  Skipping invalid rule on line %d: %q (%v)\n", s.Line, s.Text, s.Err)
		logger.LogRuleFailure(s.Text, s.Err, map[string]interface{}{"line": s.Line})
	}
	if len(programs) == 0 {
		return fmt.Errorf("no valid rules in %s", input)
	}
	fmt.Printf("📜 Loaded %d rules from %s\n", len(programs), input)

	// Load the sample vocabulary
	sample := optimizer.DefaultSample()
	if sampleFile := viper.GetString("optimize_sample"); sampleFile != "" {
		sample, err = readLines(sampleFile)
		if err != nil {
			return err
		}
		if len(sample) == 0 {
			return fmt.Errorf("sample file %s contains no words", sampleFile)
		}
		fmt.Printf("📖 Sample vocabulary: %d words from %s\n", len(sample), sampleFile)
	} else {
		fmt.Printf("📖 Sample vocabulary: %d built-in words\n", len(sample))
	}

	workers := viper.GetInt("optimize_workers")
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	fmt.Printf("⚙️  Workers: %d\n", workers)
	fmt.Println()

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
	optimized, stats, err := optimizer.Optimize(ctx, programs, sample, workers)
	if err != nil {
		return fmt.Errorf("optimization failed: %w", err)
	}

	logger.LogOptimization(stats.OriginalCount, stats.OptimizedCount, stats.ReductionPercent, map[string]interface{}{
		"redundant_groups": stats.RedundantGroups,
		"duration":         time.Since(start).String(),
	})

	output := viper.GetString("optimize_output")
	if err := rulefile.Write(output, optimized, stats); err != nil {
		return fmt.Errorf("failed to write optimized rules: %w", err)
	}

	fmt.Printf("📊 Original:  %d rules\n", stats.OriginalCount)
	fmt.Printf("📊 Optimized: %d rules\n", stats.OptimizedCount)
	fmt.Printf("📊 Removed:   %d redundant rules in %d groups (%.1f%% reduction)\n",
		stats.RemovedCount, stats.RedundantGroups, stats.ReductionPercent)
	fmt.Printf("⏱️  Completed in %s\n", time.Since(start).Round(time.Millisecond))
	fmt.Printf("💾 Optimized rules written to %s\n", output)
	fmt.Println()
	fmt.Println("✨ Optimization completed!")
	return nil
}
