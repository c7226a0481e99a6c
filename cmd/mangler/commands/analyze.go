/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: analyze.go
Description: Analyze command implementation for the Akaylee Mangler. Mines a leak
corpus for transformation patterns, caches the learned patterns, generates a
weighted rule set, and writes an analysis report.
*/

package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/akaylee-mangler/pkg/analysis"
	"github.com/kleascm/akaylee-mangler/pkg/rulefile"
)

// RunAnalyze executes corpus analysis and rule generation
func RunAnalyze(cmd *cobra.Command, args []string) error {
	fmt.Println("📊 Akaylee Mangler - Corpus Analysis")
	fmt.Println("====================================")
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

	// Load the corpus
	corpusFile := viper.GetString("analyze_corpus")
	passwords, err := readLines(corpusFile)
	if err != nil {
		return err
	}
	if len(passwords) == 0 {
		return fmt.Errorf("corpus %s contains no passwords", corpusFile)
	}
	fmt.Printf("📖 Loaded %d passwords from %s\n", len(passwords), corpusFile)

	// Load the base dictionary if one was given
	var dictionary []string
	if dictFile := viper.GetString("analyze_dictionary"); dictFile != "" {
		dictionary, err = readLines(dictFile)
		if err != nil {
			return err
		}
		fmt.Printf("📚 Loaded %d dictionary words from %s\n", len(dictionary), dictFile)
	}
	fmt.Println()

	// Run the analysis
	start := time.Now()
	fmt.Println("🔍 Analyzing transformation patterns...")
	analyzer := analysis.NewAnalyzer()
	analyzer.Analyze(passwords, dictionary)
	res := analyzer.Results()
	patterns := analyzer.Patterns(corpusFile)

	logger.LogAnalysis(corpusFile, res.TotalPasswords, patterns.TotalPatterns(), map[string]interface{}{
		"inferred_rules": res.InferredTotal,
		"duration":       time.Since(start).String(),
	})

	fmt.Printf("   Suffix patterns:  %d\n", len(patterns.Appends))
	fmt.Printf("   Prefix patterns:  %d\n", len(patterns.Prepends))
	fmt.Printf("   Leet patterns:    %d\n", len(patterns.Leet))
	if len(dictionary) > 0 {
		fmt.Printf("   Inferred rules:   %d passwords matched\n", res.InferredTotal)
	}
	fmt.Println()

	// Cache the learned patterns for later gen-rules runs
	if !viper.GetBool("no_cache") {
		store, err := openCacheStore(viper.GetString("analyze_cache_dir"))
		if err != nil {
			return fmt.Errorf("failed to open pattern cache: %w", err)
		}
		key, err := store.Save(patterns)
		if err != nil {
			return fmt.Errorf("failed to cache patterns: %w", err)
		}
		fmt.Printf("🗄️  Patterns cached with key %s\n", key)
	}

	// Generate the weighted rule set
	maxRules := viper.GetInt("analyze_max_rules")
	generated := analysis.GenerateRules(res, maxRules)

	output := viper.GetString("analyze_output")
	if err := rulefile.WriteWeighted(output, generated); err != nil {
		return fmt.Errorf("failed to write rules: %w", err)
	}
	fmt.Printf("💾 %d rules written to %s\n", len(generated), output)

	// Write the analysis report
	reportFile := viper.GetString("analyze_report")
	if reportFile == "" {
		reportFile = output + "_analysis.txt"
	}
	report, err := os.Create(reportFile)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := analysis.WriteReport(report, res, generated); err != nil {
		report.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := report.Close(); err != nil {
		return fmt.Errorf("failed to close report file: %w", err)
	}
	fmt.Printf("📄 Analysis report written to %s\n", reportFile)

	fmt.Printf("⏱️  Completed in %s\n", time.Since(start).Round(time.Millisecond))
	fmt.Println()
	fmt.Println("✨ Analysis completed!")
	return nil
}
