/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: genrules.go
Description: Gen-rules command implementation for the Akaylee Mangler. Generates a
weighted rule set from cached pattern sets, optionally merging multiple caches.
*/

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/akaylee-mangler/pkg/analysis"
	"github.com/kleascm/akaylee-mangler/pkg/cache"
	"github.com/kleascm/akaylee-mangler/pkg/interfaces"
	"github.com/kleascm/akaylee-mangler/pkg/rulefile"
)

// RunGenRules generates rules from cached patterns
func RunGenRules(cmd *cobra.Command, args []string) error {
	fmt.Println("🧬 Akaylee Mangler - Rule Generation from Cache")
	fmt.Println("===============================================")
	fmt.Println()

	// Load configuration first
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Setup logging
	if err := SetupLogging(); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	keys := viper.GetStringSlice("gen_cache_keys")
	if len(keys) == 0 {
		return fmt.Errorf("no cache keys given; run 'caches list' to see available caches")
	}

	store, err := openCacheStore(viper.GetString("gen_cache_dir"))
	if err != nil {
		return fmt.Errorf("failed to open pattern cache: %w", err)
	}

	sets := make([]interfaces.LearnedPatterns, 0, len(keys))
	for _, key := range keys {
		patterns, err := store.Load(key)
		if err != nil {
			return fmt.Errorf("failed to load cache %s: %w", key, err)
		}
		fmt.Printf("🗄️  Loaded cache %s (%s, %d patterns)\n", key, patterns.SourceFile, patterns.TotalPatterns())
		sets = append(sets, patterns)
	}

	patterns := sets[0]
	if len(sets) > 1 {
		patterns = cache.Merge(sets)
		fmt.Printf("🔗 Merged %d caches (%d patterns total)\n", len(sets), patterns.TotalPatterns())
	}
	fmt.Println()

	generated := analysis.GenerateRulesFromPatterns(patterns, viper.GetInt("gen_max_rules"))

	output := viper.GetString("gen_output")
	if err := rulefile.WriteWeighted(output, generated); err != nil {
		return fmt.Errorf("failed to write rules: %w", err)
	}

	fmt.Printf("💾 %d rules written to %s\n", len(generated), output)
	fmt.Println()
	fmt.Println("✨ Rule generation completed!")
	return nil
}
