/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utilities.go
Description: Utility commands for the Akaylee Mangler. Provides the rule operation
reference and pattern cache management (list, validate, cleanup).
*/

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/akaylee-mangler/pkg/cache"
)

// ListOps lists all rule operations and their semantics
func ListOps(cmd *cobra.Command, args []string) {
	fmt.Println("🧬 Akaylee Mangler - Rule Operations")
	fmt.Println("====================================")
	fmt.Println()

	ops := []struct {
		syntax      string
		description string
		example     string
	}{
		{
			syntax:      ":",
			description: "Identity, passes the word through unchanged",
			example:     "password -> password",
		},
		{
			syntax:      "l",
			description: "Lowercases every character",
			example:     "PassWord -> password",
		},
		{
			syntax:      "u",
			description: "Uppercases every character",
			example:     "password -> PASSWORD",
		},
		{
			syntax:      "c",
			description: "Capitalizes the first character, lowercases the rest",
			example:     "passWORD -> Password",
		},
		{
			syntax:      "C",
			description: "Lowercases the first character, uppercases the rest",
			example:     "Password -> pASSWORD",
		},
		{
			syntax:      "t",
			description: "Toggles the case of every character",
			example:     "PassWord -> pASSwORD",
		},
		{
			syntax:      "r",
			description: "Reverses the word",
			example:     "password -> drowssap",
		},
		{
			syntax:      "d",
			description: "Duplicates the whole word",
			example:     "pass -> passpass",
		},
		{
			syntax:      "z",
			description: "Duplicates the first character",
			example:     "pass -> ppass",
		},
		{
			syntax:      "Z",
			description: "Duplicates the last character",
			example:     "pass -> passs",
		},
		{
			syntax:      "$X",
			description: "Appends character X",
			example:     "$1: pass -> pass1",
		},
		{
			syntax:      "^X",
			description: "Prepends character X",
			example:     "^1: pass -> 1pass",
		},
		{
			syntax:      "sXY",
			description: "Substitutes every occurrence of X with Y",
			example:     "sa@: password -> p@ssword",
		},
		{
			syntax:      "@X",
			description: "Purges every occurrence of X",
			example:     "@s: password -> paword",
		},
	}

	for _, op := range ops {
		fmt.Printf("  %-4s %s\n", op.syntax, op.description)
		fmt.Printf("       Example: %s\n", op.example)
		fmt.Println()
	}

	fmt.Println("✨ Operations compose left to right into a rule, e.g. c$1$2$3")
	fmt.Println("   Rules operate on characters, so multibyte input is safe")
}

// RunCachesList lists cached pattern sets
func RunCachesList(cmd *cobra.Command, args []string) error {
	fmt.Println("🗄️  Akaylee Mangler - Pattern Caches")
	fmt.Println("===================================")
	fmt.Println()

	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	store, err := openCacheStore(viper.GetString("list_cache_dir"))
	if err != nil {
		return fmt.Errorf("failed to open pattern cache: %w", err)
	}

	entries, err := store.List()
	if err != nil {
		return fmt.Errorf("failed to list caches: %w", err)
	}

	if len(entries) == 0 {
		fmt.Printf("📭 No caches in %s\n", store.Dir())
		fmt.Println("   Run 'analyze' on a corpus to create one.")
		return nil
	}

	fmt.Printf("📁 Cache directory: %s\n", store.Dir())
	fmt.Println()
	for i, entry := range entries {
		fmt.Printf("%d. %s\n", i+1, entry.Key)
		fmt.Printf("   Source:   %s\n", entry.SourceFile)
		fmt.Printf("   Cached:   %s\n", entry.CachedAt.Format("2006-01-02 15:04:05"))
		fmt.Printf("   Patterns: %d appends, %d prepends, %d leet\n", entry.Appends, entry.Prepends, entry.Leet)
		fmt.Println()
	}

	fmt.Printf("📊 %d cached pattern sets\n", len(entries))
	return nil
}

// RunCachesValidate validates a cached pattern set
func RunCachesValidate(cmd *cobra.Command, args []string) error {
	fmt.Println("🔍 Akaylee Mangler - Cache Validation")
	fmt.Println("=====================================")
	fmt.Println()

	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	key := viper.GetString("validate_cache_key")
	file := viper.GetString("validate_cache_file")

	store, err := openCacheStore(viper.GetString("validate_cache_dir"))
	if err != nil {
		return fmt.Errorf("failed to open pattern cache: %w", err)
	}

	var report cache.Report
	switch {
	case key != "":
		fmt.Printf("🔍 Validating cache %s...\n", key)
		report = store.Validate(key)
	case file != "":
		fmt.Printf("🔍 Validating file %s...\n", file)
		report = cache.ValidateFile(file)
	default:
		return fmt.Errorf("either --cache-key or --cache-file must be provided")
	}
	fmt.Println()

	for _, msg := range report.Errors {
		fmt.Printf("❌ ERROR: %s\n", msg)
	}
	for _, msg := range report.Warnings {
		fmt.Printf("⚠️  WARNING: %s\n", msg)
	}

	if report.Valid {
		fmt.Printf("✅ Cache is valid (%d patterns)\n", report.Patterns)
		return nil
	}
	return fmt.Errorf("cache validation failed with %d errors", len(report.Errors))
}

// RunCachesCleanup removes old pattern caches
func RunCachesCleanup(cmd *cobra.Command, args []string) error {
	fmt.Println("🧹 Akaylee Mangler - Cache Cleanup")
	fmt.Println("==================================")
	fmt.Println()

	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	store, err := openCacheStore(viper.GetString("cleanup_cache_dir"))
	if err != nil {
		return fmt.Errorf("failed to open pattern cache: %w", err)
	}

	olderThan := viper.GetDuration("cleanup_older_than")
	if viper.GetBool("cleanup_all") {
		olderThan = 0
		fmt.Println("🧹 Removing all caches...")
	} else {
		fmt.Printf("🧹 Removing caches older than %s...\n", olderThan)
	}

	removed, err := store.Cleanup(olderThan)
	if err != nil {
		return fmt.Errorf("cleanup failed: %w", err)
	}

	fmt.Printf("📊 Removed %d caches from %s\n", removed, store.Dir())
	fmt.Println()
	fmt.Println("✨ Cleanup completed!")
	return nil
}
