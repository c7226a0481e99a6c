/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Main command-line interface for the Akaylee Mangler. Provides commands
for applying rule sets to wordlists, inferring rules from observed passwords,
minimizing rule sets, analyzing leak corpora, and managing pattern caches.
*/

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/kleascm/akaylee-mangler/cmd/mangler/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Configuration
	configFile string
	logLevel   string

	// Logging configuration
	logDir      string
	logFormat   string
	logMaxFiles int
	logMaxSize  int64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "akaylee-mangler",
		Short: "Akaylee Mangler - Password mangling rule engine",
		Long: `Akaylee Mangler is a password mangling rule engine for authorized security
assessments. It applies compact transformation rules to wordlists, learns rules
from observed passwords by backward synthesis, minimizes rule sets by behavioral
fingerprinting, and mines transformation patterns from leak corpora.`,
		Version: "1.0.0",
	}

	// Add persistent flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "./logs", "Log output directory")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "custom", "Log format (text, json, custom)")
	rootCmd.PersistentFlags().IntVar(&logMaxFiles, "log-max-files", 10, "Maximum number of log files to keep")
	rootCmd.PersistentFlags().Int64Var(&logMaxSize, "log-max-size", 100*1024*1024, "Maximum log file size in bytes")

	// Bind flags to viper
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_dir", rootCmd.PersistentFlags().Lookup("log-dir"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("log_max_files", rootCmd.PersistentFlags().Lookup("log-max-files"))
	viper.BindPFlag("log_max_size", rootCmd.PersistentFlags().Lookup("log-max-size"))

	// Add apply command
	applyCmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply a rule set to a wordlist",
		Long: `Apply every rule in a rule file to every word in a wordlist and write the
generated candidates. Candidates can be filtered through a password policy so
the output only contains passwords the target system would accept.`,
		RunE: commands.RunApply,
	}

	applyCmd.Flags().String("rules", "", "Rule file to apply (required)")
	applyCmd.Flags().String("wordlist", "", "Wordlist file (required)")
	applyCmd.Flags().String("wordlist-format", "txt", "Wordlist format (txt, csv, json)")
	applyCmd.Flags().String("output", "", "Output file for candidates (required)")
	applyCmd.Flags().Int("workers", 0, "Number of parallel workers (0 = auto-detect)")
	applyCmd.Flags().String("policy", "", "Password policy preset (basic, moderate, strong, enterprise)")
	applyCmd.Flags().Int("max-length", 256, "Maximum candidate length in runes")

	applyCmd.MarkFlagRequired("rules")
	applyCmd.MarkFlagRequired("wordlist")
	applyCmd.MarkFlagRequired("output")

	viper.BindPFlag("rules_file", applyCmd.Flags().Lookup("rules"))
	viper.BindPFlag("wordlist_file", applyCmd.Flags().Lookup("wordlist"))
	viper.BindPFlag("wordlist_format", applyCmd.Flags().Lookup("wordlist-format"))
	viper.BindPFlag("output_file", applyCmd.Flags().Lookup("output"))
	viper.BindPFlag("apply_workers", applyCmd.Flags().Lookup("workers"))
	viper.BindPFlag("policy", applyCmd.Flags().Lookup("policy"))
	viper.BindPFlag("max_length", applyCmd.Flags().Lookup("max-length"))

	rootCmd.AddCommand(applyCmd)

	// Add infer command
	inferCmd := &cobra.Command{
		Use:   "infer",
		Short: "Infer mangling rules from observed passwords",
		Long: `Reconstruct the rule that transforms a base word into an observed password.
Works on a single pair (--base/--password) or on a whole corpus against a
dictionary (--corpus/--dictionary), synthesizing rules in parallel.`,
		RunE: commands.RunInfer,
	}

	inferCmd.Flags().String("base", "", "Base word for single-pair inference")
	inferCmd.Flags().String("password", "", "Observed password for single-pair inference")
	inferCmd.Flags().String("corpus", "", "Password corpus file for batch inference")
	inferCmd.Flags().String("dictionary", "", "Base dictionary file for batch inference")
	inferCmd.Flags().String("output", "", "Output rule file (default: print to stdout)")
	inferCmd.Flags().Int("workers", 0, "Number of parallel workers (0 = auto-detect)")

	viper.BindPFlag("infer_base", inferCmd.Flags().Lookup("base"))
	viper.BindPFlag("infer_password", inferCmd.Flags().Lookup("password"))
	viper.BindPFlag("infer_corpus", inferCmd.Flags().Lookup("corpus"))
	viper.BindPFlag("infer_dictionary", inferCmd.Flags().Lookup("dictionary"))
	viper.BindPFlag("infer_output", inferCmd.Flags().Lookup("output"))
	viper.BindPFlag("infer_workers", inferCmd.Flags().Lookup("workers"))

	rootCmd.AddCommand(inferCmd)

	// Add optimize command
	optimizeCmd := &cobra.Command{
		Use:   "optimize",
		Short: "Remove behaviorally redundant rules from a rule set",
		Long: `Fingerprint every rule by the outputs it produces over a sample vocabulary
and keep one representative per behavior group. Typical corpus-derived rule
sets shrink considerably without losing any coverage.`,
		RunE: commands.RunOptimize,
	}

	optimizeCmd.Flags().String("input", "", "Rule file to optimize (required)")
	optimizeCmd.Flags().String("output", "", "Output file for the optimized set (required)")
	optimizeCmd.Flags().String("sample", "", "Sample vocabulary file (default: built-in sample)")
	optimizeCmd.Flags().Int("workers", 0, "Number of parallel workers (0 = auto-detect)")

	optimizeCmd.MarkFlagRequired("input")
	optimizeCmd.MarkFlagRequired("output")

	viper.BindPFlag("optimize_input", optimizeCmd.Flags().Lookup("input"))
	viper.BindPFlag("optimize_output", optimizeCmd.Flags().Lookup("output"))
	viper.BindPFlag("optimize_sample", optimizeCmd.Flags().Lookup("sample"))
	viper.BindPFlag("optimize_workers", optimizeCmd.Flags().Lookup("workers"))

	rootCmd.AddCommand(optimizeCmd)

	// Add analyze command
	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a leak corpus and generate rules from its patterns",
		Long: `Mine a password corpus for transformation patterns (suffixes, prefixes, leet
substitutions, case habits), cache the learned patterns for reuse, and generate
a frequency-weighted rule set plus a human-readable analysis report.`,
		RunE: commands.RunAnalyze,
	}

	analyzeCmd.Flags().String("corpus", "", "Password corpus file to analyze (required)")
	analyzeCmd.Flags().String("dictionary", "", "Base dictionary for transformation inference")
	analyzeCmd.Flags().String("output", "", "Output rule file (required)")
	analyzeCmd.Flags().String("report", "", "Analysis report file (default: <output>_analysis.txt)")
	analyzeCmd.Flags().Int("max-rules", 1000, "Maximum number of rules to generate")
	analyzeCmd.Flags().String("cache-dir", "", "Pattern cache directory (default: user cache dir)")
	analyzeCmd.Flags().Bool("no-cache", false, "Skip caching the learned patterns")

	analyzeCmd.MarkFlagRequired("corpus")
	analyzeCmd.MarkFlagRequired("output")

	viper.BindPFlag("analyze_corpus", analyzeCmd.Flags().Lookup("corpus"))
	viper.BindPFlag("analyze_dictionary", analyzeCmd.Flags().Lookup("dictionary"))
	viper.BindPFlag("analyze_output", analyzeCmd.Flags().Lookup("output"))
	viper.BindPFlag("analyze_report", analyzeCmd.Flags().Lookup("report"))
	viper.BindPFlag("analyze_max_rules", analyzeCmd.Flags().Lookup("max-rules"))
	viper.BindPFlag("analyze_cache_dir", analyzeCmd.Flags().Lookup("cache-dir"))
	viper.BindPFlag("no_cache", analyzeCmd.Flags().Lookup("no-cache"))

	rootCmd.AddCommand(analyzeCmd)

	// Add gen-rules command
	genRulesCmd := &cobra.Command{
		Use:   "gen-rules",
		Short: "Generate rules from cached patterns",
		Long: `Generate a weighted rule set from previously cached pattern sets without
re-analyzing the corpus. Multiple caches can be merged into one rule set.`,
		RunE: commands.RunGenRules,
	}

	genRulesCmd.Flags().StringSlice("cache-key", []string{}, "Cache key(s) to load; multiple keys are merged")
	genRulesCmd.Flags().String("cache-dir", "", "Pattern cache directory (default: user cache dir)")
	genRulesCmd.Flags().String("output", "", "Output rule file (required)")
	genRulesCmd.Flags().Int("max-rules", 100, "Maximum number of rules to generate")

	genRulesCmd.MarkFlagRequired("output")

	viper.BindPFlag("gen_cache_keys", genRulesCmd.Flags().Lookup("cache-key"))
	viper.BindPFlag("gen_cache_dir", genRulesCmd.Flags().Lookup("cache-dir"))
	viper.BindPFlag("gen_output", genRulesCmd.Flags().Lookup("output"))
	viper.BindPFlag("gen_max_rules", genRulesCmd.Flags().Lookup("max-rules"))

	rootCmd.AddCommand(genRulesCmd)

	// Add fetch command
	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Build a wordlist from files, URLs, and scraped pages",
		Long: `Fetch words from local files, remote wordlists over HTTP, and scraped web
pages, deduplicate across every source, and write a single wordlist.`,
		RunE: commands.RunFetch,
	}

	fetchCmd.Flags().StringSlice("file", []string{}, "Local wordlist file(s)")
	fetchCmd.Flags().StringSlice("url", []string{}, "Remote wordlist URL(s)")
	fetchCmd.Flags().StringSlice("scrape", []string{}, "Web page URL(s) to harvest words from")
	fetchCmd.Flags().String("selector", "", "CSS selector for scraped pages (default: whole body)")
	fetchCmd.Flags().String("format", "txt", "Wordlist format for files and URLs (txt, csv, json)")
	fetchCmd.Flags().Duration("timeout", 30*time.Second, "HTTP timeout per source")
	fetchCmd.Flags().String("output", "", "Output wordlist file (required)")

	fetchCmd.MarkFlagRequired("output")

	viper.BindPFlag("fetch_files", fetchCmd.Flags().Lookup("file"))
	viper.BindPFlag("fetch_urls", fetchCmd.Flags().Lookup("url"))
	viper.BindPFlag("fetch_scrape", fetchCmd.Flags().Lookup("scrape"))
	viper.BindPFlag("fetch_selector", fetchCmd.Flags().Lookup("selector"))
	viper.BindPFlag("fetch_format", fetchCmd.Flags().Lookup("format"))
	viper.BindPFlag("fetch_timeout", fetchCmd.Flags().Lookup("timeout"))
	viper.BindPFlag("fetch_output", fetchCmd.Flags().Lookup("output"))

	rootCmd.AddCommand(fetchCmd)

	// Add list-ops command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "list-ops",
		Short: "List rule operations and their semantics",
		Long:  `List every rule operation the engine understands, with examples.`,
		Run:   commands.ListOps,
	})

	// Add caches command with subcommands
	cachesCmd := &cobra.Command{
		Use:   "caches",
		Short: "Manage pattern caches",
		Long:  `List, validate, and clean up cached pattern sets.`,
	}

	cachesListCmd := &cobra.Command{
		Use:   "list",
		Short: "List cached pattern sets",
		RunE:  commands.RunCachesList,
	}
	cachesListCmd.Flags().String("cache-dir", "", "Pattern cache directory (default: user cache dir)")
	viper.BindPFlag("list_cache_dir", cachesListCmd.Flags().Lookup("cache-dir"))

	cachesValidateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a cached pattern set",
		RunE:  commands.RunCachesValidate,
	}
	cachesValidateCmd.Flags().String("cache-key", "", "Cache key to validate")
	cachesValidateCmd.Flags().String("cache-file", "", "Cache file to validate directly")
	cachesValidateCmd.Flags().String("cache-dir", "", "Pattern cache directory (default: user cache dir)")
	viper.BindPFlag("validate_cache_key", cachesValidateCmd.Flags().Lookup("cache-key"))
	viper.BindPFlag("validate_cache_file", cachesValidateCmd.Flags().Lookup("cache-file"))
	viper.BindPFlag("validate_cache_dir", cachesValidateCmd.Flags().Lookup("cache-dir"))

	cachesCleanupCmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Remove old pattern caches",
		RunE:  commands.RunCachesCleanup,
	}
	cachesCleanupCmd.Flags().Duration("older-than", 30*24*time.Hour, "Remove caches older than this age")
	cachesCleanupCmd.Flags().Bool("all", false, "Remove every cache regardless of age")
	cachesCleanupCmd.Flags().String("cache-dir", "", "Pattern cache directory (default: user cache dir)")
	viper.BindPFlag("cleanup_older_than", cachesCleanupCmd.Flags().Lookup("older-than"))
	viper.BindPFlag("cleanup_all", cachesCleanupCmd.Flags().Lookup("all"))
	viper.BindPFlag("cleanup_cache_dir", cachesCleanupCmd.Flags().Lookup("cache-dir"))

	cachesCmd.AddCommand(cachesListCmd, cachesValidateCmd, cachesCleanupCmd)
	rootCmd.AddCommand(cachesCmd)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
