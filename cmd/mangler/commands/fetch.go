/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: fetch.go
Description: Fetch command implementation for the Akaylee Mangler. Builds a wordlist
from local files, remote wordlists over HTTP, and scraped web pages, deduplicating
across sources.
*/

package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/akaylee-mangler/pkg/interfaces"
	"github.com/kleascm/akaylee-mangler/pkg/wordlist"
)

// RunFetch builds a wordlist from the configured sources
func RunFetch(cmd *cobra.Command, args []string) error {
	fmt.Println("🌐 Akaylee Mangler - Wordlist Fetch")
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

	format := viper.GetString("fetch_format")
	timeout := viper.GetDuration("fetch_timeout")
	selector := viper.GetString("fetch_selector")

	var sources []interfaces.WordSource
	for _, path := range viper.GetStringSlice("fetch_files") {
		sources = append(sources, wordlist.NewFileSource(path, "local wordlist", path, format))
	}
	for _, url := range viper.GetStringSlice("fetch_urls") {
		sources = append(sources, wordlist.NewHTTPSource(url, "remote wordlist", url, format, timeout))
	}
	for _, url := range viper.GetStringSlice("fetch_scrape") {
		sources = append(sources, wordlist.NewHTMLSource(url, "scraped page", url, selector, timeout))
	}
	if len(sources) == 0 {
		return fmt.Errorf("no sources given; use --file, --url, or --scrape")
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
	seen := make(map[string]struct{})
	var words []string
	var fetched int64

	for _, source := range sources {
		fmt.Printf("🔍 Fetching %s... ", source.Name())
		batch, err := source.FetchWords(ctx)
		if err != nil {
			fmt.Printf("❌ FAILED: %v\n", err)
			logger.Warning("Wordlist source failed", map[string]interface{}{
				"source": source.Name(),
				"error":  err.Error(),
			})
			continue
		}
		fetched += int64(len(batch))
		added := 0
		for _, word := range batch {
			if _, dup := seen[word]; dup {
				continue
			}
			seen[word] = struct{}{}
			words = append(words, word)
			added++
		}
		fmt.Printf("✅ %d words (%d new)\n", len(batch), added)
	}

	if len(words) == 0 {
		return fmt.Errorf("no words fetched from any source")
	}

	output := viper.GetString("fetch_output")
	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	w := bufio.NewWriter(out)
	for _, word := range words {
		if _, err := w.WriteString(word + "\n"); err != nil {
			out.Close()
			return fmt.Errorf("failed to write word: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		out.Close()
		return fmt.Errorf("failed to flush output: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}

	logger.LogStats(fetched, int64(len(words)), int64(len(words)), map[string]interface{}{
		"sources":  len(sources),
		"duration": time.Since(start).String(),
	})

	fmt.Println()
	fmt.Printf("📊 %d unique words from %d sources\n", len(words), len(sources))
	fmt.Printf("⏱️  Completed in %s\n", time.Since(start).Round(time.Millisecond))
	fmt.Printf("💾 Wordlist written to %s\n", output)
	fmt.Println()
	fmt.Println("✨ Fetch completed!")
	return nil
}
