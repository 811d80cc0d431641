package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/clariview/clariview/internal/pipeline"
	"github.com/clariview/clariview/internal/worker"
	"github.com/mmcdole/gofeed"
	"github.com/spf13/cobra"
)

var (
	feedLimit     int
	feedWorkers   int
	feedOutputDir string
	feedTimeout   time.Duration
)

// feedCmd represents the feed command
var feedCmd = &cobra.Command{
	Use:   "feed <feed-url>",
	Short: "Verify the latest articles from an RSS/Atom feed",
	Long: `Feed pulls an RSS or Atom feed and verifies its newest entries:
- Parse the feed and take the first N item links
- Verify the articles in parallel
- Write individual JSON and Markdown reports per article

Example:
  clariview feed https://example.com/rss
  clariview feed https://example.com/rss --limit 5 --workers 4`,
	Args: cobra.ExactArgs(1),
	RunE: runFeed,
}

func init() {
	rootCmd.AddCommand(feedCmd)

	feedCmd.Flags().IntVar(&feedLimit, "limit", 10, "max feed items to verify")
	feedCmd.Flags().IntVar(&feedWorkers, "workers", runtime.NumCPU(), "number of concurrent workers")
	feedCmd.Flags().StringVar(&feedOutputDir, "output-dir", "./clariview-reports", "output directory for reports")
	feedCmd.Flags().DurationVar(&feedTimeout, "timeout", 30*time.Minute, "total timeout for feed processing")

	// Shared verification flags
	feedCmd.Flags().StringVar(&userAgent, "user-agent", "ClariView/0.1 (+https://github.com/clariview/clariview)", "HTTP User-Agent")
	feedCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable search-response cache")
	feedCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	feedCmd.Flags().BoolVar(&noLLM, "no-llm", false, "disable the LLM (heuristic claims, rule-based judgments)")
	feedCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	feedCmd.Flags().StringVar(&llmModel, "model", "", "LLM model name (default per provider)")
}

func runFeed(cmd *cobra.Command, args []string) error {
	feedURL := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), feedTimeout)
	defer cancel()

	parser := gofeed.NewParser()
	parser.UserAgent = userAgent

	if verbose {
		fmt.Fprintf(os.Stderr, "Fetching feed: %s\n", feedURL)
	}

	feed, err := parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return fmt.Errorf("parse feed: %w", err)
	}

	urls := make([]string, 0, feedLimit)
	for _, item := range feed.Items {
		if len(urls) >= feedLimit {
			break
		}
		if item.Link == "" {
			continue
		}
		urls = append(urls, item.Link)
	}
	if len(urls) == 0 {
		return fmt.Errorf("feed %q has no item links", feed.Title)
	}

	fmt.Fprintf(os.Stderr, "✓ Feed %q: verifying %d of %d items\n\n", feed.Title, len(urls), len(feed.Items))

	cfg := buildConfig()

	if err := os.MkdirAll(feedOutputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	processor := worker.NewBatchProcessor(p, feedWorkers)
	results := processor.ProcessURLs(ctx, urls)

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	failureCount := 0

	for _, result := range results {
		if err := result.Err(); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.URL, err)
			continue
		}

		slug := urlSlug(result.URL)
		if err := renderer.RenderJSON(result.Result, filepath.Join(feedOutputDir, slug+".json")); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.URL, err)
			continue
		}
		if err := renderer.RenderMarkdown(result.Result, filepath.Join(feedOutputDir, slug+".md")); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write Markdown: %v\n", result.URL, err)
			continue
		}

		if result.Result.Report != nil {
			fmt.Fprintf(os.Stderr, "✓ %s (score: %.1f%%, status: %s)\n", result.URL, result.Result.Report.Score, result.Result.Status)
		}
	}

	fmt.Fprintf(os.Stderr, "\n  Verified: %d  Failed: %d  Output: %s\n", len(results)-failureCount, failureCount, feedOutputDir)

	if failureCount == len(results) {
		return fmt.Errorf("all %d feed items failed", failureCount)
	}
	return nil
}
