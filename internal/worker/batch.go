package worker

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/clariview/clariview/internal/model"
)

// Verifier runs one full article verification.
type Verifier interface {
	VerifyURL(ctx context.Context, url string) *model.RunResult
}

// VerifyJob verifies one URL on the pool.
type VerifyJob struct {
	URL      string
	Verifier Verifier
}

// Execute runs the verification.
func (j *VerifyJob) Execute(ctx context.Context) Result {
	return &URLResult{
		URL:    j.URL,
		Result: j.Verifier.VerifyURL(ctx, j.URL),
	}
}

// URLResult pairs a URL with its run outcome.
type URLResult struct {
	URL    string
	Result *model.RunResult
}

// Err surfaces a structured run failure as an error for pool callers.
func (r *URLResult) Err() error {
	if r.Result != nil && r.Result.Status == model.StatusFailed {
		return errors.New(r.Result.Reason)
	}
	return nil
}

// BatchProcessor verifies many URLs concurrently.
type BatchProcessor struct {
	verifier Verifier
	workers  int
}

// NewBatchProcessor creates a batch processor running on workers
// goroutines.
func NewBatchProcessor(verifier Verifier, workers int) *BatchProcessor {
	return &BatchProcessor{
		verifier: verifier,
		workers:  workers,
	}
}

// ProcessURLs verifies every URL and returns the results as they
// completed. Order is not preserved; each result carries its URL.
func (b *BatchProcessor) ProcessURLs(ctx context.Context, urls []string) []*URLResult {
	if len(urls) == 0 {
		return []*URLResult{}
	}

	pool := NewPool(b.workers)
	pool.Start()

	for _, url := range urls {
		pool.Submit(&VerifyJob{URL: url, Verifier: b.verifier})
	}

	results := pool.Wait()

	out := make([]*URLResult, 0, len(results))
	for _, result := range results {
		if r, ok := result.(*URLResult); ok {
			out = append(out, r)
		}
	}
	return out
}

// ProcessFile reads a URL list file and verifies every entry.
func (b *BatchProcessor) ProcessFile(ctx context.Context, path string) ([]*URLResult, error) {
	urls, err := ReadURLsFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("read URLs: %w", err)
	}
	return b.ProcessURLs(ctx, urls), nil
}

// ReadURLsFromFile reads one URL per line, skipping blank lines and #
// comments, dropping duplicates while keeping first-seen order.
func ReadURLsFromFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var urls []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if seen[line] {
			continue
		}
		seen[line] = true
		urls = append(urls, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return urls, nil
}
