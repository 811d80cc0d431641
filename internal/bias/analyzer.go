package bias

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/clariview/clariview/internal/llm"
	"github.com/clariview/clariview/internal/model"
	"github.com/clariview/clariview/internal/search"
	"github.com/clariview/clariview/internal/sources"
)

const opposingSystem = "You create opposing search queries for given claims."

// Analyzer runs the bias pass: for each claim, derive a search query
// for the opposite editorial stance, search, and keep the news URLs.
// Only reached when the article already cleared the authenticity gate.
type Analyzer struct {
	provider   llm.Provider
	searcher   search.Searcher
	blocklist  *sources.Blocklist
	queryModel string
	maxResults int
	verbose    bool
}

// NewAnalyzer creates an analyzer. provider may be nil; queries then
// come from the deterministic fallback form.
func NewAnalyzer(provider llm.Provider, searcher search.Searcher, blocklist *sources.Blocklist, queryModel string, maxResults int) *Analyzer {
	if maxResults <= 0 {
		maxResults = 5
	}
	return &Analyzer{
		provider:   provider,
		searcher:   searcher,
		blocklist:  blocklist,
		queryModel: queryModel,
		maxResults: maxResults,
	}
}

// SetVerbose enables per-claim progress logging to stderr.
func (a *Analyzer) SetVerbose(v bool) { a.verbose = v }

// Analyze processes every claim and returns the per-claim findings
// plus one run-scoped URL list, deduplicated in first-seen order. A
// failing claim is logged and skipped; the pass itself never fails.
func (a *Analyzer) Analyze(ctx context.Context, claims []model.Claim) ([]model.BiasFinding, []string) {
	findings := make([]model.BiasFinding, 0, len(claims))
	var opposing []string
	seen := make(map[string]bool)

	for i, claim := range claims {
		if a.verbose {
			fmt.Fprintf(os.Stderr, "   ⚖️  Opposing stance %d/%d: %s\n", i+1, len(claims), preview(claim.Text, 50))
		}

		query := a.deriveQuery(ctx, claim.Text)

		raw, err := a.searcher.Search(ctx, query, a.maxResults)
		if err != nil {
			if a.verbose {
				fmt.Fprintf(os.Stderr, "     → search failed, skipping: %v\n", err)
			}
			continue
		}

		finding := model.BiasFinding{Claim: claim.Text, Query: query}
		for _, record := range search.Records(raw) {
			source, ok := search.SourceFromRecord(record)
			if !ok {
				continue
			}
			if a.blocklist.Blocked(source.URL) {
				continue
			}

			finding.URLs = append(finding.URLs, source.URL)
			if !seen[source.URL] {
				seen[source.URL] = true
				opposing = append(opposing, source.URL)
			}
		}

		findings = append(findings, finding)

		if a.verbose {
			fmt.Fprintf(os.Stderr, "     → %d opposing articles for this claim\n", len(finding.URLs))
		}
	}

	return findings, opposing
}

// deriveQuery asks the model for an opposite-stance search query. Any
// failure, including no provider at all, falls back to the fixed
// keyword form so the pass still works without a language model.
func (a *Analyzer) deriveQuery(ctx context.Context, claim string) string {
	if a.provider == nil {
		return fallbackQuery(claim)
	}

	prompt := fmt.Sprintf(`Take this claim and create the exact opposite viewpoint or tone:

Original claim: %s

Create a search query that would find articles with the opposite viewpoint. Make it specific and focused (max 10 words):`, claim)

	reply, err := a.provider.Complete(ctx, llm.CompletionRequest{
		System:      opposingSystem,
		Prompt:      prompt,
		Model:       a.queryModel,
		MaxTokens:   100,
		Temperature: 0.5,
	})
	if err != nil {
		if a.verbose {
			fmt.Fprintf(os.Stderr, "     → query derivation failed, using fallback: %v\n", err)
		}
		return fallbackQuery(claim)
	}

	query := cleanQuery(reply)
	if query == "" {
		return fallbackQuery(claim)
	}
	return query
}

// cleanQuery strips the decoration models wrap queries in.
func cleanQuery(reply string) string {
	query := strings.ReplaceAll(reply, `"`, "")
	query = strings.ReplaceAll(query, "Search query:", "")
	return strings.TrimSpace(query)
}

// fallbackQuery builds the deterministic opposite-stance query from
// the claim's leading words.
func fallbackQuery(claim string) string {
	words := strings.Fields(claim)
	if len(words) > 5 {
		words = words[:5]
	}
	return strings.Join(words, " ") + " problems criticism disadvantages"
}

func preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
