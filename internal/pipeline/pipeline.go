package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/clariview/clariview/internal/bias"
	"github.com/clariview/clariview/internal/cache"
	"github.com/clariview/clariview/internal/extract"
	"github.com/clariview/clariview/internal/judge"
	"github.com/clariview/clariview/internal/llm"
	"github.com/clariview/clariview/internal/model"
	"github.com/clariview/clariview/internal/score"
	"github.com/clariview/clariview/internal/search"
	"github.com/clariview/clariview/internal/sources"
	"github.com/clariview/clariview/internal/verdict"
	"github.com/clariview/clariview/internal/verify"
)

// Low-authenticity warning messages, selected by failure mode.
const (
	warnFakeNews = "🚨 FAKE NEWS ALERT! Our analysis found contradictory information and no credible sources supporting these claims. This appears to be misinformation. Please verify with trusted news outlets! 🚨"

	warnZeroScore = "⚠️ CREDIBILITY WARNING: Zero authoritative sources found for this information. This might be fake news or unverified content. Always cross-check with reliable news sources! 📰❌"

	warnUnverified = "🔍 VERIFICATION FAILED: No credible sources could verify these claims. This content may be fabricated or misleading. Trust but verify - check multiple reliable news sources first! 🛡️"
)

// Narrow collaborator interfaces so tests can substitute stubs.

type articleFetcher interface {
	FetchWithRetry(ctx context.Context, rawURL string) (*FetchResult, error)
}

type contentExtractor interface {
	Extract(htmlContent, requestedURL, finalURL string) (*model.Article, error)
}

type claimDeriver interface {
	Derive(ctx context.Context, content, title string) []model.Claim
}

type claimVerifier interface {
	VerifyAll(ctx context.Context, claims []model.Claim) []model.ClaimReport
}

type biasAnalyzer interface {
	Analyze(ctx context.Context, claims []model.Claim) ([]model.BiasFinding, []string)
}

// Pipeline is the workflow controller: extract, derive claims, verify,
// aggregate, then route on the score. One branch point; everything
// else is a straight line.
type Pipeline struct {
	fetcher    articleFetcher
	extractor  contentExtractor
	deriver    claimDeriver
	verifier   claimVerifier
	analyzer   biasAnalyzer
	aggregator *score.Aggregator
	renderer   *Renderer
	config     *model.Config
}

// NewPipeline wires the real collaborators from configuration. Missing
// required configuration (the search API key) is a constructor error,
// not a mid-run surprise.
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}

	store := cache.New(cfg.Cache)

	searchClient, err := search.NewClient(cfg.Search, store)
	if err != nil {
		return nil, fmt.Errorf("configure search: %w", err)
	}
	if cfg.Cache.TTL > 0 {
		searchClient.SetCacheTTL(cfg.Cache.TTL)
	}

	provider, err := llm.NewProvider(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("configure LLM provider: %w", err)
	}

	classifier := sources.NewClassifier(&cfg.Sources)
	collector := search.NewCollector(searchClient, classifier, cfg.Search.MaxResults)
	claimJudge := judge.New(provider, cfg.LLM)
	policy := verdict.NewPolicy(&cfg.Policy)

	verifier := verify.NewVerifier(collector, claimJudge, policy, cfg.Concurrency.ClaimWorkers)
	if cfg.Output.Verbose {
		verifier.OnProgress(func(report model.ClaimReport, index, total int) {
			fmt.Fprintf(os.Stderr, "   🔍 Claim %d/%d → %s %s (auth sources: %d, confidence: %d/10)\n",
				index+1, total, report.Verdict.Icon(), report.Verdict,
				report.Evidence.AuthoritativeCount(), report.Judgment.Confidence)
		})
	}

	deriver := extract.NewClaimDeriver(provider, cfg.Claims)
	deriver.SetVerbose(cfg.Output.Verbose)

	analyzer := bias.NewAnalyzer(provider, searchClient, sources.NewBlocklist(&cfg.Sources),
		cfg.LLM.QueryModel, cfg.Search.BiasMaxResults)
	analyzer.SetVerbose(cfg.Output.Verbose)

	fetcher := NewFetcher(cfg.HTTP)
	fetcher.SetVerbose(cfg.Output.Verbose)

	return &Pipeline{
		fetcher:    fetcher,
		extractor:  extract.NewContentExtractor(),
		deriver:    deriver,
		verifier:   verifier,
		analyzer:   analyzer,
		aggregator: score.NewAggregator(&cfg.Scoring),
		renderer:   NewRenderer(cfg.Output.IncludeFooter),
		config:     cfg,
	}, nil
}

// VerifyURL runs one complete verification. It always returns a
// non-nil result carrying exactly one of the three terminal payloads:
// opposing URLs, a warning string, or a failure reason.
func (p *Pipeline) VerifyURL(ctx context.Context, rawURL string) *model.RunResult {
	verbose := p.config.Output.Verbose

	// 1. Fetch and extract content
	if verbose {
		fmt.Fprintf(os.Stderr, "🔍 Extracting content from: %s\n", rawURL)
	}

	fetched, err := p.fetcher.FetchWithRetry(ctx, rawURL)
	if err != nil {
		return model.Failed(rawURL, fmt.Sprintf("Content extraction error: %v", err))
	}

	article, err := p.extractor.Extract(fetched.HTML, rawURL, fetched.FinalURL)
	if err != nil {
		return model.Failed(rawURL, fmt.Sprintf("Content extraction error: %v", err))
	}
	if article.Content == "" {
		return model.Failed(rawURL, "Content extraction failed")
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Extracted %d characters: %s\n", len(article.Content), article.Title)
	}

	// 2. Derive claims
	claims := p.deriver.Derive(ctx, article.Content, article.Title)
	if len(claims) == 0 {
		result := model.Failed(rawURL, "Claim extraction failed")
		result.Article = article
		return result
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Derived %d verifiable claims\n", len(claims))
	}

	// 3. Verify all claims and aggregate
	reports := p.verifier.VerifyAll(ctx, claims)
	report := p.aggregator.Aggregate(reports)
	report.URL = rawURL
	report.Title = article.Title

	if verbose {
		fmt.Fprintf(os.Stderr, "🎯 Authenticity score: %.1f%% (✅ %d  ❌ %d  ⚠️ %d  ❓ %d)\n",
			report.Score, report.Authentic, report.Fake, report.Suspicious, report.Unverifiable)
	}

	result := &model.RunResult{
		Article: article,
		Report:  &report,
	}

	// 4. Route on the score; strictly greater-than the threshold
	if report.Score > p.config.Scoring.RoutingThreshold {
		if verbose {
			fmt.Fprintf(os.Stderr, "⚖️  Score clears %.0f%%, searching for opposing viewpoints\n", p.config.Scoring.RoutingThreshold)
		}
		findings, opposing := p.analyzer.Analyze(ctx, claims)
		result.Status = model.StatusVerified
		result.BiasFindings = findings
		result.OpposingURLs = opposing
		return result
	}

	result.Status = model.StatusLowAuthenticity
	result.Warning = lowAuthenticityWarning(&report)
	return result
}

// lowAuthenticityWarning picks the warning string: fake content first,
// then a zero score, then the generic verification failure.
func lowAuthenticityWarning(report *model.AuthenticityReport) string {
	switch {
	case report.Fake > 0:
		return warnFakeNews
	case report.Score == 0:
		return warnZeroScore
	default:
		return warnUnverified
	}
}

// RenderResult renders the run result to the requested outputs.
func (p *Pipeline) RenderResult(result *model.RunResult, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(result, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(result, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	p.renderer.RenderSummary(result)
	return nil
}
