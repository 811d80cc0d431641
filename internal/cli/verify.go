package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/clariview/clariview/internal/model"
	"github.com/clariview/clariview/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outJSON      string
	outMD        string
	timeout      time.Duration
	userAgent    string
	maxBytes     int64
	noCache      bool
	cacheDir     string
	noFooter     bool
	noRobots     bool
	insecureTLS  bool
	httpProxy    string
	httpsProxy   string
	noProxy      string
	noLLM        bool
	llmProvider  string
	llmModel     string
	maxResults   int
	claimWorkers int
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <url>",
	Short: "Verify a single news article URL",
	Long: `Verify fetches a news article and assesses its authenticity:
- Extract the article text and derive its factual claims
- Search authoritative news and fact-checking sources per claim
- Judge each claim against its evidence and assign a verdict
- Aggregate verdicts into an authenticity score
- For credible articles, find opposing viewpoint coverage

Requires TAVILY_API_KEY for evidence search. With OPENAI_API_KEY set,
claims are derived and judged by the model; without it, sentence
heuristics and counting rules take over.

Example:
  clariview verify https://example.com/news/article
  clariview verify https://example.com/news/article --json report.json --md report.md
  clariview verify https://example.com/news/article --no-llm --claim-workers 4`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	// Output flags
	verifyCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	verifyCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	verifyCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// HTTP flags
	verifyCmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "overall verification timeout")
	verifyCmd.Flags().StringVar(&userAgent, "user-agent", "ClariView/0.1 (+https://github.com/clariview/clariview)", "HTTP User-Agent")
	verifyCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	verifyCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification (use for self-signed certs)")
	verifyCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	verifyCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
	verifyCmd.Flags().StringVar(&noProxy, "no-proxy", "", "comma-separated hosts that bypass the proxy")
	verifyCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip robots.txt checks")

	// Cache flags
	verifyCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable search-response cache")
	verifyCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "persist search responses to this directory")

	// Search and LLM flags
	verifyCmd.Flags().IntVar(&maxResults, "max-results", 10, "evidence search results per claim")
	verifyCmd.Flags().BoolVar(&noLLM, "no-llm", false, "disable the LLM (heuristic claims, rule-based judgments)")
	verifyCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	verifyCmd.Flags().StringVar(&llmModel, "model", "", "LLM model name (default per provider)")

	// Concurrency flags
	verifyCmd.Flags().IntVar(&claimWorkers, "claim-workers", 1, "parallel claim verifications")
}

// buildConfig assembles the run configuration from flags and
// environment. Shared by verify, batch, and feed.
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = 30 * time.Second
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.HTTP.InsecureTLS = insecureTLS
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	cfg.HTTP.NoProxy = noProxy
	cfg.HTTP.RespectRobots = !noRobots
	cfg.Search.APIKey = os.Getenv("TAVILY_API_KEY")
	if maxResults > 0 {
		cfg.Search.MaxResults = maxResults
	}
	cfg.Cache.Enabled = !noCache
	cfg.Cache.Dir = cacheDir
	cfg.Concurrency.ClaimWorkers = claimWorkers
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	configureLLM(cfg)
	return cfg
}

// configureLLM decides the provider. No key is not an error: the
// pipeline degrades to heuristics and counting rules.
func configureLLM(cfg *model.Config) {
	if noLLM {
		cfg.LLM.Provider = ""
		return
	}

	cfg.LLM.Provider = llmProvider
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}

	switch llmProvider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			if verbose {
				fmt.Fprintln(os.Stderr, "OPENAI_API_KEY not set, falling back to rule-based analysis")
			}
			cfg.LLM.Provider = ""
		}
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}
}

func runVerify(cmd *cobra.Command, args []string) error {
	url := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Verifying: %s\n", url)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", !noCache)
		fmt.Fprintln(os.Stderr)
	}

	cfg := buildConfig()
	cfg.HTTP.Timeout = minDuration(timeout, 30*time.Second)

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	result := p.VerifyURL(ctx, url)

	if err := p.RenderResult(result, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if result.Status == model.StatusFailed {
		return fmt.Errorf("verification failed: %s", result.Reason)
	}
	return nil
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
