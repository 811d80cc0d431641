package model

import "time"

// Config is the process-wide configuration, constructed once at startup
// and passed into each component. All tables and thresholds are read-only
// after construction.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	Search      SearchConfig      `yaml:"search"`
	LLM         LLMConfig         `yaml:"llm"`
	Policy      PolicyConfig      `yaml:"policy"`
	Scoring     ScoringConfig     `yaml:"scoring"`
	Claims      ClaimsConfig      `yaml:"claims"`
	Sources     SourcesConfig     `yaml:"sources"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
}

// HTTPConfig controls article fetching.
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout"`        // Per-request timeout
	UserAgent     string        `yaml:"user_agent"`     // Sent on every fetch
	MaxBodyBytes  int64         `yaml:"max_body_bytes"` // Response read cap
	MaxRedirects  int           `yaml:"max_redirects"`
	MaxRetries    int           `yaml:"max_retries"` // Fetch attempts on transient failures
	InsecureTLS   bool          `yaml:"insecure_tls"`
	RespectRobots bool          `yaml:"respect_robots"` // Check robots.txt before fetching
	PerHostRPS    float64       `yaml:"per_host_rps"`   // Fetch pacing per host
	PerHostBurst  int           `yaml:"per_host_burst"`
	HTTPProxy     string        `yaml:"http_proxy,omitempty"`
	HTTPSProxy    string        `yaml:"https_proxy,omitempty"`
	NoProxy       string        `yaml:"no_proxy,omitempty"`
}

// SearchConfig controls the evidence search backend.
type SearchConfig struct {
	APIKey         string        `yaml:"api_key,omitempty"` // Required; TAVILY_API_KEY
	BaseURL        string        `yaml:"base_url"`
	Timeout        time.Duration `yaml:"timeout"`
	MaxResults     int           `yaml:"max_results"`      // Evidence search result cap
	BiasMaxResults int           `yaml:"bias_max_results"` // Opposite-stance search result cap
	RequestsPerSec float64       `yaml:"requests_per_sec"` // API pacing
	Burst          int           `yaml:"burst"`
}

// LLMConfig controls the language-model collaborator. An empty Provider
// disables the model: judgment falls back to counting rules, claim
// derivation to the sentence heuristic.
type LLMConfig struct {
	Provider   string        `yaml:"provider,omitempty"` // "openai", "ollama", or "" (disabled)
	Model      string        `yaml:"model"`              // Judgment and claim derivation
	QueryModel string        `yaml:"query_model"`        // Opposite-stance query derivation
	APIKey     string        `yaml:"api_key,omitempty"`
	BaseURL    string        `yaml:"base_url,omitempty"` // Override for OpenAI-compatible endpoints
	Timeout    time.Duration `yaml:"timeout"`
	MaxTokens  int           `yaml:"max_tokens"` // Judgment reply budget
}

// PolicyConfig holds the verdict thresholds. Defaults reproduce the
// strict criteria; override only deliberately.
type PolicyConfig struct {
	StrongConfidence   int `yaml:"strong_confidence"`   // AUTHENTIC rule 1 confidence floor
	StrongSources      int `yaml:"strong_sources"`      // AUTHENTIC rule 1 source floor
	StandardConfidence int `yaml:"standard_confidence"` // AUTHENTIC rule 2 confidence floor
	StandardSources    int `yaml:"standard_sources"`    // AUTHENTIC rule 2 source floor
	FakeConfidence     int `yaml:"fake_confidence"`     // FAKE confidence floor when zero authoritative sources
}

// ScoringConfig holds aggregation and routing parameters.
type ScoringConfig struct {
	RoutingThreshold  float64 `yaml:"routing_threshold"`  // Bias pass gate, strict greater-than
	FakePenalty       float64 `yaml:"fake_penalty"`       // Multiplier when any claim is FAKE
	SuspiciousPenalty float64 `yaml:"suspicious_penalty"` // Multiplier when SUSPICIOUS outnumber AUTHENTIC
}

// ClaimsConfig bounds claim derivation.
type ClaimsConfig struct {
	MaxClaims       int `yaml:"max_claims"`        // Upper bound asked of the model
	HeuristicClaims int `yaml:"heuristic_claims"`  // Count produced by the sentence fallback
	MaxContentChars int `yaml:"max_content_chars"` // Article characters embedded in the prompt
}

// SourcesConfig carries the domain tables. The groups are informational;
// classification flattens them.
type SourcesConfig struct {
	International     []string `yaml:"international"`
	RegionalSouthAsia []string `yaml:"regional_south_asia"`
	FactCheckers      []string `yaml:"fact_checkers"`
	Blocked           []string `yaml:"blocked"` // Social/video/messaging platforms excluded from bias results
}

// CacheConfig controls search-response caching.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir,omitempty"` // When set, a disk layer backs the memory layer
	TTL     time.Duration `yaml:"ttl"`
}

// ConcurrencyConfig bounds parallel work.
type ConcurrencyConfig struct {
	ClaimWorkers int `yaml:"claim_workers"` // Parallel claim verification; 1 preserves sequential behavior
	BatchWorkers int `yaml:"batch_workers"` // Parallel URL verification in batch mode
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// DefaultConfig returns the standard configuration with the reference
// domain tables and thresholds.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:       30 * time.Second,
			UserAgent:     "ClariView/0.1 (+https://github.com/clariview/clariview)",
			MaxBodyBytes:  2_000_000,
			MaxRedirects:  3,
			MaxRetries:    3,
			RespectRobots: true,
			PerHostRPS:    1,
			PerHostBurst:  2,
		},
		Search: SearchConfig{
			BaseURL:        "https://api.tavily.com",
			Timeout:        30 * time.Second,
			MaxResults:     10,
			BiasMaxResults: 5,
			RequestsPerSec: 1,
			Burst:          2,
		},
		LLM: LLMConfig{
			Model:      "gpt-4-turbo-preview",
			QueryModel: "gpt-3.5-turbo",
			Timeout:    60 * time.Second,
			MaxTokens:  500,
		},
		Policy: PolicyConfig{
			StrongConfidence:   8,
			StrongSources:      3,
			StandardConfidence: 7,
			StandardSources:    2,
			FakeConfidence:     7,
		},
		Scoring: ScoringConfig{
			RoutingThreshold:  30,
			FakePenalty:       0.5,
			SuspiciousPenalty: 0.7,
		},
		Claims: ClaimsConfig{
			MaxClaims:       7,
			HeuristicClaims: 5,
			MaxContentChars: 4000,
		},
		Sources: SourcesConfig{
			International: []string{
				"reuters.com", "bbc.com", "apnews.com", "cnn.com",
				"nytimes.com", "washingtonpost.com", "theguardian.com",
				"aljazeera.com", "npr.org",
			},
			RegionalSouthAsia: []string{
				"timesofindia.com", "hindustantimes.com", "indianexpress.com",
				"thenews.com.pk", "geo.tv", "express.pk", "tribune.com.pk",
				"dailystar.net", "dhakatribune.com",
			},
			FactCheckers: []string{
				"snopes.com", "factcheck.org", "politifact.com",
				"reuters.com/fact-check", "apnews.com/hub/ap-fact-check",
				"afp.com/en/news/826",
			},
			Blocked: []string{
				"facebook.com", "fb.com", "instagram.com", "twitter.com",
				"x.com", "youtube.com", "youtu.be", "tiktok.com",
				"linkedin.com", "pinterest.com", "reddit.com", "tumblr.com",
				"snapchat.com", "whatsapp.com", "telegram.org",
			},
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     15 * time.Minute,
		},
		Concurrency: ConcurrencyConfig{
			ClaimWorkers: 1,
			BatchWorkers: 4,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
