package model

import "time"

// Article is the content-extraction output for one URL.
type Article struct {
	URL         string `json:"url"`                    // URL as requested
	FinalURL    string `json:"final_url,omitempty"`    // URL after redirects
	Domain      string `json:"domain,omitempty"`       // Lower-cased hostname, www. stripped
	Title       string `json:"title,omitempty"`        // <title> text
	Author      string `json:"author,omitempty"`       // meta[name=author]
	PublishedAt string `json:"published_at,omitempty"` // meta[property=article:published_time]
	ImageURL    string `json:"image_url,omitempty"`    // meta[property=og:image]
	Content     string `json:"content"`                // Paragraph and list-item text, space joined
}

// ClaimReport is the atomic verification unit: one claim with the
// evidence found for it, the judgment over that evidence, and the
// verdict the policy assigned.
type ClaimReport struct {
	Claim    Claim       `json:"claim"`
	Evidence EvidenceSet `json:"evidence"`
	Judgment Judgment    `json:"judgment"`
	Verdict  Verdict     `json:"verdict"`
	Err      string      `json:"error,omitempty"` // Diagnostic detail for ERROR verdicts
}

// AuthenticityReport aggregates every ClaimReport of one run. Created
// once per run, never mutated after the verification phase.
type AuthenticityReport struct {
	URL          string        `json:"url"`
	Title        string        `json:"title,omitempty"`
	TotalClaims  int           `json:"total_claims"`
	Authentic    int           `json:"authentic"`
	Fake         int           `json:"fake"`
	Suspicious   int           `json:"suspicious"`
	Unverifiable int           `json:"unverifiable"`
	Errors       int           `json:"errors"`
	Score        float64       `json:"score"` // 0-100, penalties applied
	Claims       []ClaimReport `json:"claims"`
	AnalyzedAt   time.Time     `json:"analyzed_at"`
}

// BiasFinding is the bias-pass output for one claim: the opposite-stance
// query derived for it and the news URLs that query surfaced.
type BiasFinding struct {
	Claim string   `json:"claim"`
	Query string   `json:"query"`
	URLs  []string `json:"urls"`
}

// Run statuses.
const (
	StatusVerified        = "verified"         // Score cleared the routing threshold; bias pass ran
	StatusLowAuthenticity = "low_authenticity" // Score at or below threshold; warning issued
	StatusFailed          = "failed"           // Pipeline-fatal condition before verification completed
)

// RunResult is the terminal outcome of one verification run. Exactly one
// of OpposingURLs, Warning, or Reason carries the payload, selected by
// Status.
type RunResult struct {
	Status       string              `json:"status"`
	Article      *Article            `json:"article,omitempty"`
	Report       *AuthenticityReport `json:"report,omitempty"`
	BiasFindings []BiasFinding       `json:"bias_findings,omitempty"`
	OpposingURLs []string            `json:"opposing_urls,omitempty"` // StatusVerified
	Warning      string              `json:"warning,omitempty"`       // StatusLowAuthenticity
	Reason       string              `json:"reason,omitempty"`        // StatusFailed
}

// Failed builds a structured failure result.
func Failed(url, reason string) *RunResult {
	return &RunResult{
		Status:  StatusFailed,
		Article: &Article{URL: url},
		Reason:  reason,
	}
}
