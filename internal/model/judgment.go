package model

// JudgmentLabel is the language model's classification of a claim
// against the evidence it was shown.
type JudgmentLabel string

const (
	LabelVerified     JudgmentLabel = "VERIFIED"              // Evidence supports the claim
	LabelUnverified   JudgmentLabel = "UNVERIFIED"            // Evidence neither confirms nor refutes
	LabelContradicted JudgmentLabel = "CONTRADICTED"          // Evidence refutes the claim
	LabelInsufficient JudgmentLabel = "INSUFFICIENT_EVIDENCE" // Not enough evidence to judge
)

// ValidLabel reports whether s is one of the four judgment labels.
func ValidLabel(s string) bool {
	switch JudgmentLabel(s) {
	case LabelVerified, LabelUnverified, LabelContradicted, LabelInsufficient:
		return true
	}
	return false
}

// Red-flag tags attached to judgments by the adapter and its fallbacks.
const (
	FlagAdapterFailed   = "adapter_failed"           // Judgment call failed or reply was unparsable
	FlagSingleSource    = "single_source"            // Only one authoritative source found
	FlagNoAuthoritative = "no_authoritative_sources" // Results found, none allow-listed
	FlagNoSources       = "no_sources_found"         // Search returned nothing usable
)

// Judgment is the adjudication outcome for one claim. Produced fresh per
// claim and never mutated. Confidence is always within [1,10].
type Judgment struct {
	Label      JudgmentLabel `json:"verdict"`             // One of the four labels
	Confidence int           `json:"confidence"`          // 1 (none) to 10 (certain)
	Reasoning  string        `json:"reasoning"`           // Free-text explanation
	RedFlags   []string      `json:"red_flags,omitempty"` // Warning tags, possibly empty
}

// ClampConfidence forces c into the valid [1,10] range.
func ClampConfidence(c int) int {
	if c < 1 {
		return 1
	}
	if c > 10 {
		return 10
	}
	return c
}
