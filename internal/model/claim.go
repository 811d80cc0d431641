package model

// Claim is a self-contained, checkable factual statement derived from
// article text. Claims have no identity beyond their text and position
// in the claim list for a single run.
type Claim struct {
	Text    string `json:"text"`             // The claim sentence itself
	Ordinal int    `json:"ordinal"`          // 0-based position in the derived claim list
	Origin  string `json:"origin,omitempty"` // How it was derived: "model" or "heuristic"
}

// Claim origins.
const (
	ClaimOriginModel     = "model"     // Derived by the language-model extractor
	ClaimOriginHeuristic = "heuristic" // Derived by the sentence-scoring fallback
)

// NewClaims wraps plain claim strings in ordered Claim values.
func NewClaims(texts []string, origin string) []Claim {
	claims := make([]Claim, 0, len(texts))
	for i, t := range texts {
		claims = append(claims, Claim{Text: t, Ordinal: i, Origin: origin})
	}
	return claims
}
