package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/clariview/clariview/internal/llm"
	"github.com/clariview/clariview/internal/model"
)

// Sentence length bounds for heuristic claim candidates, in runes.
const (
	minClaimLen = 30
	maxClaimLen = 300
)

// Attribution verbs that mark a sentence as reporting a checkable fact.
var attributionMarkers = []string{
	"said", "announced", "reported", "confirmed", "stated", "according to",
	"claimed", "declared", "warned", "estimated", "revealed", "told",
}

// ClaimDeriver extracts checkable factual claims from article text.
// With a provider configured it asks the model for 5-7 claims; without
// one, or when the model path fails, it scores sentences for factual
// markers and takes the best.
type ClaimDeriver struct {
	provider llm.Provider
	cfg      model.ClaimsConfig
	verbose  bool
}

// NewClaimDeriver creates a deriver. provider may be nil.
func NewClaimDeriver(provider llm.Provider, cfg model.ClaimsConfig) *ClaimDeriver {
	if cfg.MaxClaims <= 0 {
		cfg.MaxClaims = 7
	}
	if cfg.HeuristicClaims <= 0 {
		cfg.HeuristicClaims = 5
	}
	if cfg.MaxContentChars <= 0 {
		cfg.MaxContentChars = 4000
	}
	return &ClaimDeriver{provider: provider, cfg: cfg}
}

// SetVerbose enables fallback logging to stderr.
func (d *ClaimDeriver) SetVerbose(v bool) { d.verbose = v }

// Derive returns the ordered claim list for an article. An empty
// result means nothing checkable was found; the deriver itself never
// fails.
func (d *ClaimDeriver) Derive(ctx context.Context, content, title string) []model.Claim {
	if d.provider != nil {
		if texts, err := d.deriveWithModel(ctx, content, title); err == nil && len(texts) > 0 {
			return model.NewClaims(texts, model.ClaimOriginModel)
		} else if err != nil && d.verbose {
			fmt.Fprintf(os.Stderr, "⚠️  Model claim extraction failed, using heuristic: %v\n", err)
		}
	}

	return model.NewClaims(d.deriveHeuristic(content), model.ClaimOriginHeuristic)
}

func (d *ClaimDeriver) deriveWithModel(ctx context.Context, content, title string) ([]string, error) {
	truncated := content
	if len(truncated) > d.cfg.MaxContentChars {
		truncated = truncated[:d.cfg.MaxContentChars] + "..."
	}

	prompt := fmt.Sprintf(`Analyze this news article and extract 5-7 specific, factual claims that can be independently verified.
Focus on:
1. Specific events with dates, locations, and numbers
2. Official statements or quotes from named individuals
3. Concrete actions taken by governments or organizations
4. Casualty figures, damage assessments, or other quantifiable data
5. Military actions, diplomatic moves, or policy changes

Article Title: %s
Article Content: %s

Return ONLY a JSON array of claims, like this:
["Claim 1 with specific details", "Claim 2 with specific details", ...]

Each claim should be a complete sentence with specific details that can be fact-checked.`, title, truncated)

	reply, err := d.provider.Complete(ctx, llm.CompletionRequest{
		Prompt:    prompt,
		MaxTokens: 1000,
	})
	if err != nil {
		return nil, err
	}

	text := llm.ExtractJSONArray(llm.StripFences(reply))
	if text == "" {
		return nil, fmt.Errorf("no JSON array in reply")
	}

	var claims []string
	if err := json.Unmarshal([]byte(text), &claims); err != nil {
		return nil, fmt.Errorf("decode claims: %w", err)
	}

	var cleaned []string
	for _, c := range claims {
		if c = strings.TrimSpace(c); c != "" {
			cleaned = append(cleaned, c)
		}
		if len(cleaned) >= d.cfg.MaxClaims {
			break
		}
	}
	return cleaned, nil
}

// deriveHeuristic scores sentences for factual markers and keeps the
// top candidates in document order.
func (d *ClaimDeriver) deriveHeuristic(content string) []string {
	type candidate struct {
		position int
		text     string
		score    int
	}

	var candidates []candidate
	for i, sentence := range SplitSentences(content) {
		if score := factualScore(sentence); score > 0 {
			candidates = append(candidates, candidate{position: i, text: sentence, score: score})
		}
	}

	// Best scores first, then restore document order for the winners
	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].score > candidates[b].score
	})
	if len(candidates) > d.cfg.HeuristicClaims {
		candidates = candidates[:d.cfg.HeuristicClaims]
	}
	sort.Slice(candidates, func(a, b int) bool {
		return candidates[a].position < candidates[b].position
	})

	seen := make(map[string]bool)
	var claims []string
	for _, c := range candidates {
		key := strings.ToLower(c.text)
		if seen[key] {
			continue
		}
		seen[key] = true
		claims = append(claims, c.text)
	}
	return claims
}

// factualScore counts the checkability markers in a sentence: digits,
// quoted spans, attribution verbs, and capitalized multi-word names.
func factualScore(sentence string) int {
	score := 0

	if strings.IndexFunc(sentence, unicode.IsDigit) >= 0 {
		score += 2
	}

	if strings.Count(sentence, `"`) >= 2 || strings.Count(sentence, "“") >= 1 {
		score += 2
	}

	lower := strings.ToLower(sentence)
	for _, marker := range attributionMarkers {
		if strings.Contains(lower, marker) {
			score += 2
			break
		}
	}

	if hasProperNoun(sentence) {
		score++
	}

	return score
}

// hasProperNoun reports whether the sentence contains two adjacent
// capitalized words past the sentence start, a cheap proxy for a named
// person, place, or organization.
func hasProperNoun(sentence string) bool {
	words := strings.Fields(sentence)
	for i := 1; i < len(words)-1; i++ {
		if isCapitalized(words[i]) && isCapitalized(words[i+1]) {
			return true
		}
	}
	return false
}

func isCapitalized(word string) bool {
	runes := []rune(word)
	return len(runes) > 1 && unicode.IsUpper(runes[0]) && unicode.IsLower(runes[1])
}

// SplitSentences breaks text on sentence terminators, keeping only
// spans plausible as standalone claims.
func SplitSentences(text string) []string {
	text = strings.ReplaceAll(text, "\n", " ")

	var sentences []string
	var current strings.Builder

	flush := func() {
		sentence := strings.TrimSpace(current.String())
		if n := len([]rune(sentence)); n >= minClaimLen && n <= maxClaimLen {
			sentences = append(sentences, sentence)
		}
		current.Reset()
	}

	for i, r := range text {
		current.WriteRune(r)

		if r == '.' || r == '!' || r == '?' {
			// Look ahead to avoid splitting on abbreviations
			if i+1 < len(text) && (text[i+1] == ' ' || text[i+1] == '\t') {
				flush()
			}
		}
	}
	flush()

	return sentences
}
