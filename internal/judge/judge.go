package judge

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/clariview/clariview/internal/llm"
	"github.com/clariview/clariview/internal/model"
)

// How many authoritative snippets are embedded in the prompt.
const maxPromptSources = 3

// Sentinel shown to the model when no allow-listed source was found.
const noSourcesSentinel = "No authoritative sources found for this claim."

// Judge adjudicates one claim against its evidence. With a provider
// configured it runs the fact-checking prompt; without one it falls
// back to counting rules. Either way it never returns an error: every
// failure degrades to the fixed insufficient-evidence judgment.
type Judge struct {
	provider  llm.Provider
	model     string
	maxTokens int
}

// New creates a judge. provider may be nil to force the rule-based
// path.
func New(provider llm.Provider, cfg model.LLMConfig) *Judge {
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 500
	}
	return &Judge{
		provider:  provider,
		model:     cfg.Model,
		maxTokens: maxTokens,
	}
}

// Judge produces the judgment for one claim.
func (j *Judge) Judge(ctx context.Context, claim string, evidence model.EvidenceSet) model.Judgment {
	if j.provider == nil {
		return RuleBased(evidence)
	}

	reply, err := j.provider.Complete(ctx, llm.CompletionRequest{
		Prompt:    BuildPrompt(claim, evidence),
		Model:     j.model,
		MaxTokens: j.maxTokens,
	})
	if err != nil {
		return fallback(fmt.Sprintf("judgment call failed: %v", err))
	}

	judgment, err := parseReply(reply)
	if err != nil {
		return fallback(fmt.Sprintf("judgment reply unparsable: %v", err))
	}
	return judgment
}

// BuildPrompt assembles the fixed fact-checking prompt for one claim.
// Only authoritative snippets are embedded; general results would let
// the model verify a claim against the content mill that published it.
func BuildPrompt(claim string, evidence model.EvidenceSet) string {
	var context strings.Builder
	if evidence.AuthoritativeCount() == 0 {
		context.WriteString(noSourcesSentinel)
	} else {
		context.WriteString("Authoritative sources found:\n")
		for i, source := range evidence.Authoritative {
			if i >= maxPromptSources {
				break
			}
			fmt.Fprintf(&context, "%d. %s: %s\n", i+1, source.Domain, source.Snippet)
		}
	}

	return fmt.Sprintf(`As a fact-checker, analyze this claim against the available evidence:

CLAIM TO VERIFY: %s

EVIDENCE FROM AUTHORITATIVE SOURCES:
%s

Please provide:
1. VERDICT: One of [VERIFIED, UNVERIFIED, CONTRADICTED, INSUFFICIENT_EVIDENCE]
2. CONFIDENCE: Scale of 1-10 (10 = very confident)
3. REASONING: Brief explanation of your analysis
4. RED_FLAGS: Any suspicious elements in the claim

Consider:
- Are the specific details (dates, numbers, names) corroborated?
- Do authoritative sources report this event?
- Are there any logical inconsistencies?
- Does this seem plausible given the context?

Respond in JSON format:
{
    "verdict": "VERIFIED|UNVERIFIED|CONTRADICTED|INSUFFICIENT_EVIDENCE",
    "confidence": 1-10,
    "reasoning": "Your analysis here",
    "red_flags": ["flag1", "flag2"]
}`, claim, context.String())
}

// judgmentReply is the JSON shape asked of the model.
type judgmentReply struct {
	Verdict    string   `json:"verdict"`
	Confidence int      `json:"confidence"`
	Reasoning  string   `json:"reasoning"`
	RedFlags   []string `json:"red_flags"`
}

// parseReply extracts and validates the judgment object from a
// free-form model reply.
func parseReply(reply string) (model.Judgment, error) {
	text := llm.ExtractJSONObject(llm.StripFences(reply))
	if text == "" {
		return model.Judgment{}, fmt.Errorf("no JSON object in reply")
	}

	var parsed judgmentReply
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return model.Judgment{}, fmt.Errorf("decode judgment: %w", err)
	}

	label := strings.ToUpper(strings.TrimSpace(parsed.Verdict))
	if !model.ValidLabel(label) {
		return model.Judgment{}, fmt.Errorf("unknown verdict label %q", parsed.Verdict)
	}

	return model.Judgment{
		Label:      model.JudgmentLabel(label),
		Confidence: model.ClampConfidence(parsed.Confidence),
		Reasoning:  parsed.Reasoning,
		RedFlags:   parsed.RedFlags,
	}, nil
}

// fallback is the fixed-shape judgment used when the adjudication call
// fails or its reply cannot be parsed.
func fallback(reason string) model.Judgment {
	return model.Judgment{
		Label:      model.LabelInsufficient,
		Confidence: 1,
		Reasoning:  reason,
		RedFlags:   []string{model.FlagAdapterFailed},
	}
}

// RuleBased judges on source counts alone, for runs with no language
// model configured.
func RuleBased(evidence model.EvidenceSet) model.Judgment {
	authCount := evidence.AuthoritativeCount()
	totalCount := evidence.TotalCount()

	switch {
	case authCount >= 2:
		return model.Judgment{
			Label:      model.LabelVerified,
			Confidence: 7,
			Reasoning:  fmt.Sprintf("Found in %d authoritative sources", authCount),
			RedFlags:   []string{},
		}
	case authCount == 1:
		return model.Judgment{
			Label:      model.LabelUnverified,
			Confidence: 5,
			Reasoning:  "Found in 1 authoritative source, needs more verification",
			RedFlags:   []string{model.FlagSingleSource},
		}
	case totalCount > 0:
		return model.Judgment{
			Label:      model.LabelUnverified,
			Confidence: 3,
			Reasoning:  fmt.Sprintf("Found in %d non-authoritative sources only", totalCount),
			RedFlags:   []string{model.FlagNoAuthoritative},
		}
	default:
		return model.Judgment{
			Label:      model.LabelInsufficient,
			Confidence: 1,
			Reasoning:  "No sources found",
			RedFlags:   []string{model.FlagNoSources},
		}
	}
}
