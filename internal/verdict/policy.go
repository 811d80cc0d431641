package verdict

import (
	"github.com/clariview/clariview/internal/model"
)

// Policy combines a judgment with the evidence partition into a final
// per-claim verdict. Pure and total: same inputs, same verdict, no
// error cases.
type Policy struct {
	cfg model.PolicyConfig
}

// NewPolicy creates a policy. A nil config falls back to the strict
// default thresholds.
func NewPolicy(cfg *model.PolicyConfig) *Policy {
	if cfg == nil {
		cfg = &model.DefaultConfig().Policy
	}
	return &Policy{cfg: *cfg}
}

// Decide evaluates the rules in priority order; the first match wins.
// The ordering matters: CONTRADICTED and confident-but-unsourced claims
// must dominate the ambiguous UNVERIFIED outcomes below them.
func (p *Policy) Decide(judgment model.Judgment, evidence model.EvidenceSet) model.Verdict {
	confidence := judgment.Confidence
	authCount := evidence.AuthoritativeCount()

	switch {
	case judgment.Label == model.LabelVerified &&
		confidence >= p.cfg.StrongConfidence &&
		authCount >= p.cfg.StrongSources:
		return model.VerdictAuthentic

	case judgment.Label == model.LabelVerified &&
		confidence >= p.cfg.StandardConfidence &&
		authCount >= p.cfg.StandardSources:
		return model.VerdictAuthentic

	case judgment.Label == model.LabelContradicted ||
		(confidence >= p.cfg.FakeConfidence && authCount == 0):
		return model.VerdictFake

	case judgment.Label == model.LabelUnverified && authCount == 0:
		return model.VerdictSuspicious

	case judgment.Label == model.LabelInsufficient:
		return model.VerdictUnverifiable

	default:
		// Anything left is ambiguous, e.g. UNVERIFIED with
		// authoritative sources present.
		return model.VerdictSuspicious
	}
}
