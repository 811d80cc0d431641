package verify

import (
	"context"
	"fmt"
	"sync"

	"github.com/clariview/clariview/internal/model"
	"github.com/clariview/clariview/internal/verdict"
)

// EvidenceCollector gathers search evidence for one claim.
type EvidenceCollector interface {
	Collect(ctx context.Context, claim string) model.EvidenceSet
}

// ClaimJudge adjudicates one claim against its evidence.
type ClaimJudge interface {
	Judge(ctx context.Context, claim string, evidence model.EvidenceSet) model.Judgment
}

// ProgressFunc is called after each claim completes.
type ProgressFunc func(report model.ClaimReport, index, total int)

// Verifier runs the per-claim sequence: evidence, judgment, verdict.
// It is the error boundary for claim processing; nothing escapes it as
// a panic or error, only ClaimReports.
type Verifier struct {
	evidence EvidenceCollector
	judge    ClaimJudge
	policy   *verdict.Policy
	workers  int
	progress ProgressFunc
}

// NewVerifier creates a verifier. workers <= 1 keeps claim processing
// strictly sequential.
func NewVerifier(evidence EvidenceCollector, judge ClaimJudge, policy *verdict.Policy, workers int) *Verifier {
	if workers <= 0 {
		workers = 1
	}
	return &Verifier{
		evidence: evidence,
		judge:    judge,
		policy:   policy,
		workers:  workers,
	}
}

// OnProgress registers a per-claim completion callback. With more than
// one worker the callback may fire from multiple goroutines.
func (v *Verifier) OnProgress(fn ProgressFunc) {
	v.progress = fn
}

// VerifyClaim verifies one claim. Panics anywhere in the sequence are
// converted into an ERROR report here so one bad claim never aborts
// the run.
func (v *Verifier) VerifyClaim(ctx context.Context, claim model.Claim) (report model.ClaimReport) {
	defer func() {
		if r := recover(); r != nil {
			report = model.ClaimReport{
				Claim:    claim,
				Evidence: model.EvidenceSet{Claim: claim.Text},
				Judgment: model.Judgment{
					Label:      model.LabelInsufficient,
					Confidence: 1,
					Reasoning:  "claim verification failed",
					RedFlags:   []string{model.FlagAdapterFailed},
				},
				Verdict: model.VerdictError,
				Err:     fmt.Sprintf("claim verification panic: %v", r),
			}
		}
	}()

	evidence := v.evidence.Collect(ctx, claim.Text)
	judgment := v.judge.Judge(ctx, claim.Text, evidence)

	return model.ClaimReport{
		Claim:    claim,
		Evidence: evidence,
		Judgment: judgment,
		Verdict:  v.policy.Decide(judgment, evidence),
	}
}

// VerifyAll verifies every claim and returns the reports in input
// order. With one worker the claims run strictly in sequence; with
// more, they fan out under a semaphore, which is safe because claims
// touch disjoint data and the score is order-independent.
func (v *Verifier) VerifyAll(ctx context.Context, claims []model.Claim) []model.ClaimReport {
	if len(claims) == 0 {
		return []model.ClaimReport{}
	}

	reports := make([]model.ClaimReport, len(claims))

	if v.workers == 1 {
		for i, claim := range claims {
			reports[i] = v.VerifyClaim(ctx, claim)
			v.report(reports[i], i, len(claims))
		}
		return reports
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, v.workers)

	for i, claim := range claims {
		wg.Add(1)
		go func(idx int, c model.Claim) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				reports[idx] = model.ClaimReport{
					Claim:   c,
					Verdict: model.VerdictError,
					Err:     "context cancelled",
				}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			reports[idx] = v.VerifyClaim(ctx, c)
			v.report(reports[idx], idx, len(claims))
		}(i, claim)
	}

	wg.Wait()
	return reports
}

func (v *Verifier) report(r model.ClaimReport, index, total int) {
	if v.progress != nil {
		v.progress(r, index, total)
	}
}
