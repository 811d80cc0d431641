package verify

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/clariview/clariview/internal/model"
	"github.com/clariview/clariview/internal/verdict"
)

// stubCollector returns a fixed evidence set, or panics on demand.
type stubCollector struct {
	authCount int
	panicOn   string
	calls     atomic.Int32
}

func (s *stubCollector) Collect(ctx context.Context, claim string) model.EvidenceSet {
	s.calls.Add(1)
	if s.panicOn != "" && strings.Contains(claim, s.panicOn) {
		panic("collector exploded")
	}

	ev := model.EvidenceSet{Claim: claim}
	for i := 0; i < s.authCount; i++ {
		src := model.Source{URL: "https://bbc.com/x", Domain: "bbc.com"}
		ev.Authoritative = append(ev.Authoritative, src)
		ev.All = append(ev.All, src)
	}
	return ev
}

// stubJudge returns a fixed judgment.
type stubJudge struct {
	judgment model.Judgment
}

func (s *stubJudge) Judge(ctx context.Context, claim string, ev model.EvidenceSet) model.Judgment {
	return s.judgment
}

func claims(texts ...string) []model.Claim {
	return model.NewClaims(texts, model.ClaimOriginHeuristic)
}

func TestVerifyClaim_FullSequence(t *testing.T) {
	collector := &stubCollector{authCount: 3}
	j := &stubJudge{judgment: model.Judgment{
		Label: model.LabelVerified, Confidence: 9, Reasoning: "corroborated",
	}}

	v := NewVerifier(collector, j, verdict.NewPolicy(nil), 1)
	report := v.VerifyClaim(context.Background(), model.Claim{Text: "the claim"})

	if report.Verdict != model.VerdictAuthentic {
		t.Errorf("Expected AUTHENTIC, got %s", report.Verdict)
	}
	if report.Evidence.AuthoritativeCount() != 3 {
		t.Errorf("Expected evidence carried through, got %d sources", report.Evidence.AuthoritativeCount())
	}
	if report.Err != "" {
		t.Errorf("Expected no error, got %s", report.Err)
	}
}

func TestVerifyClaim_PanicBecomesErrorReport(t *testing.T) {
	collector := &stubCollector{panicOn: "bad"}
	j := &stubJudge{judgment: model.Judgment{Label: model.LabelVerified, Confidence: 9}}

	v := NewVerifier(collector, j, verdict.NewPolicy(nil), 1)
	report := v.VerifyClaim(context.Background(), model.Claim{Text: "a bad claim"})

	if report.Verdict != model.VerdictError {
		t.Errorf("Expected ERROR verdict, got %s", report.Verdict)
	}
	if !strings.Contains(report.Err, "collector exploded") {
		t.Errorf("Expected panic message preserved, got %q", report.Err)
	}
	if report.Evidence.TotalCount() != 0 {
		t.Errorf("Expected zero-valued evidence, got %d sources", report.Evidence.TotalCount())
	}
}

func TestVerifyAll_OneBadClaimDoesNotAbort(t *testing.T) {
	collector := &stubCollector{authCount: 3, panicOn: "poison"}
	j := &stubJudge{judgment: model.Judgment{Label: model.LabelVerified, Confidence: 9}}

	v := NewVerifier(collector, j, verdict.NewPolicy(nil), 1)
	reports := v.VerifyAll(context.Background(), claims("first", "poison pill", "third"))

	if len(reports) != 3 {
		t.Fatalf("Expected 3 reports, got %d", len(reports))
	}
	if reports[0].Verdict != model.VerdictAuthentic {
		t.Errorf("Expected first claim AUTHENTIC, got %s", reports[0].Verdict)
	}
	if reports[1].Verdict != model.VerdictError {
		t.Errorf("Expected poisoned claim ERROR, got %s", reports[1].Verdict)
	}
	if reports[2].Verdict != model.VerdictAuthentic {
		t.Errorf("Expected third claim AUTHENTIC, got %s", reports[2].Verdict)
	}
}

func TestVerifyAll_PreservesOrderWithWorkers(t *testing.T) {
	collector := &stubCollector{authCount: 3}
	j := &stubJudge{judgment: model.Judgment{Label: model.LabelVerified, Confidence: 9}}

	v := NewVerifier(collector, j, verdict.NewPolicy(nil), 4)

	input := claims("claim a", "claim b", "claim c", "claim d", "claim e")
	reports := v.VerifyAll(context.Background(), input)

	if len(reports) != len(input) {
		t.Fatalf("Expected %d reports, got %d", len(input), len(reports))
	}
	for i, report := range reports {
		if report.Claim.Text != input[i].Text {
			t.Errorf("Expected report %d for %q, got %q", i, input[i].Text, report.Claim.Text)
		}
	}
	if collector.calls.Load() != int32(len(input)) {
		t.Errorf("Expected %d collector calls, got %d", len(input), collector.calls.Load())
	}
}

func TestVerifyAll_Progress(t *testing.T) {
	collector := &stubCollector{authCount: 2}
	j := &stubJudge{judgment: model.Judgment{Label: model.LabelVerified, Confidence: 9}}

	v := NewVerifier(collector, j, verdict.NewPolicy(nil), 1)

	var seen atomic.Int32
	v.OnProgress(func(report model.ClaimReport, index, total int) {
		seen.Add(1)
		if total != 2 {
			t.Errorf("Expected total 2, got %d", total)
		}
	})

	v.VerifyAll(context.Background(), claims("one", "two"))
	if seen.Load() != 2 {
		t.Errorf("Expected 2 progress calls, got %d", seen.Load())
	}
}

func TestVerifyAll_Empty(t *testing.T) {
	v := NewVerifier(&stubCollector{}, &stubJudge{}, verdict.NewPolicy(nil), 1)
	reports := v.VerifyAll(context.Background(), nil)
	if len(reports) != 0 {
		t.Errorf("Expected empty result, got %d reports", len(reports))
	}
}
