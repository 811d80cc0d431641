package score

import (
	"math/rand"
	"testing"

	"github.com/clariview/clariview/internal/model"
)

func reportsWith(verdicts ...model.Verdict) []model.ClaimReport {
	reports := make([]model.ClaimReport, 0, len(verdicts))
	for i, v := range verdicts {
		reports = append(reports, model.ClaimReport{
			Claim:   model.Claim{Text: "claim", Ordinal: i},
			Verdict: v,
		})
	}
	return reports
}

func TestAggregate_Empty(t *testing.T) {
	result := NewAggregator(nil).Aggregate(nil)

	if result.Score != 0 {
		t.Errorf("Expected score 0 for empty input, got %f", result.Score)
	}
	if result.TotalClaims != 0 || result.Authentic != 0 || result.Fake != 0 ||
		result.Suspicious != 0 || result.Unverifiable != 0 || result.Errors != 0 {
		t.Errorf("Expected all counts 0, got %+v", result)
	}
}

func TestAggregate_AllAuthentic(t *testing.T) {
	result := NewAggregator(nil).Aggregate(reportsWith(
		model.VerdictAuthentic, model.VerdictAuthentic, model.VerdictAuthentic,
	))

	if result.Score != 100 {
		t.Errorf("Expected score 100, got %f", result.Score)
	}
}

func TestAggregate_FakePenaltyAppliedOnce(t *testing.T) {
	agg := NewAggregator(nil)

	// 2 authentic of 5 with one fake: 40 * 0.5 = 20
	oneFake := agg.Aggregate(reportsWith(
		model.VerdictAuthentic, model.VerdictAuthentic, model.VerdictFake,
		model.VerdictUnverifiable, model.VerdictSuspicious,
	))
	if oneFake.Score != 20 {
		t.Errorf("Expected score 20 with one fake, got %f", oneFake.Score)
	}

	// Same shape with two fakes: penalty still applied exactly once
	twoFake := agg.Aggregate(reportsWith(
		model.VerdictAuthentic, model.VerdictAuthentic, model.VerdictFake,
		model.VerdictFake, model.VerdictSuspicious,
	))
	if twoFake.Score != 20 {
		t.Errorf("Expected score 20 with two fakes, got %f", twoFake.Score)
	}
}

func TestAggregate_SuspiciousPenalty(t *testing.T) {
	agg := NewAggregator(nil)

	// 1 authentic, 2 suspicious, no fake: (100/3) * 0.7
	result := agg.Aggregate(reportsWith(
		model.VerdictAuthentic, model.VerdictSuspicious, model.VerdictSuspicious,
	))
	expected := 100.0 / 3.0 * 0.7
	if result.Score != expected {
		t.Errorf("Expected score %f, got %f", expected, result.Score)
	}

	// Suspicious penalty is skipped when anything was fake
	withFake := agg.Aggregate(reportsWith(
		model.VerdictAuthentic, model.VerdictSuspicious, model.VerdictSuspicious,
		model.VerdictFake,
	))
	if withFake.Score != 25*0.5 {
		t.Errorf("Expected fake penalty only, got %f", withFake.Score)
	}

	// Equal suspicious and authentic counts take no penalty
	balanced := agg.Aggregate(reportsWith(
		model.VerdictAuthentic, model.VerdictSuspicious,
	))
	if balanced.Score != 50 {
		t.Errorf("Expected no penalty at parity, got %f", balanced.Score)
	}
}

func TestAggregate_ErrorsDiluteOnly(t *testing.T) {
	result := NewAggregator(nil).Aggregate(reportsWith(
		model.VerdictAuthentic, model.VerdictError, model.VerdictError,
		model.VerdictUnverifiable,
	))

	// 1 authentic of 4, no fake, suspicious(0) <= authentic(1): 25
	if result.Score != 25 {
		t.Errorf("Expected score 25, got %f", result.Score)
	}
	if result.Errors != 2 {
		t.Errorf("Expected 2 errors, got %d", result.Errors)
	}
	if result.Unverifiable != 3 {
		t.Errorf("Expected errors counted as unverifiable (3 total), got %d", result.Unverifiable)
	}
}

func TestAggregate_OrderIndependent(t *testing.T) {
	agg := NewAggregator(nil)
	verdicts := []model.Verdict{
		model.VerdictAuthentic, model.VerdictAuthentic, model.VerdictFake,
		model.VerdictUnverifiable, model.VerdictSuspicious, model.VerdictError,
	}

	baseline := agg.Aggregate(reportsWith(verdicts...)).Score

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := make([]model.Verdict, len(verdicts))
		copy(shuffled, verdicts)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		if score := agg.Aggregate(reportsWith(shuffled...)).Score; score != baseline {
			t.Fatalf("Expected score %f under permutation, got %f", baseline, score)
		}
	}
}
