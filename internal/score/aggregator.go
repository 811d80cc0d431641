package score

import (
	"time"

	"github.com/clariview/clariview/internal/model"
)

// Aggregator rolls per-claim verdicts into the article-level
// authenticity score. Only AUTHENTIC claims earn points; FAKE and
// suspicious-heavy runs are penalized multiplicatively.
type Aggregator struct {
	cfg model.ScoringConfig
}

// NewAggregator creates an aggregator. A nil config falls back to the
// default penalties.
func NewAggregator(cfg *model.ScoringConfig) *Aggregator {
	if cfg == nil {
		cfg = &model.DefaultConfig().Scoring
	}
	return &Aggregator{cfg: *cfg}
}

// Aggregate reduces the claim reports into one AuthenticityReport. The
// score depends only on verdict counts, never on claim order. ERROR
// verdicts count as unverifiable: they dilute the denominator without
// contributing to any bucket's weight.
func (a *Aggregator) Aggregate(reports []model.ClaimReport) model.AuthenticityReport {
	result := model.AuthenticityReport{
		TotalClaims: len(reports),
		Claims:      reports,
		AnalyzedAt:  time.Now().UTC(),
	}

	for _, report := range reports {
		switch report.Verdict {
		case model.VerdictAuthentic:
			result.Authentic++
		case model.VerdictFake:
			result.Fake++
		case model.VerdictSuspicious:
			result.Suspicious++
		case model.VerdictError:
			result.Errors++
			result.Unverifiable++
		default:
			result.Unverifiable++
		}
	}

	result.Score = a.score(result)
	return result
}

func (a *Aggregator) score(r model.AuthenticityReport) float64 {
	if r.TotalClaims == 0 {
		return 0
	}

	score := 100 * float64(r.Authentic) / float64(r.TotalClaims)

	// One FAKE claim halves the score no matter how many there are;
	// the suspicious penalty only applies when nothing was fake.
	if r.Fake > 0 {
		score *= a.cfg.FakePenalty
	} else if r.Suspicious > r.Authentic {
		score *= a.cfg.SuspiciousPenalty
	}

	return score
}
