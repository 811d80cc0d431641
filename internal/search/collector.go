package search

import (
	"context"

	"github.com/clariview/clariview/internal/model"
	"github.com/clariview/clariview/internal/sources"
)

// Searcher is the raw search call the collector wraps. Satisfied by
// *Client; substituted in tests.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) (any, error)
}

// Collector is the evidence search adapter: one search per claim,
// normalized and partitioned into authoritative and general sources.
type Collector struct {
	searcher   Searcher
	classifier *sources.Classifier
	maxResults int
}

// NewCollector creates a collector searching up to maxResults records
// per claim.
func NewCollector(searcher Searcher, classifier *sources.Classifier, maxResults int) *Collector {
	if maxResults <= 0 {
		maxResults = 10
	}
	return &Collector{
		searcher:   searcher,
		classifier: classifier,
		maxResults: maxResults,
	}
}

// Collect searches for evidence on one claim. This call never fails:
// a search error comes back as an EvidenceSet with zero sources and
// the error string attached, so one flaky search can't abort a run.
func (c *Collector) Collect(ctx context.Context, claim string) model.EvidenceSet {
	evidence := model.EvidenceSet{Claim: claim}

	raw, err := c.searcher.Search(ctx, claim, c.maxResults)
	if err != nil {
		evidence.Err = err.Error()
		return evidence
	}

	for _, record := range Records(raw) {
		source, ok := SourceFromRecord(record)
		if !ok {
			continue // No URL; dropped silently
		}

		evidence.All = append(evidence.All, source)
		if c.classifier.IsAuthoritative(source.Domain) {
			evidence.Authoritative = append(evidence.Authoritative, source)
		}
	}

	return evidence
}
