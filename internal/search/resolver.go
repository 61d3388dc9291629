package search

import (
	"sort"

	"go.uber.org/zap"

	"github.com/dart-research/disclosure-cli/internal/catalog"
	"github.com/dart-research/disclosure-cli/internal/model"
)

// Resolver merges exact and fuzzy matching into one ranked candidate
// list. It holds no mutable state, so one Resolver may serve concurrent
// queries.
type Resolver struct {
	exact *ExactMatcher
	fuzzy *FuzzyMatcher
}

// NewResolver creates a Resolver over the given catalog.
func NewResolver(c *catalog.Catalog) *Resolver {
	return &Resolver{
		exact: NewExactMatcher(c),
		fuzzy: NewFuzzyMatcher(c),
	}
}

// Resolve returns all candidates for the question sorted by confidence
// descending. The sort is stable: exact matches all carry confidence 1.0
// and therefore keep their internal priority-score order and precede
// every fuzzy match (confidence <= 0.9).
func (r *Resolver) Resolve(query string) []model.MatchCandidate {
	matches := append(r.exact.FindExactMatches(query), r.fuzzy.FindSimilar(query)...)
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Confidence > matches[j].Confidence
	})
	return matches
}

// Best returns the top-ranked candidate, or false when nothing matched.
func (r *Resolver) Best(query string) (model.MatchCandidate, bool) {
	matches := r.Resolve(query)
	if len(matches) == 0 {
		return model.MatchCandidate{}, false
	}
	best := matches[0]
	zap.L().Debug("search: resolved keyword",
		zap.String("keyword", best.Keyword),
		zap.String("match_type", string(best.Type)),
		zap.Float64("confidence", best.Confidence),
	)
	return best, true
}
