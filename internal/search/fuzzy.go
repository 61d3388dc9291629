package search

import (
	"strings"

	"github.com/dart-research/disclosure-cli/internal/catalog"
	"github.com/dart-research/disclosure-cli/internal/model"
)

// similarityThreshold is the fixed cutoff for similarity-ratio matches.
const similarityThreshold = 0.6

// FuzzyMatcher finds industries named in the question and cataloged
// keywords whose similarity ratio to the question exceeds the threshold.
type FuzzyMatcher struct {
	catalog *catalog.Catalog
}

// NewFuzzyMatcher creates a FuzzyMatcher over the given catalog.
func NewFuzzyMatcher(c *catalog.Catalog) *FuzzyMatcher {
	return &FuzzyMatcher{catalog: c}
}

// FindSimilar returns industry-substring matches at confidence 0.9
// followed by similarity-ratio matches with confidence equal to the
// ratio. Matches are not deduplicated against each other.
func (m *FuzzyMatcher) FindSimilar(query string) []model.MatchCandidate {
	queryLower := strings.ToLower(query)

	var matches []model.MatchCandidate
	for _, industry := range m.catalog.IndustryNames() {
		if industry == "" || !strings.Contains(queryLower, strings.ToLower(industry)) {
			continue
		}
		related := m.catalog.SimilarIndustries()[industry]
		matches = append(matches, model.MatchCandidate{
			Keyword:         industry,
			Type:            model.MatchSimilarIndustry,
			Confidence:      0.9,
			RelatedKeywords: related,
		})
	}

	for _, keyword := range m.catalog.AllKeywords() {
		ratio := similarityRatio(queryLower, strings.ToLower(keyword))
		if ratio > similarityThreshold {
			matches = append(matches, model.MatchCandidate{
				Keyword:         keyword,
				Type:            model.MatchSimilarityBased,
				Confidence:      ratio,
				RelatedKeywords: []string{keyword},
			})
		}
	}

	return matches
}
