// Package search extracts the business-domain keyword from a free-text
// question. A first pass matches cataloged keywords exactly with a
// multi-factor priority score; a second pass finds similar industries and
// similarity-ratio matches; the resolver merges both ranked by confidence.
package search

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dart-research/disclosure-cli/internal/catalog"
	"github.com/dart-research/disclosure-cli/internal/model"
)

// priorityKeywords are high-specificity technology/industry terms. A
// question containing one is clearly about that domain, so these terms
// are boosted and generic jargon is suppressed harder.
var priorityKeywords = map[string]bool{
	"ai":               true,
	"클라우드":             true,
	"cloud":            true,
	"블록체인":             true,
	"blockchain":       true,
	"iot":              true,
	"바이오":              true,
	"bio":              true,
	"신재생에너지":           true,
	"renewable energy": true,
	"전기차":              true,
	"electric vehicle": true,
	"반도체":              true,
	"semiconductor":    true,
}

// genericTerms are vague business-jargon words that would otherwise match
// almost any question.
var genericTerms = map[string]bool{
	"솔루션":         true,
	"solution":    true,
	"플랫폼":         true,
	"platform":    true,
	"시스템":         true,
	"system":      true,
	"서비스":         true,
	"service":     true,
	"기술":          true,
	"technology":  true,
	"개발":          true,
	"development": true,
	"제공":          true,
	"업계":          true,
	"industry":    true,
	"사업":          true,
	"business":    true,
}

// weightedCategories get a flat bonus over miscellaneous categories.
var weightedCategories = map[string]int{
	"it_software":   100,
	"game":          100,
	"finance":       100,
	"manufacturing": 100,
	"security":      100,
}

// ExactMatcher scans questions against the keyword catalog.
type ExactMatcher struct {
	catalog *catalog.Catalog
}

// NewExactMatcher creates an ExactMatcher over the given catalog.
func NewExactMatcher(c *catalog.Catalog) *ExactMatcher {
	return &ExactMatcher{catalog: c}
}

// FindExactMatches returns every cataloged keyword contained in the
// question, scored and sorted by priority score descending. Comparisons
// are case-insensitive; original keyword casing is retained in output.
// The same keyword appearing under several categories yields one
// candidate per category.
func (m *ExactMatcher) FindExactMatches(query string) []model.MatchCandidate {
	queryLower := strings.ToLower(query)

	hasPriority := false
	for kw := range priorityKeywords {
		if strings.Contains(queryLower, kw) {
			hasPriority = true
			break
		}
	}

	var matches []model.MatchCandidate
	for _, category := range m.catalog.CategoryNames() {
		for _, keyword := range m.catalog.Keywords(category) {
			kwLower := strings.ToLower(keyword)
			if kwLower == "" || !strings.Contains(queryLower, kwLower) {
				continue
			}
			matches = append(matches, model.MatchCandidate{
				Keyword:       keyword,
				Category:      category,
				Type:          model.MatchExact,
				Confidence:    1.0,
				PriorityScore: scoreKeyword(kwLower, category, hasPriority),
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].PriorityScore > matches[j].PriorityScore
	})
	return matches
}

// scoreKeyword computes the additive priority score for one contained
// keyword. All contributions are independent; none short-circuits the
// others, so scores are unbounded in both directions and only the
// relative ranking is contractual.
func scoreKeyword(kwLower, category string, queryHasPriority bool) int {
	// containment already established
	score := 1000

	// longer keywords are more specific
	score += utf8.RuneCountInString(kwLower) * 10

	if isCompactCompound(kwLower) {
		score += 500
	}

	if priorityKeywords[kwLower] {
		score += 800
		if queryHasPriority {
			score += 2000
		}
	}

	if genericTerms[kwLower] {
		score -= 600
		if queryHasPriority {
			score -= 1000
		}
	}

	score += weightedCategories[category]
	return score
}

// isCompactCompound reports whether the keyword is a compact compound
// domain term: at least four characters, no whitespace, letters and
// digits only.
func isCompactCompound(kw string) bool {
	if utf8.RuneCountInString(kw) < 4 {
		return false
	}
	for _, r := range kw {
		if unicode.IsSpace(r) {
			return false
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
