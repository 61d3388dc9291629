package search

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dart-research/disclosure-cli/internal/catalog"
	"github.com/dart-research/disclosure-cli/internal/model"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	dir := t.TempDir()

	kw := filepath.Join(dir, "keywords.json")
	require.NoError(t, os.WriteFile(kw, []byte(`{
		"it_software": ["클라우드", "솔루션", "ai"],
		"game": ["게임", "모바일게임"],
		"misc": ["게임"],
		"all_keywords": ["클라우드", "솔루션", "ai", "게임", "모바일게임"]
	}`), 0o644))

	ind := filepath.Join(dir, "industries.json")
	require.NoError(t, os.WriteFile(ind, []byte(`{
		"게임업": ["게임", "퍼블리싱", "모바일게임"]
	}`), 0o644))

	return catalog.Load(kw, ind)
}

func TestFindExactMatches_PriorityBeatsGeneric(t *testing.T) {
	m := NewExactMatcher(testCatalog(t))

	matches := m.FindExactMatches("클라우드 솔루션을 제공하는 기업")
	require.Len(t, matches, 2)

	// 클라우드 is a priority keyword and the query contains one, so the
	// generic 솔루션 is suppressed below it regardless of other factors.
	assert.Equal(t, "클라우드", matches[0].Keyword)
	assert.Equal(t, "솔루션", matches[1].Keyword)
	assert.Greater(t, matches[0].PriorityScore, matches[1].PriorityScore)

	for _, c := range matches {
		assert.Equal(t, model.MatchExact, c.Type)
		assert.Equal(t, 1.0, c.Confidence)
	}
}

func TestFindExactMatches_EnglishPriorityTerms(t *testing.T) {
	m := NewExactMatcher(testCatalog(t))

	// The English forms count as priority terms just like their Korean
	// counterparts, so they push the extra generic-term penalty onto
	// 솔루션 even when no Korean priority keyword appears.
	plain := m.FindExactMatches("차량용 솔루션")
	require.Len(t, plain, 1)

	for _, q := range []string{"electric vehicle 솔루션", "renewable energy 솔루션"} {
		matches := m.FindExactMatches(q)
		require.Len(t, matches, 1, q)
		assert.Equal(t, "솔루션", matches[0].Keyword)
		assert.Less(t, matches[0].PriorityScore, plain[0].PriorityScore, q)
	}
}

func TestFindExactMatches_DuplicateAcrossCategories(t *testing.T) {
	m := NewExactMatcher(testCatalog(t))

	matches := m.FindExactMatches("게임 회사")
	require.Len(t, matches, 2)
	assert.Equal(t, "게임", matches[0].Keyword)
	assert.Equal(t, "게임", matches[1].Keyword)

	// game is a weighted category, misc is not
	cats := []string{matches[0].Category, matches[1].Category}
	assert.Equal(t, []string{"game", "misc"}, cats)
}

func TestFindExactMatches_CaseInsensitive(t *testing.T) {
	m := NewExactMatcher(testCatalog(t))
	matches := m.FindExactMatches("AI 기반 기업")
	require.NotEmpty(t, matches)
	assert.Equal(t, "ai", matches[0].Keyword)
}

func TestFindExactMatches_EmptyCatalog(t *testing.T) {
	m := NewExactMatcher(catalog.Empty())
	assert.Empty(t, m.FindExactMatches("클라우드 기업"))
}

func TestScoreKeyword_CompactCompoundBonus(t *testing.T) {
	// 모바일게임: 5 runes, no space, letters only
	withBonus := scoreKeyword("모바일게임", "game", false)
	// same length with a space loses the compound bonus
	without := scoreKeyword("모바일 게임", "game", false)
	assert.Equal(t, 500, withBonus-without+10) // space adds one rune of length score
}

func TestFindSimilar_IndustrySubstring(t *testing.T) {
	m := NewFuzzyMatcher(testCatalog(t))

	matches := m.FindSimilar("게임업 현황")
	require.NotEmpty(t, matches)

	first := matches[0]
	assert.Equal(t, "게임업", first.Keyword)
	assert.Equal(t, model.MatchSimilarIndustry, first.Type)
	assert.Equal(t, 0.9, first.Confidence)
	assert.Equal(t, []string{"게임", "퍼블리싱", "모바일게임"}, first.RelatedKeywords)
}

func TestFindSimilar_RatioAboveThresholdOnly(t *testing.T) {
	m := NewFuzzyMatcher(testCatalog(t))

	matches := m.FindSimilar("게임업")
	for _, c := range matches {
		if c.Type == model.MatchSimilarityBased {
			assert.Greater(t, c.Confidence, similarityThreshold)
		}
	}

	// 게임 vs 게임업 ratio is 2/3, above the cutoff
	found := false
	for _, c := range matches {
		if c.Type == model.MatchSimilarityBased && c.Keyword == "게임" {
			found = true
			assert.InDelta(t, 2.0/3.0, c.Confidence, 1e-9)
		}
	}
	assert.True(t, found)
}

func TestResolve_ExactBeforeFuzzy(t *testing.T) {
	r := NewResolver(testCatalog(t))

	matches := r.Resolve("게임업 유사기업")
	require.NotEmpty(t, matches)

	// confidence never increases down the list
	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].Confidence, matches[i].Confidence)
	}

	// every exact match precedes every fuzzy match
	sawFuzzy := false
	for _, c := range matches {
		if c.Type != model.MatchExact {
			sawFuzzy = true
		} else {
			assert.False(t, sawFuzzy, "exact match after a fuzzy match")
		}
	}
}

func TestResolve_Deterministic(t *testing.T) {
	r := NewResolver(testCatalog(t))
	first := r.Resolve("클라우드 게임 솔루션")
	second := r.Resolve("클라우드 게임 솔루션")
	assert.Equal(t, first, second)
}

func TestBest(t *testing.T) {
	r := NewResolver(testCatalog(t))

	best, ok := r.Best("클라우드 기업")
	require.True(t, ok)
	assert.Equal(t, "클라우드", best.Keyword)

	_, ok = NewResolver(catalog.Empty()).Best("가상자산 기업")
	assert.False(t, ok)
}
