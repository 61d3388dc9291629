package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 0, levenshtein("게임", "게임"))
	assert.Equal(t, 1, levenshtein("게임", "게임사"))
	assert.Equal(t, 3, levenshtein("게임", "핀테크"))
	assert.Equal(t, 4, levenshtein("", "abcd"))
	assert.Equal(t, 2, levenshtein("kitten", "sitten"+"g"))
}

func TestSimilarityRatio(t *testing.T) {
	assert.InDelta(t, 1.0, similarityRatio("반도체", "반도체"), 1e-9)
	assert.InDelta(t, 2.0/3.0, similarityRatio("게임업", "게임"), 1e-9)
	assert.InDelta(t, 0.0, similarityRatio("게임", "핀테크"), 1e-9)
	assert.InDelta(t, 1.0, similarityRatio("", ""), 1e-9)
}
