package model

// MatchType describes how a keyword candidate was matched against a question.
type MatchType string

const (
	MatchExact           MatchType = "exact"
	MatchSimilarIndustry MatchType = "similar_industry"
	MatchSimilarityBased MatchType = "similarity_based"
)

// MatchCandidate is one keyword candidate extracted from a question.
// Candidates live only for the duration of a single query.
//
// Within a result set the externally visible order is confidence
// descending; PriorityScore is an internal tie-break applied among exact
// matches before results are merged.
type MatchCandidate struct {
	Keyword         string    `json:"keyword"`
	Category        string    `json:"category,omitempty"`
	Type            MatchType `json:"match_type"`
	Confidence      float64   `json:"confidence"`
	PriorityScore   int       `json:"priority_score,omitempty"`
	RelatedKeywords []string  `json:"related_keywords,omitempty"`
}
