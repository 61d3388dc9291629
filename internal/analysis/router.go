// Package analysis routes analytical questions to a fixed catalog of
// aggregate computations over disclosure report rows and executes them.
// Routing is an ordered rule table evaluated top to bottom; the first
// rule whose textual precondition holds wins, and reordering the table
// changes observable behavior.
package analysis

import (
	"strings"

	"github.com/dart-research/disclosure-cli/internal/model"
)

// Rule is one (predicate, kind, extractor) entry of the routing table.
type Rule struct {
	Kind    model.AggregateKind
	Match   func(q string) bool
	Extract func(question, q string) model.AggregateParams
}

func sectorTerm(q string) bool {
	return containsAny(q, "섹터", "sector", "업종", "industry")
}

func medianTerm(q string) bool {
	return containsAny(q, "중간값", "중앙값", "median")
}

func valuatorTerm(q string) bool {
	return containsAny(q, "평가기관", "회계법인", "valuator", "valuation firm", "accounting firm")
}

func noParams(string, string) model.AggregateParams { return model.AggregateParams{} }

// Rules is the routing table in strict descending priority.
var Rules = []Rule{
	{
		Kind: model.AggIndustryWACCMedian,
		Match: func(q string) bool {
			return sectorTerm(q) && strings.Contains(q, "wacc") && medianTerm(q)
		},
		Extract: noParams,
	},
	{
		Kind: model.AggValuatorWACCComparison,
		Match: func(q string) bool {
			return valuatorTerm(q) && strings.Contains(q, "wacc") &&
				(containsAny(q, "비교", "compare") || medianTerm(q))
		},
		Extract: noParams,
	},
	{
		Kind: model.AggGrowthWACCViolation,
		Match: func(q string) bool {
			return (containsAny(q, "위반", "violation") || mentionsGrowthSymbol(q)) &&
				strings.Contains(q, "wacc")
		},
		Extract: noParams,
	},
	{
		Kind: model.AggDEDisclosureImpact,
		Match: func(q string) bool {
			return containsAny(q, "미공시", "non-disclosure", "nondisclosure") &&
				containsAny(q, "d/e", "부채비율", "debt ratio", "debt-ratio")
		},
		Extract: noParams,
	},
	{
		Kind: model.AggWACCTopN,
		Match: func(q string) bool {
			return containsAny(q, "top", "상위") && strings.Contains(q, "wacc")
		},
		Extract: func(question, q string) model.AggregateParams {
			return model.AggregateParams{TopN: ExtractTopN(question)}
		},
	},
	{
		Kind: model.AggRecentValuatorActivity,
		Match: func(q string) bool {
			return containsAny(q, "최근", "recent") && valuatorTerm(q)
		},
		Extract: noParams,
	},
	{
		Kind: model.AggIndustryMultipleMedian,
		Match: func(q string) bool {
			return sectorTerm(q) && medianTerm(q) && ExtractMetric(q) != ""
		},
		Extract: func(question, q string) model.AggregateParams {
			return model.AggregateParams{Metric: ExtractMetric(question)}
		},
	},
	{
		Kind: model.AggPerpetualCashflowRatio,
		Match: func(q string) bool {
			return containsAny(q, "영구현금흐름", "perpetual cash flow", "perpetual cashflow") &&
				containsAny(q, "비중", "비율", "ratio")
		},
		Extract: noParams,
	},
	{
		Kind: model.AggNOAComposition,
		Match: func(q string) bool {
			if containsAny(q, "비영업자산 구성", "non-operating asset composition") {
				return true
			}
			return containsAny(q, "비영업자산", "non-operating asset") &&
				containsAny(q, "구성", "composition")
		},
		Extract: func(question, q string) model.AggregateParams {
			return model.AggregateParams{Sector: ExtractSector(question)}
		},
	},
	{
		Kind: model.AggInvestmentMapping,
		Match: func(q string) bool {
			return containsAny(q, "투자", "investment") && containsAny(q, "매핑", "mapping")
		},
		Extract: noParams,
	},
	{
		Kind: model.AggSectorTransactionMatrix,
		Match: func(q string) bool {
			return sectorTerm(q) &&
				containsAny(q, "인수", "acquisition", "매각", "처분", "disposal", "거래", "transaction")
		},
		Extract: noParams,
	},
	{
		Kind: model.AggNOAEVRatio,
		Match: func(q string) bool {
			return containsAny(q, "기업가치", "enterprise value") &&
				containsAny(q, "비영업자산", "non-operating asset") &&
				containsAny(q, "높", "high")
		},
		Extract: noParams,
	},
	{
		Kind: model.AggYearSectorAverageWACC,
		Match: func(q string) bool {
			y, ok := ExtractYear(q)
			return ok && y >= 2022 && y <= 2025 &&
				strings.Contains(q, "wacc") && containsAny(q, "평균", "average")
		},
		Extract: func(question, q string) model.AggregateParams {
			y, _ := ExtractYear(question)
			return model.AggregateParams{Year: y, Sector: ExtractSector(question)}
		},
	},
	{
		Kind: model.AggYearlyKeyStatistics,
		Match: func(q string) bool {
			_, ok := ExtractYear(q)
			return ok && containsAny(q, "연도별 통계", "yearly statistics", "통계", "statistics")
		},
		Extract: func(question, q string) model.AggregateParams {
			y, _ := ExtractYear(question)
			return model.AggregateParams{Year: y}
		},
	},
	{
		Kind: model.AggWACCTrend,
		Match: func(q string) bool {
			return containsAny(q, "추이", "trend") && strings.Contains(q, "wacc") &&
				(containsAny(q, "연도", "yearly", "year") || sectorTerm(q))
		},
		Extract: noParams,
	},
}

// Route resolves an analytical question to an aggregate computation.
// The second return is false when no rule matches; that is an expected
// outcome the caller must branch on, not an error.
func Route(question string) (model.AggregateQuery, bool) {
	q := strings.ToLower(question)
	for _, r := range Rules {
		if r.Match(q) {
			return model.AggregateQuery{Kind: r.Kind, Params: r.Extract(question, q)}, true
		}
	}
	return model.AggregateQuery{}, false
}
