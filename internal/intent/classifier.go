// Package intent decides which analysis operation a question asks for.
// Classification is an ordered rule chain: the first matching rule wins,
// and the order is a behavioral contract. A question naming both a
// similar-company term and an analytical term resolves to similar-company
// because that rule is evaluated first.
package intent

import (
	"strings"

	"github.com/dart-research/disclosure-cli/internal/model"
)

// similarCompanyTerms trigger the similar-company (peer set) lookup.
var similarCompanyTerms = []string{
	"유사기업", "유사", "similar company", "similar companies", "peer",
}

// analyticalTerms route to the aggregate analysis router.
var analyticalTerms = []string{
	"섹터", "sector",
	"중간값", "중앙값", "median",
	"wacc",
	"평가기관", "회계법인", "valuator", "valuation firm", "accounting firm",
	"위반", "violation",
	"미공시", "non-disclosure", "nondisclosure",
	"top", "상위",
	"최근", "recent",
	"영구현금흐름", "perpetual cash flow", "perpetual cashflow",
	"비영업자산 구성", "비영업자산", "non-operating asset",
	"업종", "industry",
	"거래", "transaction",
	"투자", "investment",
	"매핑", "mapping",
	"연도별 통계", "통계", "statistics",
	"추이", "trend",
}

// financialRatioTerms trigger the financial-ratio lookup.
var financialRatioTerms = []string{
	"ev/sales", "재무비율", "financial ratio",
}

// rule is one (predicate, kind) pair in the ordered chain.
type rule struct {
	name  string
	match func(q string) bool
	kind  model.IntentKind
}

// rules is the classification chain in evaluation order.
var rules = []rule{
	{"similar_company", matchAny(similarCompanyTerms), model.IntentSimilarCompany},
	{"aggregate", matchAny(analyticalTerms), model.IntentAggregate},
	{"financial_ratio", matchAny(financialRatioTerms), model.IntentFinancialRatio},
}

func matchAny(terms []string) func(string) bool {
	return func(q string) bool {
		for _, t := range terms {
			if strings.Contains(q, t) {
				return true
			}
		}
		return false
	}
}

// Classify maps a raw question to its intent kind. Questions matching no
// rule fall back to a generic sector search over the whole question text.
func Classify(question string) model.IntentKind {
	q := strings.ToLower(question)
	for _, r := range rules {
		if r.match(q) {
			return r.kind
		}
	}
	return model.IntentSectorSearch
}
