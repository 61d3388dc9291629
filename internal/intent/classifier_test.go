package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dart-research/disclosure-cli/internal/model"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name     string
		question string
		want     model.IntentKind
	}{
		{"similar company", "가상자산 사업을 하는 기업들이 선정한 유사기업은?", model.IntentSimilarCompany},
		{"similar english", "peer companies for cloud businesses", model.IntentSimilarCompany},
		{"aggregate wacc", "업종별 WACC 중앙값을 알려줘", model.IntentAggregate},
		{"aggregate valuator", "회계법인별 평균 할인율 비교", model.IntentAggregate},
		{"aggregate trend", "연도별 할인율 추이", model.IntentAggregate},
		{"financial ratio", "금융업 기업들의 EV/Sales 값은?", model.IntentFinancialRatio},
		{"financial ratio korean", "재무비율을 보여줘", model.IntentFinancialRatio},
		{"fallback", "게임 회사를 찾아줘", model.IntentSectorSearch},
		{"empty", "", model.IntentSectorSearch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.question))
		})
	}
}

// Rule order is contractual: a question naming both a similar-company
// term and an analytical term resolves to similar-company.
func TestClassify_RuleOrder(t *testing.T) {
	assert.Equal(t, model.IntentSimilarCompany,
		Classify("WACC가 높은 기업의 유사기업은?"))
	assert.Equal(t, model.IntentAggregate,
		Classify("섹터별 EV/Sales 중간값"))
}

func TestClassify_CaseInsensitive(t *testing.T) {
	assert.Equal(t, model.IntentAggregate, Classify("WACC Top 10"))
	assert.Equal(t, model.IntentFinancialRatio, Classify("EV/SALES 비교"))
}
