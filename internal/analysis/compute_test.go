package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dart-research/disclosure-cli/internal/model"
)

func fp(v float64) *float64 { return &v }

func sampleReports() []model.Report {
	return []model.Report{
		{
			ID: "r1", FilingDate: "2024-03-15", IssuerName: "알파홀딩스", IssuerSector: "금융",
			TargetName: "베타게임즈", TargetSector: "게임", Valuator: "한영회계법인",
			Purpose: "타법인 주식 취득", WACC: fp(0.0850), GrowthRate: fp(0.0100),
			EVEBITDA: fp(8.2), DERatio: fp(0.45), PVFraction: fp(0.35),
			NOAValue: fp(120), EnterpriseV: fp(1000),
			NOAComposition: "현금, 투자부동산, 대여금",
		},
		{
			ID: "r2", FilingDate: "2024-07-02", IssuerName: "감마소프트", IssuerSector: "it",
			TargetName: "델타클라우드", TargetSector: "it", Valuator: "삼일회계법인",
			Purpose: "투자 판단", WACC: fp(0.1020), GrowthRate: fp(0.1100),
			EVEBITDA: fp(12.4), PVFraction: fp(0.60),
			NOAValue: fp(300), EnterpriseV: fp(900),
			NOAComposition: "현금; 단기금융상품",
		},
		{
			ID: "r3", FilingDate: "2023-11-20", IssuerName: "알파홀딩스", IssuerSector: "금융",
			TargetName: "엡실론바이오", TargetSector: "바이오", Valuator: "한영회계법인",
			Purpose: "출자", WACC: fp(0.0910), GrowthRate: fp(0.0910),
			EVEBITDA: fp(15.0), DERatio: fp(0.80), PVFraction: fp(0.20),
			NOAComposition: "현금, 투자부동산",
		},
		{
			ID: "r4", FilingDate: "2023-05-08", IssuerName: "제타산업", IssuerSector: "제조",
			TargetName: "에타정밀", TargetSector: "제조", Valuator: "삼정회계법인",
			Purpose: "영업양수", WACC: fp(0.0780),
		},
	}
}

func TestIndustryWACCMedian(t *testing.T) {
	res := Run(model.AggregateQuery{Kind: model.AggIndustryWACCMedian}, sampleReports())
	require.False(t, res.Insufficient)
	require.Len(t, res.Sections, 1)

	tab := res.Sections[0].Table
	require.Len(t, tab.Rows, 3)

	// sorted by median WACC descending: it 0.1020, 금융 0.0880, 제조 0.0780
	assert.Equal(t, []string{"it", "0.1020", "1"}, tab.Rows[0])
	assert.Equal(t, []string{"금융", "0.0880", "2"}, tab.Rows[1])
	assert.Equal(t, []string{"제조", "0.0780", "1"}, tab.Rows[2])
}

func TestGrowthWACCViolation(t *testing.T) {
	res := Run(model.AggregateQuery{Kind: model.AggGrowthWACCViolation}, sampleReports())
	require.False(t, res.Insufficient)

	tab := res.Sections[0].Table
	// r2 (g > WACC) and r3 (g == WACC) are flagged; r1 is not; r4 lacks g
	require.Len(t, tab.Rows, 2)
	assert.Equal(t, "감마소프트", tab.Rows[0][1])
	assert.Equal(t, "알파홀딩스", tab.Rows[1][1])
	assert.Contains(t, res.Notes[0], "2 of 3")
}

func TestValuatorWACCComparison(t *testing.T) {
	res := Run(model.AggregateQuery{Kind: model.AggValuatorWACCComparison}, sampleReports())
	require.False(t, res.Insufficient)

	tab := res.Sections[0].Table
	require.Len(t, tab.Rows, 3)
	assert.Equal(t, []string{"삼일회계법인", "1", "0.1020", "0.1020"}, tab.Rows[0])
	assert.Equal(t, []string{"한영회계법인", "2", "0.0880", "0.0880"}, tab.Rows[1])
}

func TestDEDisclosureImpact(t *testing.T) {
	res := Run(model.AggregateQuery{Kind: model.AggDEDisclosureImpact}, sampleReports())
	require.False(t, res.Insufficient)

	tab := res.Sections[0].Table
	assert.Equal(t, []string{"D/E disclosed", "2", "0.0880"}, tab.Rows[0])
	assert.Equal(t, []string{"D/E not disclosed", "2", "0.0900"}, tab.Rows[1])
	assert.Contains(t, res.Notes[0], "-0.0020")
}

func TestWACCTopN(t *testing.T) {
	res := Run(model.AggregateQuery{Kind: model.AggWACCTopN, Params: model.AggregateParams{TopN: 2}}, sampleReports())
	require.False(t, res.Insufficient)

	tab := res.Sections[0].Table
	require.Len(t, tab.Rows, 2)
	assert.Equal(t, "감마소프트", tab.Rows[0][1])
	assert.Equal(t, "알파홀딩스", tab.Rows[1][1])
	assert.Equal(t, "0.0910", tab.Rows[1][4])
}

func TestRecentValuatorActivity(t *testing.T) {
	res := Run(model.AggregateQuery{Kind: model.AggRecentValuatorActivity}, sampleReports())
	require.False(t, res.Insufficient)

	// max filing date 2024-07-02, window reaches back to 2023-07-03:
	// r1, r2, r3 qualify, r4 does not
	tab := res.Sections[0].Table
	require.Len(t, tab.Rows, 2)
	assert.Equal(t, []string{"한영회계법인", "2"}, tab.Rows[0])
	assert.Equal(t, []string{"삼일회계법인", "1"}, tab.Rows[1])
}

func TestIndustryMultipleMedian_DefaultMetric(t *testing.T) {
	res := Run(model.AggregateQuery{Kind: model.AggIndustryMultipleMedian}, sampleReports())
	require.False(t, res.Insufficient)
	assert.Equal(t, "Median EV/EBITDA by sector", res.Sections[0].Title)
}

func TestPerpetualCashflowRatio(t *testing.T) {
	res := Run(model.AggregateQuery{Kind: model.AggPerpetualCashflowRatio}, sampleReports())
	require.False(t, res.Insufficient)
	require.Len(t, res.Sections, 3)

	// ratios: r1 0.65, r2 0.40, r3 0.80; two at or above 0.5
	high := res.Sections[0].Table
	require.Len(t, high.Rows, 2)
	assert.Equal(t, "0.6500", high.Rows[0][3])
	assert.Equal(t, "0.8000", high.Rows[1][3])

	dist := res.Sections[2].Table
	assert.Equal(t, []string{"0.25-0.50", "1"}, dist.Rows[1])
	assert.Equal(t, []string{"0.50-0.75", "1"}, dist.Rows[2])
	assert.Equal(t, []string{"0.75-1.00", "1"}, dist.Rows[3])
}

func TestNOAComposition(t *testing.T) {
	res := Run(model.AggregateQuery{Kind: model.AggNOAComposition}, sampleReports())
	require.False(t, res.Insufficient)

	tab := res.Sections[0].Table
	// 현금 x3, then 투자부동산 x2, then singletons alphabetically
	assert.Equal(t, []string{"현금", "3"}, tab.Rows[0])
	assert.Equal(t, []string{"투자부동산", "2"}, tab.Rows[1])
}

func TestInvestmentMapping(t *testing.T) {
	res := Run(model.AggregateQuery{Kind: model.AggInvestmentMapping}, sampleReports())
	require.False(t, res.Insufficient)

	tab := res.Sections[0].Table
	// r2 purpose contains 투자, r3 contains 출자; r1/r4 purposes do not match
	require.Len(t, tab.Rows, 2)
	assert.Equal(t, []string{"감마소프트", "1"}, tab.Rows[0])
	assert.Equal(t, []string{"알파홀딩스", "1"}, tab.Rows[1])
}

func TestPortfolio(t *testing.T) {
	tab := Portfolio(sampleReports(), "알파홀딩스")
	require.Len(t, tab.Rows, 1)
	assert.Equal(t, "엡실론바이오", tab.Rows[0][1])

	assert.Empty(t, Portfolio(sampleReports(), "없는회사").Rows)
}

func TestSectorTransactionMatrix(t *testing.T) {
	res := Run(model.AggregateQuery{Kind: model.AggSectorTransactionMatrix}, sampleReports())
	require.False(t, res.Insufficient)

	matrix := res.Sections[0].Table
	assert.Equal(t, []string{"issuer_sector", "it", "게임", "바이오", "제조"}, matrix.Columns)

	// 금융 row: one 게임 deal, one 바이오 deal
	var found bool
	for _, row := range matrix.Rows {
		if row[0] == "금융" {
			found = true
			assert.Equal(t, []string{"금융", "0", "1", "1", "0"}, row)
		}
	}
	assert.True(t, found)
}

func TestNOAEVRatio(t *testing.T) {
	res := Run(model.AggregateQuery{Kind: model.AggNOAEVRatio}, sampleReports())
	require.False(t, res.Insufficient)

	top := res.Sections[0].Table
	require.Len(t, top.Rows, 2)
	// r2 300/900 = 0.3333 ahead of r1 120/1000 = 0.12
	assert.Equal(t, "0.3333", top.Rows[0][3])
	assert.Equal(t, "0.1200", top.Rows[1][3])
}

func TestYearSectorAverageWACC(t *testing.T) {
	q := model.AggregateQuery{
		Kind:   model.AggYearSectorAverageWACC,
		Params: model.AggregateParams{Year: 2024},
	}
	res := Run(q, sampleReports())
	require.False(t, res.Insufficient)

	tab := res.Sections[0].Table
	require.Len(t, tab.Rows, 1)
	assert.Equal(t, "0.0935", tab.Rows[0][0]) // mean of 0.0850, 0.1020
	assert.Equal(t, "2", tab.Rows[0][3])
}

func TestYearlyKeyStatistics(t *testing.T) {
	q := model.AggregateQuery{
		Kind:   model.AggYearlyKeyStatistics,
		Params: model.AggregateParams{Year: 2023},
	}
	res := Run(q, sampleReports())
	require.False(t, res.Insufficient)

	overview := res.Sections[0].Table
	assert.Equal(t, []string{"2", "2", "2", "2"}, overview.Rows[0])
}

func TestWACCTrend(t *testing.T) {
	res := Run(model.AggregateQuery{Kind: model.AggWACCTrend}, sampleReports())
	require.False(t, res.Insufficient)
	require.Len(t, res.Sections, 2)

	meanT := res.Sections[0].Table
	assert.Equal(t, append([]string{"year"}, trendSectors...), meanT.Columns)
	require.Len(t, meanT.Rows, len(trendYears))

	// 2024 금융 cell holds r1's WACC
	assert.Equal(t, "2024", meanT.Rows[2][0])
	assert.Equal(t, "0.0850", meanT.Rows[2][1])
}

func TestRun_InsufficientData(t *testing.T) {
	empty := []model.Report{{ID: "x", FilingDate: "2024-01-01", IssuerName: "회사"}}

	for _, kind := range []model.AggregateKind{
		model.AggIndustryWACCMedian,
		model.AggGrowthWACCViolation,
		model.AggDEDisclosureImpact,
		model.AggWACCTopN,
		model.AggPerpetualCashflowRatio,
		model.AggNOAComposition,
		model.AggInvestmentMapping,
		model.AggNOAEVRatio,
		model.AggWACCTrend,
	} {
		t.Run(string(kind), func(t *testing.T) {
			res := Run(model.AggregateQuery{Kind: kind}, empty)
			assert.True(t, res.Insufficient)
			assert.NotEmpty(t, res.Reason)
		})
	}
}
