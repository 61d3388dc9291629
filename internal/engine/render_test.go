package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dart-research/disclosure-cli/internal/analysis"
	"github.com/dart-research/disclosure-cli/internal/model"
)

func TestRenderSimilarCompanies(t *testing.T) {
	out := renderSimilarCompanies("가상자산", testReports())
	assert.Contains(t, out, "Found 2 peer-company disclosures")
	assert.Contains(t, out, "알파홀딩스 selected 업비트, 빗썸")
	assert.Contains(t, out, "https://dart.fss.or.kr/r1")

	assert.Contains(t, renderSimilarCompanies("음원", nil), "No peer-company disclosures")
}

func TestRenderFinancialRatios(t *testing.T) {
	out := renderFinancialRatios("금융", 2022, testReports())
	assert.Contains(t, out, "filed since 2022")
	assert.Contains(t, out, "mean 5.50")
	assert.Contains(t, out, "range 4.20-6.80")

	noRatio := []model.Report{{ID: "x", IssuerSector: "금융"}}
	assert.Contains(t, renderFinancialRatios("금융", 0, noRatio), "None of the matching reports disclose EV/Sales")
}

func TestRenderAnalysis_Insufficient(t *testing.T) {
	res := &analysis.Result{Kind: model.AggWACCTrend, Insufficient: true, Reason: "no WACC rows inside the trend grid"}
	out := renderAnalysis(res)
	assert.Contains(t, out, "Insufficient data")
	assert.Contains(t, out, "no WACC rows")
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(model.Table{
		Columns: []string{"sector", "median_wacc"},
		Rows:    [][]string{{"금융", "0.0880"}},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "sector")
	assert.Contains(t, lines[1], "0.0880")
}

func TestReportTable_TruncatesBusiness(t *testing.T) {
	long := strings.Repeat("가", 60)
	tab := ReportTable([]model.Report{{TargetBiz: long}})
	assert.Equal(t, strings.Repeat("가", 50)+"...", tab.Rows[0][4])
}
