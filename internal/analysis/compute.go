package analysis

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dart-research/disclosure-cli/internal/model"
)

// Section is one titled table within an aggregate result.
type Section struct {
	Title string      `json:"title"`
	Table model.Table `json:"table"`
}

// Result is the outcome of one aggregate computation. Insufficient marks
// results that could not be computed because the rows lack the fields the
// rule requires; that is a degraded answer, not an error.
type Result struct {
	Kind         model.AggregateKind   `json:"kind"`
	Params       model.AggregateParams `json:"params"`
	Sections     []Section             `json:"sections,omitempty"`
	Notes        []string              `json:"notes,omitempty"`
	Insufficient bool                  `json:"insufficient,omitempty"`
	Reason       string                `json:"reason,omitempty"`
}

// trendYears and trendSectors define the fixed grid of the WACC trend pivot.
var trendYears = []int{2022, 2023, 2024, 2025}

var trendSectors = []string{"금융", "it", "바이오", "게임", "제조", "반도체"}

// investmentPurposeLabels is the fixed set of report-purpose labels
// treated as investment filings.
var investmentPurposeLabels = []string{"투자", "출자", "지분 취득", "investment"}

// Run executes the routed aggregate over the given rows.
func Run(q model.AggregateQuery, reports []model.Report) *Result {
	switch q.Kind {
	case model.AggIndustryWACCMedian:
		return industryWACCMedian(q, reports)
	case model.AggValuatorWACCComparison:
		return valuatorWACCComparison(q, reports)
	case model.AggGrowthWACCViolation:
		return growthWACCViolation(q, reports)
	case model.AggDEDisclosureImpact:
		return deDisclosureImpact(q, reports)
	case model.AggWACCTopN:
		return waccTopN(q, reports)
	case model.AggRecentValuatorActivity:
		return recentValuatorActivity(q, reports)
	case model.AggIndustryMultipleMedian:
		return industryMultipleMedian(q, reports)
	case model.AggPerpetualCashflowRatio:
		return perpetualCashflowRatio(q, reports)
	case model.AggNOAComposition:
		return noaComposition(q, reports)
	case model.AggInvestmentMapping:
		return investmentMapping(q, reports)
	case model.AggSectorTransactionMatrix:
		return sectorTransactionMatrix(q, reports)
	case model.AggNOAEVRatio:
		return noaEVRatio(q, reports)
	case model.AggYearSectorAverageWACC:
		return yearSectorAverageWACC(q, reports)
	case model.AggYearlyKeyStatistics:
		return yearlyKeyStatistics(q, reports)
	case model.AggWACCTrend:
		return waccTrend(q, reports)
	}
	return insufficient(q, "unknown aggregate kind")
}

func insufficient(q model.AggregateQuery, reason string) *Result {
	return &Result{Kind: q.Kind, Params: q.Params, Insufficient: true, Reason: reason}
}

func f4(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }
func itoa(n int) string { return strconv.Itoa(n) }

// sectorOf prefers the issuer's sector classification and falls back to
// the target's, matching how filings leave one of the two blank.
func sectorOf(r model.Report) string {
	if s := strings.TrimSpace(r.IssuerSector); s != "" {
		return s
	}
	return strings.TrimSpace(r.TargetSector)
}

// matchesSector mirrors the store's LIKE semantics for in-memory
// filtering: the sector keyword may appear in either sector column or in
// the target's business description.
func matchesSector(r model.Report, sector string) bool {
	if sector == "" {
		return true
	}
	s := strings.ToLower(sector)
	return strings.Contains(strings.ToLower(r.IssuerSector), s) ||
		strings.Contains(strings.ToLower(r.TargetSector), s) ||
		strings.Contains(strings.ToLower(r.TargetBiz), s)
}

// groupedVals collects a numeric field per group key, skipping rows where
// the key is blank or the value is missing.
func groupedVals(reports []model.Report, key func(model.Report) string, val func(model.Report) *float64) map[string][]float64 {
	groups := map[string][]float64{}
	for _, r := range reports {
		k := key(r)
		v := val(r)
		if k == "" || v == nil {
			continue
		}
		groups[k] = append(groups[k], *v)
	}
	return groups
}

func sortedKeys(m map[string][]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func industryWACCMedian(q model.AggregateQuery, reports []model.Report) *Result {
	groups := groupedVals(reports, sectorOf, func(r model.Report) *float64 { return r.WACC })
	if len(groups) == 0 {
		return insufficient(q, "no rows disclose both a sector and a WACC")
	}

	type row struct {
		sector string
		med    float64
		n      int
	}
	rows := make([]row, 0, len(groups))
	for _, sector := range sortedKeys(groups) {
		vals := groups[sector]
		rows = append(rows, row{sector, median(vals), len(vals)})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].med > rows[j].med })

	t := model.Table{Columns: []string{"sector", "median_wacc", "reports"}}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.sector, f4(r.med), itoa(r.n)})
	}
	return &Result{Kind: q.Kind, Params: q.Params, Sections: []Section{{Title: "Median WACC by sector", Table: t}}}
}

func valuatorWACCComparison(q model.AggregateQuery, reports []model.Report) *Result {
	groups := groupedVals(reports,
		func(r model.Report) string { return strings.TrimSpace(r.Valuator) },
		func(r model.Report) *float64 { return r.WACC })
	if len(groups) == 0 {
		return insufficient(q, "no rows disclose both a valuator and a WACC")
	}

	type row struct {
		valuator  string
		n         int
		mean, med float64
	}
	rows := make([]row, 0, len(groups))
	for _, v := range sortedKeys(groups) {
		vals := groups[v]
		rows = append(rows, row{v, len(vals), mean(vals), median(vals)})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].med > rows[j].med })

	t := model.Table{Columns: []string{"valuator", "reports", "mean_wacc", "median_wacc"}}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.valuator, itoa(r.n), f4(r.mean), f4(r.med)})
	}
	return &Result{Kind: q.Kind, Params: q.Params, Sections: []Section{{Title: "WACC by valuation firm", Table: t}}}
}

func growthWACCViolation(q model.AggregateQuery, reports []model.Report) *Result {
	t := model.Table{Columns: []string{"filing_date", "issuer", "target", "g", "wacc"}}
	checked := 0
	for _, r := range reports {
		if r.GrowthRate == nil || r.WACC == nil {
			continue
		}
		checked++
		if *r.GrowthRate >= *r.WACC {
			t.Rows = append(t.Rows, []string{r.FilingDate, r.IssuerName, r.TargetName, f4(*r.GrowthRate), f4(*r.WACC)})
		}
	}
	if checked == 0 {
		return insufficient(q, "no rows disclose both g and WACC")
	}
	return &Result{
		Kind: q.Kind, Params: q.Params,
		Sections: []Section{{Title: "Reports where g >= WACC", Table: t}},
		Notes: []string{fmt.Sprintf("%d of %d checked reports assume a perpetual growth rate at or above the discount rate", len(t.Rows), checked)},
	}
}

func deDisclosureImpact(q model.AggregateQuery, reports []model.Report) *Result {
	var withDE, withoutDE []float64
	for _, r := range reports {
		if r.WACC == nil {
			continue
		}
		if r.DERatio != nil {
			withDE = append(withDE, *r.WACC)
		} else {
			withoutDE = append(withoutDE, *r.WACC)
		}
	}
	if len(withDE) == 0 || len(withoutDE) == 0 {
		return insufficient(q, "need WACC rows both with and without a disclosed D/E")
	}

	t := model.Table{
		Columns: []string{"partition", "reports", "mean_wacc"},
		Rows: [][]string{
			{"D/E disclosed", itoa(len(withDE)), f4(mean(withDE))},
			{"D/E not disclosed", itoa(len(withoutDE)), f4(mean(withoutDE))},
		},
	}
	delta := mean(withDE) - mean(withoutDE)
	return &Result{
		Kind: q.Kind, Params: q.Params,
		Sections: []Section{{Title: "Mean WACC by D/E disclosure", Table: t}},
		Notes:    []string{fmt.Sprintf("mean WACC delta (disclosed - undisclosed): %s", f4(delta))},
	}
}

func waccTopN(q model.AggregateQuery, reports []model.Report) *Result {
	n := q.Params.TopN
	if n <= 0 {
		n = 10
	}
	var rows []model.Report
	for _, r := range reports {
		if r.WACC != nil {
			rows = append(rows, r)
		}
	}
	if len(rows) == 0 {
		return insufficient(q, "no rows disclose a WACC")
	}
	sort.SliceStable(rows, func(i, j int) bool { return *rows[i].WACC > *rows[j].WACC })
	if len(rows) > n {
		rows = rows[:n]
	}

	t := model.Table{Columns: []string{"filing_date", "issuer", "target", "sector", "wacc"}}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.FilingDate, r.IssuerName, r.TargetName, sectorOf(r), f4(*r.WACC)})
	}
	return &Result{Kind: q.Kind, Params: q.Params, Sections: []Section{{Title: fmt.Sprintf("Top %d reports by WACC", n), Table: t}}}
}

func recentValuatorActivity(q model.AggregateQuery, reports []model.Report) *Result {
	var maxDate time.Time
	for _, r := range reports {
		if t, ok := r.FilingTime(); ok && t.After(maxDate) {
			maxDate = t
		}
	}
	if maxDate.IsZero() {
		return insufficient(q, "no rows carry a parsable filing date")
	}
	cutoff := maxDate.AddDate(0, 0, -365)

	counts := map[string]int{}
	for _, r := range reports {
		t, ok := r.FilingTime()
		if !ok || t.Before(cutoff) {
			continue
		}
		if v := strings.TrimSpace(r.Valuator); v != "" {
			counts[v]++
		}
	}
	if len(counts) == 0 {
		return insufficient(q, "no valuator activity inside the trailing window")
	}

	t := countTable(counts, 5, []string{"valuator", "reports"})
	return &Result{
		Kind: q.Kind, Params: q.Params,
		Sections: []Section{{Title: "Most active valuators, trailing 365 days", Table: t}},
		Notes:    []string{fmt.Sprintf("window: %s to %s", cutoff.Format("2006-01-02"), maxDate.Format("2006-01-02"))},
	}
}

func industryMultipleMedian(q model.AggregateQuery, reports []model.Report) *Result {
	metric := q.Params.Metric
	if metric == "" {
		metric = "EV/EBITDA"
	}
	groups := groupedVals(reports, sectorOf, func(r model.Report) *float64 { return r.Multiple(metric) })
	if len(groups) == 0 {
		return insufficient(q, fmt.Sprintf("no rows disclose both a sector and %s", metric))
	}

	type row struct {
		sector string
		med    float64
		n      int
	}
	rows := make([]row, 0, len(groups))
	for _, sector := range sortedKeys(groups) {
		vals := groups[sector]
		rows = append(rows, row{sector, median(vals), len(vals)})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].med > rows[j].med })

	t := model.Table{Columns: []string{"sector", "median_" + strings.ToLower(strings.ReplaceAll(metric, "/", "_")), "reports"}}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.sector, f4(r.med), itoa(r.n)})
	}
	return &Result{Kind: q.Kind, Params: q.Params, Sections: []Section{{Title: "Median " + metric + " by sector", Table: t}}}
}

func perpetualCashflowRatio(q model.AggregateQuery, reports []model.Report) *Result {
	type entry struct {
		r     model.Report
		ratio float64
	}
	var entries []entry
	for _, r := range reports {
		if r.PVFraction == nil || *r.PVFraction < 0 || *r.PVFraction > 1 {
			continue
		}
		entries = append(entries, entry{r, 1 - *r.PVFraction})
	}
	if len(entries) == 0 {
		return insufficient(q, "no rows disclose a present-value fraction in [0,1]")
	}

	high := model.Table{Columns: []string{"filing_date", "issuer", "target", "terminal_value_ratio"}}
	for _, e := range entries {
		if e.ratio >= 0.5 {
			high.Rows = append(high.Rows, []string{e.r.FilingDate, e.r.IssuerName, e.r.TargetName, f4(e.ratio)})
		}
	}

	bySector := map[string][]float64{}
	for _, e := range entries {
		if s := sectorOf(e.r); s != "" {
			bySector[s] = append(bySector[s], e.ratio)
		}
	}
	sectorT := model.Table{Columns: []string{"sector", "mean_ratio", "reports"}}
	for _, s := range sortedKeys(bySector) {
		sectorT.Rows = append(sectorT.Rows, []string{s, f4(mean(bySector[s])), itoa(len(bySector[s]))})
	}

	buckets := []struct {
		label    string
		lo, hi   float64
	}{
		{"0.00-0.25", 0, 0.25},
		{"0.25-0.50", 0.25, 0.5},
		{"0.50-0.75", 0.5, 0.75},
		{"0.75-1.00", 0.75, 1.0000001},
	}
	dist := model.Table{Columns: []string{"ratio_bucket", "reports"}}
	for _, b := range buckets {
		n := 0
		for _, e := range entries {
			if e.ratio >= b.lo && e.ratio < b.hi {
				n++
			}
		}
		dist.Rows = append(dist.Rows, []string{b.label, itoa(n)})
	}

	return &Result{
		Kind: q.Kind, Params: q.Params,
		Sections: []Section{
			{Title: "Reports with terminal-value ratio >= 0.5", Table: high},
			{Title: "Mean terminal-value ratio by sector", Table: sectorT},
			{Title: "Terminal-value ratio distribution", Table: dist},
		},
	}
}

func noaComposition(q model.AggregateQuery, reports []model.Report) *Result {
	overall := map[string]int{}
	selected := map[string]int{}
	for _, r := range reports {
		for _, tok := range tokenizeComposition(r.NOAComposition) {
			overall[tok]++
			if q.Params.Sector != "" && matchesSector(r, q.Params.Sector) {
				selected[tok]++
			}
		}
	}
	if len(overall) == 0 {
		return insufficient(q, "no rows carry a non-operating-asset composition")
	}

	sections := []Section{
		{Title: "Most common non-operating assets", Table: countTable(overall, 5, []string{"asset", "mentions"})},
	}
	if q.Params.Sector != "" && len(selected) > 0 {
		sections = append(sections, Section{
			Title: fmt.Sprintf("Most common non-operating assets, sector %q", q.Params.Sector),
			Table: countTable(selected, 5, []string{"asset", "mentions"}),
		})
	}
	return &Result{Kind: q.Kind, Params: q.Params, Sections: sections}
}

// tokenizeComposition splits a comma-delimited free-text asset list.
func tokenizeComposition(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var toks []string
	for _, t := range strings.Split(strings.ReplaceAll(s, ";", ","), ",") {
		if t = strings.TrimSpace(t); t != "" {
			toks = append(toks, t)
		}
	}
	return toks
}

func isInvestmentPurpose(purpose string) bool {
	p := strings.ToLower(purpose)
	for _, label := range investmentPurposeLabels {
		if strings.Contains(p, strings.ToLower(label)) {
			return true
		}
	}
	return false
}

func investmentMapping(q model.AggregateQuery, reports []model.Report) *Result {
	counts := map[string]int{}
	for _, r := range reports {
		if isInvestmentPurpose(r.Purpose) && strings.TrimSpace(r.IssuerName) != "" {
			counts[r.IssuerName]++
		}
	}
	if len(counts) == 0 {
		return insufficient(q, "no rows carry an investment-purpose label")
	}
	t := countTable(counts, 0, []string{"issuer", "investment_filings"})
	return &Result{Kind: q.Kind, Params: q.Params, Sections: []Section{{Title: "Issuers by investment filings", Table: t}}}
}

// Portfolio lists one issuer's investment filings for mapping drill-down.
func Portfolio(reports []model.Report, issuer string) model.Table {
	t := model.Table{Columns: []string{"filing_date", "target", "target_sector", "purpose"}}
	for _, r := range reports {
		if !strings.EqualFold(strings.TrimSpace(r.IssuerName), strings.TrimSpace(issuer)) {
			continue
		}
		if !isInvestmentPurpose(r.Purpose) {
			continue
		}
		t.Rows = append(t.Rows, []string{r.FilingDate, r.TargetName, r.TargetSector, r.Purpose})
	}
	return t
}

func sectorTransactionMatrix(q model.AggregateQuery, reports []model.Report) *Result {
	type cell struct{ from, to string }
	counts := map[cell]int{}
	fromSet := map[string]bool{}
	toSet := map[string]bool{}
	purposes := map[string]int{}
	for _, r := range reports {
		from := strings.TrimSpace(r.IssuerSector)
		to := strings.TrimSpace(r.TargetSector)
		if from == "" || to == "" {
			continue
		}
		counts[cell{from, to}]++
		fromSet[from] = true
		toSet[to] = true
		if p := strings.TrimSpace(r.Purpose); p != "" {
			purposes[p]++
		}
	}
	if len(counts) == 0 {
		return insufficient(q, "no rows disclose both issuer and target sectors")
	}

	froms := setKeys(fromSet)
	tos := setKeys(toSet)
	matrix := model.Table{Columns: append([]string{"issuer_sector"}, tos...)}
	for _, from := range froms {
		row := []string{from}
		for _, to := range tos {
			row = append(row, itoa(counts[cell{from, to}]))
		}
		matrix.Rows = append(matrix.Rows, row)
	}

	sections := []Section{{Title: "Transactions by issuer sector x target sector", Table: matrix}}
	if len(purposes) > 0 {
		sections = append(sections, Section{Title: "Transactions by report purpose", Table: countTable(purposes, 0, []string{"purpose", "reports"})})
	}
	return &Result{Kind: q.Kind, Params: q.Params, Sections: sections}
}

func setKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func noaEVRatio(q model.AggregateQuery, reports []model.Report) *Result {
	type entry struct {
		r     model.Report
		ratio float64
	}
	var entries []entry
	for _, r := range reports {
		if r.NOAValue == nil || r.EnterpriseV == nil || *r.EnterpriseV <= 0 {
			continue
		}
		entries = append(entries, entry{r, *r.NOAValue / *r.EnterpriseV})
	}
	if len(entries) == 0 {
		return insufficient(q, "no rows disclose both non-operating assets and enterprise value")
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].ratio > entries[j].ratio })

	top := model.Table{Columns: []string{"filing_date", "issuer", "target", "noa_ev_ratio"}}
	for i, e := range entries {
		if i == 10 {
			break
		}
		top.Rows = append(top.Rows, []string{e.r.FilingDate, e.r.IssuerName, e.r.TargetName, f4(e.ratio)})
	}

	bySector := map[string][]float64{}
	for _, e := range entries {
		if s := sectorOf(e.r); s != "" {
			bySector[s] = append(bySector[s], e.ratio)
		}
	}
	sectorT := model.Table{Columns: []string{"sector", "mean_noa_ev_ratio", "reports"}}
	for _, s := range sortedKeys(bySector) {
		sectorT.Rows = append(sectorT.Rows, []string{s, f4(mean(bySector[s])), itoa(len(bySector[s]))})
	}

	return &Result{
		Kind: q.Kind, Params: q.Params,
		Sections: []Section{
			{Title: "Top 10 reports by NOA/EV ratio", Table: top},
			{Title: "Mean NOA/EV ratio by sector", Table: sectorT},
		},
	}
}

func yearSectorAverageWACC(q model.AggregateQuery, reports []model.Report) *Result {
	var vals []float64
	for _, r := range reports {
		if r.FilingYear() != q.Params.Year || !matchesSector(r, q.Params.Sector) {
			continue
		}
		if r.WACC != nil {
			vals = append(vals, *r.WACC)
		}
	}
	if len(vals) == 0 {
		return insufficient(q, fmt.Sprintf("no WACC rows for year %d", q.Params.Year))
	}

	t := model.Table{
		Columns: []string{"mean_wacc", "median_wacc", "stddev_wacc", "samples"},
		Rows:    [][]string{{f4(mean(vals)), f4(median(vals)), f4(stddev(vals)), itoa(len(vals))}},
	}
	title := fmt.Sprintf("WACC summary for %d", q.Params.Year)
	if q.Params.Sector != "" {
		title += fmt.Sprintf(", sector %q", q.Params.Sector)
	}
	return &Result{Kind: q.Kind, Params: q.Params, Sections: []Section{{Title: title, Table: t}}}
}

func yearlyKeyStatistics(q model.AggregateQuery, reports []model.Report) *Result {
	var rows []model.Report
	for _, r := range reports {
		if r.FilingYear() == q.Params.Year {
			rows = append(rows, r)
		}
	}
	if len(rows) == 0 {
		return insufficient(q, fmt.Sprintf("no reports filed in %d", q.Params.Year))
	}

	issuers := map[string]bool{}
	targets := map[string]bool{}
	valuators := map[string]int{}
	sectors := map[string]int{}
	monthly := map[string]int{}
	var waccs []float64
	for _, r := range rows {
		if r.IssuerName != "" {
			issuers[r.IssuerName] = true
		}
		if r.TargetName != "" {
			targets[r.TargetName] = true
		}
		if v := strings.TrimSpace(r.Valuator); v != "" {
			valuators[v]++
		}
		if s := sectorOf(r); s != "" {
			sectors[s]++
		}
		if t, ok := r.FilingTime(); ok {
			monthly[t.Format("2006-01")]++
		}
		if r.WACC != nil {
			waccs = append(waccs, *r.WACC)
		}
	}

	overview := model.Table{
		Columns: []string{"reports", "unique_issuers", "unique_targets", "unique_valuators"},
		Rows:    [][]string{{itoa(len(rows)), itoa(len(issuers)), itoa(len(targets)), itoa(len(valuators))}},
	}

	waccT := model.Table{Columns: []string{"mean_wacc", "median_wacc", "stddev_wacc", "samples"}}
	if len(waccs) > 0 {
		waccT.Rows = [][]string{{f4(mean(waccs)), f4(median(waccs)), f4(stddev(waccs)), itoa(len(waccs))}}
	}

	multiples := model.Table{Columns: []string{"multiple", "median", "samples"}}
	for _, name := range multipleNames {
		var vals []float64
		for _, r := range rows {
			if v := r.Multiple(name); v != nil {
				vals = append(vals, *v)
			}
		}
		if len(vals) > 0 {
			multiples.Rows = append(multiples.Rows, []string{name, f4(median(vals)), itoa(len(vals))})
		}
	}

	monthlyT := model.Table{Columns: []string{"month", "reports"}}
	for _, m := range setKeysInt(monthly) {
		monthlyT.Rows = append(monthlyT.Rows, []string{m, itoa(monthly[m])})
	}

	sections := []Section{
		{Title: fmt.Sprintf("Key statistics for %d", q.Params.Year), Table: overview},
	}
	if len(waccT.Rows) > 0 {
		sections = append(sections, Section{Title: "WACC summary", Table: waccT})
	}
	sections = append(sections,
		Section{Title: "Sector distribution (top 10)", Table: countTable(sectors, 10, []string{"sector", "reports"})},
	)
	if len(multiples.Rows) > 0 {
		sections = append(sections, Section{Title: "Median multiples", Table: multiples})
	}
	sections = append(sections,
		Section{Title: "Most active valuators (top 5)", Table: countTable(valuators, 5, []string{"valuator", "reports"})},
		Section{Title: "Monthly issuance", Table: monthlyT},
	)
	return &Result{Kind: q.Kind, Params: q.Params, Sections: sections}
}

func setKeysInt(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func waccTrend(q model.AggregateQuery, reports []model.Report) *Result {
	cellVals := func(year int, sector string) []float64 {
		var vals []float64
		for _, r := range reports {
			if r.FilingYear() != year || !matchesSector(r, sector) {
				continue
			}
			if r.WACC != nil {
				vals = append(vals, *r.WACC)
			}
		}
		return vals
	}

	meanT := model.Table{Columns: append([]string{"year"}, trendSectors...)}
	medianT := model.Table{Columns: append([]string{"year"}, trendSectors...)}
	any := false
	for _, year := range trendYears {
		meanRow := []string{itoa(year)}
		medianRow := []string{itoa(year)}
		for _, sector := range trendSectors {
			vals := cellVals(year, sector)
			if len(vals) == 0 {
				meanRow = append(meanRow, "")
				medianRow = append(medianRow, "")
				continue
			}
			any = true
			meanRow = append(meanRow, f4(mean(vals)))
			medianRow = append(medianRow, f4(median(vals)))
		}
		meanT.Rows = append(meanT.Rows, meanRow)
		medianT.Rows = append(medianT.Rows, medianRow)
	}
	if !any {
		return insufficient(q, "no WACC rows inside the trend grid")
	}
	return &Result{
		Kind: q.Kind, Params: q.Params,
		Sections: []Section{
			{Title: "Mean WACC by year and sector", Table: meanT},
			{Title: "Median WACC by year and sector", Table: medianT},
		},
	}
}

// countTable turns a counter map into a count-descending table, ties
// broken alphabetically. limit 0 keeps all rows.
func countTable(counts map[string]int, limit int, columns []string) model.Table {
	type kv struct {
		k string
		n int
	}
	rows := make([]kv, 0, len(counts))
	for k, n := range counts {
		rows = append(rows, kv{k, n})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].n != rows[j].n {
			return rows[i].n > rows[j].n
		}
		return rows[i].k < rows[j].k
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	t := model.Table{Columns: columns}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.k, itoa(r.n)})
	}
	return t
}
