package engine

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dart-research/disclosure-cli/internal/analysis"
	"github.com/dart-research/disclosure-cli/internal/model"
)

// renderSimilarCompanies builds the structured-sentence answer for a
// peer-set lookup: one sentence per report naming who selected which
// comparables for which target.
func renderSimilarCompanies(keyword string, reports []model.Report) string {
	if len(reports) == 0 {
		return fmt.Sprintf("No peer-company disclosures found for %q.", keyword)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d peer-company disclosures for %q.\n", len(reports), keyword)
	for _, r := range reports {
		peers := r.PeerList()
		if len(peers) == 0 {
			continue
		}
		name := r.ReportName
		if name == "" {
			name = "material fact report"
		}
		fmt.Fprintf(&b, "\n%s\n%s selected %s as comparable companies when valuing %s in its %s.\n",
			r.FilingDate, r.IssuerName, strings.Join(peers, ", "), r.TargetName, name)
		if link := strings.TrimSpace(r.Link); link != "" {
			fmt.Fprintf(&b, "Source filing: %s\n", link)
		}
	}
	return b.String()
}

// renderFinancialRatios summarizes the EV/Sales column of a sector slice.
func renderFinancialRatios(sector string, fromYear int, reports []model.Report) string {
	if len(reports) == 0 {
		return fmt.Sprintf("No financial-ratio disclosures found for sector %q.", sector)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d disclosures for sector %q", len(reports), sector)
	if fromYear > 0 {
		fmt.Fprintf(&b, " filed since %d", fromYear)
	}
	b.WriteString(".\n")

	var evSales []float64
	for _, r := range reports {
		if r.EVSales != nil {
			evSales = append(evSales, *r.EVSales)
		}
	}
	if len(evSales) == 0 {
		b.WriteString("None of the matching reports disclose EV/Sales.\n")
		return b.String()
	}

	minV, maxV := evSales[0], evSales[0]
	var sum float64
	for _, v := range evSales {
		sum += v
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	fmt.Fprintf(&b, "EV/Sales across %d reports: mean %.2f, range %.2f-%.2f.\n",
		len(evSales), sum/float64(len(evSales)), minV, maxV)
	return b.String()
}

func renderSectorSearch(term string, reports []model.Report) string {
	if len(reports) == 0 {
		return fmt.Sprintf("No disclosures match %q.", term)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d disclosures matching %q.\n\n", len(reports), term)
	b.WriteString(RenderTable(ReportTable(reports)))
	return b.String()
}

// renderAnalysis flattens an aggregate result into titled text tables.
func renderAnalysis(res *analysis.Result) string {
	if res.Insufficient {
		return fmt.Sprintf("Insufficient data for %s: %s.", res.Kind, res.Reason)
	}
	var b strings.Builder
	for i, sec := range res.Sections {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s\n", sec.Title)
		b.WriteString(RenderTable(sec.Table))
	}
	for _, note := range res.Notes {
		fmt.Fprintf(&b, "\n%s\n", note)
	}
	return b.String()
}

// RenderTable formats a table with aligned columns for terminal output.
func RenderTable(t model.Table) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(t.Columns, "\t"))
	for _, row := range t.Rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
	return b.String()
}

// ReportTable projects reports into the display columns of the original
// disclosure browser, truncating long business descriptions.
func ReportTable(reports []model.Report) model.Table {
	t := model.Table{Columns: []string{"filing_date", "report_name", "issuer", "target", "target_business", "peers", "link"}}
	for _, r := range reports {
		t.Rows = append(t.Rows, []string{
			r.FilingDate, r.ReportName, r.IssuerName, r.TargetName,
			truncate(r.TargetBiz, 50), r.Peers, r.Link,
		})
	}
	return t
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
