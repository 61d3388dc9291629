package main

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/dart-research/disclosure-cli/internal/analysis"
	"github.com/dart-research/disclosure-cli/internal/engine"
	"github.com/dart-research/disclosure-cli/internal/model"
	"github.com/dart-research/disclosure-cli/internal/store"
)

var (
	analyzeCompany string
	analyzeFormat  string
	analyzeOutput  string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <question>",
	Short: "Run an aggregate analysis directly",
	Long: `Routes the question through the aggregate rule table and, when a rule
matches, runs the computation over every stored report.

Examples:
  disclosure-cli analyze "업종별 WACC 중앙값"
  disclosure-cli analyze "2024년 연도별 주요 통계"
  disclosure-cli analyze --company 삼성 "투자 내역"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	env, err := initEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer env.Close()

	question := strings.Join(args, " ")

	reports, err := env.Store.LookupReports(cmd.Context(), store.Filter{})
	if err != nil {
		return eris.Wrap(err, "analyze: load reports")
	}

	if analyzeCompany != "" {
		t := analysis.Portfolio(reports, analyzeCompany)
		return writeResult(analyzeFormat, analyzeOutput, engine.RenderTable(t), []model.Table{t})
	}

	q, ok := analysis.Route(question)
	if !ok {
		fmt.Println("question did not match any aggregate analysis")
		return nil
	}

	res := analysis.Run(q, reports)
	if res.Insufficient {
		fmt.Printf("insufficient data: %s\n", res.Reason)
		return nil
	}
	return writeResult(analyzeFormat, analyzeOutput, renderSections(res.Sections, res.Notes), sectionTables(res.Sections))
}

func sectionTables(sections []analysis.Section) []model.Table {
	var tables []model.Table
	for _, sec := range sections {
		t := sec.Table
		t.Title = sec.Title
		tables = append(tables, t)
	}
	return tables
}

func renderSections(sections []analysis.Section, notes []string) string {
	var b strings.Builder
	for _, s := range sections {
		if s.Title != "" {
			b.WriteString(s.Title + "\n")
		}
		b.WriteString(engine.RenderTable(s.Table))
		b.WriteString("\n")
	}
	for _, n := range notes {
		b.WriteString("- " + n + "\n")
	}
	return b.String()
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeCompany, "company", "", "show the investment portfolio for a single issuer")
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "table", "output format: table, csv, xlsx")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "output file (required for csv and xlsx)")
	rootCmd.AddCommand(analyzeCmd)
}
