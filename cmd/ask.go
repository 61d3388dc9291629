package main

import (
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dart-research/disclosure-cli/internal/engine"
	"github.com/dart-research/disclosure-cli/internal/model"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a free-text question over the disclosure store",
	Long: `Classifies the question, resolves the business keyword, runs the
matching lookup or aggregate analysis, and prints the answer.

Examples:
  # Peer-set lookup
  ask "가상자산 사업을 하는 기업들이 선정한 유사기업은 무엇인가요?"

  # Financial ratios filed since a year
  ask "2022년 이후 금융업 기업들의 EV/Sales 값은 어떻게 되나요?"

  # Aggregate analysis, exported to a spreadsheet
  ask "섹터별 WACC 중간값" --format xlsx --output wacc.xlsx`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	f := askCmd.Flags()
	f.String("format", "table", "output format: table, csv, or xlsx")
	f.String("output", "", "output file path for csv/xlsx")

	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	env, err := initEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer env.Close()

	ans, err := env.Engine.Answer(cmd.Context(), question)
	if err != nil {
		return err
	}

	zap.L().Info("ask: answered",
		zap.String("intent", string(ans.Intent.Kind)),
		zap.String("keyword", ans.Keyword),
		zap.Int("reports", ans.Summary.TotalReports),
	)

	return writeResult(format, output, ans.Rendering, answerTables(ans))
}

// answerTables collects the exportable tables of an answer: the analysis
// sections for aggregates, the report listing otherwise.
func answerTables(ans *engine.Answer) []model.Table {
	if ans.Analysis != nil {
		var tables []model.Table
		for _, sec := range ans.Analysis.Sections {
			t := sec.Table
			t.Title = sec.Title
			tables = append(tables, t)
		}
		return tables
	}
	if len(ans.Reports) == 0 {
		return nil
	}
	return []model.Table{engine.ReportTable(ans.Reports)}
}
