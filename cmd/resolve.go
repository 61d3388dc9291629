package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dart-research/disclosure-cli/internal/engine"
	"github.com/dart-research/disclosure-cli/internal/model"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <question>",
	Short: "Show the ranked keyword candidates for a question",
	Long: `Runs the exact and fuzzy keyword matchers and prints every candidate
with its match type, confidence, and (for exact matches) priority score.
The first row is the keyword a similar-company lookup would use.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		question := strings.Join(args, " ")
		matches := env.Engine.Resolver().Resolve(question)
		if len(matches) == 0 {
			fmt.Println("no keyword candidates")
			return nil
		}

		t := model.Table{Columns: []string{"keyword", "category", "match_type", "confidence", "priority_score"}}
		for _, m := range matches {
			t.Rows = append(t.Rows, []string{
				m.Keyword, m.Category, string(m.Type),
				strconv.FormatFloat(m.Confidence, 'f', 2, 64),
				strconv.Itoa(m.PriorityScore),
			})
		}
		fmt.Print(engine.RenderTable(t))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
