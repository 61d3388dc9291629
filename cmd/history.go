package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dart-research/disclosure-cli/internal/engine"
	"github.com/dart-research/disclosure-cli/internal/model"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent questions from the query log",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		records, err := env.Store.ListQueries(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("no queries recorded")
			return nil
		}

		t := model.Table{Columns: []string{"asked_at", "intent", "keyword", "rows", "question"}}
		for _, r := range records {
			t.Rows = append(t.Rows, []string{
				r.CreatedAt.Format("2006-01-02 15:04"),
				string(r.Intent),
				r.Keyword,
				strconv.Itoa(r.RowCount),
				r.Question,
			})
		}
		fmt.Print(engine.RenderTable(t))
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of records to show")
	rootCmd.AddCommand(historyCmd)
}
