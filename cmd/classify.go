package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <question>",
	Short: "Show the classified intent of a question without answering it",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		intent := env.Engine.ClassifyIntent(strings.Join(args, " "))
		out, err := json.MarshalIndent(intent, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
