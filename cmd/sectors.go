package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sectorsCmd = &cobra.Command{
	Use:   "sectors",
	Short: "List the distinct issuer sectors in the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		sectors, err := env.Store.ListSectors(cmd.Context())
		if err != nil {
			return err
		}
		for _, s := range sectors {
			fmt.Println(s)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sectorsCmd)
}
