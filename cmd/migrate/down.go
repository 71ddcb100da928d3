package main

import (
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := openDB()
		if err != nil {
			fatal("Failed to open database", err)
		}
		defer db.Close()

		if err := goose.DownContext(cmd.Context(), db, "."); err != nil {
			fatal("Rollback failed", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(downCmd)
}
