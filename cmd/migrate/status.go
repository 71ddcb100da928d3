package main

import (
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the applied state of every migration",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := openDB()
		if err != nil {
			fatal("Failed to open database", err)
		}
		defer db.Close()

		if err := goose.StatusContext(cmd.Context(), db, "."); err != nil {
			fatal("Failed to read migration status", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
