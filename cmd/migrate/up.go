package main

import (
	"fmt"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := openDB()
		if err != nil {
			fatal("Failed to open database", err)
		}
		defer db.Close()

		if err := goose.UpContext(cmd.Context(), db, "."); err != nil {
			fatal("Migration failed", err)
		}
		fmt.Println("Database is up to date")
	},
}

func init() {
	rootCmd.AddCommand(upCmd)
}
