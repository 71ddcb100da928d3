package main

import (
	"database/sql"
	"fmt"
	"os"

	"ai-notes-be/internal/config"
	"ai-notes-be/migrations"
	"ai-notes-be/pkg/database"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or inspect the notes database schema",
	Long: `migrate runs the embedded goose migrations against DB_CONNECTION_STRING.
The .env file in the working directory is honoured.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every SQL statement")
}

// openDB returns the pool behind a gorm connection, with goose pointed at the embedded files.
func openDB() (*sql.DB, error) {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		return nil, fmt.Errorf("DB_CONNECTION_STRING is not set")
	}

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection, verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, err
	}

	return gormDB.DB()
}
