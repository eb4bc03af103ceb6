// Command civicadm runs maintenance tasks against the civicreport database.
package main

import (
	"fmt"
	"os"

	"civicreport-backend-go/cmd/civicadm/commands"
	"civicreport-backend-go/internal/config"
	"civicreport-backend-go/internal/db"
	"civicreport-backend-go/internal/logging"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	// Keep the CLI output readable; only errors reach stdout.
	cfg.LogLevel = "error"
	logger := logging.New(cfg, nil)
	defer func() { _ = logger.Sync() }()

	database, err := db.Open(cfg.DatabaseURL, 2, 1)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	rootCmd := &cobra.Command{
		Use:   "civicadm",
		Short: "Civic report admin tool",
		Long:  `Administrative commands for schema migrations, accounts and statistics.`,
	}
	rootCmd.AddCommand(commands.MigrateCommand(database, cfg.MigrationsDir))
	rootCmd.AddCommand(commands.StatsCommands(database))
	rootCmd.AddCommand(commands.AccountCommands(database, cfg, logger))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
