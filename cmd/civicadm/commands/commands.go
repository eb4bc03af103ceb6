// Package commands holds the civicadm subcommands.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"civicreport-backend-go/internal/config"
	"civicreport-backend-go/internal/migrations"
	"civicreport-backend-go/internal/services"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// MigrateCommand applies pending schema migrations.
func MigrateCommand(database *sqlx.DB, dir string) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if dryRun {
				pending, err := migrations.Pending(ctx, database, dir)
				if err != nil {
					return err
				}
				for _, mig := range pending {
					fmt.Fprintln(cmd.OutOrStdout(), mig.Name)
				}
				return nil
			}
			applied, err := migrations.Apply(ctx, database, dir)
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			}
			for _, name := range applied {
				fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List pending migrations without applying them")
	return cmd
}

// StatsCommands prints the statistics rollups as JSON.
func StatsCommands(database *sqlx.DB) *cobra.Command {
	stats := services.NewStatsService(database)
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Print report statistics",
	}

	statsCmd.AddCommand(&cobra.Command{
		Use:   "overview",
		Short: "Global report counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			overview, err := stats.Overview(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), overview)
		},
	})

	statsCmd.AddCommand(&cobra.Command{
		Use:   "summary",
		Short: "Leaderboards and average resolution time",
		RunE: func(cmd *cobra.Command, _ []string) error {
			summary, err := stats.Summary(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), summary)
		},
	})

	var days int
	performanceCmd := &cobra.Command{
		Use:   "performance",
		Short: "Per-administrator throughput over a recent window",
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := stats.Performance(cmd.Context(), days)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), items)
		},
	}
	performanceCmd.Flags().IntVar(&days, "days", 30, "Window size in days")
	statsCmd.AddCommand(performanceCmd)

	return statsCmd
}

// AccountCommands bootstraps accounts before any administrator exists.
func AccountCommands(database *sqlx.DB, cfg config.Config, logger *zap.Logger) *cobra.Command {
	tokens := services.TokenService{
		Secret:    []byte(cfg.JWTSecret),
		Issuer:    cfg.JWTIssuer,
		AccessTTL: time.Duration(cfg.AccessTTLSeconds) * time.Second,
	}
	users := services.NewUserService(database, tokens, logger)
	admins := services.NewAdministratorService(database, logger)

	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Manage user and administrator accounts",
	}

	var email, password, department string
	createCmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create a user and promote it to administrator of a department",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			user, err := users.Create(ctx, email, password, false)
			if err != nil {
				return err
			}
			admin, err := admins.Create(ctx, &user.ID, department)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), admin)
		},
	}
	createCmd.Flags().StringVar(&email, "email", "", "Account email")
	createCmd.Flags().StringVar(&password, "password", "", "Account password")
	createCmd.Flags().StringVar(&department, "department", "", "Department (DTOP, LUMA, AAA, DDS)")
	_ = createCmd.MarkFlagRequired("email")
	_ = createCmd.MarkFlagRequired("password")
	_ = createCmd.MarkFlagRequired("department")
	accountCmd.AddCommand(createCmd)

	return accountCmd
}

func printJSON(w io.Writer, value interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
