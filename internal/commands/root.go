// Package commands implements ledgerctl, the operator CLI for the ledger service
package commands

import (
	"github.com/sangkips/ledger-api/internal/config"
	"github.com/sangkips/ledger-api/internal/infrastructure/database"
	"github.com/sangkips/ledger-api/pkg/logger"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Operator tooling for the ledger service",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// stdout carries command output only
			logger.Get().SetOutput(cmd.ErrOrStderr())
		},
	}

	rootCmd.AddCommand(
		newMigrateCommand(),
		newTokenCommand(),
		newNextNumberCommand(),
		newHSNCommand(),
		newPurgeIdempotencyCommand(),
	)

	return rootCmd
}

// openDB connects with the service configuration
func openDB(cfg *config.Config) (*gorm.DB, error) {
	log := logger.Configure(cfg.Log.Level, "text")
	return database.NewPostgresDB(&cfg.Database, log)
}
