package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/application/service"
	"github.com/sangkips/ledger-api/internal/config"
	"github.com/sangkips/ledger-api/internal/infrastructure/repository"
	"github.com/spf13/cobra"
)

func newNextNumberCommand() *cobra.Command {
	var tenant, series string
	var peek bool

	cmd := &cobra.Command{
		Use:   "next-number <type>",
		Short: "Allocate the next document number for a transaction type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tenantID, err := uuid.Parse(tenant)
			if err != nil {
				return fmt.Errorf("invalid --tenant: %w", err)
			}
			var seriesID *uuid.UUID
			if series != "" {
				id, err := uuid.Parse(series)
				if err != nil {
					return fmt.Errorf("invalid --series: %w", err)
				}
				seriesID = &id
			}

			db, err := openDB(config.Load())
			if err != nil {
				return err
			}
			sequences := service.NewSequenceService(repository.NewCounterRepository(db), repository.NewAccountRepository(db))

			if peek {
				n, err := sequences.Current(cmd.Context(), tenantID, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), n)
				return nil
			}

			number, err := sequences.Allocate(cmd.Context(), tenantID, args[0], seriesID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), number.Formatted)
			return nil
		},
	}

	cmd.Flags().StringVar(&tenant, "tenant", "", "tenant id (required)")
	_ = cmd.MarkFlagRequired("tenant")
	cmd.Flags().StringVar(&series, "series", "", "series account whose prefix formats the number")
	cmd.Flags().BoolVar(&peek, "peek", false, "print the last issued number without allocating")

	return cmd
}
