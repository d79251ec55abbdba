package commands

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/config"
	"github.com/sangkips/ledger-api/pkg/utils"
	"github.com/spf13/cobra"
)

func newTokenCommand() *cobra.Command {
	var tenant, user string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for a tenant (development use)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tenantID, err := uuid.Parse(tenant)
			if err != nil {
				return fmt.Errorf("invalid --tenant: %w", err)
			}
			userID := uuid.New()
			if user != "" {
				if userID, err = uuid.Parse(user); err != nil {
					return fmt.Errorf("invalid --user: %w", err)
				}
			}

			cfg := config.Load()
			if ttl <= 0 {
				ttl = cfg.JWT.ExpiryHours
			}

			token, err := utils.NewJWTManager(cfg.JWT.Secret, ttl).GenerateToken(userID, tenantID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&tenant, "tenant", "", "tenant id (required)")
	_ = cmd.MarkFlagRequired("tenant")
	cmd.Flags().StringVar(&user, "user", "", "user id, random when omitted")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime, JWT_EXPIRY_HOURS when omitted")

	return cmd
}
