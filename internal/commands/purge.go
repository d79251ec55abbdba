package commands

import (
	"fmt"

	"github.com/bsm/redislock"
	"github.com/sangkips/ledger-api/internal/config"
	"github.com/sangkips/ledger-api/internal/infrastructure/cache"
	"github.com/sangkips/ledger-api/internal/infrastructure/jobs"
	"github.com/sangkips/ledger-api/internal/infrastructure/repository"
	"github.com/sangkips/ledger-api/pkg/logger"
	"github.com/spf13/cobra"
)

func newPurgeIdempotencyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "purge-idempotency",
		Short: "Delete expired idempotency keys",
		Long:  "Delete expired idempotency keys. When REDIS_ADDR is set the run takes the same lock as the API purger.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			db, err := openDB(cfg)
			if err != nil {
				return err
			}

			var locker jobs.Locker
			if cfg.Redis.Addr != "" {
				rdb, err := cache.NewRedisClient(cmd.Context(), &cfg.Redis)
				if err != nil {
					return err
				}
				defer rdb.Close()
				locker = redislock.New(rdb)
			}

			purger := jobs.NewIdempotencyPurger(repository.NewIdempotencyRepository(db), locker, cfg.Idempotency.PurgeInterval, logger.Get())
			n, err := purger.RunOnce(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d expired keys\n", n)
			return nil
		},
	}
}
