// Package jobs runs background maintenance inside the API process
package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/bsm/redislock"
	"github.com/sangkips/ledger-api/internal/domain/repository"
	"github.com/sirupsen/logrus"
)

const purgeLockKey = "ledger:lock:purge-idempotency"

// Locker hands out cluster-wide locks; *redislock.Client satisfies it
type Locker interface {
	Obtain(ctx context.Context, key string, ttl time.Duration, opt *redislock.Options) (*redislock.Lock, error)
}

// IdempotencyPurger deletes expired idempotency keys on an interval. With a Locker,
// only the replica holding the lock purges in a given round.
type IdempotencyPurger struct {
	repo     repository.IdempotencyRepository
	locker   Locker
	interval time.Duration
	log      *logrus.Logger
}

// NewIdempotencyPurger creates a purger; locker may be nil
func NewIdempotencyPurger(repo repository.IdempotencyRepository, locker Locker, interval time.Duration, log *logrus.Logger) *IdempotencyPurger {
	if interval <= 0 {
		interval = time.Hour
	}
	return &IdempotencyPurger{repo: repo, locker: locker, interval: interval, log: log}
}

// Run purges once immediately and then on every tick until ctx is done
func (p *IdempotencyPurger) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if _, err := p.RunOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
			p.log.WithField("job", "purge-idempotency").Warnf("purge failed: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// RunOnce deletes expired keys and returns how many were removed. It returns 0 and no
// error when another replica holds the lock.
func (p *IdempotencyPurger) RunOnce(ctx context.Context) (int64, error) {
	if p.locker != nil {
		// not released: holding it until expiry keeps other replicas out for this interval
		_, err := p.locker.Obtain(ctx, purgeLockKey, p.interval/2, nil)
		if errors.Is(err, redislock.ErrNotObtained) {
			p.log.WithField("job", "purge-idempotency").Debug("lock held elsewhere, skipping")
			return 0, nil
		}
		if err != nil {
			return 0, err
		}
	}

	n, err := p.repo.DeleteExpired(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		p.log.WithField("job", "purge-idempotency").Infof("removed %d expired idempotency keys", n)
	}
	return n, nil
}
