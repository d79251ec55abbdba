package jobs

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/bsm/redislock"
	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/entity"
	"github.com/sangkips/ledger-api/internal/infrastructure/repository"
	"github.com/sangkips/ledger-api/internal/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type busyLocker struct{ calls int }

func (l *busyLocker) Obtain(ctx context.Context, key string, ttl time.Duration, opt *redislock.Options) (*redislock.Lock, error) {
	l.calls++
	return nil, redislock.ErrNotObtained
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestIdempotencyPurger_RunOnce(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewIdempotencyRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	for i, expires := range []time.Time{time.Now().UTC().Add(-time.Hour), time.Now().UTC().Add(time.Hour)} {
		require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
			TenantID:     tenantID,
			Key:          []string{"old", "fresh"}[i],
			Endpoint:     "POST /api/v1/transactions",
			ResponseCode: 201,
			ExpiresAt:    expires,
		}))
	}

	locker := &busyLocker{}
	n, err := NewIdempotencyPurger(repo, locker, time.Hour, quietLogger()).RunOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 1, locker.calls)

	n, err = NewIdempotencyPurger(repo, nil, time.Hour, quietLogger()).RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	old, err := repo.GetByKey(ctx, "old", tenantID)
	require.NoError(t, err)
	assert.Nil(t, old)
	fresh, err := repo.GetByKey(ctx, "fresh", tenantID)
	require.NoError(t, err)
	assert.NotNil(t, fresh)
}

func TestIdempotencyPurger_RunStopsWithContext(t *testing.T) {
	db := testutil.NewDB(t)
	p := NewIdempotencyPurger(repository.NewIdempotencyRepository(db), nil, time.Hour, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("purger did not stop")
	}
}
