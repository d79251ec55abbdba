package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryKeyChangesWithVersion(t *testing.T) {
	tenantID := uuid.MustParse("7f1c3f0e-8a4b-4d1e-9a57-2f0c9b7d1e11")

	assert.Equal(t, "report:7f1c3f0e-8a4b-4d1e-9a57-2f0c9b7d1e11:v0:profit-loss:2024-04-01_2024-04-30",
		entryKey(tenantID, 0, "profit-loss:2024-04-01_2024-04-30"))
	assert.NotEqual(t, entryKey(tenantID, 0, "x"), entryKey(tenantID, 1, "x"))
	assert.Equal(t, "report:version:7f1c3f0e-8a4b-4d1e-9a57-2f0c9b7d1e11", versionKey(tenantID))
}

func TestNewReportCacheDefaultsTTL(t *testing.T) {
	c := NewReportCache(nil, 0)
	assert.Positive(t, c.ttl)
}

func newTestCache(t *testing.T) *ReportCache {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewReportCache(rdb, time.Minute)
}

func TestReportCache_HitUnderSameVersion(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	tenantID := uuid.New()

	var got string
	v, hit, err := c.Get(ctx, tenantID, "profit-loss:-_-", &got)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Zero(t, v)

	require.NoError(t, c.Set(ctx, tenantID, v, "profit-loss:-_-", "report"))
	_, hit, err = c.Get(ctx, tenantID, "profit-loss:-_-", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "report", got)

	// other tenants never see it
	_, hit, err = c.Get(ctx, uuid.New(), "profit-loss:-_-", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestReportCache_SetAfterInvalidateIsNeverServed(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	tenantID := uuid.New()

	var got string
	v, hit, err := c.Get(ctx, tenantID, "balance-sheet", &got)
	require.NoError(t, err)
	require.False(t, hit)

	// a commit lands while the report is being built
	require.NoError(t, c.Invalidate(ctx, tenantID))
	require.NoError(t, c.Set(ctx, tenantID, v, "balance-sheet", "built-before-commit"))

	v2, hit, err := c.Get(ctx, tenantID, "balance-sheet", &got)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, v+1, v2)
}
