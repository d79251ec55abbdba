package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	"github.com/sangkips/ledger-api/internal/domain/statement"
)

// SnapshotRepository loads the read-only ledger view the statement engine works on.
// Everything returned by one Load call comes from a single read transaction.
type SnapshotRepository interface {
	Load(ctx context.Context, tenantID uuid.UUID, filter SnapshotFilter) (*statement.Snapshot, error)
}

// SnapshotFilter narrows what Load reads. Zero values mean "no restriction" / "skip".
type SnapshotFilter struct {
	Types        []enum.TransactionType
	From         *time.Time
	To           *time.Time
	WithLines    bool
	WithParties  bool
	WithAccounts bool
	WithItems    bool
}
