package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/entity"
	domainRepo "github.com/sangkips/ledger-api/internal/domain/repository"
	"github.com/sangkips/ledger-api/internal/domain/statement"
	"gorm.io/gorm"
)

type snapshotRepository struct {
	db        *gorm.DB
	isolation *sql.IsolationLevel
}

// SnapshotOption configures a snapshot repository
type SnapshotOption func(*snapshotRepository)

// WithReadIsolation runs every Load in a read-only transaction at level.
// PostgreSQL should use sql.LevelRepeatableRead; sqlite rejects non-default levels.
func WithReadIsolation(level sql.IsolationLevel) SnapshotOption {
	return func(r *snapshotRepository) {
		r.isolation = &level
	}
}

// NewSnapshotRepository creates the repository the statement engine reads from
func NewSnapshotRepository(db *gorm.DB, opts ...SnapshotOption) domainRepo.SnapshotRepository {
	r := &snapshotRepository{db: db}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *snapshotRepository) Load(ctx context.Context, tenantID uuid.UUID, filter domainRepo.SnapshotFilter) (*statement.Snapshot, error) {
	var txOpts []*sql.TxOptions
	if r.isolation != nil {
		txOpts = append(txOpts, &sql.TxOptions{Isolation: *r.isolation, ReadOnly: true})
	}

	snap := &statement.Snapshot{
		Transactions: []entity.Transaction{},
		Accounts:     []entity.Account{},
		Items:        []entity.Item{},
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&entity.Transaction{}).Scopes(TenantScope(tenantID))
		if len(filter.Types) > 0 {
			query = query.Where("type IN ?", filter.Types)
		}
		if filter.From != nil {
			query = query.Where("date >= ?", filter.From.UTC())
		}
		if filter.To != nil {
			query = query.Where("date <= ?", filter.To.UTC())
		}
		if filter.WithLines {
			query = query.Preload("Lines", preloadLines)
		}
		if filter.WithParties {
			query = query.Preload("Party")
		}
		if err := query.Order("date ASC, number ASC").Find(&snap.Transactions).Error; err != nil {
			return err
		}

		if filter.WithAccounts {
			if err := tx.Scopes(TenantScope(tenantID)).Order("name ASC").Find(&snap.Accounts).Error; err != nil {
				return err
			}
		}
		if filter.WithItems {
			if err := tx.Scopes(TenantScope(tenantID)).Order("name ASC").Find(&snap.Items).Error; err != nil {
				return err
			}
		}
		return nil
	}, txOpts...)
	if err != nil {
		return nil, translateError(err, "")
	}
	return snap, nil
}
