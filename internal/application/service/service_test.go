package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/entity"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	"github.com/sangkips/ledger-api/internal/domain/repository"
	"github.com/sangkips/ledger-api/internal/domain/statement"
	infraRepo "github.com/sangkips/ledger-api/internal/infrastructure/repository"
	"github.com/sangkips/ledger-api/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	tenantID       uuid.UUID
	items          repository.ItemRepository
	snapshots      *countingSnapshots
	invalidator    *countingInvalidator
	sequences      *SequenceService
	ledger         *LedgerService
	statements     *StatementService
	reconciliation *ReconciliationService
	accounts       *AccountService
	parties        *PartyService
	itemService    *ItemService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)

	accountRepo := infraRepo.NewAccountRepository(db)
	partyRepo := infraRepo.NewPartyRepository(db)
	itemRepo := infraRepo.NewItemRepository(db)
	snapshots := &countingSnapshots{next: infraRepo.NewSnapshotRepository(db)}
	invalidator := &countingInvalidator{}

	statements := NewStatementService(snapshots, time.UTC)
	return &fixture{
		tenantID:    uuid.New(),
		items:       itemRepo,
		snapshots:   snapshots,
		invalidator: invalidator,
		sequences:   NewSequenceService(infraRepo.NewCounterRepository(db), accountRepo),
		ledger: NewLedgerService(
			infraRepo.NewLedgerStore(db),
			infraRepo.NewTransactionRepository(db),
			partyRepo,
			accountRepo,
		).WithReportInvalidator(invalidator),
		statements:     statements,
		reconciliation: NewReconciliationService(snapshots, statements),
		accounts:       NewAccountService(accountRepo),
		parties:        NewPartyService(partyRepo),
		itemService:    NewItemService(itemRepo),
	}
}

type countingSnapshots struct {
	mu     sync.Mutex
	loads  int
	onLoad func()
	next   repository.SnapshotRepository
}

func (c *countingSnapshots) Load(ctx context.Context, tenantID uuid.UUID, filter repository.SnapshotFilter) (*statement.Snapshot, error) {
	c.mu.Lock()
	c.loads++
	hook := c.onLoad
	c.mu.Unlock()
	snap, err := c.next.Load(ctx, tenantID, filter)
	if hook != nil {
		hook()
	}
	return snap, err
}

type countingInvalidator struct {
	mu    sync.Mutex
	calls int
}

func (c *countingInvalidator) Invalidate(ctx context.Context, tenantID uuid.UUID) error {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s", want, got.String())
}

// widgetSale is five widgets at 100 with 18% tax split between cgst and sgst
func widgetSale(number string) *CommitInput {
	return &CommitInput{
		Type:        enum.TransactionTypeSale,
		Number:      number,
		Date:        time.Date(2024, 5, 10, 11, 0, 0, 0, time.UTC),
		Subtotal:    dec("500"),
		TotalAmount: decPtr("590"),
		AmountPaid:  dec("590"),
		Lines: []CommitLineInput{{
			ItemName:     "Widget",
			Quantity:     dec("5"),
			Rate:         dec("100"),
			TaxRate:      dec("18"),
			HSNCode:      "8471",
			TaxableValue: dec("500"),
			CGST:         dec("45"),
			SGST:         dec("45"),
		}},
	}
}

func (f *fixture) stockOf(t *testing.T, name string) decimal.Decimal {
	t.Helper()
	item, err := f.items.GetByName(context.Background(), f.tenantID, name)
	require.NoError(t, err)
	require.NotNil(t, item, "item %s", name)
	return item.Stock
}

func (f *fixture) newParty(t *testing.T, name string, typ enum.PartyType, gstin string) *entity.Party {
	t.Helper()
	input := &PartyInput{Name: name, Type: typ}
	if gstin != "" {
		input.GSTIN = &gstin
	}
	party, err := f.parties.CreateParty(context.Background(), f.tenantID, input)
	require.NoError(t, err)
	return party
}
