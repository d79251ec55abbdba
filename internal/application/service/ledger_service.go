package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/entity"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	"github.com/sangkips/ledger-api/internal/domain/repository"
	"github.com/sangkips/ledger-api/pkg/apperror"
	"github.com/sangkips/ledger-api/pkg/logger"
	"github.com/sangkips/ledger-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// closureTolerance is how far line totals may drift from the declared total amount
var closureTolerance = decimal.New(1, -2)

// LedgerService commits transactions together with their stock movements
type LedgerService struct {
	reportInvalidation

	store       repository.LedgerStore
	txnRepo     repository.TransactionRepository
	partyRepo   repository.PartyRepository
	accountRepo repository.AccountRepository
	log         *logrus.Logger
	tracer      trace.Tracer
}

// NewLedgerService creates a new ledger service
func NewLedgerService(
	store repository.LedgerStore,
	txnRepo repository.TransactionRepository,
	partyRepo repository.PartyRepository,
	accountRepo repository.AccountRepository,
) *LedgerService {
	return &LedgerService{
		store:       store,
		txnRepo:     txnRepo,
		partyRepo:   partyRepo,
		accountRepo: accountRepo,
		log:         logger.Get(),
		tracer:      otel.Tracer("github.com/sangkips/ledger-api/service/ledger"),
	}
}

// WithReportInvalidator makes every successful write drop the tenant's cached reports
func (s *LedgerService) WithReportInvalidator(inv ReportInvalidator) *LedgerService {
	s.reports = inv
	return s
}

// CommitLineInput is one item row of a transaction. The tax breakdown is taken as
// given; it is checked against the total but never recomputed.
type CommitLineInput struct {
	ItemName     string `validate:"required,max=255"`
	Quantity     decimal.Decimal
	Rate         decimal.Decimal
	TaxRate      decimal.Decimal
	HSNCode      string `validate:"max=16"`
	TaxableValue decimal.Decimal
	CGST         decimal.Decimal
	SGST         decimal.Decimal
	IGST         decimal.Decimal
}

func (l *CommitLineInput) hasBreakdown() bool {
	return !l.TaxableValue.IsZero() || !l.CGST.IsZero() || !l.SGST.IsZero() || !l.IGST.IsZero()
}

// CommitInput represents a transaction to commit
type CommitInput struct {
	Type        enum.TransactionType `validate:"required"`
	Number      string               `validate:"required,max=64"`
	Status      enum.TransactionStatus
	PartyID     *uuid.UUID
	AccountID   *uuid.UUID
	Date        time.Time
	Subtotal    decimal.Decimal
	Discount    decimal.Decimal
	TotalAmount *decimal.Decimal `validate:"required"`
	AmountPaid  decimal.Decimal
	BalanceDue  *decimal.Decimal
	Notes       *string
	CreatedBy   *uuid.UUID
	Lines       []CommitLineInput `validate:"dive"`

	convertedFromID *uuid.UUID
}

// validateCommit checks the input without touching the store
func validateCommit(input *CommitInput) error {
	errs := fieldErrors(input)

	if input.Number != "" && strings.TrimSpace(input.Number) == "" {
		errs = append(errs, apperror.FieldError{Field: "number", Message: "must not be blank"})
	}
	if input.Type != "" && !input.Type.Valid() {
		errs = append(errs, apperror.FieldError{Field: "type", Message: fmt.Sprintf("unknown transaction type %q", input.Type)})
	}
	if input.Status != "" && !input.Status.Valid() {
		errs = append(errs, apperror.FieldError{Field: "status", Message: fmt.Sprintf("unknown status %q", input.Status)})
	}
	errs = requireNonNegative(errs, "subtotal", input.Subtotal)
	errs = requireNonNegative(errs, "discount", input.Discount)
	errs = requireNonNegative(errs, "amountPaid", input.AmountPaid)
	if input.TotalAmount != nil {
		errs = requireNonNegative(errs, "totalAmount", *input.TotalAmount)
	}
	if input.BalanceDue != nil {
		errs = requireNonNegative(errs, "balanceDue", *input.BalanceDue)
	}

	breakdown := false
	sum := decimal.Zero
	for i := range input.Lines {
		l := &input.Lines[i]
		prefix := fmt.Sprintf("lines[%d].", i)
		if strings.TrimSpace(l.ItemName) == "" && l.ItemName != "" {
			errs = append(errs, apperror.FieldError{Field: prefix + "itemName", Message: "must not be blank"})
		}
		if !l.Quantity.IsPositive() {
			errs = append(errs, apperror.FieldError{Field: prefix + "quantity", Message: "must be greater than zero"})
		}
		errs = requireNonNegative(errs, prefix+"rate", l.Rate)
		errs = requireNonNegative(errs, prefix+"taxRate", l.TaxRate)
		errs = requireNonNegative(errs, prefix+"taxableValue", l.TaxableValue)
		errs = requireNonNegative(errs, prefix+"cgst", l.CGST)
		errs = requireNonNegative(errs, prefix+"sgst", l.SGST)
		errs = requireNonNegative(errs, prefix+"igst", l.IGST)

		if l.hasBreakdown() {
			breakdown = true
		}
		sum = sum.Add(l.TaxableValue).Add(l.CGST).Add(l.SGST).Add(l.IGST)
	}

	if breakdown && input.TotalAmount != nil && sum.Sub(*input.TotalAmount).Abs().GreaterThan(closureTolerance) {
		errs = append(errs, apperror.FieldError{
			Field:   "totalAmount",
			Message: fmt.Sprintf("line totals %s do not add up to total amount %s", sum.StringFixed(2), input.TotalAmount.StringFixed(2)),
		})
	}

	if len(errs) > 0 {
		return apperror.NewValidationError(errs)
	}
	return nil
}

// buildTransaction resolves references and assembles the row to insert
func (s *LedgerService) buildTransaction(ctx context.Context, tenantID uuid.UUID, input *CommitInput) (*entity.Transaction, error) {
	txn := &entity.Transaction{
		TenantID:        tenantID,
		Type:            input.Type,
		Number:          strings.TrimSpace(input.Number),
		Status:          input.Status,
		ConvertedFromID: input.convertedFromID,
		PartyID:         input.PartyID,
		AccountID:       input.AccountID,
		Date:            input.Date.UTC(),
		Subtotal:        input.Subtotal,
		Discount:        input.Discount,
		TotalAmount:     *input.TotalAmount,
		AmountPaid:      input.AmountPaid,
		Notes:           input.Notes,
		CreatedBy:       input.CreatedBy,
	}
	if input.Date.IsZero() {
		txn.Date = time.Now().UTC()
	}
	if input.BalanceDue != nil {
		txn.BalanceDue = *input.BalanceDue
	} else {
		txn.BalanceDue = decimal.Max(txn.TotalAmount.Sub(txn.AmountPaid), decimal.Zero)
	}

	if input.PartyID != nil {
		party, err := s.partyRepo.GetByID(ctx, tenantID, *input.PartyID)
		if err != nil {
			return nil, err
		}
		if party == nil {
			return nil, apperror.NewNotFoundError("Party")
		}
		txn.PartyGSTIN = party.TaxID()
	}
	if input.AccountID != nil {
		account, err := s.accountRepo.GetByID(ctx, tenantID, *input.AccountID)
		if err != nil {
			return nil, err
		}
		if account == nil {
			return nil, apperror.NewNotFoundError("Account")
		}
	}

	txn.Lines = make([]entity.TransactionLine, len(input.Lines))
	for i, l := range input.Lines {
		txn.Lines[i] = entity.TransactionLine{
			TenantID:     tenantID,
			Position:     i,
			ItemName:     strings.TrimSpace(l.ItemName),
			Quantity:     l.Quantity,
			Rate:         l.Rate,
			TaxRate:      l.TaxRate,
			HSNCode:      l.HSNCode,
			TaxableValue: l.TaxableValue,
			CGST:         l.CGST,
			SGST:         l.SGST,
			IGST:         l.IGST,
		}
	}
	return txn, nil
}

// stage applies each line's stock delta and inserts the transaction inside tx
func stage(ctx context.Context, tx repository.LedgerTx, txn *entity.Transaction) error {
	direction := decimal.NewFromInt(int64(txn.Type.StockDirection()))
	purchaseSide := txn.Type == enum.TransactionTypePurchase || txn.Type == enum.TransactionTypePurchaseOrder

	for i := range txn.Lines {
		line := &txn.Lines[i]
		delta := repository.ItemDelta{
			Name:      line.ItemName,
			Delta:     line.Quantity.Mul(direction),
			SalePrice: line.Rate,
			TaxRate:   line.TaxRate,
			HSNCode:   line.HSNCode,
		}
		if purchaseSide {
			delta.PurchasePrice = line.Rate
		}

		item, err := tx.ApplyItemDelta(ctx, txn.TenantID, delta)
		if err != nil {
			return err
		}
		line.ItemID = item.ID
	}

	return tx.InsertTransaction(ctx, txn)
}

// Commit validates the input and, in one store transaction, moves stock for every line
// and inserts the transaction. On any error nothing is written.
func (s *LedgerService) Commit(ctx context.Context, tenantID uuid.UUID, input *CommitInput) (*entity.Transaction, error) {
	ctx, span := s.tracer.Start(ctx, "LedgerService.Commit", trace.WithAttributes(
		attribute.String("tenant.id", tenantID.String()),
		attribute.String("transaction.type", input.Type.String()),
		attribute.Int("transaction.lines", len(input.Lines)),
	))
	defer span.End()

	txn, err := s.prepare(ctx, tenantID, input)
	if err != nil {
		return nil, s.fail(span, "Commit", input, err)
	}

	err = s.store.WithinTx(ctx, func(tx repository.LedgerTx) error {
		return stage(ctx, tx, txn)
	})
	if err != nil {
		return nil, s.fail(span, "Commit", input, err)
	}

	s.invalidateReports(ctx, tenantID)
	return txn, nil
}

func (s *LedgerService) prepare(ctx context.Context, tenantID uuid.UUID, input *CommitInput) (*entity.Transaction, error) {
	if tenantID == uuid.Nil {
		return nil, apperror.ErrTenantRequired
	}
	if err := validateCommit(input); err != nil {
		return nil, err
	}
	return s.buildTransaction(ctx, tenantID, input)
}

// fail records err on the span and logs anything that is not a client error
func (s *LedgerService) fail(span trace.Span, funcName string, data interface{}, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	switch apperror.KindOf(err) {
	case apperror.KindValidation, apperror.KindNotFound, apperror.KindDuplicateEntry:
	default:
		logger.LogError(s.log, "LedgerService", funcName, "ledger write failed", data, err)
	}
	return err
}

// ConvertInput names the invoice an estimate or order becomes
type ConvertInput struct {
	SourceID  uuid.UUID
	Number    string
	Date      time.Time
	CreatedBy *uuid.UUID
}

// convertTarget is the invoice type a convertible document turns into
func convertTarget(t enum.TransactionType) enum.TransactionType {
	switch t {
	case enum.TransactionTypeEstimate, enum.TransactionTypeSaleOrder:
		return enum.TransactionTypeSale
	case enum.TransactionTypePurchaseOrder:
		return enum.TransactionTypePurchase
	}
	return ""
}

// Convert commits a sale or purchase copied from an estimate or order and marks the
// source Invoiced in the same store transaction.
func (s *LedgerService) Convert(ctx context.Context, tenantID uuid.UUID, input *ConvertInput) (*entity.Transaction, error) {
	ctx, span := s.tracer.Start(ctx, "LedgerService.Convert", trace.WithAttributes(
		attribute.String("tenant.id", tenantID.String()),
		attribute.String("source.id", input.SourceID.String()),
	))
	defer span.End()

	source, err := s.txnRepo.GetByID(ctx, tenantID, input.SourceID)
	if err != nil {
		return nil, s.fail(span, "Convert", input, err)
	}
	if source == nil {
		return nil, s.fail(span, "Convert", input, apperror.NewNotFoundError("Transaction"))
	}
	if !source.Type.Convertible() {
		return nil, s.fail(span, "Convert", input, apperror.NewBadRequestError(fmt.Sprintf("A %s cannot be converted", source.Type)))
	}
	if source.Status == enum.TransactionStatusInvoiced {
		return nil, s.fail(span, "Convert", input, apperror.NewBadRequestError("Transaction has already been invoiced"))
	}

	commit := convertedInput(source, input)
	txn, err := s.prepare(ctx, tenantID, commit)
	if err != nil {
		return nil, s.fail(span, "Convert", input, err)
	}

	err = s.store.WithinTx(ctx, func(tx repository.LedgerTx) error {
		current, err := tx.GetTransaction(ctx, tenantID, source.ID)
		if err != nil {
			return err
		}
		if current == nil {
			return apperror.NewNotFoundError("Transaction")
		}
		if current.Status == enum.TransactionStatusInvoiced {
			return apperror.NewBadRequestError("Transaction has already been invoiced")
		}
		if err := stage(ctx, tx, txn); err != nil {
			return err
		}
		return tx.SetStatus(ctx, tenantID, source.ID, enum.TransactionStatusInvoiced)
	})
	if err != nil {
		return nil, s.fail(span, "Convert", input, err)
	}

	s.invalidateReports(ctx, tenantID)
	return txn, nil
}

func convertedInput(source *entity.Transaction, input *ConvertInput) *CommitInput {
	total := source.TotalAmount
	sourceID := source.ID
	commit := &CommitInput{
		Type:            convertTarget(source.Type),
		Number:          input.Number,
		PartyID:         source.PartyID,
		AccountID:       source.AccountID,
		Date:            input.Date,
		Subtotal:        source.Subtotal,
		Discount:        source.Discount,
		TotalAmount:     &total,
		Notes:           source.Notes,
		CreatedBy:       input.CreatedBy,
		convertedFromID: &sourceID,
	}
	for _, l := range source.Lines {
		commit.Lines = append(commit.Lines, CommitLineInput{
			ItemName:     l.ItemName,
			Quantity:     l.Quantity,
			Rate:         l.Rate,
			TaxRate:      l.TaxRate,
			HSNCode:      l.HSNCode,
			TaxableValue: l.TaxableValue,
			CGST:         l.CGST,
			SGST:         l.SGST,
			IGST:         l.IGST,
		})
	}
	return commit
}

// GetTransaction retrieves a transaction with its lines
func (s *LedgerService) GetTransaction(ctx context.Context, tenantID, id uuid.UUID) (*entity.Transaction, error) {
	txn, err := s.txnRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	return txn, nil
}

// ListTransactions lists transactions with filtering
func (s *LedgerService) ListTransactions(ctx context.Context, tenantID uuid.UUID, params *repository.TransactionFilterParams) (*pagination.PaginatedResult[entity.Transaction], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	txns, total, err := s.txnRepo.List(ctx, tenantID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(txns, pag), nil
}

// ListTransactionsWithCursor lists transactions with cursor-based pagination
func (s *LedgerService) ListTransactionsWithCursor(ctx context.Context, tenantID uuid.UUID, params *repository.TransactionCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Transaction], error) {
	if params.Cursor == nil {
		params.Cursor = pagination.DefaultCursorParams()
	}
	params.Cursor.Validate()

	txns, err := s.txnRepo.ListWithCursor(ctx, tenantID, params)
	if err != nil {
		return nil, err
	}

	cursorPag, items := pagination.NewCursorPagination(txns, params.Cursor,
		func(t entity.Transaction) (string, time.Time) { return t.ID.String(), t.Date },
	)
	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// UpdateTransactionInput carries header edits. Lines and stock are never changed by an update.
type UpdateTransactionInput struct {
	ID          uuid.UUID
	Number      *string
	Status      *enum.TransactionStatus
	PartyID     *uuid.UUID
	AccountID   *uuid.UUID
	Date        *time.Time
	Subtotal    *decimal.Decimal
	Discount    *decimal.Decimal
	TotalAmount *decimal.Decimal
	AmountPaid  *decimal.Decimal
	BalanceDue  *decimal.Decimal
	Notes       *string
}

// UpdateTransaction edits header fields of a committed transaction
func (s *LedgerService) UpdateTransaction(ctx context.Context, tenantID uuid.UUID, input *UpdateTransactionInput) (*entity.Transaction, error) {
	txn, err := s.GetTransaction(ctx, tenantID, input.ID)
	if err != nil {
		return nil, err
	}

	var errs []apperror.FieldError
	if input.Number != nil {
		if strings.TrimSpace(*input.Number) == "" {
			errs = append(errs, apperror.FieldError{Field: "number", Message: "must not be blank"})
		}
		txn.Number = strings.TrimSpace(*input.Number)
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			errs = append(errs, apperror.FieldError{Field: "status", Message: fmt.Sprintf("unknown status %q", *input.Status)})
		}
		txn.Status = *input.Status
	}
	for _, f := range []struct {
		name string
		src  *decimal.Decimal
		dst  *decimal.Decimal
	}{
		{"subtotal", input.Subtotal, &txn.Subtotal},
		{"discount", input.Discount, &txn.Discount},
		{"totalAmount", input.TotalAmount, &txn.TotalAmount},
		{"amountPaid", input.AmountPaid, &txn.AmountPaid},
		{"balanceDue", input.BalanceDue, &txn.BalanceDue},
	} {
		if f.src == nil {
			continue
		}
		errs = requireNonNegative(errs, f.name, *f.src)
		*f.dst = *f.src
	}
	if input.TotalAmount != nil && txn.HasTaxBreakdown() {
		sum := txn.TaxableTotal().Add(txn.TaxTotal())
		if sum.Sub(txn.TotalAmount).Abs().GreaterThan(closureTolerance) {
			errs = append(errs, apperror.FieldError{
				Field:   "totalAmount",
				Message: fmt.Sprintf("line totals %s do not add up to total amount %s", sum.StringFixed(2), txn.TotalAmount.StringFixed(2)),
			})
		}
	}
	if len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}

	if input.PartyID != nil {
		party, err := s.partyRepo.GetByID(ctx, tenantID, *input.PartyID)
		if err != nil {
			return nil, err
		}
		if party == nil {
			return nil, apperror.NewNotFoundError("Party")
		}
		txn.PartyID = &party.ID
		txn.PartyGSTIN = party.TaxID()
	}
	if input.AccountID != nil {
		account, err := s.accountRepo.GetByID(ctx, tenantID, *input.AccountID)
		if err != nil {
			return nil, err
		}
		if account == nil {
			return nil, apperror.NewNotFoundError("Account")
		}
		txn.AccountID = &account.ID
	}
	if input.Date != nil {
		txn.Date = input.Date.UTC()
	}
	if input.Notes != nil {
		txn.Notes = input.Notes
	}

	if err := s.txnRepo.UpdateHeader(ctx, txn); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx, tenantID)
	return s.GetTransaction(ctx, tenantID, txn.ID)
}

// DeleteTransaction removes a transaction and its lines. Stock moved by it stays where it is.
func (s *LedgerService) DeleteTransaction(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.GetTransaction(ctx, tenantID, id); err != nil {
		return err
	}
	if err := s.txnRepo.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	s.invalidateReports(ctx, tenantID)
	return nil
}
