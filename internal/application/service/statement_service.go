package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	"github.com/sangkips/ledger-api/internal/domain/repository"
	"github.com/sangkips/ledger-api/internal/domain/statement"
	"github.com/sangkips/ledger-api/pkg/apperror"
	"github.com/sangkips/ledger-api/pkg/logger"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Report names, as used in URLs and cache keys
const (
	ReportProfitLoss   = "profit-loss"
	ReportBalanceSheet = "balance-sheet"
	ReportTrialBalance = "trial-balance"
	ReportCashFlow     = "cash-flow"
	ReportGSTR1        = "gstr1"
	ReportGSTR2        = "gstr2"
	ReportHSNSummary   = "hsn-summary"
	ReportGSTR3B       = "gstr3b"
	ReportGSTR9        = "gstr9"
	ReportConsolidated = "consolidated"
)

// ReportNames lists every report Run understands
func ReportNames() []string {
	return []string{
		ReportProfitLoss, ReportBalanceSheet, ReportTrialBalance, ReportCashFlow,
		ReportGSTR1, ReportGSTR2, ReportHSNSummary, ReportGSTR3B, ReportGSTR9,
		ReportConsolidated,
	}
}

// ReportCache stores finished reports. Get reports the tenant version it looked under;
// Set must be given that version so a report computed across an invalidation is dropped.
// Implementations must be safe for concurrent use.
type ReportCache interface {
	Get(ctx context.Context, tenantID uuid.UUID, key string, dest interface{}) (int64, bool, error)
	Set(ctx context.Context, tenantID uuid.UUID, version int64, key string, value interface{}) error
}

// CodeLookup resolves an HSN or SAC code to its description
type CodeLookup interface {
	Lookup(code string) (string, bool)
}

// StatementService loads a ledger snapshot and runs the statement builders over it
type StatementService struct {
	snapshots repository.SnapshotRepository
	cache     ReportCache
	codes     CodeLookup
	loc       *time.Location
	log       *logrus.Logger
	tracer    trace.Tracer
}

// NewStatementService creates a new statement service. Report date boundaries are
// computed in loc.
func NewStatementService(snapshots repository.SnapshotRepository, loc *time.Location) *StatementService {
	if loc == nil {
		loc = time.UTC
	}
	return &StatementService{
		snapshots: snapshots,
		loc:       loc,
		log:       logger.Get(),
		tracer:    otel.Tracer("github.com/sangkips/ledger-api/service/statement"),
	}
}

// WithCache enables caching of finished reports
func (s *StatementService) WithCache(cache ReportCache) *StatementService {
	s.cache = cache
	return s
}

// WithCodes enables HSN descriptions in the HSN summary
func (s *StatementService) WithCodes(codes CodeLookup) *StatementService {
	s.codes = codes
	return s
}

// Location is the timezone report periods are interpreted in
func (s *StatementService) Location() *time.Location {
	return s.loc
}

// ReportQuery carries the parameters a report may need. Unused fields are ignored.
type ReportQuery struct {
	Period        statement.Period
	AsOf          *time.Time
	Month         int
	Year          int
	FinancialYear int
}

// ParseReportQuery builds a query from raw request values: start_date, end_date and as_of
// as YYYY-MM-DD or RFC 3339; month, year and fy as integers. Empty values are skipped.
func (s *StatementService) ParseReportQuery(startDate, endDate, asOf, month, year, fy string) (*ReportQuery, error) {
	period, err := statement.ParsePeriod(startDate, endDate, s.loc)
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}
	q := &ReportQuery{Period: period}

	if asOf != "" {
		t, err := statement.ParseDate(asOf, s.loc)
		if err != nil {
			return nil, apperror.NewBadRequestError("invalid as_of: " + err.Error())
		}
		end := statement.EndOfDay(t)
		q.AsOf = &end
	}
	for _, f := range []struct {
		name string
		raw  string
		dst  *int
	}{
		{"month", month, &q.Month},
		{"year", year, &q.Year},
		{"fy", fy, &q.FinancialYear},
	} {
		if f.raw == "" {
			continue
		}
		n, err := strconv.Atoi(f.raw)
		if err != nil {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("invalid %s: %q", f.name, f.raw))
		}
		*f.dst = n
	}
	return q, nil
}

// Run builds the named report
func (s *StatementService) Run(ctx context.Context, tenantID uuid.UUID, name string, q *ReportQuery) (interface{}, error) {
	if q == nil {
		q = &ReportQuery{}
	}
	switch name {
	case ReportProfitLoss:
		return s.ProfitAndLoss(ctx, tenantID, q.Period)
	case ReportBalanceSheet:
		return s.BalanceSheet(ctx, tenantID, q.AsOf)
	case ReportTrialBalance:
		return s.TrialBalance(ctx, tenantID, q.Period)
	case ReportCashFlow:
		return s.CashFlow(ctx, tenantID, q.Period)
	case ReportGSTR1:
		return s.GSTR1(ctx, tenantID, q.Period)
	case ReportGSTR2:
		return s.GSTR2(ctx, tenantID, q.Period)
	case ReportHSNSummary:
		return s.HSNSummary(ctx, tenantID, q.Period)
	case ReportGSTR3B:
		return s.GSTR3B(ctx, tenantID, q.Month, q.Year)
	case ReportGSTR9:
		return s.GSTR9(ctx, tenantID, q.FinancialYear)
	case ReportConsolidated:
		return s.Consolidated(ctx, tenantID)
	}
	return nil, apperror.NewNotFoundError("Report " + strconv.Quote(name))
}

// build loads the snapshot described by filter and runs fn over it. A cached copy keyed
// by name and key is returned instead when the cache has one.
func build[T any](ctx context.Context, s *StatementService, tenantID uuid.UUID, name, key string, filter repository.SnapshotFilter, fn func(*statement.Snapshot) T) (T, error) {
	var zero T
	if tenantID == uuid.Nil {
		return zero, apperror.ErrTenantRequired
	}

	ctx, span := s.tracer.Start(ctx, "StatementService."+name, trace.WithAttributes(
		attribute.String("tenant.id", tenantID.String()),
		attribute.String("report.key", key),
	))
	defer span.End()

	cacheKey := name + ":" + key
	var version int64
	cacheable := s.cache != nil
	if cacheable {
		var cached T
		v, hit, err := s.cache.Get(ctx, tenantID, cacheKey, &cached)
		version = v
		if err != nil {
			// without a trusted version the result is not stored
			cacheable = false
			s.log.WithFields(logrus.Fields{"tenant_id": tenantID, "report": name}).
				Warnf("report cache read failed: %v", err)
		} else if hit {
			span.SetAttributes(attribute.Bool("report.cached", true))
			return cached, nil
		}
	}

	snap, err := s.snapshots.Load(ctx, tenantID, filter)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.LogError(s.log, "StatementService", name, "snapshot load failed", filter, err)
		return zero, err
	}
	span.SetAttributes(attribute.Int("snapshot.transactions", len(snap.Transactions)))

	out := fn(snap)

	if cacheable {
		if err := s.cache.Set(ctx, tenantID, version, cacheKey, out); err != nil {
			s.log.WithFields(logrus.Fields{"tenant_id": tenantID, "report": name}).
				Warnf("report cache write failed: %v", err)
		}
	}
	return out, nil
}

func periodFilter(p statement.Period, types ...enum.TransactionType) repository.SnapshotFilter {
	return repository.SnapshotFilter{Types: types, From: p.Start, To: p.End}
}

func (s *StatementService) ProfitAndLoss(ctx context.Context, tenantID uuid.UUID, p statement.Period) (statement.ProfitAndLoss, error) {
	return build(ctx, s, tenantID, ReportProfitLoss, p.Key(), periodFilter(p),
		func(snap *statement.Snapshot) statement.ProfitAndLoss {
			return statement.BuildProfitAndLoss(snap, p)
		})
}

// BalanceSheet reports positions as of asOf, or as of now when asOf is nil.
// Inventory is valued from current item stock regardless of asOf.
func (s *StatementService) BalanceSheet(ctx context.Context, tenantID uuid.UUID, asOf *time.Time) (statement.BalanceSheet, error) {
	p := statement.Period{End: asOf}
	filter := repository.SnapshotFilter{To: asOf, WithAccounts: true, WithItems: true}
	return build(ctx, s, tenantID, ReportBalanceSheet, p.Key(), filter,
		func(snap *statement.Snapshot) statement.BalanceSheet {
			return statement.BuildBalanceSheet(snap, asOf)
		})
}

func (s *StatementService) TrialBalance(ctx context.Context, tenantID uuid.UUID, p statement.Period) ([]statement.TrialBalanceRow, error) {
	filter := periodFilter(p)
	filter.WithAccounts = true
	return build(ctx, s, tenantID, ReportTrialBalance, p.Key(), filter,
		func(snap *statement.Snapshot) []statement.TrialBalanceRow {
			return statement.BuildTrialBalance(snap, p)
		})
}

func (s *StatementService) CashFlow(ctx context.Context, tenantID uuid.UUID, p statement.Period) (statement.CashFlow, error) {
	return build(ctx, s, tenantID, ReportCashFlow, p.Key(), periodFilter(p),
		func(snap *statement.Snapshot) statement.CashFlow {
			return statement.BuildCashFlow(snap, p)
		})
}

func (s *StatementService) GSTR1(ctx context.Context, tenantID uuid.UUID, p statement.Period) ([]statement.PartyTaxSummary, error) {
	filter := periodFilter(p, enum.TransactionTypeSale)
	filter.WithLines = true
	return build(ctx, s, tenantID, ReportGSTR1, p.Key(), filter,
		func(snap *statement.Snapshot) []statement.PartyTaxSummary {
			return statement.BuildGSTR1(snap, p)
		})
}

func (s *StatementService) GSTR2(ctx context.Context, tenantID uuid.UUID, p statement.Period) ([]statement.PartyTaxSummary, error) {
	filter := periodFilter(p, enum.TransactionTypePurchase)
	filter.WithLines = true
	return build(ctx, s, tenantID, ReportGSTR2, p.Key(), filter,
		func(snap *statement.Snapshot) []statement.PartyTaxSummary {
			return statement.BuildGSTR2(snap, p)
		})
}

// HSNSummary groups sale lines by HSN code, with descriptions from the code tables when known
func (s *StatementService) HSNSummary(ctx context.Context, tenantID uuid.UUID, p statement.Period) ([]statement.HSNSummaryRow, error) {
	filter := periodFilter(p, enum.TransactionTypeSale, enum.TransactionTypeSaleReturn)
	filter.WithLines = true
	return build(ctx, s, tenantID, ReportHSNSummary, p.Key(), filter,
		func(snap *statement.Snapshot) []statement.HSNSummaryRow {
			rows := statement.BuildHSNSummary(snap, p)
			if s.codes != nil {
				for i := range rows {
					if desc, ok := s.codes.Lookup(rows[i].HSNCode); ok {
						rows[i].Description = desc
					}
				}
			}
			return rows
		})
}

func (s *StatementService) GSTR3B(ctx context.Context, tenantID uuid.UUID, month, year int) (statement.GSTR3B, error) {
	p, err := statement.MonthPeriod(month, year, s.loc)
	if err != nil {
		return statement.GSTR3B{}, apperror.NewBadRequestError(err.Error())
	}
	filter := periodFilter(p, enum.TransactionTypeSale, enum.TransactionTypePurchase)
	filter.WithLines = true
	return build(ctx, s, tenantID, ReportGSTR3B, p.Key(), filter,
		func(snap *statement.Snapshot) statement.GSTR3B {
			return statement.BuildGSTR3B(snap, p)
		})
}

// GSTR9 covers the financial year starting April 1 of fy
func (s *StatementService) GSTR9(ctx context.Context, tenantID uuid.UUID, fy int) (statement.GSTR9, error) {
	p, err := statement.FinancialYearPeriod(fy, s.loc)
	if err != nil {
		return statement.GSTR9{}, apperror.NewBadRequestError(err.Error())
	}
	filter := periodFilter(p, enum.TransactionTypeSale, enum.TransactionTypePurchase)
	filter.WithLines = true
	return build(ctx, s, tenantID, ReportGSTR9, p.Key(), filter,
		func(snap *statement.Snapshot) statement.GSTR9 {
			return statement.BuildGSTR9(snap, p)
		})
}

func (s *StatementService) Consolidated(ctx context.Context, tenantID uuid.UUID) ([]statement.TypeTotal, error) {
	return build(ctx, s, tenantID, ReportConsolidated, "all", repository.SnapshotFilter{},
		statement.BuildConsolidated)
}
