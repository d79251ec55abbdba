package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/pkg/logger"
	"github.com/sirupsen/logrus"
)

// ReportInvalidator drops cached reports after the ledger or its master data changes
type ReportInvalidator interface {
	Invalidate(ctx context.Context, tenantID uuid.UUID) error
}

// reportInvalidation is embedded by every service whose writes feed a statement
type reportInvalidation struct {
	reports ReportInvalidator
}

// invalidateReports logs failures and never fails the write
func (r *reportInvalidation) invalidateReports(ctx context.Context, tenantID uuid.UUID) {
	if r.reports == nil {
		return
	}
	if err := r.reports.Invalidate(ctx, tenantID); err != nil {
		logger.Get().WithFields(logrus.Fields{
			"tenant_id": tenantID,
		}).Warnf("failed to invalidate cached reports: %v", err)
	}
}
