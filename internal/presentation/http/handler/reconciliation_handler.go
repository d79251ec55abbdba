package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/ledger-api/internal/application/service"
	"github.com/sangkips/ledger-api/internal/domain/reconciliation"
	"github.com/sangkips/ledger-api/internal/domain/statement"
	"github.com/sangkips/ledger-api/internal/presentation/http/dto/request"
	"github.com/sangkips/ledger-api/internal/presentation/http/dto/response"
)

// ReconciliationHandler handles GSTR-2A and bank reconciliation HTTP requests
type ReconciliationHandler struct {
	reconciliationService *service.ReconciliationService
	loc                   *time.Location
}

// NewReconciliationHandler creates a new reconciliation handler
func NewReconciliationHandler(reconciliationService *service.ReconciliationService, loc *time.Location) *ReconciliationHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &ReconciliationHandler{reconciliationService: reconciliationService, loc: loc}
}

// GSTR2A handles comparing a month of purchases with supplier-reported invoices
func (h *ReconciliationHandler) GSTR2A(c *gin.Context) {
	tenantID, ok := tenantOrAbort(c)
	if !ok {
		return
	}

	var req request.GSTR2AReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	external := make([]reconciliation.ExternalInvoice, 0, len(req.Invoices))
	for _, inv := range req.Invoices {
		date, err := optionalDate(inv.Date, h.loc)
		if err != nil {
			response.Error(c, err)
			return
		}
		external = append(external, reconciliation.ExternalInvoice{
			CounterpartyID: inv.GSTIN,
			DocumentNumber: inv.DocumentNumber,
			Date:           date,
			TaxableValue:   inv.TaxableValue,
			TotalTax:       inv.TotalTax,
		})
	}

	result, err := h.reconciliationService.ReconcileGSTR2A(c.Request.Context(), tenantID, req.Month, req.Year, external)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "GSTR-2A reconciliation completed", result)
}

// Bank handles pairing book cash movements with bank statement lines
func (h *ReconciliationHandler) Bank(c *gin.Context) {
	tenantID, ok := tenantOrAbort(c)
	if !ok {
		return
	}

	var req request.BankReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	period, err := statement.ParsePeriod(req.StartDate, req.EndDate, h.loc)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	lines := make([]reconciliation.BankLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		date, err := statement.ParseDate(l.Date, h.loc)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		lines = append(lines, reconciliation.BankLine{
			ID:          l.ID,
			Date:        date,
			Description: l.Description,
			Debit:       l.Debit,
			Credit:      l.Credit,
		})
	}

	result, err := h.reconciliationService.ReconcileBank(c.Request.Context(), tenantID, period, lines)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bank reconciliation completed", result)
}
