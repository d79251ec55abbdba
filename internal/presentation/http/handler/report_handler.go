package handler

import (
	"bytes"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/ledger-api/internal/application/service"
	"github.com/sangkips/ledger-api/internal/infrastructure/export"
	"github.com/sangkips/ledger-api/internal/presentation/http/dto/request"
	"github.com/sangkips/ledger-api/internal/presentation/http/dto/response"
	"github.com/sangkips/ledger-api/pkg/apperror"
)

// ReportHandler handles financial statement and tax report HTTP requests
type ReportHandler struct {
	statementService *service.StatementService
}

// NewReportHandler creates a new report handler
func NewReportHandler(statementService *service.StatementService) *ReportHandler {
	return &ReportHandler{statementService: statementService}
}

func (h *ReportHandler) query(c *gin.Context) (*service.ReportQuery, error) {
	var req request.ReportQueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return nil, apperror.NewBadRequestError("Invalid query parameters")
	}
	return h.statementService.ParseReportQuery(req.StartDate, req.EndDate, req.AsOf, req.Month, req.Year, req.FinancialYear)
}

// List handles listing the available report names
func (h *ReportHandler) List(c *gin.Context) {
	response.OK(c, "Reports retrieved successfully", service.ReportNames())
}

// Get handles building a single report
func (h *ReportHandler) Get(c *gin.Context) {
	tenantID, ok := tenantOrAbort(c)
	if !ok {
		return
	}

	q, err := h.query(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	report, err := h.statementService.Run(c.Request.Context(), tenantID, c.Param("name"), q)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report generated successfully", report)
}

// Export handles downloading a report as an xlsx workbook
func (h *ReportHandler) Export(c *gin.Context) {
	tenantID, ok := tenantOrAbort(c)
	if !ok {
		return
	}

	q, err := h.query(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	name := c.Param("name")
	sheets, err := h.statementService.Export(c.Request.Context(), tenantID, name, q)
	if err != nil {
		response.Error(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, sheets...); err != nil {
		response.Error(c, apperror.NewInternalError(err))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s_%s.xlsx"`, name, q.Period.Key()))
	c.Data(200, export.ContentTypeXLSX, buf.Bytes())
}
