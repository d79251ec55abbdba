package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/application/service"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	"github.com/sangkips/ledger-api/internal/domain/repository"
	"github.com/sangkips/ledger-api/internal/domain/statement"
	"github.com/sangkips/ledger-api/internal/presentation/http/dto/request"
	"github.com/sangkips/ledger-api/internal/presentation/http/dto/response"
	"github.com/sangkips/ledger-api/pkg/pagination"
)

// TransactionHandler handles ledger transaction HTTP requests
type TransactionHandler struct {
	ledgerService   *service.LedgerService
	sequenceService *service.SequenceService
	loc             *time.Location
}

// NewTransactionHandler creates a new transaction handler. Dates without a zone are read in loc.
func NewTransactionHandler(ledgerService *service.LedgerService, sequenceService *service.SequenceService, loc *time.Location) *TransactionHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &TransactionHandler{
		ledgerService:   ledgerService,
		sequenceService: sequenceService,
		loc:             loc,
	}
}

// List handles listing transactions (supports both page-based and cursor-based pagination)
func (h *TransactionHandler) List(c *gin.Context) {
	tenantID, ok := tenantOrAbort(c)
	if !ok {
		return
	}

	var filter request.TransactionFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	var partyID *uuid.UUID
	if filter.PartyID != "" {
		id, err := uuid.Parse(filter.PartyID)
		if err != nil {
			response.BadRequest(c, "Invalid party ID")
			return
		}
		partyID = &id
	}

	period, err := statement.ParsePeriod(filter.StartDate, filter.EndDate, h.loc)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if cursor := c.Query("cursor"); cursor != "" || filter.Limit > 0 {
		h.listWithCursor(c, tenantID, &filter, partyID, period)
		return
	}

	result, err := h.ledgerService.ListTransactions(c.Request.Context(), tenantID, &repository.TransactionFilterParams{
		Pagination: &pagination.PaginationParams{Page: filter.Page, PerPage: filter.PerPage},
		Type:       enum.TransactionType(filter.Type),
		PartyID:    partyID,
		Status:     enum.TransactionStatus(filter.Status),
		From:       period.Start,
		To:         period.End,
		Search:     filter.Search,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Transactions retrieved successfully", result)
}

// listWithCursor handles listing transactions with cursor-based pagination
func (h *TransactionHandler) listWithCursor(c *gin.Context, tenantID uuid.UUID, filter *request.TransactionFilterRequest, partyID *uuid.UUID, period statement.Period) {
	limit := 15
	if filter.Limit > 0 {
		limit = filter.Limit
	}

	result, err := h.ledgerService.ListTransactionsWithCursor(c.Request.Context(), tenantID, &repository.TransactionCursorFilterParams{
		Cursor: &pagination.CursorParams{
			Cursor:    c.Query("cursor"),
			Direction: pagination.CursorDirection(c.DefaultQuery("direction", "next")),
			Limit:     limit,
		},
		Type:    enum.TransactionType(filter.Type),
		PartyID: partyID,
		Status:  enum.TransactionStatus(filter.Status),
		From:    period.Start,
		To:      period.End,
		Search:  filter.Search,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, 200, "Transactions retrieved successfully", result)
}

// Create handles committing a transaction together with its stock movements
func (h *TransactionHandler) Create(c *gin.Context) {
	tenantID, ok := tenantOrAbort(c)
	if !ok {
		return
	}

	var req request.CommitTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	date, err := optionalDate(req.Date, h.loc)
	if err != nil {
		response.Error(c, err)
		return
	}

	input := &service.CommitInput{
		Type:        req.Type,
		Number:      req.Number,
		Status:      req.Status,
		PartyID:     req.PartyID,
		AccountID:   req.AccountID,
		Date:        date,
		Subtotal:    req.Subtotal,
		Discount:    req.Discount,
		TotalAmount: req.TotalAmount,
		AmountPaid:  req.AmountPaid,
		BalanceDue:  req.BalanceDue,
		Notes:       req.Notes,
		CreatedBy:   GetUserID(c),
		Lines:       make([]service.CommitLineInput, 0, len(req.Lines)),
	}
	for _, l := range req.Lines {
		input.Lines = append(input.Lines, service.CommitLineInput{
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

	txn, err := h.ledgerService.Commit(c.Request.Context(), tenantID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Transaction committed successfully", txn)
}

// Get handles getting a single transaction with its lines
func (h *TransactionHandler) Get(c *gin.Context) {
	tenantID, ok := tenantOrAbort(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "transaction")
	if !ok {
		return
	}

	txn, err := h.ledgerService.GetTransaction(c.Request.Context(), tenantID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction retrieved successfully", txn)
}

// Update handles editing transaction header fields
func (h *TransactionHandler) Update(c *gin.Context) {
	tenantID, ok := tenantOrAbort(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "transaction")
	if !ok {
		return
	}

	var req request.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.UpdateTransactionInput{
		ID:          id,
		Number:      req.Number,
		Status:      req.Status,
		PartyID:     req.PartyID,
		AccountID:   req.AccountID,
		Subtotal:    req.Subtotal,
		Discount:    req.Discount,
		TotalAmount: req.TotalAmount,
		AmountPaid:  req.AmountPaid,
		BalanceDue:  req.BalanceDue,
		Notes:       req.Notes,
	}
	if req.Date != nil {
		date, err := statement.ParseDate(*req.Date, h.loc)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		input.Date = &date
	}

	txn, err := h.ledgerService.UpdateTransaction(c.Request.Context(), tenantID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction updated successfully", txn)
}

// Delete handles deleting a transaction. Stock is not reversed.
func (h *TransactionHandler) Delete(c *gin.Context) {
	tenantID, ok := tenantOrAbort(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "transaction")
	if !ok {
		return
	}

	if err := h.ledgerService.DeleteTransaction(c.Request.Context(), tenantID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Convert handles turning an estimate or order into an invoice
func (h *TransactionHandler) Convert(c *gin.Context) {
	tenantID, ok := tenantOrAbort(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "transaction")
	if !ok {
		return
	}

	var req request.ConvertTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	date, err := optionalDate(req.Date, h.loc)
	if err != nil {
		response.Error(c, err)
		return
	}

	txn, err := h.ledgerService.Convert(c.Request.Context(), tenantID, &service.ConvertInput{
		SourceID:  id,
		Number:    req.Number,
		Date:      date,
		CreatedBy: GetUserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Transaction converted successfully", txn)
}

// NextNumber handles allocating the next document number for a type,
// optionally formatted with the prefix of a series account
func (h *TransactionHandler) NextNumber(c *gin.Context) {
	tenantID, ok := tenantOrAbort(c)
	if !ok {
		return
	}

	var seriesID *uuid.UUID
	if s := c.Query("series"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			response.BadRequest(c, "Invalid series ID")
			return
		}
		seriesID = &id
	}

	number, err := h.sequenceService.Allocate(c.Request.Context(), tenantID, c.Param("type"), seriesID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Number allocated successfully", number)
}
