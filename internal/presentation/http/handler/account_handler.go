package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/ledger-api/internal/application/service"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	"github.com/sangkips/ledger-api/internal/domain/repository"
	"github.com/sangkips/ledger-api/internal/presentation/http/dto/request"
	"github.com/sangkips/ledger-api/internal/presentation/http/dto/response"
	"github.com/sangkips/ledger-api/pkg/pagination"
)

// AccountHandler handles master account HTTP requests
type AccountHandler struct {
	accountService *service.AccountService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

func accountInput(req *request.AccountRequest) *service.AccountInput {
	return &service.AccountInput{
		Name:          req.Name,
		Alias:         req.Alias,
		Group:         req.Group,
		Type:          req.Type,
		Prefix:        req.Prefix,
		GSTIN:         req.GSTIN,
		OpeningAmount: req.OpeningAmount,
		OpeningSide:   req.OpeningSide,
		IsActive:      req.IsActive,
	}
}

// List handles listing accounts
func (h *AccountHandler) List(c *gin.Context) {
	tenantID, ok := tenantOrAbort(c)
	if !ok {
		return
	}

	var filter request.AccountFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.accountService.ListAccounts(c.Request.Context(), tenantID, &repository.AccountFilterParams{
		Pagination: &pagination.PaginationParams{Page: filter.Page, PerPage: filter.PerPage},
		Search:     filter.Search,
		Type:       enum.AccountType(filter.Type),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Accounts retrieved successfully", result)
}

// Create handles creating an account
func (h *AccountHandler) Create(c *gin.Context) {
	tenantID, ok := tenantOrAbort(c)
	if !ok {
		return
	}

	var req request.AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), tenantID, accountInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Account created successfully", account)
}

// Get handles getting a single account
func (h *AccountHandler) Get(c *gin.Context) {
	tenantID, ok := tenantOrAbort(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "account")
	if !ok {
		return
	}

	account, err := h.accountService.GetAccount(c.Request.Context(), tenantID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Account retrieved successfully", account)
}

// Update handles replacing an account
func (h *AccountHandler) Update(c *gin.Context) {
	tenantID, ok := tenantOrAbort(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "account")
	if !ok {
		return
	}

	var req request.AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), tenantID, id, accountInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Account updated successfully", account)
}

// Delete handles deleting an account
func (h *AccountHandler) Delete(c *gin.Context) {
	tenantID, ok := tenantOrAbort(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "account")
	if !ok {
		return
	}

	if err := h.accountService.DeleteAccount(c.Request.Context(), tenantID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
