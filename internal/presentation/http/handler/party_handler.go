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

// PartyHandler handles customer and supplier HTTP requests
type PartyHandler struct {
	partyService *service.PartyService
}

// NewPartyHandler creates a new party handler
func NewPartyHandler(partyService *service.PartyService) *PartyHandler {
	return &PartyHandler{partyService: partyService}
}

func partyInput(req *request.PartyRequest) *service.PartyInput {
	return &service.PartyInput{
		Name:    req.Name,
		Type:    req.Type,
		GSTIN:   req.GSTIN,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		State:   req.State,
	}
}

// List handles listing parties
func (h *PartyHandler) List(c *gin.Context) {
	tenantID, ok := tenantOrAbort(c)
	if !ok {
		return
	}

	var filter request.PartyFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.partyService.ListParties(c.Request.Context(), tenantID, &repository.PartyFilterParams{
		Pagination: &pagination.PaginationParams{Page: filter.Page, PerPage: filter.PerPage},
		Search:     filter.Search,
		Type:       enum.PartyType(filter.Type),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Parties retrieved successfully", result)
}

// Create handles creating a party
func (h *PartyHandler) Create(c *gin.Context) {
	tenantID, ok := tenantOrAbort(c)
	if !ok {
		return
	}

	var req request.PartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	party, err := h.partyService.CreateParty(c.Request.Context(), tenantID, partyInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Party created successfully", party)
}

// Get handles getting a single party
func (h *PartyHandler) Get(c *gin.Context) {
	tenantID, ok := tenantOrAbort(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "party")
	if !ok {
		return
	}

	party, err := h.partyService.GetParty(c.Request.Context(), tenantID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Party retrieved successfully", party)
}

// Update handles replacing a party
func (h *PartyHandler) Update(c *gin.Context) {
	tenantID, ok := tenantOrAbort(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "party")
	if !ok {
		return
	}

	var req request.PartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	party, err := h.partyService.UpdateParty(c.Request.Context(), tenantID, id, partyInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Party updated successfully", party)
}

// Delete handles deleting a party
func (h *PartyHandler) Delete(c *gin.Context) {
	tenantID, ok := tenantOrAbort(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "party")
	if !ok {
		return
	}

	if err := h.partyService.DeleteParty(c.Request.Context(), tenantID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
