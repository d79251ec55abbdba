package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/ledger-api/internal/application/service"
	"github.com/sangkips/ledger-api/internal/domain/repository"
	"github.com/sangkips/ledger-api/internal/presentation/http/dto/request"
	"github.com/sangkips/ledger-api/internal/presentation/http/dto/response"
	"github.com/sangkips/ledger-api/pkg/pagination"
)

// ItemHandler handles item HTTP requests
type ItemHandler struct {
	itemService *service.ItemService
}

// NewItemHandler creates a new item handler
func NewItemHandler(itemService *service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// List handles listing items
func (h *ItemHandler) List(c *gin.Context) {
	tenantID, ok := tenantOrAbort(c)
	if !ok {
		return
	}

	var filter request.ItemFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.itemService.ListItems(c.Request.Context(), tenantID, &repository.ItemFilterParams{
		Pagination: &pagination.PaginationParams{Page: filter.Page, PerPage: filter.PerPage},
		Search:     filter.Search,
		LowStock:   filter.LowStock,
		SortBy:     filter.SortBy,
		SortOrder:  filter.SortOrder,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Items retrieved successfully", result)
}

// Create handles creating an item with its opening stock
func (h *ItemHandler) Create(c *gin.Context) {
	tenantID, ok := tenantOrAbort(c)
	if !ok {
		return
	}

	var req request.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	item, err := h.itemService.CreateItem(c.Request.Context(), tenantID, &service.CreateItemInput{
		Name:          req.Name,
		SalePrice:     req.SalePrice,
		PurchasePrice: req.PurchasePrice,
		OpeningStock:  req.OpeningStock,
		TaxRate:       req.TaxRate,
		HSNCode:       req.HSNCode,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Item created successfully", item)
}

// Get handles getting a single item
func (h *ItemHandler) Get(c *gin.Context) {
	tenantID, ok := tenantOrAbort(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "item")
	if !ok {
		return
	}

	item, err := h.itemService.GetItem(c.Request.Context(), tenantID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item retrieved successfully", item)
}

// Update handles updating static item fields
func (h *ItemHandler) Update(c *gin.Context) {
	tenantID, ok := tenantOrAbort(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "item")
	if !ok {
		return
	}

	var req request.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	item, err := h.itemService.UpdateItem(c.Request.Context(), tenantID, id, &service.UpdateItemInput{
		Name:          req.Name,
		SalePrice:     req.SalePrice,
		PurchasePrice: req.PurchasePrice,
		TaxRate:       req.TaxRate,
		HSNCode:       req.HSNCode,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item updated successfully", item)
}

// Delete handles deleting an item
func (h *ItemHandler) Delete(c *gin.Context) {
	tenantID, ok := tenantOrAbort(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "item")
	if !ok {
		return
	}

	if err := h.itemService.DeleteItem(c.Request.Context(), tenantID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
