package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/ledger-api/internal/infrastructure/reference"
	"github.com/sangkips/ledger-api/internal/presentation/http/dto/response"
)

const defaultCodeSearchLimit = 50

// ReferenceHandler serves the HSN/SAC code table and the state list
type ReferenceHandler struct {
	codes *reference.Codes
}

// NewReferenceHandler creates a new reference handler
func NewReferenceHandler(codes *reference.Codes) *ReferenceHandler {
	return &ReferenceHandler{codes: codes}
}

// SearchCodes handles searching HSN/SAC codes by prefix or description
func (h *ReferenceHandler) SearchCodes(c *gin.Context) {
	limit := defaultCodeSearchLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			response.BadRequest(c, "Invalid limit")
			return
		}
		limit = n
	}

	response.OK(c, "Codes retrieved successfully", h.codes.Search(c.Query("q"), limit))
}

// GetCode handles looking up a single HSN/SAC code
func (h *ReferenceHandler) GetCode(c *gin.Context) {
	code := c.Param("code")
	desc, ok := h.codes.Lookup(code)
	if !ok {
		response.NotFound(c, "Code not found")
		return
	}

	response.OK(c, "Code retrieved successfully", reference.Code{Code: code, Description: desc})
}

// States handles listing Indian states and union territories
func (h *ReferenceHandler) States(c *gin.Context) {
	response.OK(c, "States retrieved successfully", reference.States())
}
