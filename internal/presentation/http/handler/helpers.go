package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/statement"
	"github.com/sangkips/ledger-api/internal/presentation/http/dto/response"
	"github.com/sangkips/ledger-api/pkg/apperror"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return nil
	}
	return &userID
}

// GetTenantID extracts the tenant ID from the Gin context
func GetTenantID(c *gin.Context) uuid.UUID {
	tenantIDVal, exists := c.Get("tenant_id")
	if !exists {
		return uuid.Nil
	}
	tenantID, ok := tenantIDVal.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return tenantID
}

// tenantOrAbort writes an error response when the request carries no tenant
func tenantOrAbort(c *gin.Context) (uuid.UUID, bool) {
	tenantID := GetTenantID(c)
	if tenantID == uuid.Nil {
		response.Error(c, apperror.ErrTenantRequired)
		return uuid.Nil, false
	}
	return tenantID, true
}

// paramID parses a uuid path parameter
func paramID(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+label+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// optionalDate parses s in loc, returning the zero time for an empty string
func optionalDate(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := statement.ParseDate(s, loc)
	if err != nil {
		return time.Time{}, apperror.NewBadRequestError(err.Error())
	}
	return t, nil
}
