package repository

import (
	"context"

	"github.com/google/uuid"
)

// CounterRepository allocates document numbers
type CounterRepository interface {
	// Next atomically creates-or-increments the counter for (tenantID, docType)
	// and returns the new value. The first call for a key returns 1.
	Next(ctx context.Context, tenantID uuid.UUID, docType string) (int64, error)
	// Peek returns the last issued value, 0 if the key was never used
	Peek(ctx context.Context, tenantID uuid.UUID, docType string) (int64, error)
}
