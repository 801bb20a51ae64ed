package model

import (
	"context"

	"github.com/google/uuid"
)

// FactSource fetches session fields derived from portal state rather than
// fixed identity. Each method maps to one refreshable field group.
type FactSource interface {
	AccountTask(ctx context.Context, companyID uuid.UUID) (TaskStatus, error)
	Participation(ctx context.Context, companyID uuid.UUID) (Participation, error)
}
