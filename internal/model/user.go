package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CredentialStore defines lookup operations against the portal's registered
// users and their companies.
type CredentialStore interface {
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByMobile(ctx context.Context, mobile string) (User, error)
	GetCompanyByUserID(ctx context.Context, userID uuid.UUID) (Company, error)
	RecordLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error
}

// User represents a registered contractor user with stored credentials.
type User struct {
	ID           uuid.UUID
	CompanyID    uuid.UUID
	Username     string
	Mobile       string
	PasswordHash []byte
	FirstName    string
	LastName     string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  *time.Time
}

// Company represents the contractor company linked to a user account.
type Company struct {
	ID         uuid.UUID
	Name       string
	StatusCode int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
