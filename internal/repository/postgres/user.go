package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mforoutan/nak-tender-manager-sub001/internal/model"
)

var _ model.CredentialStore = (*UserRepository)(nil)

// UserRepository is the credential store backed by the portal's users and
// companies tables.
type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

const userColumns = `id, company_id, username, mobile, password_hash, first_name, last_name, active, created_at, updated_at, last_login_at`

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	user, err := r.scanUser(r.db.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByMobile(ctx context.Context, mobile string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE mobile = $1`

	user, err := r.scanUser(r.db.QueryRow(ctx, query, mobile))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by mobile: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetCompanyByUserID(ctx context.Context, userID uuid.UUID) (model.Company, error) {
	var company model.Company
	query := `SELECT c.id, c.name, c.status_code, c.created_at, c.updated_at
			  FROM companies c JOIN users u ON u.company_id = c.id
			  WHERE u.id = $1`

	err := r.db.QueryRow(ctx, query, userID).Scan(
		&company.ID, &company.Name, &company.StatusCode, &company.CreatedAt, &company.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Company{}, model.ErrNotFound
		}
		return model.Company{}, fmt.Errorf("failed to get company by user id: %w", err)
	}

	return company, nil
}

func (r *UserRepository) RecordLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error {
	query := `UPDATE users SET last_login_at = $2, updated_at = now() WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, userID, at); err != nil {
		return fmt.Errorf("failed to record last login: %w", err)
	}

	return nil
}

func (r *UserRepository) scanUser(row pgx.Row) (model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID, &user.CompanyID, &user.Username, &user.Mobile, &user.PasswordHash,
		&user.FirstName, &user.LastName, &user.Active,
		&user.CreatedAt, &user.UpdatedAt, &user.LastLoginAt,
	)
	return user, err
}
