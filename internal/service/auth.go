package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mforoutan/nak-tender-manager-sub001/internal/logger"
	"github.com/mforoutan/nak-tender-manager-sub001/internal/model"
)

// externalCallTimeout bounds the latency of credential and derived-fact
// lookups so a stuck collaborator cannot hold a request open indefinitely.
const externalCallTimeout = 5 * time.Second

// Auth implements the session manager: authentication against the credential
// store and partial refresh of derived session fields.
type Auth struct {
	credentials model.CredentialStore
	facts       model.FactSource
	logger      *logger.Logger
}

// NewAuth creates a new Auth service.
func NewAuth(credentials model.CredentialStore, facts model.FactSource, logger *logger.Logger) *Auth {
	return &Auth{
		credentials: credentials,
		facts:       facts,
		logger:      logger,
	}
}

// Login verifies the credentials and assembles the session payload. Absent
// user, inactive user and wrong password all collapse into
// ErrInvalidCredentials so responses cannot be used for username
// enumeration. Derived facts are left absent; the first refresh backfills
// them.
func (a *Auth) Login(ctx context.Context, username, password string) (model.SessionUser, error) {
	a.logger.Debug("Auth service: processing login", "username", username)

	ctx, cancel := context.WithTimeout(ctx, externalCallTimeout)
	defer cancel()

	user, err := a.credentials.GetByUsername(ctx, username)
	if errors.Is(err, model.ErrNotFound) {
		return model.SessionUser{}, model.ErrInvalidCredentials
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get user by username",
			"username", username,
			"error", err.Error())
		return model.SessionUser{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	if !user.Active {
		return model.SessionUser{}, model.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return model.SessionUser{}, model.ErrInvalidCredentials
	}

	company, err := a.credentials.GetCompanyByUserID(ctx, user.ID)
	if errors.Is(err, model.ErrNotFound) {
		return model.SessionUser{}, model.ErrAccountDataMissing
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get company for user",
			"user_id", user.ID,
			"error", err.Error())
		return model.SessionUser{}, fmt.Errorf("failed to get company for user: %w", err)
	}

	// Best-effort side effect: a failed write must not fail the login.
	if err := a.credentials.RecordLastLogin(ctx, user.ID, time.Now()); err != nil {
		a.logger.Error("Auth service: failed to record last login",
			"user_id", user.ID,
			"error", err.Error())
	}

	a.logger.Info("Auth service: login successful",
		"user_id", user.ID,
		"company_id", company.ID)

	return model.SessionUser{
		UserID:      user.ID,
		CompanyID:   company.ID,
		Username:    user.Username,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		CompanyName: company.Name,
		StatusCode:  company.StatusCode,
	}, nil
}

// Refresh replaces the requested field groups of the payload with freshly
// fetched values. A group is also refreshed when it is absent from the
// payload, regardless of what was requested. Groups commit independently: a
// failed fetch is logged and the previous value retained while other groups
// still commit. Identity fields are never touched.
func (a *Auth) Refresh(ctx context.Context, current model.SessionUser, groups []string) model.SessionUser {
	requested := make(map[string]bool, len(groups))
	for _, g := range groups {
		requested[g] = true
	}

	ctx, cancel := context.WithTimeout(ctx, externalCallTimeout)
	defer cancel()

	refreshed := current

	if requested[model.FieldGroupParticipation] || current.Participation == nil {
		participation, err := a.facts.Participation(ctx, current.CompanyID)
		if err != nil {
			a.logger.Error("Auth service: failed to refresh participation counts",
				"company_id", current.CompanyID,
				"error", err.Error())
		} else {
			refreshed.Participation = &participation
		}
	}

	if requested[model.FieldGroupAccountTask] || current.AccountTask == nil {
		task, err := a.facts.AccountTask(ctx, current.CompanyID)
		if err != nil {
			a.logger.Error("Auth service: failed to refresh account task status",
				"company_id", current.CompanyID,
				"error", err.Error())
		} else {
			refreshed.AccountTask = &task
		}
	}

	return refreshed
}

// HashPassword hashes a plaintext password with the portal's bcrypt cost.
func HashPassword(password string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}
