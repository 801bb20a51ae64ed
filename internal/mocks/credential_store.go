// Package mocks contains testify mocks for the model interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/mforoutan/nak-tender-manager-sub001/internal/model"
)

// CredentialStore is a mock of model.CredentialStore.
type CredentialStore struct {
	mock.Mock
}

func (m *CredentialStore) GetByUsername(ctx context.Context, username string) (model.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *CredentialStore) GetByMobile(ctx context.Context, mobile string) (model.User, error) {
	args := m.Called(ctx, mobile)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *CredentialStore) GetCompanyByUserID(ctx context.Context, userID uuid.UUID) (model.Company, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.Company), args.Error(1)
}

func (m *CredentialStore) RecordLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error {
	args := m.Called(ctx, userID, at)
	return args.Error(0)
}
