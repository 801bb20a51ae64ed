package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/mforoutan/nak-tender-manager-sub001/internal/model"
)

// TokenManager is a mock of model.TokenManager.
type TokenManager struct {
	mock.Mock
}

func (m *TokenManager) GenerateSessionToken(user model.SessionUser) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

func (m *TokenManager) ParseSessionToken(token string) (model.SessionUser, error) {
	args := m.Called(token)
	return args.Get(0).(model.SessionUser), args.Error(1)
}
