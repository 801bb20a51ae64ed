package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/mforoutan/nak-tender-manager-sub001/internal/model"
)

// FactSource is a mock of model.FactSource.
type FactSource struct {
	mock.Mock
}

func (m *FactSource) AccountTask(ctx context.Context, companyID uuid.UUID) (model.TaskStatus, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(model.TaskStatus), args.Error(1)
}

func (m *FactSource) Participation(ctx context.Context, companyID uuid.UUID) (model.Participation, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(model.Participation), args.Error(1)
}
