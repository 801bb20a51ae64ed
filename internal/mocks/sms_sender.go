package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// SMSSender is a mock of model.SMSSender.
type SMSSender struct {
	mock.Mock
}

func (m *SMSSender) Send(ctx context.Context, mobile, message string) error {
	args := m.Called(ctx, mobile, message)
	return args.Error(0)
}
