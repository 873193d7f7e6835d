package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/shaharia-lab/bankalerts/internal/notification"
)

// MockNotificationService is a mock implementation of service.NotificationService.
type MockNotificationService struct {
	mock.Mock
}

//nolint:revive
func (m *MockNotificationService) HandleHighValueTransaction(ctx context.Context, req notification.HighValueTransactionRequest) (bool, error) {
	args := m.Called(ctx, req)
	return args.Bool(0), args.Error(1)
}

//nolint:revive
func (m *MockNotificationService) HandleAccountStatusChange(ctx context.Context, req notification.AccountStatusChangeRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

//nolint:revive
func (m *MockNotificationService) HandleAccountEvent(ctx context.Context, req notification.AccountEventRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

//nolint:revive
func (m *MockNotificationService) SendTestEmail(ctx context.Context, to string) error {
	args := m.Called(ctx, to)
	return args.Error(0)
}

//nolint:revive
func (m *MockNotificationService) SendTestSMS(ctx context.Context, to string) error {
	args := m.Called(ctx, to)
	return args.Error(0)
}
