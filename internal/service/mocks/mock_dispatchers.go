package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/shaharia-lab/bankalerts/internal/notification"
)

// MockEmailDispatcher is a mock implementation of service.EmailDispatcher.
type MockEmailDispatcher struct {
	mock.Mock
}

//nolint:revive
func (m *MockEmailDispatcher) Dispatch(ctx context.Context, msg notification.EmailMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// MockSMSDispatcher is a mock implementation of service.SMSDispatcher.
type MockSMSDispatcher struct {
	mock.Mock
}

//nolint:revive
func (m *MockSMSDispatcher) Dispatch(ctx context.Context, msg notification.SmsMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
