package mocks

import (
	"context"

	"github.com/dealclarity/clarity/pkg/protocol"
	"github.com/stretchr/testify/mock"
)

// MockMailer is a mock implementation of protocol.Mailer interface.
type MockMailer struct {
	mock.Mock
}

var _ protocol.Mailer = (*MockMailer)(nil)

func (m *MockMailer) Send(ctx context.Context, email protocol.Email) error {
	args := m.Called(ctx, email)

	return args.Error(0)
}

// MockNotifier is a mock implementation of protocol.Notifier interface.
type MockNotifier struct {
	mock.Mock
}

var _ protocol.Notifier = (*MockNotifier)(nil)

func (m *MockNotifier) NotifyUser(ctx context.Context, userID string, notification protocol.Notification) error {
	args := m.Called(ctx, userID, notification)

	return args.Error(0)
}
