package mocks

import (
	"sync"

	"github.com/you/communitysvc/domain"
)

// MockNotificationService implements domain.NotificationService for testing.
// Sent messages are recorded for assertions.
type MockNotificationService struct {
	SendSMSFunc func(to, message string) error

	mu   sync.Mutex
	Sent []SentSMS
}

// SentSMS records one delivered message.
type SentSMS struct {
	To      string
	Message string
}

func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

func (m *MockNotificationService) SendSMS(to, message string) error {
	if m.SendSMSFunc != nil {
		return m.SendSMSFunc(to, message)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, SentSMS{To: to, Message: message})
	return nil
}

var _ domain.NotificationService = (*MockNotificationService)(nil)
