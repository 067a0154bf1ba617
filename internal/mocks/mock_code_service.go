package mocks

import (
	"context"

	"github.com/you/communitysvc/domain"
)

// MockCodeService implements domain.CodeService for testing
type MockCodeService struct {
	SendFunc             func(ctx context.Context, phone string) error
	VerifyAndConsumeFunc func(ctx context.Context, phone, code string) (bool, error)
}

func NewMockCodeService() *MockCodeService {
	return &MockCodeService{}
}

func (m *MockCodeService) Send(ctx context.Context, phone string) error {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, phone)
	}
	return nil
}

func (m *MockCodeService) VerifyAndConsume(ctx context.Context, phone, code string) (bool, error) {
	if m.VerifyAndConsumeFunc != nil {
		return m.VerifyAndConsumeFunc(ctx, phone, code)
	}
	return false, nil
}

var _ domain.CodeService = (*MockCodeService)(nil)
