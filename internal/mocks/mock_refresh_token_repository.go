package mocks

import (
	"context"

	"github.com/you/communitysvc/domain"
)

// MockRefreshTokenRepository implements domain.RefreshTokenRepository for testing
type MockRefreshTokenRepository struct {
	CreateFunc  func(ctx context.Context, token *domain.RefreshToken) error
	ConsumeFunc func(ctx context.Context, token string) (*domain.RefreshToken, error)
	DeleteFunc  func(ctx context.Context, token string) error
}

func NewMockRefreshTokenRepository() *MockRefreshTokenRepository {
	return &MockRefreshTokenRepository{}
}

func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, token)
	}
	return nil
}

func (m *MockRefreshTokenRepository) Consume(ctx context.Context, token string) (*domain.RefreshToken, error) {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, token)
	}
	return nil, domain.ErrTokenInvalid
}

func (m *MockRefreshTokenRepository) Delete(ctx context.Context, token string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, token)
	}
	return nil
}

var _ domain.RefreshTokenRepository = (*MockRefreshTokenRepository)(nil)
