package mocks

import (
	"context"

	"github.com/you/communitysvc/domain"
)

// MockAuthService implements domain.AuthService for testing
type MockAuthService struct {
	SendCodeFunc        func(ctx context.Context, phone string) error
	LoginFunc           func(ctx context.Context, phone, code string) (*domain.TokenPair, error)
	AdminLoginFunc      func(ctx context.Context, username, password string) (*domain.TokenPair, error)
	RefreshFunc         func(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	LogoutFunc          func(ctx context.Context, refreshToken string) error
	ResolveIdentityFunc func(ctx context.Context, accessToken string) (*domain.Identity, error)
}

func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) SendCode(ctx context.Context, phone string) error {
	if m.SendCodeFunc != nil {
		return m.SendCodeFunc(ctx, phone)
	}
	return nil
}

func (m *MockAuthService) Login(ctx context.Context, phone, code string) (*domain.TokenPair, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, phone, code)
	}
	return nil, domain.ErrInvalidCode
}

func (m *MockAuthService) AdminLogin(ctx context.Context, username, password string) (*domain.TokenPair, error) {
	if m.AdminLoginFunc != nil {
		return m.AdminLoginFunc(ctx, username, password)
	}
	return nil, domain.ErrInvalidCredentials
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}
	return nil, domain.ErrTokenInvalid
}

func (m *MockAuthService) Logout(ctx context.Context, refreshToken string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, refreshToken)
	}
	return nil
}

func (m *MockAuthService) ResolveIdentity(ctx context.Context, accessToken string) (*domain.Identity, error) {
	if m.ResolveIdentityFunc != nil {
		return m.ResolveIdentityFunc(ctx, accessToken)
	}
	return nil, domain.ErrTokenInvalid
}

var _ domain.AuthService = (*MockAuthService)(nil)
