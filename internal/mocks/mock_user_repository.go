package mocks

import (
	"context"
	"time"

	"github.com/you/communitysvc/domain"
)

// MockUserRepository implements domain.UserRepository for testing
type MockUserRepository struct {
	CreateFunc            func(ctx context.Context, user *domain.User) error
	FindByIDFunc          func(ctx context.Context, id string) (*domain.User, error)
	FindByPhoneFunc       func(ctx context.Context, phone string) (*domain.User, error)
	FindByUsernameFunc    func(ctx context.Context, username string) (*domain.User, error)
	UpdateFunc            func(ctx context.Context, user *domain.User) error
	UpdateStatusFunc      func(ctx context.Context, id, status string) error
	ListFunc              func(ctx context.Context, page, pageSize int, keyword string) (*domain.Page[*domain.User], error)
	ReplaceRolesFunc      func(ctx context.Context, userID string, roleNames []string) error
	AssignRoleFunc        func(ctx context.Context, userID, roleName string) error
	CountByStatusFunc     func(ctx context.Context, status string) (int64, error)
	CountCreatedSinceFunc func(ctx context.Context, since time.Time) (int64, error)
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	if m.FindByPhoneFunc != nil {
		return m.FindByPhoneFunc(ctx, phone)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.FindByUsernameFunc != nil {
		return m.FindByUsernameFunc(ctx, username)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) UpdateStatus(ctx context.Context, id, status string) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *MockUserRepository) List(ctx context.Context, page, pageSize int, keyword string) (*domain.Page[*domain.User], error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, page, pageSize, keyword)
	}
	return &domain.Page[*domain.User]{Data: []*domain.User{}, Page: page, PageSize: pageSize}, nil
}

func (m *MockUserRepository) ReplaceRoles(ctx context.Context, userID string, roleNames []string) error {
	if m.ReplaceRolesFunc != nil {
		return m.ReplaceRolesFunc(ctx, userID, roleNames)
	}
	return nil
}

func (m *MockUserRepository) AssignRole(ctx context.Context, userID, roleName string) error {
	if m.AssignRoleFunc != nil {
		return m.AssignRoleFunc(ctx, userID, roleName)
	}
	return nil
}

func (m *MockUserRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx, status)
	}
	return 0, nil
}

func (m *MockUserRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	if m.CountCreatedSinceFunc != nil {
		return m.CountCreatedSinceFunc(ctx, since)
	}
	return 0, nil
}

var _ domain.UserRepository = (*MockUserRepository)(nil)
