package mocks

import (
	"context"

	"github.com/you/communitysvc/domain"
)

// MockPostRepository implements domain.PostRepository for testing
type MockPostRepository struct {
	CreateFunc             func(ctx context.Context, post *domain.Post) error
	FindByIDFunc           func(ctx context.Context, id string) (*domain.Post, error)
	UpdateFunc             func(ctx context.Context, post *domain.Post) error
	UpdateStatusFunc       func(ctx context.Context, id, status string) error
	DeleteFunc             func(ctx context.Context, id string) error
	IncrementViewCountFunc func(ctx context.Context, id string) error
	ListFunc               func(ctx context.Context, f domain.PostFilter) (*domain.Page[*domain.Post], error)
	CountByStatusFunc      func(ctx context.Context, status string) (int64, error)
}

func NewMockPostRepository() *MockPostRepository {
	return &MockPostRepository{}
}

func (m *MockPostRepository) Create(ctx context.Context, post *domain.Post) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, post)
	}
	return nil
}

func (m *MockPostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *MockPostRepository) Update(ctx context.Context, post *domain.Post) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, post)
	}
	return nil
}

func (m *MockPostRepository) UpdateStatus(ctx context.Context, id, status string) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *MockPostRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockPostRepository) IncrementViewCount(ctx context.Context, id string) error {
	if m.IncrementViewCountFunc != nil {
		return m.IncrementViewCountFunc(ctx, id)
	}
	return nil
}

func (m *MockPostRepository) List(ctx context.Context, f domain.PostFilter) (*domain.Page[*domain.Post], error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return &domain.Page[*domain.Post]{Data: []*domain.Post{}, Page: f.Page, PageSize: f.PageSize}, nil
}

func (m *MockPostRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx, status)
	}
	return 0, nil
}

var _ domain.PostRepository = (*MockPostRepository)(nil)
