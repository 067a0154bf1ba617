package services

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/communitysvc/domain"
	"github.com/you/communitysvc/internal/mocks"
)

// memoryPostStore backs the post repository mock with a working in-memory
// table so workflow tests read their own writes.
type memoryPostStore struct {
	mu    sync.Mutex
	seq   int
	posts map[string]*domain.Post
}

func newMemoryPostStore() *memoryPostStore {
	return &memoryPostStore{posts: make(map[string]*domain.Post)}
}

func (s *memoryPostStore) bind(m *mocks.MockPostRepository) {
	m.CreateFunc = func(ctx context.Context, post *domain.Post) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.seq++
		post.ID = "post-" + strconv.Itoa(s.seq)
		clone := *post
		s.posts[post.ID] = &clone
		return nil
	}
	m.FindByIDFunc = func(ctx context.Context, id string) (*domain.Post, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		post, ok := s.posts[id]
		if !ok {
			return nil, domain.ErrNotFound
		}
		clone := *post
		return &clone, nil
	}
	m.UpdateFunc = func(ctx context.Context, post *domain.Post) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		clone := *post
		s.posts[post.ID] = &clone
		return nil
	}
	m.UpdateStatusFunc = func(ctx context.Context, id, status string) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		post, ok := s.posts[id]
		if !ok {
			return domain.ErrNotFound
		}
		post.Status = status
		return nil
	}
	m.DeleteFunc = func(ctx context.Context, id string) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.posts, id)
		return nil
	}
	m.IncrementViewCountFunc = func(ctx context.Context, id string) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		if post, ok := s.posts[id]; ok {
			post.ViewCount++
		}
		return nil
	}
}

func newPostFixture() (*PostServiceImpl, *memoryPostStore) {
	repo := mocks.NewMockPostRepository()
	store := newMemoryPostStore()
	store.bind(repo)
	return NewPostService(repo), store
}

func member(id string) *domain.Identity {
	return &domain.Identity{UserID: id, Roles: []string{domain.RoleMember}}
}

func moderator(id string) *domain.Identity {
	return &domain.Identity{UserID: id, Roles: []string{domain.RoleModerator}}
}

func admin(id string) *domain.Identity {
	return &domain.Identity{UserID: id, Roles: []string{domain.RoleAdmin}}
}

func TestPostCreate_AlwaysPending(t *testing.T) {
	svc, _ := newPostFixture()

	post, err := svc.Create(context.Background(), "author-1", "标题", "内容", "cat-1")
	require.NoError(t, err)
	assert.Equal(t, domain.PostStatusPending, post.Status)
}

func TestPostGet_HiddenVisibility(t *testing.T) {
	svc, _ := newPostFixture()
	created, err := svc.Create(context.Background(), "author-1", "标题", "内容", "")
	require.NoError(t, err)

	tests := []struct {
		name    string
		viewer  *domain.Identity
		wantErr error
	}{
		{name: "anonymous", viewer: nil, wantErr: domain.ErrNotFound},
		{name: "other member", viewer: member("other"), wantErr: domain.ErrNotFound},
		{name: "author", viewer: member("author-1"), wantErr: nil},
		{name: "moderator", viewer: moderator("mod-1"), wantErr: nil},
		{name: "admin", viewer: admin("adm-1"), wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post, err := svc.Get(context.Background(), created.ID, tt.viewer)
			if tt.wantErr != nil {
				// Hidden posts look exactly like missing ones.
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, post)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.PostStatusPending, post.Status)
		})
	}
}

func TestPostGet_ApprovedIsPublicAndCounted(t *testing.T) {
	svc, _ := newPostFixture()
	created, err := svc.Create(context.Background(), "author-1", "标题", "内容", "")
	require.NoError(t, err)

	_, err = svc.Review(context.Background(), created.ID, domain.PostStatusApproved, "", moderator("mod-1"))
	require.NoError(t, err)

	first, err := svc.Get(context.Background(), created.ID, nil)
	require.NoError(t, err)
	second, err := svc.Get(context.Background(), created.ID, nil)
	require.NoError(t, err)

	assert.Equal(t, first.ViewCount+1, second.ViewCount)
}

func TestPostReview_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		wantErr error
	}{
		{name: "approve", status: domain.PostStatusApproved},
		{name: "reject", status: domain.PostStatusRejected},
		{name: "back to pending refused", status: domain.PostStatusPending, wantErr: domain.ErrInvalidTransition},
		{name: "garbage status refused", status: "SHADOWBANNED", wantErr: domain.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newPostFixture()
			created, err := svc.Create(context.Background(), "author-1", "标题", "内容", "")
			require.NoError(t, err)

			post, err := svc.Review(context.Background(), created.ID, tt.status, "看过了", moderator("mod-1"))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.status, post.Status)
		})
	}
}

func TestPostReview_RejectedStaysHidden(t *testing.T) {
	svc, _ := newPostFixture()
	created, err := svc.Create(context.Background(), "author-1", "标题", "内容", "")
	require.NoError(t, err)

	_, err = svc.Review(context.Background(), created.ID, domain.PostStatusRejected, "不符合规范", moderator("mod-1"))
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), created.ID, member("other"))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// The author still sees their rejected post.
	post, err := svc.Get(context.Background(), created.ID, member("author-1"))
	require.NoError(t, err)
	assert.Equal(t, domain.PostStatusRejected, post.Status)
}

func TestPostUpdate_OwnerOrAdmin(t *testing.T) {
	tests := []struct {
		name    string
		actor   *domain.Identity
		wantErr error
	}{
		{name: "author edits own", actor: member("author-1")},
		{name: "admin edits any", actor: admin("adm-1")},
		{name: "other member refused", actor: member("other"), wantErr: domain.ErrNotOwner},
		{name: "moderator cannot edit content", actor: moderator("mod-1"), wantErr: domain.ErrNotOwner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newPostFixture()
			created, err := svc.Create(context.Background(), "author-1", "标题", "内容", "")
			require.NoError(t, err)

			post, err := svc.Update(context.Background(), created.ID, tt.actor, "新标题", "", "")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "新标题", post.Title)
			assert.Equal(t, "内容", post.Content)
		})
	}
}

func TestPostDelete_OwnerOrAdmin(t *testing.T) {
	svc, store := newPostFixture()
	created, err := svc.Create(context.Background(), "author-1", "标题", "内容", "")
	require.NoError(t, err)

	err = svc.Delete(context.Background(), created.ID, member("other"))
	assert.ErrorIs(t, err, domain.ErrNotOwner)
	assert.Len(t, store.posts, 1)

	require.NoError(t, svc.Delete(context.Background(), created.ID, member("author-1")))
	assert.Empty(t, store.posts)
}
