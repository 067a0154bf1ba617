package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/communitysvc/domain"
	"github.com/you/communitysvc/internal/http/middleware"
	"github.com/you/communitysvc/internal/mocks"
	"github.com/you/communitysvc/internal/services"
)

func postRouter(repo *mocks.MockPostRepository, identity *domain.Identity) *gin.Engine {
	r := gin.New()
	if identity != nil {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.IdentityKey, identity)
		})
	}
	h := NewPostHandler(services.NewPostService(repo))
	r.GET("/posts/:id", h.Get)
	r.GET("/posts", h.List)
	return r
}

func pendingPost() *domain.Post {
	return &domain.Post{
		ID:       "p1",
		Title:    "标题",
		Content:  "内容",
		Status:   domain.PostStatusPending,
		AuthorID: "author-1",
	}
}

func TestPostGetEndpoint_HiddenIs404(t *testing.T) {
	repo := mocks.NewMockPostRepository()
	repo.FindByIDFunc = func(ctx context.Context, id string) (*domain.Post, error) {
		return pendingPost(), nil
	}

	tests := []struct {
		name     string
		identity *domain.Identity
		wantCode int
	}{
		{name: "anonymous", identity: nil, wantCode: http.StatusNotFound},
		{
			name:     "unrelated member",
			identity: &domain.Identity{UserID: "other", Roles: []string{domain.RoleMember}},
			wantCode: http.StatusNotFound,
		},
		{
			name:     "author",
			identity: &domain.Identity{UserID: "author-1", Roles: []string{domain.RoleMember}},
			wantCode: http.StatusOK,
		},
		{
			name:     "moderator",
			identity: &domain.Identity{UserID: "mod", Roles: []string{domain.RoleModerator}},
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := postRouter(repo, tt.identity)
			req := httptest.NewRequest(http.MethodGet, "/posts/p1", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestPostListEndpoint_OnlyApprovedRequested(t *testing.T) {
	repo := mocks.NewMockPostRepository()
	var gotFilter domain.PostFilter
	repo.ListFunc = func(ctx context.Context, f domain.PostFilter) (*domain.Page[*domain.Post], error) {
		gotFilter = f
		return &domain.Page[*domain.Post]{Data: []*domain.Post{}, Page: f.Page, PageSize: f.PageSize}, nil
	}

	r := postRouter(repo, nil)
	req := httptest.NewRequest(http.MethodGet, "/posts?page=2&pageSize=5&categoryId=cat-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.PostStatusApproved, gotFilter.Status)
	assert.Equal(t, "cat-1", gotFilter.CategoryID)
	assert.Equal(t, 2, gotFilter.Page)
	assert.Equal(t, 5, gotFilter.PageSize)
}
