package services

import (
	"context"

	"github.com/you/communitysvc/domain"
)

// PostServiceImpl implements the moderation workflow around forum posts.
// Every post starts PENDING; only moderation-capable roles move it to
// APPROVED or REJECTED, and only APPROVED posts are publicly visible.
type PostServiceImpl struct {
	postRepo domain.PostRepository
}

// NewPostService creates a new post service
func NewPostService(postRepo domain.PostRepository) *PostServiceImpl {
	return &PostServiceImpl{postRepo: postRepo}
}

// ListPublic returns APPROVED posts only.
func (s *PostServiceImpl) ListPublic(ctx context.Context, page, pageSize int, categoryID string) (*domain.Page[*domain.Post], error) {
	return s.postRepo.List(ctx, domain.PostFilter{
		Status:     domain.PostStatusApproved,
		CategoryID: categoryID,
		Page:       page,
		PageSize:   pageSize,
	})
}

// ListAdmin returns posts of any status, optionally filtered.
func (s *PostServiceImpl) ListAdmin(ctx context.Context, page, pageSize int, status string) (*domain.Page[*domain.Post], error) {
	return s.postRepo.List(ctx, domain.PostFilter{
		Status:   status,
		Page:     page,
		PageSize: pageSize,
	})
}

// ListMine returns the caller's own posts regardless of status.
func (s *PostServiceImpl) ListMine(ctx context.Context, userID string, page, pageSize int) (*domain.Page[*domain.Post], error) {
	return s.postRepo.List(ctx, domain.PostFilter{
		AuthorID: userID,
		Page:     page,
		PageSize: pageSize,
	})
}

// Get returns one post and counts the view. Non-APPROVED posts exist only
// for their author and for moderation-capable readers; everyone else gets
// not-found rather than a hint that a hidden post exists.
func (s *PostServiceImpl) Get(ctx context.Context, id string, viewer *domain.Identity) (*domain.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if post.Status != domain.PostStatusApproved && !canSeeHidden(post, viewer) {
		return nil, domain.ErrNotFound
	}

	if err := s.postRepo.IncrementViewCount(ctx, id); err != nil {
		return nil, err
	}
	post.ViewCount++
	return post, nil
}

func canSeeHidden(post *domain.Post, viewer *domain.Identity) bool {
	if viewer == nil {
		return false
	}
	if viewer.UserID == post.AuthorID {
		return true
	}
	return viewer.HasAnyRole(domain.RoleSuperAdmin, domain.RoleAdmin, domain.RoleModerator)
}

// Create submits a new post into the workflow. Status is always PENDING,
// whatever the caller claims.
func (s *PostServiceImpl) Create(ctx context.Context, authorID, title, content, categoryID string) (*domain.Post, error) {
	post := &domain.Post{
		Title:      title,
		Content:    content,
		Status:     domain.PostStatusPending,
		AuthorID:   authorID,
		CategoryID: categoryID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	logAudit(domain.NewAuditEvent(domain.PostSubmittedEvent, authorID).WithMetadata("post_id", post.ID))
	return s.postRepo.FindByID(ctx, post.ID)
}

// Update edits a post. The author may edit their own post; admins may edit
// any. Either check passing suffices.
func (s *PostServiceImpl) Update(ctx context.Context, id string, actor *domain.Identity, title, content, categoryID string) (*domain.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actor.UserID && !actor.IsAdmin() {
		return nil, domain.ErrNotOwner
	}

	if title != "" {
		post.Title = title
	}
	if content != "" {
		post.Content = content
	}
	if categoryID != "" {
		post.CategoryID = categoryID
	}
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.FindByID(ctx, id)
}

// Delete removes a post under the same owner-or-admin rule as Update.
func (s *PostServiceImpl) Delete(ctx context.Context, id string, actor *domain.Identity) error {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if post.AuthorID != actor.UserID && !actor.IsAdmin() {
		return domain.ErrNotOwner
	}
	return s.postRepo.Delete(ctx, id)
}

// Review drives the moderation transition. The target state is caller
// supplied and must be APPROVED or REJECTED; the role check happened in the
// middleware before this runs.
func (s *PostServiceImpl) Review(ctx context.Context, id, status, reason string, reviewer *domain.Identity) (*domain.Post, error) {
	if status != domain.PostStatusApproved && status != domain.PostStatusRejected {
		return nil, domain.ErrInvalidTransition
	}

	if err := s.postRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	event := domain.NewAuditEvent(domain.PostReviewedEvent, reviewer.UserID).
		WithMetadata("post_id", id).
		WithMetadata("status", status)
	if reason != "" {
		event = event.WithMetadata("reason", reason)
	}
	logAudit(event)

	return s.postRepo.FindByID(ctx, id)
}
