package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/you/communitysvc/domain"
	"github.com/you/communitysvc/internal/http/response"
)

// DashboardHandler serves the admin console counters.
type DashboardHandler struct {
	userRepo   domain.UserRepository
	postRepo   domain.PostRepository
	courseRepo domain.CourseRepository
	toolRepo   domain.ToolRepository
}

func NewDashboardHandler(
	userRepo domain.UserRepository,
	postRepo domain.PostRepository,
	courseRepo domain.CourseRepository,
	toolRepo domain.ToolRepository,
) *DashboardHandler {
	return &DashboardHandler{
		userRepo:   userRepo,
		postRepo:   postRepo,
		courseRepo: courseRepo,
		toolRepo:   toolRepo,
	}
}

// Stats handles GET /dashboard/stats.
func (h *DashboardHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()
	stats := &domain.DashboardStats{}

	var err error
	if stats.TotalUsers, err = h.userRepo.CountByStatus(ctx, ""); err != nil {
		response.FailFromError(c, err)
		return
	}
	if stats.ActiveUsers, err = h.userRepo.CountByStatus(ctx, domain.UserStatusActive); err != nil {
		response.FailFromError(c, err)
		return
	}
	if stats.TotalPosts, err = h.postRepo.CountByStatus(ctx, ""); err != nil {
		response.FailFromError(c, err)
		return
	}
	if stats.PendingPosts, err = h.postRepo.CountByStatus(ctx, domain.PostStatusPending); err != nil {
		response.FailFromError(c, err)
		return
	}
	if stats.TotalCourses, err = h.courseRepo.CountPublished(ctx); err != nil {
		response.FailFromError(c, err)
		return
	}
	if stats.TotalTools, err = h.toolRepo.CountPublished(ctx); err != nil {
		response.FailFromError(c, err)
		return
	}

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if stats.TodayNewUsers, err = h.userRepo.CountCreatedSince(ctx, midnight); err != nil {
		response.FailFromError(c, err)
		return
	}

	response.OK(c, stats)
}
