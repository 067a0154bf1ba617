package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/communitysvc/domain"
	"github.com/you/communitysvc/internal/http/middleware"
	"github.com/you/communitysvc/internal/http/response"
	"github.com/you/communitysvc/internal/services"
)

// PostHandler serves the forum endpoints.
type PostHandler struct {
	postSvc *services.PostServiceImpl
}

func NewPostHandler(postSvc *services.PostServiceImpl) *PostHandler {
	return &PostHandler{postSvc: postSvc}
}

type createPostRequest struct {
	Title      string `json:"title" binding:"required,min=1,max=200"`
	Content    string `json:"content" binding:"required,min=1"`
	CategoryID string `json:"categoryId"`
}

type updatePostRequest struct {
	Title      string `json:"title" binding:"required,min=1,max=200"`
	Content    string `json:"content" binding:"required,min=1"`
	CategoryID string `json:"categoryId"`
}

type reviewPostRequest struct {
	Status string `json:"status" binding:"required,oneof=APPROVED REJECTED"`
	Reason string `json:"reason" binding:"omitempty,max=500"`
}

// List handles GET /posts. Only approved posts are visible here.
func (h *PostHandler) List(c *gin.Context) {
	page, pageSize := pagination(c)
	result, err := h.postSvc.ListPublic(c.Request.Context(), page, pageSize, c.Query("categoryId"))
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	response.OK(c, pageOf(result, toPostView))
}

// ListAdmin handles GET /admin/posts with an optional status filter.
func (h *PostHandler) ListAdmin(c *gin.Context) {
	page, pageSize := pagination(c)
	result, err := h.postSvc.ListAdmin(c.Request.Context(), page, pageSize, c.Query("status"))
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	response.OK(c, pageOf(result, toPostView))
}

// ListMine handles GET /posts/mine, returning the caller's posts in every
// moderation state.
func (h *PostHandler) ListMine(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "登录已失效，请重新登录")
		return
	}
	page, pageSize := pagination(c)
	result, err := h.postSvc.ListMine(c.Request.Context(), identity.UserID, page, pageSize)
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	response.OK(c, pageOf(result, toPostView))
}

// Get handles GET /posts/:id. Pending and rejected posts surface as 404
// for anyone but their author and moderators.
func (h *PostHandler) Get(c *gin.Context) {
	var viewer *domain.Identity
	if identity, ok := middleware.IdentityFrom(c); ok {
		viewer = identity
	}
	post, err := h.postSvc.Get(c.Request.Context(), c.Param("id"), viewer)
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	response.OK(c, toPostView(post))
}

// Create handles POST /posts. New posts always start pending review.
func (h *PostHandler) Create(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "登录已失效，请重新登录")
		return
	}
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "标题和内容不能为空")
		return
	}
	post, err := h.postSvc.Create(c.Request.Context(), identity.UserID, req.Title, req.Content, req.CategoryID)
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	response.Created(c, toPostView(post))
}

// Update handles PUT /posts/:id (owner or admin).
func (h *PostHandler) Update(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "登录已失效，请重新登录")
		return
	}
	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "标题和内容不能为空")
		return
	}
	post, err := h.postSvc.Update(c.Request.Context(), c.Param("id"), identity, req.Title, req.Content, req.CategoryID)
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	response.OK(c, toPostView(post))
}

// Delete handles DELETE /posts/:id (owner or admin).
func (h *PostHandler) Delete(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "登录已失效，请重新登录")
		return
	}
	if err := h.postSvc.Delete(c.Request.Context(), c.Param("id"), identity); err != nil {
		response.FailFromError(c, err)
		return
	}
	response.OK(c, nil)
}

// Review handles PATCH /admin/posts/:id/review, moving a pending post to
// approved or rejected.
func (h *PostHandler) Review(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "登录已失效，请重新登录")
		return
	}
	var req reviewPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "非法的状态变更")
		return
	}
	post, err := h.postSvc.Review(c.Request.Context(), c.Param("id"), req.Status, req.Reason, identity)
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	response.OK(c, toPostView(post))
}
