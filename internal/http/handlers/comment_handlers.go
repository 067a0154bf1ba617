package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/communitysvc/domain"
	"github.com/you/communitysvc/internal/http/middleware"
	"github.com/you/communitysvc/internal/http/response"
)

// CommentHandler serves replies under posts.
type CommentHandler struct {
	commentRepo domain.CommentRepository
	postRepo    domain.PostRepository
}

func NewCommentHandler(commentRepo domain.CommentRepository, postRepo domain.PostRepository) *CommentHandler {
	return &CommentHandler{commentRepo: commentRepo, postRepo: postRepo}
}

type createCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=1000"`
}

// ListByPost handles GET /posts/:id/comments.
func (h *CommentHandler) ListByPost(c *gin.Context) {
	page, pageSize := pagination(c)
	result, err := h.commentRepo.ListByPost(c.Request.Context(), c.Param("id"), page, pageSize)
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	response.OK(c, pageOf(result, toCommentView))
}

// Create handles POST /posts/:id/comments. Comments attach only to posts
// the caller can see, so hidden posts reject with 404.
func (h *CommentHandler) Create(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "登录已失效，请重新登录")
		return
	}
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "评论内容不能为空")
		return
	}
	post, err := h.postRepo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	if post.Status != domain.PostStatusApproved && post.AuthorID != identity.UserID && !identity.IsAdmin() {
		response.FailFromError(c, domain.ErrNotFound)
		return
	}
	comment := &domain.Comment{
		PostID:   post.ID,
		AuthorID: identity.UserID,
		Content:  req.Content,
	}
	if err := h.commentRepo.Create(c.Request.Context(), comment); err != nil {
		response.FailFromError(c, err)
		return
	}
	response.Created(c, toCommentView(comment))
}

// Delete handles DELETE /comments/:id (owner or admin).
func (h *CommentHandler) Delete(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "登录已失效，请重新登录")
		return
	}
	comment, err := h.commentRepo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	if comment.AuthorID != identity.UserID && !identity.IsAdmin() {
		response.FailFromError(c, domain.ErrNotOwner)
		return
	}
	if err := h.commentRepo.Delete(c.Request.Context(), comment.ID); err != nil {
		response.FailFromError(c, err)
		return
	}
	response.OK(c, nil)
}
