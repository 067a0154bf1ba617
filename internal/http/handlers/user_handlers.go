package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/communitysvc/domain"
	"github.com/you/communitysvc/internal/http/middleware"
	"github.com/you/communitysvc/internal/http/response"
)

// UserHandler serves profile and user-administration endpoints.
type UserHandler struct {
	userRepo  domain.UserRepository
	policySvc domain.PolicyService
}

func NewUserHandler(userRepo domain.UserRepository, policySvc domain.PolicyService) *UserHandler {
	return &UserHandler{userRepo: userRepo, policySvc: policySvc}
}

type updateProfileRequest struct {
	Nickname *string `json:"nickname" binding:"omitempty,min=1,max=30"`
	Avatar   *string `json:"avatar" binding:"omitempty,max=500"`
	Bio      *string `json:"bio" binding:"omitempty,max=500"`
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=ACTIVE BANNED"`
}

type updateRolesRequest struct {
	Roles []string `json:"roles" binding:"required"`
}

// Me handles GET /users/me. The payload includes the effective permission
// pairs across all of the caller's roles so the client can shape its UI.
func (h *UserHandler) Me(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "登录已失效，请重新登录")
		return
	}
	user, err := h.userRepo.FindByID(c.Request.Context(), identity.UserID)
	if err != nil {
		response.FailFromError(c, err)
		return
	}

	perms := make([]string, 0)
	seen := map[string]struct{}{}
	for _, role := range user.Roles {
		for _, pair := range h.policySvc.RolePermissions(role) {
			if len(pair) != 2 {
				continue
			}
			key := pair[0] + ":" + pair[1]
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			perms = append(perms, key)
		}
	}

	response.OK(c, gin.H{
		"user":        toUserView(user),
		"permissions": perms,
	})
}

// UpdateMe handles PATCH /users/me.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "登录已失效，请重新登录")
		return
	}
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "资料格式不正确")
		return
	}
	user, err := h.userRepo.FindByID(c.Request.Context(), identity.UserID)
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	if req.Nickname != nil {
		user.Nickname = *req.Nickname
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if err := h.userRepo.Update(c.Request.Context(), user); err != nil {
		response.FailFromError(c, err)
		return
	}
	response.OK(c, toUserView(user))
}

// List handles GET /users (admin).
func (h *UserHandler) List(c *gin.Context) {
	page, pageSize := pagination(c)
	keyword := c.Query("keyword")
	result, err := h.userRepo.List(c.Request.Context(), page, pageSize, keyword)
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	response.OK(c, pageOf(result, toUserView))
}

// UpdateStatus handles PATCH /users/:id/status (admin). Banning takes
// effect on the user's very next request, not at token expiry.
func (h *UserHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "状态值不正确")
		return
	}
	id := c.Param("id")
	if _, err := h.userRepo.FindByID(c.Request.Context(), id); err != nil {
		response.FailFromError(c, err)
		return
	}
	if err := h.userRepo.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		response.FailFromError(c, err)
		return
	}
	response.OK(c, nil)
}

// UpdateRoles handles PATCH /users/:id/roles (super_admin). The role set
// is replaced wholesale inside one transaction.
func (h *UserHandler) UpdateRoles(c *gin.Context) {
	var req updateRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "角色列表不能为空")
		return
	}
	id := c.Param("id")
	if _, err := h.userRepo.FindByID(c.Request.Context(), id); err != nil {
		response.FailFromError(c, err)
		return
	}
	if err := h.userRepo.ReplaceRoles(c.Request.Context(), id, req.Roles); err != nil {
		response.FailFromError(c, err)
		return
	}
	response.OK(c, nil)
}
