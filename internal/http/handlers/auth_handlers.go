package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/you/communitysvc/domain"
	"github.com/you/communitysvc/internal/http/response"
)

// AuthHandler serves the authentication endpoints.
type AuthHandler struct {
	authSvc domain.AuthService
}

func NewAuthHandler(authSvc domain.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

type sendCodeRequest struct {
	Phone string `json:"phone" binding:"required,len=11"`
}

type loginRequest struct {
	Phone string `json:"phone" binding:"required,len=11"`
	Code  string `json:"code" binding:"required,len=6"`
}

type adminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// SendCode handles POST /auth/send-code.
func (h *AuthHandler) SendCode(c *gin.Context) {
	var req sendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "手机号格式不正确")
		return
	}
	if err := h.authSvc.SendCode(c.Request.Context(), req.Phone); err != nil {
		response.FailFromError(c, err)
		return
	}
	response.OK(c, nil)
}

// Login handles POST /auth/login. A first successful login creates the
// account on the fly.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "手机号或验证码格式不正确")
		return
	}
	pair, err := h.authSvc.Login(c.Request.Context(), req.Phone, req.Code)
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	response.OK(c, pair)
}

// AdminLogin handles POST /auth/admin-login.
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "用户名和密码不能为空")
		return
	}
	pair, err := h.authSvc.AdminLogin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	response.OK(c, pair)
}

// Refresh handles POST /auth/refresh. The presented token is rotated away
// whether or not issuance succeeds.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "refreshToken 不能为空")
		return
	}
	pair, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	response.OK(c, pair)
}

// Logout handles POST /auth/logout. Revocation is idempotent, so the
// endpoint always answers 200 for authenticated callers.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "refreshToken 不能为空")
		return
	}
	if err := h.authSvc.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		response.FailFromError(c, err)
		return
	}
	response.OK(c, nil)
}
