package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/communitysvc/domain"
)

// Response is the envelope every endpoint returns. Code mirrors the HTTP
// status so API clients can branch without inspecting transport details.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: http.StatusOK, Message: "success", Data: data})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Code: http.StatusCreated, Message: "success", Data: data})
}

func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, Response{Code: status, Message: message})
}

func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, message)
}

// FailFromError maps domain sentinel errors onto the HTTP error taxonomy.
// Unknown errors become an opaque 500 so internals never leak to clients.
func FailFromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCode):
		Fail(c, http.StatusUnauthorized, "验证码错误或已过期")
	case errors.Is(err, domain.ErrInvalidCredentials):
		Fail(c, http.StatusUnauthorized, "用户名或密码错误")
	case errors.Is(err, domain.ErrUserBanned):
		Fail(c, http.StatusForbidden, "账号已被封禁")
	case errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenMalformed):
		Fail(c, http.StatusUnauthorized, "登录已失效，请重新登录")
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrNotOwner):
		Fail(c, http.StatusForbidden, "没有操作权限")
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrRoleNotFound):
		Fail(c, http.StatusNotFound, "资源不存在")
	case errors.Is(err, domain.ErrDuplicateName):
		Fail(c, http.StatusConflict, "名称已存在")
	case errors.Is(err, domain.ErrCategoryNotEmpty):
		Fail(c, http.StatusConflict, "分类下存在内容，无法删除")
	case errors.Is(err, domain.ErrInvalidTransition):
		Fail(c, http.StatusBadRequest, "非法的状态变更")
	default:
		Fail(c, http.StatusInternalServerError, "服务器内部错误")
	}
}
