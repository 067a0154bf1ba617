package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/communitysvc/domain"
	"github.com/you/communitysvc/internal/http/response"
)

// RequireRoles allows the request through only when the authenticated
// identity holds at least one of the given roles. Must run after
// AuthMiddleware.Handle.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok {
			response.Fail(c, http.StatusUnauthorized, "登录已失效，请重新登录")
			c.Abort()
			return
		}
		if !identity.HasAnyRole(roles...) {
			response.Fail(c, http.StatusForbidden, "没有操作权限")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequirePermission consults the policy engine instead of a fixed role
// list, so grants edited at runtime take effect without redeploys.
func RequirePermission(policySvc domain.PolicyService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok {
			response.Fail(c, http.StatusUnauthorized, "登录已失效，请重新登录")
			c.Abort()
			return
		}
		allowed, err := policySvc.CheckPermission(identity.Roles, resource, action)
		if err != nil {
			response.FailFromError(c, err)
			c.Abort()
			return
		}
		if !allowed {
			response.Fail(c, http.StatusForbidden, "没有操作权限")
			c.Abort()
			return
		}
		c.Next()
	}
}
