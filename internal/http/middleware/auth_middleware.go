package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/you/communitysvc/domain"
	"github.com/you/communitysvc/internal/http/response"
)

// IdentityKey is the gin context key under which the authenticated
// caller's identity is stored for downstream handlers.
const IdentityKey = "identity"

// AuthMiddleware gates requests on a valid bearer access token. It resolves
// the token to a live identity so bans take effect immediately, not at
// token expiry.
type AuthMiddleware struct {
	authSvc domain.AuthService
}

func NewAuthMiddleware(authSvc domain.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

// Handle rejects the request with 401 unless a valid, non-banned identity
// can be resolved from the Authorization header.
func (m *AuthMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Fail(c, http.StatusUnauthorized, "登录已失效，请重新登录")
			c.Abort()
			return
		}

		identity, err := m.authSvc.ResolveIdentity(c.Request.Context(), token)
		if err != nil {
			response.FailFromError(c, err)
			c.Abort()
			return
		}

		c.Set(IdentityKey, identity)
		c.Next()
	}
}

// Optional resolves an identity when a token is present but lets anonymous
// requests through. Used on public reads that personalize for members.
func (m *AuthMiddleware) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if identity, err := m.authSvc.ResolveIdentity(c.Request.Context(), token); err == nil {
				c.Set(IdentityKey, identity)
			}
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// IdentityFrom extracts the authenticated identity set by Handle.
func IdentityFrom(c *gin.Context) (*domain.Identity, bool) {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return nil, false
	}
	identity, ok := v.(*domain.Identity)
	return identity, ok
}
