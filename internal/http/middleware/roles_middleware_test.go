package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/you/communitysvc/domain"
	"github.com/you/communitysvc/internal/mocks"
)

func rolesRouter(identity *domain.Identity, required ...string) *gin.Engine {
	r := gin.New()
	r.GET("/guarded", func(c *gin.Context) {
		if identity != nil {
			c.Set(IdentityKey, identity)
		}
		c.Next()
	}, RequireRoles(required...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestRequireRoles(t *testing.T) {
	tests := []struct {
		name     string
		identity *domain.Identity
		required []string
		wantCode int
	}{
		{
			name:     "no identity",
			identity: nil,
			required: []string{domain.RoleAdmin},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "role held",
			identity: &domain.Identity{UserID: "u1", Roles: []string{domain.RoleAdmin}},
			required: []string{domain.RoleAdmin},
			wantCode: http.StatusOK,
		},
		{
			name:     "one of several held",
			identity: &domain.Identity{UserID: "u1", Roles: []string{domain.RoleModerator}},
			required: []string{domain.RoleSuperAdmin, domain.RoleAdmin, domain.RoleModerator},
			wantCode: http.StatusOK,
		},
		{
			name:     "empty intersection",
			identity: &domain.Identity{UserID: "u1", Roles: []string{domain.RoleMember}},
			required: []string{domain.RoleSuperAdmin, domain.RoleAdmin},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "no roles at all",
			identity: &domain.Identity{UserID: "u1"},
			required: []string{domain.RoleMember},
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := rolesRouter(tt.identity, tt.required...)
			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestRequirePermission(t *testing.T) {
	policySvc := mocks.NewMockPolicyService()
	policySvc.CheckPermissionFunc = func(roles []string, resource, action string) (bool, error) {
		for _, role := range roles {
			if role == domain.RoleAdmin && resource == "dashboard" && action == "read" {
				return true, nil
			}
		}
		return false, nil
	}

	newRouter := func(identity *domain.Identity) *gin.Engine {
		r := gin.New()
		r.GET("/stats", func(c *gin.Context) {
			if identity != nil {
				c.Set(IdentityKey, identity)
			}
			c.Next()
		}, RequirePermission(policySvc, "dashboard", "read"), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})
		return r
	}

	tests := []struct {
		name     string
		identity *domain.Identity
		wantCode int
	}{
		{name: "no identity", identity: nil, wantCode: http.StatusUnauthorized},
		{
			name:     "granted role",
			identity: &domain.Identity{UserID: "u1", Roles: []string{domain.RoleAdmin}},
			wantCode: http.StatusOK,
		},
		{
			name:     "role without grant",
			identity: &domain.Identity{UserID: "u2", Roles: []string{domain.RoleMember}},
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(tt.identity)
			req := httptest.NewRequest(http.MethodGet, "/stats", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}
