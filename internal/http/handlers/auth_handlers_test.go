package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/communitysvc/domain"
	"github.com/you/communitysvc/internal/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func authRouter(authSvc domain.AuthService) *gin.Engine {
	r := gin.New()
	h := NewAuthHandler(authSvc)
	r.POST("/auth/send-code", h.SendCode)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/admin-login", h.AdminLogin)
	r.POST("/auth/refresh", h.Refresh)
	r.POST("/auth/logout", h.Logout)
	return r
}

func postJSON(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var e envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	return e
}

func TestSendCode(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	var sentTo string
	authSvc.SendCodeFunc = func(ctx context.Context, phone string) error {
		sentTo = phone
		return nil
	}
	r := authRouter(authSvc)

	w := postJSON(r, "/auth/send-code", gin.H{"phone": "13800138000"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "13800138000", sentTo)

	// Malformed phone never reaches the service.
	sentTo = ""
	w = postJSON(r, "/auth/send-code", gin.H{"phone": "123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, sentTo)
}

func TestLogin(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	authSvc.LoginFunc = func(ctx context.Context, phone, code string) (*domain.TokenPair, error) {
		if code == "123456" {
			return &domain.TokenPair{AccessToken: "at", RefreshToken: "rt", ExpiresIn: 900}, nil
		}
		return nil, domain.ErrInvalidCode
	}
	r := authRouter(authSvc)

	w := postJSON(r, "/auth/login", gin.H{"phone": "13800138000", "code": "123456"})
	require.Equal(t, http.StatusOK, w.Code)
	e := decode(t, w)
	assert.Contains(t, string(e.Data), "at")

	w = postJSON(r, "/auth/login", gin.H{"phone": "13800138000", "code": "999999"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	e = decode(t, w)
	assert.Equal(t, "验证码错误或已过期", e.Message)
}

func TestAdminLogin_ThreeFailuresIdentical(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	// Default AdminLogin mock: always ErrInvalidCredentials.
	r := authRouter(authSvc)

	var bodies []string
	for i := 0; i < 3; i++ {
		w := postJSON(r, "/auth/admin-login", gin.H{"username": "admin", "password": "wrong"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		bodies = append(bodies, w.Body.String())
	}

	// No lockout, no counter, no variation: three byte-identical answers.
	assert.Equal(t, bodies[0], bodies[1])
	assert.Equal(t, bodies[1], bodies[2])
	var env envelope
	require.NoError(t, json.Unmarshal([]byte(bodies[0]), &env))
	assert.Equal(t, "用户名或密码错误", env.Message)
}

func TestAdminLogin_BannedAccount(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	authSvc.AdminLoginFunc = func(ctx context.Context, username, password string) (*domain.TokenPair, error) {
		return nil, domain.ErrUserBanned
	}
	r := authRouter(authSvc)

	w := postJSON(r, "/auth/admin-login", gin.H{"username": "admin", "password": "right"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRefresh(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	authSvc.RefreshFunc = func(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
		if refreshToken == "live" {
			return &domain.TokenPair{AccessToken: "at2", RefreshToken: "rt2", ExpiresIn: 900}, nil
		}
		return nil, domain.ErrTokenInvalid
	}
	r := authRouter(authSvc)

	w := postJSON(r, "/auth/refresh", gin.H{"refreshToken": "live"})
	assert.Equal(t, http.StatusOK, w.Code)

	// Rotated-away and unknown tokens answer the same generic 401.
	w = postJSON(r, "/auth/refresh", gin.H{"refreshToken": "rotated-away"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(r, "/auth/refresh", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogout_Always200(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	r := authRouter(authSvc)

	w := postJSON(r, "/auth/logout", gin.H{"refreshToken": "anything"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = postJSON(r, "/auth/logout", gin.H{"refreshToken": "anything"})
	assert.Equal(t, http.StatusOK, w.Code)
}
