package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/communitysvc/domain"
	"github.com/you/communitysvc/internal/mocks"
)

// memoryRefreshStore backs the refresh token mock with delete-and-report
// semantics matching the real repository.
type memoryRefreshStore struct {
	mu     sync.Mutex
	tokens map[string]*domain.RefreshToken
}

func newMemoryRefreshStore() *memoryRefreshStore {
	return &memoryRefreshStore{tokens: make(map[string]*domain.RefreshToken)}
}

func (s *memoryRefreshStore) bind(m *mocks.MockRefreshTokenRepository) {
	m.CreateFunc = func(ctx context.Context, token *domain.RefreshToken) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.tokens[token.Token] = token
		return nil
	}
	m.ConsumeFunc = func(ctx context.Context, token string) (*domain.RefreshToken, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		stored, ok := s.tokens[token]
		if !ok {
			return nil, domain.ErrTokenInvalid
		}
		delete(s.tokens, token)
		if stored.Expired(time.Now()) {
			return nil, domain.ErrTokenExpired
		}
		return stored, nil
	}
	m.DeleteFunc = func(ctx context.Context, token string) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.tokens, token)
		return nil
	}
}

type authFixture struct {
	userRepo    *mocks.MockUserRepository
	refreshRepo *mocks.MockRefreshTokenRepository
	refreshDB   *memoryRefreshStore
	passwordSvc *mocks.MockPasswordService
	tokenSvc    *mocks.MockTokenService
	codeSvc     *mocks.MockCodeService
	svc         domain.AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		userRepo:    mocks.NewMockUserRepository(),
		refreshRepo: mocks.NewMockRefreshTokenRepository(),
		refreshDB:   newMemoryRefreshStore(),
		passwordSvc: mocks.NewMockPasswordService(),
		tokenSvc:    mocks.NewMockTokenService(),
		codeSvc:     mocks.NewMockCodeService(),
	}
	f.refreshDB.bind(f.refreshRepo)

	// Distinct refresh token per mint so rotation is observable.
	seq := 0
	f.tokenSvc.GenerateRefreshTokenFunc = func(userID string) (string, error) {
		seq++
		return "refresh-" + userID + "-" + string(rune('a'+seq)), nil
	}

	f.svc = NewAuthService(f.userRepo, f.refreshRepo, f.passwordSvc, f.tokenSvc, f.codeSvc)
	return f
}

func activeUser(id, phone string) *domain.User {
	return &domain.User{
		ID:       id,
		Phone:    phone,
		Nickname: "用户" + phone[len(phone)-4:],
		Status:   domain.UserStatusActive,
		Roles:    []string{domain.RoleMember},
	}
}

func TestLogin_WrongCode(t *testing.T) {
	f := newAuthFixture()
	// Default mock behavior: every code verification fails.

	pair, err := f.svc.Login(context.Background(), "13800138000", "999999")
	assert.ErrorIs(t, err, domain.ErrInvalidCode)
	assert.Nil(t, pair)
}

func TestLogin_AutoRegistersFirstTimer(t *testing.T) {
	f := newAuthFixture()
	f.codeSvc.VerifyAndConsumeFunc = func(ctx context.Context, phone, code string) (bool, error) {
		return code == "123456", nil
	}

	var created *domain.User
	f.userRepo.CreateFunc = func(ctx context.Context, user *domain.User) error {
		user.ID = "new-user-1"
		created = user
		return nil
	}
	var assignedRole string
	f.userRepo.AssignRoleFunc = func(ctx context.Context, userID, roleName string) error {
		assignedRole = roleName
		return nil
	}

	pair, err := f.svc.Login(context.Background(), "13800138000", "123456")
	require.NoError(t, err)
	require.NotNil(t, pair)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	require.NotNil(t, created)
	assert.Equal(t, "13800138000", created.Phone)
	assert.Equal(t, "用户8000", created.Nickname)
	assert.Equal(t, domain.UserStatusActive, created.Status)
	assert.Equal(t, domain.RoleMember, assignedRole)
}

func TestLogin_ExistingUser(t *testing.T) {
	f := newAuthFixture()
	f.codeSvc.VerifyAndConsumeFunc = func(ctx context.Context, phone, code string) (bool, error) {
		return true, nil
	}
	f.userRepo.FindByPhoneFunc = func(ctx context.Context, phone string) (*domain.User, error) {
		return activeUser("u1", phone), nil
	}
	createCalled := false
	f.userRepo.CreateFunc = func(ctx context.Context, user *domain.User) error {
		createCalled = true
		return nil
	}

	pair, err := f.svc.Login(context.Background(), "13800138000", "123456")
	require.NoError(t, err)
	require.NotNil(t, pair)
	assert.False(t, createCalled, "existing user must not be re-created")
}

func TestLogin_BannedUser(t *testing.T) {
	f := newAuthFixture()
	f.codeSvc.VerifyAndConsumeFunc = func(ctx context.Context, phone, code string) (bool, error) {
		return true, nil
	}
	f.userRepo.FindByPhoneFunc = func(ctx context.Context, phone string) (*domain.User, error) {
		u := activeUser("u1", phone)
		u.Status = domain.UserStatusBanned
		return u, nil
	}

	pair, err := f.svc.Login(context.Background(), "13800138000", "123456")
	assert.ErrorIs(t, err, domain.ErrUserBanned)
	assert.Nil(t, pair)
}

func TestAdminLogin_GenericFailures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *authFixture)
	}{
		{
			name:  "unknown username",
			setup: func(f *authFixture) {},
		},
		{
			name: "phone-only account has no password",
			setup: func(f *authFixture) {
				f.userRepo.FindByUsernameFunc = func(ctx context.Context, username string) (*domain.User, error) {
					return activeUser("u1", "13800138000"), nil
				}
			},
		},
		{
			name: "wrong password",
			setup: func(f *authFixture) {
				f.userRepo.FindByUsernameFunc = func(ctx context.Context, username string) (*domain.User, error) {
					u := activeUser("u1", "13800138000")
					u.Username = username
					u.PasswordHash = "hashed:right-password"
					return u, nil
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture()
			tt.setup(f)

			pair, err := f.svc.AdminLogin(context.Background(), "admin", "wrong-password")
			// Every failure mode collapses to the same error so the API
			// cannot be used to enumerate accounts.
			assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
			assert.Nil(t, pair)
		})
	}
}

func TestAdminLogin_RepeatedFailuresStayIdentical(t *testing.T) {
	f := newAuthFixture()
	f.userRepo.FindByUsernameFunc = func(ctx context.Context, username string) (*domain.User, error) {
		u := activeUser("u1", "13800138000")
		u.Username = username
		u.PasswordHash = "hashed:right-password"
		return u, nil
	}

	var errs []error
	for i := 0; i < 3; i++ {
		_, err := f.svc.AdminLogin(context.Background(), "admin", "wrong-password")
		errs = append(errs, err)
	}

	// No lockout and no escalation: three independent, identical failures.
	for _, err := range errs {
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.Equal(t, errs[0].Error(), err.Error())
	}
}

func TestAdminLogin_Success(t *testing.T) {
	f := newAuthFixture()
	f.userRepo.FindByUsernameFunc = func(ctx context.Context, username string) (*domain.User, error) {
		u := activeUser("u1", "13800138000")
		u.Username = username
		u.PasswordHash = "hashed:right-password"
		u.Roles = []string{domain.RoleSuperAdmin}
		return u, nil
	}

	pair, err := f.svc.AdminLogin(context.Background(), "admin", "right-password")
	require.NoError(t, err)
	require.NotNil(t, pair)
	assert.NotEmpty(t, pair.AccessToken)
	assert.Equal(t, int64(f.tokenSvc.AccessTTLValue.Seconds()), pair.ExpiresIn)
}

func TestRefresh_RotatesExactlyOnce(t *testing.T) {
	f := newAuthFixture()
	f.codeSvc.VerifyAndConsumeFunc = func(ctx context.Context, phone, code string) (bool, error) {
		return true, nil
	}
	f.userRepo.FindByPhoneFunc = func(ctx context.Context, phone string) (*domain.User, error) {
		return activeUser("u1", phone), nil
	}

	pair, err := f.svc.Login(context.Background(), "13800138000", "123456")
	require.NoError(t, err)

	rotated, err := f.svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	require.NotNil(t, rotated)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	// The rotated-away token is dead.
	_, err = f.svc.Refresh(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	// The replacement still works.
	_, err = f.svc.Refresh(context.Background(), rotated.RefreshToken)
	assert.NoError(t, err)
}

func TestRefresh_ExpiredPersistedToken(t *testing.T) {
	f := newAuthFixture()
	f.refreshDB.tokens["stale"] = &domain.RefreshToken{
		Token:     "stale",
		UserID:    "u1",
		ExpiresAt: time.Now().Add(-time.Hour),
	}

	// The stored expiry is authoritative even if the signed token would
	// still verify.
	_, err := f.svc.Refresh(context.Background(), "stale")
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestRefresh_UnknownToken(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.Refresh(context.Background(), "never-issued")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestLogout_Idempotent(t *testing.T) {
	f := newAuthFixture()
	f.refreshDB.tokens["live"] = &domain.RefreshToken{
		Token:     "live",
		UserID:    "u1",
		ExpiresAt: time.Now().Add(time.Hour),
	}

	require.NoError(t, f.svc.Logout(context.Background(), "live"))
	// Revoking again, or revoking a token that never existed, still works.
	require.NoError(t, f.svc.Logout(context.Background(), "live"))
	require.NoError(t, f.svc.Logout(context.Background(), "never-issued"))

	_, err := f.svc.Refresh(context.Background(), "live")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestResolveIdentity(t *testing.T) {
	f := newAuthFixture()
	f.tokenSvc.ValidateAccessTokenFunc = func(token string) (*domain.TokenClaims, error) {
		if token == "good" {
			return &domain.TokenClaims{UserID: "u1"}, nil
		}
		return nil, domain.ErrTokenInvalid
	}
	f.userRepo.FindByIDFunc = func(ctx context.Context, id string) (*domain.User, error) {
		u := activeUser("u1", "13800138000")
		u.Roles = []string{domain.RoleMember, domain.RoleModerator}
		return u, nil
	}

	identity, err := f.svc.ResolveIdentity(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, "u1", identity.UserID)
	assert.Equal(t, []string{domain.RoleMember, domain.RoleModerator}, identity.Roles)

	_, err = f.svc.ResolveIdentity(context.Background(), "bad")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestResolveIdentity_BannedUser(t *testing.T) {
	f := newAuthFixture()
	f.tokenSvc.ValidateAccessTokenFunc = func(token string) (*domain.TokenClaims, error) {
		return &domain.TokenClaims{UserID: "u1"}, nil
	}
	f.userRepo.FindByIDFunc = func(ctx context.Context, id string) (*domain.User, error) {
		u := activeUser("u1", "13800138000")
		u.Status = domain.UserStatusBanned
		return u, nil
	}

	// A cryptographically valid token is not enough once the account is
	// banned.
	_, err := f.svc.ResolveIdentity(context.Background(), "still-signed")
	assert.ErrorIs(t, err, domain.ErrUserBanned)
}

func TestResolveIdentity_DeletedUser(t *testing.T) {
	f := newAuthFixture()
	f.tokenSvc.ValidateAccessTokenFunc = func(token string) (*domain.TokenClaims, error) {
		return &domain.TokenClaims{UserID: "ghost"}, nil
	}

	_, err := f.svc.ResolveIdentity(context.Background(), "orphan-token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}
