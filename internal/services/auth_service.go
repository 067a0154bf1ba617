package services

import (
	"context"
	"fmt"
	"time"

	"github.com/you/communitysvc/domain"
)

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	refreshRepo domain.RefreshTokenRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	codeSvc     domain.CodeService
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	refreshRepo domain.RefreshTokenRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	codeSvc domain.CodeService,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		refreshRepo: refreshRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		codeSvc:     codeSvc,
	}
}

// SendCode implements domain.AuthService
func (s *AuthServiceImpl) SendCode(ctx context.Context, phone string) error {
	if err := s.codeSvc.Send(ctx, phone); err != nil {
		return err
	}
	logAudit(domain.NewAuditEvent(domain.CodeSentEvent, "").WithPhone(phone))
	return nil
}

// Login implements domain.AuthService. First-time callers get an account
// created on the spot with the member role.
func (s *AuthServiceImpl) Login(ctx context.Context, phone, code string) (*domain.TokenPair, error) {
	valid, err := s.codeSvc.VerifyAndConsume(ctx, phone, code)
	if err != nil {
		return nil, fmt.Errorf("code verification failed: %w", err)
	}
	if !valid {
		logAudit(domain.NewAuditEvent(domain.LoginFailureEvent, "").WithPhone(phone).WithError(domain.ErrInvalidCode))
		return nil, domain.ErrInvalidCode
	}

	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err == domain.ErrUserNotFound {
		user, err = s.registerByPhone(ctx, phone)
	}
	if err != nil {
		return nil, err
	}

	if user.IsBanned() {
		logAudit(domain.NewAuditEvent(domain.LoginFailureEvent, user.ID).WithError(domain.ErrUserBanned))
		return nil, domain.ErrUserBanned
	}

	pair, err := s.issue(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	logAudit(domain.NewAuditEvent(domain.UserLoginEvent, user.ID).WithPhone(phone))
	return pair, nil
}

// registerByPhone creates the implicit account behind a first phone login.
func (s *AuthServiceImpl) registerByPhone(ctx context.Context, phone string) (*domain.User, error) {
	nickname := "用户" + phone
	if len(phone) >= 4 {
		nickname = "用户" + phone[len(phone)-4:]
	}

	user := &domain.User{
		Phone:    phone,
		Nickname: nickname,
		Status:   domain.UserStatusActive,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Seeded deployments always have the member role; tolerate its absence
	// so a bare database still allows login.
	if err := s.userRepo.AssignRole(ctx, user.ID, domain.RoleMember); err != nil && err != domain.ErrRoleNotFound {
		return nil, fmt.Errorf("failed to assign member role: %w", err)
	}
	user.Roles = []string{domain.RoleMember}
	return user, nil
}

// AdminLogin implements domain.AuthService. The failure reason is never
// narrowed: unknown username, missing password hash and wrong password all
// come back as the same error.
func (s *AuthServiceImpl) AdminLogin(ctx context.Context, username, password string) (*domain.TokenPair, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil || user.PasswordHash == "" {
		logAudit(domain.NewAuditEvent(domain.LoginFailureEvent, "").WithMetadata("username", username).WithError(domain.ErrInvalidCredentials))
		return nil, domain.ErrInvalidCredentials
	}
	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		logAudit(domain.NewAuditEvent(domain.LoginFailureEvent, user.ID).WithError(domain.ErrInvalidCredentials))
		return nil, domain.ErrInvalidCredentials
	}
	if user.IsBanned() {
		logAudit(domain.NewAuditEvent(domain.LoginFailureEvent, user.ID).WithError(domain.ErrUserBanned))
		return nil, domain.ErrUserBanned
	}

	pair, err := s.issue(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	logAudit(domain.NewAuditEvent(domain.AdminLoginEvent, user.ID))
	return pair, nil
}

// Refresh implements domain.AuthService. The persisted record is consumed
// atomically, so a token value refreshes exactly once; when two calls race,
// the loser surfaces an invalid-token error rather than a second pair.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	stored, err := s.refreshRepo.Consume(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	pair, err := s.issue(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}
	logAudit(domain.NewAuditEvent(domain.TokenRefreshEvent, stored.UserID))
	return pair, nil
}

// Logout implements domain.AuthService. Idempotent: revoking an unknown
// token succeeds.
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if err := s.refreshRepo.Delete(ctx, refreshToken); err != nil {
		return err
	}
	logAudit(domain.NewAuditEvent(domain.UserLogoutEvent, ""))
	return nil
}

// ResolveIdentity implements domain.AuthService. Used by the session
// middleware on every authenticated request: a valid signature is not
// enough, the subject must still exist and not be banned.
func (s *AuthServiceImpl) ResolveIdentity(ctx context.Context, accessToken string) (*domain.Identity, error) {
	claims, err := s.tokenSvc.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}
	if user.IsBanned() {
		return nil, domain.ErrUserBanned
	}

	return &domain.Identity{
		UserID:   user.ID,
		Nickname: user.Nickname,
		Status:   user.Status,
		Roles:    user.Roles,
	}, nil
}

// issue mints a fresh token pair and persists the refresh half. The stored
// expiry is what logout and rotation act on; the signed claim only mirrors
// it.
func (s *AuthServiceImpl) issue(ctx context.Context, userID string) (*domain.TokenPair, error) {
	accessToken, err := s.tokenSvc.GenerateAccessToken(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := s.tokenSvc.GenerateRefreshToken(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	record := &domain.RefreshToken{
		Token:     refreshToken,
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.tokenSvc.RefreshTTL()),
	}
	if err := s.refreshRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.tokenSvc.AccessTTL().Seconds()),
	}, nil
}
