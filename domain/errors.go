package domain

import "errors"

// Authentication errors. All of them surface as a generic 401 so that the
// API never reveals which part of the credential was wrong.
var (
	ErrInvalidCode        = errors.New("verification code invalid or expired")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserBanned         = errors.New("user account is banned")
	ErrUserNotFound       = errors.New("user not found")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Authorization errors
var (
	ErrForbidden = errors.New("insufficient role permissions")
	ErrNotOwner  = errors.New("not the resource owner")
)

// Resource errors
var (
	ErrNotFound          = errors.New("resource not found")
	ErrRoleNotFound      = errors.New("role not found")
	ErrDuplicateName     = errors.New("name already exists")
	ErrCategoryNotEmpty  = errors.New("category still has posts")
	ErrInvalidTransition = errors.New("invalid moderation transition")
)
