package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations. FindByID and listing
// return users with their role names resolved.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByPhone(ctx context.Context, phone string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	Update(ctx context.Context, user *User) error
	UpdateStatus(ctx context.Context, id, status string) error
	List(ctx context.Context, page, pageSize int, keyword string) (*Page[*User], error)
	ReplaceRoles(ctx context.Context, userID string, roleNames []string) error
	AssignRole(ctx context.Context, userID, roleName string) error
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}

// RoleRepository defines role and permission-catalog access.
type RoleRepository interface {
	Create(ctx context.Context, role *Role) error
	FindByID(ctx context.Context, id string) (*Role, error)
	FindByName(ctx context.Context, name string) (*Role, error)
	Update(ctx context.Context, role *Role) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Role, error)
	ListPermissions(ctx context.Context) ([]*Permission, error)
	FindPermissionsByIDs(ctx context.Context, ids []string) ([]*Permission, error)
	EnsurePermission(ctx context.Context, p *Permission) error
}

// RefreshTokenRepository persists issued refresh tokens. Consume must delete
// the row and report whether a live row was actually removed, so that two
// racing refresh calls cannot both win.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *RefreshToken) error
	Consume(ctx context.Context, token string) (*RefreshToken, error)
	Delete(ctx context.Context, token string) error
}

// CodeStore is the injected key-value capability backing one-time codes.
type CodeStore interface {
	Put(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// CodeService sends and verifies one-time login codes.
type CodeService interface {
	Send(ctx context.Context, phone string) error
	VerifyAndConsume(ctx context.Context, phone, code string) (bool, error)
}

// PasswordService defines password hashing operations.
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService signs and verifies JWTs. Access and refresh tokens use
// distinct secrets so compromising one cannot forge the other.
type TokenService interface {
	GenerateAccessToken(userID string) (string, error)
	GenerateRefreshToken(userID string) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
	AccessTTL() time.Duration
	RefreshTTL() time.Duration
}

// AuthService defines the authentication lifecycle.
type AuthService interface {
	SendCode(ctx context.Context, phone string) error
	Login(ctx context.Context, phone, code string) (*TokenPair, error)
	AdminLogin(ctx context.Context, username, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	ResolveIdentity(ctx context.Context, accessToken string) (*Identity, error)
}

// NotificationService delivers messages to users.
type NotificationService interface {
	SendSMS(to, message string) error
}

// PolicyService manages the role→(resource,action) permission matrix.
type PolicyService interface {
	GrantPermission(role, resource, action string) error
	RevokePermission(role, resource, action string) error
	ReplaceRolePermissions(role string, perms []*Permission) error
	RemoveRole(role string) error
	CheckPermission(roles []string, resource, action string) (bool, error)
	RolePermissions(role string) [][]string
}

// Enforcer is the subset of the casbin enforcer the policy service needs.
type Enforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	RemoveFilteredPolicy(fieldIndex int, fieldValues ...string) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetFilteredPolicy(fieldIndex int, fieldValues ...string) ([][]string, error)
	SavePolicy() error
}

// PostRepository defines forum post data access.
type PostRepository interface {
	Create(ctx context.Context, post *Post) error
	FindByID(ctx context.Context, id string) (*Post, error)
	Update(ctx context.Context, post *Post) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	IncrementViewCount(ctx context.Context, id string) error
	List(ctx context.Context, f PostFilter) (*Page[*Post], error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}

// PostFilter narrows post listings. Empty fields are ignored.
type PostFilter struct {
	Status     string
	CategoryID string
	AuthorID   string
	Page       int
	PageSize   int
}

// CommentRepository defines comment data access.
type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	FindByID(ctx context.Context, id string) (*Comment, error)
	Delete(ctx context.Context, id string) error
	ListByPost(ctx context.Context, postID string, page, pageSize int) (*Page[*Comment], error)
}

// CategoryRepository defines post category data access.
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	FindByID(ctx context.Context, id string) (*Category, error)
	FindByName(ctx context.Context, name string) (*Category, error)
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Category, error)
}

// CourseRepository defines course data access.
type CourseRepository interface {
	Create(ctx context.Context, course *Course) error
	FindByID(ctx context.Context, id string) (*Course, error)
	Update(ctx context.Context, course *Course) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, onlyPublished bool) ([]*Course, error)
	CountPublished(ctx context.Context) (int64, error)
}

// LearningRecordRepository defines per-user course progress access.
type LearningRecordRepository interface {
	Upsert(ctx context.Context, record *LearningRecord) error
	ListByUser(ctx context.Context, userID string) ([]*LearningRecord, error)
}

// ToolRepository defines tool directory data access.
type ToolRepository interface {
	Create(ctx context.Context, tool *Tool) error
	FindByID(ctx context.Context, id string) (*Tool, error)
	Update(ctx context.Context, tool *Tool) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f ToolFilter) (*Page[*Tool], error)
	CountPublished(ctx context.Context) (int64, error)
}

// ToolFilter narrows tool listings. Empty fields are ignored.
type ToolFilter struct {
	OnlyPublished   bool
	CategoryName    string
	OnlyRecommended bool
	Page            int
	PageSize        int
}

// CaseRepository defines success-case data access.
type CaseRepository interface {
	Create(ctx context.Context, c *Case) error
	FindByID(ctx context.Context, id string) (*Case, error)
	Update(ctx context.Context, c *Case) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, onlyPublished bool, page, pageSize int) (*Page[*Case], error)
}

// BannerRepository defines banner data access.
type BannerRepository interface {
	Create(ctx context.Context, banner *Banner) error
	FindByID(ctx context.Context, id string) (*Banner, error)
	Update(ctx context.Context, banner *Banner) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Banner, error)
	ListActive(ctx context.Context, position string, now time.Time) ([]*Banner, error)
}
