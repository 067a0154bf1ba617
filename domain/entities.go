package domain

import "time"

// User status values
const (
	UserStatusActive = "ACTIVE"
	UserStatusBanned = "BANNED"
)

// Post moderation states
const (
	PostStatusPending  = "PENDING"
	PostStatusApproved = "APPROVED"
	PostStatusRejected = "REJECTED"
)

// Banner positions
const (
	BannerPositionHomeTop    = "HOME_TOP"
	BannerPositionHomeMiddle = "HOME_MIDDLE"
)

// Role names seeded at startup
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleModerator  = "moderator"
	RoleMember     = "member"
)

// User represents a platform account. A user logs in either with a phone
// number plus one-time code, or (admin accounts) with username and password.
type User struct {
	ID           string
	Phone        string
	Username     string
	PasswordHash string
	Nickname     string
	Avatar       string
	Bio          string
	Status       string
	Roles        []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsBanned reports whether the account is blocked from authenticating.
func (u *User) IsBanned() bool { return u.Status == UserStatusBanned }

// HasRole reports whether the user holds the given role name.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the user holds at least one of the given roles.
func (u *User) HasAnyRole(names ...string) bool {
	for _, n := range names {
		if u.HasRole(n) {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the user may bypass ownership checks.
func (u *User) IsAdmin() bool { return u.HasAnyRole(RoleSuperAdmin, RoleAdmin) }

// Identity is the authenticated principal attached to a request context by
// the session middleware.
type Identity struct {
	UserID   string
	Nickname string
	Status   string
	Roles    []string
}

// HasAnyRole reports whether the identity holds at least one of the roles.
func (id *Identity) HasAnyRole(names ...string) bool {
	for _, n := range names {
		for _, r := range id.Roles {
			if r == n {
				return true
			}
		}
	}
	return false
}

// IsAdmin reports whether the identity may bypass ownership checks.
func (id *Identity) IsAdmin() bool { return id.HasAnyRole(RoleSuperAdmin, RoleAdmin) }

// Role groups a set of (resource, action) capabilities.
type Role struct {
	ID          string
	Name        string
	Description string
	Permissions []Permission
}

// Permission identifies a capability by its unique (resource, action) pair.
type Permission struct {
	ID          string
	Resource    string
	Action      string
	Description string
}

// RefreshToken is the persisted, authoritative record of an issued refresh
// token. The stored expiry governs validity regardless of the signed claim.
type RefreshToken struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the persisted expiry has passed.
func (t *RefreshToken) Expired(now time.Time) bool { return t.ExpiresAt.Before(now) }

// TokenPair is the result of issuing or rotating credentials.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

// TokenClaims carries the verified content of a JWT.
type TokenClaims struct {
	UserID    string
	IssuedAt  int64
	ExpiresAt int64
}

// Post is a forum entry subject to the moderation workflow.
type Post struct {
	ID           string
	Title        string
	Content      string
	Status       string
	AuthorID     string
	Author       *PostAuthor
	CategoryID   string
	Category     *Category
	ViewCount    int64
	CommentCount int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PostAuthor is the public projection of a post's author.
type PostAuthor struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar,omitempty"`
}

// Comment is a reply under a post.
type Comment struct {
	ID        string
	PostID    string
	AuthorID  string
	Author    *PostAuthor
	Content   string
	CreatedAt time.Time
}

// Category groups posts.
type Category struct {
	ID          string
	Name        string
	Description string
	SortOrder   int
	PostCount   int64
}

// Course is a learning item tracked per user.
type Course struct {
	ID          string
	Title       string
	Description string
	CoverURL    string
	SortOrder   int
	IsPublished bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LearningRecord tracks a user's progress through a course.
type LearningRecord struct {
	ID          string
	UserID      string
	CourseID    string
	Course      *Course
	Progress    int
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Tool is an entry of the curated tool directory.
type Tool struct {
	ID            string
	Name          string
	Description   string
	IconURL       string
	Link          string
	CategoryName  string
	Tags          []string
	IsRecommended bool
	SortOrder     int
	IsPublished   bool
	CreatedAt     time.Time
}

// Case is a success-case showcase entry.
type Case struct {
	ID          string
	Title       string
	Summary     string
	Content     string
	CoverURL    string
	AuthorName  string
	Revenue     string
	SortOrder   int
	IsPublished bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Banner is a promotional image shown inside an optional time window.
type Banner struct {
	ID        string
	ImageURL  string
	Link      string
	Position  string
	StartAt   *time.Time
	EndAt     *time.Time
	IsActive  bool
	SortOrder int
	CreatedAt time.Time
}

// ActiveAt reports whether the banner should be displayed at the given time.
func (b *Banner) ActiveAt(now time.Time) bool {
	if !b.IsActive {
		return false
	}
	if b.StartAt != nil && b.StartAt.After(now) {
		return false
	}
	if b.EndAt != nil && b.EndAt.Before(now) {
		return false
	}
	return true
}

// DashboardStats aggregates the admin console counters.
type DashboardStats struct {
	TotalUsers    int64 `json:"totalUsers"`
	ActiveUsers   int64 `json:"activeUsers"`
	TotalPosts    int64 `json:"totalPosts"`
	PendingPosts  int64 `json:"pendingPosts"`
	TotalCourses  int64 `json:"totalCourses"`
	TotalTools    int64 `json:"totalTools"`
	TodayNewUsers int64 `json:"todayNewUsers"`
}

// Page is the common paginated listing shape.
type Page[T any] struct {
	Data     []T   `json:"data"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}
