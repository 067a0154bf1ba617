package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/you/communitysvc/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User. Phone and Username are
// nullable pointers so their unique indexes tolerate accounts that only
// have one login path.
type DBUser struct {
	ID           string  `gorm:"primaryKey;size:36"`
	Phone        *string `gorm:"uniqueIndex;size:32"`
	Username     *string `gorm:"uniqueIndex;size:64"`
	PasswordHash string  `gorm:"column:password;size:255"`
	Nickname     string  `gorm:"size:64"`
	Avatar       string  `gorm:"size:255"`
	Bio          string  `gorm:"size:500"`
	Status       string  `gorm:"index;size:16;default:ACTIVE"`
	CreatedAt    time.Time `gorm:"index"`
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM
func (DBUser) TableName() string { return "users" }

// BeforeCreate assigns the UUID primary key.
func (u *DBUser) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// DBUserRole is the user↔role join table.
type DBUserRole struct {
	UserID string `gorm:"primaryKey;size:36;index"`
	RoleID string `gorm:"primaryKey;size:36"`
}

// TableName returns the table name for GORM
func (DBUserRole) TableName() string { return "user_roles" }

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := userToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		return err
	}
	user.ID = dbUser.ID
	user.CreatedAt = dbUser.CreatedAt
	return nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByPhone implements domain.UserRepository
func (r *UserRepositoryImpl) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.findOne(ctx, "phone = ?", phone)
}

// FindByUsername implements domain.UserRepository
func (r *UserRepositoryImpl) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

func (r *UserRepositoryImpl) findOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where(query, arg).First(&dbUser).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	user := userToDomain(&dbUser)
	roles, err := r.roleNames(ctx, dbUser.ID)
	if err != nil {
		return nil, err
	}
	user.Roles = roles
	return user, nil
}

// roleNames resolves a user's role names through the join table.
func (r *UserRepositoryImpl) roleNames(ctx context.Context, userID string) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Table("roles").
		Select("roles.name").
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ?", userID).
		Scan(&names).Error
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// Update implements domain.UserRepository
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Model(&DBUser{ID: user.ID}).Updates(map[string]any{
		"nickname": user.Nickname,
		"avatar":   user.Avatar,
		"bio":      user.Bio,
	}).Error
}

// UpdateStatus implements domain.UserRepository
func (r *UserRepositoryImpl) UpdateStatus(ctx context.Context, id, status string) error {
	res := r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// List implements domain.UserRepository
func (r *UserRepositoryImpl) List(ctx context.Context, page, pageSize int, keyword string) (*domain.Page[*domain.User], error) {
	q := r.db.WithContext(ctx).Model(&DBUser{})
	if keyword != "" {
		like := "%" + keyword + "%"
		q = q.Where("nickname LIKE ? OR phone LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	var dbUsers []DBUser
	err := q.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&dbUsers).Error
	if err != nil {
		return nil, err
	}

	users := make([]*domain.User, 0, len(dbUsers))
	for i := range dbUsers {
		u := userToDomain(&dbUsers[i])
		roles, err := r.roleNames(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		u.Roles = roles
		users = append(users, u)
	}

	return &domain.Page[*domain.User]{Data: users, Total: total, Page: page, PageSize: pageSize}, nil
}

// ReplaceRoles implements domain.UserRepository. The delete-all then
// insert-many pair runs inside one transaction so a crash cannot leave the
// user with zero roles.
func (r *UserRepositoryImpl) ReplaceRoles(ctx context.Context, userID string, roleNames []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var roles []DBRole
		if len(roleNames) > 0 {
			if err := tx.Where("name IN ?", roleNames).Find(&roles).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", userID).Delete(&DBUserRole{}).Error; err != nil {
			return err
		}

		for _, role := range roles {
			if err := tx.Create(&DBUserRole{UserID: userID, RoleID: role.ID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// AssignRole implements domain.UserRepository
func (r *UserRepositoryImpl) AssignRole(ctx context.Context, userID, roleName string) error {
	var role DBRole
	err := r.db.WithContext(ctx).Where("name = ?", roleName).First(&role).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.ErrRoleNotFound
		}
		return err
	}
	return r.db.WithContext(ctx).Create(&DBUserRole{UserID: userID, RoleID: role.ID}).Error
}

// CountByStatus implements domain.UserRepository
func (r *UserRepositoryImpl) CountByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(&DBUser{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Count(&n).Error
	return n, err
}

// CountCreatedSince implements domain.UserRepository
func (r *UserRepositoryImpl) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&DBUser{}).Where("created_at >= ?", since).Count(&n).Error
	return n, err
}

func userToDB(user *domain.User) *DBUser {
	dbUser := &DBUser{
		ID:           user.ID,
		PasswordHash: user.PasswordHash,
		Nickname:     user.Nickname,
		Avatar:       user.Avatar,
		Bio:          user.Bio,
		Status:       user.Status,
	}
	if user.Phone != "" {
		dbUser.Phone = &user.Phone
	}
	if user.Username != "" {
		dbUser.Username = &user.Username
	}
	return dbUser
}

func userToDomain(dbUser *DBUser) *domain.User {
	user := &domain.User{
		ID:           dbUser.ID,
		PasswordHash: dbUser.PasswordHash,
		Nickname:     dbUser.Nickname,
		Avatar:       dbUser.Avatar,
		Bio:          dbUser.Bio,
		Status:       dbUser.Status,
		CreatedAt:    dbUser.CreatedAt,
		UpdatedAt:    dbUser.UpdatedAt,
	}
	if dbUser.Phone != nil {
		user.Phone = *dbUser.Phone
	}
	if dbUser.Username != nil {
		user.Username = *dbUser.Username
	}
	return user
}
