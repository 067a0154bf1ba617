package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/you/communitysvc/domain"
)

// RoleRepositoryImpl implements domain.RoleRepository using GORM. The
// role→permission links themselves live as casbin policy rows; this
// repository owns the role records and the permission catalog.
type RoleRepositoryImpl struct {
	db *gorm.DB
}

// DBRole represents the database model for Role
type DBRole struct {
	ID          string `gorm:"primaryKey;size:36"`
	Name        string `gorm:"uniqueIndex;size:64"`
	Description string `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (DBRole) TableName() string { return "roles" }

// BeforeCreate assigns the UUID primary key.
func (r *DBRole) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// DBPermission represents one entry of the permission catalog.
type DBPermission struct {
	ID          string `gorm:"primaryKey;size:36"`
	Resource    string `gorm:"size:64;uniqueIndex:idx_resource_action"`
	Action      string `gorm:"size:64;uniqueIndex:idx_resource_action"`
	Description string `gorm:"size:255"`
}

// TableName returns the table name for GORM
func (DBPermission) TableName() string { return "permissions" }

// BeforeCreate assigns the UUID primary key.
func (p *DBPermission) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *gorm.DB) domain.RoleRepository {
	return &RoleRepositoryImpl{db: db}
}

// Create implements domain.RoleRepository
func (r *RoleRepositoryImpl) Create(ctx context.Context, role *domain.Role) error {
	dbRole := &DBRole{ID: role.ID, Name: role.Name, Description: role.Description}
	if err := r.db.WithContext(ctx).Create(dbRole).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateName
		}
		return err
	}
	role.ID = dbRole.ID
	return nil
}

// FindByID implements domain.RoleRepository
func (r *RoleRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.Role, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByName implements domain.RoleRepository
func (r *RoleRepositoryImpl) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	return r.findOne(ctx, "name = ?", name)
}

func (r *RoleRepositoryImpl) findOne(ctx context.Context, query string, arg any) (*domain.Role, error) {
	var dbRole DBRole
	err := r.db.WithContext(ctx).Where(query, arg).First(&dbRole).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrRoleNotFound
		}
		return nil, err
	}
	return roleToDomain(&dbRole), nil
}

// Update implements domain.RoleRepository
func (r *RoleRepositoryImpl) Update(ctx context.Context, role *domain.Role) error {
	return r.db.WithContext(ctx).Model(&DBRole{ID: role.ID}).Updates(map[string]any{
		"name":        role.Name,
		"description": role.Description,
	}).Error
}

// Delete implements domain.RoleRepository. Assignments referencing the role
// go with it.
func (r *RoleRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", id).Delete(&DBUserRole{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&DBRole{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrRoleNotFound
		}
		return nil
	})
}

// List implements domain.RoleRepository
func (r *RoleRepositoryImpl) List(ctx context.Context) ([]*domain.Role, error) {
	var dbRoles []DBRole
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&dbRoles).Error; err != nil {
		return nil, err
	}
	roles := make([]*domain.Role, 0, len(dbRoles))
	for i := range dbRoles {
		roles = append(roles, roleToDomain(&dbRoles[i]))
	}
	return roles, nil
}

// ListPermissions implements domain.RoleRepository
func (r *RoleRepositoryImpl) ListPermissions(ctx context.Context) ([]*domain.Permission, error) {
	var dbPerms []DBPermission
	err := r.db.WithContext(ctx).Order("resource ASC, action ASC").Find(&dbPerms).Error
	if err != nil {
		return nil, err
	}
	perms := make([]*domain.Permission, 0, len(dbPerms))
	for i := range dbPerms {
		perms = append(perms, permToDomain(&dbPerms[i]))
	}
	return perms, nil
}

// FindPermissionsByIDs implements domain.RoleRepository
func (r *RoleRepositoryImpl) FindPermissionsByIDs(ctx context.Context, ids []string) ([]*domain.Permission, error) {
	if len(ids) == 0 {
		return []*domain.Permission{}, nil
	}
	var dbPerms []DBPermission
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&dbPerms).Error; err != nil {
		return nil, err
	}
	perms := make([]*domain.Permission, 0, len(dbPerms))
	for i := range dbPerms {
		perms = append(perms, permToDomain(&dbPerms[i]))
	}
	return perms, nil
}

// EnsurePermission implements domain.RoleRepository. Used by the seeder;
// existing (resource, action) pairs are left untouched.
func (r *RoleRepositoryImpl) EnsurePermission(ctx context.Context, p *domain.Permission) error {
	dbPerm := &DBPermission{Resource: p.Resource, Action: p.Action, Description: p.Description}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "resource"}, {Name: "action"}},
			DoNothing: true,
		}).
		Create(dbPerm).Error
	if err != nil {
		return err
	}
	p.ID = dbPerm.ID
	return nil
}

func roleToDomain(dbRole *DBRole) *domain.Role {
	return &domain.Role{ID: dbRole.ID, Name: dbRole.Name, Description: dbRole.Description}
}

func permToDomain(dbPerm *DBPermission) *domain.Permission {
	return &domain.Permission{
		ID:          dbPerm.ID,
		Resource:    dbPerm.Resource,
		Action:      dbPerm.Action,
		Description: dbPerm.Description,
	}
}
