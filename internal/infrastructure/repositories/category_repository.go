package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/you/communitysvc/domain"
)

// CategoryRepositoryImpl implements domain.CategoryRepository using GORM
type CategoryRepositoryImpl struct {
	db *gorm.DB
}

// DBCategory represents the database model for Category
type DBCategory struct {
	ID          string `gorm:"primaryKey;size:36"`
	Name        string `gorm:"uniqueIndex;size:64"`
	Description string `gorm:"size:255"`
	SortOrder   int    `gorm:"default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (DBCategory) TableName() string { return "categories" }

// BeforeCreate assigns the UUID primary key.
func (c *DBCategory) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) domain.CategoryRepository {
	return &CategoryRepositoryImpl{db: db}
}

// Create implements domain.CategoryRepository
func (r *CategoryRepositoryImpl) Create(ctx context.Context, category *domain.Category) error {
	var existing int64
	if err := r.db.WithContext(ctx).Model(&DBCategory{}).
		Where("name = ?", category.Name).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return domain.ErrDuplicateName
	}
	dbCategory := &DBCategory{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		SortOrder:   category.SortOrder,
	}
	if err := r.db.WithContext(ctx).Create(dbCategory).Error; err != nil {
		return err
	}
	category.ID = dbCategory.ID
	return nil
}

// FindByID implements domain.CategoryRepository
func (r *CategoryRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.Category, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByName implements domain.CategoryRepository
func (r *CategoryRepositoryImpl) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	return r.findOne(ctx, "name = ?", name)
}

func (r *CategoryRepositoryImpl) findOne(ctx context.Context, query string, arg any) (*domain.Category, error) {
	var dbCategory DBCategory
	err := r.db.WithContext(ctx).Where(query, arg).First(&dbCategory).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	category := categoryToDomain(&dbCategory)
	if err := r.db.WithContext(ctx).Model(&DBPost{}).
		Where("category_id = ?", category.ID).Count(&category.PostCount).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// Update implements domain.CategoryRepository
func (r *CategoryRepositoryImpl) Update(ctx context.Context, category *domain.Category) error {
	var clash int64
	if err := r.db.WithContext(ctx).Model(&DBCategory{}).
		Where("name = ? AND id <> ?", category.Name, category.ID).Count(&clash).Error; err != nil {
		return err
	}
	if clash > 0 {
		return domain.ErrDuplicateName
	}
	return r.db.WithContext(ctx).Model(&DBCategory{ID: category.ID}).Updates(map[string]any{
		"name":        category.Name,
		"description": category.Description,
		"sort_order":  category.SortOrder,
	}).Error
}

// Delete implements domain.CategoryRepository. Categories still referenced
// by posts cannot be removed.
func (r *CategoryRepositoryImpl) Delete(ctx context.Context, id string) error {
	var inUse int64
	if err := r.db.WithContext(ctx).Model(&DBPost{}).
		Where("category_id = ?", id).Count(&inUse).Error; err != nil {
		return err
	}
	if inUse > 0 {
		return domain.ErrCategoryNotEmpty
	}
	res := r.db.WithContext(ctx).Delete(&DBCategory{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List implements domain.CategoryRepository
func (r *CategoryRepositoryImpl) List(ctx context.Context) ([]*domain.Category, error) {
	var dbCategories []DBCategory
	if err := r.db.WithContext(ctx).Order("sort_order ASC").Find(&dbCategories).Error; err != nil {
		return nil, err
	}
	categories := make([]*domain.Category, 0, len(dbCategories))
	for i := range dbCategories {
		category := categoryToDomain(&dbCategories[i])
		if err := r.db.WithContext(ctx).Model(&DBPost{}).
			Where("category_id = ?", category.ID).Count(&category.PostCount).Error; err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, nil
}

func categoryToDomain(dbCategory *DBCategory) *domain.Category {
	return &domain.Category{
		ID:          dbCategory.ID,
		Name:        dbCategory.Name,
		Description: dbCategory.Description,
		SortOrder:   dbCategory.SortOrder,
	}
}
