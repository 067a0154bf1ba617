package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/you/communitysvc/domain"
)

// ToolRepositoryImpl implements domain.ToolRepository using GORM
type ToolRepositoryImpl struct {
	db *gorm.DB
}

// DBTool represents the database model for Tool. Tags serialize to a JSON
// array string.
type DBTool struct {
	ID            string `gorm:"primaryKey;size:36"`
	Name          string `gorm:"size:128"`
	Description   string `gorm:"size:500"`
	IconURL       string `gorm:"size:255"`
	Link          string `gorm:"size:255"`
	CategoryName  string `gorm:"index;size:64"`
	Tags          string `gorm:"size:500;default:'[]'"`
	IsRecommended bool   `gorm:"index;default:false"`
	SortOrder     int    `gorm:"default:0"`
	IsPublished   bool   `gorm:"index;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName returns the table name for GORM
func (DBTool) TableName() string { return "tools" }

// BeforeCreate assigns the UUID primary key.
func (t *DBTool) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// NewToolRepository creates a new tool repository
func NewToolRepository(db *gorm.DB) domain.ToolRepository {
	return &ToolRepositoryImpl{db: db}
}

// Create implements domain.ToolRepository
func (r *ToolRepositoryImpl) Create(ctx context.Context, tool *domain.Tool) error {
	dbTool, err := toolToDB(tool)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(dbTool).Error; err != nil {
		return err
	}
	tool.ID = dbTool.ID
	return nil
}

// FindByID implements domain.ToolRepository
func (r *ToolRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.Tool, error) {
	var dbTool DBTool
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbTool).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return toolToDomain(&dbTool), nil
}

// Update implements domain.ToolRepository
func (r *ToolRepositoryImpl) Update(ctx context.Context, tool *domain.Tool) error {
	dbTool, err := toolToDB(tool)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&DBTool{ID: tool.ID}).Updates(map[string]any{
		"name":           dbTool.Name,
		"description":    dbTool.Description,
		"icon_url":       dbTool.IconURL,
		"link":           dbTool.Link,
		"category_name":  dbTool.CategoryName,
		"tags":           dbTool.Tags,
		"is_recommended": dbTool.IsRecommended,
		"sort_order":     dbTool.SortOrder,
		"is_published":   dbTool.IsPublished,
	}).Error
}

// Delete implements domain.ToolRepository
func (r *ToolRepositoryImpl) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&DBTool{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List implements domain.ToolRepository
func (r *ToolRepositoryImpl) List(ctx context.Context, f domain.ToolFilter) (*domain.Page[*domain.Tool], error) {
	q := r.db.WithContext(ctx).Model(&DBTool{})
	if f.OnlyPublished {
		q = q.Where("is_published = ?", true)
	}
	if f.CategoryName != "" {
		q = q.Where("category_name = ?", f.CategoryName)
	}
	if f.OnlyRecommended {
		q = q.Where("is_recommended = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	var dbTools []DBTool
	err := q.Order("sort_order ASC").
		Offset((f.Page - 1) * f.PageSize).
		Limit(f.PageSize).
		Find(&dbTools).Error
	if err != nil {
		return nil, err
	}

	tools := make([]*domain.Tool, 0, len(dbTools))
	for i := range dbTools {
		tools = append(tools, toolToDomain(&dbTools[i]))
	}

	return &domain.Page[*domain.Tool]{Data: tools, Total: total, Page: f.Page, PageSize: f.PageSize}, nil
}

// CountPublished implements domain.ToolRepository
func (r *ToolRepositoryImpl) CountPublished(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&DBTool{}).Where("is_published = ?", true).Count(&n).Error
	return n, err
}

func toolToDB(tool *domain.Tool) (*DBTool, error) {
	tags := tool.Tags
	if tags == nil {
		tags = []string{}
	}
	encoded, err := json.Marshal(tags)
	if err != nil {
		return nil, err
	}
	return &DBTool{
		ID:            tool.ID,
		Name:          tool.Name,
		Description:   tool.Description,
		IconURL:       tool.IconURL,
		Link:          tool.Link,
		CategoryName:  tool.CategoryName,
		Tags:          string(encoded),
		IsRecommended: tool.IsRecommended,
		SortOrder:     tool.SortOrder,
		IsPublished:   tool.IsPublished,
	}, nil
}

func toolToDomain(dbTool *DBTool) *domain.Tool {
	tool := &domain.Tool{
		ID:            dbTool.ID,
		Name:          dbTool.Name,
		Description:   dbTool.Description,
		IconURL:       dbTool.IconURL,
		Link:          dbTool.Link,
		CategoryName:  dbTool.CategoryName,
		Tags:          []string{},
		IsRecommended: dbTool.IsRecommended,
		SortOrder:     dbTool.SortOrder,
		IsPublished:   dbTool.IsPublished,
		CreatedAt:     dbTool.CreatedAt,
	}
	if dbTool.Tags != "" {
		_ = json.Unmarshal([]byte(dbTool.Tags), &tool.Tags)
	}
	return tool
}
