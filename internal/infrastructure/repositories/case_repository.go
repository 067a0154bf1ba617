package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/you/communitysvc/domain"
)

// CaseRepositoryImpl implements domain.CaseRepository using GORM
type CaseRepositoryImpl struct {
	db *gorm.DB
}

// DBCase represents the database model for Case
type DBCase struct {
	ID          string `gorm:"primaryKey;size:36"`
	Title       string `gorm:"size:255"`
	Summary     string `gorm:"size:500"`
	Content     string `gorm:"type:text"`
	CoverURL    string `gorm:"size:255"`
	AuthorName  string `gorm:"size:64"`
	Revenue     string `gorm:"size:64"`
	SortOrder   int    `gorm:"default:0"`
	IsPublished bool   `gorm:"index;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (DBCase) TableName() string { return "cases" }

// BeforeCreate assigns the UUID primary key.
func (c *DBCase) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// NewCaseRepository creates a new case repository
func NewCaseRepository(db *gorm.DB) domain.CaseRepository {
	return &CaseRepositoryImpl{db: db}
}

// Create implements domain.CaseRepository
func (r *CaseRepositoryImpl) Create(ctx context.Context, c *domain.Case) error {
	dbCase := caseToDB(c)
	if err := r.db.WithContext(ctx).Create(dbCase).Error; err != nil {
		return err
	}
	c.ID = dbCase.ID
	return nil
}

// FindByID implements domain.CaseRepository
func (r *CaseRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.Case, error) {
	var dbCase DBCase
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbCase).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return caseToDomain(&dbCase), nil
}

// Update implements domain.CaseRepository
func (r *CaseRepositoryImpl) Update(ctx context.Context, c *domain.Case) error {
	return r.db.WithContext(ctx).Model(&DBCase{ID: c.ID}).Updates(map[string]any{
		"title":        c.Title,
		"summary":      c.Summary,
		"content":      c.Content,
		"cover_url":    c.CoverURL,
		"author_name":  c.AuthorName,
		"revenue":      c.Revenue,
		"sort_order":   c.SortOrder,
		"is_published": c.IsPublished,
	}).Error
}

// Delete implements domain.CaseRepository
func (r *CaseRepositoryImpl) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&DBCase{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List implements domain.CaseRepository
func (r *CaseRepositoryImpl) List(ctx context.Context, onlyPublished bool, page, pageSize int) (*domain.Page[*domain.Case], error) {
	q := r.db.WithContext(ctx).Model(&DBCase{})
	if onlyPublished {
		q = q.Where("is_published = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	var dbCases []DBCase
	err := q.Order("sort_order ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&dbCases).Error
	if err != nil {
		return nil, err
	}

	cases := make([]*domain.Case, 0, len(dbCases))
	for i := range dbCases {
		cases = append(cases, caseToDomain(&dbCases[i]))
	}

	return &domain.Page[*domain.Case]{Data: cases, Total: total, Page: page, PageSize: pageSize}, nil
}

func caseToDB(c *domain.Case) *DBCase {
	return &DBCase{
		ID:          c.ID,
		Title:       c.Title,
		Summary:     c.Summary,
		Content:     c.Content,
		CoverURL:    c.CoverURL,
		AuthorName:  c.AuthorName,
		Revenue:     c.Revenue,
		SortOrder:   c.SortOrder,
		IsPublished: c.IsPublished,
	}
}

func caseToDomain(dbCase *DBCase) *domain.Case {
	return &domain.Case{
		ID:          dbCase.ID,
		Title:       dbCase.Title,
		Summary:     dbCase.Summary,
		Content:     dbCase.Content,
		CoverURL:    dbCase.CoverURL,
		AuthorName:  dbCase.AuthorName,
		Revenue:     dbCase.Revenue,
		SortOrder:   dbCase.SortOrder,
		IsPublished: dbCase.IsPublished,
		CreatedAt:   dbCase.CreatedAt,
		UpdatedAt:   dbCase.UpdatedAt,
	}
}
