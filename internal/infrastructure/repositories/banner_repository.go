package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/you/communitysvc/domain"
)

// BannerRepositoryImpl implements domain.BannerRepository using GORM
type BannerRepositoryImpl struct {
	db *gorm.DB
}

// DBBanner represents the database model for Banner
type DBBanner struct {
	ID        string `gorm:"primaryKey;size:36"`
	ImageURL  string `gorm:"size:255"`
	Link      string `gorm:"size:255"`
	Position  string `gorm:"index;size:16"`
	StartAt   *time.Time
	EndAt     *time.Time
	IsActive  bool `gorm:"index;default:true"`
	SortOrder int  `gorm:"default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (DBBanner) TableName() string { return "banners" }

// BeforeCreate assigns the UUID primary key.
func (b *DBBanner) BeforeCreate(*gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// NewBannerRepository creates a new banner repository
func NewBannerRepository(db *gorm.DB) domain.BannerRepository {
	return &BannerRepositoryImpl{db: db}
}

// Create implements domain.BannerRepository
func (r *BannerRepositoryImpl) Create(ctx context.Context, banner *domain.Banner) error {
	dbBanner := bannerToDB(banner)
	if err := r.db.WithContext(ctx).Create(dbBanner).Error; err != nil {
		return err
	}
	banner.ID = dbBanner.ID
	return nil
}

// FindByID implements domain.BannerRepository
func (r *BannerRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.Banner, error) {
	var dbBanner DBBanner
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbBanner).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return bannerToDomain(&dbBanner), nil
}

// Update implements domain.BannerRepository
func (r *BannerRepositoryImpl) Update(ctx context.Context, banner *domain.Banner) error {
	return r.db.WithContext(ctx).Model(&DBBanner{ID: banner.ID}).Updates(map[string]any{
		"image_url":  banner.ImageURL,
		"link":       banner.Link,
		"position":   banner.Position,
		"start_at":   banner.StartAt,
		"end_at":     banner.EndAt,
		"is_active":  banner.IsActive,
		"sort_order": banner.SortOrder,
	}).Error
}

// Delete implements domain.BannerRepository
func (r *BannerRepositoryImpl) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&DBBanner{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List implements domain.BannerRepository
func (r *BannerRepositoryImpl) List(ctx context.Context) ([]*domain.Banner, error) {
	var dbBanners []DBBanner
	if err := r.db.WithContext(ctx).Order("sort_order ASC").Find(&dbBanners).Error; err != nil {
		return nil, err
	}
	banners := make([]*domain.Banner, 0, len(dbBanners))
	for i := range dbBanners {
		banners = append(banners, bannerToDomain(&dbBanners[i]))
	}
	return banners, nil
}

// ListActive implements domain.BannerRepository. Only banners whose display
// window covers now are returned.
func (r *BannerRepositoryImpl) ListActive(ctx context.Context, position string, now time.Time) ([]*domain.Banner, error) {
	q := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("start_at IS NULL OR start_at <= ?", now).
		Where("end_at IS NULL OR end_at >= ?", now)
	if position != "" {
		q = q.Where("position = ?", position)
	}

	var dbBanners []DBBanner
	if err := q.Order("sort_order ASC").Find(&dbBanners).Error; err != nil {
		return nil, err
	}
	banners := make([]*domain.Banner, 0, len(dbBanners))
	for i := range dbBanners {
		banners = append(banners, bannerToDomain(&dbBanners[i]))
	}
	return banners, nil
}

func bannerToDB(banner *domain.Banner) *DBBanner {
	return &DBBanner{
		ID:        banner.ID,
		ImageURL:  banner.ImageURL,
		Link:      banner.Link,
		Position:  banner.Position,
		StartAt:   banner.StartAt,
		EndAt:     banner.EndAt,
		IsActive:  banner.IsActive,
		SortOrder: banner.SortOrder,
	}
}

func bannerToDomain(dbBanner *DBBanner) *domain.Banner {
	return &domain.Banner{
		ID:        dbBanner.ID,
		ImageURL:  dbBanner.ImageURL,
		Link:      dbBanner.Link,
		Position:  dbBanner.Position,
		StartAt:   dbBanner.StartAt,
		EndAt:     dbBanner.EndAt,
		IsActive:  dbBanner.IsActive,
		SortOrder: dbBanner.SortOrder,
		CreatedAt: dbBanner.CreatedAt,
	}
}
