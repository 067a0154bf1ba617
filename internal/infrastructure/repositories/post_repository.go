package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/you/communitysvc/domain"
)

// PostRepositoryImpl implements domain.PostRepository using GORM
type PostRepositoryImpl struct {
	db *gorm.DB
}

// DBPost represents the database model for Post
type DBPost struct {
	ID         string `gorm:"primaryKey;size:36"`
	Title      string `gorm:"size:255"`
	Content    string `gorm:"type:text"`
	Status     string `gorm:"index;size:16;default:PENDING"`
	AuthorID   string `gorm:"index;size:36"`
	CategoryID string `gorm:"index;size:36"`
	ViewCount  int64  `gorm:"default:0"`
	CreatedAt  time.Time `gorm:"index"`
	UpdatedAt  time.Time
}

// TableName returns the table name for GORM
func (DBPost) TableName() string { return "posts" }

// BeforeCreate assigns the UUID primary key.
func (p *DBPost) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) domain.PostRepository {
	return &PostRepositoryImpl{db: db}
}

// Create implements domain.PostRepository
func (r *PostRepositoryImpl) Create(ctx context.Context, post *domain.Post) error {
	dbPost := &DBPost{
		ID:         post.ID,
		Title:      post.Title,
		Content:    post.Content,
		Status:     post.Status,
		AuthorID:   post.AuthorID,
		CategoryID: post.CategoryID,
	}
	if err := r.db.WithContext(ctx).Create(dbPost).Error; err != nil {
		return err
	}
	post.ID = dbPost.ID
	post.CreatedAt = dbPost.CreatedAt
	return nil
}

// FindByID implements domain.PostRepository
func (r *PostRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	var dbPost DBPost
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbPost).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	post := r.postToDomain(&dbPost)
	if err := r.decorate(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Update implements domain.PostRepository
func (r *PostRepositoryImpl) Update(ctx context.Context, post *domain.Post) error {
	return r.db.WithContext(ctx).Model(&DBPost{ID: post.ID}).Updates(map[string]any{
		"title":       post.Title,
		"content":     post.Content,
		"category_id": post.CategoryID,
	}).Error
}

// UpdateStatus implements domain.PostRepository
func (r *PostRepositoryImpl) UpdateStatus(ctx context.Context, id, status string) error {
	res := r.db.WithContext(ctx).Model(&DBPost{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete implements domain.PostRepository. Comments under the post go
// with it.
func (r *PostRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&DBComment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&DBPost{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

// IncrementViewCount implements domain.PostRepository
func (r *PostRepositoryImpl) IncrementViewCount(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&DBPost{}).Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + 1")).Error
}

// List implements domain.PostRepository
func (r *PostRepositoryImpl) List(ctx context.Context, f domain.PostFilter) (*domain.Page[*domain.Post], error) {
	q := r.db.WithContext(ctx).Model(&DBPost{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.CategoryID != "" {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.AuthorID != "" {
		q = q.Where("author_id = ?", f.AuthorID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	var dbPosts []DBPost
	err := q.Order("created_at DESC").
		Offset((f.Page - 1) * f.PageSize).
		Limit(f.PageSize).
		Find(&dbPosts).Error
	if err != nil {
		return nil, err
	}

	posts := make([]*domain.Post, 0, len(dbPosts))
	for i := range dbPosts {
		post := r.postToDomain(&dbPosts[i])
		if err := r.decorate(ctx, post); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	return &domain.Page[*domain.Post]{Data: posts, Total: total, Page: f.Page, PageSize: f.PageSize}, nil
}

// CountByStatus implements domain.PostRepository
func (r *PostRepositoryImpl) CountByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(&DBPost{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Count(&n).Error
	return n, err
}

// decorate fills the author projection, category and comment count.
func (r *PostRepositoryImpl) decorate(ctx context.Context, post *domain.Post) error {
	var author DBUser
	if err := r.db.WithContext(ctx).Select("id", "nickname", "avatar").
		Where("id = ?", post.AuthorID).First(&author).Error; err == nil {
		post.Author = &domain.PostAuthor{ID: author.ID, Nickname: author.Nickname, Avatar: author.Avatar}
	}

	if post.CategoryID != "" {
		var category DBCategory
		if err := r.db.WithContext(ctx).Where("id = ?", post.CategoryID).First(&category).Error; err == nil {
			post.Category = categoryToDomain(&category)
		}
	}

	return r.db.WithContext(ctx).Model(&DBComment{}).
		Where("post_id = ?", post.ID).Count(&post.CommentCount).Error
}

func (r *PostRepositoryImpl) postToDomain(dbPost *DBPost) *domain.Post {
	return &domain.Post{
		ID:         dbPost.ID,
		Title:      dbPost.Title,
		Content:    dbPost.Content,
		Status:     dbPost.Status,
		AuthorID:   dbPost.AuthorID,
		CategoryID: dbPost.CategoryID,
		ViewCount:  dbPost.ViewCount,
		CreatedAt:  dbPost.CreatedAt,
		UpdatedAt:  dbPost.UpdatedAt,
	}
}
