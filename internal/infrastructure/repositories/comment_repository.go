package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/you/communitysvc/domain"
)

// CommentRepositoryImpl implements domain.CommentRepository using GORM
type CommentRepositoryImpl struct {
	db *gorm.DB
}

// DBComment represents the database model for Comment
type DBComment struct {
	ID        string `gorm:"primaryKey;size:36"`
	PostID    string `gorm:"index;size:36"`
	AuthorID  string `gorm:"index;size:36"`
	Content   string `gorm:"type:text"`
	CreatedAt time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBComment) TableName() string { return "comments" }

// BeforeCreate assigns the UUID primary key.
func (c *DBComment) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *gorm.DB) domain.CommentRepository {
	return &CommentRepositoryImpl{db: db}
}

// Create implements domain.CommentRepository
func (r *CommentRepositoryImpl) Create(ctx context.Context, comment *domain.Comment) error {
	dbComment := &DBComment{
		ID:       comment.ID,
		PostID:   comment.PostID,
		AuthorID: comment.AuthorID,
		Content:  comment.Content,
	}
	if err := r.db.WithContext(ctx).Create(dbComment).Error; err != nil {
		return err
	}
	comment.ID = dbComment.ID
	comment.CreatedAt = dbComment.CreatedAt
	return nil
}

// FindByID implements domain.CommentRepository
func (r *CommentRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.Comment, error) {
	var dbComment DBComment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbComment).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return r.commentToDomain(ctx, &dbComment), nil
}

// Delete implements domain.CommentRepository
func (r *CommentRepositoryImpl) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&DBComment{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByPost implements domain.CommentRepository. Oldest first, the way a
// discussion thread reads.
func (r *CommentRepositoryImpl) ListByPost(ctx context.Context, postID string, page, pageSize int) (*domain.Page[*domain.Comment], error) {
	q := r.db.WithContext(ctx).Model(&DBComment{}).Where("post_id = ?", postID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	var dbComments []DBComment
	err := q.Order("created_at ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&dbComments).Error
	if err != nil {
		return nil, err
	}

	comments := make([]*domain.Comment, 0, len(dbComments))
	for i := range dbComments {
		comments = append(comments, r.commentToDomain(ctx, &dbComments[i]))
	}

	return &domain.Page[*domain.Comment]{Data: comments, Total: total, Page: page, PageSize: pageSize}, nil
}

func (r *CommentRepositoryImpl) commentToDomain(ctx context.Context, dbComment *DBComment) *domain.Comment {
	comment := &domain.Comment{
		ID:        dbComment.ID,
		PostID:    dbComment.PostID,
		AuthorID:  dbComment.AuthorID,
		Content:   dbComment.Content,
		CreatedAt: dbComment.CreatedAt,
	}
	var author DBUser
	if err := r.db.WithContext(ctx).Select("id", "nickname", "avatar").
		Where("id = ?", dbComment.AuthorID).First(&author).Error; err == nil {
		comment.Author = &domain.PostAuthor{ID: author.ID, Nickname: author.Nickname, Avatar: author.Avatar}
	}
	return comment
}
