package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/you/communitysvc/domain"
)

// RefreshTokenRepositoryImpl implements domain.RefreshTokenRepository using
// GORM. The persisted row is the source of truth for refresh validity:
// logout and rotation delete it, and the stored expiry is checked even when
// the signed token itself is still cryptographically valid.
type RefreshTokenRepositoryImpl struct {
	db *gorm.DB
}

// DBRefreshToken represents the persisted refresh token. The token value is
// the primary key for O(1) lookup.
type DBRefreshToken struct {
	Token     string `gorm:"primaryKey;size:512"`
	UserID    string `gorm:"index;size:36"`
	ExpiresAt time.Time `gorm:"index"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (DBRefreshToken) TableName() string { return "refresh_tokens" }

// NewRefreshTokenRepository creates a new refresh token repository
func NewRefreshTokenRepository(db *gorm.DB) domain.RefreshTokenRepository {
	return &RefreshTokenRepositoryImpl{db: db}
}

// Create implements domain.RefreshTokenRepository
func (r *RefreshTokenRepositoryImpl) Create(ctx context.Context, token *domain.RefreshToken) error {
	return r.db.WithContext(ctx).Create(&DBRefreshToken{
		Token:     token.Token,
		UserID:    token.UserID,
		ExpiresAt: token.ExpiresAt,
	}).Error
}

// Consume implements domain.RefreshTokenRepository. It deletes the row and
// returns it only when this call actually removed a live record: when two
// refresh calls race on the same token value, exactly one observes
// RowsAffected == 1 and the other gets ErrTokenInvalid. Stored expiry is
// checked after the delete, so an expired row can never be consumed.
func (r *RefreshTokenRepositoryImpl) Consume(ctx context.Context, token string) (*domain.RefreshToken, error) {
	var record DBRefreshToken
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}

	res := r.db.WithContext(ctx).Where("token = ?", token).Delete(&DBRefreshToken{})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Lost the race against a concurrent refresh or logout.
		return nil, domain.ErrTokenInvalid
	}

	if record.ExpiresAt.Before(time.Now()) {
		return nil, domain.ErrTokenExpired
	}

	return &domain.RefreshToken{
		Token:     record.Token,
		UserID:    record.UserID,
		ExpiresAt: record.ExpiresAt,
		CreatedAt: record.CreatedAt,
	}, nil
}

// Delete implements domain.RefreshTokenRepository. Idempotent: deleting an
// absent token is not an error.
func (r *RefreshTokenRepositoryImpl) Delete(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("token = ?", token).Delete(&DBRefreshToken{}).Error
}
