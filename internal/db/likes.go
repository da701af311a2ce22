package db

import (
	"context"

	"github.com/warblerapp/warbler/internal/models"
)

// LikeRepository provides like-edge database operations
type LikeRepository struct {
	*Repository
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(repo *Repository) *LikeRepository {
	return &LikeRepository{Repository: repo}
}

// Create inserts a like edge. Liking the same message twice is
// reported as ErrDuplicate.
func (r *LikeRepository) Create(ctx context.Context, userID, messageID int64) error {
	like := models.Like{
		UserID:    userID,
		MessageID: messageID,
	}
	return translateCreateError(r.db.WithContext(ctx).Create(&like).Error)
}

// Delete removes a like edge if present
func (r *LikeRepository) Delete(ctx context.Context, userID, messageID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Delete(&models.Like{}).Error
}

// Exists reports whether userID has liked messageID
func (r *LikeRepository) Exists(ctx context.Context, userID, messageID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByMessage returns how many users liked a message
func (r *LikeRepository) CountByMessage(ctx context.Context, messageID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("message_id = ?", messageID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByUser returns how many messages a user has liked
func (r *LikeRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
