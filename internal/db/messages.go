package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/warblerapp/warbler/internal/models"
)

// MessageRepository provides message-related database operations
type MessageRepository struct {
	*Repository
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(repo *Repository) *MessageRepository {
	return &MessageRepository{Repository: repo}
}

// GetByID retrieves a message by ID with its author preloaded
func (r *MessageRepository) GetByID(ctx context.Context, id int64) (*models.Message, error) {
	var message models.Message
	if err := r.db.WithContext(ctx).Preload("User").First(&message, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}

// Create creates a new message
func (r *MessageRepository) Create(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// Delete removes a message and any likes referencing it
func (r *MessageRepository) Delete(ctx context.Context, id int64) error {
	return r.Transaction(ctx, func(tx *Repository) error {
		if err := tx.db.Where("message_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.db.Delete(&models.Message{}, id).Error
	})
}

// ListByUser retrieves a user's messages, newest first
func (r *MessageRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Message, error) {
	var messages []*models.Message
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// Timeline retrieves the newest messages authored by the given user or
// anyone that user follows.
func (r *MessageRepository) Timeline(ctx context.Context, userID int64, limit int) ([]*models.Message, error) {
	var messages []*models.Message
	followed := r.db.Model(&models.Follow{}).
		Select("user_being_followed_id").
		Where("user_following_id = ?", userID)
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ? OR user_id IN (?)", userID, followed).
		Order("timestamp DESC").
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// ListLikedBy retrieves the messages a user has liked, newest first
func (r *MessageRepository) ListLikedBy(ctx context.Context, userID int64) ([]*models.Message, error) {
	var messages []*models.Message
	liked := r.db.Model(&models.Like{}).
		Select("message_id").
		Where("user_id = ?", userID)
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("id IN (?)", liked).
		Order("timestamp DESC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// CountByUser returns how many messages a user has authored
func (r *MessageRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Message{}).
		Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
