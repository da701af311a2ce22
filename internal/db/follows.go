package db

import (
	"context"

	"github.com/warblerapp/warbler/internal/models"
)

// FollowRepository provides follow-edge database operations
type FollowRepository struct {
	*Repository
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(repo *Repository) *FollowRepository {
	return &FollowRepository{Repository: repo}
}

// Create inserts a follow edge. An existing identical edge is reported
// as ErrDuplicate (the composite primary key rejects it).
func (r *FollowRepository) Create(ctx context.Context, followerID, followedID int64) error {
	follow := models.Follow{
		UserBeingFollowedID: followedID,
		UserFollowingID:     followerID,
	}
	return translateCreateError(r.db.WithContext(ctx).Create(&follow).Error)
}

// Delete removes a follow edge if present
func (r *FollowRepository) Delete(ctx context.Context, followerID, followedID int64) error {
	return r.db.WithContext(ctx).
		Where("user_following_id = ? AND user_being_followed_id = ?", followerID, followedID).
		Delete(&models.Follow{}).Error
}

// Exists reports whether followerID follows followedID
func (r *FollowRepository) Exists(ctx context.Context, followerID, followedID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("user_following_id = ? AND user_being_followed_id = ?", followerID, followedID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Following retrieves the users that userID follows
func (r *FollowRepository) Following(ctx context.Context, userID int64) ([]*models.User, error) {
	var users []*models.User
	followed := r.db.Model(&models.Follow{}).
		Select("user_being_followed_id").
		Where("user_following_id = ?", userID)
	if err := r.db.WithContext(ctx).
		Where("id IN (?)", followed).
		Order("username ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Followers retrieves the users following userID
func (r *FollowRepository) Followers(ctx context.Context, userID int64) ([]*models.User, error) {
	var users []*models.User
	following := r.db.Model(&models.Follow{}).
		Select("user_following_id").
		Where("user_being_followed_id = ?", userID)
	if err := r.db.WithContext(ctx).
		Where("id IN (?)", following).
		Order("username ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CountFollowing returns how many users userID follows
func (r *FollowRepository) CountFollowing(ctx context.Context, userID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("user_following_id = ?", userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountFollowers returns how many users follow userID
func (r *FollowRepository) CountFollowers(ctx context.Context, userID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("user_being_followed_id = ?", userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
