package db

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/warblerapp/warbler/internal/models"
)

// UserRepository provides user-related database operations
type UserRepository struct {
	*Repository
}

// NewUserRepository creates a new user repository
func NewUserRepository(repo *Repository) *UserRepository {
	return &UserRepository{Repository: repo}
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByUsername retrieves a user by exact username match
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by exact email match
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// likeEscaper neutralizes LIKE metacharacters so a query is always a
// literal substring match
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// List retrieves all users, optionally filtered by a username substring
func (r *UserRepository) List(ctx context.Context, query string) ([]*models.User, error) {
	var users []*models.User
	tx := r.db.WithContext(ctx).Order("username ASC")
	if query != "" {
		tx = tx.Where(`username LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(query)+"%")
	}
	if err := tx.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Create creates a new user. A uniqueness conflict on username or
// email is reported as ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return translateCreateError(r.db.WithContext(ctx).Create(user).Error)
}

// Update updates a user's profile fields
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	return translateCreateError(r.db.WithContext(ctx).Save(user).Error)
}

// Delete removes a user and everything owned by it: messages, likes on
// those messages, likes made by the user, and both directions of
// follow edges. Runs in one transaction so no orphaned edges survive a
// partial failure.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	return r.Transaction(ctx, func(tx *Repository) error {
		// Likes by others on this user's messages
		if err := tx.db.Where(
			"message_id IN (?)",
			tx.db.Model(&models.Message{}).Select("id").Where("user_id = ?", id),
		).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.db.Where("user_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.db.Where("user_being_followed_id = ? OR user_following_id = ?", id, id).
			Delete(&models.Follow{}).Error; err != nil {
			return err
		}
		if err := tx.db.Where("user_id = ?", id).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		return tx.db.Delete(&models.User{}, id).Error
	})
}
