package auth

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/warblerapp/warbler/internal/db"
	"github.com/warblerapp/warbler/internal/models"
	"github.com/warblerapp/warbler/pkg/logging"
)

// ErrDuplicate is returned by Signup when the username or email is
// already taken at insert time. The storage constraint is the
// authoritative check; form validation only catches the common case.
var ErrDuplicate = db.ErrDuplicate

// Service implements account creation and credential verification
type Service struct {
	users   *db.UserRepository
	follows *db.FollowRepository
	logger  *zap.Logger
}

// NewService creates a new auth service
func NewService(repo *db.Repository) *Service {
	return &Service{
		users:   db.NewUserRepository(repo),
		follows: db.NewFollowRepository(repo),
		logger:  logging.GetLogger().With(zap.String("component", "auth")),
	}
}

// Signup hashes the plaintext password and creates the user row. A
// storage-level uniqueness conflict is returned as ErrDuplicate, never
// a partially constructed user.
func (s *Service) Signup(ctx context.Context, username, email, password, imageURL string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	if imageURL == "" {
		imageURL = models.DefaultImageURL
	}

	user := &models.User{
		Username:       username,
		Email:          email,
		Password:       string(hash),
		ImageURL:       imageURL,
		HeaderImageURL: models.DefaultHeaderImageURL,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	s.logger.Info("User created", zap.Int64("user_id", user.ID), zap.String("username", username))
	return user, nil
}

// Authenticate looks up the user by exact username and verifies the
// supplied plaintext against the stored hash. An unknown username or a
// wrong password returns (nil, nil): an expected negative result, not
// an error.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, nil
	}
	return user, nil
}

// VerifyPassword checks a plaintext password against a user's stored hash
func (s *Service) VerifyPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
}

// IsFollowing reports whether user follows other
func (s *Service) IsFollowing(ctx context.Context, user, other *models.User) (bool, error) {
	return s.follows.Exists(ctx, user.ID, other.ID)
}

// IsFollowedBy reports whether other follows user
func (s *Service) IsFollowedBy(ctx context.Context, user, other *models.User) (bool, error) {
	return s.follows.Exists(ctx, other.ID, user.ID)
}
