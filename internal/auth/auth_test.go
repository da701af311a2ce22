package auth

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"

	"github.com/warblerapp/warbler/internal/db"
	"github.com/warblerapp/warbler/internal/models"
)

func setupService(t *testing.T) (*Service, *db.Repository) {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "warbler-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	tmpFile.Close()

	database, err := db.Open(sqlite.Open(tmpFile.Name()), "ERROR")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := database.Migrate(); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		database.Close()
		os.Remove(tmpFile.Name())
	})

	repo := db.NewRepository(database.DB)
	return NewService(repo), repo
}

func TestSignupHashesPassword(t *testing.T) {
	service, _ := setupService(t)
	ctx := context.Background()

	user, err := service.Signup(ctx, "testuser", "test@test.com", "testpassword", "")
	if err != nil {
		t.Fatalf("Signup() error = %v", err)
	}

	if user.Password == "testpassword" {
		t.Error("stored password equals plaintext")
	}
	if !strings.HasPrefix(user.Password, "$2") {
		t.Errorf("stored password %q is not a bcrypt hash", user.Password)
	}
	if user.ImageURL != models.DefaultImageURL {
		t.Errorf("ImageURL = %q, want default %q", user.ImageURL, models.DefaultImageURL)
	}
}

func TestSignupDuplicateUsername(t *testing.T) {
	service, repo := setupService(t)
	users := db.NewUserRepository(repo)
	ctx := context.Background()

	if _, err := service.Signup(ctx, "username", "test@test.com", "testpassword", ""); err != nil {
		t.Fatalf("Signup() error = %v", err)
	}

	_, err := service.Signup(ctx, "username", "test1@test.com", "test1password", "")
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("Signup() with taken username = %v, want ErrDuplicate", err)
	}

	// No second row: the rejected attempt's email resolves to nothing
	ghost, err := users.GetByEmail(ctx, "test1@test.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if ghost != nil {
		t.Errorf("GetByEmail() after rejected signup = %v, want nil", ghost)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	service, repo := setupService(t)
	users := db.NewUserRepository(repo)
	ctx := context.Background()

	if _, err := service.Signup(ctx, "username", "test@test.com", "testpassword", ""); err != nil {
		t.Fatalf("Signup() error = %v", err)
	}

	_, err := service.Signup(ctx, "username1", "test@test.com", "test1password", "")
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("Signup() with taken email = %v, want ErrDuplicate", err)
	}

	ghost, err := users.GetByUsername(ctx, "username1")
	if err != nil {
		t.Fatalf("GetByUsername() error = %v", err)
	}
	if ghost != nil {
		t.Errorf("GetByUsername() after rejected signup = %v, want nil", ghost)
	}
}

func TestAuthenticate(t *testing.T) {
	service, _ := setupService(t)
	ctx := context.Background()

	created, err := service.Signup(ctx, "username", "test@test.com", "testpassword", "")
	if err != nil {
		t.Fatalf("Signup() error = %v", err)
	}

	tests := []struct {
		name     string
		username string
		password string
		wantUser bool
	}{
		{"valid credentials", "username", "testpassword", true},
		{"wrong password", "username", "wrongpassword", false},
		{"unknown username", "wrongusername", "testpassword", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := service.Authenticate(ctx, tt.username, tt.password)
			if err != nil {
				t.Fatalf("Authenticate() error = %v, negatives must not error", err)
			}
			if tt.wantUser {
				if user == nil || user.ID != created.ID {
					t.Errorf("Authenticate() = %v, want user %d", user, created.ID)
				}
			} else if user != nil {
				t.Errorf("Authenticate() = %v, want nil", user)
			}
		})
	}
}

func TestIsFollowing(t *testing.T) {
	service, repo := setupService(t)
	follows := db.NewFollowRepository(repo)
	ctx := context.Background()

	u1, err := service.Signup(ctx, "testuser1", "test1@test.com", "testpassword", "")
	if err != nil {
		t.Fatal(err)
	}
	u2, err := service.Signup(ctx, "testuser2", "test2@test.com", "testpassword", "")
	if err != nil {
		t.Fatal(err)
	}

	// No edge yet
	if ok, _ := service.IsFollowing(ctx, u1, u2); ok {
		t.Error("IsFollowing() = true before any follow")
	}
	if ok, _ := service.IsFollowedBy(ctx, u2, u1); ok {
		t.Error("IsFollowedBy() = true before any follow")
	}

	if err := follows.Create(ctx, u1.ID, u2.ID); err != nil {
		t.Fatalf("Create() follow error = %v", err)
	}

	if ok, _ := service.IsFollowing(ctx, u1, u2); !ok {
		t.Error("IsFollowing(u1, u2) = false after follow")
	}
	if ok, _ := service.IsFollowedBy(ctx, u2, u1); !ok {
		t.Error("IsFollowedBy(u2, u1) = false after follow")
	}
	if ok, _ := service.IsFollowing(ctx, u2, u1); ok {
		t.Error("IsFollowing(u2, u1) = true, edges are directed")
	}
}
