package forms

import (
	"context"
	"strings"
	"testing"

	"github.com/warblerapp/warbler/internal/models"
)

// stubLookup serves availability checks from fixed sets
type stubLookup struct {
	usernames map[string]bool
	emails    map[string]bool
}

func (s *stubLookup) GetByUsername(_ context.Context, username string) (*models.User, error) {
	if s.usernames[username] {
		return &models.User{Username: username}, nil
	}
	return nil, nil
}

func (s *stubLookup) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if s.emails[email] {
		return &models.User{Email: email}, nil
	}
	return nil, nil
}

func TestMessageFormValidate(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantField string
	}{
		{"valid", "hello world", ""},
		{"empty", "", "text"},
		{"too long", strings.Repeat("a", models.MaxMessageLength+1), "text"},
		{"at limit", strings.Repeat("a", models.MaxMessageLength), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := &MessageForm{Text: tt.text}
			errs := form.Validate()

			if tt.wantField == "" {
				if errs.Any() {
					t.Errorf("Validate() = %v, want no errors", errs)
				}
				return
			}
			if len(errs[tt.wantField]) == 0 {
				t.Errorf("Validate() = %v, want error on field %q", errs, tt.wantField)
			}
		})
	}
}

func TestUserAddFormValidate(t *testing.T) {
	lookup := &stubLookup{
		usernames: map[string]bool{"taken": true},
		emails:    map[string]bool{"taken@test.com": true},
	}

	tests := []struct {
		name       string
		form       UserAddForm
		wantFields []string
	}{
		{
			name: "valid",
			form: UserAddForm{Username: "newuser", Email: "new@test.com", Password: "secret123"},
		},
		{
			name:       "missing everything",
			form:       UserAddForm{},
			wantFields: []string{"username", "email", "password"},
		},
		{
			name:       "taken username",
			form:       UserAddForm{Username: "taken", Email: "new@test.com", Password: "secret123"},
			wantFields: []string{"username"},
		},
		{
			name:       "taken email",
			form:       UserAddForm{Username: "newuser", Email: "taken@test.com", Password: "secret123"},
			wantFields: []string{"email"},
		},
		{
			name:       "bad email syntax",
			form:       UserAddForm{Username: "newuser", Email: "not-an-email", Password: "secret123"},
			wantFields: []string{"email"},
		},
		{
			name:       "short password",
			form:       UserAddForm{Username: "newuser", Email: "new@test.com", Password: "short"},
			wantFields: []string{"password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs, err := tt.form.Validate(context.Background(), lookup)
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}

			if len(tt.wantFields) == 0 {
				if errs.Any() {
					t.Errorf("Validate() = %v, want no errors", errs)
				}
				return
			}
			for _, field := range tt.wantFields {
				if len(errs[field]) == 0 {
					t.Errorf("Validate() = %v, want error on field %q", errs, field)
				}
			}
			if len(errs) != len(tt.wantFields) {
				t.Errorf("Validate() flagged %d fields, want %d: %v", len(errs), len(tt.wantFields), errs)
			}
		})
	}
}

func TestUserAddFormAvailabilityMessage(t *testing.T) {
	lookup := &stubLookup{usernames: map[string]bool{"taken": true}, emails: map[string]bool{}}

	form := UserAddForm{Username: "taken", Email: "new@test.com", Password: "secret123"}
	errs, err := form.Validate(context.Background(), lookup)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	want := `The username "taken" is already associated with an account.`
	if len(errs["username"]) != 1 || errs["username"][0] != want {
		t.Errorf("username error = %v, want %q", errs["username"], want)
	}
}

func TestLoginFormValidate(t *testing.T) {
	form := &LoginForm{Username: "user", Password: "secret123"}
	if errs := form.Validate(); errs.Any() {
		t.Errorf("Validate() = %v, want no errors", errs)
	}

	form = &LoginForm{Username: "", Password: "short"}
	errs := form.Validate()
	if len(errs["username"]) == 0 {
		t.Error("expected error on username")
	}
	if len(errs["password"]) == 0 {
		t.Error("expected error on password")
	}
}

func TestUserEditFormValidate(t *testing.T) {
	lookup := &stubLookup{
		usernames: map[string]bool{"me": true, "taken": true},
		emails:    map[string]bool{"me@test.com": true, "taken@test.com": true},
	}
	current := &models.User{Username: "me", Email: "me@test.com"}

	// Keeping your own username and email is fine
	form := UserEditForm{Username: "me", Email: "me@test.com", Password: "secret123"}
	errs, err := form.Validate(context.Background(), lookup, current)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if errs.Any() {
		t.Errorf("Validate() = %v, want no errors for unchanged identity", errs)
	}

	// Switching to someone else's username is rejected
	form = UserEditForm{Username: "taken", Email: "me@test.com", Password: "secret123"}
	errs, err = form.Validate(context.Background(), lookup, current)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(errs["username"]) == 0 {
		t.Errorf("Validate() = %v, want error on username", errs)
	}

	// Switching to someone else's email is rejected
	form = UserEditForm{Username: "me", Email: "taken@test.com", Password: "secret123"}
	errs, err = form.Validate(context.Background(), lookup, current)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(errs["email"]) == 0 {
		t.Errorf("Validate() = %v, want error on email", errs)
	}
}
