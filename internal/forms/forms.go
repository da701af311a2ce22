package forms

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/warblerapp/warbler/internal/models"
)

// validate is the shared validator instance (the same engine gin uses
// for binding validation).
var validate = validator.New()

// Errors maps a field name to its human-readable validation messages.
// An empty map means the submission is acceptable.
type Errors map[string][]string

// Add records a message for a field
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Any reports whether any field failed validation
func (e Errors) Any() bool {
	return len(e) > 0
}

// UserLookup is the read-only user access the availability validators
// need. *db.UserRepository satisfies it.
type UserLookup interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// fieldOK runs a validator rule against a single value
func fieldOK(value, rule string) bool {
	return validate.Var(value, rule) == nil
}

// MessageForm is the schema for composing a message
type MessageForm struct {
	Text string `form:"text"`
}

// Validate checks the message form
func (f *MessageForm) Validate() Errors {
	errs := Errors{}
	if !fieldOK(f.Text, "required") {
		errs.Add("text", "This field is required.")
	} else if !fieldOK(f.Text, fmt.Sprintf("max=%d", models.MaxMessageLength)) {
		errs.Add("text", fmt.Sprintf("Message must be at most %d characters long.", models.MaxMessageLength))
	}
	return errs
}

// UserAddForm is the schema for signing up
type UserAddForm struct {
	Username string `form:"username"`
	Email    string `form:"email"`
	Password string `form:"password"`
	ImageURL string `form:"image_url"`
}

// Validate checks the signup form, including username and email
// availability. The storage-layer unique constraints remain the
// authoritative check at insert time.
func (f *UserAddForm) Validate(ctx context.Context, users UserLookup) (Errors, error) {
	errs := Errors{}

	if !fieldOK(f.Username, "required") {
		errs.Add("username", "This field is required.")
	} else {
		existing, err := users.GetByUsername(ctx, f.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			errs.Add("username", fmt.Sprintf("The username %q is already associated with an account.", f.Username))
		}
	}

	if !fieldOK(f.Email, "required") {
		errs.Add("email", "This field is required.")
	} else if !fieldOK(f.Email, "email") {
		errs.Add("email", "Invalid email address.")
	} else {
		existing, err := users.GetByEmail(ctx, f.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			errs.Add("email", fmt.Sprintf("The email address %q is already associated with an account.", f.Email))
		}
	}

	if !fieldOK(f.Password, "min=6") {
		errs.Add("password", "Password must be at least 6 characters long.")
	}

	return errs, nil
}

// LoginForm is the schema for logging in
type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// Validate checks the login form
func (f *LoginForm) Validate() Errors {
	errs := Errors{}
	if !fieldOK(f.Username, "required") {
		errs.Add("username", "This field is required.")
	}
	if !fieldOK(f.Password, "min=6") {
		errs.Add("password", "Password must be at least 6 characters long.")
	}
	return errs
}

// UserEditForm is the schema for editing a profile. The password field
// re-authenticates the user before any edit is applied.
type UserEditForm struct {
	Username       string `form:"username"`
	Email          string `form:"email"`
	ImageURL       string `form:"image_url"`
	HeaderImageURL string `form:"header_image_url"`
	Bio            string `form:"bio"`
	Password       string `form:"password"`
}

// Validate checks the edit form. Availability checks skip the editing
// user's own row so an unchanged username or email still validates.
func (f *UserEditForm) Validate(ctx context.Context, users UserLookup, current *models.User) (Errors, error) {
	errs := Errors{}

	if !fieldOK(f.Username, "required") {
		errs.Add("username", "This field is required.")
	} else if f.Username != current.Username {
		existing, err := users.GetByUsername(ctx, f.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			errs.Add("username", fmt.Sprintf("The username %q is already associated with an account.", f.Username))
		}
	}

	if !fieldOK(f.Email, "required") {
		errs.Add("email", "This field is required.")
	} else if !fieldOK(f.Email, "email") {
		errs.Add("email", "Invalid email address.")
	} else if f.Email != current.Email {
		existing, err := users.GetByEmail(ctx, f.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			errs.Add("email", fmt.Sprintf("The email address %q is already associated with an account.", f.Email))
		}
	}

	if !fieldOK(f.Password, "min=6") {
		errs.Add("password", "Password must be at least 6 characters long.")
	}

	return errs, nil
}
