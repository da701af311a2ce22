package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/warblerapp/warbler/internal/auth"
	"github.com/warblerapp/warbler/internal/forms"
)

// GET /signup
func (r *Router) showSignup(c *gin.Context) {
	r.render(c, http.StatusOK, "signup", gin.H{
		"Form":   &forms.UserAddForm{},
		"Errors": forms.Errors{},
	})
}

// POST /signup
func (r *Router) handleSignup(c *gin.Context) {
	var form forms.UserAddForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "Bad request.")
		return
	}

	errs, err := form.Validate(c.Request.Context(), r.users)
	if err != nil {
		r.serverError(c, err)
		return
	}
	if errs.Any() {
		r.render(c, http.StatusOK, "signup", gin.H{"Form": &form, "Errors": errs})
		return
	}

	user, err := r.auth.Signup(c.Request.Context(), form.Username, form.Email, form.Password, form.ImageURL)
	if err != nil {
		// The unique constraint closed a check-then-insert race; treat
		// it like the validation rejection it would have been.
		if errors.Is(err, auth.ErrDuplicate) {
			errs.Add("username", fmt.Sprintf("The username %q is already associated with an account.", form.Username))
			r.render(c, http.StatusOK, "signup", gin.H{"Form": &form, "Errors": errs})
			return
		}
		r.serverError(c, err)
		return
	}

	if err := r.sessions.SetCurrentUser(c.Writer, c.Request, user.ID); err != nil {
		r.serverError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// GET /login
func (r *Router) showLogin(c *gin.Context) {
	r.render(c, http.StatusOK, "login", gin.H{
		"Form":   &forms.LoginForm{},
		"Errors": forms.Errors{},
	})
}

// POST /login
func (r *Router) handleLogin(c *gin.Context) {
	var form forms.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "Bad request.")
		return
	}

	if errs := form.Validate(); errs.Any() {
		r.render(c, http.StatusOK, "login", gin.H{"Form": &form, "Errors": errs})
		return
	}

	user, err := r.auth.Authenticate(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		r.serverError(c, err)
		return
	}
	if user == nil {
		r.sessions.AddFlash(c.Writer, c.Request, "danger", "Invalid credentials.")
		r.render(c, http.StatusOK, "login", gin.H{"Form": &form, "Errors": forms.Errors{}})
		return
	}

	if err := r.sessions.SetCurrentUser(c.Writer, c.Request, user.ID); err != nil {
		r.serverError(c, err)
		return
	}
	r.sessions.AddFlash(c.Writer, c.Request, "success", fmt.Sprintf("Hello, %s!", user.Username))
	c.Redirect(http.StatusFound, "/")
}

// GET /logout
func (r *Router) handleLogout(c *gin.Context) {
	if err := r.sessions.ClearCurrentUser(c.Writer, c.Request); err != nil {
		r.serverError(c, err)
		return
	}
	r.sessions.AddFlash(c.Writer, c.Request, "success", "You have been logged out.")
	c.Redirect(http.StatusFound, "/login")
}

// serverError logs an unexpected failure and answers with a 500 page.
// Nothing here is fatal to the process; the next request starts clean.
func (r *Router) serverError(c *gin.Context, err error) {
	r.logger.Error("Request failed",
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Error(err),
	)
	c.String(http.StatusInternalServerError, "Something went wrong.")
	c.Abort()
}
