package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/warblerapp/warbler/internal/db"
	"github.com/warblerapp/warbler/internal/forms"
	"github.com/warblerapp/warbler/internal/models"
)

// paramID parses the :id route parameter
func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// notFound renders the 404 page
func (r *Router) notFound(c *gin.Context) {
	r.render(c, http.StatusNotFound, "not_found", gin.H{})
}

// userByParam loads the user addressed by :id, rendering 404 when the
// id is malformed or no such row exists.
func (r *Router) userByParam(c *gin.Context) *models.User {
	id, ok := paramID(c)
	if !ok {
		r.notFound(c)
		return nil
	}
	user, err := r.users.GetByID(c.Request.Context(), id)
	if err != nil {
		r.serverError(c, err)
		return nil
	}
	if user == nil {
		r.notFound(c)
		return nil
	}
	return user
}

// GET /users
func (r *Router) listUsers(c *gin.Context) {
	users, err := r.users.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		r.serverError(c, err)
		return
	}
	r.render(c, http.StatusOK, "users", gin.H{"Users": users})
}

// GET /users/:id
func (r *Router) showUser(c *gin.Context) {
	user := r.userByParam(c)
	if user == nil {
		return
	}

	messages, err := r.messages.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		r.serverError(c, err)
		return
	}
	stats, err := r.profileStats(c.Request.Context(), user.ID)
	if err != nil {
		r.serverError(c, err)
		return
	}

	var isFollowing bool
	if viewer := currentUser(c); viewer != nil && viewer.ID != user.ID {
		isFollowing, err = r.follows.Exists(c.Request.Context(), viewer.ID, user.ID)
		if err != nil {
			r.serverError(c, err)
			return
		}
	}

	r.render(c, http.StatusOK, "user_detail", gin.H{
		"User":        user,
		"Messages":    messages,
		"Stats":       stats,
		"IsFollowing": isFollowing,
	})
}

// GET /users/:id/following
func (r *Router) showFollowing(c *gin.Context) {
	user := r.userByParam(c)
	if user == nil {
		return
	}
	following, err := r.follows.Following(c.Request.Context(), user.ID)
	if err != nil {
		r.serverError(c, err)
		return
	}
	r.render(c, http.StatusOK, "following", gin.H{"User": user, "Users": following})
}

// GET /users/:id/followers
func (r *Router) showFollowers(c *gin.Context) {
	user := r.userByParam(c)
	if user == nil {
		return
	}
	followers, err := r.follows.Followers(c.Request.Context(), user.ID)
	if err != nil {
		r.serverError(c, err)
		return
	}
	r.render(c, http.StatusOK, "followers", gin.H{"User": user, "Users": followers})
}

// GET /users/:id/likes
func (r *Router) showLikes(c *gin.Context) {
	user := r.userByParam(c)
	if user == nil {
		return
	}
	liked, err := r.messages.ListLikedBy(c.Request.Context(), user.ID)
	if err != nil {
		r.serverError(c, err)
		return
	}
	r.render(c, http.StatusOK, "likes", gin.H{"User": user, "Messages": liked})
}

// POST /users/follow/:id
func (r *Router) handleFollow(c *gin.Context) {
	viewer := currentUser(c)
	target := r.userByParam(c)
	if target == nil {
		return
	}
	if target.ID == viewer.ID {
		r.sessions.AddFlash(c.Writer, c.Request, "danger", "You cannot follow yourself.")
		c.Redirect(http.StatusFound, fmt.Sprintf("/users/%d", viewer.ID))
		return
	}

	// A duplicate edge means the state is already what was asked for.
	if err := r.follows.Create(c.Request.Context(), viewer.ID, target.ID); err != nil &&
		!errors.Is(err, db.ErrDuplicate) {
		r.serverError(c, err)
		return
	}
	r.invalidateStats(viewer.ID, target.ID)

	c.Redirect(http.StatusFound, fmt.Sprintf("/users/%d/following", viewer.ID))
}

// POST /users/stop-following/:id
func (r *Router) handleStopFollowing(c *gin.Context) {
	viewer := currentUser(c)
	target := r.userByParam(c)
	if target == nil {
		return
	}

	if err := r.follows.Delete(c.Request.Context(), viewer.ID, target.ID); err != nil {
		r.serverError(c, err)
		return
	}
	r.invalidateStats(viewer.ID, target.ID)

	c.Redirect(http.StatusFound, fmt.Sprintf("/users/%d/following", viewer.ID))
}

// GET /users/profile
func (r *Router) showEditProfile(c *gin.Context) {
	user := currentUser(c)
	r.render(c, http.StatusOK, "edit_profile", gin.H{
		"Form": &forms.UserEditForm{
			Username:       user.Username,
			Email:          user.Email,
			ImageURL:       user.ImageURL,
			HeaderImageURL: user.HeaderImageURL,
			Bio:            user.Bio,
		},
		"Errors": forms.Errors{},
	})
}

// POST /users/profile
func (r *Router) handleEditProfile(c *gin.Context) {
	user := currentUser(c)

	var form forms.UserEditForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "Bad request.")
		return
	}

	errs, err := form.Validate(c.Request.Context(), r.users, user)
	if err != nil {
		r.serverError(c, err)
		return
	}
	if errs.Any() {
		r.render(c, http.StatusOK, "edit_profile", gin.H{"Form": &form, "Errors": errs})
		return
	}

	// Edits apply only after the password re-authenticates the user
	if !r.auth.VerifyPassword(user, form.Password) {
		r.sessions.AddFlash(c.Writer, c.Request, "danger", "Access unauthorized.")
		c.Redirect(http.StatusFound, "/")
		return
	}

	user.Username = form.Username
	user.Email = form.Email
	user.Bio = form.Bio
	if form.ImageURL != "" {
		user.ImageURL = form.ImageURL
	}
	if form.HeaderImageURL != "" {
		user.HeaderImageURL = form.HeaderImageURL
	}

	if err := r.users.Update(c.Request.Context(), user); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			errs.Add("username", "That username or email is already associated with an account.")
			r.render(c, http.StatusOK, "edit_profile", gin.H{"Form": &form, "Errors": errs})
			return
		}
		r.serverError(c, err)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/users/%d", user.ID))
}

// POST /users/delete
func (r *Router) handleDeleteUser(c *gin.Context) {
	user := currentUser(c)

	if err := r.users.Delete(c.Request.Context(), user.ID); err != nil {
		r.serverError(c, err)
		return
	}
	r.invalidateStats(user.ID)

	if err := r.sessions.ClearCurrentUser(c.Writer, c.Request); err != nil {
		r.serverError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/signup")
}
