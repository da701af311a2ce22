package web

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/warblerapp/warbler/internal/db"
	"github.com/warblerapp/warbler/internal/forms"
	"github.com/warblerapp/warbler/internal/models"
)

// messageByParam loads the message addressed by :id, rendering 404
// when the id is malformed or no such row exists.
func (r *Router) messageByParam(c *gin.Context) *models.Message {
	id, ok := paramID(c)
	if !ok {
		r.notFound(c)
		return nil
	}
	message, err := r.messages.GetByID(c.Request.Context(), id)
	if err != nil {
		r.serverError(c, err)
		return nil
	}
	if message == nil {
		r.notFound(c)
		return nil
	}
	return message
}

// GET /messages/new
func (r *Router) showNewMessage(c *gin.Context) {
	r.render(c, http.StatusOK, "message_new", gin.H{
		"Form":   &forms.MessageForm{},
		"Errors": forms.Errors{},
	})
}

// POST /messages/new
func (r *Router) handleNewMessage(c *gin.Context) {
	user := currentUser(c)

	var form forms.MessageForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "Bad request.")
		return
	}

	if errs := form.Validate(); errs.Any() {
		r.render(c, http.StatusOK, "message_new", gin.H{"Form": &form, "Errors": errs})
		return
	}

	message := &models.Message{
		Text:   form.Text,
		UserID: user.ID,
	}
	if err := r.messages.Create(c.Request.Context(), message); err != nil {
		r.serverError(c, err)
		return
	}
	r.invalidateStats(user.ID)

	c.Redirect(http.StatusFound, fmt.Sprintf("/users/%d", user.ID))
}

// GET /messages/:id
func (r *Router) showMessage(c *gin.Context) {
	message := r.messageByParam(c)
	if message == nil {
		return
	}

	likeCount, err := r.likes.CountByMessage(c.Request.Context(), message.ID)
	if err != nil {
		r.serverError(c, err)
		return
	}

	r.render(c, http.StatusOK, "message_detail", gin.H{
		"Message":   message,
		"LikeCount": likeCount,
	})
}

// POST /messages/:id/delete
func (r *Router) handleDeleteMessage(c *gin.Context) {
	user := currentUser(c)
	message := r.messageByParam(c)
	if message == nil {
		return
	}

	// Only the author may delete a message
	if message.UserID != user.ID {
		r.sessions.AddFlash(c.Writer, c.Request, "danger", "Access unauthorized.")
		c.Redirect(http.StatusFound, "/")
		return
	}

	if err := r.messages.Delete(c.Request.Context(), message.ID); err != nil {
		r.serverError(c, err)
		return
	}
	r.invalidateStats(user.ID)

	c.Redirect(http.StatusFound, fmt.Sprintf("/users/%d", user.ID))
}

// POST /messages/:id/like
func (r *Router) handleToggleLike(c *gin.Context) {
	user := currentUser(c)
	message := r.messageByParam(c)
	if message == nil {
		return
	}

	if message.UserID == user.ID {
		r.sessions.AddFlash(c.Writer, c.Request, "danger", "You cannot like your own warble.")
		c.Redirect(http.StatusFound, "/")
		return
	}

	liked, err := r.likes.Exists(c.Request.Context(), user.ID, message.ID)
	if err != nil {
		r.serverError(c, err)
		return
	}
	if liked {
		err = r.likes.Delete(c.Request.Context(), user.ID, message.ID)
	} else {
		err = r.likes.Create(c.Request.Context(), user.ID, message.ID)
		if errors.Is(err, db.ErrDuplicate) {
			// Raced with another like from the same user; state already correct
			err = nil
		}
	}
	if err != nil {
		r.serverError(c, err)
		return
	}
	r.invalidateStats(user.ID, message.UserID)

	c.Redirect(http.StatusFound, refererPath(c))
}

// refererPath returns the Referer's path when it points at this site,
// and "/" otherwise. Redirect targets never leave the site.
func refererPath(c *gin.Context) string {
	ref, err := url.Parse(c.Request.Referer())
	if err != nil {
		return "/"
	}
	if ref.Host != "" && ref.Host != c.Request.Host {
		return "/"
	}
	if !strings.HasPrefix(ref.Path, "/") {
		return "/"
	}
	target := ref.Path
	if ref.RawQuery != "" {
		target += "?" + ref.RawQuery
	}
	return target
}
