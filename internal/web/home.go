package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// timelineLimit bounds how many messages the home timeline shows
const timelineLimit = 100

// GET /
func (r *Router) showHome(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		r.render(c, http.StatusOK, "home_anon", gin.H{})
		return
	}

	messages, err := r.messages.Timeline(c.Request.Context(), user.ID, timelineLimit)
	if err != nil {
		r.serverError(c, err)
		return
	}
	r.render(c, http.StatusOK, "home", gin.H{"Messages": messages})
}
