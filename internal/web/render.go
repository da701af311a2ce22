package web

import (
	"github.com/gin-gonic/gin"
)

// render renders a page template with the ambient view data every page
// needs: the current user, pending flashes, and the CSRF token.
func (r *Router) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["CurrentUser"]; !ok {
		data["CurrentUser"] = currentUser(c)
	}
	if _, ok := data["Flashes"]; !ok {
		data["Flashes"] = r.sessions.Flashes(c.Writer, c.Request)
	}
	if r.cfg.Session.CSRFEnabled {
		data["CSRFToken"] = r.sessions.CSRFToken(c.Writer, c.Request)
	} else {
		data["CSRFToken"] = ""
	}
	c.HTML(status, name, data)
}
