package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/warblerapp/warbler/internal/models"
	"github.com/warblerapp/warbler/pkg/telemetry"
)

// currentUserKey is the gin context key holding the resolved user
const currentUserKey = "currentUser"

// traceRequests opens a span covering the request and threads it
// through the request context, so repository calls made by the handler
// are attributed to it.
func (r *Router) traceRequests(c *gin.Context) {
	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}

	ctx, span := telemetry.StartSpan(c.Request.Context(),
		c.Request.Method+" "+route,
		trace.WithAttributes(
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", route),
		))
	c.Request = c.Request.WithContext(ctx)

	c.Next()

	span.SetAttributes(attribute.Int("http.status_code", c.Writer.Status()))
	span.End()
}

// loadCurrentUser resolves the session's user id to a user row once
// per request and stores it in the request context. Handlers never
// touch the session for identity directly.
func (r *Router) loadCurrentUser(c *gin.Context) {
	id, ok := r.sessions.CurrentUserID(c.Request)
	if !ok {
		c.Next()
		return
	}

	user, err := r.users.GetByID(c.Request.Context(), id)
	if err != nil {
		r.logger.Error("Failed to resolve session user", zap.Int64("user_id", id), zap.Error(err))
		c.Next()
		return
	}
	if user == nil {
		// Stale session pointing at a deleted account
		r.sessions.ClearCurrentUser(c.Writer, c.Request)
		c.Next()
		return
	}

	c.Set(currentUserKey, user)
	c.Next()
}

// currentUser returns the request's authenticated user, or nil
func currentUser(c *gin.Context) *models.User {
	if user, ok := c.Get(currentUserKey); ok {
		return user.(*models.User)
	}
	return nil
}

// requireLogin gates a route on an authenticated session. Anonymous
// requests get a 302 back to the home page with a flashed danger
// message, never a hard error.
func (r *Router) requireLogin(c *gin.Context) {
	if currentUser(c) == nil {
		r.sessions.AddFlash(c.Writer, c.Request, "danger", "Access unauthorized.")
		c.Redirect(http.StatusFound, "/")
		c.Abort()
		return
	}
	c.Next()
}

// verifyCSRF rejects state-changing requests whose form token does not
// match the session token. Disabled via WARBLER_CSRF_ENABLED=false in
// test environments.
func (r *Router) verifyCSRF(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		c.Next()
		return
	}

	token := r.sessions.CSRFToken(c.Writer, c.Request)
	if c.PostForm("csrf_token") != token {
		c.String(http.StatusForbidden, "CSRF token missing or invalid.")
		c.Abort()
		return
	}
	c.Next()
}
