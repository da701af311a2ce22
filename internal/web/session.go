package web

import (
	"encoding/gob"
	"fmt"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"

	"github.com/warblerapp/warbler/pkg/config"
)

const (
	sessionName  = "warbler-session"
	userIDKey    = "user_id"
	csrfTokenKey = "csrf_token"
)

// Flash is a one-shot message rendered on the next page view
type Flash struct {
	Category string // "danger" or "success"
	Message  string
}

func init() {
	gob.Register(Flash{})
}

// Sessions wraps the cookie session store. The session carries one
// recognized identity key (the authenticated user's id), the CSRF
// token, and pending flash messages.
type Sessions struct {
	store *sessions.CookieStore
}

// NewSessions creates a session store from configuration
func NewSessions(cfg *config.SessionConfig) *Sessions {
	store := sessions.NewCookieStore([]byte(cfg.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.MaxAge,
		HttpOnly: true,
	}
	return &Sessions{store: store}
}

func (s *Sessions) get(r *http.Request) *sessions.Session {
	// An invalid or tampered cookie yields a fresh session; the error
	// is deliberately treated as "anonymous".
	session, _ := s.store.Get(r, sessionName)
	return session
}

// CurrentUserID returns the authenticated user's id, if any
func (s *Sessions) CurrentUserID(r *http.Request) (int64, bool) {
	session := s.get(r)
	id, ok := session.Values[userIDKey].(int64)
	return id, ok
}

// SetCurrentUser records the authenticated user's id in the session
func (s *Sessions) SetCurrentUser(w http.ResponseWriter, r *http.Request, id int64) error {
	session := s.get(r)
	session.Values[userIDKey] = id
	return session.Save(r, w)
}

// ClearCurrentUser removes the identity key from the session
func (s *Sessions) ClearCurrentUser(w http.ResponseWriter, r *http.Request) error {
	session := s.get(r)
	delete(session.Values, userIDKey)
	return session.Save(r, w)
}

// AddFlash queues a message for the next rendered page
func (s *Sessions) AddFlash(w http.ResponseWriter, r *http.Request, category, message string) {
	session := s.get(r)
	session.AddFlash(Flash{Category: category, Message: message})
	session.Save(r, w)
}

// Flashes drains and returns the queued messages
func (s *Sessions) Flashes(w http.ResponseWriter, r *http.Request) []Flash {
	session := s.get(r)
	raw := session.Flashes()
	if len(raw) > 0 {
		session.Save(r, w)
	}
	flashes := make([]Flash, 0, len(raw))
	for _, f := range raw {
		if flash, ok := f.(Flash); ok {
			flashes = append(flashes, flash)
		}
	}
	return flashes
}

// CSRFToken returns the session's CSRF token, creating one on first use
func (s *Sessions) CSRFToken(w http.ResponseWriter, r *http.Request) string {
	session := s.get(r)
	if token, ok := session.Values[csrfTokenKey].(string); ok && token != "" {
		return token
	}
	token := fmt.Sprintf("%x", securecookie.GenerateRandomKey(32))
	session.Values[csrfTokenKey] = token
	session.Save(r, w)
	return token
}
