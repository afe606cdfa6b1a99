package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	sessionName = "techstore-session"

	sessionKeyCustomerID = "customerID"
	sessionKeyName       = "customerName"

	flashSuccess = "success"
	flashError   = "error"
)

// Sessions wraps the cookie store used by the storefront. The customer ID is
// kept as a string so the store never needs gob registration for uuid.UUID.
type Sessions struct {
	store *sessions.CookieStore
}

func NewSessions(secret string) *Sessions {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Sessions{store: store}
}

func (s *Sessions) get(c *gin.Context) *sessions.Session {
	// Get never fails for a cookie store beyond returning a fresh session.
	session, _ := s.store.Get(c.Request, sessionName)
	return session
}

func (s *Sessions) SignIn(c *gin.Context, customerID uuid.UUID, name string) error {
	session := s.get(c)
	session.Values[sessionKeyCustomerID] = customerID.String()
	session.Values[sessionKeyName] = name
	return session.Save(c.Request, c.Writer)
}

func (s *Sessions) SignOut(c *gin.Context) error {
	session := s.get(c)
	session.Options.MaxAge = -1
	return session.Save(c.Request, c.Writer)
}

// CustomerID reports the signed-in customer, if any.
func (s *Sessions) CustomerID(c *gin.Context) (uuid.UUID, bool) {
	raw, ok := s.get(c).Values[sessionKeyCustomerID].(string)
	if !ok {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func (s *Sessions) CustomerName(c *gin.Context) string {
	name, _ := s.get(c).Values[sessionKeyName].(string)
	return name
}

func (s *Sessions) Flash(c *gin.Context, kind, message string) {
	session := s.get(c)
	session.AddFlash(message, kind)
	_ = session.Save(c.Request, c.Writer)
}

// Flashes drains pending flash messages; draining requires a save.
func (s *Sessions) Flashes(c *gin.Context) (success, errors []string) {
	session := s.get(c)
	success = flashStrings(session.Flashes(flashSuccess))
	errors = flashStrings(session.Flashes(flashError))
	_ = session.Save(c.Request, c.Writer)
	return success, errors
}

func flashStrings(flashes []interface{}) []string {
	out := make([]string, 0, len(flashes))
	for _, f := range flashes {
		if s, ok := f.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
