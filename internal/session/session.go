// Package session remembers the currently logged-in user between page loads.
// The record is a cached copy of the service's user, set on login or signup
// and cleared on logout; it has no other lifecycle.
package session

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"auction-web/internal/models"
)

const cookieMaxAge = 30 * 24 * 60 * 60 // seconds

// Store reads and writes the current-user record for a request. Handlers
// receive a Store explicitly; persistence is the implementation's concern.
type Store interface {
	Current(c *gin.Context) (models.User, bool)
	Set(c *gin.Context, user models.User) error
	Clear(c *gin.Context)
}

// CookieStore keeps the user record as JSON under a single fixed cookie key.
type CookieStore struct {
	name string
}

// NewCookieStore creates a store using the given cookie name.
func NewCookieStore(name string) *CookieStore {
	return &CookieStore{name: name}
}

// Current returns the logged-in user for the request. An absent, empty or
// unreadable cookie reads as "not logged in".
func (s *CookieStore) Current(c *gin.Context) (models.User, bool) {
	raw, err := c.Cookie(s.name)
	if err != nil || raw == "" {
		return models.User{}, false
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil || user.ID == "" {
		return models.User{}, false
	}
	return user, true
}

// Set stores the user record in the session cookie.
func (s *CookieStore) Set(c *gin.Context, user models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	c.SetCookie(s.name, string(data), cookieMaxAge, "/", "", false, true)
	return nil
}

// Clear removes the session cookie.
func (s *CookieStore) Clear(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     s.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
