package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
)

const (
	// CookieName is the session cookie name.
	CookieName = "pawsitive.sid"

	userIDKey = "user_id"
)

// Options configures the session cookie.
type Options struct {
	TTL    time.Duration
	Secure bool
}

// CookieOptions returns cookie attributes: HttpOnly, SameSite=Lax, Secure as configured.
func CookieOptions(opts Options) sessions.Options {
	return sessions.Options{
		Path:     "/",
		MaxAge:   int(opts.TTL.Seconds()),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// regenerator is implemented by stores that can rotate session ids.
type regenerator interface {
	Regenerate(r *http.Request, sess *sessions.Session) error
}

// Manager starts, reads and destroys user sessions.
type Manager struct {
	store sessions.Store
}

// NewManager creates a Manager over store.
func NewManager(store sessions.Store) *Manager {
	return &Manager{store: store}
}

// UserID returns the user id bound to the request's session, or "" when there is none.
func (m *Manager) UserID(r *http.Request) (string, error) {
	sess, err := m.store.Get(r, CookieName)
	if err != nil {
		return "", fmt.Errorf("failed to load session: %w", err)
	}
	id, _ := sess.Values[userIDKey].(string)
	return id, nil
}

// Start binds userID to a fresh session and writes the cookie.
func (m *Manager) Start(w http.ResponseWriter, r *http.Request, userID string) error {
	if userID == "" {
		return errors.New("user id is required")
	}

	// A failed read of the old session still yields a usable new one.
	sess, err := m.store.Get(r, CookieName)
	if err != nil && sess == nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	for k := range sess.Values {
		delete(sess.Values, k)
	}
	if rg, ok := m.store.(regenerator); ok {
		if err := rg.Regenerate(r, sess); err != nil {
			return err
		}
	}

	sess.Values[userIDKey] = userID
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Destroy removes the session and expires the cookie.
func (m *Manager) Destroy(w http.ResponseWriter, r *http.Request) error {
	sess, err := m.store.Get(r, CookieName)
	if err != nil && sess == nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	sess.Options.MaxAge = -1
	for k := range sess.Values {
		delete(sess.Values, k)
	}
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}
