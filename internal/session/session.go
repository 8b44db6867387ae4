// Package session carries the logged-in state between the login pages and
// the dashboard. The state lives in a signed cookie; nothing is kept
// server side.
package session

import (
	"context"
	"net/http"
	"strings"
	"time"
)

const (
	CookieName = "dash_session"
	FlashName  = "dash_flash"

	flashMaxAge = 60
)

// Session is what a request knows about its user.
type Session struct {
	Authenticated bool
	Username      string
}

type Options struct {
	Secret string
	TTL    time.Duration
	Secure bool
}

type Manager struct {
	tokens *tokenMaker
	ttl    time.Duration
	secure bool
}

func NewManager(opts Options) *Manager {
	return &Manager{
		tokens: &tokenMaker{secret: []byte(opts.Secret), now: time.Now},
		ttl:    opts.TTL,
		secure: opts.Secure,
	}
}

// Issue logs username in by setting the session cookie.
func (m *Manager) Issue(w http.ResponseWriter, username string) error {
	tok, err := m.tokens.issue(username, m.ttl)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    tok,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear logs the user out.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Read returns the session carried by r. A missing, expired or forged
// cookie yields the zero Session.
func (m *Manager) Read(r *http.Request) Session {
	ck, err := r.Cookie(CookieName)
	if err != nil || ck.Value == "" {
		return Session{}
	}

	c, err := m.tokens.parse(ck.Value)
	if err != nil || !c.LoggedIn || strings.TrimSpace(c.Username) == "" {
		return Session{}
	}

	return Session{Authenticated: true, Username: c.Username}
}

func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), m.Read(r))))
	})
}

type ctxKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) Session {
	s, _ := ctx.Value(ctxKey{}).(Session)
	return s
}
