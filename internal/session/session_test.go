package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newManager() *Manager {
	return NewManager(Options{Secret: testSecret, TTL: time.Hour})
}

func requestWith(cookies []*http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return r
}

func TestManager_IssueThenRead(t *testing.T) {
	m := newManager()

	rec := httptest.NewRecorder()
	if err := m.Issue(rec, "alice"); err != nil {
		t.Fatalf("Issue: %v", err)
	}

	s := m.Read(requestWith(rec.Result().Cookies()))
	if !s.Authenticated || s.Username != "alice" {
		t.Fatalf("session=%+v", s)
	}
}

func TestManager_NoCookie(t *testing.T) {
	s := newManager().Read(httptest.NewRequest(http.MethodGet, "/", nil))
	if s.Authenticated {
		t.Fatalf("session=%+v", s)
	}
}

func TestManager_ForeignSecretRejected(t *testing.T) {
	other := NewManager(Options{Secret: "ffffffffffffffffffffffffffffffff", TTL: time.Hour})

	rec := httptest.NewRecorder()
	if err := other.Issue(rec, "mallory"); err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if s := newManager().Read(requestWith(rec.Result().Cookies())); s.Authenticated {
		t.Fatalf("forged session accepted: %+v", s)
	}
}

func TestManager_ExpiredRejected(t *testing.T) {
	m := newManager()
	past := time.Now().Add(-2 * time.Hour)
	m.tokens.now = func() time.Time { return past }

	rec := httptest.NewRecorder()
	if err := m.Issue(rec, "alice"); err != nil {
		t.Fatalf("Issue: %v", err)
	}

	m.tokens.now = time.Now
	if s := m.Read(requestWith(rec.Result().Cookies())); s.Authenticated {
		t.Fatalf("expired session accepted: %+v", s)
	}
}

func TestManager_ClearExpiresCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	newManager().Clear(rec)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName || cookies[0].MaxAge >= 0 {
		t.Fatalf("cookies=%+v", cookies)
	}
}

func TestMiddleware_PutsSessionInContext(t *testing.T) {
	m := newManager()

	rec := httptest.NewRecorder()
	if err := m.Issue(rec, "bob"); err != nil {
		t.Fatalf("Issue: %v", err)
	}

	var got Session
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), requestWith(rec.Result().Cookies()))

	if !got.Authenticated || got.Username != "bob" {
		t.Fatalf("session=%+v", got)
	}
}

func TestFlash_PopOnce(t *testing.T) {
	m := newManager()

	rec := httptest.NewRecorder()
	m.SetFlash(rec, "Product added!")

	pop := httptest.NewRecorder()
	if got := m.PopFlash(pop, requestWith(rec.Result().Cookies())); got != "Product added!" {
		t.Fatalf("flash=%q", got)
	}

	cleared := pop.Result().Cookies()
	if len(cleared) != 1 || cleared[0].Name != FlashName || cleared[0].MaxAge >= 0 {
		t.Fatalf("flash not cleared: %+v", cleared)
	}

	if got := m.PopFlash(httptest.NewRecorder(), requestWith(nil)); got != "" {
		t.Fatalf("flash=%q want empty", got)
	}
}
