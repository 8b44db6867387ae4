package dashboard_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"ProductDashboard/internal/auth"
	"ProductDashboard/internal/catalog"
	"ProductDashboard/internal/dashboard"
	"ProductDashboard/internal/session"
	"ProductDashboard/internal/view"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type app struct {
	h        http.Handler
	store    catalog.Store
	users    *auth.MemStore
	sessions *session.Manager
	registry *prometheus.Registry
	metrics  *dashboard.Metrics
}

func newApp(t *testing.T, store catalog.Store) *app {
	t.Helper()

	sessions := session.NewManager(session.Options{Secret: testSecret, TTL: time.Hour})
	views := view.MustNew()
	users := auth.NewFastMemStore()
	reg := prometheus.NewRegistry()
	metrics := dashboard.NewMetrics(reg)

	s := &dashboard.Server{
		Log:      zap.NewNop(),
		Store:    store,
		Sessions: sessions,
		Views:    views,
		Metrics:  metrics,
	}
	a := &auth.Server{
		Log:              zap.NewNop(),
		Users:            users,
		Sessions:         sessions,
		Views:            views,
		LoginLimitPerMin: 3,
	}

	h := dashboard.NewHandler(s, a, dashboard.HTTPDeps{
		Log:            zap.NewNop(),
		Service:        "dashboard",
		Registry:       reg,
		MetricsEnabled: true,
		MetricsToken:   "metrics-token",
	})

	return &app{h: h, store: store, users: users, sessions: sessions, registry: reg, metrics: metrics}
}

// login returns the cookies of a logged-in browser for username.
func (a *app) login(t *testing.T, username string) []*http.Cookie {
	t.Helper()

	rec := httptest.NewRecorder()
	if err := a.sessions.Issue(rec, username); err != nil {
		t.Fatalf("issue session: %v", err)
	}
	return rec.Result().Cookies()
}

func (a *app) get(t *testing.T, target string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	a.h.ServeHTTP(rec, req)
	return rec
}

func (a *app) post(t *testing.T, target string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	a.h.ServeHTTP(rec, req)
	return rec
}

func (a *app) products(t *testing.T) catalog.Catalog {
	t.Helper()

	c, err := a.store.Load(context.Background())
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return c
}

func productForm(id, name, price, description string) url.Values {
	return url.Values{
		"id":          {id},
		"name":        {name},
		"price":       {price},
		"description": {description},
	}
}

func wantRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status=%d want=%d body=%s", rec.Code, http.StatusSeeOther, rec.Body.String())
	}
	if got := rec.Header().Get("Location"); got != location {
		t.Fatalf("location=%q want=%q", got, location)
	}
}

// withCookies merges response cookies into a browser jar, dropping expired ones.
func withCookies(jar []*http.Cookie, rec *httptest.ResponseRecorder) []*http.Cookie {
	byName := map[string]*http.Cookie{}
	var order []string
	for _, c := range jar {
		if _, ok := byName[c.Name]; !ok {
			order = append(order, c.Name)
		}
		byName[c.Name] = c
	}
	for _, c := range rec.Result().Cookies() {
		if _, ok := byName[c.Name]; !ok {
			order = append(order, c.Name)
		}
		byName[c.Name] = c
	}

	var out []*http.Cookie
	for _, name := range order {
		c := byName[name]
		if c.MaxAge < 0 || c.Value == "" {
			continue
		}
		out = append(out, &http.Cookie{Name: c.Name, Value: c.Value})
	}
	return out
}

// countingStore wraps a store and counts calls, optionally failing them.
type countingStore struct {
	catalog.Store
	loads, mutations int
	loadErr          error
	mutateErr        error
}

func (s *countingStore) Load(ctx context.Context) (catalog.Catalog, error) {
	s.loads++
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.Store.Load(ctx)
}

func (s *countingStore) Mutate(ctx context.Context, fn func(catalog.Catalog) (catalog.Catalog, error)) error {
	s.mutations++
	if s.mutateErr != nil {
		return s.mutateErr
	}
	return s.Store.Mutate(ctx, fn)
}
