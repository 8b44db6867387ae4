package dashboard

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"ProductDashboard/internal/auth"
	"ProductDashboard/internal/catalog"
	"ProductDashboard/internal/session"
	"ProductDashboard/internal/view"
	"ProductDashboard/pkg/kit"
)

const (
	maxFormBytes = 64 << 10

	MsgAdded   = "Product added!"
	MsgUpdated = "Product updated!"
)

// Only these messages are shown from the flash cookie; anything else a
// client puts there is dropped.
var successMessages = map[string]bool{
	MsgAdded:   true,
	MsgUpdated: true,
}

// Server is the catalog request handler behind /dashboard.
type Server struct {
	Log      *zap.Logger
	Store    catalog.Store
	Sessions *session.Manager
	Views    *view.Renderer
	Metrics  *Metrics
}

// ServeHTTP runs one request through
// auth check -> load -> at most one mutation -> redirect or render.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	if !sess.Authenticated {
		kit.SeeOther(w, r, auth.LoginPath)
		return
	}

	ctx := r.Context()
	products, err := s.Store.Load(ctx)
	if err != nil {
		s.storageError(w, r, "load", err)
		return
	}

	page := view.Dashboard{
		Title:    "Dashboard",
		Username: sess.Username,
		Products: products,
	}

	if r.Method == http.MethodPost {
		s.handleSubmit(w, r, page)
		return
	}

	q := r.URL.Query()
	if q.Has("delete_id") {
		s.handleDelete(w, r, q.Get("delete_id"))
		return
	}

	if q.Has("edit_id") {
		if p, ok := products.Find(q.Get("edit_id")); ok {
			page.Form = view.FormFromProduct(p)
		}
	}

	if msg := s.Sessions.PopFlash(w, r); successMessages[msg] {
		page.Success = msg
	}
	s.render(w, r, http.StatusOK, page)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request, page view.Dashboard) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	in := catalog.NormalizeInput(
		r.PostFormValue("id"),
		r.PostFormValue("name"),
		r.PostFormValue("price"),
		r.PostFormValue("description"),
	)

	draft, errs := catalog.Validate(in)
	if len(errs) > 0 {
		page.Errors = errs
		page.Form = view.FormFromInput(in)
		s.render(w, r, http.StatusOK, page)
		return
	}

	msg, err := s.save(r.Context(), in.ID, draft)
	if err != nil {
		s.storageError(w, r, "save", err)
		return
	}

	s.Sessions.SetFlash(w, msg)
	kit.SeeOther(w, r, auth.DashboardPath)
}

// save applies a create (empty id) or an update and persists the catalog.
// An update of an unknown id writes the catalog back unchanged.
func (s *Server) save(ctx context.Context, id string, d catalog.Draft) (string, error) {
	if id == "" {
		var added catalog.Product
		err := s.Store.Mutate(ctx, func(c catalog.Catalog) (catalog.Catalog, error) {
			c, added = c.Add(d)
			return c, nil
		})
		if err != nil {
			return "", err
		}
		s.Metrics.observe(opAdd, 1)
		s.Log.Info("product added", zap.String("product_id", added.ID))
		return MsgAdded, nil
	}

	var found bool
	err := s.Store.Mutate(ctx, func(c catalog.Catalog) (catalog.Catalog, error) {
		c, found = c.Update(id, d)
		return c, nil
	})
	if err != nil {
		return "", err
	}
	if found {
		s.Metrics.observe(opUpdate, 1)
	}
	s.Log.Info("product updated", zap.String("product_id", id), zap.Bool("found", found))
	return MsgUpdated, nil
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request, id string) {
	var removed int
	err := s.Store.Mutate(r.Context(), func(c catalog.Catalog) (catalog.Catalog, error) {
		c, removed = c.Delete(id)
		return c, nil
	})
	if err != nil {
		s.storageError(w, r, "delete", err)
		return
	}

	s.Metrics.observe(opDelete, removed)
	s.Log.Info("product deleted", zap.String("product_id", id), zap.Int("removed", removed))
	kit.SeeOther(w, r, auth.DashboardPath)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page view.Dashboard) {
	if err := s.Views.Render(w, status, view.PageDashboard, page); err != nil {
		s.Log.Error("render dashboard failed", zap.Error(err))
		http.Error(w, "server error", http.StatusInternalServerError)
	}
}

// storageError answers with an error page. Nothing was written, and the
// client is not redirected.
func (s *Server) storageError(w http.ResponseWriter, r *http.Request, op string, err error) {
	s.Metrics.storeFailed(op)
	s.Log.Error("catalog store failed",
		zap.String("op", op),
		zap.String("request_id", kit.RequestID(r)),
		zap.Error(err),
	)

	rerr := s.Views.Render(w, http.StatusInternalServerError, view.PageError, view.Error{
		Title:     "Error",
		Message:   "The product catalog is unavailable right now. No changes were saved.",
		RequestID: kit.RequestID(r),
	})
	if rerr != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
	}
}
