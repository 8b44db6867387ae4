package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"ProductDashboard/internal/session"
	"ProductDashboard/internal/view"
	"ProductDashboard/pkg/kit"
)

const (
	maxFormBytes   = 64 << 10
	minPasswordLen = 8
	maxUsernameLen = 64

	loginWindow       = time.Minute
	defaultLoginLimit = 5

	DashboardPath = "/dashboard"
	LoginPath     = "/login"
)

const (
	msgBadCredentials  = "Invalid username or password."
	msgTooManyAttempts = "Too many login attempts. Try again in a minute."
	msgRegistered      = "Account created. Please log in."
	msgLoggedOut       = "You have been logged out."

	msgUsernameRequired = "Username is required."
	msgUsernameTooLong  = "Username is too long."
	msgPasswordTooShort = "Password must be at least 8 characters."
	msgUsernameTaken    = "That username is taken."
)

// notices that may arrive through the flash cookie on the login page.
var loginNotices = map[string]bool{
	msgRegistered: true,
	msgLoggedOut:  true,
}

type Server struct {
	Log      *zap.Logger
	Users    UserStore
	Sessions *session.Manager
	Views    *view.Renderer

	// LoginLimitPerMin caps POST /login per client IP.
	LoginLimitPerMin int
	// TrustProxy keys the login limit by X-Forwarded-For.
	TrustProxy bool
}

// Mount registers the login, logout and register pages on r.
func (s *Server) Mount(r chi.Router) {
	limit := s.LoginLimitPerMin
	if limit <= 0 {
		limit = defaultLoginLimit
	}
	limiter := kit.NewIPRateLimiter(limit, loginWindow)
	limiter.TrustProxy = s.TrustProxy
	limiter.OnLimited = s.tooManyAttempts

	r.Get(LoginPath, s.handleLoginForm)
	r.With(limiter.Middleware).Post(LoginPath, s.handleLogin)

	r.Get("/logout", s.handleLogout)
	r.Post("/logout", s.handleLogout)

	r.Get("/register", s.handleRegisterForm)
	r.Post("/register", s.handleRegister)
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if session.FromContext(r.Context()).Authenticated {
		kit.SeeOther(w, r, DashboardPath)
		return
	}

	data := view.Login{Title: "Login"}
	if msg := s.Sessions.PopFlash(w, r); loginNotices[msg] {
		data.Notice = msg
	}
	s.render(w, r, http.StatusOK, view.PageLogin, data)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	username, password, ok := s.readCredentials(w, r)
	if !ok {
		return
	}

	u, err := s.Users.Verify(r.Context(), username, password)
	if errors.Is(err, ErrInvalidCredentials) {
		s.render(w, r, http.StatusUnauthorized, view.PageLogin, view.Login{
			Title:    "Login",
			Username: username,
			Error:    msgBadCredentials,
		})
		return
	}
	if err != nil {
		s.Log.Error("verify user failed", zap.Error(err))
		s.serverError(w, r)
		return
	}

	if err := s.Sessions.Issue(w, u.Username); err != nil {
		s.Log.Error("issue session failed", zap.Error(err))
		s.serverError(w, r)
		return
	}

	s.Log.Info("user logged in", zap.String("username", u.Username))
	kit.SeeOther(w, r, DashboardPath)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.Sessions.Clear(w)
	s.Sessions.SetFlash(w, msgLoggedOut)
	kit.SeeOther(w, r, LoginPath)
}

func (s *Server) handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, view.PageRegister, view.Register{Title: "Register"})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	username, password, ok := s.readCredentials(w, r)
	if !ok {
		return
	}

	if errs := validateRegistration(username, password); len(errs) > 0 {
		s.render(w, r, http.StatusBadRequest, view.PageRegister, view.Register{
			Title:    "Register",
			Username: username,
			Errors:   errs,
		})
		return
	}

	err := s.Users.Create(r.Context(), username, password, "u_"+uuid.NewString())
	if errors.Is(err, ErrUserExists) {
		s.render(w, r, http.StatusConflict, view.PageRegister, view.Register{
			Title:    "Register",
			Username: username,
			Errors:   []string{msgUsernameTaken},
		})
		return
	}
	if err != nil {
		s.Log.Error("create user failed", zap.Error(err))
		s.serverError(w, r)
		return
	}

	s.Sessions.SetFlash(w, msgRegistered)
	kit.SeeOther(w, r, LoginPath)
}

func validateRegistration(username, password string) []string {
	var errs []string
	switch {
	case username == "":
		errs = append(errs, msgUsernameRequired)
	case len(username) > maxUsernameLen:
		errs = append(errs, msgUsernameTooLong)
	}
	if len(password) < minPasswordLen {
		errs = append(errs, msgPasswordTooShort)
	}
	return errs
}

func (s *Server) readCredentials(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return "", "", false
	}

	username := strings.TrimSpace(r.PostFormValue("username"))
	password := strings.TrimSpace(r.PostFormValue("password"))
	return username, password, true
}

func (s *Server) tooManyAttempts(w http.ResponseWriter, r *http.Request) {
	s.Log.Warn("login rate limited", zap.String("remote", kit.ClientIP(r, s.TrustProxy)))
	s.render(w, r, http.StatusTooManyRequests, view.PageLogin, view.Login{
		Title: "Login",
		Error: msgTooManyAttempts,
	})
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	if err := s.Views.Render(w, status, page, data); err != nil {
		s.Log.Error("render failed", zap.String("page", page), zap.Error(err))
		http.Error(w, "server error", http.StatusInternalServerError)
	}
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusInternalServerError, view.PageError, view.Error{
		Title:     "Error",
		Message:   "The request could not be completed. Please try again.",
		RequestID: kit.RequestID(r),
	})
}
