package session

import (
	"net/http"
	"net/url"
)

// SetFlash stores a one-shot message that survives the next redirect.
func (m *Manager) SetFlash(w http.ResponseWriter, msg string) {
	http.SetCookie(w, &http.Cookie{
		Name:     FlashName,
		Value:    url.QueryEscape(msg),
		Path:     "/",
		MaxAge:   flashMaxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlash returns the pending flash message, if any, and clears it.
func (m *Manager) PopFlash(w http.ResponseWriter, r *http.Request) string {
	ck, err := r.Cookie(FlashName)
	if err != nil || ck.Value == "" {
		return ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:     FlashName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})

	msg, err := url.QueryUnescape(ck.Value)
	if err != nil {
		return ""
	}
	return msg
}
