package server

import (
	"net/http"
	"strings"

	"github.com/UnknownOlympus/athena/internal/access"
	"github.com/UnknownOlympus/athena/internal/lib/logger/sl"
)

const homePath = sickLeaveListPath

type loginContent struct {
	Error string
	Next  string
}

// handleLoginPage is the login root unauthenticated requests are sent to.
func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if _, err := access.Authenticate(r, s.JWTSecret); err == nil {
		http.Redirect(w, r, homePath, http.StatusSeeOther)
		return
	}
	s.renderLogin(w, r, http.StatusOK, "", r.URL.Query().Get("next"))
}

// handleLogin accepts a token issued by the identity provider (or hrisctl)
// and stores it in the session cookie.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderLogin(w, r, http.StatusBadRequest, "auth.invalid", "")
		return
	}

	token := strings.TrimSpace(r.PostForm.Get("token"))
	next := r.PostForm.Get("next")

	p, err := access.ParseToken(token, s.JWTSecret)
	if err != nil {
		s.Log.InfoContext(r.Context(), "login rejected", sl.Err(err))
		s.renderLogin(w, r, http.StatusUnauthorized, "auth.invalid", next)
		return
	}
	if !s.AppConfig.IsTenantRole(p.Role) {
		s.Log.InfoContext(r.Context(), "login rejected: unknown role", "role", p.Role)
		s.renderLogin(w, r, http.StatusUnauthorized, "auth.invalid", next)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     access.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   s.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	s.Log.InfoContext(r.Context(), "user signed in", "name", p.Name, "role", p.Role)

	http.Redirect(w, r, safeNext(next), http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     access.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) renderLogin(w http.ResponseWriter, r *http.Request, status int, errID, next string) {
	content := loginContent{Next: next}
	if errID != "" {
		content.Error = s.Translator.T(r.Context(), errID)
	}
	s.render(w, r, status, "login", s.newView(r, "auth.submit", nil, content))
}

// safeNext only allows local absolute paths as redirect targets.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return homePath
	}
	return next
}
