package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/filehost/internal/server/auth"
	"github.com/dmitrijs2005/filehost/internal/server/authz"
)

const sessionCookieName = "session"

// authedHandler is a handler that runs with a resolved, authenticated
// principal.
type authedHandler func(w http.ResponseWriter, r *http.Request, p authz.Principal)

// principal resolves the session cookie to a principal. Missing, expired
// or otherwise invalid tokens degrade to the anonymous principal; the
// per-route guards decide whether that is acceptable.
func (s *Server) principal(r *http.Request) authz.Principal {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return authz.Anonymous
	}

	p, err := auth.PrincipalFromToken(cookie.Value, s.secretKey)
	if err != nil {
		return authz.Anonymous
	}
	return p
}

func (s *Server) requireAuth(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := s.principal(r)
		if !p.Authenticated() {
			s.writeError(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		next(w, r, p)
	}
}

func (s *Server) requireAdmin(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := s.principal(r)
		if !p.Authenticated() || !p.IsAdmin {
			s.writeError(w, http.StatusForbidden, "admin privileges required")
			return
		}
		next(w, r, p)
	}
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.sessionValidity / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
