package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/filehost/internal/common"
	"github.com/dmitrijs2005/filehost/internal/server/auth"
	"github.com/dmitrijs2005/filehost/internal/server/authz"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.users.Register(r.Context(), req.Username, req.Password, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			s.writeError(w, http.StatusBadRequest, "all fields are required")
		case errors.Is(err, common.ErrorAlreadyExists):
			s.writeError(w, http.StatusBadRequest, "username or email already exists")
		default:
			s.logger.Error(r.Context(), "registration failed", "error", err.Error())
			s.writeError(w, http.StatusInternalServerError, "registration failed")
		}
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "user registered",
		"userId":  user.ID,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		s.writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := s.users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			s.writeError(w, http.StatusUnauthorized, "invalid username or password")
			return
		}
		s.logger.Error(r.Context(), "login failed", "error", err.Error())
		s.writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	p := authz.Principal{UserID: user.ID, IsAdmin: user.IsAdmin.Bool()}
	token, err := auth.GenerateToken(p, s.secretKey, s.sessionValidity)
	if err != nil {
		s.logger.Error(r.Context(), "token generation failed", "error", err.Error())
		s.writeError(w, http.StatusInternalServerError, "login failed")
		return
	}
	s.setSessionCookie(w, token)

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "login successful",
		"user":    toUserPayload(user),
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearSessionCookie(w)
	s.writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "logged out"})
}

// handleAuthCheck reports whether the session resolves to a live account.
// A token for a user that no longer exists counts as unauthenticated.
func (s *Server) handleAuthCheck(w http.ResponseWriter, r *http.Request) {
	p := s.principal(r)
	if !p.Authenticated() {
		s.writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	user, err := s.users.Get(r.Context(), p.UserID)
	if err != nil {
		s.writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user":          toUserPayload(user),
	})
}
