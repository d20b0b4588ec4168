package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/filehost/internal/server/models"
)

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type privacyRequest struct {
	IsPublic bool `json:"isPublic"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type userPayload struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"isAdmin"`
}

func toUserPayload(u *models.User) userPayload {
	return userPayload{ID: u.ID, Username: u.Username, Email: u.Email, IsAdmin: u.IsAdmin.Bool()}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}
