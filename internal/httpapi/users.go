package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"kulturnorge/internal/app/users"
)

type loginRequest struct {
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Preferences []string `json:"preferences"`
}

type loginResponse struct {
	Token string        `json:"token"`
	User  users.Profile `json:"user"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	profile, token, err := s.users.Login(r.Context(), req.Email, req.Name, req.Preferences)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, users.ErrEmailRequired) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: profile})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := parseBearerToken(r.Header.Get("Authorization"))
	if token == "" || s.users.VerifyToken(token) != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid session token"})
		return
	}

	if err := s.users.Logout(r.Context()); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	token := parseBearerToken(r.Header.Get("Authorization"))
	if token == "" || s.users.VerifyToken(token) != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid session token"})
		return
	}

	profile, ok := s.users.Profile(r.Context())
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not logged in"})
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
