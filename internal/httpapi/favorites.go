package httpapi

import "net/http"

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	ids, err := s.favorites.IDs(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, struct {
		Favorites []string `json:"favorites"`
	}{Favorites: ids})
}

func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing event id"})
		return
	}

	favorited, err := s.favorites.Toggle(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, struct {
		ID        string `json:"id"`
		Favorited bool   `json:"favorited"`
	}{ID: id, Favorited: favorited})
}
