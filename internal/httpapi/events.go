package httpapi

import (
	"encoding/json"
	"net/http"

	"kulturnorge/internal/catalog"
)

// Empty-state copy per view mode, returned so clients can render a distinct
// message for an empty listing.
var emptyMessages = map[catalog.View]string{
	catalog.ViewExplore:   "Ingen arrangementer funnet",
	catalog.ViewFavorites: "Ingen favoritter lagret",
	catalog.ViewForYou:    "Ingen treff på dine preferanser",
}

type eventsResponse struct {
	Events       []catalog.Event `json:"events"`
	EmptyMessage string          `json:"emptyMessage,omitempty"`
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	view := catalog.ParseView(query.Get("view"))

	ids, err := s.favorites.IDs(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	favoriteIDs := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		favoriteIDs[id] = struct{}{}
	}

	var preferences []string
	if profile, ok := s.users.Profile(r.Context()); ok {
		preferences = profile.Preferences
	}

	events, err := s.events.List(r.Context(), catalog.Query{
		Search:      query.Get("search"),
		City:        query.Get("city"),
		Category:    query.Get("category"),
		View:        view,
		FavoriteIDs: favoriteIDs,
		Preferences: preferences,
	})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	resp := eventsResponse{Events: events}
	if len(events) == 0 {
		resp.Events = []catalog.Event{}
		resp.EmptyMessage = emptyMessages[view]
	}
	writeJSON(w, http.StatusOK, resp)
}

type discoverRequest struct {
	Prompt string `json:"prompt"`
}

type discoverResponse struct {
	Events  []catalog.Event           `json:"events"`
	Sources []catalog.GroundingSource `json:"sources"`
}

func (s *Server) handleDiscover(w http.ResponseWriter, r *http.Request) {
	var req discoverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}
	if req.Prompt == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "prompt is required"})
		return
	}

	// A failed discovery call surfaces as empty lists, not as an error.
	events, sources, err := s.events.Discover(r.Context(), req.Prompt)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	resp := discoverResponse{Events: events, Sources: sources}
	if resp.Events == nil {
		resp.Events = []catalog.Event{}
	}
	if resp.Sources == nil {
		resp.Sources = []catalog.GroundingSource{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDiscoverSources(w http.ResponseWriter, r *http.Request) {
	sources, err := s.events.Sources(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	if sources == nil {
		sources = []catalog.GroundingSource{}
	}
	writeJSON(w, http.StatusOK, struct {
		Sources []catalog.GroundingSource `json:"sources"`
	}{Sources: sources})
}

type moodRequest struct {
	Mood string `json:"mood"`
}

func (s *Server) handleMoods(w http.ResponseWriter, r *http.Request) {
	var req moodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}
	if req.Mood == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "mood is required"})
		return
	}

	suggestions, err := s.moods.Moods(r.Context(), req.Mood)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "mood suggestions unavailable"})
		return
	}
	if suggestions == nil {
		suggestions = []string{}
	}
	writeJSON(w, http.StatusOK, struct {
		Suggestions []string `json:"suggestions"`
	}{Suggestions: suggestions})
}
