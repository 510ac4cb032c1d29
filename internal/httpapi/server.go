package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"kulturnorge/internal/app/users"
	"kulturnorge/internal/catalog"
)

// EventService lists catalog events and merges discovery results.
type EventService interface {
	List(ctx context.Context, q catalog.Query) ([]catalog.Event, error)
	Discover(ctx context.Context, prompt string) ([]catalog.Event, []catalog.GroundingSource, error)
	Sources(ctx context.Context) ([]catalog.GroundingSource, error)
}

// MoodService suggests event genres for a mood.
type MoodService interface {
	Moods(ctx context.Context, mood string) ([]string, error)
}

// FavoriteService tracks the favorited event identifiers.
type FavoriteService interface {
	Toggle(ctx context.Context, id string) (bool, error)
	IDs(ctx context.Context) ([]string, error)
}

// UserService implements the mock login flow.
type UserService interface {
	Login(ctx context.Context, email, name string, preferences []string) (users.Profile, string, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (users.Profile, bool)
	VerifyToken(token string) error
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	events    EventService
	moods     MoodService
	favorites FavoriteService
	users     UserService
}

// New configures a Server with the given services.
func New(events EventService, moods MoodService, favorites FavoriteService, users UserService) *Server {
	return &Server{
		events:    events,
		moods:     moods,
		favorites: favorites,
		users:     users,
	}
}

// Routes exposes the HTTP handlers for the event catalog, discovery,
// favorites, and the mock session.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("GET /api/v1/events", s.handleListEvents)

	mux.HandleFunc("POST /api/v1/discover", s.handleDiscover)
	mux.HandleFunc("GET /api/v1/discover/sources", s.handleDiscoverSources)
	mux.HandleFunc("POST /api/v1/discover/moods", s.handleMoods)

	mux.HandleFunc("GET /api/v1/me/favorites", s.handleListFavorites)
	mux.HandleFunc("POST /api/v1/me/favorites/{id}/toggle", s.handleToggleFavorite)

	mux.HandleFunc("POST /api/v1/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/v1/auth/logout", s.handleLogout)
	mux.HandleFunc("GET /api/v1/users/profile", s.handleProfile)

	return mux
}

type errorResponse struct {
	Error string `json:"error"`
}

func parseBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
