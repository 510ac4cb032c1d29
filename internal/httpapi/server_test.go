package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"kulturnorge/internal/app/users"
	"kulturnorge/internal/catalog"
)

type stubEventService struct {
	listResponse []catalog.Event
	listErr      error
	lastQuery    catalog.Query

	discovered  []catalog.Event
	sources     []catalog.GroundingSource
	discoverErr error
	lastPrompt  string
}

func (s *stubEventService) List(ctx context.Context, q catalog.Query) ([]catalog.Event, error) {
	s.lastQuery = q
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.listResponse, nil
}

func (s *stubEventService) Discover(ctx context.Context, prompt string) ([]catalog.Event, []catalog.GroundingSource, error) {
	s.lastPrompt = prompt
	if s.discoverErr != nil {
		return nil, nil, s.discoverErr
	}
	return s.discovered, s.sources, nil
}

func (s *stubEventService) Sources(ctx context.Context) ([]catalog.GroundingSource, error) {
	return s.sources, nil
}

type stubMoodService struct {
	suggestions []string
	err         error
	lastMood    string
}

func (s *stubMoodService) Moods(ctx context.Context, mood string) ([]string, error) {
	s.lastMood = mood
	if s.err != nil {
		return nil, s.err
	}
	return s.suggestions, nil
}

type stubFavoriteService struct {
	ids       []string
	toggled   bool
	lastID    string
	idsErr    error
	toggleErr error
}

func (s *stubFavoriteService) Toggle(ctx context.Context, id string) (bool, error) {
	s.lastID = id
	if s.toggleErr != nil {
		return false, s.toggleErr
	}
	return s.toggled, nil
}

func (s *stubFavoriteService) IDs(ctx context.Context) ([]string, error) {
	if s.idsErr != nil {
		return nil, s.idsErr
	}
	return s.ids, nil
}

type stubUserService struct {
	profile   users.Profile
	loggedIn  bool
	token     string
	loginErr  error
	verifyErr error
	loggedOut bool
	lastEmail string
}

func (s *stubUserService) Login(ctx context.Context, email, name string, preferences []string) (users.Profile, string, error) {
	s.lastEmail = email
	if s.loginErr != nil {
		return users.Profile{}, "", s.loginErr
	}
	return s.profile, s.token, nil
}

func (s *stubUserService) Logout(ctx context.Context) error {
	s.loggedOut = true
	return nil
}

func (s *stubUserService) Profile(ctx context.Context) (users.Profile, bool) {
	return s.profile, s.loggedIn
}

func (s *stubUserService) VerifyToken(token string) error {
	return s.verifyErr
}

func newTestServer(events *stubEventService, moods *stubMoodService, favorites *stubFavoriteService, userSvc *stubUserService) http.Handler {
	if events == nil {
		events = &stubEventService{}
	}
	if moods == nil {
		moods = &stubMoodService{}
	}
	if favorites == nil {
		favorites = &stubFavoriteService{}
	}
	if userSvc == nil {
		userSvc = &stubUserService{}
	}
	return New(events, moods, favorites, userSvc).Routes()
}

func TestHealthEndpoint(t *testing.T) {
	handler := newTestServer(nil, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestListEventsPassesQuery(t *testing.T) {
	events := &stubEventService{listResponse: []catalog.Event{{ID: "1", Title: "Aurora"}}}
	favorites := &stubFavoriteService{ids: []string{"1", "2"}}
	userSvc := &stubUserService{loggedIn: true, profile: users.Profile{Preferences: []string{"Konsert"}}}
	handler := newTestServer(events, nil, favorites, userSvc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events?search=jazz&city=Oslo&category=Konsert&view=favorites", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	q := events.lastQuery
	if q.Search != "jazz" || q.City != "Oslo" || q.Category != "Konsert" {
		t.Fatalf("query = %+v", q)
	}
	if q.View != catalog.ViewFavorites {
		t.Fatalf("view = %v, want favorites", q.View)
	}
	if _, ok := q.FavoriteIDs["2"]; !ok {
		t.Fatalf("favorite ids not forwarded: %v", q.FavoriteIDs)
	}
	if len(q.Preferences) != 1 || q.Preferences[0] != "Konsert" {
		t.Fatalf("preferences = %v", q.Preferences)
	}

	var resp eventsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Events) != 1 || resp.EmptyMessage != "" {
		t.Fatalf("response = %+v", resp)
	}
}

func TestListEventsEmptyMessagePerView(t *testing.T) {
	tests := []struct {
		view string
		want string
	}{
		{"explore", "Ingen arrangementer funnet"},
		{"favorites", "Ingen favoritter lagret"},
		{"foryou", "Ingen treff på dine preferanser"},
		{"", "Ingen arrangementer funnet"},
	}

	for _, tc := range tests {
		handler := newTestServer(&stubEventService{}, nil, nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/events?view="+tc.view, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("view %q: status = %d", tc.view, rec.Code)
		}

		var resp eventsResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("view %q: decode response: %v", tc.view, err)
		}
		if resp.Events == nil {
			t.Fatalf("view %q: events should encode as an empty array", tc.view)
		}
		if resp.EmptyMessage != tc.want {
			t.Fatalf("view %q: emptyMessage = %q, want %q", tc.view, resp.EmptyMessage, tc.want)
		}
	}
}

func TestDiscoverRequiresPrompt(t *testing.T) {
	handler := newTestServer(nil, nil, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/discover", bytes.NewBufferString(`{"prompt":""}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestDiscoverReturnsEmptyListsOnNoResults(t *testing.T) {
	events := &stubEventService{}
	handler := newTestServer(events, nil, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/discover", bytes.NewBufferString(`{"prompt":"jazz i Oslo"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if events.lastPrompt != "jazz i Oslo" {
		t.Fatalf("prompt = %q", events.lastPrompt)
	}

	var resp discoverResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Events == nil || resp.Sources == nil {
		t.Fatal("empty discovery should encode as empty arrays")
	}
}

func TestMoodsRejectsEmptyMood(t *testing.T) {
	handler := newTestServer(nil, nil, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/discover/moods", bytes.NewBufferString(`{"mood":""}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestMoodsUpstreamFailure(t *testing.T) {
	moods := &stubMoodService{err: errors.New("model unreachable")}
	handler := newTestServer(nil, moods, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/discover/moods", bytes.NewBufferString(`{"mood":"festlig"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadGateway)
	}
}

func TestToggleFavorite(t *testing.T) {
	favorites := &stubFavoriteService{toggled: true}
	handler := newTestServer(nil, nil, favorites, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/me/favorites/ai-100-0/toggle", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if favorites.lastID != "ai-100-0" {
		t.Fatalf("toggled id = %q", favorites.lastID)
	}

	var resp struct {
		ID        string `json:"id"`
		Favorited bool   `json:"favorited"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != "ai-100-0" || !resp.Favorited {
		t.Fatalf("response = %+v", resp)
	}
}

func TestLoginRejectsMissingEmail(t *testing.T) {
	userSvc := &stubUserService{loginErr: users.ErrEmailRequired}
	handler := newTestServer(nil, nil, nil, userSvc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString(`{"email":""}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestLoginReturnsTokenAndProfile(t *testing.T) {
	userSvc := &stubUserService{
		token:   "session-token",
		profile: users.Profile{Email: "kari@example.no", Name: "kari", Preferences: []string{}},
	}
	handler := newTestServer(nil, nil, nil, userSvc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString(`{"email":"kari@example.no"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token != "session-token" || resp.User.Email != "kari@example.no" {
		t.Fatalf("response = %+v", resp)
	}
}

func TestProfileRequiresBearerToken(t *testing.T) {
	handler := newTestServer(nil, nil, nil, &stubUserService{loggedIn: true})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/profile", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestProfileRejectsInvalidToken(t *testing.T) {
	userSvc := &stubUserService{loggedIn: true, verifyErr: errors.New("expired")}
	handler := newTestServer(nil, nil, nil, userSvc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/profile", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestProfileNotLoggedIn(t *testing.T) {
	handler := newTestServer(nil, nil, nil, &stubUserService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/profile", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestLogout(t *testing.T) {
	userSvc := &stubUserService{loggedIn: true}
	handler := newTestServer(nil, nil, nil, userSvc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if !userSvc.loggedOut {
		t.Fatal("Logout was not called")
	}
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc", "abc"},
		{"bearer abc", "abc"},
		{"Basic abc", ""},
		{"Bearer", ""},
	}

	for _, tc := range tests {
		if got := parseBearerToken(tc.header); got != tc.want {
			t.Fatalf("parseBearerToken(%q) = %q, want %q", tc.header, got, tc.want)
		}
	}
}
