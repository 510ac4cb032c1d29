package users

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"kulturnorge/internal/storage"
	"kulturnorge/shared/go/auth"
)

// ErrEmailRequired signals a login attempt without an email address.
var ErrEmailRequired = errors.New("email is required")

// Profile is the logged-in user's identity state.
type Profile struct {
	Email       string   `json:"email"`
	Name        string   `json:"name,omitempty"`
	Preferences []string `json:"preferences,omitempty"`
}

// Service implements the mock login flow: any submitted identity is accepted
// after a fixed artificial delay, and no credential verification happens
// anywhere. The profile is written through to storage on login and the key
// removed on logout.
type Service struct {
	mu      sync.RWMutex
	kv      storage.KV
	tokens  *auth.TokenManager
	delay   time.Duration
	profile *Profile
	log     zerolog.Logger
}

// New loads any persisted profile. delay is the artificial login delay; tests
// pass zero.
func New(ctx context.Context, kv storage.KV, tokens *auth.TokenManager, delay time.Duration, log zerolog.Logger) *Service {
	s := &Service{kv: kv, tokens: tokens, delay: delay, log: log}

	var profile Profile
	if storage.Load(ctx, kv, storage.KeyUser, &profile) && profile.Email != "" {
		s.profile = &profile
	}
	return s
}

// Login records the submitted identity and issues a session token. The name
// defaults to the email's local part when absent.
func (s *Service) Login(ctx context.Context, email, name string, preferences []string) (Profile, string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return Profile{}, "", ErrEmailRequired
	}

	select {
	case <-time.After(s.delay):
	case <-ctx.Done():
		return Profile{}, "", ctx.Err()
	}

	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	if preferences == nil {
		preferences = []string{}
	}

	profile := Profile{Email: email, Name: name, Preferences: preferences}

	token, err := s.tokens.Issue(email)
	if err != nil {
		return Profile{}, "", err
	}

	s.mu.Lock()
	s.profile = &profile
	s.mu.Unlock()

	if err := storage.Save(ctx, s.kv, storage.KeyUser, profile); err != nil {
		s.log.Warn().Err(err).Msg("persist profile failed")
	}
	return profile, token, nil
}

// Logout clears the profile and removes the persisted key.
func (s *Service) Logout(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.profile = nil
	s.mu.Unlock()

	if err := s.kv.Delete(ctx, storage.KeyUser); err != nil {
		s.log.Warn().Err(err).Msg("remove persisted profile failed")
	}
	return nil
}

// Profile returns the current profile, if any.
func (s *Service) Profile(ctx context.Context) (Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.profile == nil {
		return Profile{}, false
	}
	return *s.profile, true
}

// VerifyToken reports whether a bearer token was issued by this process.
func (s *Service) VerifyToken(token string) error {
	_, err := s.tokens.Verify(token)
	return err
}
