package discovery

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"kulturnorge/internal/catalog"
)

// Service wraps a Client with the fail-soft contract: any discovery failure
// (network error, malformed payload, schema violation) degrades to an empty
// result, so callers treat "nothing found" and "call failed" identically.
type Service struct {
	client   Client
	defaults Defaults
	log      zerolog.Logger
}

// NewService builds a Service with the standard placeholder defaults.
func NewService(client Client, log zerolog.Logger) *Service {
	return &Service{client: client, defaults: StandardDefaults(), log: log}
}

// Discover runs one discovery call and normalizes the response. On failure it
// returns empty slices; the error is logged, never propagated.
func (s *Service) Discover(ctx context.Context, prompt string, now time.Time) ([]catalog.Event, []catalog.GroundingSource) {
	res, err := s.client.DiscoverEvents(ctx, prompt)
	if err != nil {
		s.log.Warn().Err(err).Msg("event discovery failed")
		return nil, nil
	}
	return Normalize(res.Events, now, s.defaults), res.Sources
}

// Moods suggests genres matching a mood. Unlike Discover, upstream failures
// propagate to the caller.
func (s *Service) Moods(ctx context.Context, mood string) ([]string, error) {
	return s.client.MoodSuggestions(ctx, mood)
}
