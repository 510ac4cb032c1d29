package favorites

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"kulturnorge/internal/storage"
)

// Service tracks the set of favorited event identifiers. Membership is
// mutated only by Toggle and is written through to storage on every
// mutation. A stale identifier whose event has vanished is kept.
type Service struct {
	mu  sync.Mutex
	kv  storage.KV
	ids []string
	log zerolog.Logger
}

// New loads the persisted favorite set. Missing or corrupt stored state
// starts the set empty.
func New(ctx context.Context, kv storage.KV, log zerolog.Logger) *Service {
	s := &Service{kv: kv, log: log}
	storage.Load(ctx, kv, storage.KeyFavorites, &s.ids)
	return s
}

// Toggle flips membership for id and reports whether the event is now a
// favorite. Persistence is fire-and-forget: a failed write is logged and the
// in-memory state stands.
func (s *Service) Toggle(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := true
	for i, existing := range s.ids {
		if existing == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			now = false
			break
		}
	}
	if now {
		s.ids = append(s.ids, id)
	}

	if err := storage.Save(ctx, s.kv, storage.KeyFavorites, s.ids); err != nil {
		s.log.Warn().Err(err).Str("event_id", id).Msg("persist favorites failed")
	}
	return now, nil
}

// IDs returns the favorited identifiers in insertion order.
func (s *Service) IDs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out, nil
}
