package events

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"kulturnorge/internal/catalog"
	"kulturnorge/internal/storage"
)

// Discoverer produces normalized events and citation sources for a free-text
// prompt. Implementations absorb upstream failures and return empty slices
// instead of errors.
type Discoverer interface {
	Discover(ctx context.Context, prompt string, now time.Time) ([]catalog.Event, []catalog.GroundingSource)
}

// Service coordinates the event working set: listing through the filter
// engine and merging discovery results.
type Service interface {
	List(ctx context.Context, q catalog.Query) ([]catalog.Event, error)
	Discover(ctx context.Context, prompt string) ([]catalog.Event, []catalog.GroundingSource, error)
	Sources(ctx context.Context) ([]catalog.GroundingSource, error)
}

type service struct {
	store      *catalog.Store
	discoverer Discoverer
	kv         storage.KV
	log        zerolog.Logger
}

// New constructs an events Service over the given store and discoverer.
func New(store *catalog.Store, discoverer Discoverer, kv storage.KV, log zerolog.Logger) Service {
	return &service{store: store, discoverer: discoverer, kv: kv, log: log}
}

func (s *service) List(ctx context.Context, q catalog.Query) ([]catalog.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return catalog.Visible(s.store.Snapshot(), q), nil
}

// Discover runs one discovery call and merges the results into the working
// set. An empty result (including upstream failure) leaves the store and the
// previous sources untouched. The persisted discovered-events entry is
// rewritten after a merge; a write failure is logged and does not fail the
// call.
func (s *service) Discover(ctx context.Context, prompt string) ([]catalog.Event, []catalog.GroundingSource, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	discovered, sources := s.discoverer.Discover(ctx, prompt, time.Now())
	if len(discovered) == 0 {
		return nil, nil, nil
	}

	s.store.Merge(discovered, sources)

	if err := storage.Save(ctx, s.kv, storage.KeyDiscoveredEvents, s.store.Discovered()); err != nil {
		s.log.Warn().Err(err).Msg("persist discovered events failed")
	}

	return discovered, sources, nil
}

func (s *service) Sources(ctx context.Context) ([]catalog.GroundingSource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.Sources(), nil
}
