package main

import (
	"context"

	"github.com/rs/zerolog"

	"kulturnorge/internal/catalog"
	"kulturnorge/internal/storage"
)

// loadCatalog builds the event working set: the embedded seed catalog plus
// any discovered events persisted by an earlier run. Missing or corrupt
// persisted state starts the store with the seed alone.
func loadCatalog(ctx context.Context, kv storage.KV, log zerolog.Logger) (*catalog.Store, error) {
	seed, err := catalog.SeedEvents()
	if err != nil {
		return nil, err
	}

	var discovered []catalog.Event
	if storage.Load(ctx, kv, storage.KeyDiscoveredEvents, &discovered) && len(discovered) > 0 {
		log.Info().Int("count", len(discovered)).Msg("restored discovered events")
	}

	// Seed catalog first; restored discovered events follow. Runtime merges
	// still prepend.
	return catalog.NewStore(append(seed, discovered...)), nil
}
