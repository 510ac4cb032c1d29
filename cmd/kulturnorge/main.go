package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"kulturnorge/internal/app/events"
	"kulturnorge/internal/app/favorites"
	"kulturnorge/internal/app/users"
	"kulturnorge/internal/discovery"
	"kulturnorge/internal/storage"
	"kulturnorge/shared/go/auth"
	"kulturnorge/shared/go/logging"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		logging.New(logging.Config{}).Fatal().Err(err).Msg("invalid configuration")
	}

	log := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	logging.SetGlobalLogger(log)

	ctx := context.Background()

	kv, closeStorage, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("open storage")
	}
	defer closeStorage()

	store, err := loadCatalog(ctx, kv, log)
	if err != nil {
		log.Fatal().Err(err).Msg("load catalog")
	}

	client, err := newDiscoveryClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init discovery client")
	}

	discoverySvc := discovery.NewService(client, log)
	eventSvc := events.New(store, discoverySvc, kv, log)
	favoritesSvc := favorites.New(ctx, kv, log)
	userSvc := users.New(ctx, kv, auth.NewTokenManager(cfg.JWTSecret), cfg.LoginDelay, log)

	handler := newHTTPHandler(cfg, eventSvc, discoverySvc, favoritesSvc, userSvc)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Info().Str("addr", cfg.Addr).Msg("API listening")
	if err := server.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

func openStorage(ctx context.Context, cfg Config) (storage.KV, func(), error) {
	switch cfg.StorageDriver {
	case "memory":
		return storage.NewMemory(), func() {}, nil
	case "postgres":
		db, err := openPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		kv := storage.NewSQL(db)
		if err := kv.Init(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return kv, func() { _ = db.Close() }, nil
	default: // sqlite, enforced by config validation
		db, err := openSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		kv := storage.NewSQL(db)
		if err := kv.Init(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return kv, func() { _ = db.Close() }, nil
	}
}

func newDiscoveryClient(ctx context.Context, cfg Config, log zerolog.Logger) (discovery.Client, error) {
	if cfg.GeminiAPIKey == "" {
		log.Info().Msg("GEMINI_API_KEY not provided, event discovery disabled")
		return discovery.Disabled{}, nil
	}

	client, err := discovery.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, err
	}
	log.Info().Str("model", cfg.GeminiModel).Msg("Gemini discovery client initialized")
	return client, nil
}
