package main

import (
	"net/http"
	"strings"

	"kulturnorge/internal/app/events"
	"kulturnorge/internal/app/favorites"
	"kulturnorge/internal/app/users"
	"kulturnorge/internal/discovery"
	"kulturnorge/internal/httpapi"
	"kulturnorge/shared/go/middleware"
)

func newHTTPHandler(
	cfg Config,
	eventSvc events.Service,
	discoverySvc *discovery.Service,
	favoritesSvc *favorites.Service,
	userSvc *users.Service,
) http.Handler {
	handler := httpapi.New(eventSvc, discoverySvc, favoritesSvc, userSvc).Routes()
	handler = middleware.Recovery()(handler)
	handler = middleware.RequestLogging()(handler)
	return withCORS(cfg.AllowedOrigins, handler)
}

func withCORS(allowedOrigins []string, next http.Handler) http.Handler {
	originAllowed := func(origin string) bool {
		if len(allowedOrigins) == 0 || origin == "" {
			return false
		}
		for _, o := range allowedOrigins {
			if strings.EqualFold(o, origin) {
				return true
			}
		}
		return false
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "3600")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
